package imaging

import (
	"bytes"

	"github.com/gotranspile/gotrace"
	"github.com/pkg/errors"

	"github.com/ironsheep/line-trace-mcp/internal/mask"
)

// TraceSVG vectorizes the On cells of m with potrace and returns an SVG
// document of the same pixel size. Potrace drops specks of two pixels or
// fewer, so isolated edge noise does not appear in the output.
//
// A nil mask yields an error wrapping mask.ErrInvalidState.
func TraceSVG(m *mask.Mask) (string, error) {
	if m == nil {
		return "", errors.Wrap(mask.ErrInvalidState, "no mask to vectorize")
	}

	// gotrace treats black as foreground.
	bm := gotrace.BitmapFromGray(m.Inverted(), nil)

	paths, err := gotrace.Trace(bm, nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to trace mask")
	}

	var buf bytes.Buffer
	if err := gotrace.Render("svg", nil, &buf, paths, m.Width, m.Height); err != nil {
		return "", errors.Wrap(err, "failed to render svg")
	}
	return buf.String(), nil
}
