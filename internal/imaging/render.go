package imaging

import (
	"image"
	"image/color"
	"strings"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"github.com/ironsheep/line-trace-mcp/internal/mask"
)

// Stroke defaults for RenderPath.
const (
	DefaultStrokeColor = "#ffffff"
	DefaultStrokeWidth = 1.0
)

// Stroke describes how a path is drawn.
type Stroke struct {
	// Color is a "#rrggbb" hex string. Empty means DefaultStrokeColor.
	Color string `json:"color"`

	// Width is the line width in pixels. Zero or negative means
	// DefaultStrokeWidth.
	Width float64 `json:"width"`
}

func (s Stroke) withDefaults() Stroke {
	if strings.TrimSpace(s.Color) == "" {
		s.Color = DefaultStrokeColor
	}
	if s.Width <= 0 {
		s.Width = DefaultStrokeWidth
	}
	return s
}

// ParseStrokeColor parses a "#rrggbb" hex color.
func ParseStrokeColor(hex string) (color.Color, error) {
	hex = strings.TrimSpace(hex)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid stroke color %q", hex)
	}
	return c, nil
}

// RenderPath draws path as a single line on a black width×height canvas.
//
// Each consecutive pair of points becomes one straight segment between the
// pixel centers, drawn with the stroke's color and width. A one-point path is
// drawn as a dot. Mask rows map to canvas Y and columns to canvas X.
func RenderPath(path mask.Path, width, height int, stroke Stroke) (image.Image, error) {
	stroke = stroke.withDefaults()
	c, err := ParseStrokeColor(stroke.Color)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(color.Black)
	dc.Clear()

	dc.SetColor(c)
	dc.SetLineWidth(stroke.Width)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()

	switch len(path) {
	case 0:
	case 1:
		x, y := pixelCenter(path[0])
		dc.DrawPoint(x, y, stroke.Width/2)
		dc.Fill()
	default:
		for _, seg := range path.Segments() {
			ax, ay := pixelCenter(seg.A)
			bx, by := pixelCenter(seg.B)
			dc.DrawLine(ax, ay, bx, by)
		}
		dc.Stroke()
	}

	return dc.Image(), nil
}

// RenderPathMask draws path with a white stroke and binarizes the result,
// giving the line drawing as a mask of the same size as the source.
func RenderPathMask(path mask.Path, width, height int, strokeWidth float64) (*mask.Mask, error) {
	img, err := RenderPath(path, width, height, Stroke{Color: DefaultStrokeColor, Width: strokeWidth})
	if err != nil {
		return nil, err
	}
	return mask.FromImage(img, mask.DefaultThreshold), nil
}

func pixelCenter(p mask.Point) (x, y float64) {
	return float64(p.Col) + 0.5, float64(p.Row) + 0.5
}
