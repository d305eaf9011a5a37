package imaging

import (
	"errors"
	"strings"
	"testing"

	"github.com/ironsheep/line-trace-mcp/internal/mask"
)

func TestTraceSVG(t *testing.T) {
	m := mask.New(30, 30)
	for r := 10; r < 20; r++ {
		for c := 10; c < 20; c++ {
			m.Set(r, c, true)
		}
	}

	svg, err := TraceSVG(m)
	if err != nil {
		t.Fatalf("TraceSVG failed: %v", err)
	}
	if !strings.Contains(svg, "<svg") {
		t.Errorf("output is not an svg document: %.80q", svg)
	}
	if !strings.Contains(svg, "<path") {
		t.Errorf("expected a traced path in %.200q", svg)
	}
}

func TestTraceSVG_EmptyMask(t *testing.T) {
	if _, err := TraceSVG(mask.New(10, 10)); err != nil {
		t.Errorf("TraceSVG on an empty mask: %v", err)
	}
}

func TestTraceSVG_NilMask(t *testing.T) {
	_, err := TraceSVG(nil)
	if !errors.Is(err, mask.ErrInvalidState) {
		t.Errorf("got %v, want ErrInvalidState", err)
	}
}
