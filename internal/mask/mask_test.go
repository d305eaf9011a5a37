package mask

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNew(t *testing.T) {
	m := New(4, 3)
	if m.Width != 4 || m.Height != 3 {
		t.Errorf("dimensions: got %dx%d, want 4x3", m.Width, m.Height)
	}
	if len(m.Pix) != 12 {
		t.Errorf("Pix length: got %d, want 12", len(m.Pix))
	}
	if m.Count() != 0 {
		t.Error("new mask should be empty")
	}

	if neg := New(-1, 5); neg.Width != 0 || len(neg.Pix) != 0 {
		t.Error("negative width should clamp to zero")
	}
}

func TestSetAt(t *testing.T) {
	m := New(5, 5)
	m.Set(1, 3, true)
	m.Set(10, 10, true) // ignored

	if !m.At(1, 3) {
		t.Error("(1,3) should be on")
	}
	if m.At(3, 1) {
		t.Error("(3,1) should be off")
	}
	if m.At(-1, 0) || m.At(0, 99) {
		t.Error("out-of-range cells should read as off")
	}
	if m.Pix[1*5+3] != On {
		t.Errorf("stored value: got %d, want %d", m.Pix[1*5+3], On)
	}

	m.Set(1, 3, false)
	if m.At(1, 3) {
		t.Error("(1,3) should be cleared")
	}
}

func TestPoints_ScanOrder(t *testing.T) {
	m := FromPoints(4, 4, Point{3, 0}, Point{0, 3}, Point{1, 1}, Point{0, 0})

	want := []Point{{0, 0}, {0, 3}, {1, 1}, {3, 0}}
	if diff := cmp.Diff(want, m.Points()); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestFromGray(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 3, 2))
	g.SetGray(0, 0, color.Gray{Y: 255})
	g.SetGray(2, 1, color.Gray{Y: 7})

	m := FromGray(g)

	want := []Point{{0, 0}, {1, 2}}
	if diff := cmp.Diff(want, m.Points()); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestFromImage_Threshold(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 1))
	img.Set(0, 0, color.White)
	img.Set(1, 0, color.RGBA{200, 200, 200, 255})
	img.Set(2, 0, color.RGBA{40, 40, 40, 255})
	img.Set(3, 0, color.Black)

	m := FromImage(img, DefaultThreshold)

	want := []Point{{0, 0}, {0, 1}}
	if diff := cmp.Diff(want, m.Points()); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestGrayAndInverted(t *testing.T) {
	m := FromPoints(2, 2, Point{0, 1})

	g := m.Gray()
	if g.GrayAt(1, 0).Y != 255 || g.GrayAt(0, 0).Y != 0 {
		t.Errorf("Gray: unexpected values %v", g.Pix)
	}

	inv := m.Inverted()
	if inv.GrayAt(1, 0).Y != 0 || inv.GrayAt(0, 0).Y != 255 {
		t.Errorf("Inverted: unexpected values %v", inv.Pix)
	}

	back := FromGray(g)
	if !back.Equal(m) {
		t.Error("FromGray(Gray()) should reproduce the mask")
	}
}

func TestEqual(t *testing.T) {
	a := FromPoints(3, 3, Point{1, 1})
	b := a.Clone()
	if !a.Equal(b) {
		t.Error("clone should be equal")
	}

	b.Set(0, 0, true)
	if a.Equal(b) {
		t.Error("masks with different on cells should differ")
	}
	if a.Equal(New(3, 4)) {
		t.Error("masks with different sizes should differ")
	}

	var nilMask *Mask
	if !nilMask.Equal(nil) {
		t.Error("nil masks should be equal")
	}
	if a.Equal(nil) {
		t.Error("mask should not equal nil")
	}
}
