package mask

import (
	"image"
	"testing"
)

func TestClearRegion_ReversedCorners(t *testing.T) {
	m := FromPoints(20, 20, Point{5, 5})

	got := ClearRegion(m, 10, 10, 0, 0)

	if got != m {
		t.Error("ClearRegion should return the same mask it modified")
	}
	if m.At(5, 5) {
		t.Error("(5,5) should be cleared by rectangle (10,10)-(0,0)")
	}
}

func TestClearRegion_ExclusiveMaxEdges(t *testing.T) {
	m := FromPoints(10, 10, Point{2, 2}, Point{4, 4}, Point{4, 2}, Point{2, 4})

	// x in [2,4), y in [2,4): only (2,2) is inside.
	ClearRegion(m, 2, 2, 4, 4)

	if m.At(2, 2) {
		t.Error("(2,2) should be cleared")
	}
	for _, p := range []Point{{4, 4}, {4, 2}, {2, 4}} {
		if !m.At(p.Row, p.Col) {
			t.Errorf("%v lies on an exclusive edge and should stay on", p)
		}
	}
}

func TestClearRegion_XIsColumn(t *testing.T) {
	m := FromPoints(10, 10, Point{Row: 1, Col: 7}, Point{Row: 7, Col: 1})

	// x in [6,9), y in [0,3) covers row 1, col 7.
	ClearRegion(m, 6, 0, 9, 3)

	if m.At(1, 7) {
		t.Error("(row 1, col 7) should be cleared")
	}
	if !m.At(7, 1) {
		t.Error("(row 7, col 1) is outside the rectangle and should stay on")
	}
}

func TestClearRegion_Degenerate(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 int
	}{
		{"zero width", 3, 0, 3, 10},
		{"zero height", 0, 3, 10, 3},
		{"single point", 3, 3, 3, 3},
		{"fully outside", 50, 50, 60, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := FromPoints(10, 10, Point{3, 3}, Point{0, 0})
			before := m.Clone()

			ClearRegion(m, tt.x1, tt.y1, tt.x2, tt.y2)

			if !m.Equal(before) {
				t.Error("degenerate rectangle should leave the mask unchanged")
			}
		})
	}
}

func TestClearRegion_ClipsToBounds(t *testing.T) {
	m := FromPoints(5, 5, Point{0, 0}, Point{4, 4})

	ClearRegion(m, -10, -10, 100, 100)

	if m.Count() != 0 {
		t.Errorf("oversized rectangle should clear everything, %d left", m.Count())
	}
}

func TestClearRegion_NilMask(t *testing.T) {
	if got := ClearRegion(nil, 0, 0, 5, 5); got != nil {
		t.Error("nil mask should stay nil")
	}
}

func TestNormalizeRect(t *testing.T) {
	got := NormalizeRect(10, 2, 1, 8)
	want := image.Rect(1, 2, 10, 8)
	if got != want {
		t.Errorf("NormalizeRect: got %v, want %v", got, want)
	}
}
