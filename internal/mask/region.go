package mask

import "image"

// NormalizeRect builds the rectangle spanned by two corners given in any
// order: [min(x1,x2), max(x1,x2)) × [min(y1,y2), max(y1,y2)).
func NormalizeRect(x1, y1, x2, y2 int) image.Rectangle {
	// image.Rect already swaps reversed corners.
	return image.Rect(x1, y1, x2, y2)
}

// ClearRegion turns Off every cell of m inside the rectangle spanned by
// (x1, y1) and (x2, y2), where x is the column and y the row. Corners may
// be given in either order; the max edges are exclusive. The rectangle is
// clipped to the mask, and a zero-area rectangle leaves m untouched.
//
// m is modified in place and returned. A nil mask returns nil.
func ClearRegion(m *Mask, x1, y1, x2, y2 int) *Mask {
	if m == nil {
		return nil
	}
	r := NormalizeRect(x1, y1, x2, y2).Intersect(m.Bounds())
	if r.Empty() {
		return m
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := m.Pix[y*m.Width+r.Min.X : y*m.Width+r.Max.X]
		for i := range row {
			row[i] = Off
		}
	}
	return m
}
