package mask

import (
	"image"

	"github.com/anthonynsimon/bild/segment"
)

// Pixel values stored in a Mask.
const (
	Off uint8 = 0
	On  uint8 = 255
)

// DefaultThreshold is the gray level at or above which FromImage treats a
// pixel as On.
const DefaultThreshold uint8 = 128

// Mask is a binary grid of Height rows by Width columns.
//
// Pix holds one byte per cell in row-major order; every byte is Off or On.
// Operations never resize a Mask.
type Mask struct {
	Width  int
	Height int
	Pix    []uint8
}

// Point is a (row, col) coordinate inside a Mask.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// New returns an all-Off mask of the given size. Negative sizes are
// treated as zero.
func New(width, height int) *Mask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Mask{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// FromPoints returns a mask of the given size with exactly the listed
// points turned On. Points outside the mask are ignored.
func FromPoints(width, height int, pts ...Point) *Mask {
	m := New(width, height)
	for _, p := range pts {
		m.Set(p.Row, p.Col, true)
	}
	return m
}

// FromGray converts a grayscale image into a mask. Any non-zero pixel is
// On, which matches the 0/255 output of an edge detector.
func FromGray(g *image.Gray) *Mask {
	b := g.Bounds()
	m := New(b.Dx(), b.Dy())
	for y := 0; y < m.Height; y++ {
		row := g.Pix[y*g.Stride : y*g.Stride+m.Width]
		for x, v := range row {
			if v != 0 {
				m.Pix[y*m.Width+x] = On
			}
		}
	}
	return m
}

// FromImage binarizes an arbitrary image: pixels whose luminance is at or
// above level become On.
func FromImage(img image.Image, level uint8) *Mask {
	return FromGray(segment.Threshold(img, level))
}

// Gray returns the mask as a grayscale image with On pixels white.
func (m *Mask) Gray() *image.Gray {
	g := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	copy(g.Pix, m.Pix)
	return g
}

// Inverted returns the mask as a grayscale image with On pixels black on a
// white background, the convention bitmap tracers expect.
func (m *Mask) Inverted() *image.Gray {
	g := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for i, v := range m.Pix {
		g.Pix[i] = ^v
	}
	return g
}

// Bounds returns the mask extent in image coordinates (x = column,
// y = row).
func (m *Mask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

// In reports whether (row, col) is a valid index.
func (m *Mask) In(row, col int) bool {
	return row >= 0 && row < m.Height && col >= 0 && col < m.Width
}

// At reports whether the cell at (row, col) is On. Out-of-range cells
// are Off.
func (m *Mask) At(row, col int) bool {
	if !m.In(row, col) {
		return false
	}
	return m.Pix[row*m.Width+col] != Off
}

// Set turns the cell at (row, col) On or Off. Out-of-range cells are
// ignored.
func (m *Mask) Set(row, col int, on bool) {
	if !m.In(row, col) {
		return
	}
	v := Off
	if on {
		v = On
	}
	m.Pix[row*m.Width+col] = v
}

// Count returns the number of On cells.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Pix {
		if v != Off {
			n++
		}
	}
	return n
}

// Points returns every On cell in row-major scan order.
func (m *Mask) Points() []Point {
	pts := make([]Point, 0, m.Count())
	for i, v := range m.Pix {
		if v != Off {
			pts = append(pts, Point{Row: i / m.Width, Col: i % m.Width})
		}
	}
	return pts
}

// Clone returns a deep copy of the mask.
func (m *Mask) Clone() *Mask {
	c := &Mask{Width: m.Width, Height: m.Height, Pix: make([]uint8, len(m.Pix))}
	copy(c.Pix, m.Pix)
	return c
}

// Equal reports whether two masks have the same size and On cells.
func (m *Mask) Equal(o *Mask) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.Width != o.Width || m.Height != o.Height {
		return false
	}
	for i := range m.Pix {
		if (m.Pix[i] != Off) != (o.Pix[i] != Off) {
			return false
		}
	}
	return true
}
