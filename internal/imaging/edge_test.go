package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/line-trace-mcp/internal/mask"
)

func TestDetectEdges(t *testing.T) {
	// Black square on a white background.
	img := createEdgeTestImage(100, 100)

	edges := DetectEdges(img, DefaultLowThreshold, DefaultHighThreshold)

	if edges.Bounds() != image.Rect(0, 0, 100, 100) {
		t.Fatalf("bounds: got %v, want 100x100 at origin", edges.Bounds())
	}

	m := mask.FromGray(edges)
	if m.Count() == 0 {
		t.Fatal("expected edges around the square")
	}

	for _, v := range edges.Pix {
		if v != 0 && v != 255 {
			t.Fatalf("edge image should be binary, found value %d", v)
		}
	}
}

func TestDetectEdges_DifferentThresholds(t *testing.T) {
	img := createEdgeTestImage(50, 50)

	tests := []struct {
		name      string
		low, high int
	}{
		{"low thresholds", 10, 50},
		{"medium thresholds", 50, 150},
		{"high thresholds", 100, 200},
		{"swapped thresholds", 150, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edges := DetectEdges(img, tt.low, tt.high)
			if mask.FromGray(edges).Count() == 0 {
				t.Error("expected some edges for a high-contrast square")
			}
		})
	}
}

func TestDetectEdges_UniformImage(t *testing.T) {
	img := createInMemoryImage(50, 50, color.RGBA{128, 128, 128, 255})

	edges := DetectEdges(img, DefaultLowThreshold, DefaultHighThreshold)

	if n := mask.FromGray(edges).Count(); n != 0 {
		t.Errorf("uniform image should have no edges, got %d edge pixels", n)
	}
}

func TestDetectEdges_StrongEdge(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if x < 50 {
				img.Set(x, y, color.Black)
			} else {
				img.Set(x, y, color.White)
			}
		}
	}

	edges := DetectEdges(img, DefaultLowThreshold, DefaultHighThreshold)

	edgeFound := false
	for x := 47; x <= 52; x++ {
		if edges.GrayAt(x, 50).Y == 255 {
			edgeFound = true
			break
		}
	}
	if !edgeFound {
		t.Error("strong vertical edge was not detected")
	}

	// Far from the boundary there should be nothing.
	for _, x := range []int{10, 90} {
		if edges.GrayAt(x, 50).Y != 0 {
			t.Errorf("unexpected edge at x=%d", x)
		}
	}
}

func TestDetectEdges_OffsetBounds(t *testing.T) {
	src := createEdgeTestImage(60, 60).(*image.RGBA)
	sub := src.SubImage(image.Rect(10, 10, 50, 50))

	edges := DetectEdges(sub, DefaultLowThreshold, DefaultHighThreshold)

	if edges.Bounds() != image.Rect(0, 0, 40, 40) {
		t.Errorf("bounds: got %v, want origin-based 40x40", edges.Bounds())
	}
}

func TestDetectEdges_SmallImage(t *testing.T) {
	img := createInMemoryImage(5, 5, color.RGBA{128, 128, 128, 255})

	edges := DetectEdges(img, DefaultLowThreshold, DefaultHighThreshold)

	if edges.Bounds().Dx() != 5 || edges.Bounds().Dy() != 5 {
		t.Errorf("dimensions: got %dx%d, want 5x5", edges.Bounds().Dx(), edges.Bounds().Dy())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, want int
	}{
		{5, 0, 10, 5},   // within range
		{-1, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tt := range tests {
		got := clamp(tt.val, tt.min, tt.max)
		if got != tt.want {
			t.Errorf("clamp(%d, %d, %d): got %d, want %d",
				tt.val, tt.min, tt.max, got, tt.want)
		}
	}
}

// Helper functions

// createInMemoryImage creates a solid color image.
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createEdgeTestImage creates an image with a black rectangle on white background
// to create clear edges for testing
func createEdgeTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	// White background
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}

	// Black rectangle in center (creates 4 edges)
	for y := height / 4; y < 3*height/4; y++ {
		for x := width / 4; x < 3*width/4; x++ {
			img.Set(x, y, color.Black)
		}
	}

	return img
}
