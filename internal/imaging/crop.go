package imaging

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// Crop extracts the rectangle spanned by (x1, y1) and (x2, y2).
//
// Coordinates are 0-based relative to the image's top-left corner. The
// corners may be given in either order: the result covers
// [min(x1,x2), max(x1,x2)) × [min(y1,y2), max(y1,y2)). The region is clipped
// to the image, and an error is returned when nothing remains.
//
// The returned image always has its origin at (0,0).
func Crop(img image.Image, x1, y1, x2, y2 int) (*image.NRGBA, error) {
	bounds := img.Bounds()
	r := image.Rect(x1, y1, x2, y2).Add(bounds.Min).Intersect(bounds)
	if r.Empty() {
		return nil, errors.Errorf("crop region (%d,%d)-(%d,%d) is empty within image bounds %dx%d",
			x1, y1, x2, y2, bounds.Dx(), bounds.Dy())
	}
	return imaging.Crop(img, r), nil
}
