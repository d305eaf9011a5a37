package imaging

import (
	"bytes"
	"encoding/base64"
	"image"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// EncodedImage is an image encoded as base64 PNG for transport in a JSON
// result.
type EncodedImage struct {
	// Width of the image in pixels.
	Width int `json:"width"`

	// Height of the image in pixels.
	Height int `json:"height"`

	// ImageBase64 is the PNG-encoded image as standard base64.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png".
	MimeType string `json:"mime_type"`
}

// EncodePNG encodes img as a base64 PNG.
func EncodePNG(img image.Image) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, errors.Wrap(err, "failed to encode image")
	}
	return &EncodedImage{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// Save writes img to path. The format is chosen from the file extension
// (png, jpg/jpeg, gif, tif/tiff, bmp).
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return errors.Wrapf(err, "failed to save image to %s", path)
	}
	return nil
}
