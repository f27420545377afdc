package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// CropRegion extracts a source-space region from an image.
//
// The result is a new image whose bounds start at (0,0); coordinates inside
// it are region-local. The input image is not modified.
func CropRegion(img image.Image, r Region) (*image.NRGBA, error) {
	bounds := img.Bounds()

	if r.X1 < bounds.Min.X || r.Y1 < bounds.Min.Y || r.X2 > bounds.Max.X || r.Y2 > bounds.Max.Y {
		return nil, fmt.Errorf("crop region %s outside image bounds (%d,%d)-(%d,%d)",
			r, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if r.Empty() {
		return nil, fmt.Errorf("invalid crop region %s: x1 must be < x2, y1 must be < y2", r)
	}

	return imaging.Crop(img, r.Rect()), nil
}

// Clone returns a copy of img rebased to (0,0).
func Clone(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}

// Resize scales img to exactly width x height using Lanczos resampling.
func Resize(img image.Image, width, height int) *image.NRGBA {
	return imaging.Resize(img, width, height, imaging.Lanczos)
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// SavePNG writes img to path as PNG.
func SavePNG(path string, img image.Image) error {
	if err := imaging.Save(img, path, imaging.PNGCompressionLevel(png.DefaultCompression)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
