package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
)

// Preprocess prepares an image for OCR: it converts to greyscale and then
// raises contrast by contrastPercent (-100..100, clamped).
//
// The result is a new image with the same size as img; img is not modified.
func Preprocess(img image.Image, contrastPercent float64) image.Image {
	if contrastPercent < -100 {
		contrastPercent = -100
	}
	if contrastPercent > 100 {
		contrastPercent = 100
	}
	gray := effect.Grayscale(img)
	if contrastPercent == 0 {
		return gray
	}
	return adjust.Contrast(gray, contrastPercent/100)
}
