//go:build !tesseract

package ocr

import (
	"context"
	"image"
)

type unavailable struct{}

// New returns a recognizer that always fails with ErrUnavailable. Build with
// -tags tesseract for the real engine.
func New(opts Options) Recognizer {
	return unavailable{}
}

func (unavailable) Recognize(ctx context.Context, img image.Image) (*Result, error) {
	return nil, ErrUnavailable
}

// Info reports that no engine is compiled in.
func Info() EngineInfo {
	return EngineInfo{Available: false, Backend: "none", Error: ErrUnavailable.Error()}
}
