package ocr

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
)

// DefaultLanguage is the Tesseract language code used when none is configured.
const DefaultLanguage = "eng"

// ErrUnavailable is returned when no OCR engine is compiled into the binary.
var ErrUnavailable = errors.New("OCR engine not available (build with -tags tesseract)")

// Word is a single recognized word.
type Word struct {
	// Text is the recognized text content.
	Text string `json:"text"`

	// Confidence is the engine's certainty, 0 to 100.
	Confidence int `json:"confidence"`

	// Bounds is the word's bounding box in the coordinate space of the
	// image passed to the recognizer.
	Bounds image.Rectangle `json:"bounds"`
}

// Result contains the complete output of one recognition call.
type Result struct {
	// Text is all recognized text with the engine's spacing and newlines.
	Text string `json:"text"`

	// Words contains individual words with bounding boxes and confidences.
	Words []Word `json:"words"`
}

// Confident returns the words whose confidence is strictly greater than threshold.
func (r *Result) Confident(threshold int) []Word {
	if r == nil {
		return nil
	}
	out := make([]Word, 0, len(r.Words))
	for _, w := range r.Words {
		if w.Confidence > threshold {
			out = append(out, w)
		}
	}
	return out
}

// Recognizer extracts text from an image.
//
// Recognize must not retain or modify img. It returns an *EngineError (or
// ErrUnavailable) on failure and a non-nil Result otherwise.
type Recognizer interface {
	Recognize(ctx context.Context, img image.Image) (*Result, error)
}

// Options configures an engine.
type Options struct {
	// Language is the Tesseract language code, e.g. "eng".
	Language string

	// TessdataPrefix overrides the directory Tesseract loads language data
	// from. Empty uses the engine default.
	TessdataPrefix string
}

// EngineError reports a failure inside the OCR engine.
type EngineError struct {
	Op  string
	Err error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("OCR %s failed: %v", e.Op, e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }

// EngineInfo describes the compiled-in OCR engine.
type EngineInfo struct {
	Available bool   `json:"available"`
	Backend   string `json:"backend"`
	Version   string `json:"version,omitempty"`
	Error     string `json:"error,omitempty"`
}

// normalizeConfidence truncates an engine confidence to an integer in 0..100.
// Negative values (Tesseract uses -1 for non-word levels) become 0.
func normalizeConfidence(c float64) int {
	if math.IsNaN(c) || c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return int(c)
}
