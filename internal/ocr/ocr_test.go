package ocr

import (
	"errors"
	"fmt"
	"image"
	"math"
	"testing"
)

func TestResult_Confident(t *testing.T) {
	r := &Result{
		Text: "alpha beta gamma delta",
		Words: []Word{
			{Text: "alpha", Confidence: 95, Bounds: image.Rect(0, 0, 10, 10)},
			{Text: "beta", Confidence: 60, Bounds: image.Rect(10, 0, 20, 10)},
			{Text: "gamma", Confidence: 61, Bounds: image.Rect(20, 0, 30, 10)},
			{Text: "delta", Confidence: 0, Bounds: image.Rect(30, 0, 40, 10)},
		},
	}

	got := r.Confident(60)
	if len(got) != 2 {
		t.Fatalf("Confident(60): got %d words, want 2", len(got))
	}
	if got[0].Text != "alpha" || got[1].Text != "gamma" {
		t.Errorf("Confident(60): got %q, %q; want alpha, gamma", got[0].Text, got[1].Text)
	}
}

func TestResult_Confident_Nil(t *testing.T) {
	var r *Result
	if got := r.Confident(60); got != nil {
		t.Errorf("nil result: got %v, want nil", got)
	}
}

func TestNormalizeConfidence(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{-1, 0},
		{0, 0},
		{60.9, 60},
		{96.4, 96},
		{100, 100},
		{140, 100},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := normalizeConfidence(tt.in); got != tt.want {
			t.Errorf("normalizeConfidence(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestEngineError(t *testing.T) {
	cause := errors.New("tessdata not found")
	err := fmt.Errorf("recognize: %w", &EngineError{Op: "set language", Err: cause})

	var engErr *EngineError
	if !errors.As(err, &engErr) {
		t.Fatal("errors.As should find *EngineError")
	}
	if engErr.Op != "set language" {
		t.Errorf("Op: got %q, want %q", engErr.Op, "set language")
	}
	if !errors.Is(err, cause) {
		t.Error("EngineError should unwrap to its cause")
	}
	if got := engErr.Error(); got != "OCR set language failed: tessdata not found" {
		t.Errorf("Error(): got %q", got)
	}
}
