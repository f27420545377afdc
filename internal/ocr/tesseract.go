//go:build tesseract

package ocr

import (
	"context"
	"image"

	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/text-scanner/internal/imaging"
)

// Tesseract recognizes text with the Tesseract engine through gosseract.
//
// Each call creates and closes its own gosseract client, so a Tesseract value
// is safe for concurrent use.
type Tesseract struct {
	opts Options
}

// New returns the Tesseract recognizer.
func New(opts Options) Recognizer {
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	return &Tesseract{opts: opts}
}

// Recognize runs OCR over img.
//
// The image is encoded as PNG (RGBA channel order) and passed to Tesseract
// from memory. Word boxes come from the RIL_WORD iterator level and are in
// img's coordinate space. If word-level box extraction fails, the full text
// is still returned with no words.
//
// gosseract offers no cancellation; ctx is only checked before the engine
// is invoked.
func (t *Tesseract) Recognize(ctx context.Context, img image.Image) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := imaging.EncodePNG(img)
	if err != nil {
		return nil, &EngineError{Op: "encode", Err: err}
	}

	client := gosseract.NewClient()
	defer client.Close()

	if t.opts.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(t.opts.TessdataPrefix); err != nil {
			return nil, &EngineError{Op: "set tessdata path", Err: err}
		}
	}

	if err := client.SetLanguage(t.opts.Language); err != nil {
		return nil, &EngineError{Op: "set language", Err: err}
	}

	if err := client.SetImageFromBytes(data); err != nil {
		return nil, &EngineError{Op: "set image", Err: err}
	}

	text, err := client.Text()
	if err != nil {
		return nil, &EngineError{Op: "recognition", Err: err}
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		// Return just text if boxes fail
		return &Result{Text: text, Words: []Word{}}, nil
	}

	words := make([]Word, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		words = append(words, Word{
			Text:       box.Word,
			Confidence: normalizeConfidence(box.Confidence),
			Bounds:     box.Box,
		})
	}

	return &Result{Text: text, Words: words}, nil
}

// Info reports the Tesseract version.
func Info() EngineInfo {
	client := gosseract.NewClient()
	defer client.Close()

	version := client.Version()
	if version == "" {
		return EngineInfo{
			Available: false,
			Backend:   "gosseract",
			Error:     "tesseract did not report a version",
		}
	}
	return EngineInfo{Available: true, Backend: "gosseract", Version: version}
}
