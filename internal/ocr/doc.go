// Package ocr defines the boundary between the text scanner and its Optical
// Character Recognition (OCR) engine.
//
// The scanner never depends on a particular engine. It hands a Recognizer an
// image (either a region-of-interest crop or the whole source image) and gets
// back the plain text plus a list of words with confidences and bounding
// boxes in the coordinate space of the image it passed in.
//
// # Engines
//
// The Tesseract engine (via gosseract/v2) is compiled in with the
// "tesseract" build tag:
//
//	go build -tags tesseract ./...
//
// Tesseract must be installed on the system together with the language data
// for the configured language:
//   - Ubuntu/Debian: apt-get install libtesseract-dev tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// Without the tag, New returns a recognizer that fails every call with
// ErrUnavailable, so the rest of the scanner builds and runs without cgo.
//
// # Confidence
//
// Word confidences are integers from 0 to 100, as reported by the engine.
// Filtering by confidence is left to the caller; see Result.Confident.
//
// # Error Handling
//
// An engine failure is reported as an *EngineError wrapping the engine's
// message. An image with no recognizable text is not an error: the Result
// has empty Text and no Words.
package ocr
