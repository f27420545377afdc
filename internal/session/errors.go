package session

import (
	"errors"
	"fmt"

	"github.com/ironsheep/text-scanner/internal/ocr"
	"github.com/ironsheep/text-scanner/internal/source"
)

// Kind classifies a failure by what the user can do about it.
type Kind int

const (
	// KindInput covers bad paths, undecodable images and invalid selections.
	KindInput Kind = iota
	// KindDevice covers camera open and read failures.
	KindDevice
	// KindEngine covers OCR engine failures.
	KindEngine
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindDevice:
		return "device"
	case KindEngine:
		return "engine"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

var (
	// ErrNoImage is returned by operations that need a loaded or captured image.
	ErrNoImage = errors.New("no image loaded or captured")

	// ErrInvalidROI is returned when the selected region has no area inside the image.
	ErrInvalidROI = errors.New("invalid ROI selection")

	// ErrBusy is returned when text extraction is requested while one is running.
	ErrBusy = errors.New("text extraction already in progress")
)

// Error is a failed session operation.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func inputError(op string, err error) error {
	return &Error{Kind: KindInput, Op: op, Err: err}
}

func deviceError(op string, err error) error {
	return &Error{Kind: KindDevice, Op: op, Err: err}
}

func engineError(op string, err error) error {
	return &Error{Kind: KindEngine, Op: op, Err: err}
}

// KindOf classifies err. Errors that carry no classification are input errors.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	var de *source.DeviceError
	if errors.As(err, &de) {
		return KindDevice
	}
	var ee *ocr.EngineError
	if errors.As(err, &ee) || errors.Is(err, ocr.ErrUnavailable) {
		return KindEngine
	}
	return KindInput
}
