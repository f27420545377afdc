// Package source supplies frames to the scanner.
//
// Two producers implement ImageSource: Still decodes one image file and is
// then exhausted; Live pulls frames from a capture device until closed. The
// caller drives both by calling Next, so a Live source only reads from its
// device when asked, e.g. on a timer tick.
package source

import (
	"context"
	"errors"
	"fmt"
	"image"
)

var (
	// ErrExhausted is returned by Next once a source has no more frames.
	// It is end-of-stream, not a failure.
	ErrExhausted = errors.New("source exhausted")

	// ErrDeviceClosed is returned by Next after a live source was closed.
	ErrDeviceClosed = errors.New("capture device closed")

	// ErrEmptyFrame is returned when a device read succeeds but yields no pixels.
	ErrEmptyFrame = errors.New("capture device returned an empty frame")

	// ErrCameraUnavailable is returned by OpenCamera when no camera backend is
	// compiled in.
	ErrCameraUnavailable = errors.New("camera support not available (build with -tags gocv)")
)

// ImageSource produces source images.
type ImageSource interface {
	// Next returns the next frame. It returns ErrExhausted at end of stream
	// and a *DeviceError when a device read fails.
	Next(ctx context.Context) (image.Image, error)

	// Close releases any underlying resources. It is safe to call twice.
	Close() error
}

// DeviceError reports a failure of a capture device.
type DeviceError struct {
	Op    string
	Index int
	Err   error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("camera %d: %s failed: %v", e.Index, e.Op, e.Err)
}

func (e *DeviceError) Unwrap() error { return e.Err }
