package source

import (
	"context"
	"image"
)

// Device is a frame capture device such as a webcam.
type Device interface {
	// Read captures one frame.
	Read() (image.Image, error)

	// Close releases the device.
	Close() error
}

// Opener opens a capture device by index.
type Opener func(index int) (Device, error)

// Live produces an unbounded sequence of frames from a Device.
type Live struct {
	dev    Device
	index  int
	closed bool
}

// OpenLive opens device index with open. On failure nothing is left open.
func OpenLive(open Opener, index int) (*Live, error) {
	dev, err := open(index)
	if err != nil {
		return nil, &DeviceError{Op: "open", Index: index, Err: err}
	}
	return &Live{dev: dev, index: index}, nil
}

// Index returns the device index.
func (l *Live) Index() int { return l.index }

// Next reads one frame from the device.
func (l *Live) Next(ctx context.Context) (image.Image, error) {
	if l.closed {
		return nil, ErrDeviceClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	frame, err := l.dev.Read()
	if err != nil {
		return nil, &DeviceError{Op: "read", Index: l.index, Err: err}
	}
	if frame == nil || frame.Bounds().Empty() {
		return nil, &DeviceError{Op: "read", Index: l.index, Err: ErrEmptyFrame}
	}
	return frame, nil
}

// Close releases the device. Subsequent calls are no-ops.
func (l *Live) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	if err := l.dev.Close(); err != nil {
		return &DeviceError{Op: "close", Index: l.index, Err: err}
	}
	return nil
}
