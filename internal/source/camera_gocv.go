//go:build gocv

package source

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// camera reads frames from an OpenCV VideoCapture.
type camera struct {
	vc  *gocv.VideoCapture
	mat gocv.Mat
}

// OpenCamera opens the capture device at index through OpenCV.
func OpenCamera(index int) (Device, error) {
	vc, err := gocv.OpenVideoCapture(index)
	if err != nil {
		return nil, fmt.Errorf("failed to open video capture: %w", err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, errors.New("video capture did not open")
	}
	return &camera{vc: vc, mat: gocv.NewMat()}, nil
}

// Read captures one frame and converts it from BGR to an RGBA image.
func (c *camera) Read() (image.Image, error) {
	if ok := c.vc.Read(&c.mat); !ok {
		return nil, errors.New("video capture read returned no frame")
	}
	if c.mat.Empty() {
		return nil, ErrEmptyFrame
	}
	img, err := c.mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert frame: %w", err)
	}
	return img, nil
}

func (c *camera) Close() error {
	matErr := c.mat.Close()
	vcErr := c.vc.Close()
	return errors.Join(matErr, vcErr)
}
