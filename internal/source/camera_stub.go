//go:build !gocv

package source

// OpenCamera fails with ErrCameraUnavailable. Build with -tags gocv for
// OpenCV capture support.
func OpenCamera(index int) (Device, error) {
	return nil, ErrCameraUnavailable
}
