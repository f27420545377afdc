package source

import (
	"context"
	"image"

	"github.com/ironsheep/text-scanner/internal/imaging"
)

// Still produces exactly one frame decoded from an image file.
type Still struct {
	path string
	info *imaging.ImageInfo
	done bool
}

// NewStill creates a source for the image at path. The file is not read
// until the first call to Next.
func NewStill(path string) *Still {
	return &Still{path: path}
}

// Next decodes and returns the image on the first successful call, and
// ErrExhausted afterwards. A decode failure does not exhaust the source.
func (s *Still) Next(ctx context.Context) (image.Image, error) {
	if s.done {
		return nil, ErrExhausted
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, info, err := imaging.Load(s.path)
	if err != nil {
		return nil, err
	}
	s.info = info
	s.done = true
	return img, nil
}

// Info returns metadata about the decoded image, or nil before a successful Next.
func (s *Still) Info() *imaging.ImageInfo { return s.info }

// Path returns the file the source reads.
func (s *Still) Path() string { return s.path }

// Close marks the source exhausted.
func (s *Still) Close() error {
	s.done = true
	return nil
}
