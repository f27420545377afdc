package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp" // Register BMP format decoder
)

// SupportedExtensions lists the file extensions Load accepts.
var SupportedExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".gif"}

// ErrUnsupportedFormat is returned for files whose extension is not in
// SupportedExtensions.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// IsSupported reports whether path has a supported image extension.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// ImageInfo contains metadata about a decoded image file.
type ImageInfo struct {
	// Path is the file the image was decoded from.
	Path string `json:"path"`

	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the format name reported by the decoder: "png", "jpeg", "gif" or "bmp".
	Format string `json:"format"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Load opens and decodes an image file.
//
// The returned image always has its bounds rebased to start at (0,0) so that
// source-space coordinates and pixel coordinates coincide.
//
// # Errors
//
//   - Returns ErrUnsupportedFormat if the extension is not supported
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file contents cannot be decoded
//   - Returns error if the decoded image has no pixels
func Load(path string) (image.Image, *ImageInfo, error) {
	if path == "" {
		return nil, nil, errors.New("empty image path")
	}
	if !IsSupported(path) {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, nil, fmt.Errorf("decoded image %s has no pixels", path)
	}
	if bounds.Min != (image.Point{}) {
		img = Clone(img)
	}

	return img, &ImageInfo{
		Path:          path,
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		FileSizeBytes: stat.Size(),
	}, nil
}
