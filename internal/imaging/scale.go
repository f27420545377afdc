package imaging

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// ErrNoDimensions is returned when a mapping is requested for an image or
// canvas with a zero or negative dimension.
var ErrNoDimensions = errors.New("image and canvas dimensions must be positive")

// ScaleFactors is the per-axis ratio displaySize / sourceSize.
type ScaleFactors struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FitScale returns the largest uniform scale at which an image of size
// (width, height) fits inside a canvas of size (canvasWidth, canvasHeight)
// while preserving its aspect ratio:
//
//	scale = min(canvasWidth/width, canvasHeight/height)
//
// Images smaller than the canvas are scaled up.
func FitScale(width, height, canvasWidth, canvasHeight int) (float64, error) {
	if width <= 0 || height <= 0 || canvasWidth <= 0 || canvasHeight <= 0 {
		return 0, fmt.Errorf("%w: image %dx%d, canvas %dx%d",
			ErrNoDimensions, width, height, canvasWidth, canvasHeight)
	}
	return math.Min(float64(canvasWidth)/float64(width), float64(canvasHeight)/float64(height)), nil
}

// Mapper converts points between source space and display space for one
// image/canvas pair.
//
// The display size is the source size multiplied by the fit scale and
// truncated. Conversions use that truncated size, so ToSource divides by
// the effective scale factor and ToDisplay multiplies by it, both truncating
// toward zero.
type Mapper struct {
	source  image.Point
	display image.Point
}

// NewMapper creates a Mapper for an image of the given size shown on a
// canvas of the given size.
func NewMapper(width, height, canvasWidth, canvasHeight int) (*Mapper, error) {
	scale, err := FitScale(width, height, canvasWidth, canvasHeight)
	if err != nil {
		return nil, err
	}
	// The epsilon keeps an exact fit (e.g. 3 * 1/3) from truncating one short;
	// the clamp keeps it from overflowing the canvas.
	dw := int(float64(width)*scale + 1e-9)
	dh := int(float64(height)*scale + 1e-9)
	dw = clampInt(dw, 1, canvasWidth)
	dh = clampInt(dh, 1, canvasHeight)
	return &Mapper{
		source:  image.Pt(width, height),
		display: image.Pt(dw, dh),
	}, nil
}

// MapperFor creates a Mapper for img on the given canvas.
func MapperFor(img image.Image, canvasWidth, canvasHeight int) (*Mapper, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: no image", ErrNoDimensions)
	}
	b := img.Bounds()
	return NewMapper(b.Dx(), b.Dy(), canvasWidth, canvasHeight)
}

// SourceSize returns the source image size.
func (m *Mapper) SourceSize() image.Point { return m.source }

// DisplaySize returns the scaled display image size.
func (m *Mapper) DisplaySize() image.Point { return m.display }

// Scale returns the effective per-axis scale factors.
func (m *Mapper) Scale() ScaleFactors {
	return ScaleFactors{
		X: float64(m.display.X) / float64(m.source.X),
		Y: float64(m.display.Y) / float64(m.source.Y),
	}
}

// ToSource maps a display-space point to source space.
func (m *Mapper) ToSource(p image.Point) image.Point {
	return image.Pt(
		p.X*m.source.X/m.display.X,
		p.Y*m.source.Y/m.display.Y,
	)
}

// ToDisplay maps a source-space point to display space.
func (m *Mapper) ToDisplay(p image.Point) image.Point {
	return image.Pt(
		p.X*m.display.X/m.source.X,
		p.Y*m.display.Y/m.source.Y,
	)
}

// RegionToDisplay maps both corners of a source-space region to display space.
func (m *Mapper) RegionToDisplay(r Region) Region {
	a := m.ToDisplay(image.Pt(r.X1, r.Y1))
	b := m.ToDisplay(image.Pt(r.X2, r.Y2))
	return RegionFromPoints(a, b)
}

// RegionToSource maps both corners of a display-space region to source space.
func (m *Mapper) RegionToSource(r Region) Region {
	a := m.ToSource(image.Pt(r.X1, r.Y1))
	b := m.ToSource(image.Pt(r.X2, r.Y2))
	return RegionFromPoints(a, b)
}

// RoundTripTolerance returns the largest per-axis difference between p and
// ToDisplay(ToSource(p)).
//
// It is 1 when the display is not larger than the source. When the image is
// scaled up, one source pixel covers several display pixels and the
// tolerance grows to that span.
func (m *Mapper) RoundTripTolerance() int {
	tol := 1
	for _, span := range []int{
		ceilDiv(m.display.X, m.source.X),
		ceilDiv(m.display.Y, m.source.Y),
	} {
		if span > tol {
			tol = span
		}
	}
	return tol
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
