package imaging

import (
	"image/color"
	"testing"
)

func TestPreprocess_Greyscale(t *testing.T) {
	img := createPatternImage(40, 40)
	out := Preprocess(img, 0)

	if out.Bounds().Dx() != 40 || out.Bounds().Dy() != 40 {
		t.Fatalf("dimensions: got %v, want 40x40", out.Bounds())
	}
	for _, p := range [][2]int{{5, 5}, {35, 5}, {5, 35}, {35, 35}} {
		r, g, b, _ := out.At(p[0], p[1]).RGBA()
		if r != g || g != b {
			t.Errorf("pixel %v not grey: (%d,%d,%d)", p, r>>8, g>>8, b>>8)
		}
	}
}

func TestPreprocess_DoesNotMutateInput(t *testing.T) {
	img := createInMemoryImage(10, 10, color.RGBA{200, 30, 30, 255})
	_ = Preprocess(img, 50)
	if img.RGBAAt(3, 3) != (color.RGBA{200, 30, 30, 255}) {
		t.Error("Preprocess modified its input")
	}
}
