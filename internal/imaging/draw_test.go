package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#FF0000", color.RGBA{255, 0, 0, 255}},
		{"00ff00", color.RGBA{0, 255, 0, 255}},
		{"#00F", color.RGBA{0, 0, 255, 255}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseColor_Invalid(t *testing.T) {
	for _, in := range []string{"", "#GG0000", "#12345"} {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("ParseColor(%q) should fail", in)
		}
	}
}

func TestDrawRect(t *testing.T) {
	img := createInMemoryImage(50, 50, color.White)
	red := color.RGBA{255, 0, 0, 255}

	DrawRect(img, Region{X1: 10, Y1: 10, X2: 40, Y2: 30}, red, 2)

	onStroke := []image.Point{{10, 10}, {11, 11}, {39, 29}, {38, 20}, {25, 10}, {25, 29}}
	for _, p := range onStroke {
		if img.RGBAAt(p.X, p.Y) != red {
			t.Errorf("pixel %v: want stroke colour", p)
		}
	}
	offStroke := []image.Point{{25, 20}, {12, 12}, {9, 9}, {40, 30}}
	for _, p := range offStroke {
		if img.RGBAAt(p.X, p.Y) == red {
			t.Errorf("pixel %v: should not be stroked", p)
		}
	}
}

func TestDrawRect_ClipsToImage(t *testing.T) {
	img := createInMemoryImage(20, 20, color.White)
	// Must not panic when the region extends past the image.
	DrawRect(img, Region{X1: -10, Y1: -10, X2: 100, Y2: 100}, color.Black, 1)
	if img.RGBAAt(0, 0) != (color.RGBA{0, 0, 0, 255}) {
		t.Error("clipped outline should cover the image edge")
	}
}

func TestDrawLabel(t *testing.T) {
	img := createInMemoryImage(80, 20, color.White)
	black := color.RGBA{0, 0, 0, 255}

	DrawLabel(img, 2, 14, "OCR", black)

	found := false
	for y := 0; y < 20 && !found; y++ {
		for x := 0; x < 80; x++ {
			if img.RGBAAt(x, y) == black {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("DrawLabel did not draw any pixels")
	}
	if LabelAscent() <= 0 {
		t.Errorf("LabelAscent: got %d, want > 0", LabelAscent())
	}
}
