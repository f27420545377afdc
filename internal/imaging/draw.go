package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// LabelFace is the font used for overlay labels.
var LabelFace font.Face = basicfont.Face7x13

// ParseColor parses a hex colour such as "#FF0000", "FF0000" or "#F00".
func ParseColor(hex string) (color.RGBA, error) {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// DrawRect draws an unfilled rectangle outline of the given stroke width.
// The stroke is drawn inward from the region edges and clipped to dst.
func DrawRect(dst draw.Image, r Region, col color.Color, stroke int) {
	if stroke < 1 {
		stroke = 1
	}
	rect := r.Normalize().Rect().Intersect(dst.Bounds())
	if rect.Empty() {
		return
	}
	src := image.NewUniform(col)
	edges := []image.Rectangle{
		image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+stroke), // top
		image.Rect(rect.Min.X, rect.Max.Y-stroke, rect.Max.X, rect.Max.Y), // bottom
		image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+stroke, rect.Max.Y), // left
		image.Rect(rect.Max.X-stroke, rect.Min.Y, rect.Max.X, rect.Max.Y), // right
	}
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(rect), src, image.Point{}, draw.Src)
	}
}

// DrawLabel draws text with its baseline starting at (x, baseline).
func DrawLabel(dst draw.Image, x, baseline int, text string, col color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: LabelFace,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(text)
}

// LabelAscent returns the height of the label font above its baseline.
func LabelAscent() int {
	return LabelFace.Metrics().Ascent.Ceil()
}
