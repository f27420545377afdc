// Package overlay composes the display image: the scaled source image, word
// boxes from the last recognition, and the ROI outline.
//
// Annotations are never written into the source image. Every call to Render
// starts from a fresh scaled copy, so repeated recognitions do not accumulate.
package overlay

import (
	"image"
	"image/color"

	"github.com/ironsheep/text-scanner/internal/imaging"
	"github.com/ironsheep/text-scanner/internal/ocr"
)

// DefaultMinConfidence is the threshold a word's confidence must exceed to be drawn.
const DefaultMinConfidence = 60

// labelGap is the distance in pixels between a label baseline and its box.
const labelGap = 3

// Recognition is the stored outcome of one OCR run.
type Recognition struct {
	// Origin is the source-space position of the image passed to the engine:
	// the ROI top-left corner, or (0,0) for a full-image run.
	Origin image.Point
	Words  []ocr.Word
	Text   string
}

// SourceBounds returns the word's bounding box in source-image coordinates.
func (r *Recognition) SourceBounds(w ocr.Word) imaging.Region {
	return imaging.RegionFromRect(w.Bounds).Offset(r.Origin)
}

// Options controls how overlays are drawn.
type Options struct {
	ROIColor      color.Color
	WordColor     color.Color
	StrokeWidth   int
	MinConfidence int
	Labels        bool
}

// DefaultOptions returns red ROI outlines, green word boxes, a 2 px stroke,
// and labels enabled.
func DefaultOptions() Options {
	return Options{
		ROIColor:      color.RGBA{R: 255, A: 255},
		WordColor:     color.RGBA{G: 255, A: 255},
		StrokeWidth:   2,
		MinConfidence: DefaultMinConfidence,
		Labels:        true,
	}
}

// Renderer draws display images. It holds no per-image state and is safe for
// concurrent use.
type Renderer struct {
	opts Options
}

// New creates a Renderer. Zero-valued fields of opts take their defaults.
func New(opts Options) *Renderer {
	def := DefaultOptions()
	if opts.ROIColor == nil {
		opts.ROIColor = def.ROIColor
	}
	if opts.WordColor == nil {
		opts.WordColor = def.WordColor
	}
	if opts.StrokeWidth < 1 {
		opts.StrokeWidth = def.StrokeWidth
	}
	return &Renderer{opts: opts}
}

// Options returns the options in effect.
func (r *Renderer) Options() Options { return r.opts }

// Render produces the display image for src at the mapper's display size.
// roi and rec are optional. Word boxes whose confidence does not exceed the
// threshold are skipped; the ROI outline is drawn last. Inputs are not modified.
func (r *Renderer) Render(src image.Image, m *imaging.Mapper, roi *imaging.Region, rec *Recognition) *image.NRGBA {
	size := m.DisplaySize()
	var out *image.NRGBA
	if size == m.SourceSize() {
		out = imaging.Clone(src)
	} else {
		out = imaging.Resize(src, size.X, size.Y)
	}

	if rec != nil {
		for _, w := range r.Visible(rec) {
			box := m.RegionToDisplay(rec.SourceBounds(w))
			imaging.DrawRect(out, box, r.opts.WordColor, r.opts.StrokeWidth)
			if r.opts.Labels {
				r.drawLabel(out, box, w.Text)
			}
		}
	}

	if roi != nil {
		imaging.DrawRect(out, m.RegionToDisplay(*roi), r.opts.ROIColor, r.opts.StrokeWidth)
	}
	return out
}

// Visible returns the words that Render draws.
func (r *Renderer) Visible(rec *Recognition) []ocr.Word {
	res := ocr.Result{Words: rec.Words}
	return res.Confident(r.opts.MinConfidence)
}

// drawLabel places text above box, or just inside its top edge when there is
// no room above.
func (r *Renderer) drawLabel(dst *image.NRGBA, box imaging.Region, text string) {
	if text == "" {
		return
	}
	ascent := imaging.LabelAscent()
	baseline := box.Y1 - labelGap
	if baseline-ascent < dst.Bounds().Min.Y {
		baseline = box.Y1 + r.opts.StrokeWidth + ascent
	}
	imaging.DrawLabel(dst, box.X1, baseline, text, r.opts.WordColor)
}
