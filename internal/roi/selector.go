// Package roi tracks the user's region-of-interest selection.
//
// A Selector holds at most one committed region, always in source-image
// coordinates. Drag feedback is computed in display coordinates on demand and
// never stored.
package roi

import (
	"image"

	"github.com/ironsheep/text-scanner/internal/imaging"
)

// Selector records a pointer drag and the committed region it produced.
type Selector struct {
	anchor   image.Point
	dragging bool
	active   *imaging.Region
}

// Begin records a provisional anchor in display coordinates. It does not
// touch the committed region.
func (s *Selector) Begin(p image.Point) {
	s.anchor = p
	s.dragging = true
}

// Dragging reports whether a drag is in progress.
func (s *Selector) Dragging() bool { return s.dragging }

// Update returns the normalized display-space rectangle between the anchor
// and p for live feedback. ok is false when no drag is in progress.
func (s *Selector) Update(p image.Point) (r imaging.Region, ok bool) {
	if !s.dragging {
		return imaging.Region{}, false
	}
	return imaging.RegionFromPoints(s.anchor, p), true
}

// Commit finishes the drag at p: both corners are mapped to source space,
// normalized, clamped to the image, and stored as the active region.
//
// A zero-area result (a click without a drag) is stored as-is; rejecting it
// is left to whoever consumes the region. ok is false when no drag was in
// progress, in which case nothing changes.
func (s *Selector) Commit(p image.Point, m *imaging.Mapper) (r imaging.Region, ok bool) {
	if !s.dragging {
		return imaging.Region{}, false
	}
	s.dragging = false

	size := m.SourceSize()
	r = imaging.RegionFromPoints(m.ToSource(s.anchor), m.ToSource(p)).Clamp(size.X, size.Y)
	s.active = &r
	return r, true
}

// Cancel abandons a drag in progress without touching the committed region.
func (s *Selector) Cancel() {
	s.dragging = false
}

// Set stores r as the active region directly, e.g. from a command-line flag.
func (s *Selector) Set(r imaging.Region) {
	r = r.Normalize()
	s.active = &r
}

// Clear removes the active region and abandons any drag in progress.
func (s *Selector) Clear() {
	s.active = nil
	s.dragging = false
}

// Current returns the active region, or ok=false when there is none.
func (s *Selector) Current() (r imaging.Region, ok bool) {
	if s.active == nil {
		return imaging.Region{}, false
	}
	return *s.active, true
}
