// Package session holds the scanner's working state and the operations a
// user can perform on it.
//
// A Session is not safe for concurrent use. It is owned by a single
// goroutine (see package app); the only work done elsewhere is the OCR call
// itself, which operates on the immutable snapshot carried by a Job.
package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ironsheep/text-scanner/internal/detection"
	"github.com/ironsheep/text-scanner/internal/imaging"
	"github.com/ironsheep/text-scanner/internal/logger"
	"github.com/ironsheep/text-scanner/internal/ocr"
	"github.com/ironsheep/text-scanner/internal/overlay"
	"github.com/ironsheep/text-scanner/internal/roi"
	"github.com/ironsheep/text-scanner/internal/source"
)

// Options configures a Session.
type Options struct {
	CanvasWidth  int
	CanvasHeight int
	CameraIndex  int

	// Preprocess converts OCR input to greyscale and applies Contrast
	// (a percentage, -100..100) before recognition.
	Preprocess bool
	Contrast   float64

	// SuggestMinScore is the score SuggestROI requires of a text block.
	// Zero means detection.DefaultMinScore.
	SuggestMinScore float64

	// Logger overrides the default component logger.
	Logger *zerolog.Logger
}

// Job is one pending text extraction.
type Job struct {
	ID         string
	Generation uint64

	// Region is the source-space area being recognized.
	Region imaging.Region

	// Image is a private copy of Region, safe to read from any goroutine.
	Image image.Image
}

// Session is the scanner's state: the current source image, the ROI, the
// last recognition and its text, and the live camera when running.
type Session struct {
	opts     Options
	open     source.Opener
	renderer *overlay.Renderer
	log      zerolog.Logger

	image      image.Image
	mapper     *imaging.Mapper
	generation uint64

	selector    roi.Selector
	recognition *overlay.Recognition
	text        string

	live    source.ImageSource
	pending *Job
}

// New creates an empty session. open is used by StartCamera.
func New(opts Options, open source.Opener, renderer *overlay.Renderer) *Session {
	s := &Session{
		opts:     opts,
		open:     open,
		renderer: renderer,
	}
	if opts.SuggestMinScore <= 0 {
		s.opts.SuggestMinScore = detection.DefaultMinScore
	}
	if opts.Logger != nil {
		s.log = *opts.Logger
	} else {
		s.log = logger.WithComponent("session")
	}
	return s
}

// Image returns the current source image, or nil.
func (s *Session) Image() image.Image { return s.image }

// Mapper returns the coordinate mapper for the current image, or nil.
func (s *Session) Mapper() *imaging.Mapper { return s.mapper }

// Generation increments every time the source image is replaced.
func (s *Session) Generation() uint64 { return s.generation }

// ROI returns the active region in source coordinates.
func (s *Session) ROI() (imaging.Region, bool) { return s.selector.Current() }

// Recognition returns the stored result of the last text extraction, or nil.
func (s *Session) Recognition() *overlay.Recognition { return s.recognition }

// Text returns the last extracted text.
func (s *Session) Text() string { return s.text }

// CameraRunning reports whether a live source is installed.
func (s *Session) CameraRunning() bool { return s.live != nil }

// Busy reports whether a text extraction is in flight.
func (s *Session) Busy() bool { return s.pending != nil }

// install replaces the source image. The image must have bounds at (0,0).
func (s *Session) install(img image.Image, m *imaging.Mapper) {
	s.image = img
	s.mapper = m
	s.generation++
}

// LoadStill decodes the image at path and makes it the source image. A
// running camera is released first; the ROI and word boxes are cleared.
// On failure nothing changes.
func (s *Session) LoadStill(ctx context.Context, path string) error {
	const op = "load image"

	still := source.NewStill(path)
	img, err := still.Next(ctx)
	if err != nil {
		return inputError(op, err)
	}
	m, err := imaging.MapperFor(img, s.opts.CanvasWidth, s.opts.CanvasHeight)
	if err != nil {
		return inputError(op, err)
	}

	if err := s.StopCamera(); err != nil {
		s.log.Warn().Err(err).Msg("Camera release failed while loading image")
	}
	s.install(img, m)
	s.selector.Clear()
	s.recognition = nil

	info := still.Info()
	s.log.Info().
		Str("path", path).
		Str("format", info.Format).
		Int("width", info.Width).
		Int("height", info.Height).
		Msg("Image loaded")
	return nil
}

// StartCamera opens the configured capture device. The ROI and word boxes
// are cleared; the current image stays until the first Tick. If the device
// cannot be opened nothing changes. Starting a running camera is a no-op.
func (s *Session) StartCamera() error {
	if s.live != nil {
		return nil
	}
	live, err := source.OpenLive(s.open, s.opts.CameraIndex)
	if err != nil {
		return deviceError("start camera", err)
	}
	s.live = live
	s.selector.Clear()
	s.recognition = nil
	s.log.Info().Int("device", s.opts.CameraIndex).Msg("Camera started")
	return nil
}

// StopCamera releases the capture device. The last frame stays as the
// source image. Stopping a stopped camera is a no-op.
func (s *Session) StopCamera() error {
	if s.live == nil {
		return nil
	}
	live := s.live
	s.live = nil
	s.log.Info().Int("device", s.opts.CameraIndex).Msg("Camera stopped")
	if err := live.Close(); err != nil {
		return deviceError("stop camera", err)
	}
	return nil
}

// Tick pulls one frame from the running camera and installs it. Word boxes
// are cleared because they describe the previous frame. A read failure
// releases the camera. Without a running camera Tick does nothing and
// reports false.
func (s *Session) Tick(ctx context.Context) (bool, error) {
	if s.live == nil {
		return false, nil
	}
	frame, err := s.live.Next(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false, err
		}
		if stopErr := s.StopCamera(); stopErr != nil {
			s.log.Warn().Err(stopErr).Msg("Camera release failed after read error")
		}
		return false, deviceError("camera read", err)
	}
	if b := frame.Bounds(); b.Min != (image.Point{}) {
		frame = imaging.Clone(frame)
	}
	m, err := imaging.MapperFor(frame, s.opts.CanvasWidth, s.opts.CanvasHeight)
	if err != nil {
		return false, deviceError("camera read", err)
	}
	if s.mapper != nil && m.SourceSize() != s.mapper.SourceSize() {
		// A resolution change invalidates a selection made on the old frames.
		s.selector.Clear()
	}
	s.install(frame, m)
	s.recognition = nil
	return true, nil
}

// Capture freezes the current camera frame by stopping the camera. The
// returned notice is a warning when the camera was not running.
func (s *Session) Capture() (Notice, error) {
	if s.live == nil {
		return Warning("camera is not running"), nil
	}
	if err := s.StopCamera(); err != nil {
		return Notice{}, err
	}
	if s.image == nil {
		return Warning("camera stopped before the first frame arrived"), nil
	}
	return Info("frame captured"), nil
}

// ClearROI removes the selection. Stored word boxes stay.
func (s *Session) ClearROI() {
	s.selector.Clear()
}

// SetROI installs a source-space selection directly.
func (s *Session) SetROI(r imaging.Region) {
	s.selector.Set(r)
}

// SuggestROI replaces the selection with the most text-like block of the
// current image. Without a candidate the selection is kept and a warning
// returned.
func (s *Session) SuggestROI() (Notice, error) {
	if s.image == nil {
		return Notice{}, inputError("suggest selection", ErrNoImage)
	}
	b, ok := detection.Best(s.image, s.opts.SuggestMinScore)
	if !ok {
		return Warning("no text region found"), nil
	}
	s.selector.Set(b.Region)
	s.log.Debug().Stringer("roi", b.Region).Float64("score", b.Score).Msg("Selection suggested")
	return Info("selection suggested"), nil
}

// Press starts a selection drag at a display-space point. It is ignored
// without an image.
func (s *Session) Press(p image.Point) bool {
	if s.mapper == nil {
		return false
	}
	s.selector.Begin(p)
	return true
}

// Drag returns the display-space rubber band for a drag in progress.
func (s *Session) Drag(p image.Point) (imaging.Region, bool) {
	if s.mapper == nil {
		return imaging.Region{}, false
	}
	return s.selector.Update(p)
}

// Release finishes a drag and stores the selection in source coordinates.
// A click without movement stores a zero-area selection, which text
// extraction later rejects.
func (s *Session) Release(p image.Point) (imaging.Region, bool) {
	if s.mapper == nil {
		s.selector.Cancel()
		return imaging.Region{}, false
	}
	r, ok := s.selector.Commit(p, s.mapper)
	if ok {
		s.log.Debug().Stringer("roi", r).Msg("Selection committed")
	}
	return r, ok
}

// PrepareOCR validates the request and snapshots the pixels to recognize:
// the ROI when one is set, the whole image otherwise. A running camera is
// stopped so the frame cannot change underneath the job. The session stays
// busy until CompleteOCR or FailOCR is called with the job.
func (s *Session) PrepareOCR() (*Job, error) {
	const op = "extract text"

	if s.pending != nil {
		return nil, inputError(op, ErrBusy)
	}
	if s.image == nil {
		return nil, inputError(op, ErrNoImage)
	}

	size := s.mapper.SourceSize()
	region := imaging.Region{X2: size.X, Y2: size.Y}
	if r, ok := s.selector.Current(); ok {
		region = r.Clamp(size.X, size.Y)
		if region.Empty() {
			return nil, inputError(op, fmt.Errorf("%w: %s", ErrInvalidROI, r))
		}
	}

	crop, err := imaging.CropRegion(s.image, region)
	if err != nil {
		return nil, inputError(op, err)
	}
	var img image.Image = crop
	if s.opts.Preprocess {
		img = imaging.Preprocess(crop, s.opts.Contrast)
	}

	if err := s.StopCamera(); err != nil {
		s.log.Warn().Err(err).Msg("Camera release failed before text extraction")
	}

	job := &Job{
		ID:         uuid.NewString(),
		Generation: s.generation,
		Region:     region,
		Image:      img,
	}
	s.pending = job
	jobLog := logger.WithJob(s.log, job.ID)
	jobLog.Debug().
		Stringer("region", region).
		Bool("preprocess", s.opts.Preprocess).
		Msg("Text extraction started")
	return job, nil
}

// CompleteOCR stores the result of job. It reports false, leaving state
// untouched, when job is not the one in flight or the source image was
// replaced since the job was prepared.
func (s *Session) CompleteOCR(job *Job, res *ocr.Result) bool {
	if !s.finish(job) {
		return false
	}
	l := logger.WithJob(s.log, job.ID)
	if job.Generation != s.generation {
		l.Debug().Msg("Discarding result for a replaced image")
		return false
	}
	if res == nil {
		res = &ocr.Result{}
	}
	s.recognition = &overlay.Recognition{
		Origin: job.Region.Origin(),
		Words:  res.Words,
		Text:   res.Text,
	}
	s.text = res.Text
	l.Info().Int("words", len(res.Words)).Int("chars", len(res.Text)).Msg("Text extraction finished")
	return true
}

// FailOCR ends job with err and returns the engine error to report. Image,
// ROI and the previous recognition are left as they were.
func (s *Session) FailOCR(job *Job, err error) error {
	s.finish(job)
	return engineError("extract text", err)
}

func (s *Session) finish(job *Job) bool {
	if job == nil || s.pending == nil || s.pending.ID != job.ID {
		return false
	}
	s.pending = nil
	return true
}

// SaveText writes the extracted text to path as UTF-8. Without text it
// returns a warning notice and writes nothing.
func (s *Session) SaveText(path string) (Notice, error) {
	if s.text == "" {
		return Warning("no text to save"), nil
	}
	if err := os.WriteFile(path, []byte(s.text), 0o644); err != nil {
		return Notice{}, inputError("save text", fmt.Errorf("failed to write %s: %w", path, err))
	}
	s.log.Info().Str("path", path).Int("bytes", len(s.text)).Msg("Text saved")
	return Info("text saved"), nil
}

// Render composes the display image for the current state.
func (s *Session) Render() (*image.NRGBA, error) {
	if s.image == nil {
		return nil, inputError("render", ErrNoImage)
	}
	var sel *imaging.Region
	if r, ok := s.selector.Current(); ok {
		sel = &r
	}
	return s.renderer.Render(s.image, s.mapper, sel, s.recognition), nil
}

// Close releases the camera.
func (s *Session) Close() error {
	return s.StopCamera()
}
