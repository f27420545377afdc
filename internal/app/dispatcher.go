// Package app turns user actions into session operations.
//
// Every action is a Command value sent to a Dispatcher. The dispatcher's Run
// loop is the only goroutine that touches the Session: it handles commands
// one at a time, drives the camera from a ticker while the camera runs, and
// reports results through a View. Text recognition runs on its own goroutine
// and its result comes back to the loop as an internal command.
package app

import (
	"context"
	"errors"
	"image"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ironsheep/text-scanner/internal/logger"
	"github.com/ironsheep/text-scanner/internal/ocr"
	"github.com/ironsheep/text-scanner/internal/session"
)

// ErrStopped is returned by Send after Run has returned.
var ErrStopped = errors.New("dispatcher stopped")

const defaultQueueSize = 16

// Options configures a Dispatcher.
type Options struct {
	// CameraInterval is the time between camera frames. Defaults to 30ms.
	CameraInterval time.Duration

	// QueueSize is the command buffer length. Defaults to 16.
	QueueSize int

	// Logger overrides the default component logger.
	Logger *zerolog.Logger
}

// Dispatcher serializes commands against one Session.
type Dispatcher struct {
	s        *session.Session
	rec      ocr.Recognizer
	view     View
	interval time.Duration
	log      zerolog.Logger

	cmds   chan Command
	done   chan struct{}
	ticker *time.Ticker
	wg     sync.WaitGroup
}

// New creates a dispatcher. It takes ownership of s.
func New(s *session.Session, rec ocr.Recognizer, view View, opts Options) *Dispatcher {
	if opts.CameraInterval <= 0 {
		opts.CameraInterval = 30 * time.Millisecond
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}
	d := &Dispatcher{
		s:        s,
		rec:      rec,
		view:     view,
		interval: opts.CameraInterval,
		cmds:     make(chan Command, opts.QueueSize),
		done:     make(chan struct{}),
	}
	if opts.Logger != nil {
		d.log = *opts.Logger
	} else {
		d.log = logger.WithComponent("app")
	}
	return d
}

// Send queues cmd for the Run loop.
func (d *Dispatcher) Send(ctx context.Context, cmd Command) error {
	select {
	case <-d.done:
		return ErrStopped
	default:
	}
	select {
	case d.cmds <- cmd:
		return nil
	case <-d.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed when Run returns.
func (d *Dispatcher) Done() <-chan struct{} { return d.done }

// Run handles commands until Quit is received or ctx is cancelled. On return
// the camera is released and any recognition still running has finished.
func (d *Dispatcher) Run(ctx context.Context) error {
	defer close(d.done)
	defer d.closeSession()
	defer d.wg.Wait()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	d.log.Debug().Msg("Dispatcher started")
	for {
		var tick <-chan time.Time
		if d.ticker != nil {
			tick = d.ticker.C
		}

		select {
		case <-ctx.Done():
			d.log.Debug().Msg("Dispatcher cancelled")
			return ctx.Err()
		case cmd := <-d.cmds:
			if !d.Handle(runCtx, cmd) {
				d.log.Debug().Msg("Dispatcher quit")
				return nil
			}
		case <-tick:
			d.Handle(runCtx, cameraTick{})
		}
	}
}

func (d *Dispatcher) closeSession() {
	d.stopTicker()
	if err := d.s.Close(); err != nil {
		d.log.Warn().Err(err).Msg("Failed to release camera")
	}
}

// Handle executes one command against the session and reports false for
// Quit. Only the goroutine owning the session may call it; Run does so for
// every queued command. A recognition started by ExtractText posts its
// result back to the command queue.
func (d *Dispatcher) Handle(ctx context.Context, cmd Command) bool {
	if _, ok := cmd.(cameraTick); !ok {
		d.log.Debug().Str("command", Name(cmd)).Msg("Dispatching command")
	}
	defer d.syncTicker()

	switch c := cmd.(type) {
	case LoadImage:
		if err := d.s.LoadStill(ctx, c.Path); err != nil {
			d.fail("load image", err)
			return true
		}
		d.view.ShowSelection(image.Rectangle{}, false)
		d.showFrame()

	case StartCamera:
		if err := d.s.StartCamera(); err != nil {
			d.fail("start camera", err)
			return true
		}
		d.view.ShowSelection(image.Rectangle{}, false)
		if d.s.Image() != nil {
			d.showFrame()
		}

	case StopCamera:
		if err := d.s.StopCamera(); err != nil {
			d.fail("stop camera", err)
		}

	case CaptureFrame:
		n, err := d.s.Capture()
		if err != nil {
			d.fail("capture frame", err)
			return true
		}
		d.view.Notify(n)
		if d.s.Image() != nil {
			d.showFrame()
		}

	case cameraTick:
		ok, err := d.s.Tick(ctx)
		if err != nil {
			if ctx.Err() == nil {
				d.fail("camera read", err)
			}
			return true
		}
		if ok {
			d.showFrame()
		}

	case ClearROI:
		d.s.ClearROI()
		d.view.ShowSelection(image.Rectangle{}, false)
		if d.s.Image() != nil {
			d.showFrame()
		}

	case SuggestROI:
		n, err := d.s.SuggestROI()
		if err != nil {
			d.fail("suggest selection", err)
			return true
		}
		d.view.Notify(n)
		d.showFrame()

	case PointerPress:
		if d.s.Press(c.Point) {
			d.view.ShowSelection(image.Rectangle{Min: c.Point, Max: c.Point}, true)
		}

	case PointerMove:
		if r, ok := d.s.Drag(c.Point); ok {
			d.view.ShowSelection(r.Rect(), true)
		}

	case PointerRelease:
		_, ok := d.s.Release(c.Point)
		d.view.ShowSelection(image.Rectangle{}, false)
		if ok {
			d.showFrame()
		}

	case ExtractText:
		d.startRecognition(ctx)

	case ocrDone:
		d.finishRecognition(c)

	case SaveText:
		n, err := d.s.SaveText(c.Path)
		if err != nil {
			d.fail("save text", err)
			return true
		}
		d.view.Notify(n)

	case Quit:
		return false

	default:
		d.log.Warn().Str("command", Name(cmd)).Msg("Unhandled command")
	}
	return true
}

func (d *Dispatcher) startRecognition(ctx context.Context) {
	job, err := d.s.PrepareOCR()
	if err != nil {
		d.fail("extract text", err)
		return
	}
	d.view.SetBusy(true)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		res, err := d.rec.Recognize(ctx, job.Image)
		select {
		case d.cmds <- ocrDone{job: job, res: res, err: err}:
		case <-ctx.Done():
		case <-d.done:
		}
	}()
}

func (d *Dispatcher) finishRecognition(c ocrDone) {
	d.view.SetBusy(false)
	if c.err != nil {
		d.fail("extract text", d.s.FailOCR(c.job, c.err))
		return
	}
	if !d.s.CompleteOCR(c.job, c.res) {
		return
	}
	d.view.ShowText(d.s.Text())
	d.showFrame()
}

func (d *Dispatcher) showFrame() {
	img, err := d.s.Render()
	if err != nil {
		d.fail("render", err)
		return
	}
	d.view.ShowFrame(img)
}

// fail logs err and reports it to the view.
func (d *Dispatcher) fail(op string, err error) {
	kind := session.KindOf(err)
	ev := d.log.Error()
	if kind == session.KindInput {
		ev = d.log.Warn()
	}
	ev.Err(err).Str("op", op).Stringer("kind", kind).Msg("Command failed")
	d.view.Notify(session.NoticeFor(err))
}

// syncTicker runs the camera ticker exactly while the camera runs.
func (d *Dispatcher) syncTicker() {
	running := d.s.CameraRunning()
	switch {
	case running && d.ticker == nil:
		d.ticker = time.NewTicker(d.interval)
	case !running && d.ticker != nil:
		d.stopTicker()
	}
}

func (d *Dispatcher) stopTicker() {
	if d.ticker != nil {
		d.ticker.Stop()
		d.ticker = nil
	}
}
