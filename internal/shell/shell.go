package shell

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ironsheep/text-scanner/internal/app"
	"github.com/ironsheep/text-scanner/internal/imaging"
	"github.com/ironsheep/text-scanner/internal/logger"
	"github.com/ironsheep/text-scanner/internal/session"
)

const maxLineSize = 1024 * 1024

// Shell reads requests from in and implements app.View by writing events to out.
type Shell struct {
	in        io.Reader
	framesDir string
	log       zerolog.Logger

	mu       sync.Mutex
	enc      *json.Encoder
	frameSeq int
}

// New creates a shell that writes frame images into framesDir.
func New(in io.Reader, out io.Writer, framesDir string) *Shell {
	return &Shell{
		in:        in,
		enc:       json.NewEncoder(out),
		framesDir: framesDir,
		log:       logger.WithComponent("shell"),
	}
}

var _ app.View = (*Shell)(nil)

// Serve runs d and feeds it requests until quit, end of input, or ctx is
// cancelled. It returns once the dispatcher has stopped.
func (s *Shell) Serve(ctx context.Context, d *app.Dispatcher) error {
	if err := os.MkdirAll(s.framesDir, 0o755); err != nil {
		return fmt.Errorf("failed to create frames directory: %w", err)
	}

	runErr := make(chan error, 1)
	go func() { runErr <- d.Run(ctx) }()

	readErr := make(chan error, 1)
	go func() { readErr <- s.readLoop(ctx, d) }()

	err := <-runErr
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	select {
	case rerr := <-readErr:
		if err == nil {
			err = rerr
		}
	default:
		// The reader may still be blocked on input; it stops at the next line.
	}
	return err
}

// readLoop forwards requests to d. Quit and end of input both stop it.
func (s *Shell) readLoop(ctx context.Context, d *app.Dispatcher) error {
	scanner := bufio.NewScanner(s.in)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, maxLineSize)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		cmd, err := ParseRequest(line)
		if err != nil {
			s.protocolError(err)
			continue
		}
		if err := d.Send(ctx, cmd); err != nil {
			return nil
		}
		if _, ok := cmd.(app.Quit); ok {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		_ = d.Send(ctx, app.Quit{})
		return fmt.Errorf("scanner error: %w", err)
	}
	_ = d.Send(ctx, app.Quit{})
	return nil
}

func (s *Shell) protocolError(err error) {
	var pe *ProtocolError
	if !errors.As(err, &pe) {
		pe = &ProtocolError{Code: CodeParseError, Message: err.Error()}
	}
	s.log.Warn().Int("code", pe.Code).Msg(pe.Message)
	s.emit(Event{Event: "error", Code: pe.Code, Message: pe.Message})
}

func (s *Shell) emit(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enc.Encode(ev); err != nil {
		s.log.Error().Err(err).Str("event", ev.Event).Msg("Failed to encode event")
	}
}

// ShowFrame writes img as the next numbered PNG and announces it.
func (s *Shell) ShowFrame(img image.Image) {
	s.mu.Lock()
	s.frameSeq++
	seq := s.frameSeq
	s.mu.Unlock()

	path := filepath.Join(s.framesDir, fmt.Sprintf("frame-%06d.png", seq))
	if err := imaging.SavePNG(path, img); err != nil {
		s.log.Error().Err(err).Str("path", path).Msg("Failed to write frame")
		s.emit(Event{Event: "notice", Level: session.LevelError.String(), Message: err.Error()})
		return
	}
	b := img.Bounds()
	s.emit(Event{Event: "frame", Path: path, Width: b.Dx(), Height: b.Dy()})
}

// ShowSelection announces the rubber band state.
func (s *Shell) ShowSelection(r image.Rectangle, visible bool) {
	ev := Event{Event: "selection", Visible: &visible}
	if visible {
		sel := imaging.RegionFromRect(r)
		ev.Selection = &sel
	}
	s.emit(ev)
}

// ShowText announces new extracted text.
func (s *Shell) ShowText(text string) {
	s.emit(Event{Event: "text", Text: &text})
}

// Notify announces a user message.
func (s *Shell) Notify(n session.Notice) {
	s.emit(Event{Event: "notice", Level: n.Level.String(), Message: n.Message})
}

// SetBusy announces the start or end of recognition.
func (s *Shell) SetBusy(busy bool) {
	s.emit(Event{Event: "busy", Busy: &busy})
}
