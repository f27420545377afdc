package app

import (
	"image"

	"github.com/ironsheep/text-scanner/internal/ocr"
	"github.com/ironsheep/text-scanner/internal/session"
)

// Command is a user action or an internal event consumed by the Dispatcher.
type Command interface {
	command() string
}

// LoadImage replaces the source image with the file at Path.
type LoadImage struct{ Path string }

// StartCamera starts the live camera feed.
type StartCamera struct{}

// StopCamera stops the live camera feed.
type StopCamera struct{}

// CaptureFrame freezes the current camera frame.
type CaptureFrame struct{}

// ClearROI removes the selection.
type ClearROI struct{}

// SuggestROI selects the area of the image most likely to hold text.
type SuggestROI struct{}

// PointerPress starts a selection drag at a display-space point.
type PointerPress struct{ Point image.Point }

// PointerMove updates a selection drag.
type PointerMove struct{ Point image.Point }

// PointerRelease finishes a selection drag.
type PointerRelease struct{ Point image.Point }

// ExtractText runs OCR over the selection, or the whole image.
type ExtractText struct{}

// SaveText writes the extracted text to Path.
type SaveText struct{ Path string }

// Quit stops the dispatcher.
type Quit struct{}

type cameraTick struct{}

type ocrDone struct {
	job *session.Job
	res *ocr.Result
	err error
}

func (LoadImage) command() string      { return "load_image" }
func (StartCamera) command() string    { return "start_camera" }
func (StopCamera) command() string     { return "stop_camera" }
func (CaptureFrame) command() string   { return "capture_frame" }
func (ClearROI) command() string       { return "clear_roi" }
func (SuggestROI) command() string     { return "suggest_roi" }
func (PointerPress) command() string   { return "pointer_press" }
func (PointerMove) command() string    { return "pointer_move" }
func (PointerRelease) command() string { return "pointer_release" }
func (ExtractText) command() string    { return "extract_text" }
func (SaveText) command() string       { return "save_text" }
func (Quit) command() string           { return "quit" }
func (cameraTick) command() string     { return "camera_tick" }
func (ocrDone) command() string        { return "ocr_done" }

// Name returns the command's name as used in logs.
func Name(c Command) string { return c.command() }
