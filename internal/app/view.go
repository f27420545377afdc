package app

import (
	"image"

	"github.com/ironsheep/text-scanner/internal/session"
)

// View is the presentation surface driven by the Dispatcher. All methods are
// called from the dispatcher goroutine.
type View interface {
	// ShowFrame displays a rendered display image.
	ShowFrame(img image.Image)

	// ShowSelection shows or hides the rubber band for a drag in progress,
	// in display coordinates.
	ShowSelection(r image.Rectangle, visible bool)

	// ShowText replaces the text panel contents.
	ShowText(text string)

	// Notify reports a message to the user.
	Notify(n session.Notice)

	// SetBusy disables or re-enables input while text extraction runs.
	SetBusy(busy bool)
}
