package shell

import (
	"encoding/json"
	"fmt"
	"image"

	"github.com/ironsheep/text-scanner/internal/app"
	"github.com/ironsheep/text-scanner/internal/imaging"
)

// Protocol error codes
const (
	CodeParseError    = -32700
	CodeUnknownCmd    = -32601
	CodeInvalidParams = -32602
)

// Request represents an incoming command line
type Request struct {
	Cmd  string `json:"cmd"`
	Path string `json:"path,omitempty"`
	X    *int   `json:"x,omitempty"`
	Y    *int   `json:"y,omitempty"`
}

// Event represents an outgoing event line
type Event struct {
	Event     string          `json:"event"`
	Path      string          `json:"path,omitempty"`
	Width     int             `json:"width,omitempty"`
	Height    int             `json:"height,omitempty"`
	Selection *imaging.Region `json:"selection,omitempty"`
	Visible   *bool           `json:"visible,omitempty"`
	Text      *string         `json:"text,omitempty"`
	Level     string          `json:"level,omitempty"`
	Message   string          `json:"message,omitempty"`
	Busy      *bool           `json:"busy,omitempty"`
	Code      int             `json:"code,omitempty"`
}

// ProtocolError is a request that could not be turned into a command.
type ProtocolError struct {
	Code    int
	Message string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error %d: %s", e.Code, e.Message)
}

// ParseRequest decodes one request line into a command.
func ParseRequest(line []byte) (app.Command, error) {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		return nil, &ProtocolError{Code: CodeParseError, Message: fmt.Sprintf("Failed to parse request: %v", err)}
	}
	return req.Command()
}

// Command converts the request into a dispatcher command.
func (r *Request) Command() (app.Command, error) {
	switch r.Cmd {
	case "load":
		if r.Path == "" {
			return nil, invalidParams("load requires path")
		}
		return app.LoadImage{Path: r.Path}, nil
	case "start_camera":
		return app.StartCamera{}, nil
	case "stop_camera":
		return app.StopCamera{}, nil
	case "capture":
		return app.CaptureFrame{}, nil
	case "clear_roi":
		return app.ClearROI{}, nil
	case "suggest":
		return app.SuggestROI{}, nil
	case "press", "move", "release":
		p, err := r.point()
		if err != nil {
			return nil, err
		}
		switch r.Cmd {
		case "press":
			return app.PointerPress{Point: p}, nil
		case "move":
			return app.PointerMove{Point: p}, nil
		default:
			return app.PointerRelease{Point: p}, nil
		}
	case "extract":
		return app.ExtractText{}, nil
	case "save":
		if r.Path == "" {
			return nil, invalidParams("save requires path")
		}
		return app.SaveText{Path: r.Path}, nil
	case "quit":
		return app.Quit{}, nil
	default:
		return nil, &ProtocolError{Code: CodeUnknownCmd, Message: fmt.Sprintf("Unknown command: %q", r.Cmd)}
	}
}

func (r *Request) point() (image.Point, error) {
	if r.X == nil || r.Y == nil {
		return image.Point{}, invalidParams(r.Cmd + " requires x and y")
	}
	return image.Pt(*r.X, *r.Y), nil
}

func invalidParams(msg string) error {
	return &ProtocolError{Code: CodeInvalidParams, Message: msg}
}
