package session

import "errors"

// Level is the severity of a Notice.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	default:
		return "error"
	}
}

// Notice is a message for the user.
type Notice struct {
	Level   Level
	Message string
}

// Info returns an informational notice.
func Info(msg string) Notice { return Notice{Level: LevelInfo, Message: msg} }

// Warning returns a warning notice.
func Warning(msg string) Notice { return Notice{Level: LevelWarning, Message: msg} }

// NoticeFor converts a failed operation into a notice. A busy rejection is a
// warning; everything else is an error.
func NoticeFor(err error) Notice {
	if errors.Is(err, ErrBusy) {
		return Warning(err.Error())
	}
	return Notice{Level: LevelError, Message: err.Error()}
}
