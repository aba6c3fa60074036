package log

import (
	"io"

	"gopkg.in/Sirupsen/logrus.v0"
)

type Level = logrus.Level

const (
	PanicLevel = logrus.PanicLevel
	FatalLevel = logrus.FatalLevel
	ErrorLevel = logrus.ErrorLevel
	WarnLevel  = logrus.WarnLevel
	InfoLevel  = logrus.InfoLevel
	DebugLevel = logrus.DebugLevel
)

func init() {
	// Level filtering is done per module, logrus must let everything through.
	logrus.SetLevel(logrus.DebugLevel)
}

// SetOutput sets the destination of all log entries. When color is false
// the text formatter doesn't emit ANSI escape sequences.
func SetOutput(w io.Writer, color bool) {
	logrus.SetOutput(w)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors:    !color,
		ForceColors:      color,
		DisableTimestamp: true,
	})
}

// A ContextAdder adds fields to every log entry. This is used by
// subsystems to decorate logs with emulator state (current PC, frame...).
type ContextAdder interface {
	AddLogContext(entry *EntryZ)
}

var contexts []ContextAdder

func AddContext(ctx ContextAdder) {
	contexts = append(contexts, ctx)
}

func RemoveContext(ctx ContextAdder) {
	for i, c := range contexts {
		if c == ctx {
			contexts = append(contexts[:i], contexts[i+1:]...)
			return
		}
	}
}
