package movement

import (
	"fmt"
)

// Logger is what faces and the host log through. The simulator adapts zap to it; StderrLogger is the fallback.
type Logger interface {
	Debug(msg string)
	Debugf(format string, v ...any)
	Info(msg string)
	Infof(format string, v ...any)
}

// StderrLogger is a bare-bones logger that outputs to whatever println is hooked up to. It has no concept of levels
// and will output everything at every level.
type StderrLogger struct{}

func (StderrLogger) Debug(msg string) {
	println(msg)
}

func (StderrLogger) Debugf(format string, v ...any) {
	println(fmt.Sprintf(format, v...))
}

func (StderrLogger) Info(msg string) {
	println(msg)
}

func (StderrLogger) Infof(format string, v ...any) {
	println(fmt.Sprintf(format, v...))
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string) {}

func (NopLogger) Debugf(string, ...any) {}

func (NopLogger) Info(string) {}

func (NopLogger) Infof(string, ...any) {}
