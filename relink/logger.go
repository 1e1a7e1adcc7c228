package relink

import "github.com/rs/zerolog"

// Logger is a minimal logging interface accepted by the SDK.
type Logger interface {
	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

// noopLogger discards all logs.
type noopLogger struct{}

func (noopLogger) Debug(string, map[string]any) {}
func (noopLogger) Info(string, map[string]any)  {}
func (noopLogger) Warn(string, map[string]any)  {}
func (noopLogger) Error(string, map[string]any) {}

// NewZerologLogger adapts a zerolog.Logger to the Logger interface.
func NewZerologLogger(l zerolog.Logger) Logger {
	return &zerologLogger{l: l}
}

type zerologLogger struct {
	l zerolog.Logger
}

func (z *zerologLogger) Debug(msg string, fields map[string]any) { z.emit(z.l.Debug(), msg, fields) }
func (z *zerologLogger) Info(msg string, fields map[string]any)  { z.emit(z.l.Info(), msg, fields) }
func (z *zerologLogger) Warn(msg string, fields map[string]any)  { z.emit(z.l.Warn(), msg, fields) }
func (z *zerologLogger) Error(msg string, fields map[string]any) { z.emit(z.l.Error(), msg, fields) }

func (z *zerologLogger) emit(ev *zerolog.Event, msg string, fields map[string]any) {
	if len(fields) > 0 {
		ev = ev.Fields(fields)
	}
	ev.Msg(msg)
}
