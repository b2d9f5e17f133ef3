// Package logging defines the leveled logging capability injected into every
// component at construction time. Components never reach for a process-wide
// logger registry.
package logging

import (
	"context"
	"log/slog"
)

// LogFields represents structured logging key/value pairs.
type LogFields map[string]any

// LevelCritical sits above slog.LevelError and marks failures that leave the
// pipeline unable to make progress.
const LevelCritical = slog.Level(12)

// Logger is the minimal leveled logging contract the messaging layer depends
// on. Error and Critical take the triggering error separately so handlers can
// render it as a structured attribute.
type Logger interface {
	With(fields LogFields) Logger
	Debug(msg string, fields LogFields)
	Info(msg string, fields LogFields)
	Warning(msg string, fields LogFields)
	Error(msg string, err error, fields LogFields)
	Critical(msg string, err error, fields LogFields)
}

// NewSlogLogger wraps a slog.Logger so it satisfies the Logger interface.
func NewSlogLogger(log *slog.Logger) Logger {
	if log == nil {
		panic("rfbus: slog logger cannot be nil")
	}
	return &slogLogger{inner: log}
}

// Nop returns a Logger that discards everything. Used as the default when a
// caller passes nil.
func Nop() Logger {
	return nopLogger{}
}

type slogLogger struct {
	inner *slog.Logger
}

func (l *slogLogger) With(fields LogFields) Logger {
	if len(fields) == 0 {
		return l
	}
	return &slogLogger{inner: l.inner.With(toArgs(fields)...)}
}

func (l *slogLogger) Debug(msg string, fields LogFields) {
	l.inner.Debug(msg, toArgs(fields)...)
}

func (l *slogLogger) Info(msg string, fields LogFields) {
	l.inner.Info(msg, toArgs(fields)...)
}

func (l *slogLogger) Warning(msg string, fields LogFields) {
	l.inner.Warn(msg, toArgs(fields)...)
}

func (l *slogLogger) Error(msg string, err error, fields LogFields) {
	l.inner.Error(msg, withErr(err, fields)...)
}

func (l *slogLogger) Critical(msg string, err error, fields LogFields) {
	l.inner.Log(context.Background(), LevelCritical, msg, withErr(err, fields)...)
}

func toArgs(fields LogFields) []any {
	if len(fields) == 0 {
		return nil
	}
	args := make([]any, 0, len(fields)*2)
	for key, value := range fields {
		args = append(args, key, value)
	}
	return args
}

func withErr(err error, fields LogFields) []any {
	args := toArgs(fields)
	if err != nil {
		args = append(args, "error", err)
	}
	return args
}

type nopLogger struct{}

func (nopLogger) With(LogFields) Logger             { return nopLogger{} }
func (nopLogger) Debug(string, LogFields)           {}
func (nopLogger) Info(string, LogFields)            {}
func (nopLogger) Warning(string, LogFields)         {}
func (nopLogger) Error(string, error, LogFields)    {}
func (nopLogger) Critical(string, error, LogFields) {}
