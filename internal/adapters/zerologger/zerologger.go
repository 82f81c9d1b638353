// Package zerologger adapts rs/zerolog to the ports.Logger interface for
// structured JSON or console output.
package zerologger

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"

	"fxledger/internal/adapters/logger"
)

// Logger implements the ports.Logger interface on top of zerolog.
type Logger struct {
	zl zerolog.Logger
}

// Config holds configuration for the zerolog adapter.
type Config struct {
	Level   logger.LogLevel
	Console bool      // Human-readable console output instead of JSON
	Writer  io.Writer // Defaults to os.Stderr
}

// New creates a zerolog-backed logger.
func New(cfg Config) *Logger {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}
	if cfg.Console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	zl := zerolog.New(w).Level(toZerologLevel(cfg.Level)).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

func toZerologLevel(level logger.LogLevel) zerolog.Level {
	switch level {
	case logger.LevelDebug:
		return zerolog.DebugLevel
	case logger.LevelWarn:
		return zerolog.WarnLevel
	case logger.LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func emit(e *zerolog.Event, msg string, fields []map[string]interface{}) {
	if len(fields) > 0 && fields[0] != nil {
		e = e.Fields(fields[0])
	}
	e.Msg(msg)
}

// Debug logs a message at Debug level.
func (l *Logger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {
	emit(l.zl.Debug(), msg, fields)
}

// Info logs a message at Info level.
func (l *Logger) Info(ctx context.Context, msg string, fields ...map[string]interface{}) {
	emit(l.zl.Info(), msg, fields)
}

// Warn logs a message at Warning level.
func (l *Logger) Warn(ctx context.Context, msg string, fields ...map[string]interface{}) {
	emit(l.zl.Warn(), msg, fields)
}

// Error logs an error message at Error level.
func (l *Logger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
	emit(l.zl.Error().Err(err), msg, fields)
}
