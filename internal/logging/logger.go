// Package logging provides the CLI's structured logger, built on
// charmbracelet/log, and adapts it to parser.Logger for the library packages.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/x3t/openapi-diff/parser"
)

// Field names shared by log lines.
const (
	FieldError    = "error"
	FieldPath     = "path"
	FieldFormat   = "format"
	FieldOriginal = "original"
	FieldNew      = "new"
	FieldVersion  = "version"
	FieldCommit   = "commit"
	FieldBuilt    = "built"
)

// New creates a logger writing to stderr at the given level.
// Valid levels: "debug", "info", "warn", "error".
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter creates a logger writing to w at the given level.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
		Prefix:          "openapi-diff",
	})
	logger.SetLevel(ParseLevel(level))
	return logger
}

// ParseLevel maps a level name to a log.Level. Unknown names map to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Adapter implements parser.Logger on top of a charmbracelet logger so the
// parser, differ and report packages log through the CLI's handler.
type Adapter struct {
	logger *log.Logger
}

var _ parser.Logger = (*Adapter)(nil)

// NewAdapter wraps logger. A nil logger yields an adapter over a discarding logger.
func NewAdapter(logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Adapter{logger: logger}
}

// Debug logs at debug level.
func (a *Adapter) Debug(msg string, attrs ...any) { a.logger.Debug(msg, attrs...) }

// Info logs at info level.
func (a *Adapter) Info(msg string, attrs ...any) { a.logger.Info(msg, attrs...) }

// Warn logs at warn level.
func (a *Adapter) Warn(msg string, attrs ...any) { a.logger.Warn(msg, attrs...) }

// Error logs at error level.
func (a *Adapter) Error(msg string, attrs ...any) { a.logger.Error(msg, attrs...) }

// With returns an adapter whose lines carry attrs.
func (a *Adapter) With(attrs ...any) parser.Logger {
	return &Adapter{logger: a.logger.With(attrs...)}
}
