package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/afero"
)

// Context holds application-wide configuration and state
type Context struct {
	context.Context

	// Output preferences
	OutputFormat string
	Verbose      bool
	Quiet        bool
	LogFormat    string

	// Common timeouts
	DefaultTimeout time.Duration

	// Filesystem the assets are read from and written to
	Fs afero.Fs

	// Logger receives diagnostic output; results go to stdout through the formatters
	Logger *slog.Logger

	// Progress reporting
	ProgressCallback func(message string, percent int)
}

// NewContext creates a new application context
func NewContext() *Context {
	c := &Context{
		Context:        context.Background(),
		DefaultTimeout: 5 * time.Minute,
		Fs:             afero.NewOsFs(),
		LogFormat:      "text",
	}
	c.SetLogOutput(os.Stderr)
	return c
}

// SetLogOutput rebuilds the logger for w using the current verbosity and log format
func (c *Context) SetLogOutput(w io.Writer) {
	level := slog.LevelInfo
	switch {
	case c.Quiet:
		level = slog.LevelError
	case c.Verbose:
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		c.Logger = slog.New(slog.NewJSONHandler(w, opts))
		return
	}
	c.Logger = slog.New(slog.NewTextHandler(w, opts))
}

// WithTimeout creates a context with timeout
func (c *Context) WithTimeout(timeout time.Duration) (*Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(c.Context, timeout)
	newCtx := *c
	newCtx.Context = ctx
	return &newCtx, cancel
}

// SetProgress sets the progress callback function. Callers that report from
// several goroutines serialise their calls to Progress.
func (c *Context) SetProgress(callback func(string, int)) {
	c.ProgressCallback = callback
}

// Progress reports progress if callback is set
func (c *Context) Progress(message string, percent int) {
	if c.ProgressCallback != nil {
		c.ProgressCallback(message, percent)
	}
}

// Log outputs a debug message with optional attributes
func (c *Context) Log(message string, args ...any) {
	c.Logger.Debug(message, args...)
}

// Info outputs an informational message unless quiet
func (c *Context) Info(message string, args ...any) {
	c.Logger.Info(message, args...)
}

// Error outputs an error message
func (c *Context) Error(message string, args ...any) {
	c.Logger.Error(message, args...)
}
