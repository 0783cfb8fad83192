package app

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/deploymenttheory/go-appledouble/internal/logger"
)

// Context holds application-wide configuration and state
type Context struct {
	context.Context

	// Output preferences
	OutputFormat string
	Verbose      bool
	Quiet        bool

	// Out receives formatted responses; Logger receives diagnostics.
	Out    io.Writer
	Logger *slog.Logger
}

// NewContext creates a new application context
func NewContext() *Context {
	return &Context{
		Context:      context.Background(),
		OutputFormat: "table",
		Out:          os.Stdout,
		Logger:       logger.Discard(),
	}
}

// Log records a progress message when running verbose
func (c *Context) Log(message string, args ...any) {
	if !c.Quiet && c.Verbose {
		c.Logger.InfoContext(c, message, args...)
	}
}

// Debug records a diagnostic message at debug level
func (c *Context) Debug(message string, args ...any) {
	c.Logger.DebugContext(c, message, args...)
}

// Error records an error message unless quiet
func (c *Context) Error(message string, args ...any) {
	if !c.Quiet {
		c.Logger.ErrorContext(c, message, args...)
	}
}
