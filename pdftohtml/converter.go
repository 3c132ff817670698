// Package pdftohtml converts PDF documents to HTML with the poppler
// pdftohtml command.
package pdftohtml

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/fwojciec/pagewatch"
)

// Ensure Converter implements pagewatch.DocumentConverter at compile time.
var _ pagewatch.DocumentConverter = (*Converter)(nil)

// DefaultTool is the command used when no other tool is configured.
const DefaultTool = "pdftohtml"

// DefaultTimeout bounds a single conversion.
const DefaultTimeout = 60 * time.Second

// Converter runs an external pdftohtml-compatible command, feeding the
// document on stdin and reading HTML from stdout.
type Converter struct {
	tool    string
	timeout time.Duration
}

// Option configures a Converter.
type Option func(*Converter)

// WithTool sets the command to run. Empty values are ignored.
func WithTool(tool string) Option {
	return func(c *Converter) {
		if tool != "" {
			c.tool = tool
		}
	}
}

// WithTimeout sets the conversion timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Converter) {
		c.timeout = d
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		tool:    DefaultTool,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert implements pagewatch.DocumentConverter.
func (c *Converter) Convert(ctx context.Context, raw []byte) (string, error) {
	path, err := exec.LookPath(c.tool)
	if err != nil {
		return "", &pagewatch.ToolNotFoundError{Tool: c.tool}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, "-stdout", "-", "-s", "out.pdf", "-i")
	cmd.Stdin = bytes.NewReader(raw)
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", pagewatch.Errorf(pagewatch.EINTERNAL, "%s timed out after %s", c.tool, c.timeout)
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", pagewatch.Errorf(pagewatch.EINTERNAL, "%s failed: %v: %s", c.tool, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
