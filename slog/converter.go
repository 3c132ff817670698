package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagewatch"
)

// Ensure LoggingConverter implements pagewatch.DocumentConverter.
var _ pagewatch.DocumentConverter = (*LoggingConverter)(nil)

// LoggingConverter wraps a DocumentConverter with debug logging.
type LoggingConverter struct {
	next   pagewatch.DocumentConverter
	logger *slog.Logger
}

// NewLoggingConverter creates a new LoggingConverter.
func NewLoggingConverter(next pagewatch.DocumentConverter, logger *slog.Logger) *LoggingConverter {
	return &LoggingConverter{next: next, logger: logger}
}

// Convert delegates to the wrapped converter and logs the operation.
func (c *LoggingConverter) Convert(ctx context.Context, raw []byte) (html string, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("document conversion",
			"bytes", len(raw),
			"html_bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Convert(ctx, raw)
}
