// Package slog provides logging decorators for pagewatch services using
// log/slog.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagewatch"
)

// Ensure LoggingDetector implements pagewatch.ChangeDetector.
var _ pagewatch.ChangeDetector = (*LoggingDetector)(nil)

// LoggingDetector wraps a ChangeDetector with logging.
type LoggingDetector struct {
	next   pagewatch.ChangeDetector
	logger *slog.Logger
}

// NewLoggingDetector creates a new LoggingDetector.
func NewLoggingDetector(next pagewatch.ChangeDetector, logger *slog.Logger) *LoggingDetector {
	return &LoggingDetector{next: next, logger: logger}
}

// Detect delegates to the wrapped detector and logs the verdict.
func (d *LoggingDetector) Detect(
	ctx context.Context,
	watch pagewatch.Watch,
	settings pagewatch.Settings,
	fetch pagewatch.FetchResult,
	skipUnchanged bool,
) (result *pagewatch.Result, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", watch.URL,
			"bytes", len(fetch.Content),
			"duration", time.Since(begin),
		}
		if result != nil {
			attrs = append(attrs, "changed", result.Changed, "digest", result.Update.Digest)
		}
		if err != nil {
			attrs = append(attrs, "err", err)
		}
		d.logger.Info("change detection", attrs...)
	}(time.Now())
	return d.next.Detect(ctx, watch, settings, fetch, skipUnchanged)
}
