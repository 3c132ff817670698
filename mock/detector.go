package mock

import (
	"context"

	"github.com/fwojciec/pagewatch"
)

var _ pagewatch.ChangeDetector = (*ChangeDetector)(nil)

// ChangeDetector is a mock implementation of pagewatch.ChangeDetector.
type ChangeDetector struct {
	DetectFn func(ctx context.Context, watch pagewatch.Watch, settings pagewatch.Settings, fetch pagewatch.FetchResult, skipUnchanged bool) (*pagewatch.Result, error)
}

func (d *ChangeDetector) Detect(ctx context.Context, watch pagewatch.Watch, settings pagewatch.Settings, fetch pagewatch.FetchResult, skipUnchanged bool) (*pagewatch.Result, error) {
	return d.DetectFn(ctx, watch, settings, fetch, skipUnchanged)
}
