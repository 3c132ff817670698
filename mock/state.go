package mock

import (
	"context"

	"github.com/fwojciec/pagewatch"
)

var (
	_ pagewatch.WatchStateService = (*WatchStateService)(nil)
	_ pagewatch.LineHistory       = (*LineHistory)(nil)
)

// WatchStateService is a mock implementation of pagewatch.WatchStateService.
type WatchStateService struct {
	CreateWatchStateFn     func(ctx context.Context, state *pagewatch.WatchState) error
	FindWatchStateByNameFn func(ctx context.Context, name string) (*pagewatch.WatchState, error)
	FindWatchStatesFn      func(ctx context.Context) ([]*pagewatch.WatchState, error)
	RecordCheckFn          func(ctx context.Context, id string, result *pagewatch.Result) error
	FindSnapshotsFn        func(ctx context.Context, filter pagewatch.SnapshotFilter) ([]*pagewatch.Snapshot, error)
}

func (s *WatchStateService) CreateWatchState(ctx context.Context, state *pagewatch.WatchState) error {
	return s.CreateWatchStateFn(ctx, state)
}

func (s *WatchStateService) FindWatchStateByName(ctx context.Context, name string) (*pagewatch.WatchState, error) {
	return s.FindWatchStateByNameFn(ctx, name)
}

func (s *WatchStateService) FindWatchStates(ctx context.Context) ([]*pagewatch.WatchState, error) {
	return s.FindWatchStatesFn(ctx)
}

func (s *WatchStateService) RecordCheck(ctx context.Context, id string, result *pagewatch.Result) error {
	return s.RecordCheckFn(ctx, id, result)
}

func (s *WatchStateService) FindSnapshots(ctx context.Context, filter pagewatch.SnapshotFilter) ([]*pagewatch.Snapshot, error) {
	return s.FindSnapshotsFn(ctx, filter)
}

// LineHistory is a mock implementation of pagewatch.LineHistory.
type LineHistory struct {
	HasUniqueLinesFn func(lines []string) bool
}

func (h *LineHistory) HasUniqueLines(lines []string) bool {
	return h.HasUniqueLinesFn(lines)
}
