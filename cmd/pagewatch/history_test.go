package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/pagewatch"
	main "github.com/fwojciec/pagewatch/cmd/pagewatch"
	"github.com/fwojciec/pagewatch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyStates(snapshots []*pagewatch.Snapshot) *mock.WatchStateService {
	return &mock.WatchStateService{
		FindWatchStateByNameFn: func(_ context.Context, name string) (*pagewatch.WatchState, error) {
			if name != "shop" {
				return nil, pagewatch.Errorf(pagewatch.ENOTFOUND, "watch not found")
			}
			return &pagewatch.WatchState{ID: "id-shop", Name: "shop"}, nil
		},
		FindSnapshotsFn: func(_ context.Context, filter pagewatch.SnapshotFilter) ([]*pagewatch.Snapshot, error) {
			if filter.WatchID != "id-shop" {
				return nil, nil
			}
			if filter.Limit > 0 && len(snapshots) > filter.Limit {
				return snapshots[:filter.Limit], nil
			}
			return snapshots, nil
		},
	}
}

func TestHistoryCmd_Run(t *testing.T) {
	t.Parallel()

	snapshots := []*pagewatch.Snapshot{
		{
			Digest:    "0123456789abcdef",
			Text:      "Price: 12\nIn stock",
			Changed:   true,
			CreatedAt: time.Date(2025, 1, 16, 9, 30, 0, 0, time.UTC),
		},
		{
			Digest:    "fedcba9876543210",
			Text:      "Price: 10",
			CreatedAt: time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC),
		},
	}

	t.Run("lists snapshots newest first with their first line", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			States: historyStates(snapshots),
		}

		err := (&main.HistoryCmd{Name: "shop", Limit: 10}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t,
			"2025-01-16 09:30:00  changed   01234567  18 B\n"+
				"    Price: 12\n"+
				"2025-01-15 09:30:00  baseline  fedcba98  9 B\n"+
				"    Price: 10\n",
			stdout.String())
	})

	t.Run("prints full text when requested", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			States: historyStates(snapshots),
		}

		err := (&main.HistoryCmd{Name: "shop", Limit: 1, Full: true}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Price: 12\nIn stock\n")
		assert.NotContains(t, stdout.String(), "Price: 10")
	})

	t.Run("shows message when no snapshots exist", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			States: historyStates(nil),
		}

		err := (&main.HistoryCmd{Name: "shop"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `No snapshots for "shop"`)
	})

	t.Run("returns ENOTFOUND for unknown watches", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			States: historyStates(nil),
		}

		err := (&main.HistoryCmd{Name: "missing"}).Run(deps)

		assert.Equal(t, pagewatch.ENOTFOUND, pagewatch.ErrorCode(err))
		assert.Contains(t, stderr.String(), "pagewatch list")
	})
}
