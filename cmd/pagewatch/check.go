package main

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/fwojciec/pagewatch"
	"github.com/fwojciec/pagewatch/bloom"
	"golang.org/x/sync/errgroup"
)

// historyFalsePositiveRate sizes the line index built for unique-line checks.
const historyFalsePositiveRate = 0.001

// checkStatus is the outcome of checking one watch.
type checkStatus int

const (
	statusUnchanged checkStatus = iota
	statusChanged
	statusSkipped
	statusFailed
)

func (s checkStatus) String() string {
	switch s {
	case statusChanged:
		return "changed"
	case statusSkipped:
		return "skipped"
	case statusFailed:
		return "error"
	default:
		return "unchanged"
	}
}

type checkOutcome struct {
	status checkStatus
	bytes  int
	err    error
}

// Run executes the check command.
func (c *CheckCmd) Run(deps *Dependencies) error {
	cfg, err := LoadConfig(c.Config)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagewatch.ErrorMessage(err))
		return err
	}

	watches := cfg.Watches
	if len(c.Watch) > 0 {
		watches = nil
		for _, w := range cfg.Watches {
			if slices.Contains(c.Watch, w.Name) {
				watches = append(watches, w)
			}
		}
		if len(watches) == 0 {
			fmt.Fprintf(deps.Stderr, "error: no watches named %q in %s\n", c.Watch, c.Config)
			return pagewatch.Errorf(pagewatch.ENOTFOUND, "no matching watches")
		}
	}

	// A failing watch must not cancel the others, so the group never
	// returns an error.
	outcomes := make([]checkOutcome, len(watches))
	g := new(errgroup.Group)
	if c.Concurrency > 0 {
		g.SetLimit(c.Concurrency)
	}
	for i := range watches {
		g.Go(func() error {
			outcomes[i] = checkWatch(deps.Ctx, deps, cfg.Settings, &watches[i], c.SkipUnchanged)
			return nil
		})
	}
	_ = g.Wait()

	var changed, failed int
	for i, o := range outcomes {
		w := &watches[i]
		switch o.status {
		case statusFailed:
			failed++
			fmt.Fprintf(deps.Stdout, "%-9s  %s  %s\n", o.status, w.Name, pagewatch.ErrorMessage(o.err))
		case statusChanged:
			changed++
			fallthrough
		default:
			fmt.Fprintf(deps.Stdout, "%-9s  %s  %s (%s)\n", o.status, w.Name, TruncateURL(w.URL, 60), FormatBytes(o.bytes))
		}
	}
	fmt.Fprintf(deps.Stdout, "Checked %d watches: %d changed, %d failed\n", len(watches), changed, failed)

	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, len(watches))
	}
	return nil
}

// checkWatch runs the pipeline for one watch and records the result.
func checkWatch(ctx context.Context, deps *Dependencies, settings pagewatch.Settings, wc *WatchConfig, skipUnchanged bool) checkOutcome {
	fetch, err := wc.FetchResult()
	if err != nil {
		return checkOutcome{status: statusFailed, err: err}
	}

	state, err := findOrCreateState(ctx, deps.States, wc)
	if err != nil {
		return checkOutcome{status: statusFailed, err: err}
	}

	watch := wc.Watch
	state.ApplyTo(&watch)
	if watch.CheckUniqueLines && state.Snapshots > 0 {
		if watch.History, err = loadLineHistory(ctx, deps.States, state.ID); err != nil {
			return checkOutcome{status: statusFailed, err: err}
		}
	}

	result, err := deps.Detector.Detect(ctx, watch, settings, fetch, skipUnchanged)
	if errors.Is(err, pagewatch.ErrChecksumUnchanged) {
		return checkOutcome{status: statusSkipped, bytes: len(fetch.Content)}
	} else if err != nil {
		return checkOutcome{status: statusFailed, err: err}
	}

	if err := deps.States.RecordCheck(ctx, state.ID, result); err != nil {
		return checkOutcome{status: statusFailed, err: err}
	}

	o := checkOutcome{status: statusUnchanged, bytes: len(result.Text)}
	if result.Changed {
		o.status = statusChanged
	}
	return o
}

func findOrCreateState(ctx context.Context, states pagewatch.WatchStateService, wc *WatchConfig) (*pagewatch.WatchState, error) {
	state, err := states.FindWatchStateByName(ctx, wc.Name)
	if err == nil {
		return state, nil
	}
	if pagewatch.ErrorCode(err) != pagewatch.ENOTFOUND {
		return nil, err
	}

	state = &pagewatch.WatchState{Name: wc.Name, URL: wc.URL, Title: wc.Title}
	if err := states.CreateWatchState(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// loadLineHistory indexes the lines of every stored snapshot of a watch.
func loadLineHistory(ctx context.Context, states pagewatch.WatchStateService, watchID string) (*bloom.LineIndex, error) {
	snapshots, err := states.FindSnapshots(ctx, pagewatch.SnapshotFilter{WatchID: watchID})
	if err != nil {
		return nil, err
	}

	var n uint
	for _, s := range snapshots {
		n += uint(len(pagewatch.SplitLines(s.Text)))
	}
	index := bloom.NewLineIndex(max(n, 1), historyFalsePositiveRate)
	for _, s := range snapshots {
		index.Add(s.Text)
	}
	return index, nil
}
