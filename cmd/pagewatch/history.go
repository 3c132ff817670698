package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/pagewatch"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	state, err := deps.States.FindWatchStateByName(deps.Ctx, c.Name)
	if pagewatch.ErrorCode(err) == pagewatch.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: watch %q not found. Use 'pagewatch list' to see recorded watches.\n", c.Name)
		return err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagewatch.ErrorMessage(err))
		return err
	}

	snapshots, err := deps.States.FindSnapshots(deps.Ctx, pagewatch.SnapshotFilter{
		WatchID: state.ID,
		Limit:   c.Limit,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagewatch.ErrorMessage(err))
		return err
	}

	if len(snapshots) == 0 {
		fmt.Fprintf(deps.Stdout, "No snapshots for %q.\n", state.Name)
		return nil
	}

	for _, s := range snapshots {
		kind := "baseline"
		if s.Changed {
			kind = "changed"
		}
		fmt.Fprintf(deps.Stdout, "%s  %-8s  %s  %s\n",
			s.CreatedAt.Format(time.DateTime), kind, shortDigest(s.Digest), FormatBytes(len(s.Text)))
		if c.Full {
			fmt.Fprintf(deps.Stdout, "%s\n\n", s.Text)
		} else if line := FirstLine(s.Text, 72); line != "" {
			fmt.Fprintf(deps.Stdout, "    %s\n", line)
		}
	}

	return nil
}

func shortDigest(digest string) string {
	if len(digest) > 8 {
		return digest[:8]
	}
	return digest
}
