package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/pagewatch"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	states, err := deps.States.FindWatchStates(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagewatch.ErrorMessage(err))
		return err
	}

	if len(states) == 0 {
		fmt.Fprintln(deps.Stdout, "No watches found. Use 'pagewatch check' to record one.")
		return nil
	}

	for _, s := range states {
		checked := "never"
		if !s.CheckedAt.IsZero() {
			checked = s.CheckedAt.Format(time.DateTime)
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  checked %s  %d snapshots\n",
			s.Name, TruncateURL(s.URL, 60), displayStatus(s), checked, s.Snapshots)
	}

	return nil
}

func displayStatus(s *pagewatch.WatchState) string {
	if s.StatusCode == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", s.StatusCode)
}
