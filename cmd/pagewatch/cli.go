package main

import (
	"context"
	"io"

	"github.com/fwojciec/pagewatch"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	States   pagewatch.WatchStateService
	Detector pagewatch.ChangeDetector
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log every pipeline run"`

	Check   CheckCmd   `cmd:"" help:"Run change detection for the watches in a config file"`
	List    ListCmd    `cmd:"" help:"List recorded watches"`
	History HistoryCmd `cmd:"" help:"Show stored snapshots of a watch"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	Config        string   `arg:"" type:"existingfile" help:"Watch definitions (YAML)"`
	Watch         []string `short:"w" name:"watch" help:"Only check the named watch (repeatable)"`
	SkipUnchanged bool     `short:"s" help:"Skip watches whose content did not change since the previous check"`
	Concurrency   int      `short:"c" default:"4" help:"Concurrent check limit"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Name  string `arg:"" help:"Watch name"`
	Limit int    `short:"n" default:"10" help:"Maximum number of snapshots"`
	Full  bool   `help:"Show full snapshot text"`
}
