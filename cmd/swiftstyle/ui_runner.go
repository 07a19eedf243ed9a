package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"swiftstyle/internal/engine"
	"swiftstyle/internal/ui"
)

type checkOutcome struct {
	result *engine.Result
	err    error
}

// runCheckWithUI runs CheckMany behind a Bubble Tea progress display. The
// engine runs in its own goroutine; the UI drains the event channel until the
// engine closes it, then the report is rendered by the caller as usual.
func runCheckWithUI(cmd *cobra.Command, args []string, opts engine.Options) (*engine.Result, error) {
	files, err := engine.Discover(args, opts.Exclude)
	if err != nil {
		return nil, err
	}
	if len(files) <= 1 {
		// A single file finishes before the first frame renders.
		return engine.CheckMany(cmd.Context(), args, opts)
	}

	events := make(chan engine.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = engine.ChannelSink{Ch: events}
		res, err := engine.CheckMany(cmd.Context(), args, optsCopy)
		outcomeCh <- checkOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("checking swift sources", files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
