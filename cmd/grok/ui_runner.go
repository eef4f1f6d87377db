package main

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"grok/internal/driver"
	"grok/internal/ui"
)

type checkOutcome struct {
	results []*driver.Compilation
	err     error
}

// checkWithUI runs CheckFiles while a progress view renders to out.
func checkWithUI(ctx context.Context, out io.Writer, paths []string, opts driver.Options, jobs int) ([]*driver.Compilation, error) {
	events := make(chan driver.FileEvent, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		results, err := driver.CheckFiles(ctx, paths, opts, jobs, driver.ChannelSink{Ch: events})
		outcomeCh <- checkOutcome{results: results, err: err}
		close(events)
	}()

	title := fmt.Sprintf("checking %d file(s)", len(paths))
	program := tea.NewProgram(ui.NewProgressModel(title, paths, events), tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	// The view may stop early; keep the workers from blocking on a full channel.
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
