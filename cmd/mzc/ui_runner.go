package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shackle-rs/mzc/internal/driver"
	"github.com/shackle-rs/mzc/internal/observ"
	"github.com/shackle-rs/mzc/internal/ui"
)

// compileWithUI runs driver.Compile on a background goroutine and drives a
// Bubble Tea progress display off its events, the way the teacher's
// runBuildWithUI/runCompileWithUI wrap buildpipeline.Build/Compile.
func compileWithUI(title string, paths []string, opts driver.Options, timer *observ.Timer) (*driver.Result, error) {
	events := make(chan driver.Event, 256)

	type outcome struct {
		result *driver.Result
		err    error
	}

	outcomeCh := make(chan outcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}

		result, err := driver.Compile(paths, optsCopy, timer)
		outcomeCh <- outcome{result: result, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, paths, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))

	_, uiErr := program.Run()

	out := <-outcomeCh
	if uiErr != nil {
		return out.result, uiErr
	}

	return out.result, out.err
}
