package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pyrite/internal/buildpipeline"
	"pyrite/internal/source"
	"pyrite/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

type transpileOutcome struct {
	outcome buildpipeline.Outcome
	err     error
}

// runTranspileWithUI drives the pipeline in a goroutine and renders its
// progress events with Bubble Tea until the event channel closes.
func runTranspileWithUI(cmd *cobra.Command, title string, files []string, fileSet *source.FileSet, req *buildpipeline.Request) (buildpipeline.Outcome, error) {
	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan transpileOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = buildpipeline.ChannelSink{Ch: events}
		res, err := buildpipeline.Transpile(cmd.Context(), fileSet, &reqCopy)
		outcomeCh <- transpileOutcome{outcome: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	out := <-outcomeCh
	if uiErr != nil {
		return out.outcome, uiErr
	}
	return out.outcome, out.err
}
