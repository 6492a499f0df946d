package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"rtbuild/internal/buildpipeline"
	"rtbuild/internal/ui"
)

type buildOutcome struct {
	result buildpipeline.BuildResult
	err    error
}

// runProgram drives the terminal UI until it quits.
var runProgram = func(model tea.Model) error {
	_, err := tea.NewProgram(model, tea.WithOutput(os.Stdout)).Run()
	return err
}

// runBuildWithUI runs the pipeline in the background and renders its
// events. Once the UI exits, for whatever reason, the build is cancelled
// and its remaining events are drained so the pipeline can return.
func runBuildWithUI(ctx context.Context, title string, files []string, req *buildpipeline.BuildRequest) (buildpipeline.BuildResult, error) {
	if req == nil {
		return buildpipeline.BuildResult{}, fmt.Errorf("missing build request")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan buildOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = buildpipeline.ChannelSink{Ch: events}
		res, err := buildpipeline.Build(ctx, &reqCopy)
		outcomeCh <- buildOutcome{result: res, err: err}
		close(events)
	}()

	uiErr := runProgram(ui.NewProgressModel(title, files, events))
	cancel()
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
