package main

import (
	"io"

	"rtbuild/internal/buildpipeline"
	"rtbuild/internal/observ"
)

// printStageTimings writes the recorded pipeline stages in execution order.
func printStageTimings(out io.Writer, timings buildpipeline.Timings) error {
	if out == nil {
		return nil
	}
	report := observ.NewReport()
	for _, stage := range buildpipeline.Stages {
		if timings.Has(stage) {
			report.Add(string(stage), timings.Duration(stage), "")
		}
	}
	_, err := io.WriteString(out, report.Summary())
	return err
}
