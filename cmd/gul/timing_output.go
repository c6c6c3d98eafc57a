package main

import (
	"fmt"
	"io"
	"time"

	"gul/internal/buildpipeline"
)

var stageVerbs = map[buildpipeline.Stage]string{
	buildpipeline.StageLex:      "lexed",
	buildpipeline.StageParse:    "parsed",
	buildpipeline.StageAnalyze:  "analyzed",
	buildpipeline.StageGenerate: "generated",
	buildpipeline.StageWrite:    "wrote",
}

func printStageTimings(out io.Writer, timings buildpipeline.Timings) {
	if out == nil {
		return
	}
	for _, stage := range buildpipeline.Stages {
		if !timings.Has(stage) {
			continue
		}
		fmt.Fprintf(out, "%s %.1f ms\n", stageVerbs[stage], toMillis(timings.Duration(stage)))
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
