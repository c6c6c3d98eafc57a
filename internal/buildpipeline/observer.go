package buildpipeline

import (
	"time"

	"gul/internal/driver"
	"gul/internal/observ"
)

// phaseObserver turns driver phase events into per-file progress events.
type phaseObserver struct {
	sink    ProgressSink
	baseDir string
}

// OnPhase may be called from several file pipelines at once; the sink
// must tolerate that.
func (p *phaseObserver) OnPhase(ev driver.PhaseEvent) {
	if p == nil || p.sink == nil {
		return
	}
	stage, ok := stageOf(ev.Name)
	if !ok {
		return
	}
	file := displayName(ev.Path, p.baseDir)
	switch {
	case ev.Status == driver.PhaseStart:
		p.sink.OnEvent(Event{File: file, Stage: stage, Status: StatusWorking})
	case ev.Failed:
		p.sink.OnEvent(Event{File: file, Stage: stage, Status: StatusError, Elapsed: ev.Elapsed})
	default:
		// Phase end: same label, time spent so far.
		p.sink.OnEvent(Event{File: file, Stage: stage, Status: StatusWorking, Elapsed: ev.Elapsed})
	}
}

func stageOf(phase string) (Stage, bool) {
	switch phase {
	case driver.PhaseParse:
		return StageParse, true
	case driver.PhaseAnalyze:
		return StageAnalyze, true
	case driver.PhaseGenerate:
		return StageGenerate, true
	default:
		return "", false
	}
}

// recordPhaseTimings folds per-file timing reports into stage totals.
func recordPhaseTimings(timings *Timings, results []*driver.FileResult) {
	var sum observ.Report
	for _, r := range results {
		if r != nil && r.Timing != nil {
			sum.Add(*r.Timing)
		}
	}
	for _, phase := range sum.Phases {
		if stage, ok := stageOf(phase.Name); ok {
			timings.Set(stage, durationFromMillis(phase.DurationMS))
		}
	}
}

func durationFromMillis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

func emitQueued(sink ProgressSink, files []string) {
	if sink == nil {
		return
	}
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: StageLex, Status: StatusQueued})
	}
}

func emit(sink ProgressSink, file string, stage Stage, status Status, err error) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err})
}
