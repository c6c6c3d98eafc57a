package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a compilation phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// Phase names reported to observers.
const (
	PhaseParse    = "parse"
	PhaseAnalyze  = "analyze"
	PhaseGenerate = "generate"
)

// PhaseEvent describes a phase boundary of one file's pipeline.
type PhaseEvent struct {
	Path    string
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
	// Failed is set on PhaseEnd when the phase reported errors.
	Failed bool
}

// PhaseObserver receives phase events. Directory builds call it from
// several goroutines.
type PhaseObserver func(PhaseEvent)
