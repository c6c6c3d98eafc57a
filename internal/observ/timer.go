// Package observ records how long the compiler spends in each phase.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase records the duration and metadata of a compilation phase.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks the execution time of multiple compilation phases.
// It is not safe for concurrent use; parallel builds keep one per file.
type Timer struct {
	phases []Phase
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 4)} }

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes a phase by its index and returns its duration.
func (t *Timer) End(idx int, note string) time.Duration {
	if idx < 0 || idx >= len(t.phases) {
		return 0
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
	return p.Dur
}

// Summary returns a human-readable table of all tracked phases.
func (t *Timer) Summary() string {
	return t.Report().String()
}

// PhaseReport is the serializable form of a finished phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report aggregates the phases of one timer.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report lists the phases in start order with the total in milliseconds.
func (t *Timer) Report() Report {
	if len(t.phases) == 0 {
		return Report{}
	}
	report := Report{
		Phases: make([]PhaseReport, len(t.phases)),
	}
	var total time.Duration
	for i, phase := range t.phases {
		total += phase.Dur
		report.Phases[i] = PhaseReport{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Dur),
			Note:       phase.Note,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

func (r Report) String() string {
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&sb, "  %-20s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "  %-20s %7.2f ms\n", "total", r.TotalMS)
	return sb.String()
}

// Add folds other into r phase by phase; phases are matched by name.
func (r *Report) Add(other Report) {
	for _, p := range other.Phases {
		found := false
		for i := range r.Phases {
			if r.Phases[i].Name == p.Name {
				r.Phases[i].DurationMS += p.DurationMS
				found = true
				break
			}
		}
		if !found {
			r.Phases = append(r.Phases, PhaseReport{Name: p.Name, DurationMS: p.DurationMS})
		}
	}
	r.TotalMS += other.TotalMS
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
