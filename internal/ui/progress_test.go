package ui

import (
	"math"
	"strings"
	"time"
	"testing"

	"gul/internal/buildpipeline"
)

func TestProgressModelAppliesEvents(t *testing.T) {
	events := make(chan buildpipeline.Event)
	m := NewProgressModel("build demo", []string{"a.gul", "b.gul"}, events).(*progressModel)

	m.applyEvent(buildpipeline.Event{File: "a.gul", Stage: buildpipeline.StageAnalyze, Status: buildpipeline.StatusWorking})
	m.applyEvent(buildpipeline.Event{File: "b.gul", Stage: buildpipeline.StageWrite, Status: buildpipeline.StatusDone})
	m.applyEvent(buildpipeline.Event{File: "unknown.gul", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusWorking})

	if m.items[0].status != "analyzing" || m.items[1].status != "done" {
		t.Fatalf("items = %+v", m.items)
	}
	if got, want := m.percent(), (0.35+1.0)/2; math.Abs(got-want) > 1e-9 {
		t.Fatalf("percent = %v, want %v", got, want)
	}

	view := m.View()
	for _, want := range []string{"build demo", "analyzing", "a.gul", "done", "1/2 files"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestProgressModelCountsFailuresAndElapsed(t *testing.T) {
	m := NewProgressModel("build", []string{"a.gul", "b.gul"}, nil).(*progressModel)
	m.applyEvent(buildpipeline.Event{File: "a.gul", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusWorking})
	m.applyEvent(buildpipeline.Event{File: "a.gul", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusError, Elapsed: 3 * time.Millisecond})
	m.applyEvent(buildpipeline.Event{File: "b.gul", Stage: buildpipeline.StageWrite, Status: buildpipeline.StatusDone})

	if got := m.items[0].elapsed; got != 3*time.Millisecond {
		t.Fatalf("elapsed = %v", got)
	}
	counts := m.counts()
	if !strings.Contains(counts, "2/2 files") || !strings.Contains(counts, "1 failed") {
		t.Fatalf("counts = %q", counts)
	}
	if m.percent() != 1 {
		t.Fatalf("percent = %v", m.percent())
	}
}

func TestProgressModelBuildLevelEvent(t *testing.T) {
	m := NewProgressModel("build", []string{"a.gul"}, nil).(*progressModel)
	m.applyEvent(buildpipeline.Event{Stage: buildpipeline.StageGenerate, Status: buildpipeline.StatusWorking})
	if m.stageLabel != "generating" {
		t.Fatalf("stage label = %q", m.stageLabel)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.gul", 20, "short.gul"},
		{"very/long/path/to/file.gul", 10, "very/lo..."},
		{"abcdef", 3, "abc"},
		{"anything", 0, "anything"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
