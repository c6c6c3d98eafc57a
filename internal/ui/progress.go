// Package ui renders per-file build progress in the terminal.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"gul/internal/buildpipeline"
)

// stageInfo is how a working file is labelled and how far along the bar it
// counts.
type stageInfo struct {
	label    string
	fraction float64
}

var stageTable = map[buildpipeline.Stage]stageInfo{
	buildpipeline.StageLex:      {"parsing", 0},
	buildpipeline.StageParse:    {"parsing", 0.1},
	buildpipeline.StageAnalyze:  {"analyzing", 0.35},
	buildpipeline.StageGenerate: {"generating", 0.7},
	buildpipeline.StageWrite:    {"writing", 0.9},
}

const (
	statusQueued = "queued"
	statusDone   = "done"
	statusError  = "error"

	statusColumn = 12
	minNameWidth = 20
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	idleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	elapsedStyle = lipgloss.NewStyle().Faint(true)
)

type progressModel struct {
	title      string
	events     <-chan buildpipeline.Event
	spinner    spinner.Model
	bar        progress.Model
	items      []fileItem
	byName     map[string]int
	stageLabel string
	width      int
	finished   bool
}

type fileItem struct {
	path    string
	status  string
	stage   buildpipeline.Stage
	elapsed time.Duration
}

type eventMsg buildpipeline.Event
type closedMsg struct{}

// NewProgressModel returns a Bubble Tea model that follows build events
// until the channel is closed.
func NewProgressModel(title string, files []string, events <-chan buildpipeline.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = activeStyle

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		items:   make([]fileItem, len(files)),
		byName:  make(map[string]int, len(files)),
		width:   80,
	}
	for i, file := range files {
		m.items[i] = fileItem{path: file, status: statusQueued, stage: buildpipeline.StageLex}
		m.byName[file] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.applyEvent(buildpipeline.Event(msg)), m.waitForEvent())
	case closedMsg:
		m.finished = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.finished {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = max(msg.Width-4, 10)
		}
	case progress.FrameMsg:
		updated, cmd := m.bar.Update(msg)
		m.bar = updated.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	header := m.title
	if m.stageLabel != "" {
		header += " (" + m.stageLabel + ")"
	}
	if m.finished {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-statusColumn-14, minNameWidth)
	for _, item := range m.items {
		status := styleStatus(item.status).Render(fmt.Sprintf("%*s", statusColumn, item.status))
		fmt.Fprintf(&b, "  %s %s", status, truncate(item.path, nameWidth))
		if item.elapsed > 0 {
			b.WriteString(" ")
			b.WriteString(elapsedStyle.Render(item.elapsed.Round(time.Millisecond).String()))
		}
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	if m.finished {
		b.WriteString(m.bar.ViewAs(1.0))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	b.WriteString(m.counts())
	b.WriteByte('\n')
	return b.String()
}

// counts summarizes finished and failed files under the bar.
func (m *progressModel) counts() string {
	done, failed := 0, 0
	for _, item := range m.items {
		switch item.status {
		case statusDone:
			done++
		case statusError:
			failed++
		}
	}
	line := fmt.Sprintf("%d/%d files", done+failed, len(m.items))
	if failed > 0 {
		line += ", " + failedStyle.Render(fmt.Sprintf("%d failed", failed))
	}
	return line
}

func (m *progressModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(ev)
	}
}

// applyEvent updates one file, or the header for build-level events.
func (m *progressModel) applyEvent(ev buildpipeline.Event) tea.Cmd {
	label := statusLabel(ev.Stage, ev.Status)
	if label == "" {
		return nil
	}
	if ev.File == "" {
		m.stageLabel = label
		return nil
	}
	idx, ok := m.byName[ev.File]
	if !ok {
		return nil
	}
	item := &m.items[idx]
	item.status = label
	item.stage = ev.Stage
	item.elapsed += ev.Elapsed
	return m.bar.SetPercent(m.percent())
}

// percent counts finished files as complete and the rest by stage.
func (m *progressModel) percent() float64 {
	if len(m.items) == 0 {
		return 0
	}
	total := 0.0
	for _, item := range m.items {
		if item.status == statusDone || item.status == statusError {
			total++
			continue
		}
		total += stageTable[item.stage].fraction
	}
	return total / float64(len(m.items))
}

func statusLabel(stage buildpipeline.Stage, status buildpipeline.Status) string {
	switch status {
	case buildpipeline.StatusQueued:
		return statusQueued
	case buildpipeline.StatusDone:
		return statusDone
	case buildpipeline.StatusError:
		return statusError
	case buildpipeline.StatusWorking:
		return stageTable[stage].label
	}
	return ""
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case statusDone:
		return doneStyle
	case statusError:
		return failedStyle
	case statusQueued:
		return idleStyle
	}
	return activeStyle
}

// truncate shortens value to width terminal cells, marking the cut with
// "..." when there is room for it.
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
