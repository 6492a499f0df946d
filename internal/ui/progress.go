// Package ui renders build progress in the terminal.
package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"rtbuild/internal/buildpipeline"
)

// maxActive bounds the in-flight files listed under the header.
const maxActive = 8

type progressModel struct {
	title    string
	events   <-chan buildpipeline.Event
	spinner  spinner.Model
	prog     progress.Model
	total    int
	status   map[string]buildpipeline.Status
	finished int
	failed   []string
	stage    buildpipeline.Stage
	stageErr bool
	width    int
	done     bool

	// interrupted is set when the user quits before the pipeline finishes.
	interrupted bool
}

type eventMsg buildpipeline.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders pipeline progress.
func NewProgressModel(title string, files []string, events <-chan buildpipeline.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	status := make(map[string]buildpipeline.Status, len(files))
	for _, file := range files {
		status[file] = buildpipeline.StatusQueued
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		total:   len(files),
		status:  status,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(buildpipeline.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.interrupted = true
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if label := stageLabel(m.stage); label != "" {
		header = fmt.Sprintf("%s (%s)", header, label)
	}
	if m.interrupted {
		header = fmt.Sprintf("interrupted: %s", header)
	} else if m.done {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := m.width - 16
	if nameWidth < 20 {
		nameWidth = 20
	}
	fmt.Fprintf(&b, "  %s %d/%d\n", styleStatus("done").Render(fmt.Sprintf("%12s", "compiled")), m.finished, m.total)
	for _, file := range m.active() {
		fmt.Fprintf(&b, "  %s %s\n", styleStatus("compiling").Render(fmt.Sprintf("%12s", "compiling")), truncate(file, nameWidth))
	}
	for _, file := range m.failed {
		fmt.Fprintf(&b, "  %s %s\n", styleStatus("error").Render(fmt.Sprintf("%12s", "error")), truncate(file, nameWidth))
	}

	b.WriteString("\n")
	if m.done && !m.stageErr && len(m.failed) == 0 {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) active() []string {
	var files []string
	for file, st := range m.status {
		if st == buildpipeline.StatusWorking {
			files = append(files, file)
		}
	}
	sort.Strings(files)
	if len(files) > maxActive {
		files = files[:maxActive]
	}
	return files
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev buildpipeline.Event) tea.Cmd {
	if ev.File == "" {
		m.stage = ev.Stage
		if ev.Status == buildpipeline.StatusError {
			m.stageErr = true
		}
		return m.prog.SetPercent(m.percent())
	}
	prev, ok := m.status[ev.File]
	if !ok {
		return nil
	}
	m.status[ev.File] = ev.Status
	if prev != buildpipeline.StatusDone && prev != buildpipeline.StatusError {
		switch ev.Status {
		case buildpipeline.StatusDone:
			m.finished++
		case buildpipeline.StatusError:
			m.failed = append(m.failed, ev.File)
		}
	}
	return m.prog.SetPercent(m.percent())
}

// percent weights compile as most of the run; fetch and archive share the rest.
func (m *progressModel) percent() float64 {
	compiled := 0.0
	if m.total > 0 {
		compiled = float64(m.finished) / float64(m.total)
	}
	switch m.stage {
	case buildpipeline.StageFetch:
		return 0.0
	case buildpipeline.StageCompile:
		return 0.1 + 0.8*compiled
	case buildpipeline.StageArchive:
		return 0.95
	default:
		return 0.0
	}
}

func stageLabel(stage buildpipeline.Stage) string {
	switch stage {
	case buildpipeline.StageFetch:
		return "fetching"
	case buildpipeline.StageCompile:
		return "compiling"
	case buildpipeline.StageArchive:
		return "archiving"
	default:
		return ""
	}
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "done":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "error":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "compiling", "fetching", "archiving":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
