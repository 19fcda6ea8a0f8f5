// Package ui renders live compile progress as a Bubble Tea program, grounded
// on the teacher's internal/ui package. The pipeline here has only one
// per-file stage (lower-hir); every other stage — resolve-includes, scope,
// typecheck, lower-tir, passes — runs once over the whole combined model, so
// unlike the teacher's per-file build/link stages, most of this model's
// stage events carry no File and only move the overall progress bar and
// header label forward.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/shackle-rs/mzc/internal/driver"
)

var stageOrder = []driver.Stage{
	driver.StageResolveIncludes,
	driver.StageLowerHIR,
	driver.StageScope,
	driver.StageTypecheck,
	driver.StageLowerTIR,
	driver.StagePasses,
}

type progressModel struct {
	title      string
	events     <-chan driver.Event
	spinner    spinner.Model
	prog       progress.Model
	items      []fileItem
	index      map[string]int
	stageLabel string
	stageIdx   int
	failed     bool
	width      int
	done       bool
}

type fileItem struct {
	path   string
	status string
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders a mzc compile's
// progress over events produced by driver.Compile via a driver.ChannelSink.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, fileItem{path: file, status: "queued"})
		index[file] = i
	}

	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
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
		next, cmd := m.prog.Update(msg)
		m.prog = next.(progress.Model)

		return m, cmd
	}

	return m, nil
}

func (m *progressModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))

	header := m.title
	if m.stageLabel != "" {
		header = fmt.Sprintf("%s (%s)", header, m.stageLabel)
	}

	switch {
	case m.done && m.failed:
		header = fmt.Sprintf("failed: %s", header)
	case m.done:
		header = fmt.Sprintf("done: %s", header)
	default:
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 12
	nameWidth := m.width - statusWidth - 4

	if nameWidth < 20 {
		nameWidth = 20
	}

	for _, item := range m.items {
		name := truncate(item.path, nameWidth)
		statusStyled := styleStatus(item.status).Render(fmt.Sprintf("%12s", item.status))
		b.WriteString(fmt.Sprintf("  %s %s", statusStyled, name))
		b.WriteString("\n")
	}

	b.WriteString("\n")

	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}

	b.WriteString("\n")

	return b.String()
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

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	if ev.Status == driver.StatusError {
		m.failed = true
	}

	if ev.File == "" {
		if label := stageLabel(ev.Stage, ev.Status); label != "" {
			m.stageLabel = label
		}

		if ev.Status == driver.StatusDone {
			m.stageIdx = stagePosition(ev.Stage) + 1
		}

		return m.prog.SetPercent(overallProgress(m.stageIdx, len(stageOrder), m.items))
	}

	idx, ok := m.index[ev.File]
	if !ok {
		return nil
	}

	switch ev.Status {
	case driver.StatusWorking:
		m.items[idx].status = "lowering"
	case driver.StatusDone:
		m.items[idx].status = "done"
	case driver.StatusError:
		m.items[idx].status = "error"
	}

	return m.prog.SetPercent(overallProgress(m.stageIdx, len(stageOrder), m.items))
}

// overallProgress blends completed whole-pipeline stages with the fraction
// of files lowered so far, since lower-hir is the only stage with interim
// per-file feedback.
func overallProgress(stageIdx, total int, items []fileItem) float64 {
	if total == 0 {
		return 1.0
	}

	base := float64(stageIdx) / float64(total)

	if len(items) == 0 {
		return base
	}

	done := 0.0
	for _, it := range items {
		if it.status == "done" || it.status == "error" {
			done++
		}
	}

	fileFraction := done / float64(len(items)) / float64(total)

	return base + fileFraction
}

func stagePosition(stage driver.Stage) int {
	for i, s := range stageOrder {
		if s == stage {
			return i
		}
	}

	return 0
}

func stageLabel(stage driver.Stage, status driver.Status) string {
	if status == driver.StatusError {
		return "error"
	}

	switch stage {
	case driver.StageResolveIncludes:
		return "resolving includes"
	case driver.StageLowerHIR:
		return "lowering"
	case driver.StageScope:
		return "resolving scopes"
	case driver.StageTypecheck:
		return "type-checking"
	case driver.StageLowerTIR:
		return "lowering to TIR"
	case driver.StagePasses:
		return "rewriting"
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
	case "lowering":
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
