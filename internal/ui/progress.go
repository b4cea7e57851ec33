package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"spicy/internal/pipeline"
)

type progressModel struct {
	title   string
	events  <-chan pipeline.Event
	spinner spinner.Model
	prog    progress.Model
	items   []fileItem
	index   map[string]int
	width   int
	done    bool
}

type fileItem struct {
	path   string
	stage  pipeline.Stage
	errors int
}

type eventMsg pipeline.Event
type doneMsg struct{}

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// NewProgressModel returns a Bubble Tea model that renders check progress
// for a set of files.
func NewProgressModel(title string, files []string, events <-chan pipeline.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, fileItem{path: file, stage: pipeline.StageQueued})
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

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		m.applyEvent(pipeline.Event(msg))
		return m, m.listenForEvent()
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
		m.width = msg.Width
		if m.width > 4 {
			m.prog.Width = m.width - 4
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			return m, tea.Quit
		}
		return m, nil
	}
	return m, nil
}

func (m *progressModel) applyEvent(ev pipeline.Event) {
	i, ok := m.index[ev.Path]
	if !ok {
		return
	}
	m.items[i].stage = ev.Stage
	m.items[i].errors = ev.Errors
}

func (m *progressModel) completed() int {
	n := 0
	for _, item := range m.items {
		if item.stage == pipeline.StageDone || item.stage == pipeline.StageFailed {
			n++
		}
	}
	return n
}

func (m *progressModel) View() string {
	var sb strings.Builder

	sb.WriteString(m.spinner.View())
	sb.WriteByte(' ')
	sb.WriteString(m.title)
	sb.WriteByte('\n')

	if len(m.items) > 0 {
		ratio := float64(m.completed()) / float64(len(m.items))
		sb.WriteString(m.prog.ViewAs(ratio))
		sb.WriteByte('\n')
	}

	for _, item := range m.items {
		sb.WriteString(renderItem(item, m.width))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func renderItem(item fileItem, width int) string {
	var status string
	switch item.stage {
	case pipeline.StageDone:
		status = okStyle.Render("ok")
	case pipeline.StageFailed:
		status = failStyle.Render(fmt.Sprintf("%d error(s)", item.errors))
	case pipeline.StageQueued:
		status = dimStyle.Render("queued")
	default:
		status = dimStyle.Render(item.stage.String())
	}

	path := item.path
	avail := width - runewidth.StringWidth(status) - 4
	if avail > 0 && runewidth.StringWidth(path) > avail {
		path = runewidth.TruncateLeft(path, runewidth.StringWidth(path)-avail, "…")
	}
	return fmt.Sprintf("  %s %s", path, status)
}
