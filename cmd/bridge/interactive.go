package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/async-bridge/errors"
	"github.com/wippyai/async-bridge/task"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	callStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// awaitModel shows a spinner until a task completes or the user gives up.
type awaitModel struct {
	start   time.Time
	err     error
	ctx     context.Context
	task    *task.Task[int64]
	cancel  context.CancelFunc
	label   string
	spinner spinner.Model
	value   int64
	done    bool
}

type awaitDoneMsg struct {
	err   error
	value int64
}

func newAwaitModel(ctx context.Context, t *task.Task[int64], label string) *awaitModel {
	ctx, cancel := context.WithCancel(ctx)
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = callStyle
	return &awaitModel{
		ctx:     ctx,
		cancel:  cancel,
		task:    t,
		label:   label,
		spinner: s,
		start:   time.Now(),
	}
}

func (m *awaitModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.wait)
}

func (m *awaitModel) wait() tea.Msg {
	v, err := m.task.AwaitContext(m.ctx)
	return awaitDoneMsg{value: v, err: err}
}

func (m *awaitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			// Unblocks wait; its awaitDoneMsg carries the canceled error.
			m.cancel()
		}
		return m, nil

	case awaitDoneMsg:
		m.value, m.err, m.done = msg.value, msg.err, true
		m.cancel()
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *awaitModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("async-bridge"))
	b.WriteString(" ")
	b.WriteString(callStyle.Render(m.label))
	b.WriteString("\n\n")

	switch {
	case !m.done:
		b.WriteString(m.spinner.View())
		b.WriteString(fmt.Sprintf(" waiting on task %s (%s)", m.task.ID(), time.Since(m.start).Round(time.Millisecond)))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("q stop waiting"))
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	default:
		b.WriteString(resultStyle.Render(fmt.Sprintf("completed with %d", m.value)))
	}
	b.WriteString("\n")

	return b.String()
}

func awaitInteractive(ctx context.Context, t *task.Task[int64], label string) (int64, error) {
	m := newAwaitModel(ctx, t, label)
	defer m.cancel()

	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return 0, err
	}

	fm := final.(*awaitModel)
	if !fm.done {
		return 0, errors.Canceled(t.ID(), context.Canceled)
	}
	return fm.value, fm.err
}
