// Package tui is the interactive daily dashboard.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/harrisonrobin/dayblock/pkg/colors"
	"github.com/harrisonrobin/dayblock/pkg/model"
	"github.com/harrisonrobin/dayblock/pkg/overdue"
	"go.uber.org/zap"
)

// Planner is the subset of planner.Planner the dashboard drives.
type Planner interface {
	ToggleCompletion(ctx context.Context, taskID string) (bool, error)
	RefreshQuote(ctx context.Context) (string, error)
}

type toggledMsg struct {
	id   string
	done bool
	err  error
}

type quoteMsg struct {
	quote string
	err   error
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4")).Padding(0, 1)
	quoteStyle  = colors.Muted.Italic(true)
	cursorStyle = colors.Accent.Bold(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type Model struct {
	ctx      context.Context
	planner  Planner
	log      *zap.Logger
	now      func() time.Time
	user     *model.User
	schedule *model.Schedule
	done     map[string]bool
	cursor   int
	busy     bool
	status   string
	err      error
	help     help.Model
}

func New(ctx context.Context, p Planner, u *model.User, s *model.Schedule, done map[string]bool, log *zap.Logger) Model {
	if done == nil {
		done = make(map[string]bool)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return Model{
		ctx:      ctx,
		planner:  p,
		log:      log,
		now:      time.Now,
		user:     u,
		schedule: s,
		done:     done,
		help:     help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case toggledMsg:
		m.busy = false
		if msg.err != nil {
			m.log.Error("failed to toggle task", zap.String("task_id", msg.id), zap.Error(msg.err))
			m.err = msg.err
			m.status = ""
			return m, nil
		}
		m.err = nil
		m.done[msg.id] = msg.done
		if msg.done {
			m.status = "marked done"
		} else {
			m.status = "marked not done"
		}
		return m, nil

	case quoteMsg:
		m.busy = false
		if msg.err != nil {
			m.log.Error("failed to refresh quote", zap.Error(msg.err))
			m.err = msg.err
			m.status = ""
			return m, nil
		}
		m.err = nil
		if m.schedule != nil {
			m.schedule.Quote = msg.quote
		}
		m.status = "new quote"
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < m.taskCount()-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Toggle):
		if m.busy || m.taskCount() == 0 {
			return m, nil
		}
		m.busy = true
		return m, m.toggle(m.schedule.Tasks[m.cursor].ID)
	case key.Matches(msg, keys.Quote):
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.status = "thinking..."
		return m, m.refresh()
	}
	return m, nil
}

func (m Model) toggle(id string) tea.Cmd {
	return func() tea.Msg {
		done, err := m.planner.ToggleCompletion(m.ctx, id)
		return toggledMsg{id: id, done: done, err: err}
	}
}

func (m Model) refresh() tea.Cmd {
	return func() tea.Msg {
		quote, err := m.planner.RefreshQuote(m.ctx)
		return quoteMsg{quote: quote, err: err}
	}
}

func (m Model) taskCount() int {
	if m.schedule == nil {
		return 0
	}
	return len(m.schedule.Tasks)
}

func (m Model) View() string {
	var b strings.Builder

	header := "Dayblock"
	if m.user != nil {
		header = fmt.Sprintf("Dayblock · %s", m.user.FullName())
	}
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	if m.taskCount() == 0 {
		b.WriteString(colors.Muted.Render("No schedule for today. Run `dayblock generate` first."))
		b.WriteString("\n\n")
	} else {
		fmt.Fprintf(&b, "%s\n", m.schedule.Date)
		if m.schedule.Quote != "" {
			b.WriteString(quoteStyle.Render(m.schedule.Quote))
			b.WriteString("\n")
		}
		b.WriteString("\n")

		current, hasCurrent := overdue.Current(m.schedule, m.now())
		completed := 0
		for i, t := range m.schedule.Tasks {
			cursor := "  "
			if i == m.cursor {
				cursor = cursorStyle.Render("> ")
			}
			check := "[ ]"
			title := t.Title
			if m.done[t.ID] {
				check = "[x]"
				title = colors.Done.Render(title)
				completed++
			}
			now := ""
			if hasCurrent && current.ID == t.ID {
				now = colors.Accent.Render("  ← now")
			}
			fmt.Fprintf(&b, "%s%s %s-%s %s %s%s\n",
				cursor, check, t.TimeStart, t.TimeEnd,
				colors.Style(t.Priority).Render(fmt.Sprintf("%-6s", t.Priority)),
				title, now)
		}
		fmt.Fprintf(&b, "\n%d/%d done\n", completed, m.taskCount())
	}

	switch {
	case m.err != nil:
		b.WriteString(errStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	case m.status != "":
		b.WriteString(colors.Muted.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(keys))
	b.WriteString("\n")
	return b.String()
}
