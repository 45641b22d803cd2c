package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/harrisonrobin/dayblock/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlanner struct {
	done     map[string]bool
	quote    string
	err      error
	toggled  []string
	refreshs int
}

func (f *fakePlanner) ToggleCompletion(_ context.Context, id string) (bool, error) {
	f.toggled = append(f.toggled, id)
	if f.err != nil {
		return false, f.err
	}
	f.done[id] = !f.done[id]
	return f.done[id], nil
}

func (f *fakePlanner) RefreshQuote(context.Context) (string, error) {
	f.refreshs++
	return f.quote, f.err
}

func testSchedule() *model.Schedule {
	return &model.Schedule{
		Date:  "2026-10-16",
		Quote: "old quote",
		Tasks: []model.Task{
			{ID: "a", Title: "Write report", TimeStart: "09:00", TimeEnd: "10:30", Priority: model.PriorityHigh},
			{ID: "b", Title: "Groceries", TimeStart: "10:45", TimeEnd: "11:45", Priority: model.PriorityMedium},
		},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key and runs any resulting command back through Update.
func press(t *testing.T, m Model, k string) Model {
	t.Helper()
	next, cmd := m.Update(key(k))
	m = next.(Model)
	if cmd != nil {
		next, _ = m.Update(cmd())
		m = next.(Model)
	}
	return m
}

func newModel(p *fakePlanner) Model {
	m := New(context.Background(), p, &model.User{FirstName: "Ada", Surname: "Lovelace"}, testSchedule(), nil, nil)
	m.now = func() time.Time { return time.Date(2026, 10, 16, 9, 15, 0, 0, time.Local) }
	return m
}

func TestCursorMovement(t *testing.T) {
	m := newModel(&fakePlanner{done: map[string]bool{}})

	m = press(t, m, "k")
	assert.Equal(t, 0, m.cursor)
	m = press(t, m, "j")
	assert.Equal(t, 1, m.cursor)
	m = press(t, m, "down")
	assert.Equal(t, 1, m.cursor, "cursor stays on the last task")
}

func TestToggleCompletion(t *testing.T) {
	p := &fakePlanner{done: map[string]bool{}}
	m := newModel(p)

	m = press(t, m, "j")
	m = press(t, m, "space")
	assert.Equal(t, []string{"b"}, p.toggled)
	assert.True(t, m.done["b"])
	assert.False(t, m.busy)
	assert.Contains(t, m.View(), "1/2 done")

	m = press(t, m, "enter")
	assert.False(t, m.done["b"])
	assert.Contains(t, m.View(), "0/2 done")
}

func TestBusyIgnoresRepeatedToggles(t *testing.T) {
	p := &fakePlanner{done: map[string]bool{}}
	m := newModel(p)

	next, cmd := m.Update(key("space"))
	require.NotNil(t, cmd)
	m = next.(Model)
	assert.True(t, m.busy)

	_, second := m.Update(key("space"))
	assert.Nil(t, second)
}

func TestFailureClearsBusyAndShowsError(t *testing.T) {
	p := &fakePlanner{done: map[string]bool{}, err: errors.New("disk full")}
	m := newModel(p)

	m = press(t, m, "space")
	assert.False(t, m.busy)
	assert.False(t, m.done["a"])
	assert.Contains(t, m.View(), "disk full")

	m = press(t, m, "r")
	assert.False(t, m.busy)
	assert.Equal(t, "old quote", m.schedule.Quote)
}

func TestRefreshQuote(t *testing.T) {
	p := &fakePlanner{done: map[string]bool{}, quote: "fresh quote"}
	m := newModel(p)

	m = press(t, m, "r")
	assert.Equal(t, 1, p.refreshs)
	assert.Equal(t, "fresh quote", m.schedule.Quote)
	assert.Contains(t, m.View(), "fresh quote")
}

func TestQuit(t *testing.T) {
	m := newModel(&fakePlanner{done: map[string]bool{}})
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewWithoutSchedule(t *testing.T) {
	m := New(context.Background(), &fakePlanner{}, nil, nil, nil, nil)
	view := m.View()
	assert.Contains(t, view, "No schedule for today")

	m = press(t, m, "space")
	assert.False(t, m.busy)
}

func TestViewMarksCurrentBlock(t *testing.T) {
	m := newModel(&fakePlanner{done: map[string]bool{}})
	view := m.View()
	assert.Contains(t, view, "Ada Lovelace")
	assert.Contains(t, view, "← now")
	assert.Contains(t, view, "09:00-10:30")
}
