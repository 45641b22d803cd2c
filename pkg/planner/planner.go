// Package planner drives the day: sign-in, schedule generation, quote
// refresh, completion tracking, settings and reset. It owns no state of its
// own; every operation reads and writes the repository, and a new schedule
// always replaces the previous one.
package planner

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/harrisonrobin/dayblock/pkg/model"
	"github.com/harrisonrobin/dayblock/pkg/scheduler"
	"github.com/harrisonrobin/dayblock/pkg/storage"
	"go.uber.org/zap"
)

var (
	ErrEmptyInput      = errors.New("no tasks to schedule")
	ErrSignedOut       = errors.New("no user signed in")
	ErrNoSchedule      = errors.New("no schedule for today")
	ErrInvalidSettings = errors.New("invalid settings")
)

type Planner struct {
	repo    *storage.Repository
	gen     *scheduler.Generator
	log     *zap.Logger
	now     func() time.Time
	latency time.Duration
}

type Option func(*Planner)

func WithLogger(l *zap.Logger) Option {
	return func(p *Planner) { p.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(p *Planner) { p.now = now }
}

// WithLatency adds a simulated think time before generation results are returned.
func WithLatency(d time.Duration) Option {
	return func(p *Planner) { p.latency = d }
}

func New(repo *storage.Repository, gen *scheduler.Generator, opts ...Option) *Planner {
	p := &Planner{
		repo: repo,
		gen:  gen,
		log:  zap.NewNop(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SignIn validates and stores the profile.
func (p *Planner) SignIn(ctx context.Context, u model.User) (model.User, error) {
	if err := u.Validate(); err != nil {
		return model.User{}, err
	}
	u = u.Normalize()
	if err := p.repo.SetUser(ctx, u); err != nil {
		return model.User{}, fmt.Errorf("failed to save user: %w", err)
	}
	p.log.Info("user signed in", zap.String("email", u.Email))
	return u, nil
}

func (p *Planner) CurrentUser(ctx context.Context) (*model.User, error) {
	u, err := p.repo.User(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if u == nil {
		return nil, ErrSignedOut
	}
	return u, nil
}

// Generate schedules raw with the stored settings and replaces today's schedule.
func (p *Planner) Generate(ctx context.Context, raw string) (*model.Schedule, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyInput
	}
	settings, err := p.repo.Settings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	tasks, quote := p.gen.Generate(raw, settings.PreferredStartTime, settings.FocusMode)
	schedule := model.Schedule{
		Date:  model.Date(p.now()),
		Tasks: tasks,
		Quote: quote,
	}
	if err := p.repo.SetSchedule(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to save schedule: %w", err)
	}

	p.log.Info("schedule generated",
		zap.String("date", schedule.Date),
		zap.Int("tasks", len(tasks)),
		zap.String("start", settings.PreferredStartTime),
		zap.String("mode", string(settings.FocusMode)))
	return &schedule, nil
}

// RefreshQuote draws a new quote and, when today's schedule is stored, swaps it in
// without touching the tasks. Schedules from earlier days keep their quote.
func (p *Planner) RefreshQuote(ctx context.Context) (string, error) {
	if err := p.wait(ctx); err != nil {
		return "", err
	}
	quote := p.gen.Quote()

	schedule, err := p.Today(ctx)
	if err != nil {
		return "", err
	}
	if schedule != nil {
		schedule.Quote = quote
		if err := p.repo.SetSchedule(ctx, *schedule); err != nil {
			return "", fmt.Errorf("failed to save schedule: %w", err)
		}
	}
	p.log.Debug("quote refreshed", zap.Bool("stored", schedule != nil))
	return quote, nil
}

// Today returns the stored schedule when it was generated today, otherwise nil.
func (p *Planner) Today(ctx context.Context) (*model.Schedule, error) {
	schedule, err := p.repo.Schedule(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}
	if schedule == nil || schedule.Date != model.Date(p.now()) {
		return nil, nil
	}
	return schedule, nil
}

// ToggleCompletion flips the done state of taskID and returns the new state.
func (p *Planner) ToggleCompletion(ctx context.Context, taskID string) (bool, error) {
	ids, err := p.repo.CompletedTasks(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load completed tasks: %w", err)
	}

	done := !slices.Contains(ids, taskID)
	if done {
		ids = append(ids, taskID)
	} else {
		ids = slices.DeleteFunc(ids, func(id string) bool { return id == taskID })
	}
	if err := p.repo.SetCompletedTasks(ctx, ids); err != nil {
		return false, fmt.Errorf("failed to save completed tasks: %w", err)
	}
	p.log.Debug("task toggled", zap.String("task_id", taskID), zap.Bool("done", done))
	return done, nil
}

// Completed returns the set of task IDs marked done.
func (p *Planner) Completed(ctx context.Context) (map[string]bool, error) {
	ids, err := p.repo.CompletedTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load completed tasks: %w", err)
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// Reset wipes the profile, schedule, settings and completed list.
func (p *Planner) Reset(ctx context.Context) error {
	if err := p.repo.ClearAll(ctx); err != nil {
		return err
	}
	p.log.Info("all data cleared")
	return nil
}

func (p *Planner) wait(ctx context.Context) error {
	if p.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(p.latency)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
