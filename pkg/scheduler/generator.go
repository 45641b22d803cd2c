// Package scheduler turns a free-text task list into time blocks.
//
// Generation is pure: it performs no I/O and cannot fail. Callers are expected
// to reject blank input and to pass a well-formed HH:MM start time; a malformed
// one is read leniently and yields meaningless offsets.
package scheduler

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/harrisonrobin/dayblock/pkg/model"
)

// Quotes is the fixed pool a schedule's motivational quote is drawn from.
var Quotes = [...]string{
	"Success is built one focused hour at a time.",
	"Turn your dreams into scheduled reality today.",
	"Every completed task brings you closer to greatness.",
	"Productivity is the bridge between dreams and achievements.",
	"Focus transforms ordinary moments into extraordinary results.",
	"Your future self will thank you for today's dedication.",
	"Small consistent actions create massive life changes.",
	"Time blocked wisely becomes unstoppable momentum forward.",
	"Excellence emerges from intentional daily choices made.",
	"Today's schedule shapes tomorrow's success story completely.",
}

// RandomSource picks an index in [0, n). *rand.Rand satisfies it.
type RandomSource interface {
	IntN(n int) int
}

// IDFunc builds a task identifier from a per-run token and the task position.
type IDFunc func(run string, index int) string

type Generator struct {
	rng   RandomSource
	newID IDFunc
	runID func() string
}

type Option func(*Generator)

func WithRandom(src RandomSource) Option {
	return func(g *Generator) { g.rng = src }
}

// WithSeed makes quote selection reproducible.
func WithSeed(seed uint64) Option {
	return WithRandom(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

func WithIDFunc(fn IDFunc) Option {
	return func(g *Generator) { g.newID = fn }
}

func defaultID(run string, index int) string {
	return fmt.Sprintf("task-%s-%d", run, index)
}

func New(opts ...Option) *Generator {
	g := &Generator{
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		newID: defaultID,
		runID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate packs one block per non-blank line of raw, in input order, starting
// at startTime. It returns nil and an empty quote when raw has no task lines.
func (g *Generator) Generate(raw, startTime string, mode model.FocusMode) ([]model.Task, string) {
	titles := SplitTasks(raw)
	if len(titles) == 0 {
		return nil, ""
	}

	run := g.runID()
	cursor := model.LooseClock(startTime)
	tasks := make([]model.Task, 0, len(titles))

	for i, title := range titles {
		priority := Classify(title)
		duration := PomodoroMinutes
		if mode != model.FocusPomodoro {
			duration = EstimateDuration(title, priority)
		}

		start := cursor
		cursor += duration
		tasks = append(tasks, model.Task{
			ID:        g.newID(run, i),
			Title:     title,
			TimeStart: model.FormatClock(start),
			TimeEnd:   model.FormatClock(cursor),
			Priority:  priority,
		})
		cursor += breakAfter(mode, i)
	}

	return tasks, g.Quote()
}

// Quote draws a quote uniformly from Quotes.
func (g *Generator) Quote() string {
	return Quotes[g.rng.IntN(len(Quotes))]
}
