package model

import "time"

// Priority is the heuristic urgency of a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Task is one time block of a generated schedule.
type Task struct {
	ID        string   `json:"id" yaml:"id"`
	Title     string   `json:"title" yaml:"title"`
	TimeStart string   `json:"timeStart" yaml:"time_start"` // HH:MM, hours may exceed 23
	TimeEnd   string   `json:"timeEnd" yaml:"time_end"`
	Priority  Priority `json:"priority" yaml:"priority"`
	// Completed is always false as generated; completion is tracked in a separate record.
	Completed bool `json:"completed" yaml:"completed"`
}

// Schedule is the plan for a single day.
type Schedule struct {
	Date  string `json:"date" yaml:"date"` // YYYY-MM-DD
	Tasks []Task `json:"tasks" yaml:"tasks"`
	Quote string `json:"quote" yaml:"quote"`
}

// Date formats t as the ISO calendar day used by Schedule.Date.
func Date(t time.Time) string {
	return t.Format(time.DateOnly)
}

// Find returns the task with the given ID.
func (s *Schedule) Find(id string) (Task, bool) {
	if s == nil {
		return Task{}, false
	}
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}
