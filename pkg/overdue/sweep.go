package overdue

import (
	"fmt"
	"time"

	"github.com/harrisonrobin/dayblock/pkg/model"
)

// Entry is a task whose block has ended without being marked done.
type Entry struct {
	Task model.Task
	End  time.Time
	Late time.Duration
}

// BlockTimes resolves a task's wall-clock block on the schedule's day in loc.
// Hours past 23 roll into the following day.
func BlockTimes(date string, task model.Task, loc *time.Location) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation(time.DateOnly, date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid schedule date %q: %w", date, err)
	}
	start := day.Add(time.Duration(model.LooseClock(task.TimeStart)) * time.Minute)
	end := day.Add(time.Duration(model.LooseClock(task.TimeEnd)) * time.Minute)
	return start, end, nil
}

// Sweep returns the incomplete tasks of s whose end is before now, in schedule order.
func Sweep(s *model.Schedule, completed map[string]bool, now time.Time) ([]Entry, error) {
	if s == nil {
		return nil, nil
	}
	var swept []Entry
	for _, task := range s.Tasks {
		if completed[task.ID] {
			continue
		}
		_, end, err := BlockTimes(s.Date, task, now.Location())
		if err != nil {
			return nil, err
		}
		if end.Before(now) {
			swept = append(swept, Entry{Task: task, End: end, Late: now.Sub(end)})
		}
	}
	return swept, nil
}

// Current returns the task whose block contains now, if any.
func Current(s *model.Schedule, now time.Time) (model.Task, bool) {
	if s == nil {
		return model.Task{}, false
	}
	for _, task := range s.Tasks {
		start, end, err := BlockTimes(s.Date, task, now.Location())
		if err != nil {
			return model.Task{}, false
		}
		if !now.Before(start) && now.Before(end) {
			return task, true
		}
	}
	return model.Task{}, false
}
