package scheduler

import (
	"strings"
	"unicode/utf8"

	"github.com/harrisonrobin/dayblock/pkg/model"
)

var (
	highPriorityKeywords = []string{"urgent", "important", "deadline", "meeting", "call"}
	lowPriorityKeywords  = []string{"organize", "clean", "read", "research"}
)

const (
	PomodoroMinutes = 25

	pomodoroShortBreak = 5
	pomodoroLongBreak  = 30
	normalBreak        = 15
)

// SplitTasks turns free text into task titles, one per non-blank line.
func SplitTasks(raw string) []string {
	var titles []string
	for _, line := range strings.Split(raw, "\n") {
		if title := strings.TrimSpace(line); title != "" {
			titles = append(titles, title)
		}
	}
	return titles
}

// Classify assigns a priority from keywords in the title. High keywords win over low ones.
func Classify(title string) model.Priority {
	lower := strings.ToLower(title)
	if containsAny(lower, highPriorityKeywords) {
		return model.PriorityHigh
	}
	if containsAny(lower, lowPriorityKeywords) {
		return model.PriorityLow
	}
	return model.PriorityMedium
}

// EstimateDuration returns the normal-mode block length in minutes.
func EstimateDuration(title string, p model.Priority) int {
	base := 60
	switch p {
	case model.PriorityHigh:
		base = 90
	case model.PriorityLow:
		base = 45
	}

	n := utf8.RuneCountInString(title)
	switch {
	case n > 50:
		return base + 30
	case n > 30:
		return base + 15
	}
	return base
}

// breakAfter is the gap inserted after the task at index.
func breakAfter(mode model.FocusMode, index int) int {
	if mode == model.FocusPomodoro {
		if index%4 == 3 {
			return pomodoroLongBreak
		}
		return pomodoroShortBreak
	}
	return normalBreak
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
