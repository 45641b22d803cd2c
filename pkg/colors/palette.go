package colors

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/harrisonrobin/dayblock/pkg/model"
)

// Swatch is how one priority is painted in the terminal and in Google Calendar.
type Swatch struct {
	Hex     string // terminal foreground
	ColorID string // Google Calendar event color
}

var palette = map[model.Priority]Swatch{
	model.PriorityHigh:   {Hex: "#ff6b6b", ColorID: "11"}, // tomato
	model.PriorityMedium: {Hex: "#ffd93d", ColorID: "5"},  // banana
	model.PriorityLow:    {Hex: "#6bcf7f", ColorID: "10"}, // basil
}

// fallback for anything outside the three priorities
var fallback = Swatch{Hex: "#00e0ff", ColorID: "7"} // peacock

func For(p model.Priority) Swatch {
	if s, ok := palette[p]; ok {
		return s
	}
	return fallback
}

// GetColorID returns the Google Calendar color ID for a priority.
func GetColorID(p model.Priority) string {
	return For(p).ColorID
}

// Style returns a bold lipgloss style in the priority's color.
func Style(p model.Priority) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(For(p).Hex))
}

var (
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("#00e0ff"))
	Muted  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7d8590"))
	Done   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7d8590")).Strikethrough(true)
)
