// Package export renders a schedule as a shareable document.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/harrisonrobin/dayblock/pkg/model"
	"gopkg.in/yaml.v3"
)

// Exporter writes s, owned by u, to w. done holds the IDs of completed tasks.
type Exporter interface {
	Export(w io.Writer, s *model.Schedule, u *model.User, done map[string]bool) error
	Extension() string
}

var exporters = map[string]Exporter{
	"markdown": Markdown{},
	"json":     JSON{},
	"yaml":     YAML{},
}

// ForFormat returns the exporter registered under name.
func ForFormat(name string) (Exporter, error) {
	e, ok := exporters[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown export format %q (available: %s)", name, strings.Join(Formats(), ", "))
	}
	return e, nil
}

func Formats() []string {
	names := make([]string, 0, len(exporters))
	for n := range exporters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Markdown renders a printable daily plan.
type Markdown struct{}

func (Markdown) Extension() string { return ".md" }

func (Markdown) Export(w io.Writer, s *model.Schedule, u *model.User, done map[string]bool) error {
	var b strings.Builder
	b.WriteString("# Daily Schedule\n\n")
	if u != nil {
		fmt.Fprintf(&b, "**%s** <%s>  \n", u.FullName(), u.Email)
	}
	fmt.Fprintf(&b, "**Date:** %s\n\n", s.Date)
	if s.Quote != "" {
		fmt.Fprintf(&b, "> %s\n\n", s.Quote)
	}

	b.WriteString("| Time | Task | Priority | Done |\n")
	b.WriteString("|------|------|----------|------|\n")
	completed := 0
	for _, t := range s.Tasks {
		mark := ""
		if done[t.ID] {
			mark = "✓"
			completed++
		}
		fmt.Fprintf(&b, "| %s–%s | %s | %s | %s |\n", t.TimeStart, t.TimeEnd, escapeCell(t.Title), t.Priority, mark)
	}
	fmt.Fprintf(&b, "\n%d of %d tasks completed.\n", completed, len(s.Tasks))

	_, err := io.WriteString(w, b.String())
	return err
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// JSON writes the schedule record exactly as it is stored.
type JSON struct{}

func (JSON) Extension() string { return ".json" }

func (JSON) Export(w io.Writer, s *model.Schedule, _ *model.User, _ map[string]bool) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

type yamlDocument struct {
	User  *model.User  `yaml:"user,omitempty"`
	Date  string       `yaml:"date"`
	Quote string       `yaml:"quote"`
	Tasks []model.Task `yaml:"tasks"`
}

// YAML writes the schedule with completion folded into each task, plus the profile.
type YAML struct{}

func (YAML) Extension() string { return ".yaml" }

func (YAML) Export(w io.Writer, s *model.Schedule, u *model.User, done map[string]bool) error {
	doc := yamlDocument{User: u, Date: s.Date, Quote: s.Quote}
	for _, t := range s.Tasks {
		t.Completed = done[t.ID]
		doc.Tasks = append(doc.Tasks, t)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}
