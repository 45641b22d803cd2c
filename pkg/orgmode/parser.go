package orgmode

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"
)

// Item is one TODO or DONE headline.
type Item struct {
	Title    string
	Priority string // org priority cookie letter, e.g. "A"
	Tags     []string
	Done     bool
}

var headlineRegex = regexp.MustCompile(`^\*+\s+(TODO|DONE)(?:\s+|$)(?:\[#([A-Z])\])?\s*(.*?)(?:\s+:([\w@]+(?::[\w@]+)*):)?\s*$`)

// parseFile parses an Org-mode file and returns its headlines.
func parseFile(filePath string) ([]Item, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Parse(file)
}

// ParseFiles parses multiple Org-mode files and returns their headlines in file order.
func ParseFiles(filePaths []string) ([]Item, error) {
	var all []Item
	for _, filePath := range filePaths {
		items, err := parseFile(filePath)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
	}
	return all, nil
}

// Parse reads TODO/DONE headlines at any outline depth.
func Parse(r io.Reader) ([]Item, error) {
	scanner := bufio.NewScanner(r)
	var items []Item

	for scanner.Scan() {
		m := headlineRegex.FindStringSubmatch(strings.TrimSpace(scanner.Text()))
		if m == nil {
			continue
		}
		item := Item{
			Done:     m[1] == "DONE",
			Priority: m[2],
			Title:    strings.TrimSpace(m[3]),
		}
		if m[4] != "" {
			item.Tags = strings.Split(m[4], ":")
		}
		if item.Title != "" {
			items = append(items, item)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// FilterTasks keeps the items carrying tag. An empty tag keeps everything.
func FilterTasks(items []Item, tag string) []Item {
	if tag == "" {
		return items
	}
	var filtered []Item
	for _, item := range items {
		for _, t := range item.Tags {
			if t == tag {
				filtered = append(filtered, item)
				break
			}
		}
	}
	return filtered
}

// Titles returns the titles of open items, one per line, ready for scheduling.
func Titles(items []Item) string {
	var lines []string
	for _, item := range items {
		if !item.Done {
			lines = append(lines, item.Title)
		}
	}
	return strings.Join(lines, "\n")
}
