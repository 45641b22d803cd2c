package index

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

const indexFile = "events.json"

// Mapping is the calendar event a task became, and the schedule date it was exported for.
type Mapping struct {
	EventID string `json:"event_id"`
	Date    string `json:"date"`
}

// EventIndex remembers which calendar event each exported task became.
type EventIndex struct {
	Mappings map[string]Mapping `json:"mappings"`
	Path     string             `json:"-"`
	mu       sync.RWMutex
	dirty    bool
}

func NewEventIndex(dir string) (*EventIndex, error) {
	idx := &EventIndex{
		Mappings: make(map[string]Mapping),
		Path:     filepath.Join(dir, indexFile),
	}

	if _, err := os.Stat(idx.Path); err == nil {
		if err := idx.Load(); err != nil {
			return nil, err
		}
	}

	return idx, nil
}

func (idx *EventIndex) Load() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	f, err := os.Open(idx.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(&idx.Mappings)
}

func (idx *EventIndex) Save() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if !idx.dirty {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(idx.Path), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(idx.Path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(idx.Mappings); err != nil {
		return err
	}
	idx.dirty = false
	return nil
}

func (idx *EventIndex) Get(taskID string) string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.Mappings[taskID].EventID
}

// Set records that taskID, from the schedule dated date, was exported as eventID.
func (idx *EventIndex) Set(taskID, eventID, date string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	m := Mapping{EventID: eventID, Date: date}
	if idx.Mappings[taskID] != m {
		idx.Mappings[taskID] = m
		idx.dirty = true
	}
}

// Prune drops the mappings exported for date whose task is not in keep,
// returning the event IDs removed. Other dates are left alone.
func (idx *EventIndex) Prune(date string, keep map[string]bool) []string {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	var removed []string
	for taskID, m := range idx.Mappings {
		if m.Date == date && !keep[taskID] {
			removed = append(removed, m.EventID)
			delete(idx.Mappings, taskID)
			idx.dirty = true
		}
	}
	return removed
}

// Clear forgets all mappings.
func (idx *EventIndex) Clear() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if len(idx.Mappings) > 0 {
		idx.Mappings = make(map[string]Mapping)
		idx.dirty = true
	}
}
