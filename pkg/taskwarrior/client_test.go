package taskwarrior

import (
	"strings"
	"testing"
	"time"
)

func TestParseTasks(t *testing.T) {
	input := `{
		"uuid": "f45a05b3-c12e-42e5-9c9c-333333333333",
		"description": "Buy milk",
		"status": "pending",
		"due": "20230101T120000Z",
		"project": "Groceries",
		"tags": ["buy", "food"],
		"urgency": 4.2
	}
	[{"uuid": "a", "description": "Call mom", "status": "pending", "urgency": 9}]`

	client := NewClient()
	tasks, err := client.ParseTasks(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTasks failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("Expected 2 tasks, got %d", len(tasks))
	}

	task := tasks[0]
	if task.UUID != "f45a05b3-c12e-42e5-9c9c-333333333333" {
		t.Errorf("Expected UUID f45a05b3-c12e-42e5-9c9c-333333333333, got %s", task.UUID)
	}
	if task.Project != "Groceries" {
		t.Errorf("Expected Project 'Groceries', got '%s'", task.Project)
	}
	if len(task.Tags) != 2 {
		t.Errorf("Expected 2 tags, got %d", len(task.Tags))
	}
	expectedDue, _ := time.Parse(time.RFC3339, "2023-01-01T12:00:00Z")
	if !task.Due.Time.Equal(expectedDue) {
		t.Errorf("Expected Due %v, got %v", expectedDue, task.Due.Time)
	}
}

func TestTitles(t *testing.T) {
	now := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)
	later := &CustomTime{Time: now.Add(48 * time.Hour)}
	tasks := []Task{
		{Description: "Low urgency", Status: PENDING, Urgency: 1},
		{Description: "Already done", Status: COMPLETED, Urgency: 20},
		{Description: "Deadline report", Status: PENDING, Urgency: 12},
		{Description: "Blocked thing", Status: PENDING, Tags: []string{"BLOCKED"}, Urgency: 30},
		{Description: "Waiting thing", Status: PENDING, Wait: later, Urgency: 25},
	}
	want := "Deadline report\nLow urgency"
	if got := Titles(tasks, now); got != want {
		t.Errorf("Titles() = %q, want %q", got, want)
	}
}

func TestGetTasksMissingBinary(t *testing.T) {
	c := &Client{bin: "dayblock-no-such-taskwarrior"}
	if _, err := c.GetTasks([]string{"status:pending"}); err == nil {
		t.Fatal("expected error when task binary is missing")
	}
}
