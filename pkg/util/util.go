package util

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/harrisonrobin/dayblock/pkg/colors"
	"github.com/harrisonrobin/dayblock/pkg/model"
	"github.com/harrisonrobin/dayblock/pkg/overdue"
	"google.golang.org/api/calendar/v3"
)

// ExtendedPropertyKey tags calendar events with the task they were created from.
const ExtendedPropertyKey = "dayblock_id"

// EventNeedsUpdate returns a patch event if the fields shared between a task block and a calendar.Event differ.
// It compares the target event (newly converted) with the existing event from the calendar.
func EventNeedsUpdate(existingEvent *calendar.Event, targetEvent *calendar.Event) (*calendar.Event, error) {
	patch := &calendar.Event{}
	needsUpdate := false

	if existingEvent.Summary != targetEvent.Summary {
		patch.Summary = targetEvent.Summary
		needsUpdate = true
	}
	if existingEvent.Description != targetEvent.Description {
		patch.Description = targetEvent.Description
		needsUpdate = true
	}
	if existingEvent.ColorId != targetEvent.ColorId {
		patch.ColorId = targetEvent.ColorId
		needsUpdate = true
	}
	if privateID(existingEvent) != privateID(targetEvent) {
		patch.ExtendedProperties = targetEvent.ExtendedProperties
		needsUpdate = true
	}

	if existingEvent.Start == nil || existingEvent.End == nil {
		patch.Start = targetEvent.Start
		patch.End = targetEvent.End
		return patch, nil
	}
	existingStartTime, err := time.Parse(time.RFC3339, existingEvent.Start.DateTime)
	if err != nil {
		return nil, err
	}
	targetStartTime, err := time.Parse(time.RFC3339, targetEvent.Start.DateTime)
	if err != nil {
		return nil, err
	}
	existingEndTime, err := time.Parse(time.RFC3339, existingEvent.End.DateTime)
	if err != nil {
		return nil, err
	}
	targetEndTime, err := time.Parse(time.RFC3339, targetEvent.End.DateTime)
	if err != nil {
		return nil, err
	}

	if !existingStartTime.Equal(targetStartTime) || !existingEndTime.Equal(targetEndTime) {
		patch.Start = targetEvent.Start
		patch.End = targetEvent.End
		needsUpdate = true
	}

	if needsUpdate {
		return patch, nil
	}
	return nil, nil
}

func privateID(e *calendar.Event) string {
	if e.ExtendedProperties == nil {
		return ""
	}
	return e.ExtendedProperties.Private[ExtendedPropertyKey]
}

// ConvertTaskToEvent turns one block of the schedule dated date into a calendar event in loc.
func ConvertTaskToEvent(date string, task model.Task, done bool, loc *time.Location) (*calendar.Event, error) {
	if task.ID == "" {
		return nil, fmt.Errorf("could not convert task without an id")
	}
	start, end, err := overdue.BlockTimes(date, task, loc)
	if err != nil {
		return nil, err
	}

	summary := task.Title
	if done {
		summary = "✓ " + task.Title
	}

	var desc strings.Builder
	desc.WriteString(fmt.Sprintf("Priority: %s\n", task.Priority))
	desc.WriteString(fmt.Sprintf("Block: %s–%s\n", task.TimeStart, task.TimeEnd))
	desc.WriteString(fmt.Sprintf("ID: %s\n", task.ID))

	return &calendar.Event{
		Summary: summary,
		ColorId: colors.GetColorID(task.Priority),
		Start: &calendar.EventDateTime{
			DateTime: start.UTC().Format(time.RFC3339),
		},
		End: &calendar.EventDateTime{
			DateTime: end.UTC().Format(time.RFC3339),
		},
		Description: desc.String(),
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{
				ExtendedPropertyKey: task.ID,
			},
		},
	}, nil
}

var idRegex = regexp.MustCompile(`ID: (task-[A-Za-z0-9\-]+)`)

// GetTaskIDFromEventDescription parses the task ID from the event description.
func GetTaskIDFromEventDescription(description string) (string, bool) {
	matches := idRegex.FindStringSubmatch(description)
	if len(matches) > 1 {
		return matches[1], true
	}
	return "", false
}
