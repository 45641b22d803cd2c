package google

import (
	"fmt"
	"time"

	"github.com/harrisonrobin/dayblock/pkg/index"
	"github.com/harrisonrobin/dayblock/pkg/model"
	"github.com/harrisonrobin/dayblock/pkg/util"
	"go.uber.org/zap"
	"google.golang.org/api/calendar/v3"
)

// CalendarClient is a Google Calendar API client.
type CalendarClient struct {
	srv        *calendar.Service
	calendarID string
	index      *index.EventIndex
	log        *zap.Logger
}

// SyncResult counts what a schedule export did to the calendar.
type SyncResult struct {
	Created   int
	Updated   int
	Unchanged int
	Removed   int
}

// NewCalendarClient creates a new Google Calendar client.
func NewCalendarClient(srv *calendar.Service, calendarID string, idx *index.EventIndex, log *zap.Logger) *CalendarClient {
	if log == nil {
		log = zap.NewNop()
	}
	return &CalendarClient{srv: srv, calendarID: calendarID, index: idx, log: log}
}

// SyncSchedule exports every block of s as an event, patching events from earlier
// exports and deleting those exported for the same date whose task no longer exists.
func (c *CalendarClient) SyncSchedule(s *model.Schedule, done map[string]bool, loc *time.Location) (SyncResult, error) {
	var res SyncResult
	keep := make(map[string]bool, len(s.Tasks))

	for _, task := range s.Tasks {
		keep[task.ID] = true
		result, err := c.syncTask(s.Date, task, done[task.ID], loc)
		if err != nil {
			return res, fmt.Errorf("failed to sync %q: %w", task.Title, err)
		}
		switch result {
		case outcomeCreated:
			res.Created++
		case outcomeUpdated:
			res.Updated++
		default:
			res.Unchanged++
		}
	}

	if c.index != nil {
		for _, eventID := range c.index.Prune(s.Date, keep) {
			if err := c.DeleteEvent(eventID); err != nil {
				c.log.Warn("could not delete stale event", zap.String("event_id", eventID), zap.Error(err))
				continue
			}
			res.Removed++
		}
	}
	return res, nil
}

type outcome int

const (
	outcomeUnchanged outcome = iota
	outcomeCreated
	outcomeUpdated
)

// syncTask creates a new event or updates an existing one.
func (c *CalendarClient) syncTask(date string, task model.Task, done bool, loc *time.Location) (outcome, error) {
	event, err := util.ConvertTaskToEvent(date, task, done, loc)
	if err != nil {
		return outcomeUnchanged, err
	}

	var existingEvent *calendar.Event
	// 1. Try local index first
	if c.index != nil {
		if eventID := c.index.Get(task.ID); eventID != "" {
			existingEvent, err = c.srv.Events.Get(c.calendarID, eventID).Do()
			if err != nil || existingEvent.Status == "cancelled" {
				existingEvent = nil
			}
		}
	}

	// 2. Fallback to API search if not found in index
	if existingEvent == nil {
		existingEvent, err = c.GetEventByTaskID(task.ID)
		if err != nil {
			return outcomeUnchanged, fmt.Errorf("error searching for event: %w", err)
		}
	}

	if existingEvent != nil {
		patch, err := util.EventNeedsUpdate(existingEvent, event)
		if err != nil {
			c.log.Warn("could not compare task with its calendar event", zap.String("task_id", task.ID), zap.Error(err))
			return outcomeUnchanged, err
		}
		if c.index != nil {
			c.index.Set(task.ID, existingEvent.Id, date)
		}
		if patch == nil {
			return outcomeUnchanged, nil
		}
		if _, err := c.PatchEvent(existingEvent.Id, patch); err != nil {
			return outcomeUnchanged, err
		}
		return outcomeUpdated, nil
	}

	createdEvent, err := c.srv.Events.Insert(c.calendarID, event).Do()
	if err != nil {
		return outcomeUnchanged, err
	}
	if c.index != nil {
		c.index.Set(task.ID, createdEvent.Id, date)
	}
	c.log.Debug("event created", zap.String("task_id", task.ID), zap.String("event_id", createdEvent.Id))
	return outcomeCreated, nil
}

// PatchEvent performs a partial update on an event.
func (c *CalendarClient) PatchEvent(eventID string, patch *calendar.Event) (*calendar.Event, error) {
	return c.srv.Events.Patch(c.calendarID, eventID, patch).Do()
}

// DeleteEvent deletes an event from the calendar.
func (c *CalendarClient) DeleteEvent(eventID string) error {
	return c.srv.Events.Delete(c.calendarID, eventID).Do()
}

// GetEventByTaskID searches for an event carrying the task ID in its private extended
// properties, then for one whose description names the task.
func (c *CalendarClient) GetEventByTaskID(taskID string) (*calendar.Event, error) {
	events, err := c.srv.Events.List(c.calendarID).
		PrivateExtendedProperty(fmt.Sprintf("%s=%s", util.ExtendedPropertyKey, taskID)).
		Do()
	if err != nil {
		return nil, err
	}
	if len(events.Items) > 0 {
		return events.Items[0], nil
	}

	// Events edited outside dayblock can lose their private properties.
	events, err = c.srv.Events.List(c.calendarID).Q(taskID).Do()
	if err != nil {
		return nil, err
	}
	for _, e := range events.Items {
		if id, ok := util.GetTaskIDFromEventDescription(e.Description); ok && id == taskID {
			return e, nil
		}
	}
	return nil, nil
}
