package google

import (
	"context"
	"fmt"

	"github.com/harrisonrobin/dayblock/pkg/auth"
	"github.com/harrisonrobin/dayblock/pkg/index"
	"go.uber.org/zap"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// NewClient creates a Google Calendar client for the calendar named calendarName,
// authenticating with the credentials stored in dir.
func NewClient(ctx context.Context, dir, calendarName string, idx *index.EventIndex, log *zap.Logger) (*CalendarClient, error) {
	client, err := auth.GetClient(ctx, dir, auth.CalendarScopes())
	if err != nil {
		return nil, err
	}

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Calendar client: %w", err)
	}

	calendarID, err := FindCalendarID(srv, calendarName)
	if err != nil {
		return nil, err
	}
	return NewCalendarClient(srv, calendarID, idx, log), nil
}

// FindCalendarID resolves a calendar's display name to its ID.
func FindCalendarID(srv *calendar.Service, calendarName string) (string, error) {
	calendarList, err := srv.CalendarList.List().Do()
	if err != nil {
		return "", fmt.Errorf("unable to retrieve calendar list: %w", err)
	}
	for _, item := range calendarList.Items {
		if item.Summary == calendarName {
			return item.Id, nil
		}
	}
	return "", fmt.Errorf("calendar '%s' not found", calendarName)
}
