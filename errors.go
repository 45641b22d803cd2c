package main

import (
	"errors"
	"fmt"

	"github.com/harrisonrobin/dayblock/pkg/model"
	"github.com/harrisonrobin/dayblock/pkg/planner"
)

// errUnknownTask is returned when a task ID is not in today's schedule.
var errUnknownTask = errors.New("task not in today's schedule")

// CLIError wraps domain errors with user-facing messages and actionable hints.
type CLIError struct {
	Message  string
	Hint     string
	Err      error
	ExitCode int
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

func NewCLIError(msg, hint string, err error) *CLIError {
	return &CLIError{
		Message:  msg,
		Hint:     hint,
		Err:      err,
		ExitCode: 1,
	}
}

// MapError converts known domain errors into CLIErrors with hints.
// Unmapped errors are returned as-is.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return err
	}

	var valErr *model.ValidationError
	if errors.As(err, &valErr) {
		return NewCLIError(valErr.Error(), "Usage: dayblock signin --first NAME --surname NAME --email ADDRESS", err)
	}

	switch {
	case errors.Is(err, planner.ErrEmptyInput):
		return NewCLIError("no tasks to schedule", "Pipe one task per line on stdin, or use --file, --org or --taskwarrior", err)
	case errors.Is(err, planner.ErrSignedOut):
		return NewCLIError("you are not signed in", "Run 'dayblock signin --first NAME --surname NAME --email ADDRESS'", err)
	case errors.Is(err, planner.ErrNoSchedule):
		return NewCLIError("no schedule for today", "Run 'dayblock generate' to plan your day", err)
	case errors.Is(err, planner.ErrInvalidSettings):
		return NewCLIError(err.Error(), "Start time is HH:MM (00:00-23:59), focus mode is 'normal' or 'pomodoro'", err)
	case errors.Is(err, errUnknownTask):
		return NewCLIError(err.Error(), "Run 'dayblock show' to list task IDs", err)
	}
	return err
}
