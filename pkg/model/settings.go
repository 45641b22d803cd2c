package model

import (
	"fmt"
	"strings"
)

// FocusMode selects how the generator sizes blocks and breaks.
type FocusMode string

const (
	FocusNormal   FocusMode = "normal"
	FocusPomodoro FocusMode = "pomodoro"
)

func ParseFocusMode(s string) (FocusMode, error) {
	switch m := FocusMode(strings.ToLower(strings.TrimSpace(s))); m {
	case FocusNormal, FocusPomodoro:
		return m, nil
	}
	return "", fmt.Errorf("unknown focus mode %q (want %q or %q)", s, FocusNormal, FocusPomodoro)
}

// Settings are the user-editable preferences.
type Settings struct {
	EmailReminders     bool      `json:"emailReminders" yaml:"email_reminders"`
	PreferredStartTime string    `json:"preferredStartTime" yaml:"preferred_start_time"`
	FocusMode          FocusMode `json:"focusMode" yaml:"focus_mode"`
}

// DefaultSettings is what a fresh install (or a reset) reads back.
func DefaultSettings() Settings {
	return Settings{
		EmailReminders:     false,
		PreferredStartTime: "08:00",
		FocusMode:          FocusNormal,
	}
}

// Validate checks the start time and focus mode.
func (s Settings) Validate() error {
	if !ValidClock(s.PreferredStartTime) {
		return fmt.Errorf("invalid start time %q, expected HH:MM", s.PreferredStartTime)
	}
	if _, err := ParseFocusMode(string(s.FocusMode)); err != nil {
		return err
	}
	return nil
}
