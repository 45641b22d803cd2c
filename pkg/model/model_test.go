package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockRoundTrip(t *testing.T) {
	tests := []struct {
		in   string
		mins int
	}{
		{"00:00", 0},
		{"08:00", 480},
		{"9:05", 545},
		{"23:59", 1439},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.mins, got)
	}
	assert.Equal(t, "09:05", FormatClock(545))
}

func TestFormatClockDoesNotWrap(t *testing.T) {
	assert.Equal(t, "24:00", FormatClock(1440))
	assert.Equal(t, "25:15", FormatClock(1515))
}

func TestParseClockRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "8", "8:0", "24:00", "12:60", "ab:cd", "12:30pm"} {
		_, err := ParseClock(in)
		assert.Error(t, err, in)
		assert.False(t, ValidClock(in), in)
	}
}

func TestLooseClock(t *testing.T) {
	assert.Equal(t, 540, LooseClock("09:00"))
	assert.Equal(t, 30*60, LooseClock("30:00"))
	assert.Equal(t, 15, LooseClock("xx:15"))
	assert.Equal(t, 0, LooseClock("garbage"))
}

func TestUserValidate(t *testing.T) {
	ok := User{FirstName: " Ada ", Surname: "Lovelace", Email: "ada@example.com"}
	require.NoError(t, ok.Validate())
	assert.Equal(t, "Ada Lovelace", ok.Normalize().FullName())

	err := User{Email: "not-an-email"}.Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "First name is required", verr.Fields["firstName"])
	assert.Equal(t, "Surname is required", verr.Fields["surname"])
	assert.Equal(t, "Please enter a valid email address", verr.Fields["email"])

	err = User{FirstName: "a", Surname: "b", Email: "   "}.Validate()
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Email is required", verr.Fields["email"])
}

func TestSettingsValidate(t *testing.T) {
	require.NoError(t, DefaultSettings().Validate())

	s := DefaultSettings()
	s.PreferredStartTime = "7am"
	assert.Error(t, s.Validate())

	s = DefaultSettings()
	s.FocusMode = "deep"
	assert.Error(t, s.Validate())
}

func TestParseFocusMode(t *testing.T) {
	m, err := ParseFocusMode(" Pomodoro ")
	require.NoError(t, err)
	assert.Equal(t, FocusPomodoro, m)
	_, err = ParseFocusMode("sprint")
	assert.Error(t, err)
}

func TestScheduleFind(t *testing.T) {
	s := &Schedule{Tasks: []Task{{ID: "a"}, {ID: "b", Title: "second"}}}
	got, ok := s.Find("b")
	require.True(t, ok)
	assert.Equal(t, "second", got.Title)
	_, ok = s.Find("zzz")
	assert.False(t, ok)

	var empty *Schedule
	_, ok = empty.Find("a")
	assert.False(t, ok)
}
