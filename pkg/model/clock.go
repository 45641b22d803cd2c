package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var clockRegex = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// ParseClock converts a strict HH:MM wall-clock string into minutes since midnight.
func ParseClock(s string) (int, error) {
	m := clockRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("invalid clock %q, expected HH:MM", s)
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	if h > 23 || min > 59 {
		return 0, fmt.Errorf("clock %q out of range", s)
	}
	return h*60 + min, nil
}

// ValidClock reports whether s is a well-formed HH:MM time of day.
func ValidClock(s string) bool {
	_, err := ParseClock(s)
	return err == nil
}

// LooseClock reads "H:M" as hours*60+minutes without validating anything.
// Non-numeric parts count as zero and out-of-range values pass through.
func LooseClock(s string) int {
	hh, mm, _ := strings.Cut(strings.TrimSpace(s), ":")
	h, _ := strconv.Atoi(strings.TrimSpace(hh))
	m, _ := strconv.Atoi(strings.TrimSpace(mm))
	return h*60 + m
}

// FormatClock renders minutes since midnight as zero-padded HH:MM.
// Hours are not wrapped, so 1500 minutes renders as "25:00".
func FormatClock(total int) string {
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
