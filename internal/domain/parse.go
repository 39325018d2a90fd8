package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidDeadline = errors.New("invalid deadline time")
	ErrInvalidReminder = errors.New("invalid reminder offset")
	ErrUsage           = errors.New("expected date and time arguments")
	ErrInvalidInstant  = errors.New("invalid date or time")
)

// CheckLayout is the accepted input format for an evaluation instant.
const CheckLayout = "02-01-2006 15:04"

// reminderSuffixes are unit markers accepted after the hour count.
var reminderSuffixes = []string{"ч", "h"}

// ParseDeadline parses "HH:MM" into hour and minute.
func ParseDeadline(s string) (hour, minute int, err error) {
	mins, err := parseHHMM(s)
	if err != nil {
		return 0, 0, fmt.Errorf("%w %q: %v", ErrInvalidDeadline, s, err)
	}
	return mins / 60, mins % 60, nil
}

func parseHHMM(s string) (int, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, errors.New("expected HH:MM")
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, errors.New("invalid hour")
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, errors.New("invalid minute")
	}
	return h*60 + m, nil
}

// ParseReminderHours parses a reminder offset such as "24ч", "2h" or "1"
// into whole hours.
func ParseReminderHours(s string) (int, error) {
	v := strings.TrimSpace(s)
	for _, suf := range reminderSuffixes {
		v = strings.TrimSuffix(v, suf)
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, fmt.Errorf("%w %q", ErrInvalidReminder, s)
	}
	h, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w %q", ErrInvalidReminder, s)
	}
	return h, nil
}

// ParseCheckInstant parses the two positional arguments of the check
// command: a date (DD-MM-YYYY) and a time (HH:MM). The result is a wall-clock
// instant in UTC.
func ParseCheckInstant(args []string) (time.Time, error) {
	if len(args) != 2 {
		return time.Time{}, ErrUsage
	}
	t, err := time.ParseInLocation(CheckLayout, args[0]+" "+args[1], time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidInstant, err)
	}
	return t, nil
}
