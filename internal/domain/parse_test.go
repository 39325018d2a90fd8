package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseReminderHours(t *testing.T) {
	cases := map[string]int{
		"24ч":  24,
		"2ч":   2,
		" 1ч ": 1,
		"12h":  12,
		"3":    3,
	}
	for in, want := range cases {
		got, err := ParseReminderHours(in)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", in, err)
		}
		if got != want {
			t.Fatalf("%q: want %d, got %d", in, want, got)
		}
	}
}

func TestParseReminderHours_Invalid(t *testing.T) {
	for _, in := range []string{"", "ч", "два часа", "1.5ч"} {
		if _, err := ParseReminderHours(in); !errors.Is(err, ErrInvalidReminder) {
			t.Fatalf("%q: want ErrInvalidReminder, got %v", in, err)
		}
	}
}

func TestParseDeadline(t *testing.T) {
	h, m, err := ParseDeadline("23:59")
	if err != nil || h != 23 || m != 59 {
		t.Fatalf("want 23:59, got %d:%d (%v)", h, m, err)
	}
	for _, in := range []string{"", "24:00", "12:60", "noon", "12-30"} {
		if _, _, err := ParseDeadline(in); !errors.Is(err, ErrInvalidDeadline) {
			t.Fatalf("%q: want ErrInvalidDeadline, got %v", in, err)
		}
	}
}

func TestParseCheckInstant(t *testing.T) {
	got, err := ParseCheckInstant([]string{"15-12-2025", "09:00"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, time.December, 15, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("want %s, got %s", want, got)
	}
}

func TestParseCheckInstant_Errors(t *testing.T) {
	if _, err := ParseCheckInstant([]string{"15-12-2025"}); !errors.Is(err, ErrUsage) {
		t.Fatalf("one arg: want ErrUsage, got %v", err)
	}
	if _, err := ParseCheckInstant([]string{"15-12-2025", "09:00", "extra"}); !errors.Is(err, ErrUsage) {
		t.Fatalf("three args: want ErrUsage, got %v", err)
	}
	if _, err := ParseCheckInstant([]string{"2025-12-15", "09:00"}); !errors.Is(err, ErrInvalidInstant) {
		t.Fatalf("iso date: want ErrInvalidInstant, got %v", err)
	}
	if _, err := ParseCheckInstant([]string{"31-02-2025", "09:00"}); !errors.Is(err, ErrInvalidInstant) {
		t.Fatalf("feb 31: want ErrInvalidInstant, got %v", err)
	}
}
