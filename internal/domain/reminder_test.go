package domain

import (
	"errors"
	"testing"
	"time"
)

func at(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.ParseInLocation("2006-01-02 15:04:05", s, time.UTC)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return v
}

func TestNextDeadline_Rollover(t *testing.T) {
	got := NextDeadline(at(t, "2025-12-15 11:00:00"), 10, 30)
	want := at(t, "2025-12-16 10:30:00")
	if !got.Equal(want) {
		t.Fatalf("want %s, got %s", want, got)
	}
}

func TestNextDeadline_EqualStaysSameDay(t *testing.T) {
	now := at(t, "2025-12-15 10:30:00")
	got := NextDeadline(now, 10, 30)
	if !got.Equal(now) {
		t.Fatalf("want %s, got %s", now, got)
	}
}

func TestNextDeadline_YearBoundary(t *testing.T) {
	got := NextDeadline(at(t, "2025-12-31 23:59:30"), 23, 59)
	want := at(t, "2026-01-01 23:59:00")
	if !got.Equal(want) {
		t.Fatalf("want %s, got %s", want, got)
	}
}

func TestFires_ToleranceIsStrict(t *testing.T) {
	cases := []struct {
		name  string
		until time.Duration
		want  bool
	}{
		{"exact", 2 * time.Hour, true},
		{"plus 0.49h", 2*time.Hour + 1764*time.Second, true},
		{"plus 0.5h", 2*time.Hour + 30*time.Minute, false},
		{"minus 0.49h", 2*time.Hour - 1764*time.Second, true},
		{"minus 0.5h", 2*time.Hour - 30*time.Minute, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Fires(tc.until, 2); got != tc.want {
				t.Fatalf("Fires(%s, 2) = %v, want %v", tc.until, got, tc.want)
			}
		})
	}
}

func TestFires_HugeOffsetNeverFires(t *testing.T) {
	if Fires(time.Hour, 1<<40) {
		t.Fatal("huge offset must not fire")
	}
}

func TestEvaluateProcess_ToleranceThroughDeadline(t *testing.T) {
	p := Process{Name: "КОПы", DeadlineTime: "10:30", Reminder1: "24ч", Reminder2: "2ч"}
	cases := []struct {
		at   string
		want bool
	}{
		{"2025-12-15 08:00:36", true},  // 2.49h before
		{"2025-12-15 08:00:00", false}, // 2.5h before
		{"2025-12-15 08:59:24", true},  // 1.51h before
		{"2025-12-15 09:00:00", false}, // 1.5h before
	}
	for _, tc := range cases {
		f, ok, err := EvaluateProcess(at(t, tc.at), p)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.at, err)
		}
		if ok != tc.want {
			t.Fatalf("%s: fired=%v, want %v", tc.at, ok, tc.want)
		}
		if ok && (len(f.Reminders) != 1 || f.Reminders[0].Ordinal != 2) {
			t.Fatalf("%s: want only second reminder, got %+v", tc.at, f.Reminders)
		}
	}
}

// A deadline equal to the instant stays on the same day, so the closest
// reachable point to "24h before" is just after the deadline.
func TestEvaluateProcess_DayAheadReminder(t *testing.T) {
	p := Process{Name: "КОПы", DeadlineTime: "10:30", Reminder1: "24ч", Reminder2: "2ч"}

	f, ok, err := EvaluateProcess(at(t, "2025-12-15 10:31:00"), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected first reminder to fire")
	}
	if len(f.Reminders) != 1 || f.Reminders[0] != (Reminder{Ordinal: 1, Hours: 24}) {
		t.Fatalf("want first reminder only, got %+v", f.Reminders)
	}
	if want := at(t, "2025-12-16 10:30:00"); !f.Deadline.Equal(want) {
		t.Fatalf("deadline: want %s, got %s", want, f.Deadline)
	}

	if _, ok, _ := EvaluateProcess(at(t, "2025-12-15 10:30:00"), p); ok {
		t.Fatal("deadline equal to instant must not fire a 24h reminder")
	}
	if _, ok, _ := EvaluateProcess(at(t, "2025-12-15 11:00:00"), p); ok {
		t.Fatal("23.5h before must not fire")
	}
}

func TestEvaluate_SampleData(t *testing.T) {
	processes := []Process{
		{Name: "Посмотреть просмотры конкурентов", Responsible: "Кирилл", DeadlineTime: "18:00", Reminder1: "24ч", Reminder2: "1ч"},
		{Name: "Заполнить таблицу показателей", Responsible: "Кирилл", DeadlineTime: "23:59", Reminder1: "24ч", Reminder2: "2ч"},
	}
	rep := Evaluate(at(t, "2025-12-15 21:59:00"), processes)

	if len(rep.Failed) != 0 {
		t.Fatalf("unexpected failures: %+v", rep.Failed)
	}
	if len(rep.Firing) != 1 {
		t.Fatalf("want 1 firing process, got %d", len(rep.Firing))
	}
	f := rep.Firing[0]
	if f.Process.Name != "Заполнить таблицу показателей" {
		t.Fatalf("unexpected process %q", f.Process.Name)
	}
	if len(f.Reminders) != 1 || f.Reminders[0] != (Reminder{Ordinal: 2, Hours: 2}) {
		t.Fatalf("want second reminder, got %+v", f.Reminders)
	}
	if got := f.Deadline.Format("15:04"); got != "23:59" {
		t.Fatalf("deadline: want 23:59, got %s", got)
	}
}

func TestEvaluate_NothingFires(t *testing.T) {
	rep := Evaluate(at(t, "2025-12-15 12:00:00"), []Process{
		{Name: "a", DeadlineTime: "18:00", Reminder1: "24ч", Reminder2: "1ч"},
	})
	if !rep.Empty() {
		t.Fatalf("want empty report, got %+v", rep.Firing)
	}
}

func TestEvaluate_IsolatesMalformedRows(t *testing.T) {
	rep := Evaluate(at(t, "2025-12-15 21:59:00"), []Process{
		{Name: "bad deadline", DeadlineTime: "25:00", Reminder1: "24ч", Reminder2: "2ч"},
		{Name: "bad reminder", DeadlineTime: "23:59", Reminder1: "сутки", Reminder2: "2ч"},
		{Name: "good", DeadlineTime: "23:59", Reminder1: "24ч", Reminder2: "2ч"},
	})
	if len(rep.Failed) != 2 {
		t.Fatalf("want 2 failed rows, got %d", len(rep.Failed))
	}
	if !errors.Is(rep.Failed[0].Err, ErrInvalidDeadline) {
		t.Fatalf("want ErrInvalidDeadline, got %v", rep.Failed[0].Err)
	}
	if !errors.Is(rep.Failed[1].Err, ErrInvalidReminder) {
		t.Fatalf("want ErrInvalidReminder, got %v", rep.Failed[1].Err)
	}
	if len(rep.Firing) != 1 || rep.Firing[0].Process.Name != "good" {
		t.Fatalf("want the good row to fire, got %+v", rep.Firing)
	}
}
