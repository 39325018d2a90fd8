package domain

import "time"

// FiringTolerance is the half-width of the window around an exact reminder
// offset. The bound is exclusive.
const FiringTolerance = 30 * time.Minute

// maxOffsetHours keeps the hour-to-duration conversion from overflowing.
const maxOffsetHours = 100000

// Reminder identifies which of the two process reminders fired.
type Reminder struct {
	Ordinal int // 1 or 2
	Hours   int
}

// Firing is a process with at least one reminder active at the evaluation instant.
type Firing struct {
	Process   Process
	Deadline  time.Time
	Reminders []Reminder
}

// RowError is a process that could not be evaluated because its stored
// deadline or reminder offsets are malformed.
type RowError struct {
	Process Process
	Err     error
}

// Report is the result of evaluating one person's processes at an instant.
type Report struct {
	At     time.Time
	Firing []Firing
	Failed []RowError
}

// Empty reports whether no reminder fired.
func (r Report) Empty() bool { return len(r.Firing) == 0 }

// NextDeadline combines at's calendar date with the given time-of-day.
// A deadline earlier than at moves to the following day; an equal one stays.
func NextDeadline(at time.Time, hour, minute int) time.Time {
	d := time.Date(at.Year(), at.Month(), at.Day(), hour, minute, 0, 0, at.Location())
	if d.Before(at) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// Fires reports whether a reminder set hours before the deadline is active
// when the deadline is until away.
func Fires(until time.Duration, hours int) bool {
	if hours > maxOffsetHours || hours < -maxOffsetHours {
		return false
	}
	diff := until - time.Duration(hours)*time.Hour
	if diff < 0 {
		diff = -diff
	}
	return diff < FiringTolerance
}

// EvaluateProcess checks both reminders of p at the instant at. The boolean
// is false when nothing fired.
func EvaluateProcess(at time.Time, p Process) (Firing, bool, error) {
	hour, minute, err := ParseDeadline(p.DeadlineTime)
	if err != nil {
		return Firing{}, false, err
	}
	r1, err := ParseReminderHours(p.Reminder1)
	if err != nil {
		return Firing{}, false, err
	}
	r2, err := ParseReminderHours(p.Reminder2)
	if err != nil {
		return Firing{}, false, err
	}

	deadline := NextDeadline(at, hour, minute)
	until := deadline.Sub(at)

	f := Firing{Process: p, Deadline: deadline}
	if Fires(until, r1) {
		f.Reminders = append(f.Reminders, Reminder{Ordinal: 1, Hours: r1})
	}
	if Fires(until, r2) {
		f.Reminders = append(f.Reminders, Reminder{Ordinal: 2, Hours: r2})
	}
	return f, len(f.Reminders) > 0, nil
}

// Evaluate runs EvaluateProcess over processes in order. A malformed row is
// recorded in Report.Failed and does not stop the rest of the batch.
func Evaluate(at time.Time, processes []Process) Report {
	rep := Report{At: at}
	for _, p := range processes {
		f, ok, err := EvaluateProcess(at, p)
		if err != nil {
			rep.Failed = append(rep.Failed, RowError{Process: p, Err: err})
			continue
		}
		if ok {
			rep.Firing = append(rep.Firing, f)
		}
	}
	return rep
}
