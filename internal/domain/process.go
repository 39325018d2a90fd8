package domain

import "time"

// Process is a recurring business task owned by a responsible person.
// Deadline and reminders are kept as entered; they are parsed only when
// reminders are evaluated.
type Process struct {
	ID           int64
	Name         string
	Responsible  string // matched against User.Name by exact equality
	Frequency    string // descriptive only
	DeadlineTime string // "HH:MM"
	Reminder1    string // e.g. "24ч"
	Reminder2    string
	CreatedAt    time.Time // UTC
}

// User is a registered chat participant.
type User struct {
	TelegramID   int64
	Name         string
	Username     string    // optional Telegram handle
	RegisteredAt time.Time // UTC
}
