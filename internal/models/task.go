package models

import "time"

// Task status values as they appear on the wire and in storage.
const (
	StatusOpen       = "OPEN"
	StatusOnProgress = "ON PROGRESS"
	StatusDone       = "DONE"
)

// ValidStatus reports whether s is one of the three task statuses.
func ValidStatus(s string) bool {
	return s == StatusOpen || s == StatusOnProgress || s == StatusDone
}

// Task is the core work item. PIC holds the assigned employee's name,
// not an id; nil means the task is unclaimed. DateCreated and
// DateCompleted are calendar-date strings (YYYY-MM-DD) so that
// lexicographic comparison matches chronological order in range filters.
type Task struct {
	ID            string
	Code          string
	DivisionCode  string
	Description   string
	Status        string
	Points        int
	PIC           *string
	DateCreated   string
	DateCompleted *string
	Deadline      time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
