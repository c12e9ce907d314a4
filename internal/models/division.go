package models

import "time"

// Division is an organizational unit. Tasks and employees reference it
// by Code, not by id.
type Division struct {
	ID        string
	Code      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
