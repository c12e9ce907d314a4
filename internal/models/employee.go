package models

import "time"

type Employee struct {
	ID           string
	Code         string
	Name         string
	DivisionCode string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
