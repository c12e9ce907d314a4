package models

import "time"

const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// ValidRole reports whether r is one of the three account roles.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleManager || r == RoleEmployee
}

// User is a login account. EmployeeID links the account to an employee
// record and is required for the employee role.
type User struct {
	ID         string
	Username   string
	Password   string
	Role       string
	EmployeeID *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
