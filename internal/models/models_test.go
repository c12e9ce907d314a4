package models

import "testing"

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusOpen, StatusOnProgress, StatusDone} {
		if !ValidStatus(s) {
			t.Errorf("expected '%s' to be valid", s)
		}
	}
	for _, s := range []string{"", "open", "IN PROGRESS", "CLOSED"} {
		if ValidStatus(s) {
			t.Errorf("expected '%s' to be invalid", s)
		}
	}
}

func TestValidRole(t *testing.T) {
	for _, r := range []string{RoleAdmin, RoleManager, RoleEmployee} {
		if !ValidRole(r) {
			t.Errorf("expected '%s' to be valid", r)
		}
	}
	for _, r := range []string{"", "Admin", "superuser"} {
		if ValidRole(r) {
			t.Errorf("expected '%s' to be invalid", r)
		}
	}
}
