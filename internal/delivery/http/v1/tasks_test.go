package v1

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNullableString(t *testing.T) {
	type payload struct {
		PIC nullableString `json:"pic"`
	}

	t.Run("absent", func(t *testing.T) {
		var p payload
		if err := json.Unmarshal([]byte(`{}`), &p); err != nil {
			t.Fatalf("failed to unmarshal: %v", err)
		}
		if p.PIC.Set {
			t.Error("expected field to be unset")
		}
	})

	t.Run("explicit null", func(t *testing.T) {
		var p payload
		if err := json.Unmarshal([]byte(`{"pic": null}`), &p); err != nil {
			t.Fatalf("failed to unmarshal: %v", err)
		}
		if !p.PIC.Set {
			t.Error("expected field to be set")
		}
		if p.PIC.Value != nil {
			t.Errorf("expected nil value, got '%s'", *p.PIC.Value)
		}
	})

	t.Run("value", func(t *testing.T) {
		var p payload
		if err := json.Unmarshal([]byte(`{"pic": "Andi"}`), &p); err != nil {
			t.Fatalf("failed to unmarshal: %v", err)
		}
		if !p.PIC.Set || p.PIC.Value == nil || *p.PIC.Value != "Andi" {
			t.Errorf("expected 'Andi', got %+v", p.PIC)
		}
	})
}

func TestParseDeadline(t *testing.T) {
	t.Run("calendar date", func(t *testing.T) {
		got, err := parseDeadline("2026-02-01")
		if err != nil {
			t.Fatalf("failed to parse: %v", err)
		}
		want := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("rfc3339", func(t *testing.T) {
		got, err := parseDeadline("2026-02-01T09:30:00Z")
		if err != nil {
			t.Fatalf("failed to parse: %v", err)
		}
		if got.Hour() != 9 || got.Minute() != 30 {
			t.Errorf("unexpected time: %v", got)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if _, err := parseDeadline("01/02/2026"); err == nil {
			t.Fatal("expected an error")
		}
	})
}
