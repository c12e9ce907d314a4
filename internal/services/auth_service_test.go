package services

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/RND-Nagatech/work-monitoring/internal/models"
)

func newTestAuthService(ttl time.Duration) *authServiceImpl {
	return &authServiceImpl{
		logger:        zerolog.Nop(),
		jwtIssuer:     "work-monitoring",
		jwtSigningKey: []byte("test-signing-key"),
		jwtTokenTTL:   ttl,
	}
}

func TestToken_RoundTrip(t *testing.T) {
	s := newTestAuthService(time.Hour)

	employeeID := "emp-1"
	user := &models.User{
		ID:         "user-1",
		Username:   "andi",
		Role:       models.RoleEmployee,
		EmployeeID: &employeeID,
	}

	token, expiresAt, err := s.generateToken(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if until := time.Until(expiresAt); until <= 0 || until > time.Hour {
		t.Errorf("unexpected expiry: %v", expiresAt)
	}

	claims, err := s.ParseToken(token)
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	if claims.Subject != user.ID {
		t.Errorf("expected subject '%s', got '%s'", user.ID, claims.Subject)
	}
	if claims.Username != "andi" {
		t.Errorf("expected username 'andi', got '%s'", claims.Username)
	}
	if claims.Role != models.RoleEmployee {
		t.Errorf("expected role '%s', got '%s'", models.RoleEmployee, claims.Role)
	}
	if claims.EmployeeID != employeeID {
		t.Errorf("expected employee id '%s', got '%s'", employeeID, claims.EmployeeID)
	}
}

func TestToken_NoEmployeeID(t *testing.T) {
	s := newTestAuthService(time.Hour)

	token, _, err := s.generateToken(&models.User{
		ID:       "user-2",
		Username: "boss",
		Role:     models.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := s.ParseToken(token)
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	if claims.EmployeeID != "" {
		t.Errorf("expected empty employee id, got '%s'", claims.EmployeeID)
	}
}

func TestParseToken_Rejections(t *testing.T) {
	s := newTestAuthService(time.Hour)
	user := &models.User{ID: "user-1", Username: "andi", Role: models.RoleAdmin}

	t.Run("garbage", func(t *testing.T) {
		if _, err := s.ParseToken("not.a.token"); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("wrong key", func(t *testing.T) {
		token, _, err := s.generateToken(user)
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}

		other := newTestAuthService(time.Hour)
		other.jwtSigningKey = []byte("different-key")
		if _, err := other.ParseToken(token); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token, _, err := s.generateToken(user)
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}

		other := newTestAuthService(time.Hour)
		other.jwtIssuer = "someone-else"
		if _, err := other.ParseToken(token); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("expired", func(t *testing.T) {
		expired := newTestAuthService(-time.Hour)
		token, _, err := expired.generateToken(user)
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}
		if _, err := expired.ParseToken(token); err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestSentinelErrors_Distinct(t *testing.T) {
	if errors.Is(ErrTaskAlreadyTaken, ErrTaskNotFound) {
		t.Error("conflict and not-found sentinels must not match")
	}
	if errors.Is(ErrTaskNotAssigned, ErrTaskAlreadyTaken) {
		t.Error("forbidden and conflict sentinels must not match")
	}
}
