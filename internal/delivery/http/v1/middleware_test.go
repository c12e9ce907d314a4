package v1

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/RND-Nagatech/work-monitoring/internal/models"
	"github.com/RND-Nagatech/work-monitoring/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuthService struct {
	claims *services.AccessClaims
	err    error
}

func (s *stubAuthService) Login(context.Context, string, string) (*services.LoginResult, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuthService) ChangePassword(context.Context, string, string, string) error {
	return errors.New("not implemented")
}

func (s *stubAuthService) ParseToken(string) (*services.AccessClaims, error) {
	return s.claims, s.err
}

func newTestHandler(auth services.AuthService) *handlerImpl {
	return &handlerImpl{
		logger: zerolog.Nop(),
		auth:   auth,
	}
}

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestAuthMiddleware(t *testing.T) {
	claims := &services.AccessClaims{Role: models.RoleAdmin, Username: "boss"}

	t.Run("missing header", func(t *testing.T) {
		h := newTestHandler(&stubAuthService{claims: claims})
		c, w := newTestContext(t)

		h.HandleAuthMiddleware(c)
		if !c.IsAborted() {
			t.Fatal("expected the request to be aborted")
		}
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
		}
	})

	t.Run("not a bearer token", func(t *testing.T) {
		h := newTestHandler(&stubAuthService{claims: claims})
		c, w := newTestContext(t)
		c.Request.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

		h.HandleAuthMiddleware(c)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		h := newTestHandler(&stubAuthService{err: errors.New("invalid token")})
		c, w := newTestContext(t)
		c.Request.Header.Set("Authorization", "Bearer bad-token")

		h.HandleAuthMiddleware(c)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
		}
	})

	t.Run("valid token stores claims", func(t *testing.T) {
		h := newTestHandler(&stubAuthService{claims: claims})
		c, _ := newTestContext(t)
		c.Request.Header.Set("Authorization", "Bearer good-token")

		h.HandleAuthMiddleware(c)
		if c.IsAborted() {
			t.Fatal("expected the request to pass through")
		}

		got, ok := getClaims(c)
		if !ok {
			t.Fatal("expected claims in context")
		}
		if got.Username != "boss" {
			t.Errorf("expected username 'boss', got '%s'", got.Username)
		}
	})
}

func TestAdminOnly(t *testing.T) {
	h := newTestHandler(&stubAuthService{})

	run := func(t *testing.T, claims *services.AccessClaims) (*gin.Context, *httptest.ResponseRecorder) {
		c, w := newTestContext(t)
		if claims != nil {
			c.Set(claimsCtxKey, claims)
		}
		h.HandleAdminOnly(c)
		return c, w
	}

	t.Run("admin admitted", func(t *testing.T) {
		c, _ := run(t, &services.AccessClaims{Role: models.RoleAdmin})
		if c.IsAborted() {
			t.Fatal("expected admin to pass")
		}
	})

	t.Run("manager admitted", func(t *testing.T) {
		c, _ := run(t, &services.AccessClaims{Role: models.RoleManager})
		if c.IsAborted() {
			t.Fatal("expected manager to pass")
		}
	})

	t.Run("employee rejected", func(t *testing.T) {
		_, w := run(t, &services.AccessClaims{Role: models.RoleEmployee})
		if w.Code != http.StatusForbidden {
			t.Errorf("expected status %d, got %d", http.StatusForbidden, w.Code)
		}
	})

	t.Run("no claims", func(t *testing.T) {
		_, w := run(t, nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
		}
	})
}

func TestEmployeeOnly(t *testing.T) {
	h := newTestHandler(&stubAuthService{})

	run := func(t *testing.T, claims *services.AccessClaims) (*gin.Context, *httptest.ResponseRecorder) {
		c, w := newTestContext(t)
		if claims != nil {
			c.Set(claimsCtxKey, claims)
		}
		h.HandleEmployeeOnly(c)
		return c, w
	}

	t.Run("employee admitted", func(t *testing.T) {
		c, _ := run(t, &services.AccessClaims{Role: models.RoleEmployee, EmployeeID: "emp-1"})
		if c.IsAborted() {
			t.Fatal("expected employee to pass")
		}
	})

	t.Run("admin rejected", func(t *testing.T) {
		_, w := run(t, &services.AccessClaims{Role: models.RoleAdmin})
		if w.Code != http.StatusForbidden {
			t.Errorf("expected status %d, got %d", http.StatusForbidden, w.Code)
		}
	})

	t.Run("employee without id rejected", func(t *testing.T) {
		_, w := run(t, &services.AccessClaims{Role: models.RoleEmployee})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
	})
}
