package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/RND-Nagatech/work-monitoring/internal/models"
	"github.com/RND-Nagatech/work-monitoring/internal/services"
)

const claimsCtxKey = "claims"

// HandleAuthMiddleware validates the bearer token and stores its claims
// in the request context for the role gates and handlers downstream.
func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header == "" {
		h.logger.Warn().Msg("authorization header required")
		respondError(c, http.StatusUnauthorized, "no token provided")
		return
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix {
		h.logger.Warn().Msg("invalid authorization header")
		respondError(c, http.StatusUnauthorized, "no token provided")
		return
	}

	claims, err := h.auth.ParseToken(parts[1])
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to parse token")
		respondError(c, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	c.Set(claimsCtxKey, claims)
	c.Next()
}

// HandleAdminOnly admits admin and manager accounts alike; managers
// share the administrative surface.
func (h *handlerImpl) HandleAdminOnly(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	if claims.Role != models.RoleAdmin && claims.Role != models.RoleManager {
		h.logger.Warn().
			Str("role", claims.Role).
			Msg("admin access denied")
		respondError(c, http.StatusForbidden, "admin or manager access required")
		return
	}
	c.Next()
}

func (h *handlerImpl) HandleEmployeeOnly(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	if claims.Role != models.RoleEmployee {
		h.logger.Warn().
			Str("role", claims.Role).
			Msg("employee access denied")
		respondError(c, http.StatusForbidden, "employee access required")
		return
	}
	if claims.EmployeeID == "" {
		h.logger.Warn().
			Str("username", claims.Username).
			Msg("employee account without employee id")
		respondError(c, http.StatusBadRequest, "employee id not found in token")
		return
	}
	c.Next()
}

func getClaims(c *gin.Context) (*services.AccessClaims, bool) {
	value, exists := c.Get(claimsCtxKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*services.AccessClaims)
	return claims, ok
}
