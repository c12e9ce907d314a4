package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RND-Nagatech/work-monitoring/internal/services"
)

// apiResponse is the envelope every endpoint answers with: an outcome
// flag, a human-readable message and either a payload or an error
// detail. Raw faults never reach the caller.
type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, apiResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, apiResponse{
		Success: false,
		Message: message,
		Error:   http.StatusText(status),
	})
}

// respondServiceError translates service sentinels into the error
// taxonomy: validation 400, unauthorized 401, forbidden 403, not found
// 404, conflict 409. Anything unrecognized is a plain 500 with the
// given fallback message.
func respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrMissingTaskFields),
		errors.Is(err, services.ErrInvalidTaskStatus),
		errors.Is(err, services.ErrEmployeeIDRequired),
		errors.Is(err, services.ErrUserPasswordMismatch):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrTaskNotAssigned):
		respondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrDivisionNotFound),
		errors.Is(err, services.ErrEmployeeNotFound),
		errors.Is(err, services.ErrUserNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrTaskAlreadyTaken),
		errors.Is(err, services.ErrDivisionAlreadyExists),
		errors.Is(err, services.ErrEmployeeAlreadyExists),
		errors.Is(err, services.ErrUserAlreadyExists):
		respondError(c, http.StatusConflict, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, fallback)
	}
}
