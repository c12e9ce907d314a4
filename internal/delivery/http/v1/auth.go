package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required,max=255"`
	Password string `json:"password" binding:"required,max=255"`
}

type loginUserResponse struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	EmployeeID *string `json:"pegawai_id"`
}

type loginResponse struct {
	Token string            `json:"token"`
	User  loginUserResponse `json:"user"`
}

func (h *handlerImpl) HandleLogin(c *gin.Context) {
	var req loginRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		respondError(c, http.StatusBadRequest, "username and password are required")
		return
	}
	h.logger.Info().
		Str("username", req.Username).
		Msg("login request")

	result, err := h.auth.Login(c, req.Username, req.Password)
	if err != nil {
		respondServiceError(c, err, "login failed")
		return
	}

	respond(c, http.StatusOK, "login successful", loginResponse{
		Token: result.Token,
		User: loginUserResponse{
			ID:         result.User.ID,
			Username:   result.User.Username,
			Name:       result.Name,
			Role:       result.User.Role,
			EmployeeID: result.User.EmployeeID,
		},
	})
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6,max=255"`
}

func (h *handlerImpl) HandleChangePassword(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req changePasswordRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		respondError(c, http.StatusBadRequest, "old password and new password are required")
		return
	}

	err = h.auth.ChangePassword(c, claims.Subject, req.OldPassword, req.NewPassword)
	if err != nil {
		respondServiceError(c, err, "password change failed")
		return
	}

	respond(c, http.StatusOK, "password changed successfully", nil)
}
