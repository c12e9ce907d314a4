package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RND-Nagatech/work-monitoring/internal/models"
	"github.com/RND-Nagatech/work-monitoring/internal/services"
)

// userResponse never carries the password hash.
type userResponse struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Role       string    `json:"role"`
	EmployeeID *string   `json:"pegawai_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func newUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:         user.ID,
		Username:   user.Username,
		Role:       user.Role,
		EmployeeID: user.EmployeeID,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}

func (h *handlerImpl) HandleGetUsers(c *gin.Context) {
	users, err := h.users.GetUsers(c)
	if err != nil {
		respondServiceError(c, err, "failed to retrieve users")
		return
	}

	responses := make([]userResponse, len(users))
	for i, user := range users {
		responses[i] = newUserResponse(user)
	}
	respond(c, http.StatusOK, "users retrieved successfully", responses)
}

type createUserRequest struct {
	Username   string  `json:"username" binding:"required,max=255"`
	Password   string  `json:"password" binding:"required,min=6,max=255"`
	Role       string  `json:"role" binding:"required,oneof=admin manager employee"`
	EmployeeID *string `json:"pegawai_id"`
}

func (h *handlerImpl) HandleCreateUser(c *gin.Context) {
	var req createUserRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		respondError(c, http.StatusBadRequest, "username, password, and role are required")
		return
	}

	user, err := h.users.CreateUser(c, services.CreateUserParams{
		Username:   req.Username,
		Password:   req.Password,
		Role:       req.Role,
		EmployeeID: req.EmployeeID,
	})
	if err != nil {
		respondServiceError(c, err, "failed to create user")
		return
	}

	respond(c, http.StatusCreated, "user created successfully", newUserResponse(user))
}

type updateUserRequest struct {
	Username   *string `json:"username" binding:"omitempty,max=255"`
	Role       *string `json:"role" binding:"omitempty,oneof=admin manager employee"`
	EmployeeID *string `json:"pegawai_id"`
}

func (h *handlerImpl) HandleUpdateUser(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondError(c, http.StatusBadRequest, "no user id provided")
		return
	}

	var req updateUserRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.UpdateUser(c, services.UpdateUserParams{
		ID:         id,
		Username:   req.Username,
		Role:       req.Role,
		EmployeeID: req.EmployeeID,
	})
	if err != nil {
		respondServiceError(c, err, "failed to update user")
		return
	}

	respond(c, http.StatusOK, "user updated successfully", newUserResponse(user))
}

func (h *handlerImpl) HandleDeleteUser(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondError(c, http.StatusBadRequest, "no user id provided")
		return
	}

	err := h.users.DeleteUser(c, id)
	if err != nil {
		respondServiceError(c, err, "failed to delete user")
		return
	}

	respond(c, http.StatusOK, "user deleted successfully", nil)
}

type resetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=6,max=255"`
}

func (h *handlerImpl) HandleResetPassword(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondError(c, http.StatusBadRequest, "no user id provided")
		return
	}

	var req resetPasswordRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		respondError(c, http.StatusBadRequest, "newPassword is required")
		return
	}

	err = h.users.ResetPassword(c, id, req.NewPassword)
	if err != nil {
		respondServiceError(c, err, "failed to reset password")
		return
	}

	respond(c, http.StatusOK, "password reset successfully", nil)
}
