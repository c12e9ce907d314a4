package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RND-Nagatech/work-monitoring/internal/models"
)

type divisionResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"kode_divisi"`
	Name      string    `json:"nama_divisi"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newDivisionResponse(division *models.Division) divisionResponse {
	return divisionResponse{
		ID:        division.ID,
		Code:      division.Code,
		Name:      division.Name,
		CreatedAt: division.CreatedAt,
		UpdatedAt: division.UpdatedAt,
	}
}

func (h *handlerImpl) HandleGetDivisions(c *gin.Context) {
	divisions, err := h.divisions.GetDivisions(c)
	if err != nil {
		respondServiceError(c, err, "failed to retrieve divisions")
		return
	}

	responses := make([]divisionResponse, len(divisions))
	for i, division := range divisions {
		responses[i] = newDivisionResponse(division)
	}
	respond(c, http.StatusOK, "divisions retrieved successfully", responses)
}

type divisionRequest struct {
	Code string `json:"kode_divisi" binding:"required,max=255"`
	Name string `json:"nama_divisi" binding:"required,max=255"`
}

func (h *handlerImpl) HandleCreateDivision(c *gin.Context) {
	var req divisionRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		respondError(c, http.StatusBadRequest, "kode_divisi and nama_divisi are required")
		return
	}

	division, err := h.divisions.CreateDivision(c, req.Code, req.Name)
	if err != nil {
		respondServiceError(c, err, "failed to create division")
		return
	}

	respond(c, http.StatusCreated, "division created successfully", newDivisionResponse(division))
}

func (h *handlerImpl) HandleUpdateDivision(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondError(c, http.StatusBadRequest, "no division id provided")
		return
	}

	var req divisionRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		respondError(c, http.StatusBadRequest, "kode_divisi and nama_divisi are required")
		return
	}

	division, err := h.divisions.UpdateDivision(c, id, req.Code, req.Name)
	if err != nil {
		respondServiceError(c, err, "failed to update division")
		return
	}

	respond(c, http.StatusOK, "division updated successfully", newDivisionResponse(division))
}

func (h *handlerImpl) HandleDeleteDivision(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondError(c, http.StatusBadRequest, "no division id provided")
		return
	}

	err := h.divisions.DeleteDivision(c, id)
	if err != nil {
		respondServiceError(c, err, "failed to delete division")
		return
	}

	respond(c, http.StatusOK, "division deleted successfully", nil)
}
