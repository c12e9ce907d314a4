package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RND-Nagatech/work-monitoring/internal/models"
)

type employeeResponse struct {
	ID           string    `json:"id"`
	Code         string    `json:"kode_pegawai"`
	Name         string    `json:"nama_pegawai"`
	DivisionCode string    `json:"kode_divisi"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func newEmployeeResponse(employee *models.Employee) employeeResponse {
	return employeeResponse{
		ID:           employee.ID,
		Code:         employee.Code,
		Name:         employee.Name,
		DivisionCode: employee.DivisionCode,
		CreatedAt:    employee.CreatedAt,
		UpdatedAt:    employee.UpdatedAt,
	}
}

func (h *handlerImpl) HandleGetEmployees(c *gin.Context) {
	employees, err := h.employees.GetEmployees(c)
	if err != nil {
		respondServiceError(c, err, "failed to retrieve employees")
		return
	}

	responses := make([]employeeResponse, len(employees))
	for i, employee := range employees {
		responses[i] = newEmployeeResponse(employee)
	}
	respond(c, http.StatusOK, "employees retrieved successfully", responses)
}

type employeeRequest struct {
	Code         string `json:"kode_pegawai" binding:"required,max=255"`
	Name         string `json:"nama_pegawai" binding:"required,max=255"`
	DivisionCode string `json:"kode_divisi" binding:"required,max=255"`
}

func (h *handlerImpl) HandleCreateEmployee(c *gin.Context) {
	var req employeeRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		respondError(c, http.StatusBadRequest, "kode_pegawai, nama_pegawai, and kode_divisi are required")
		return
	}

	employee, err := h.employees.CreateEmployee(c, req.Code, req.Name, req.DivisionCode)
	if err != nil {
		respondServiceError(c, err, "failed to create employee")
		return
	}

	respond(c, http.StatusCreated, "employee created successfully", newEmployeeResponse(employee))
}

func (h *handlerImpl) HandleUpdateEmployee(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondError(c, http.StatusBadRequest, "no employee id provided")
		return
	}

	var req employeeRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		respondError(c, http.StatusBadRequest, "kode_pegawai, nama_pegawai, and kode_divisi are required")
		return
	}

	employee, err := h.employees.UpdateEmployee(c, id, req.Code, req.Name, req.DivisionCode)
	if err != nil {
		respondServiceError(c, err, "failed to update employee")
		return
	}

	respond(c, http.StatusOK, "employee updated successfully", newEmployeeResponse(employee))
}

func (h *handlerImpl) HandleDeleteEmployee(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondError(c, http.StatusBadRequest, "no employee id provided")
		return
	}

	err := h.employees.DeleteEmployee(c, id)
	if err != nil {
		respondServiceError(c, err, "failed to delete employee")
		return
	}

	respond(c, http.StatusOK, "employee deleted successfully", nil)
}
