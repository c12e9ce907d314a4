package v1

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RND-Nagatech/work-monitoring/internal/models"
	"github.com/RND-Nagatech/work-monitoring/internal/services"
)

type taskResponse struct {
	ID            string    `json:"id"`
	Code          string    `json:"kode_pekerjaan"`
	DivisionCode  string    `json:"kode_divisi"`
	Description   string    `json:"deskripsi"`
	Status        string    `json:"status_pekerjaan"`
	Points        int       `json:"poin"`
	PIC           *string   `json:"pic"`
	DateCreated   string    `json:"tanggal_input"`
	DateCompleted *string   `json:"tanggal_selesai"`
	Deadline      string    `json:"deadline"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func newTaskResponse(task *models.Task) taskResponse {
	return taskResponse{
		ID:            task.ID,
		Code:          task.Code,
		DivisionCode:  task.DivisionCode,
		Description:   task.Description,
		Status:        task.Status,
		Points:        task.Points,
		PIC:           task.PIC,
		DateCreated:   task.DateCreated,
		DateCompleted: task.DateCompleted,
		Deadline:      task.Deadline.Format(time.DateOnly),
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
	}
}

func newTaskResponses(tasks []*models.Task) []taskResponse {
	responses := make([]taskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = newTaskResponse(task)
	}
	return responses
}

// nullableString distinguishes an absent JSON field from an explicit
// null, which clears the value.
type nullableString struct {
	Set   bool
	Value *string
}

func (n *nullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

func parseDeadline(s string) (time.Time, error) {
	deadline, err := time.Parse(time.DateOnly, s)
	if err == nil {
		return deadline, nil
	}
	return time.Parse(time.RFC3339, s)
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	tasks, err := h.tasks.GetBoardTasks(c)
	if err != nil {
		respondServiceError(c, err, "failed to retrieve tasks")
		return
	}

	respond(c, http.StatusOK, "tasks retrieved successfully", newTaskResponses(tasks))
}

type createTaskRequest struct {
	Code         string `json:"kode_pekerjaan" binding:"required,max=255"`
	DivisionCode string `json:"kode_divisi" binding:"required,max=255"`
	Description  string `json:"deskripsi" binding:"required"`
	Points       int    `json:"poin" binding:"required,gt=0"`
	Deadline     string `json:"deadline" binding:"required"`
	Status       string `json:"status"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		respondError(c, http.StatusBadRequest, services.ErrMissingTaskFields.Error())
		return
	}

	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Str("deadline", req.Deadline).
			Msg("failed to parse deadline")
		respondError(c, http.StatusBadRequest, "invalid deadline")
		return
	}

	task, err := h.tasks.CreateTask(c, services.CreateTaskParams{
		Code:         req.Code,
		DivisionCode: req.DivisionCode,
		Description:  req.Description,
		Points:       req.Points,
		Deadline:     deadline,
		Status:       req.Status,
	})
	if err != nil {
		respondServiceError(c, err, "failed to create task")
		return
	}

	respond(c, http.StatusCreated, "task created successfully", newTaskResponse(task))
}

type updateTaskRequest struct {
	Code         *string        `json:"kode_pekerjaan"`
	DivisionCode *string        `json:"kode_divisi"`
	Description  *string        `json:"deskripsi"`
	Points       *int           `json:"poin"`
	Deadline     *string        `json:"deadline"`
	PIC          nullableString `json:"pic"`
	Status       *string        `json:"status_pekerjaan"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		respondError(c, http.StatusBadRequest, "no task id provided")
		return
	}

	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	params := services.UpdateTaskParams{
		ID:           taskID,
		Code:         req.Code,
		DivisionCode: req.DivisionCode,
		Description:  req.Description,
		Points:       req.Points,
		PIC:          req.PIC.Value,
		ClearPIC:     req.PIC.Set && req.PIC.Value == nil,
		Status:       req.Status,
	}

	if req.Deadline != nil {
		deadline, err := parseDeadline(*req.Deadline)
		if err != nil {
			h.logger.Warn().
				Err(err).
				Str("deadline", *req.Deadline).
				Msg("failed to parse deadline")
			respondError(c, http.StatusBadRequest, "invalid deadline")
			return
		}
		params.Deadline = &deadline
	}

	task, err := h.tasks.UpdateTask(c, params)
	if err != nil {
		respondServiceError(c, err, "failed to update task")
		return
	}

	respond(c, http.StatusOK, "task updated successfully", newTaskResponse(task))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		respondError(c, http.StatusBadRequest, "no task id provided")
		return
	}

	err := h.tasks.DeleteTask(c, taskID)
	if err != nil {
		respondServiceError(c, err, "failed to delete task")
		return
	}

	respond(c, http.StatusOK, "task deleted successfully", nil)
}

func (h *handlerImpl) HandleGetAvailableTasks(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	tasks, err := h.tasks.GetAvailableTasks(c, claims.EmployeeID)
	if err != nil {
		respondServiceError(c, err, "failed to retrieve available tasks")
		return
	}

	respond(c, http.StatusOK, "available tasks retrieved successfully", newTaskResponses(tasks))
}

func (h *handlerImpl) HandleTakeTask(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		respondError(c, http.StatusBadRequest, "no task id provided")
		return
	}

	task, err := h.tasks.TakeTask(c, taskID, claims.EmployeeID)
	if err != nil {
		respondServiceError(c, err, "failed to take task")
		return
	}

	respond(c, http.StatusOK, "task taken successfully", newTaskResponse(task))
}

func (h *handlerImpl) HandleFinishTask(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		respondError(c, http.StatusBadRequest, "no task id provided")
		return
	}

	task, err := h.tasks.FinishTask(c, taskID, claims.EmployeeID)
	if err != nil {
		respondServiceError(c, err, "failed to finish task")
		return
	}

	respond(c, http.StatusOK, "task marked as done successfully", newTaskResponse(task))
}
