package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RND-Nagatech/work-monitoring/internal/report"
)

type divisionGroupResponse struct {
	Division string         `json:"division"`
	Tasks    []taskResponse `json:"tasks"`
}

type adminDashboardResponse struct {
	TotalTasks      int                     `json:"totalTasks"`
	TasksByStatus   report.StatusCounts     `json:"tasksByStatus"`
	TasksByDivision []divisionGroupResponse `json:"tasksByDivision"`
	OnProgressTasks []taskResponse          `json:"onProgressTasks"`
}

func (h *handlerImpl) HandleAdminDashboard(c *gin.Context) {
	dashboard, err := h.dashboards.GetAdminDashboard(c)
	if err != nil {
		respondServiceError(c, err, "failed to retrieve admin dashboard")
		return
	}

	groups := make([]divisionGroupResponse, len(dashboard.TasksByDivision))
	for i, group := range dashboard.TasksByDivision {
		groups[i] = divisionGroupResponse{
			Division: group.Division,
			Tasks:    newTaskResponses(group.Tasks),
		}
	}

	respond(c, http.StatusOK, "admin dashboard retrieved successfully", adminDashboardResponse{
		TotalTasks:      dashboard.Summary.TotalTasks,
		TasksByStatus:   dashboard.Summary.ByStatus,
		TasksByDivision: groups,
		OnProgressTasks: newTaskResponses(dashboard.OnProgressTasks),
	})
}

type employeeDashboardResponse struct {
	TotalTasks    int                 `json:"totalTasks"`
	TasksByStatus report.StatusCounts `json:"tasksByStatus"`
	TotalPoints   int                 `json:"totalPoints"`
	Tasks         []report.Row        `json:"tasks"`
	Upcoming      []taskResponse      `json:"upcoming"`
}

func (h *handlerImpl) HandleEmployeeDashboard(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	dashboard, err := h.dashboards.GetEmployeeDashboard(c, claims.EmployeeID, time.Now())
	if err != nil {
		respondServiceError(c, err, "failed to retrieve employee dashboard")
		return
	}

	respond(c, http.StatusOK, "employee dashboard retrieved successfully", employeeDashboardResponse{
		TotalTasks:    dashboard.Summary.TotalTasks,
		TasksByStatus: dashboard.Summary.ByStatus,
		TotalPoints:   dashboard.Summary.TotalPoints,
		Tasks:         dashboard.Tasks,
		Upcoming:      newTaskResponses(dashboard.Upcoming),
	})
}
