package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RND-Nagatech/work-monitoring/internal/models"
	"github.com/RND-Nagatech/work-monitoring/internal/report"
	"github.com/RND-Nagatech/work-monitoring/internal/services"
)

type reportResponse struct {
	Summary report.Summary `json:"summary"`
	Tasks   []report.Row   `json:"tasks"`
}

type rankingResponse struct {
	Mode    string         `json:"mode"`
	Filter  string         `json:"filter"`
	Summary report.Summary `json:"summary"`
	Ranking any            `json:"ranking"`
}

func (h *handlerImpl) HandleGetReport(c *gin.Context) {
	filter := report.Filter{
		DivisionCode: c.Query("division"),
		Status:       c.Query("status"),
		DateField:    c.Query("date_field"),
		Start:        c.Query("start"),
		End:          c.Query("end"),
	}
	mode := c.Query("filter")

	if filter.DateField != "" &&
		filter.DateField != report.DateFieldCreated &&
		filter.DateField != report.DateFieldCompleted {
		respondError(c, http.StatusBadRequest, "invalid date_field")
		return
	}
	if filter.Status != "" && !models.ValidStatus(filter.Status) {
		respondError(c, http.StatusBadRequest, services.ErrInvalidTaskStatus.Error())
		return
	}
	if mode != "" && mode != report.ModeTopPoints && mode != report.ModeTopTasks {
		respondError(c, http.StatusBadRequest, "invalid ranking filter")
		return
	}

	result, err := h.reports.GenerateReport(c, services.ReportParams{
		Filter: filter,
		Mode:   mode,
	})
	if err != nil {
		respondServiceError(c, err, "failed to generate report")
		return
	}

	switch result.Mode {
	case report.ModeTopPoints:
		respond(c, http.StatusOK, "report ranking generated successfully", rankingResponse{
			Mode:    "ranking",
			Filter:  result.Mode,
			Summary: result.Summary,
			Ranking: result.PointsRank,
		})
	case report.ModeTopTasks:
		respond(c, http.StatusOK, "report ranking generated successfully", rankingResponse{
			Mode:    "ranking",
			Filter:  result.Mode,
			Summary: result.Summary,
			Ranking: result.CountRank,
		})
	default:
		respond(c, http.StatusOK, "report generated successfully", reportResponse{
			Summary: result.Summary,
			Tasks:   result.Rows,
		})
	}
}
