// Package report derives read-only views over task sets: filtered
// report rows, summaries, rankings and dashboard groupings. It never
// touches storage and never mutates tasks.
package report

import (
	"sort"

	"github.com/RND-Nagatech/work-monitoring/internal/models"
)

const (
	DateFieldCreated   = "created"
	DateFieldCompleted = "completed"

	ModeTopPoints = "top_points"
	ModeTopTasks  = "top_tasks"

	// Unassigned is the ranking group for tasks without a PIC.
	Unassigned = "Unassigned"
	// UnknownDivision is the division-name fallback for stale codes.
	UnknownDivision = "Unknown"
)

// Filter selects tasks for a report. Empty fields are wildcards.
// Start and End are inclusive YYYY-MM-DD bounds compared as strings;
// zero-padded ISO dates make that equivalent to chronological order.
type Filter struct {
	DivisionCode string
	Status       string
	DateField    string
	Start        string
	End          string
}

// Apply returns the tasks matched by f, preserving input order.
//
// Filtering on the completion date restricts the result to DONE tasks
// and overrides any explicit status filter: tasks without a completion
// date cannot fall inside a completed-date range.
func Apply(tasks []*models.Task, f Filter) []*models.Task {
	byCompleted := f.DateField == DateFieldCompleted

	out := make([]*models.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.DivisionCode != "" && t.DivisionCode != f.DivisionCode {
			continue
		}
		if byCompleted {
			if t.Status != models.StatusDone || t.DateCompleted == nil {
				continue
			}
			if !inRange(*t.DateCompleted, f.Start, f.End) {
				continue
			}
		} else {
			if f.Status != "" && t.Status != f.Status {
				continue
			}
			if !inRange(t.DateCreated, f.Start, f.End) {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

func inRange(date, start, end string) bool {
	if start != "" && date < start {
		return false
	}
	if end != "" && date > end {
		return false
	}
	return true
}

type StatusCounts struct {
	Open       int `json:"OPEN"`
	OnProgress int `json:"ON PROGRESS"`
	Done       int `json:"DONE"`
}

type Summary struct {
	TotalTasks  int          `json:"totalTasks"`
	TotalPoints int          `json:"totalPoints"`
	ByStatus    StatusCounts `json:"byStatus"`
}

// Summarize counts tasks and points in the given set.
func Summarize(tasks []*models.Task) Summary {
	var s Summary
	s.TotalTasks = len(tasks)
	for _, t := range tasks {
		s.TotalPoints += t.Points
		switch t.Status {
		case models.StatusOpen:
			s.ByStatus.Open++
		case models.StatusOnProgress:
			s.ByStatus.OnProgress++
		case models.StatusDone:
			s.ByStatus.Done++
		}
	}
	return s
}

type PointsRank struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// RankByPoints groups tasks by PIC, sums points per group and sorts
// descending. Ties keep encounter order.
func RankByPoints(tasks []*models.Task) []PointsRank {
	names, totals := groupByPIC(tasks, func(t *models.Task) int { return t.Points })

	ranking := make([]PointsRank, len(names))
	for i, name := range names {
		ranking[i] = PointsRank{Name: name, Points: totals[name]}
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Points > ranking[j].Points
	})
	return ranking
}

type CountRank struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// RankByTaskCount groups tasks by PIC, counts per group and sorts
// descending. Ties keep encounter order.
func RankByTaskCount(tasks []*models.Task) []CountRank {
	names, totals := groupByPIC(tasks, func(*models.Task) int { return 1 })

	ranking := make([]CountRank, len(names))
	for i, name := range names {
		ranking[i] = CountRank{Name: name, Count: totals[name]}
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Count > ranking[j].Count
	})
	return ranking
}

func groupByPIC(tasks []*models.Task, weight func(*models.Task) int) ([]string, map[string]int) {
	names := make([]string, 0, len(tasks))
	totals := make(map[string]int, len(tasks))
	for _, t := range tasks {
		name := Unassigned
		if t.PIC != nil {
			name = *t.PIC
		}
		if _, seen := totals[name]; !seen {
			names = append(names, name)
		}
		totals[name] += weight(t)
	}
	return names, totals
}

// Row is a flat report line with the division name joined in, ready for
// tabular rendering and PDF/Excel export on the client.
type Row struct {
	ID           string  `json:"id"`
	Code         string  `json:"kode_pekerjaan"`
	DivisionName string  `json:"division_name"`
	Description  string  `json:"deskripsi"`
	Points       int     `json:"poin"`
	PIC          *string `json:"pic"`
	Status       string  `json:"status_pekerjaan"`
	DateCreated  string  `json:"tanggal_input"`
	Deadline     string  `json:"deadline"`
}

// Rows projects tasks into report rows using the division name lookup.
func Rows(tasks []*models.Task, divisions []*models.Division) []Row {
	names := DivisionNames(divisions)

	rows := make([]Row, len(tasks))
	for i, t := range tasks {
		name, ok := names[t.DivisionCode]
		if !ok {
			name = UnknownDivision
		}
		rows[i] = Row{
			ID:           t.ID,
			Code:         t.Code,
			DivisionName: name,
			Description:  t.Description,
			Points:       t.Points,
			PIC:          t.PIC,
			Status:       t.Status,
			DateCreated:  t.DateCreated,
			Deadline:     t.Deadline.Format("2006-01-02"),
		}
	}
	return rows
}

// DivisionNames builds a code to name lookup.
func DivisionNames(divisions []*models.Division) map[string]string {
	names := make(map[string]string, len(divisions))
	for _, d := range divisions {
		names[d.Code] = d.Name
	}
	return names
}
