package report

import (
	"time"

	"github.com/RND-Nagatech/work-monitoring/internal/models"
)

// DivisionGroup holds the tasks of one division, keyed by division name.
type DivisionGroup struct {
	Division string
	Tasks    []*models.Task
}

// GroupByDivision buckets tasks by division name in encounter order.
// Codes without a matching division fall back to the raw code so the
// group is still visible on the board.
func GroupByDivision(tasks []*models.Task, divisions []*models.Division) []DivisionGroup {
	names := DivisionNames(divisions)

	order := make([]string, 0, len(divisions))
	buckets := make(map[string][]*models.Task)
	for _, t := range tasks {
		name, ok := names[t.DivisionCode]
		if !ok {
			name = t.DivisionCode
			if name == "" {
				name = UnknownDivision
			}
		}
		if _, seen := buckets[name]; !seen {
			order = append(order, name)
		}
		buckets[name] = append(buckets[name], t)
	}

	groups := make([]DivisionGroup, len(order))
	for i, name := range order {
		groups[i] = DivisionGroup{Division: name, Tasks: buckets[name]}
	}
	return groups
}

// OnProgress returns the tasks currently being worked on.
func OnProgress(tasks []*models.Task) []*models.Task {
	out := make([]*models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status == models.StatusOnProgress {
			out = append(out, t)
		}
	}
	return out
}

// Upcoming returns the non-DONE tasks whose deadline falls within the
// next two whole days relative to now. Overdue tasks are excluded.
func Upcoming(tasks []*models.Task, now time.Time) []*models.Task {
	out := make([]*models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status == models.StatusDone {
			continue
		}
		diff := t.Deadline.Sub(now)
		if diff < 0 {
			continue
		}
		if int(diff.Hours()/24) <= 2 {
			out = append(out, t)
		}
	}
	return out
}
