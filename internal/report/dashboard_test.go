package report

import (
	"testing"
	"time"

	"github.com/RND-Nagatech/work-monitoring/internal/models"
)

func TestGroupByDivision(t *testing.T) {
	divisions := []*models.Division{
		{ID: "d1", Code: "DIV-01", Name: "Engineering"},
		{ID: "d2", Code: "DIV-02", Name: "Finance"},
	}
	tasks := []*models.Task{
		task(func(x *models.Task) { x.ID = "a"; x.DivisionCode = "DIV-02" }),
		task(func(x *models.Task) { x.ID = "b"; x.DivisionCode = "DIV-01" }),
		task(func(x *models.Task) { x.ID = "c"; x.DivisionCode = "DIV-02" }),
	}

	groups := GroupByDivision(tasks, divisions)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	// Encounter order, not division order.
	if groups[0].Division != "Finance" || groups[1].Division != "Engineering" {
		t.Errorf("expected [Finance Engineering], got [%s %s]", groups[0].Division, groups[1].Division)
	}
	if len(groups[0].Tasks) != 2 || len(groups[1].Tasks) != 1 {
		t.Errorf("unexpected group sizes: %d and %d", len(groups[0].Tasks), len(groups[1].Tasks))
	}
}

func TestGroupByDivision_StaleCodeFallsBackToCode(t *testing.T) {
	tasks := []*models.Task{
		task(func(x *models.Task) { x.DivisionCode = "DIV-99" }),
		task(func(x *models.Task) { x.DivisionCode = "" }),
	}

	groups := GroupByDivision(tasks, nil)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Division != "DIV-99" {
		t.Errorf("expected 'DIV-99', got '%s'", groups[0].Division)
	}
	if groups[1].Division != UnknownDivision {
		t.Errorf("expected '%s', got '%s'", UnknownDivision, groups[1].Division)
	}
}

func TestOnProgress(t *testing.T) {
	tasks := []*models.Task{
		task(func(x *models.Task) { x.ID = "a"; x.Status = models.StatusOpen }),
		task(func(x *models.Task) { x.ID = "b"; x.Status = models.StatusOnProgress }),
		task(func(x *models.Task) { x.ID = "c"; x.Status = models.StatusDone }),
	}

	got := OnProgress(tasks)
	if len(got) != 1 {
		t.Fatalf("expected 1 task, got %d", len(got))
	}
	if got[0].ID != "b" {
		t.Errorf("expected task 'b', got '%s'", got[0].ID)
	}
}

func TestUpcoming(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	deadline := func(day int) time.Time {
		return time.Date(2026, 1, day, 0, 0, 0, 0, time.UTC)
	}

	t.Run("within two days", func(t *testing.T) {
		tasks := []*models.Task{
			task(func(x *models.Task) { x.ID = "today"; x.Deadline = deadline(11) }),
			task(func(x *models.Task) { x.ID = "soon"; x.Deadline = deadline(12) }),
		}
		got := Upcoming(tasks, now)
		if len(got) != 2 {
			t.Fatalf("expected 2 tasks, got %d", len(got))
		}
	})

	t.Run("far deadline excluded", func(t *testing.T) {
		tasks := []*models.Task{
			task(func(x *models.Task) { x.Deadline = deadline(20) }),
		}
		got := Upcoming(tasks, now)
		if len(got) != 0 {
			t.Fatalf("expected 0 tasks, got %d", len(got))
		}
	})

	t.Run("overdue excluded", func(t *testing.T) {
		tasks := []*models.Task{
			task(func(x *models.Task) { x.Deadline = deadline(9) }),
		}
		got := Upcoming(tasks, now)
		if len(got) != 0 {
			t.Fatalf("expected 0 tasks, got %d", len(got))
		}
	})

	t.Run("done excluded", func(t *testing.T) {
		tasks := []*models.Task{
			task(func(x *models.Task) {
				x.Status = models.StatusDone
				x.Deadline = deadline(11)
			}),
		}
		got := Upcoming(tasks, now)
		if len(got) != 0 {
			t.Fatalf("expected 0 tasks, got %d", len(got))
		}
	})
}
