package report

import (
	"testing"
	"time"

	"github.com/RND-Nagatech/work-monitoring/internal/models"
)

func strptr(s string) *string { return &s }

func task(mod func(*models.Task)) *models.Task {
	t := &models.Task{
		ID:           "t1",
		Code:         "JOB-001",
		DivisionCode: "DIV-01",
		Description:  "demo",
		Status:       models.StatusOpen,
		Points:       1,
		DateCreated:  "2026-01-10",
		Deadline:     time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	if mod != nil {
		mod(t)
	}
	return t
}

func TestApply_DivisionAndStatus(t *testing.T) {
	tasks := []*models.Task{
		task(func(x *models.Task) { x.ID = "a"; x.DivisionCode = "DIV-01"; x.Status = models.StatusOpen }),
		task(func(x *models.Task) { x.ID = "b"; x.DivisionCode = "DIV-02"; x.Status = models.StatusOpen }),
		task(func(x *models.Task) { x.ID = "c"; x.DivisionCode = "DIV-01"; x.Status = models.StatusOnProgress }),
	}

	got := Apply(tasks, Filter{DivisionCode: "DIV-01", Status: models.StatusOpen})
	if len(got) != 1 {
		t.Fatalf("expected 1 task, got %d", len(got))
	}
	if got[0].ID != "a" {
		t.Errorf("expected task 'a', got '%s'", got[0].ID)
	}
}

func TestApply_CreatedDateRange(t *testing.T) {
	tasks := []*models.Task{
		task(func(x *models.Task) { x.ID = "early"; x.DateCreated = "2026-01-05" }),
		task(func(x *models.Task) { x.ID = "inside"; x.DateCreated = "2026-01-10" }),
		task(func(x *models.Task) { x.ID = "edge"; x.DateCreated = "2026-01-20" }),
		task(func(x *models.Task) { x.ID = "late"; x.DateCreated = "2026-01-21" }),
	}

	got := Apply(tasks, Filter{DateField: DateFieldCreated, Start: "2026-01-10", End: "2026-01-20"})
	if len(got) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(got))
	}
	if got[0].ID != "inside" || got[1].ID != "edge" {
		t.Errorf("expected [inside edge], got [%s %s]", got[0].ID, got[1].ID)
	}
}

func TestApply_CompletedDateOverridesStatus(t *testing.T) {
	tasks := []*models.Task{
		task(func(x *models.Task) {
			x.ID = "done"
			x.Status = models.StatusDone
			x.DateCompleted = strptr("2026-01-15")
		}),
		task(func(x *models.Task) {
			x.ID = "open"
			x.Status = models.StatusOpen
		}),
		task(func(x *models.Task) {
			x.ID = "done-outside"
			x.Status = models.StatusDone
			x.DateCompleted = strptr("2026-02-01")
		}),
	}

	// An explicit OPEN filter cannot match anything in a completed-date
	// range, so it is ignored rather than producing an empty report.
	got := Apply(tasks, Filter{
		Status:    models.StatusOpen,
		DateField: DateFieldCompleted,
		Start:     "2026-01-01",
		End:       "2026-01-31",
	})
	if len(got) != 1 {
		t.Fatalf("expected 1 task, got %d", len(got))
	}
	if got[0].ID != "done" {
		t.Errorf("expected task 'done', got '%s'", got[0].ID)
	}
}

func TestApply_OpenEndedBounds(t *testing.T) {
	tasks := []*models.Task{
		task(func(x *models.Task) { x.ID = "a"; x.DateCreated = "2026-01-05" }),
		task(func(x *models.Task) { x.ID = "b"; x.DateCreated = "2026-01-15" }),
	}

	t.Run("start only", func(t *testing.T) {
		got := Apply(tasks, Filter{Start: "2026-01-10"})
		if len(got) != 1 || got[0].ID != "b" {
			t.Fatalf("expected [b], got %d tasks", len(got))
		}
	})

	t.Run("end only", func(t *testing.T) {
		got := Apply(tasks, Filter{End: "2026-01-10"})
		if len(got) != 1 || got[0].ID != "a" {
			t.Fatalf("expected [a], got %d tasks", len(got))
		}
	})

	t.Run("no bounds", func(t *testing.T) {
		got := Apply(tasks, Filter{})
		if len(got) != 2 {
			t.Fatalf("expected 2 tasks, got %d", len(got))
		}
	})
}

func TestSummarize(t *testing.T) {
	tasks := []*models.Task{
		task(func(x *models.Task) { x.Status = models.StatusOpen; x.Points = 10 }),
		task(func(x *models.Task) { x.Status = models.StatusOnProgress; x.Points = 5 }),
		task(func(x *models.Task) { x.Status = models.StatusDone; x.Points = 7 }),
		task(func(x *models.Task) { x.Status = models.StatusDone; x.Points = 3 }),
	}

	s := Summarize(tasks)
	if s.TotalTasks != 4 {
		t.Errorf("expected 4 total tasks, got %d", s.TotalTasks)
	}
	if s.TotalPoints != 25 {
		t.Errorf("expected 25 total points, got %d", s.TotalPoints)
	}
	if s.ByStatus.Open != 1 || s.ByStatus.OnProgress != 1 || s.ByStatus.Done != 2 {
		t.Errorf("unexpected status counts: %+v", s.ByStatus)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalTasks != 0 || s.TotalPoints != 0 {
		t.Errorf("expected zero summary, got %+v", s)
	}
}

func TestRankByPoints(t *testing.T) {
	tasks := []*models.Task{
		task(func(x *models.Task) { x.PIC = strptr("Andi"); x.Points = 10 }),
		task(func(x *models.Task) { x.PIC = strptr("Andi"); x.Points = 5 }),
		task(func(x *models.Task) { x.PIC = strptr("Budi"); x.Points = 7 }),
		task(func(x *models.Task) { x.PIC = nil; x.Points = 3 }),
	}

	ranking := RankByPoints(tasks)
	if len(ranking) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(ranking))
	}
	want := []PointsRank{
		{Name: "Andi", Points: 15},
		{Name: "Budi", Points: 7},
		{Name: Unassigned, Points: 3},
	}
	for i, w := range want {
		if ranking[i] != w {
			t.Errorf("rank %d: expected %+v, got %+v", i, w, ranking[i])
		}
	}
}

func TestRankByPoints_TiesKeepEncounterOrder(t *testing.T) {
	tasks := []*models.Task{
		task(func(x *models.Task) { x.PIC = strptr("Citra"); x.Points = 5 }),
		task(func(x *models.Task) { x.PIC = strptr("Dewi"); x.Points = 5 }),
	}

	ranking := RankByPoints(tasks)
	if ranking[0].Name != "Citra" || ranking[1].Name != "Dewi" {
		t.Errorf("expected [Citra Dewi], got [%s %s]", ranking[0].Name, ranking[1].Name)
	}
}

func TestRankByTaskCount(t *testing.T) {
	tasks := []*models.Task{
		task(func(x *models.Task) { x.PIC = strptr("Andi") }),
		task(func(x *models.Task) { x.PIC = strptr("Budi") }),
		task(func(x *models.Task) { x.PIC = strptr("Budi") }),
		task(func(x *models.Task) { x.PIC = nil }),
	}

	ranking := RankByTaskCount(tasks)
	if len(ranking) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(ranking))
	}
	if ranking[0].Name != "Budi" || ranking[0].Count != 2 {
		t.Errorf("expected Budi with 2 tasks first, got %+v", ranking[0])
	}

	// Group totals must add up to the task count.
	total := 0
	for _, r := range ranking {
		total += r.Count
	}
	if total != len(tasks) {
		t.Errorf("expected counts to sum to %d, got %d", len(tasks), total)
	}
}

func TestRows_DivisionNameFallback(t *testing.T) {
	divisions := []*models.Division{
		{ID: "d1", Code: "DIV-01", Name: "Engineering"},
	}
	tasks := []*models.Task{
		task(func(x *models.Task) { x.ID = "a"; x.DivisionCode = "DIV-01" }),
		task(func(x *models.Task) { x.ID = "b"; x.DivisionCode = "DIV-99" }),
	}

	rows := Rows(tasks, divisions)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].DivisionName != "Engineering" {
		t.Errorf("expected 'Engineering', got '%s'", rows[0].DivisionName)
	}
	if rows[1].DivisionName != UnknownDivision {
		t.Errorf("expected '%s', got '%s'", UnknownDivision, rows[1].DivisionName)
	}
	if rows[0].Deadline != "2026-01-31" {
		t.Errorf("expected deadline '2026-01-31', got '%s'", rows[0].Deadline)
	}
}
