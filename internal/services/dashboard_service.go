package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/RND-Nagatech/work-monitoring/internal/models"
	"github.com/RND-Nagatech/work-monitoring/internal/report"
)

type dashboardServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewDashboardService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) DashboardService {
	return &dashboardServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *dashboardServiceImpl) GetAdminDashboard(ctx context.Context) (*AdminDashboard, error) {
	tasks, err := s.selectAllTasks(ctx)
	if err != nil {
		return nil, err
	}

	divisions, err := s.selectDivisionNames(ctx)
	if err != nil {
		return nil, err
	}

	dashboard := &AdminDashboard{
		Summary:         report.Summarize(tasks),
		TasksByDivision: report.GroupByDivision(tasks, divisions),
		OnProgressTasks: report.OnProgress(tasks),
	}

	s.logger.Info().
		Int("tasks", dashboard.Summary.TotalTasks).
		Msg("built admin dashboard")
	return dashboard, nil
}

func (s *dashboardServiceImpl) GetEmployeeDashboard(ctx context.Context, employeeID string, now time.Time) (*EmployeeDashboard, error) {
	const selectEmployeeNameQuery = `
SELECT nama_pegawai
FROM employees
WHERE id = $1
`
	var employeeName string
	err := s.pgPool.QueryRow(ctx, selectEmployeeNameQuery, employeeID).Scan(&employeeName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("employee_id", employeeID).
				Msg("employee not found")
			return nil, ErrEmployeeNotFound
		}

		s.logger.Error().
			Err(err).
			Str("employee_id", employeeID).
			Msg("failed to select employee name")
		return nil, err
	}

	const selectAssignedTasksQuery = selectTaskColumns + `
WHERE pic = $1
ORDER BY created_at DESC
`
	rows, err := s.pgPool.Query(ctx, selectAssignedTasksQuery, employeeName)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select assigned tasks")
		return nil, err
	}
	defer rows.Close()

	tasks, err := collectTasks(rows)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to scan assigned tasks")
		return nil, err
	}

	divisions, err := s.selectDivisionNames(ctx)
	if err != nil {
		return nil, err
	}

	dashboard := &EmployeeDashboard{
		Summary:  report.Summarize(tasks),
		Tasks:    report.Rows(tasks, divisions),
		Upcoming: report.Upcoming(tasks, now),
	}

	s.logger.Info().
		Str("employee_id", employeeID).
		Int("tasks", dashboard.Summary.TotalTasks).
		Msg("built employee dashboard")
	return dashboard, nil
}

func (s *dashboardServiceImpl) selectAllTasks(ctx context.Context) ([]*models.Task, error) {
	const selectAllTasksQuery = selectTaskColumns + `
ORDER BY created_at DESC
`
	rows, err := s.pgPool.Query(ctx, selectAllTasksQuery)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select tasks")
		return nil, err
	}
	defer rows.Close()

	tasks, err := collectTasks(rows)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to scan tasks")
		return nil, err
	}
	return tasks, nil
}

func (s *dashboardServiceImpl) selectDivisionNames(ctx context.Context) ([]*models.Division, error) {
	const selectDivisionNamesQuery = `
SELECT kode_divisi, nama_divisi
FROM divisions
`
	rows, err := s.pgPool.Query(ctx, selectDivisionNamesQuery)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select divisions")
		return nil, err
	}
	defer rows.Close()

	var divisions []*models.Division
	for rows.Next() {
		division := new(models.Division)
		err = rows.Scan(&division.Code, &division.Name)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan division")
			return nil, err
		}
		divisions = append(divisions, division)
	}
	return divisions, rows.Err()
}
