package services

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/RND-Nagatech/work-monitoring/internal/models"
	"github.com/RND-Nagatech/work-monitoring/internal/report"
)

type reportServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewReportService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) ReportService {
	return &reportServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *reportServiceImpl) GenerateReport(ctx context.Context, params ReportParams) (*Report, error) {
	// The whole filter is applied in memory by the report engine so
	// that the completed-date rule lives in exactly one place. The
	// SQL narrows by division only.
	tasks, err := s.selectTasks(ctx, params.Filter.DivisionCode)
	if err != nil {
		return nil, err
	}

	divisions, err := s.selectDivisions(ctx)
	if err != nil {
		return nil, err
	}

	filtered := report.Apply(tasks, params.Filter)
	result := &Report{
		Summary: report.Summarize(filtered),
		Mode:    params.Mode,
	}

	switch params.Mode {
	case report.ModeTopPoints:
		result.PointsRank = report.RankByPoints(filtered)
	case report.ModeTopTasks:
		result.CountRank = report.RankByTaskCount(filtered)
	default:
		result.Mode = ""
		result.Rows = report.Rows(filtered, divisions)
	}

	s.logger.Info().
		Int("tasks", result.Summary.TotalTasks).
		Str("mode", params.Mode).
		Msg("generated report")
	return result, nil
}

func (s *reportServiceImpl) selectTasks(ctx context.Context, divisionCode string) ([]*models.Task, error) {
	query := selectTaskColumns
	args := []any{}
	if divisionCode != "" {
		query += `
WHERE kode_divisi = $1`
		args = append(args, divisionCode)
	}
	query += `
ORDER BY tanggal_input DESC, created_at DESC
`
	rows, err := s.pgPool.Query(ctx, query, args...)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select report tasks")
		return nil, err
	}
	defer rows.Close()

	tasks, err := collectTasks(rows)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to scan report tasks")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Msg("selected report tasks")
	return tasks, nil
}

func (s *reportServiceImpl) selectDivisions(ctx context.Context) ([]*models.Division, error) {
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
