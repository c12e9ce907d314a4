package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/RND-Nagatech/work-monitoring/internal/models"
)

type divisionServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewDivisionService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) DivisionService {
	return &divisionServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *divisionServiceImpl) GetDivisions(ctx context.Context) ([]*models.Division, error) {
	const selectDivisionsQuery = `
SELECT id,
       kode_divisi,
       nama_divisi,
       created_at,
       updated_at
FROM divisions
ORDER BY created_at DESC
`
	rows, err := s.pgPool.Query(ctx, selectDivisionsQuery)
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
		err = rows.Scan(
			&division.ID,
			&division.Code,
			&division.Name,
			&division.CreatedAt,
			&division.UpdatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan division")
			return nil, err
		}
		divisions = append(divisions, division)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}

	s.logger.Info().
		Int("count", len(divisions)).
		Msg("selected divisions")
	return divisions, nil
}

func (s *divisionServiceImpl) CreateDivision(ctx context.Context, code, name string) (*models.Division, error) {
	now := time.Now()
	division := &models.Division{
		Code:      strings.TrimSpace(code),
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}

	divisionUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate division uuid")
		return nil, err
	}
	division.ID = divisionUUID.String()

	const insertDivisionQuery = `
INSERT INTO divisions (id,
                       kode_divisi,
                       nama_divisi,
                       created_at,
                       updated_at)
VALUES ($1, $2, $3, $4, $5)
`
	_, err = s.pgPool.Exec(
		ctx,
		insertDivisionQuery,
		division.ID,
		division.Code,
		division.Name,
		division.CreatedAt,
		division.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			s.logger.Warn().
				Str("kode_divisi", division.Code).
				Msg("division code already exists")
			return nil, ErrDivisionAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert division")
		return nil, err
	}

	s.logger.Info().
		Str("division_id", division.ID).
		Str("kode_divisi", division.Code).
		Msg("created division")
	return division, nil
}

func (s *divisionServiceImpl) UpdateDivision(ctx context.Context, id, code, name string) (*models.Division, error) {
	division := &models.Division{
		ID:        id,
		Code:      strings.TrimSpace(code),
		Name:      strings.TrimSpace(name),
		UpdatedAt: time.Now(),
	}

	const updateDivisionQuery = `
UPDATE divisions
SET kode_divisi = $1,
    nama_divisi = $2,
    updated_at = $3
WHERE id = $4
RETURNING created_at
`
	err := s.pgPool.QueryRow(
		ctx,
		updateDivisionQuery,
		division.Code,
		division.Name,
		division.UpdatedAt,
		division.ID,
	).Scan(&division.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("division_id", id).
				Msg("division not found")
			return nil, ErrDivisionNotFound
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			s.logger.Warn().
				Str("kode_divisi", division.Code).
				Msg("division code already exists")
			return nil, ErrDivisionAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Str("division_id", id).
			Msg("failed to update division")
		return nil, err
	}

	s.logger.Info().
		Str("division_id", id).
		Msg("updated division")
	return division, nil
}

func (s *divisionServiceImpl) DeleteDivision(ctx context.Context, id string) error {
	// Tasks and employees keep their division code; deletes never
	// cascade. Report joins fall back to "Unknown" for stale codes.
	const deleteDivisionQuery = `
DELETE FROM divisions
WHERE id = $1
`
	tag, err := s.pgPool.Exec(ctx, deleteDivisionQuery, id)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("division_id", id).
			Msg("failed to delete division")
		return err
	}
	if tag.RowsAffected() == 0 {
		s.logger.Warn().
			Str("division_id", id).
			Msg("division not found")
		return ErrDivisionNotFound
	}

	s.logger.Info().
		Str("division_id", id).
		Msg("deleted division")
	return nil
}
