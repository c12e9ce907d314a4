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

type employeeServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewEmployeeService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) EmployeeService {
	return &employeeServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

const selectEmployeeColumns = `
SELECT id,
       kode_pegawai,
       nama_pegawai,
       kode_divisi,
       created_at,
       updated_at
FROM employees
`

func (s *employeeServiceImpl) GetEmployees(ctx context.Context) ([]*models.Employee, error) {
	const selectEmployeesQuery = selectEmployeeColumns + `
ORDER BY created_at DESC
`
	rows, err := s.pgPool.Query(ctx, selectEmployeesQuery)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select employees")
		return nil, err
	}
	defer rows.Close()

	var employees []*models.Employee
	for rows.Next() {
		employee := new(models.Employee)
		err = rows.Scan(
			&employee.ID,
			&employee.Code,
			&employee.Name,
			&employee.DivisionCode,
			&employee.CreatedAt,
			&employee.UpdatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan employee")
			return nil, err
		}
		employees = append(employees, employee)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}

	s.logger.Info().
		Int("count", len(employees)).
		Msg("selected employees")
	return employees, nil
}

func (s *employeeServiceImpl) GetEmployeeByID(ctx context.Context, id string) (*models.Employee, error) {
	const selectEmployeeByIDQuery = selectEmployeeColumns + `
WHERE id = $1
`
	employee := new(models.Employee)
	err := s.pgPool.QueryRow(ctx, selectEmployeeByIDQuery, id).Scan(
		&employee.ID,
		&employee.Code,
		&employee.Name,
		&employee.DivisionCode,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("employee_id", id).
				Msg("employee not found")
			return nil, ErrEmployeeNotFound
		}

		s.logger.Error().
			Err(err).
			Str("employee_id", id).
			Msg("failed to select employee by id")
		return nil, err
	}
	return employee, nil
}

func (s *employeeServiceImpl) CreateEmployee(ctx context.Context, code, name, divisionCode string) (*models.Employee, error) {
	now := time.Now()
	employee := &models.Employee{
		Code:         strings.TrimSpace(code),
		Name:         strings.TrimSpace(name),
		DivisionCode: strings.TrimSpace(divisionCode),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	employeeUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate employee uuid")
		return nil, err
	}
	employee.ID = employeeUUID.String()

	const insertEmployeeQuery = `
INSERT INTO employees (id,
                       kode_pegawai,
                       nama_pegawai,
                       kode_divisi,
                       created_at,
                       updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
`
	_, err = s.pgPool.Exec(
		ctx,
		insertEmployeeQuery,
		employee.ID,
		employee.Code,
		employee.Name,
		employee.DivisionCode,
		employee.CreatedAt,
		employee.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			s.logger.Warn().
				Str("kode_pegawai", employee.Code).
				Msg("employee code already exists")
			return nil, ErrEmployeeAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert employee")
		return nil, err
	}

	s.logger.Info().
		Str("employee_id", employee.ID).
		Str("kode_pegawai", employee.Code).
		Msg("created employee")
	return employee, nil
}

func (s *employeeServiceImpl) UpdateEmployee(ctx context.Context, id, code, name, divisionCode string) (*models.Employee, error) {
	employee := &models.Employee{
		ID:           id,
		Code:         strings.TrimSpace(code),
		Name:         strings.TrimSpace(name),
		DivisionCode: strings.TrimSpace(divisionCode),
		UpdatedAt:    time.Now(),
	}

	const updateEmployeeQuery = `
UPDATE employees
SET kode_pegawai = $1,
    nama_pegawai = $2,
    kode_divisi = $3,
    updated_at = $4
WHERE id = $5
RETURNING created_at
`
	err := s.pgPool.QueryRow(
		ctx,
		updateEmployeeQuery,
		employee.Code,
		employee.Name,
		employee.DivisionCode,
		employee.UpdatedAt,
		employee.ID,
	).Scan(&employee.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("employee_id", id).
				Msg("employee not found")
			return nil, ErrEmployeeNotFound
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			s.logger.Warn().
				Str("kode_pegawai", employee.Code).
				Msg("employee code already exists")
			return nil, ErrEmployeeAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Str("employee_id", id).
			Msg("failed to update employee")
		return nil, err
	}

	s.logger.Info().
		Str("employee_id", id).
		Msg("updated employee")
	return employee, nil
}

func (s *employeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	// Tasks reference the employee by name string, so deleting the
	// record leaves assigned tasks untouched.
	const deleteEmployeeQuery = `
DELETE FROM employees
WHERE id = $1
`
	tag, err := s.pgPool.Exec(ctx, deleteEmployeeQuery, id)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("employee_id", id).
			Msg("failed to delete employee")
		return err
	}
	if tag.RowsAffected() == 0 {
		s.logger.Warn().
			Str("employee_id", id).
			Msg("employee not found")
		return ErrEmployeeNotFound
	}

	s.logger.Info().
		Str("employee_id", id).
		Msg("deleted employee")
	return nil
}
