package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/RND-Nagatech/work-monitoring/internal/models"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewTaskService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	if params.Code == "" || params.DivisionCode == "" ||
		params.Description == "" || params.Points <= 0 || params.Deadline.IsZero() {
		return nil, ErrMissingTaskFields
	}

	status := params.Status
	if !models.ValidStatus(status) {
		status = models.StatusOpen
	}

	now := time.Now()
	task := &models.Task{
		Code:         params.Code,
		DivisionCode: params.DivisionCode,
		Description:  params.Description,
		Status:       status,
		Points:       params.Points,
		DateCreated:  now.Format(time.DateOnly),
		Deadline:     params.Deadline,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if status == models.StatusDone {
		// A task born DONE still has to satisfy the status/date coupling.
		completed := task.DateCreated
		task.DateCompleted = &completed
	}

	taskUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate task uuid")
		return nil, err
	}
	task.ID = taskUUID.String()

	const insertTaskQuery = `
INSERT INTO tasks (id,
                   kode_pekerjaan,
                   kode_divisi,
                   deskripsi,
                   status_pekerjaan,
                   poin,
                   pic,
                   tanggal_input,
                   tanggal_selesai,
                   deadline,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`
	_, err = s.pgPool.Exec(
		ctx,
		insertTaskQuery,
		task.ID,
		task.Code,
		task.DivisionCode,
		task.Description,
		task.Status,
		task.Points,
		task.PIC,
		task.DateCreated,
		task.DateCompleted,
		task.Deadline,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}
	s.logger.Debug().
		Str("task_id", task.ID).
		Msg("inserted task")

	s.logger.Info().
		Str("task_id", task.ID).
		Str("kode_pekerjaan", task.Code).
		Msg("created task")
	return task, nil
}

const selectTaskColumns = `
SELECT id,
       kode_pekerjaan,
       kode_divisi,
       deskripsi,
       status_pekerjaan,
       poin,
       pic,
       tanggal_input,
       tanggal_selesai,
       deadline,
       created_at,
       updated_at
FROM tasks
`

func (s *taskServiceImpl) GetBoardTasks(ctx context.Context) ([]*models.Task, error) {
	const selectBoardTasksQuery = selectTaskColumns + `
WHERE status_pekerjaan <> 'DONE'
ORDER BY created_at DESC
`
	rows, err := s.pgPool.Query(ctx, selectBoardTasksQuery)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select board tasks")
		return nil, err
	}
	defer rows.Close()

	tasks, err := collectTasks(rows)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to scan board tasks")
		return nil, err
	}

	s.logger.Info().
		Int("count", len(tasks)).
		Msg("selected board tasks")
	return tasks, nil
}

func (s *taskServiceImpl) GetAvailableTasks(ctx context.Context, employeeID string) ([]*models.Task, error) {
	employeeName, err := s.lookupEmployeeName(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	const selectAvailableTasksQuery = selectTaskColumns + `
WHERE status_pekerjaan <> 'DONE' AND
      (pic IS NULL OR pic = $1)
ORDER BY created_at DESC
`
	rows, err := s.pgPool.Query(ctx, selectAvailableTasksQuery, employeeName)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select available tasks")
		return nil, err
	}
	defer rows.Close()

	tasks, err := collectTasks(rows)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to scan available tasks")
		return nil, err
	}

	s.logger.Info().
		Int("count", len(tasks)).
		Str("employee_id", employeeID).
		Msg("selected available tasks")
	return tasks, nil
}

func (s *taskServiceImpl) TakeTask(ctx context.Context, taskID, employeeID string) (*models.Task, error) {
	employeeName, err := s.lookupEmployeeName(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	// The claim must be a single conditional update. Two concurrent
	// claimants race on the pic IS NULL guard; exactly one row update
	// wins, the loser falls through to the existence check below.
	const takeTaskQuery = `
UPDATE tasks
SET pic = $1,
    status_pekerjaan = $2,
    updated_at = $3
WHERE id = $4 AND pic IS NULL
RETURNING kode_pekerjaan, kode_divisi, deskripsi, poin,
          tanggal_input, tanggal_selesai, deadline, created_at
`
	now := time.Now()
	task := &models.Task{
		ID:        taskID,
		Status:    models.StatusOnProgress,
		PIC:       &employeeName,
		UpdatedAt: now,
	}
	err = s.pgPool.QueryRow(
		ctx,
		takeTaskQuery,
		employeeName,
		models.StatusOnProgress,
		now,
		taskID,
	).Scan(
		&task.Code,
		&task.DivisionCode,
		&task.Description,
		&task.Points,
		&task.DateCreated,
		&task.DateCompleted,
		&task.Deadline,
		&task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, s.classifyTakeFailure(ctx, taskID)
		}

		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to take task")
		return nil, err
	}
	s.logger.Debug().
		Str("task_id", taskID).
		Str("pic", employeeName).
		Msg("claimed task")

	s.logger.Info().
		Str("task_id", taskID).
		Str("employee_id", employeeID).
		Msg("task taken")
	return task, nil
}

// classifyTakeFailure distinguishes the race loser (task exists but the
// pic guard failed) from a claim on a task that never existed.
func (s *taskServiceImpl) classifyTakeFailure(ctx context.Context, taskID string) error {
	const taskExistsQuery = `
SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1)
`
	var exists bool
	err := s.pgPool.QueryRow(ctx, taskExistsQuery, taskID).Scan(&exists)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to check task existence")
		return err
	}
	if !exists {
		s.logger.Warn().
			Str("task_id", taskID).
			Msg("task not found")
		return ErrTaskNotFound
	}

	s.logger.Warn().
		Str("task_id", taskID).
		Msg("task already taken")
	return ErrTaskAlreadyTaken
}

func (s *taskServiceImpl) FinishTask(ctx context.Context, taskID, employeeID string) (*models.Task, error) {
	employeeName, err := s.lookupEmployeeName(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	// Guarded by an exact pic match, not by status: only the assigned
	// employee may finish, no matter what state the task is in.
	const finishTaskQuery = `
UPDATE tasks
SET status_pekerjaan = $1,
    tanggal_selesai = $2,
    updated_at = $3
WHERE id = $4 AND pic = $5
RETURNING kode_pekerjaan, kode_divisi, deskripsi, poin,
          tanggal_input, deadline, created_at
`
	now := time.Now()
	completedAt := now.Format(time.DateOnly)
	task := &models.Task{
		ID:            taskID,
		Status:        models.StatusDone,
		PIC:           &employeeName,
		DateCompleted: &completedAt,
		UpdatedAt:     now,
	}
	err = s.pgPool.QueryRow(
		ctx,
		finishTaskQuery,
		models.StatusDone,
		completedAt,
		now,
		taskID,
		employeeName,
	).Scan(
		&task.Code,
		&task.DivisionCode,
		&task.Description,
		&task.Points,
		&task.DateCreated,
		&task.Deadline,
		&task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, s.classifyFinishFailure(ctx, taskID)
		}

		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to finish task")
		return nil, err
	}
	s.logger.Debug().
		Str("task_id", taskID).
		Str("tanggal_selesai", completedAt).
		Msg("stamped completion date")

	s.logger.Info().
		Str("task_id", taskID).
		Str("employee_id", employeeID).
		Msg("task finished")
	return task, nil
}

func (s *taskServiceImpl) classifyFinishFailure(ctx context.Context, taskID string) error {
	const taskExistsQuery = `
SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1)
`
	var exists bool
	err := s.pgPool.QueryRow(ctx, taskExistsQuery, taskID).Scan(&exists)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to check task existence")
		return err
	}
	if !exists {
		s.logger.Warn().
			Str("task_id", taskID).
			Msg("task not found")
		return ErrTaskNotFound
	}

	s.logger.Warn().
		Str("task_id", taskID).
		Msg("finish attempted by a non-assignee")
	return ErrTaskNotAssigned
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	if params.Status != nil && !models.ValidStatus(*params.Status) {
		s.logger.Warn().
			Str("status", *params.Status).
			Msg("rejected invalid status")
		return nil, ErrInvalidTaskStatus
	}

	now := time.Now()
	completedAt := now.Format(time.DateOnly)
	setPIC := params.PIC != nil || params.ClearPIC

	// The administrative edit bypasses the assignee check entirely; a
	// forced move to DONE stamps the completion date, a forced move
	// away from DONE clears it so the coupling invariant holds.
	const updateTaskQuery = `
UPDATE tasks
SET kode_pekerjaan = COALESCE($1, kode_pekerjaan),
    kode_divisi = COALESCE($2, kode_divisi),
    deskripsi = COALESCE($3, deskripsi),
    poin = COALESCE($4, poin),
    deadline = COALESCE($5, deadline),
    pic = CASE WHEN $6 THEN $7 ELSE pic END,
    status_pekerjaan = COALESCE($8, status_pekerjaan),
    tanggal_selesai = CASE WHEN $8 = 'DONE' THEN $9
                           WHEN $8 IS NOT NULL THEN NULL
                           ELSE tanggal_selesai END,
    updated_at = $10
WHERE id = $11
RETURNING kode_pekerjaan, kode_divisi, deskripsi, status_pekerjaan, poin,
          pic, tanggal_input, tanggal_selesai, deadline, created_at
`
	task := &models.Task{
		ID:        params.ID,
		UpdatedAt: now,
	}
	err := s.pgPool.QueryRow(
		ctx,
		updateTaskQuery,
		params.Code,
		params.DivisionCode,
		params.Description,
		params.Points,
		params.Deadline,
		setPIC,
		params.PIC,
		params.Status,
		completedAt,
		now,
		params.ID,
	).Scan(
		&task.Code,
		&task.DivisionCode,
		&task.Description,
		&task.Status,
		&task.Points,
		&task.PIC,
		&task.DateCreated,
		&task.DateCompleted,
		&task.Deadline,
		&task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("task_id", params.ID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", params.ID).
			Msg("failed to update task")
		return nil, err
	}
	s.logger.Debug().
		Str("task_id", task.ID).
		Str("status", task.Status).
		Msg("applied task update")

	s.logger.Info().
		Str("task_id", task.ID).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, taskID string) error {
	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1
`
	tag, err := s.pgPool.Exec(ctx, deleteTaskQuery, taskID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to delete task")
		return err
	}
	if tag.RowsAffected() == 0 {
		s.logger.Warn().
			Str("task_id", taskID).
			Msg("task not found")
		return ErrTaskNotFound
	}

	s.logger.Info().
		Str("task_id", taskID).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) lookupEmployeeName(ctx context.Context, employeeID string) (string, error) {
	const selectEmployeeNameQuery = `
SELECT nama_pegawai
FROM employees
WHERE id = $1
`
	var name string
	err := s.pgPool.QueryRow(ctx, selectEmployeeNameQuery, employeeID).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("employee_id", employeeID).
				Msg("employee not found")
			return "", ErrEmployeeNotFound
		}

		s.logger.Error().
			Err(err).
			Str("employee_id", employeeID).
			Msg("failed to select employee name")
		return "", err
	}
	return name, nil
}

func collectTasks(rows pgx.Rows) ([]*models.Task, error) {
	var tasks []*models.Task
	for rows.Next() {
		task := new(models.Task)
		err := rows.Scan(
			&task.ID,
			&task.Code,
			&task.DivisionCode,
			&task.Description,
			&task.Status,
			&task.Points,
			&task.PIC,
			&task.DateCreated,
			&task.DateCompleted,
			&task.Deadline,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}
