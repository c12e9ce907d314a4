package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/RND-Nagatech/work-monitoring/internal/models"
	"github.com/RND-Nagatech/work-monitoring/internal/report"
)

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrUserPasswordMismatch = errors.New("current password is incorrect")
	ErrEmployeeIDRequired   = errors.New("employee id is required for employee role")

	ErrDivisionNotFound      = errors.New("division not found")
	ErrDivisionAlreadyExists = errors.New("division already exists")
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrEmployeeAlreadyExists = errors.New("employee already exists")

	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskAlreadyTaken  = errors.New("task already taken by another employee")
	ErrTaskNotAssigned   = errors.New("you are not assigned to this task")
	ErrInvalidTaskStatus = errors.New("invalid task status")
	ErrMissingTaskFields = errors.New("kode_pekerjaan, kode_divisi, deskripsi, poin, and deadline are required")
)

// AccessClaims is the bearer token payload. The role and employee id
// carried here are trusted for authorization decisions downstream.
type AccessClaims struct {
	jwt.RegisteredClaims
	Username   string `json:"username"`
	Role       string `json:"role"`
	EmployeeID string `json:"employee_id,omitempty"`
}

type AuthService interface {
	// Login authenticates by username and password and issues a signed
	// bearer token with a fixed expiry.
	//
	// It returns ErrInvalidCredentials for an unknown username and for
	// a password mismatch alike, so callers cannot probe for accounts.
	Login(ctx context.Context, username, password string) (*LoginResult, error)

	// ChangePassword verifies the caller's current password and stores
	// a fresh hash of the new one.
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error

	// ParseToken validates a bearer token and returns its claims.
	ParseToken(token string) (*AccessClaims, error)
}

type LoginResult struct {
	Token          string
	TokenExpiresAt time.Time
	User           *models.User
	// Display name: the linked employee's name for employee accounts,
	// the username otherwise.
	Name string
}

type TaskService interface {
	// CreateTask stores a new unclaimed task. The creation date is
	// stamped with today's calendar date. An invalid initial status
	// silently falls back to OPEN; missing required fields return
	// ErrMissingTaskFields.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// GetBoardTasks returns every task not yet DONE, newest first.
	GetBoardTasks(ctx context.Context) ([]*models.Task, error)

	// GetAvailableTasks returns the actionable worklist of an employee:
	// unclaimed tasks plus the ones already assigned to them, newest
	// first.
	GetAvailableTasks(ctx context.Context, employeeID string) ([]*models.Task, error)

	// TakeTask claims an unassigned task for the employee and moves it
	// to ON PROGRESS. The claim is a single conditional update guarded
	// by the PIC column being NULL; a concurrent loser observes zero
	// affected rows and gets ErrTaskAlreadyTaken.
	TakeTask(ctx context.Context, taskID, employeeID string) (*models.Task, error)

	// FinishTask marks a task DONE and stamps the completion date.
	// Only the assigned employee may finish it; the name comparison is
	// exact, with ErrTaskNotAssigned on mismatch.
	FinishTask(ctx context.Context, taskID, employeeID string) (*models.Task, error)

	// UpdateTask applies a partial administrative edit. Setting status
	// to DONE stamps the completion date without any assignee check;
	// moving it away from DONE clears the completion date again.
	UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error)

	DeleteTask(ctx context.Context, taskID string) error
}

type CreateTaskParams struct {
	Code         string
	DivisionCode string
	Description  string
	Points       int
	Deadline     time.Time
	Status       string
}

type UpdateTaskParams struct {
	ID           string
	Code         *string
	DivisionCode *string
	Description  *string
	Points       *int
	Deadline     *time.Time
	PIC          *string
	ClearPIC     bool
	Status       *string
}

type DivisionService interface {
	GetDivisions(ctx context.Context) ([]*models.Division, error)
	CreateDivision(ctx context.Context, code, name string) (*models.Division, error)
	UpdateDivision(ctx context.Context, id, code, name string) (*models.Division, error)
	DeleteDivision(ctx context.Context, id string) error
}

type EmployeeService interface {
	GetEmployees(ctx context.Context) ([]*models.Employee, error)
	GetEmployeeByID(ctx context.Context, id string) (*models.Employee, error)
	CreateEmployee(ctx context.Context, code, name, divisionCode string) (*models.Employee, error)
	UpdateEmployee(ctx context.Context, id, code, name, divisionCode string) (*models.Employee, error)
	DeleteEmployee(ctx context.Context, id string) error
}

type UserService interface {
	// GetUsers lists accounts without their password hashes.
	GetUsers(ctx context.Context) ([]*models.User, error)
	CreateUser(ctx context.Context, params CreateUserParams) (*models.User, error)
	UpdateUser(ctx context.Context, params UpdateUserParams) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
	// ResetPassword replaces the account's credential with a fresh
	// hash of newPassword.
	ResetPassword(ctx context.Context, id, newPassword string) error
}

type CreateUserParams struct {
	Username   string
	Password   string
	Role       string
	EmployeeID *string
}

type UpdateUserParams struct {
	ID         string
	Username   *string
	Role       *string
	EmployeeID *string
}

type ReportService interface {
	// GenerateReport filters the task store and aggregates it into a
	// summary plus either flat rows or a ranking, depending on mode.
	GenerateReport(ctx context.Context, params ReportParams) (*Report, error)
}

type ReportParams struct {
	Filter report.Filter
	// Mode selects the ranking view: report.ModeTopPoints,
	// report.ModeTopTasks, or empty for flat rows.
	Mode string
}

type Report struct {
	Summary    report.Summary
	Rows       []report.Row
	PointsRank []report.PointsRank
	CountRank  []report.CountRank
	Mode       string
}

type DashboardService interface {
	GetAdminDashboard(ctx context.Context) (*AdminDashboard, error)
	GetEmployeeDashboard(ctx context.Context, employeeID string, now time.Time) (*EmployeeDashboard, error)
}

type AdminDashboard struct {
	Summary         report.Summary
	TasksByDivision []report.DivisionGroup
	OnProgressTasks []*models.Task
}

type EmployeeDashboard struct {
	Summary  report.Summary
	Tasks    []report.Row
	Upcoming []*models.Task
}
