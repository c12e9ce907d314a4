package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/RND-Nagatech/work-monitoring/internal/services"
)

type Handler interface {
	HandleLogin(c *gin.Context)
	HandleChangePassword(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)
	HandleAdminOnly(c *gin.Context)
	HandleEmployeeOnly(c *gin.Context)

	HandleGetTasks(c *gin.Context)
	HandleCreateTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
	HandleGetAvailableTasks(c *gin.Context)
	HandleTakeTask(c *gin.Context)
	HandleFinishTask(c *gin.Context)

	HandleGetDivisions(c *gin.Context)
	HandleCreateDivision(c *gin.Context)
	HandleUpdateDivision(c *gin.Context)
	HandleDeleteDivision(c *gin.Context)

	HandleGetEmployees(c *gin.Context)
	HandleCreateEmployee(c *gin.Context)
	HandleUpdateEmployee(c *gin.Context)
	HandleDeleteEmployee(c *gin.Context)

	HandleGetUsers(c *gin.Context)
	HandleCreateUser(c *gin.Context)
	HandleUpdateUser(c *gin.Context)
	HandleDeleteUser(c *gin.Context)
	HandleResetPassword(c *gin.Context)

	HandleGetReport(c *gin.Context)
	HandleAdminDashboard(c *gin.Context)
	HandleEmployeeDashboard(c *gin.Context)
}

type handlerImpl struct {
	logger     zerolog.Logger
	auth       services.AuthService
	tasks      services.TaskService
	divisions  services.DivisionService
	employees  services.EmployeeService
	users      services.UserService
	reports    services.ReportService
	dashboards services.DashboardService
}

func New(
	logger zerolog.Logger,
	authService services.AuthService,
	taskService services.TaskService,
	divisionService services.DivisionService,
	employeeService services.EmployeeService,
	userService services.UserService,
	reportService services.ReportService,
	dashboardService services.DashboardService,
) Handler {
	return &handlerImpl{
		logger:     logger,
		auth:       authService,
		tasks:      taskService,
		divisions:  divisionService,
		employees:  employeeService,
		users:      userService,
		reports:    reportService,
		dashboards: dashboardService,
	}
}
