package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/RND-Nagatech/work-monitoring/internal/config"
	v1 "github.com/RND-Nagatech/work-monitoring/internal/delivery/http/v1"
	"github.com/RND-Nagatech/work-monitoring/internal/services"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(cfg.CORS)))
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	return corsCfg
}

func registerRoutes(router gin.IRouter) {
	jwtCfg := config.Global().JWT

	authService := services.NewAuthService(
		globalLogger,
		globalPostgresPool,
		jwtCfg.Issuer,
		[]byte(jwtCfg.SigningKey),
		jwtCfg.TokenTTL,
	)
	v1Handler := v1.New(
		globalLogger,
		authService,
		services.NewTaskService(globalLogger, globalPostgresPool),
		services.NewDivisionService(globalLogger, globalPostgresPool),
		services.NewEmployeeService(globalLogger, globalPostgresPool),
		services.NewUserService(globalLogger, globalPostgresPool),
		services.NewReportService(globalLogger, globalPostgresPool),
		services.NewDashboardService(globalLogger, globalPostgresPool),
	)

	router = router.Group("/api/v1")

	authRouter := router.Group("/auth")
	authRouter.POST("/login", v1Handler.HandleLogin)
	authRouter.POST("/change-password", v1Handler.HandleAuthMiddleware, v1Handler.HandleChangePassword)

	divisionRouter := router.Group("/divisions", v1Handler.HandleAuthMiddleware, v1Handler.HandleAdminOnly)
	divisionRouter.GET("", v1Handler.HandleGetDivisions)
	divisionRouter.POST("", v1Handler.HandleCreateDivision)
	divisionRouter.PUT("/:id", v1Handler.HandleUpdateDivision)
	divisionRouter.DELETE("/:id", v1Handler.HandleDeleteDivision)

	employeeRouter := router.Group("/employees", v1Handler.HandleAuthMiddleware, v1Handler.HandleAdminOnly)
	employeeRouter.GET("", v1Handler.HandleGetEmployees)
	employeeRouter.POST("", v1Handler.HandleCreateEmployee)
	employeeRouter.PUT("/:id", v1Handler.HandleUpdateEmployee)
	employeeRouter.DELETE("/:id", v1Handler.HandleDeleteEmployee)

	userRouter := router.Group("/users", v1Handler.HandleAuthMiddleware, v1Handler.HandleAdminOnly)
	userRouter.GET("", v1Handler.HandleGetUsers)
	userRouter.POST("", v1Handler.HandleCreateUser)
	userRouter.PUT("/:id", v1Handler.HandleUpdateUser)
	userRouter.DELETE("/:id", v1Handler.HandleDeleteUser)
	userRouter.POST("/:id/reset-password", v1Handler.HandleResetPassword)

	taskRouter := router.Group("/tasks", v1Handler.HandleAuthMiddleware)
	taskRouter.GET("", v1Handler.HandleAdminOnly, v1Handler.HandleGetTasks)
	taskRouter.POST("", v1Handler.HandleAdminOnly, v1Handler.HandleCreateTask)
	taskRouter.PUT("/:id", v1Handler.HandleAdminOnly, v1Handler.HandleUpdateTask)
	taskRouter.DELETE("/:id", v1Handler.HandleAdminOnly, v1Handler.HandleDeleteTask)
	taskRouter.GET("/available", v1Handler.HandleEmployeeOnly, v1Handler.HandleGetAvailableTasks)
	taskRouter.POST("/:id/take", v1Handler.HandleEmployeeOnly, v1Handler.HandleTakeTask)
	taskRouter.POST("/:id/finish", v1Handler.HandleEmployeeOnly, v1Handler.HandleFinishTask)

	dashboardRouter := router.Group("/dashboard", v1Handler.HandleAuthMiddleware)
	dashboardRouter.GET("/admin", v1Handler.HandleAdminOnly, v1Handler.HandleAdminDashboard)
	dashboardRouter.GET("/employee", v1Handler.HandleEmployeeOnly, v1Handler.HandleEmployeeDashboard)

	reportRouter := router.Group("/reports", v1Handler.HandleAuthMiddleware, v1Handler.HandleAdminOnly)
	reportRouter.GET("", v1Handler.HandleGetReport)
}
