package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nominalab/asistencia-backend/internal/config"
	appHTTP "github.com/nominalab/asistencia-backend/internal/handler/http"
	"github.com/nominalab/asistencia-backend/internal/pkg/cron"
	"github.com/nominalab/asistencia-backend/internal/pkg/database"
	"github.com/nominalab/asistencia-backend/internal/pkg/jwt"
	"github.com/nominalab/asistencia-backend/internal/repository/postgresql"
	attendanceService "github.com/nominalab/asistencia-backend/internal/service/attendance"
	authService "github.com/nominalab/asistencia-backend/internal/service/auth"
	employeeService "github.com/nominalab/asistencia-backend/internal/service/employee"
	scheduleService "github.com/nominalab/asistencia-backend/internal/service/schedule"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.SlogLevel(),
	}))
	slog.SetDefault(logger)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	workScheduleRepo := postgresql.NewWorkScheduleRepository(db)
	assignmentRepo := postgresql.NewAssignmentRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	authSvc := authService.NewAuthService(userRepo, jwtService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	scheduleSvc := scheduleService.NewScheduleService(db, workScheduleRepo, assignmentRepo, employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		db,
		attendanceRepo,
		employeeRepo,
		assignmentRepo,
		logger,
		cfg.Attendance.ToleranceMinutes,
	)

	scheduler := cron.NewScheduler(logger)
	if err := cron.RegisterAbsenceMaterializer(scheduler, attendanceSvc, cfg.Attendance.AbsenceCronSpec); err != nil {
		logger.Error("failed to register absence materializer", "error", err)
		os.Exit(1)
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		appHTTP.NewAuthHandler(authSvc),
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewScheduleHandler(scheduleSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
}
