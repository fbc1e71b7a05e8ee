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

	"github.com/motorph/payroll-backend-go/internal/config"
	appHTTP "github.com/motorph/payroll-backend-go/internal/handler/http"
	"github.com/motorph/payroll-backend-go/internal/pkg/cron"
	"github.com/motorph/payroll-backend-go/internal/pkg/jwt"
	"github.com/motorph/payroll-backend-go/internal/pkg/storage"
	"github.com/motorph/payroll-backend-go/internal/repository"
	attendanceService "github.com/motorph/payroll-backend-go/internal/service/attendance"
	serviceAuth "github.com/motorph/payroll-backend-go/internal/service/auth"
	payrollService "github.com/motorph/payroll-backend-go/internal/service/payroll"
	workerService "github.com/motorph/payroll-backend-go/internal/service/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := repository.Open(ctx, cfg)
	if err != nil {
		slog.Error("Failed to open repositories", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer repos.Close()

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.PayslipDir)
	if err != nil {
		slog.Error("Failed to initialize payslip storage", "error", err)
		os.Exit(1)
	}

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		slog.Error("Failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	workerSvc := workerService.NewWorkerService(repos.Workers)
	attendanceSvc := attendanceService.NewAttendanceService(repos.Attendance, repos.Workers, cfg.Location())
	payrollSvc := payrollService.NewPayrollService(repos.Attendance, workerSvc, fileStorage, cfg.Location())
	authSvc := serviceAuth.NewAuthService(repos.Users, repos.Workers, JWTService)

	scheduler := cron.NewScheduler()
	jobs := cron.NewPayrollJobs(map[string]cron.Saver{
		"workers":    repos.Workers,
		"attendance": repos.Attendance,
		"users":      repos.Users,
	}, JWTService, payrollSvc, cfg.Location())
	jobs.RegisterJobs(scheduler, cfg.Cron.AutosaveInterval, cfg.Cron.AutoPayslips)
	scheduler.Start(ctx)

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		appHTTP.NewAuthHandler(authSvc),
		appHTTP.NewWorkerHandler(workerSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewPayrollHandler(payrollSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", "http://localhost"+server.Addr, "driver", cfg.Storage.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	scheduler.Stop()

	if err := repos.SaveAll(shutdownCtx); err != nil {
		slog.Error("Failed to save repositories on exit", "error", err)
	}
}
