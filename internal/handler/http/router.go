package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/motorph/payroll-backend-go/internal/config"
	"github.com/motorph/payroll-backend-go/internal/domain/user"
	"github.com/motorph/payroll-backend-go/internal/handler/http/middleware"
	"github.com/motorph/payroll-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	JWTService jwt.Service,
	authHandler AuthHandler,
	workerHandler WorkerHandler,
	attendanceHandler AttendanceHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "motorph-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	allowedOrigins := cfg.App.CORSOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			// Self service
			r.Route("/me", func(r chi.Router) {
				r.Use(middleware.RequireWorker)
				r.Get("/", workerHandler.GetMyProfile)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceClock))
					r.Post("/clock-in", attendanceHandler.ClockIn)
					r.Post("/clock-out", attendanceHandler.ClockOut)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceViewOwn))
					r.Get("/attendance", attendanceHandler.GetMyAttendance)
					r.Get("/attendance/today", attendanceHandler.GetToday)
				})

				r.With(middleware.RequirePermission(user.PermissionPayslipViewOwn)).
					Get("/payslip", payrollHandler.GetMyPayslip)
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/accounts", func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionUserManage))
					r.Get("/", authHandler.ListAccounts)
					r.Post("/", authHandler.CreateAccount)
					r.Delete("/{username}", authHandler.DeleteAccount)
				})

				r.Route("/workers", func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionWorkerManage))
					r.Get("/", workerHandler.ListWorkers)
					r.Post("/", workerHandler.CreateWorker)
					r.Get("/search", workerHandler.SearchWorkers)
					r.Get("/next-id", workerHandler.NextWorkerID)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", workerHandler.GetWorker)
						r.Put("/", workerHandler.UpdateWorker)
						r.Delete("/", workerHandler.DeleteWorker)
					})
				})

				r.Route("/attendance", func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceManage))
					r.Get("/", attendanceHandler.List)
					r.Post("/", attendanceHandler.Create)
					r.Get("/{workerID}/report", payrollHandler.GetAttendanceReport)
					r.Put("/{workerID}/{date}", attendanceHandler.Update)
					r.Delete("/{workerID}/{date}", attendanceHandler.Delete)
				})

				r.Route("/payroll", func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionPayrollRun))
					r.Post("/calculate", payrollHandler.Calculate)
					r.Post("/payslips", payrollHandler.GeneratePayslip)
					r.Post("/payslips/bulk", payrollHandler.GenerateBulkPayslips)
					r.Post("/export", payrollHandler.ExportRegister)
					r.Get("/tax-table", payrollHandler.GetTaxTable)
				})
			})
		})
	})
	return r
}
