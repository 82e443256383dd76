package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/nominalab/asistencia-backend/internal/config"
	"github.com/nominalab/asistencia-backend/internal/handler/http/middleware"
	"github.com/nominalab/asistencia-backend/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	scheduleHandler ScheduleHandler,
	attendanceHandler AttendanceHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logLevel := cfg.App.SlogLevel()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       logLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "asistencia-backend"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  logLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.With(middleware.RequireValidator).Post("/", employeeHandler.Create)
				r.With(middleware.RequireValidator).Get("/", employeeHandler.List)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", employeeHandler.Get)
					r.With(middleware.RequireValidator).Put("/", employeeHandler.Update)
					r.With(middleware.RequireValidator).Delete("/", employeeHandler.Deactivate)

					r.Get("/schedule", scheduleHandler.GetEmployeeSchedule)
					r.With(middleware.RequireValidator).Put("/schedule", scheduleHandler.Assign)
					r.With(middleware.RequireValidator).Delete("/schedule", scheduleHandler.Unassign)
				})
			})

			r.Route("/work-schedules", func(r chi.Router) {
				r.Get("/", scheduleHandler.List)
				r.Get("/{id}", scheduleHandler.Get)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireValidator)
					r.Post("/", scheduleHandler.Create)
					r.Put("/{id}", scheduleHandler.Update)
					r.Delete("/{id}", scheduleHandler.Deactivate)
				})
			})

			// Attendance routes scope per-role inside the service: empleado
			// callers see their own rows, validators see everything.
			r.Route("/attendances", func(r chi.Router) {
				r.Get("/", attendanceHandler.List)
				r.Post("/", attendanceHandler.Create)
				r.Get("/{id}", attendanceHandler.Get)
				r.Put("/{id}", attendanceHandler.Update)
				r.Put("/{id}/status", attendanceHandler.SetStatus)
				r.With(middleware.RequireValidator).Post("/import", attendanceHandler.Import)
			})
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("asistencia-backend\n"))
	})

	return r
}
