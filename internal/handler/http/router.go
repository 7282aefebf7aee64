package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spti-payroll/attendance-backend-go/internal/handler/http/middleware"
	"github.com/spti-payroll/attendance-backend-go/internal/pkg/jwt"
)

type RouterHandlers struct {
	Auth       AuthHandler
	Device     DeviceHandler
	Attendance AttendanceHandler
	Shift      ShiftHandler
	Employee   EmployeeHandler
	Report     ReportHandler
}

func NewRouter(jwtService jwt.Service, env string, handlers RouterHandlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Method("GET", "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", handlers.Auth.Login)
			r.Post("/refresh", handlers.Auth.RefreshToken)
			r.Post("/logout", handlers.Auth.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/device", func(r chi.Router) {
				r.Post("/punches", handlers.Device.IngestPunches)
				r.Post("/users", handlers.Device.SyncUsers)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Route("/logs", func(r chi.Router) {
					r.Get("/", handlers.Attendance.ListLogs)
					r.Post("/", handlers.Attendance.CreateLog)
					r.Post("/bulk-delete", handlers.Attendance.BulkDeleteLogs)
					r.Put("/{id}", handlers.Attendance.UpdateLog)
					r.Delete("/{id}", handlers.Attendance.DeleteLog)
				})
				r.Get("/summaries", handlers.Attendance.ListSummaries)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/recompute", handlers.Attendance.Recompute)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/monthly", handlers.Report.Monthly)
				r.Get("/monthly/export", handlers.Report.ExportMonthly)
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", handlers.Shift.List)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", handlers.Shift.Create)
					r.Put("/{id}", handlers.Shift.Update)
					r.Delete("/{id}", handlers.Shift.Delete)
				})
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/work", handlers.Shift.GetWorkSettings)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/work", handlers.Shift.UpdateWorkSettings)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", handlers.Employee.List)
				r.Get("/{id}", handlers.Employee.GetByID)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", handlers.Employee.Create)
					r.Put("/{id}", handlers.Employee.Update)
					r.Delete("/{id}", handlers.Employee.Delete)
				})
			})
		})
	})

	return r
}
