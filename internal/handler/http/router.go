package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/geo-attendance-go/internal/config"
	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/geo-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/geo-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Auth       AuthHandler
	Office     OfficeHandler
	Attendance AttendanceHandler
	Report     ReportHandler
	Employee   EmployeeHandler
	Health     HealthHandler
}

func NewRouter(cfg *config.Config, logger *slog.Logger, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.CORSAllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.SlogLevel(),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(cfg.App.RequestTimeout))
	r.Use(middleware.Metrics)

	r.Get("/health/live", h.Health.Live)
	r.Get("/health/ready", h.Health.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/config/office", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionOfficeView)).Get("/", h.Office.Get)
				r.With(middleware.RequirePermission(user.PermissionOfficeManage)).Post("/", h.Office.Set)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendanceMark)).Post("/mark", h.Attendance.Mark)
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).Get("/me", h.Report.ListOwn)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).Get("/admin", h.Report.ListAdmin)
					r.With(middleware.RequirePermission(user.PermissionAttendanceExport)).Get("/download", h.Report.Download)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
				r.Post("/", h.Employee.Create)
				r.Get("/", h.Employee.List)
			})
		})
	})
	return r
}

// NewRequestLogger builds the ECS formatted JSON logger shared by the router and the process.
func NewRequestLogger(cfg *config.Config, appVersion string) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "development")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "geo-attendance"),
		slog.String("version", appVersion),
		slog.String("env", cfg.App.Env),
	)
}
