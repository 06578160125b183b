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

	"github.com/cmlabs-hris/geo-attendance-go/internal/config"
	appHTTP "github.com/cmlabs-hris/geo-attendance-go/internal/handler/http"
	"github.com/cmlabs-hris/geo-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/geo-attendance-go/internal/pkg/geo"
	"github.com/cmlabs-hris/geo-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/geo-attendance-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/geo-attendance-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/geo-attendance-go/internal/service/auth"
	employeeService "github.com/cmlabs-hris/geo-attendance-go/internal/service/employee"
	officeService "github.com/cmlabs-hris/geo-attendance-go/internal/service/office"
	reportService "github.com/cmlabs-hris/geo-attendance-go/internal/service/report"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := appHTTP.NewRequestLogger(cfg, version)
	slog.SetDefault(logger)

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("resolve timezone: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn := cfg.DatabaseURL()
	if err := database.Migrate(dsn, logger); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	officeRepo := postgresql.NewOfficeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	reportRepo := postgresql.NewReportRepository(db)
	transactor := postgresql.NewTransactor(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	if err != nil {
		return fmt.Errorf("init jwt: %w", err)
	}

	authSvc := serviceAuth.NewAuthService(transactor, userRepo, refreshTokenRepo, JWTService)
	officeSvc := officeService.NewOfficeService(officeRepo, cfg.Office.CacheTTL)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		officeSvc,
		geo.NewGeoFence(cfg.Office.EarthRadiusMeters),
		loc,
		nil,
	)
	reportSvc := reportService.NewReportService(reportRepo, loc, nil)
	employeeSvc := employeeService.NewEmployeeService(userRepo)

	router := appHTTP.NewRouter(cfg, logger, JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc),
		Office:     appHTTP.NewOfficeHandler(officeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Health:     appHTTP.NewHealthHandler(db),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", server.Addr, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
