package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital-management-api/config"
	deliveryHttp "hospital-management-api/internal/delivery/http"
	"hospital-management-api/internal/delivery/http/handler"
	"hospital-management-api/internal/delivery/http/middleware"
	"hospital-management-api/internal/domain/access"
	"hospital-management-api/internal/infrastructure/cache"
	"hospital-management-api/internal/infrastructure/database"
	"hospital-management-api/internal/repository"
	"hospital-management-api/internal/service"
	"hospital-management-api/internal/usecase"
	"hospital-management-api/pkg/jwt"
	"hospital-management-api/pkg/password"
	"hospital-management-api/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// NewLogger builds the process logger from the app settings.
func NewLogger(cfg config.AppConfig) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	if cfg.Env == "development" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("Unknown log level %q, falling back to info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

// New creates a new App instance with all dependencies initialized
func New(cfg *config.Config) (*App, error) {
	log := NewLogger(cfg.App)
	app := &App{Config: cfg, Log: log}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db, log); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis, log)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           NewHandler(cfg, log, db, service.NewRedisTokenStore(redisClient)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return app, nil
}

// NewHandler wires repositories, usecases, handlers and middleware into the
// HTTP handler tree.
func NewHandler(cfg *config.Config, log *logrus.Logger, db *gorm.DB, tokenStore service.TokenStore) http.Handler {
	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()
	hasher := password.NewHasher(0)
	matrix := access.DefaultMatrix()
	txm := repository.NewTransactor(db)

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	departmentRepo := repository.NewDepartmentRepository()
	doctorRepo := repository.NewDoctorRepository()
	patientRepo := repository.NewPatientRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	recordRepo := repository.NewMedicalRecordRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	auditService := service.NewAuditService(log, auditLogRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(txm, log, matrix, userRepo, doctorRepo, patientRepo, auditService, jwtService, tokenStore, hasher)
	departmentUsecase := usecase.NewDepartmentUsecase(txm, log, matrix, departmentRepo, doctorRepo, auditService)
	doctorUsecase := usecase.NewDoctorUsecase(txm, log, matrix, doctorRepo, departmentRepo, auditService)
	patientUsecase := usecase.NewPatientUsecase(txm, log, matrix, patientRepo, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(txm, log, matrix, appointmentRepo, patientRepo, doctorRepo, auditService)
	recordUsecase := usecase.NewMedicalRecordUsecase(txm, log, matrix, recordRepo, patientRepo, doctorRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(txm, log, matrix, auditLogRepo)

	router := deliveryHttp.NewRouter(deliveryHttp.RouterConfig{
		Matrix:               matrix,
		Health:               database.Ping(db),
		AuthHandler:          handler.NewAuthHandler(authUsecase, customValidator, log),
		DepartmentHandler:    handler.NewDepartmentHandler(departmentUsecase, customValidator, log),
		DoctorHandler:        handler.NewDoctorHandler(doctorUsecase, customValidator, log),
		PatientHandler:       handler.NewPatientHandler(patientUsecase, recordUsecase, customValidator, log),
		AppointmentHandler:   handler.NewAppointmentHandler(appointmentUsecase, customValidator, log),
		MedicalRecordHandler: handler.NewMedicalRecordHandler(recordUsecase, customValidator, log),
		AuditLogHandler:      handler.NewAuditLogHandler(auditLogUsecase, log),
		AuthMiddleware:       middleware.NewAuthMiddleware(jwtService, tokenStore, log),
		CORSMiddleware:       middleware.NewCORSMiddleware(cfg.CORS),
		LoggingMiddleware:    middleware.NewLoggingMiddleware(log),
	})
	return router.Setup()
}

// Run starts the HTTP server and blocks until SIGINT or SIGTERM.
func (app *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		app.Close()
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
	return nil
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		if sqlDB, err := app.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				app.Log.Warnf("Failed to close database: %v", err)
			}
		}
	}

	if app.RedisClient != nil {
		if err := app.RedisClient.Close(); err != nil {
			app.Log.Warnf("Failed to close Redis client: %v", err)
		}
	}
}
