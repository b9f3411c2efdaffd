package database

import (
	"context"
	"fmt"
	"time"

	"hospital-management-api/config"
	"hospital-management-api/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresConnection(cfg config.DBConfig, env string, log *logrus.Logger) (*gorm.DB, error) {
	logLevel := logger.Warn
	if env == "development" {
		logLevel = logger.Info
	}

	db, err := Open(cfg.DSN(), logLevel)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Infof("Successfully connected to PostgreSQL database %s on %s:%s", cfg.Name, cfg.Host, cfg.Port)

	return db, nil
}

// Open connects to dsn without touching pool settings.
func Open(dsn string, level logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(level),
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// models in creation order.
func models() []interface{} {
	return []interface{}{
		&entity.Department{},
		&entity.Doctor{},
		&entity.Patient{},
		&entity.User{},
		&entity.Appointment{},
		&entity.MedicalRecord{},
		&entity.AuditLog{},
	}
}

type constraint struct {
	model interface{}
	name  string
}

// Department and Doctor reference each other, so tables are created first
// and foreign keys are added afterwards.
func constraints() []constraint {
	return []constraint{
		{&entity.Department{}, "HeadDoctor"},
		{&entity.Doctor{}, "Department"},
		{&entity.User{}, "Doctor"},
		{&entity.User{}, "Patient"},
		{&entity.Appointment{}, "Patient"},
		{&entity.Appointment{}, "Doctor"},
		{&entity.MedicalRecord{}, "Patient"},
		{&entity.MedicalRecord{}, "Doctor"},
	}
}

// Migrate creates or updates the schema for every persisted entity.
func Migrate(db *gorm.DB, log *logrus.Logger) error {
	if err := db.AutoMigrate(models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	m := db.Migrator()
	for _, c := range constraints() {
		if m.HasConstraint(c.model, c.name) {
			continue
		}
		if err := m.CreateConstraint(c.model, c.name); err != nil {
			return fmt.Errorf("create constraint %T.%s: %w", c.model, c.name, err)
		}
	}

	log.Info("Database schema is up to date")
	return nil
}

// Ping reports whether the database answers within ctx.
func Ping(db *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
