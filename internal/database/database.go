package database

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/TeamSoftLion/crm/internal/models"
	pkgLogger "github.com/TeamSoftLion/crm/pkg/logger"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLitePrefix marks a DATABASE_URL that points at a local SQLite file
const SQLitePrefix = "sqlite:"

// Connect opens PostgreSQL, or SQLite when the URL starts with "sqlite:"
func Connect(databaseURL string) (*gorm.DB, error) {
	// Configure GORM logger
	logLevel := logger.Silent
	if os.Getenv("ENVIRONMENT") != "production" {
		logLevel = logger.Info
	}

	gormLogger := pkgLogger.NewGormLogger(
		logLevel,
		200*time.Millisecond,
	)

	sqliteMode := strings.HasPrefix(databaseURL, SQLitePrefix)
	dialector := postgres.Open(databaseURL)
	if sqliteMode {
		dialector = sqlite.Open(strings.TrimPrefix(databaseURL, SQLitePrefix))
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            !sqliteMode,
		TranslateError:         true, // unique-key races surface as gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL database
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Configure connection pool
	if sqliteMode {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetConnMaxLifetime(time.Hour)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	}

	// Verify connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Migrate creates or updates every billing table
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Group{},
		&models.Student{},
		&models.Enrollment{},
		&models.TuitionCharge{},
		&models.Payment{},
		&models.PaymentAllocation{},
		&models.Expense{},
		&models.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
