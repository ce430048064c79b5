package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Amlan029/FeedFormly/internal/infra/config"
)

// NewSQLite opens the local development store with WAL and foreign keys enabled.
func NewSQLite(cfg config.SQLiteSettings, env string, log *zap.Logger) (*gorm.DB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}

	gormLogger := logger.New(zap.NewStdLog(log), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
	if env == "production" {
		gormLogger = gormLogger.LogMode(logger.Error)
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	// sqlite allows a single writer
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := sqlDB.Exec(pragma); err != nil {
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}

	log.Info("opened sqlite store", zap.String("path", cfg.Path))

	return db, nil
}
