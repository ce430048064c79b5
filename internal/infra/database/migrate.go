package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/Amlan029/FeedFormly/internal/infra/database/migrations"
)

// goose entry points, swapped in tests.
var (
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return goose.UpContext(ctx, db, dir, opts...)
	}
	gooseDownContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return goose.DownContext(ctx, db, dir, opts...)
	}
	gooseStatusContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return goose.StatusContext(ctx, db, dir, opts...)
	}
)

// Migrator applies the embedded schema migrations through goose.
type Migrator struct {
	db  *sql.DB
	log *zap.Logger
}

func NewMigrator(db *sql.DB, log *zap.Logger) (*Migrator, error) {
	if log == nil {
		log = zap.NewNop()
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}

	return &Migrator{db: db, log: log}, nil
}

// NewMigratorFromPool opens a database/sql handle that shares the pgx pool.
// Closing the returned handle does not close the pool.
func NewMigratorFromPool(pool *pgxpool.Pool, log *zap.Logger) (*Migrator, *sql.DB, error) {
	db := stdlib.OpenDBFromPool(pool)
	m, err := NewMigrator(db, log)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return m, db, nil
}

func (m *Migrator) Up(ctx context.Context) error {
	if err := gooseUpContext(ctx, m.db, "."); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	m.log.Info("database migrations applied")
	return nil
}

// Down rolls back the most recent migration.
func (m *Migrator) Down(ctx context.Context) error {
	if err := gooseDownContext(ctx, m.db, "."); err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	m.log.Info("database migration rolled back")
	return nil
}

func (m *Migrator) Status(ctx context.Context) error {
	if err := gooseStatusContext(ctx, m.db, "."); err != nil {
		return fmt.Errorf("migrate status: %w", err)
	}
	return nil
}
