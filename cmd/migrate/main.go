package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Amlan029/FeedFormly/internal/infra/config"
	"github.com/Amlan029/FeedFormly/internal/infra/database"
	"github.com/Amlan029/FeedFormly/internal/infra/logger"
	sqliterepo "github.com/Amlan029/FeedFormly/internal/repository/sqlite"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [up|down|status]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.App.Env)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, command, zl); err != nil {
		zl.Error("migration failed", zap.String("command", command), zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.AppConfig, command string, zl *zap.Logger) error {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pool, err := database.NewPostgresPool(ctx, cfg.Postgres, zl)
		if err != nil {
			return err
		}
		defer pool.Close()

		migrator, db, err := database.NewMigratorFromPool(pool, zl)
		if err != nil {
			return err
		}
		defer db.Close()

		switch command {
		case "up":
			return migrator.Up(ctx)
		case "down":
			return migrator.Down(ctx)
		case "status":
			return migrator.Status(ctx)
		default:
			return fmt.Errorf("unknown command %q", command)
		}

	case config.DriverSQLite:
		if command != "up" {
			return fmt.Errorf("sqlite schema is managed by automigrate and only supports %q", "up")
		}
		db, err := database.NewSQLite(cfg.SQLite, cfg.App.Env, zl)
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		if err := sqliterepo.Migrate(db); err != nil {
			return err
		}
		zl.Info("sqlite schema migrated", zap.String("path", cfg.SQLite.Path))
		return nil

	default:
		return fmt.Errorf("storage driver %q has no schema to migrate", cfg.Storage.Driver)
	}
}
