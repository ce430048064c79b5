package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/Amlan029/FeedFormly/internal/core/port"
	"github.com/Amlan029/FeedFormly/internal/infra/config"
	"github.com/Amlan029/FeedFormly/internal/infra/database"
	"github.com/Amlan029/FeedFormly/internal/infra/gemini"
	kafkainfra "github.com/Amlan029/FeedFormly/internal/infra/kafka"
	"github.com/Amlan029/FeedFormly/internal/infra/logger"
	"github.com/Amlan029/FeedFormly/internal/infra/notify"
	redisinfra "github.com/Amlan029/FeedFormly/internal/infra/redis"
	"github.com/Amlan029/FeedFormly/internal/infra/security"
	"github.com/Amlan029/FeedFormly/internal/infra/session"
	"github.com/Amlan029/FeedFormly/internal/infra/telemetry"
	"github.com/Amlan029/FeedFormly/internal/repository/memory"
	postgresrepo "github.com/Amlan029/FeedFormly/internal/repository/postgres"
	redisrepo "github.com/Amlan029/FeedFormly/internal/repository/redis"
	sqliterepo "github.com/Amlan029/FeedFormly/internal/repository/sqlite"
	"github.com/Amlan029/FeedFormly/internal/transport/http/middleware"
	"github.com/Amlan029/FeedFormly/internal/transport/http/routes"
	"github.com/Amlan029/FeedFormly/internal/usecase"
)

type Application struct {
	cfg     *config.AppConfig
	engine  *gin.Engine
	logger  *zap.Logger
	closers []func(context.Context) error
}

// pingFunc adapts a probe function to routes.DatabaseChecker.
type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type store struct {
	accounts port.AccountRepository
	checker  routes.DatabaseChecker
}

func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	a := &Application{cfg: cfg, logger: log}
	fail := func(err error) (*Application, error) {
		a.close(context.Background())
		return nil, err
	}

	if cfg.Telemetry.TracingEnabled {
		tp, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
		if err != nil {
			return fail(fmt.Errorf("init tracing: %w", err))
		}
		a.closers = append(a.closers, tp.Shutdown)
	}

	st, err := a.openStore(ctx)
	if err != nil {
		return fail(err)
	}

	var (
		rateLimitStore port.RateLimitStore
		cache          routes.CacheChecker
	)
	if cfg.Redis.Enabled {
		redisClient, err := redisinfra.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			return fail(fmt.Errorf("init redis: %w", err))
		}
		a.closers = append(a.closers, func(context.Context) error { return redisClient.Close() })

		window := cfg.RateLimit.WindowDuration
		if window <= 0 {
			window = time.Minute
		}
		rateLimitStore = redisrepo.NewRateLimitRepository(redisClient.Client(), redisrepo.SlidingWindowConfig{
			KeyPrefix: cfg.Redis.RateLimitPrefix,
			TTL:       window * 2,
		})
		cache = redisClient
	} else {
		log.Info("redis disabled, rate limits are kept in process memory")
		rateLimitStore = memory.NewRateLimitStore()
	}

	var eventPublisher port.EventPublisher
	if cfg.Kafka.Enabled && len(cfg.Kafka.Brokers) > 0 {
		kafkaProducer, err := kafkainfra.NewProducer(cfg.Kafka, log)
		if err != nil {
			log.Warn("failed to init kafka producer, using stub publisher", zap.Error(err))
			eventPublisher = kafkainfra.NewStubPublisher(log)
		} else {
			a.closers = append(a.closers, func(context.Context) error { return kafkaProducer.Close() })
			eventPublisher = kafkainfra.NewEventPublisher(kafkaProducer, cfg.App, log)
			log.Info("kafka event publisher initialized", zap.Strings("brokers", cfg.Kafka.Brokers))
		}
	} else {
		log.Info("kafka disabled, using stub publisher")
		eventPublisher = kafkainfra.NewStubPublisher(log)
	}

	var notifier port.VerificationNotifier
	if cfg.SMTP.Enabled {
		notifier = notify.NewMailer(cfg.SMTP, log)
	} else {
		notifier = notify.NewLoggingNotifier(log, cfg.App.Env == "development")
	}

	var generator port.TextGenerator
	if client, err := gemini.NewClient(cfg.Gemini, log); err != nil {
		log.Warn("gemini client unavailable, suggestions will fail", zap.Error(err))
	} else {
		generator = client
	}

	hasher, err := security.NewPasswordHasher(security.Argon2Config{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  cfg.Argon2.SaltLength,
		KeyLength:   cfg.Argon2.KeyLength,
	})
	if err != nil {
		return fail(fmt.Errorf("configure argon2: %w", err))
	}

	tokens, err := security.NewTokenIssuer([]byte(cfg.Session.Secret), cfg.App.Name, cfg.Session.TokenTTL)
	if err != nil {
		return fail(fmt.Errorf("init token issuer: %w", err))
	}

	sessions, err := session.NewManager(cfg.Session)
	if err != nil {
		return fail(fmt.Errorf("init session manager: %w", err))
	}

	domainMetrics, err := telemetry.NewDomainMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return fail(fmt.Errorf("init domain metrics: %w", err))
	}
	httpMetrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{})
	if err != nil {
		return fail(fmt.Errorf("init http metrics: %w", err))
	}

	verificationService := usecase.NewVerificationService(st.accounts, eventPublisher, domainMetrics, cfg.Verification, log)
	services := routes.ServiceSet{
		Registration: usecase.NewRegistrationService(st.accounts, hasher, verificationService, notifier, eventPublisher, domainMetrics, log),
		Verification: verificationService,
		Intake:       usecase.NewIntakeService(st.accounts, eventPublisher, domainMetrics, log),
		Inbox:        usecase.NewInboxService(st.accounts, domainMetrics),
		Suggestions:  usecase.NewSuggestionService(generator, domainMetrics, cfg.Gemini, log),
		Auth:         usecase.NewAuthService(st.accounts, hasher, tokens),
	}

	a.engine = routes.Register(routes.Dependencies{
		Config:      cfg,
		Logger:      log,
		RateLimiter: middleware.NewRateLimiter(rateLimitStore, log),
		Services:    services,
		Sessions:    sessions,
		Metrics:     httpMetrics,
		Database:    st.checker,
		Cache:       cache,
	})

	return a, nil
}

// openStore connects the configured account store, migrating it when asked to.
func (a *Application) openStore(ctx context.Context) (store, error) {
	cfg, log := a.cfg, a.logger

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pool, err := database.NewPostgresPool(ctx, cfg.Postgres, log)
		if err != nil {
			return store{}, fmt.Errorf("init postgres: %w", err)
		}
		a.closers = append(a.closers, func(context.Context) error { pool.Close(); return nil })

		if cfg.Storage.AutoMigrate {
			migrator, db, err := database.NewMigratorFromPool(pool, log)
			if err != nil {
				return store{}, fmt.Errorf("init migrator: %w", err)
			}
			err = migrator.Up(ctx)
			_ = db.Close()
			if err != nil {
				return store{}, fmt.Errorf("migrate postgres: %w", err)
			}
		}

		repos := postgresrepo.NewRepositories(pool)
		return store{accounts: repos.Accounts, checker: pool}, nil

	case config.DriverSQLite:
		db, err := database.NewSQLite(cfg.SQLite, cfg.App.Env, log)
		if err != nil {
			return store{}, fmt.Errorf("init sqlite: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return store{}, fmt.Errorf("init sqlite: %w", err)
		}
		a.closers = append(a.closers, func(context.Context) error { return sqlDB.Close() })

		if cfg.Storage.AutoMigrate {
			if err := sqliterepo.Migrate(db); err != nil {
				return store{}, fmt.Errorf("migrate sqlite: %w", err)
			}
		}
		return store{accounts: sqliterepo.NewAccountRepository(db), checker: pingFunc(sqlDB.PingContext)}, nil

	case config.DriverMemory:
		log.Warn("using in-memory account store, data is lost on restart")
		return store{accounts: memory.NewAccountRepository()}, nil

	default:
		return store{}, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}

func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.App.Host, a.cfg.App.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.logger.Info("starting FeedFormly API",
		zap.String("env", a.cfg.App.Env),
		zap.String("address", srv.Addr),
		zap.String("storage", a.cfg.Storage.Driver),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		a.close(shutdownCtx)
		if err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		a.logger.Info("FeedFormly API stopped")
		return nil
	case err := <-serverErrCh:
		a.close(context.Background())
		return err
	}
}

// close releases resources in reverse order of acquisition.
func (a *Application) close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			a.logger.Warn("failed to release resource", zap.Error(err))
		}
	}
	a.closers = nil
}
