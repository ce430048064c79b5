package routes

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Amlan029/FeedFormly/internal/infra/config"
	"github.com/Amlan029/FeedFormly/internal/transport/http/handlers"
	"github.com/Amlan029/FeedFormly/internal/transport/http/middleware"
	"github.com/Amlan029/FeedFormly/internal/usecase"
)

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Registration *usecase.RegistrationService
	Verification *usecase.VerificationService
	Intake       *usecase.IntakeService
	Inbox        *usecase.InboxService
	Suggestions  *usecase.SuggestionService
	Auth         *usecase.AuthService
}

// SessionManager loads, saves and clears the owner session cookie.
type SessionManager interface {
	handlers.SessionStore
	middleware.SessionLoader
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config      *config.AppConfig
	Logger      *zap.Logger
	RateLimiter *middleware.RateLimiter
	Services    ServiceSet
	Sessions    SessionManager
	Metrics     *middleware.HTTPMetrics
	// Gatherer backs /metrics; defaults to the global registry.
	Gatherer prometheus.Gatherer
	Database DatabaseChecker
	Cache    CacheChecker
}

// DatabaseChecker exposes readiness behaviour for the account store.
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// CacheChecker exposes readiness behaviour for cache backends.
type CacheChecker interface {
	HealthCheck(ctx context.Context) error
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := handlers.RegisterValidators(); err != nil && deps.Logger != nil {
		deps.Logger.Warn("failed to register request validators", zap.Error(err))
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Tracing(deps.Config.App.Name, middleware.TracingOptions{}))
	r.Use(middleware.EnrichContext())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Handler())
	}
	if len(deps.Config.CORS.Origins) > 0 {
		r.Use(middleware.CORS(deps.Config.CORS.Origins))
	}

	healthOptions := make([]handlers.HealthOption, 0, 2)
	if deps.Database != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("database", deps.Database.Ping))
	}
	if deps.Cache != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("redis", deps.Cache.HealthCheck))
	}
	healthHandler := handlers.NewHealthHandler(healthOptions...)

	r.GET("/healthz", healthHandler.Status)
	r.GET("/readyz", healthHandler.Readiness)

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	limits := deps.Config.RateLimit
	api := r.Group("/api")
	{
		if svc := deps.Services.Registration; svc != nil {
			registrationHandler := handlers.NewRegistrationHandler(svc)
			api.POST("/signUp", withRateLimit(deps, "sign-up", limits.SignUpMaxAttempts, registrationHandler.SignUp)...)
			api.GET("/check-username-unique", withRateLimit(deps, "username-check", limits.UsernameCheckMaxAttempts, registrationHandler.CheckUsernameUnique)...)
		}

		if svc := deps.Services.Verification; svc != nil {
			verificationHandler := handlers.NewVerificationHandler(svc)
			api.POST("/verify-code", withRateLimit(deps, "verify-code", limits.VerifyMaxAttempts, verificationHandler.VerifyCode)...)
		}

		if svc := deps.Services.Suggestions; svc != nil {
			suggestionHandler := handlers.NewSuggestionHandler(svc)
			api.POST("/suggest-messages", withRateLimit(deps, "suggest-messages", limits.SuggestMaxAttempts, suggestionHandler.SuggestMessages)...)
		}

		var tokens middleware.TokenAuthenticator
		if deps.Services.Auth != nil {
			tokens = deps.Services.Auth
			authHandler := handlers.NewAuthHandler(deps.Services.Auth, deps.Sessions)
			api.POST("/sign-in", withRateLimit(deps, "sign-in", limits.SignInMaxAttempts, authHandler.SignIn)...)
			api.POST("/sign-out", authHandler.SignOut)
		}

		if deps.Services.Intake != nil && deps.Services.Inbox != nil {
			messageHandler := handlers.NewMessageHandler(deps.Services.Intake, deps.Services.Inbox)
			// Anonymous intake is never rate limited.
			api.POST("/send-message", messageHandler.SendMessage)

			var sessions middleware.SessionLoader
			if deps.Sessions != nil {
				sessions = deps.Sessions
			}
			owner := api.Group("")
			owner.Use(middleware.RequireOwner(sessions, tokens))
			owner.GET("/get-messages", messageHandler.GetMessages)
			owner.DELETE("/delete-message/:messageId", messageHandler.DeleteMessage)
			owner.GET("/accept-messages", messageHandler.GetAcceptMessages)
			owner.POST("/accept-messages", messageHandler.SetAcceptMessages)
		}
	}

	handlers.RegisterSwagger(r)

	return r
}

// withRateLimit prepends a per-IP limiter to handler when a limiter and a positive limit exist.
func withRateLimit(deps Dependencies, name string, limit int, handler gin.HandlerFunc) []gin.HandlerFunc {
	if deps.RateLimiter == nil || limit <= 0 {
		return []gin.HandlerFunc{handler}
	}

	window := deps.Config.RateLimit.WindowDuration
	if window <= 0 {
		window = time.Minute
	}

	return []gin.HandlerFunc{
		deps.RateLimiter.RateLimit(middleware.PerClientIP(name, limit, window)),
		handler,
	}
}
