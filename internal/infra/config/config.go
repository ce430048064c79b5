package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "FEEDFORMLY"

// Storage drivers understood by the composition root.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

type AppConfig struct {
	App          AppSettings          `mapstructure:"app"`
	Storage      StorageSettings      `mapstructure:"storage"`
	Postgres     PostgresSettings     `mapstructure:"postgres"`
	SQLite       SQLiteSettings       `mapstructure:"sqlite"`
	Redis        RedisSettings        `mapstructure:"redis"`
	Kafka        KafkaSettings        `mapstructure:"kafka"`
	Session      SessionSettings      `mapstructure:"session"`
	Telemetry    TelemetrySettings    `mapstructure:"telemetry"`
	RateLimit    RateLimitSettings    `mapstructure:"rate_limit"`
	Argon2       Argon2Settings       `mapstructure:"argon2"`
	Verification VerificationSettings `mapstructure:"verification"`
	Gemini       GeminiSettings       `mapstructure:"gemini"`
	SMTP         SMTPSettings         `mapstructure:"smtp"`
	CORS         CORSSettings         `mapstructure:"cors"`
}

type AppSettings struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// StorageSettings selects the Account Store implementation.
type StorageSettings struct {
	Driver      string `mapstructure:"driver"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type PostgresSettings struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	User              string        `mapstructure:"user"`
	Password          string        `mapstructure:"password"`
	Database          string        `mapstructure:"database"`
	SSLMode           string        `mapstructure:"ssl_mode"`
	MaxConns          int32         `mapstructure:"max_conns"`
	MinConns          int32         `mapstructure:"min_conns"`
	MaxConnLifetime   time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   time.Duration `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod time.Duration `mapstructure:"health_check_period"`
}

// DSN renders a pgx connection string.
func (p PostgresSettings) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.Database,
		p.SSLMode,
	)
}

type SQLiteSettings struct {
	Path string `mapstructure:"path"`
}

// RedisSettings configures Redis connection and TLS
type RedisSettings struct {
	Enabled         bool   `mapstructure:"enabled"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	DB              int    `mapstructure:"db"`
	Password        string `mapstructure:"password"`
	TLSEnabled      bool   `mapstructure:"tls_enabled"`
	RateLimitPrefix string `mapstructure:"rate_limit_prefix"`
}

// KafkaSettings configures Kafka producer
type KafkaSettings struct {
	Enabled     bool     `mapstructure:"enabled"`
	Brokers     []string `mapstructure:"brokers"`
	TopicPrefix string   `mapstructure:"topic_prefix"`
	Async       bool     `mapstructure:"async"`
}

// SessionSettings configures the owner session cookie and bearer tokens.
type SessionSettings struct {
	Secret     string        `mapstructure:"secret"`
	CookieName string        `mapstructure:"cookie_name"`
	MaxAge     time.Duration `mapstructure:"max_age"`
	Secure     bool          `mapstructure:"secure"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

type TelemetrySettings struct {
	TracingEnabled bool    `mapstructure:"tracing_enabled"`
	OTLPEndpoint   string  `mapstructure:"otlp_endpoint"`
	ServiceName    string  `mapstructure:"service_name"`
	SamplingRate   float64 `mapstructure:"sampling_rate"`
}

// RateLimitSettings configures rate limiting windows and max attempts per endpoint
type RateLimitSettings struct {
	WindowDuration           time.Duration `mapstructure:"window_duration"`
	SignUpMaxAttempts        int           `mapstructure:"sign_up_max_attempts"`
	SignInMaxAttempts        int           `mapstructure:"sign_in_max_attempts"`
	VerifyMaxAttempts        int           `mapstructure:"verify_max_attempts"`
	SuggestMaxAttempts       int           `mapstructure:"suggest_max_attempts"`
	UsernameCheckMaxAttempts int           `mapstructure:"username_check_max_attempts"`
}

// Argon2Settings configures Argon2id password hashing parameters
type Argon2Settings struct {
	Memory      uint32 `mapstructure:"memory"`
	Iterations  uint32 `mapstructure:"iterations"`
	Parallelism uint8  `mapstructure:"parallelism"`
	SaltLength  uint32 `mapstructure:"salt_length"`
	KeyLength   uint32 `mapstructure:"key_length"`
}

type VerificationSettings struct {
	CodeLength int           `mapstructure:"code_length"`
	CodeTTL    time.Duration `mapstructure:"code_ttl"`
}

type GeminiSettings struct {
	APIKey        string        `mapstructure:"api_key"`
	BaseURL       string        `mapstructure:"base_url"`
	Model         string        `mapstructure:"model"`
	Timeout       time.Duration `mapstructure:"timeout"`
	DefaultPrompt string        `mapstructure:"default_prompt"`
}

type SMTPSettings struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type CORSSettings struct {
	Origins []string `mapstructure:"origins"`
}

var configKeys = []string{
	"app.name",
	"app.env",
	"app.host",
	"app.port",
	"storage.driver",
	"storage.auto_migrate",
	"postgres.host",
	"postgres.port",
	"postgres.user",
	"postgres.password",
	"postgres.database",
	"postgres.ssl_mode",
	"postgres.max_conns",
	"postgres.min_conns",
	"postgres.max_conn_lifetime",
	"postgres.max_conn_idle_time",
	"postgres.health_check_period",
	"sqlite.path",
	"redis.enabled",
	"redis.host",
	"redis.port",
	"redis.db",
	"redis.password",
	"redis.tls_enabled",
	"redis.rate_limit_prefix",
	"kafka.enabled",
	"kafka.brokers",
	"kafka.topic_prefix",
	"kafka.async",
	"session.secret",
	"session.cookie_name",
	"session.max_age",
	"session.secure",
	"session.token_ttl",
	"telemetry.tracing_enabled",
	"telemetry.otlp_endpoint",
	"telemetry.service_name",
	"telemetry.sampling_rate",
	"rate_limit.window_duration",
	"rate_limit.sign_up_max_attempts",
	"rate_limit.sign_in_max_attempts",
	"rate_limit.verify_max_attempts",
	"rate_limit.suggest_max_attempts",
	"rate_limit.username_check_max_attempts",
	"argon2.memory",
	"argon2.iterations",
	"argon2.parallelism",
	"argon2.salt_length",
	"argon2.key_length",
	"verification.code_length",
	"verification.code_ttl",
	"gemini.api_key",
	"gemini.base_url",
	"gemini.model",
	"gemini.timeout",
	"gemini.default_prompt",
	"smtp.enabled",
	"smtp.host",
	"smtp.port",
	"smtp.username",
	"smtp.password",
	"smtp.from",
	"cors.origins",
}

func Load() (*AppConfig, error) {
	v := viper.New()

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix(envPrefix)

	setDefaults(v)

	if err := bindEnvs(v, configKeys); err != nil {
		return nil, err
	}

	v.AutomaticEnv()

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects combinations the service cannot start with.
func (c *AppConfig) Validate() error {
	var errs []error

	switch c.Storage.Driver {
	case DriverPostgres, DriverSQLite, DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q is not supported", c.Storage.Driver))
	}
	if c.Storage.Driver == DriverSQLite && strings.TrimSpace(c.SQLite.Path) == "" {
		errs = append(errs, errors.New("sqlite.path is required for the sqlite driver"))
	}
	if strings.EqualFold(c.App.Env, "production") && len(c.Session.Secret) < 32 {
		errs = append(errs, errors.New("session.secret must be at least 32 bytes in production"))
	}
	if c.Verification.CodeLength <= 0 {
		errs = append(errs, errors.New("verification.code_length must be positive"))
	}
	if c.Verification.CodeTTL <= 0 {
		errs = append(errs, errors.New("verification.code_ttl must be positive"))
	}

	return errors.Join(errs...)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "feedformly")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.host", "0.0.0.0")
	v.SetDefault("app.port", 8080)

	v.SetDefault("storage.driver", DriverPostgres)
	v.SetDefault("storage.auto_migrate", true)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "feedformly")
	v.SetDefault("postgres.password", "feedformly_password")
	v.SetDefault("postgres.database", "feedformly")
	v.SetDefault("postgres.ssl_mode", "disable")
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 2)
	v.SetDefault("postgres.max_conn_lifetime", "60m")
	v.SetDefault("postgres.max_conn_idle_time", "15m")
	v.SetDefault("postgres.health_check_period", "30s")

	v.SetDefault("sqlite.path", "feedformly.db")

	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.tls_enabled", false)
	v.SetDefault("redis.rate_limit_prefix", "feedformly:ratelimit")

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic_prefix", "feedformly")
	v.SetDefault("kafka.async", true)

	v.SetDefault("session.secret", "change-me-in-development-only-000")
	v.SetDefault("session.cookie_name", "feedformly_session")
	v.SetDefault("session.max_age", "720h")
	v.SetDefault("session.secure", false)
	v.SetDefault("session.token_ttl", "24h")

	v.SetDefault("telemetry.tracing_enabled", false)
	v.SetDefault("telemetry.otlp_endpoint", "http://localhost:4318")
	v.SetDefault("telemetry.service_name", "feedformly")
	v.SetDefault("telemetry.sampling_rate", 1.0)

	v.SetDefault("rate_limit.window_duration", "1m")
	v.SetDefault("rate_limit.sign_up_max_attempts", 5)
	v.SetDefault("rate_limit.sign_in_max_attempts", 5)
	v.SetDefault("rate_limit.verify_max_attempts", 10)
	v.SetDefault("rate_limit.suggest_max_attempts", 10)
	v.SetDefault("rate_limit.username_check_max_attempts", 60)

	v.SetDefault("argon2.memory", 65536) // 64 MB
	v.SetDefault("argon2.iterations", 3)
	v.SetDefault("argon2.parallelism", 4)
	v.SetDefault("argon2.salt_length", 16)
	v.SetDefault("argon2.key_length", 32)

	v.SetDefault("verification.code_length", 6)
	v.SetDefault("verification.code_ttl", "15m")

	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com/v1")
	v.SetDefault("gemini.model", "gemini-2.0-flash-lite-001")
	v.SetDefault("gemini.timeout", "8s")
	v.SetDefault("gemini.default_prompt", "Suggest 3 friendly anonymous messages separated by ||")

	v.SetDefault("smtp.enabled", false)
	v.SetDefault("smtp.host", "localhost")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from", "no-reply@feedformly.local")

	v.SetDefault("cors.origins", []string{"http://localhost:3000"})
}

func bindEnvs(v *viper.Viper, keys []string) error {
	for _, key := range keys {
		envKey := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envPrefix+"_"+envKey, envKey); err != nil {
			return fmt.Errorf("bind env for %s: %w", key, err)
		}
	}
	return nil
}
