package app

import (
	"time"

	"github.com/yungbote/payona-backend/internal/observability"
	"github.com/yungbote/payona-backend/internal/platform/db"
	"github.com/yungbote/payona-backend/internal/platform/envutil"
	"github.com/yungbote/payona-backend/internal/platform/logger"
	"github.com/yungbote/payona-backend/internal/services"
)

type Config struct {
	Port    string
	LogMode string

	DB db.Config

	Tokens services.TokenConfig

	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	ProfileCacheTTL time.Duration

	EligibilityPolicyFile string

	MatchCreateMaxAttempts int
	MatchStrictTransitions bool

	MetricsEnabled bool
	Otel           observability.OtelConfig

	AllowedOrigins []string
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:    envutil.String("PORT", "8080"),
		LogMode: envutil.String("LOG_MODE", "development"),
		DB: db.Config{
			Driver:           envutil.String("DB_DRIVER", db.DriverPostgres),
			PostgresHost:     envutil.String("POSTGRES_HOST", "localhost"),
			PostgresPort:     envutil.String("POSTGRES_PORT", "5432"),
			PostgresUser:     envutil.String("POSTGRES_USER", "postgres"),
			PostgresPassword: envutil.String("POSTGRES_PASSWORD", ""),
			PostgresName:     envutil.String("POSTGRES_NAME", "payona"),
			SQLitePath:       envutil.String("SQLITE_PATH", "payona.db"),
		},
		Tokens: services.TokenConfig{
			SecretKey: envutil.String("JWT_SECRET_KEY", "defaultsecret"),
			Issuer:    envutil.String("JWT_ISSUER", ""),
			Audience:  envutil.String("JWT_AUDIENCE", ""),
			Leeway:    envutil.Seconds("JWT_LEEWAY_SECONDS", 30*time.Second),
		},
		RedisAddr:              envutil.String("REDIS_ADDR", ""),
		RedisPassword:          envutil.String("REDIS_PASSWORD", ""),
		RedisDB:                envutil.Int("REDIS_DB", 0),
		ProfileCacheTTL:        envutil.Seconds("PROFILE_CACHE_TTL_SECONDS", time.Minute),
		EligibilityPolicyFile:  envutil.String("ELIGIBILITY_POLICY_FILE", ""),
		MatchCreateMaxAttempts: envutil.Int("MATCH_CREATE_MAX_ATTEMPTS", 5),
		MatchStrictTransitions: envutil.Bool("MATCH_STRICT_TRANSITIONS", false),
		MetricsEnabled:         envutil.Bool("METRICS_ENABLED", true),
		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", "payona-backend"),
			Environment: envutil.String("APP_ENV", "development"),
			Version:     envutil.String("APP_VERSION", ""),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", true),
			Headers:     observability.ParseHeaders(envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "")),
			SampleRatio: float64(envutil.Int("OTEL_SAMPLER_PERCENT", 100)) / 100,
		},
		AllowedOrigins: envutil.List("CORS_ALLOWED_ORIGINS", nil),
	}
	if cfg.Tokens.SecretKey == "defaultsecret" && log != nil {
		log.Warn("JWT_SECRET_KEY is not set, using the development default")
	}
	return cfg
}
