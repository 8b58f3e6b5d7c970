package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jordangerads/pickem/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                    string
	ServiceName               string
	ServiceVersion            string
	HTTPAddr                  string
	DBURL                     string
	CacheEnabled              bool
	CacheTTL                  time.Duration
	CORSAllowedOrigins        []string
	ReadTimeout               time.Duration
	WriteTimeout              time.Duration
	PprofEnabled              bool
	PprofAddr                 string
	UptraceEnabled            bool
	UptraceDSN                string
	PyroscopeEnabled          bool
	PyroscopeServerAddress    string
	PyroscopeAppName          string
	PyroscopeAuthToken        string
	FeedEnabled               bool
	FeedBaseURL               string
	FeedAPIKey                string
	FeedPassword              string
	FeedTimeout               time.Duration
	FeedMaxRetries            int
	FeedCacheTTL              time.Duration
	FeedCircuitEnabled        bool
	FeedCircuitFailureCount   int
	FeedCircuitOpenTimeout    time.Duration
	FeedCircuitHalfOpenMaxReq int
	MailEnabled               bool
	MailBaseURL               string
	MailToken                 string
	MailFromAddress           string
	MailTimeout               time.Duration
	ReminderWorkers           int
	InternalJobToken          string
	StaticAccessTokens        []string
	LogLevel                  logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}

	feedEnabled, err := strconv.ParseBool(getEnv("FEED_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FEED_ENABLED: %w", err)
	}
	feedTimeout, err := time.ParseDuration(getEnv("FEED_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FEED_TIMEOUT: %w", err)
	}
	if feedTimeout <= 0 {
		return Config{}, fmt.Errorf("FEED_TIMEOUT must be > 0")
	}
	feedMaxRetries, err := getEnvAsInt("FEED_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse FEED_MAX_RETRIES: %w", err)
	}
	if feedMaxRetries < 0 {
		return Config{}, fmt.Errorf("FEED_MAX_RETRIES must be >= 0")
	}
	feedCacheTTL, err := time.ParseDuration(getEnv("FEED_CACHE_TTL", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FEED_CACHE_TTL: %w", err)
	}
	if feedCacheTTL <= 0 {
		return Config{}, fmt.Errorf("FEED_CACHE_TTL must be > 0")
	}
	feedCircuitEnabled, err := strconv.ParseBool(getEnv("FEED_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FEED_CIRCUIT_ENABLED: %w", err)
	}
	feedCircuitFailureCount, err := getEnvAsInt("FEED_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse FEED_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if feedCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("FEED_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	feedCircuitOpenTimeout, err := time.ParseDuration(getEnv("FEED_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FEED_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if feedCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("FEED_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	feedCircuitHalfOpenMaxReq, err := getEnvAsInt("FEED_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FEED_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if feedCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("FEED_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	feedAPIKey := strings.TrimSpace(getEnv("FEED_API_KEY", ""))
	if feedEnabled && feedAPIKey == "" {
		return Config{}, fmt.Errorf("FEED_API_KEY is required when FEED_ENABLED=true")
	}

	mailEnabled, err := strconv.ParseBool(getEnv("MAIL_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MAIL_ENABLED: %w", err)
	}
	mailBaseURL := strings.TrimSpace(getEnv("MAIL_BASE_URL", ""))
	if mailEnabled && mailBaseURL == "" {
		return Config{}, fmt.Errorf("MAIL_BASE_URL is required when MAIL_ENABLED=true")
	}
	mailTimeout, err := time.ParseDuration(getEnv("MAIL_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MAIL_TIMEOUT: %w", err)
	}
	if mailTimeout <= 0 {
		return Config{}, fmt.Errorf("MAIL_TIMEOUT must be > 0")
	}
	reminderWorkers, err := getEnvAsInt("REMINDER_WORKERS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse REMINDER_WORKERS: %w", err)
	}
	if reminderWorkers < 1 {
		return Config{}, fmt.Errorf("REMINDER_WORKERS must be >= 1")
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cfg := Config{
		AppEnv:                    appEnv,
		ServiceName:               getEnv("APP_SERVICE_NAME", "pickem-api"),
		ServiceVersion:            getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                  getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                     getEnv("DB_URL", ""),
		CacheEnabled:              cacheEnabled,
		CacheTTL:                  cacheTTL,
		CORSAllowedOrigins:        splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:               readTimeout,
		WriteTimeout:              writeTimeout,
		PprofEnabled:              pprofEnabled,
		PprofAddr:                 pprofAddr,
		UptraceEnabled:            uptraceEnabled,
		UptraceDSN:                uptraceDSN,
		PyroscopeEnabled:          pyroscopeEnabled,
		PyroscopeServerAddress:    pyroscopeServerAddress,
		PyroscopeAuthToken:        strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		FeedEnabled:               feedEnabled,
		FeedBaseURL:               strings.TrimSpace(getEnv("FEED_BASE_URL", "https://api.mysportsfeeds.com/v2.1/pull/nfl")),
		FeedAPIKey:                feedAPIKey,
		FeedPassword:              strings.TrimSpace(getEnv("FEED_PASSWORD", "MYSPORTSFEEDS")),
		FeedTimeout:               feedTimeout,
		FeedMaxRetries:            feedMaxRetries,
		FeedCacheTTL:              feedCacheTTL,
		FeedCircuitEnabled:        feedCircuitEnabled,
		FeedCircuitFailureCount:   feedCircuitFailureCount,
		FeedCircuitOpenTimeout:    feedCircuitOpenTimeout,
		FeedCircuitHalfOpenMaxReq: feedCircuitHalfOpenMaxReq,
		MailEnabled:               mailEnabled,
		MailBaseURL:               mailBaseURL,
		MailToken:                 strings.TrimSpace(getEnv("MAIL_TOKEN", "")),
		MailFromAddress:           strings.TrimSpace(getEnv("MAIL_FROM_ADDRESS", "picks@pickem.local")),
		MailTimeout:               mailTimeout,
		ReminderWorkers:           reminderWorkers,
		InternalJobToken:          strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		StaticAccessTokens:        splitCSV(getEnv("STATIC_ACCESS_TOKENS", "")),
		LogLevel:                  parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
