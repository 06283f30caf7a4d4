package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SessionBackendFile  = "file"
	SessionBackendRedis = "redis"
)

type Config struct {
	// Server configuration
	ListenAddr  string
	Environment string
	LogLevel    string
	Locale      string

	// Backend configuration
	BackendURL     string
	BackendTimeout time.Duration

	// Circuit breaker
	BreakerMaxRequests  int
	BreakerTimeout      time.Duration
	BreakerFailureRatio float64

	// Session persistence
	SessionBackend   string
	SessionFile      string
	SessionKeyPrefix string

	// Redis configuration
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// PubNub configuration
	PubNubPublishKey   string
	PubNubSubscribeKey string
	PubNubSecretKey    string
	PubNubUserID       string

	// Receipts
	ReceiptDir string
	ReceiptQR  bool

	// Monitoring and limits
	EnableMetrics      bool
	RateLimitPerMinute int
}

// LoadConfig reads an optional .env file, then the environment.
func LoadConfig() (*Config, error) {
	// .env is optional when the variables come from the environment.
	_ = godotenv.Load()

	cfg := &Config{
		// Server
		ListenAddr:  getEnv("LISTEN_ADDR", ":8090"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Locale:      getEnv("APP_LOCALE", "en"),

		// Backend
		BackendURL:     getEnv("BACKEND_URL", "http://localhost:8080"),
		BackendTimeout: getEnvAsDuration("BACKEND_TIMEOUT", "10s"),

		// Breaker
		BreakerMaxRequests:  getEnvAsInt("BREAKER_MAX_REQUESTS", 100),
		BreakerTimeout:      getEnvAsDuration("BREAKER_TIMEOUT", "60s"),
		BreakerFailureRatio: getEnvAsFloat("BREAKER_FAILURE_RATIO", 0.6),

		// Session
		SessionBackend:   strings.ToLower(getEnv("SESSION_BACKEND", SessionBackendFile)),
		SessionFile:      getEnv("SESSION_FILE", defaultSessionFile()),
		SessionKeyPrefix: getEnv("SESSION_KEY_PREFIX", "imagique:"),

		// Redis
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		// PubNub
		PubNubPublishKey:   getEnv("PUBNUB_PUBLISH_KEY", ""),
		PubNubSubscribeKey: getEnv("PUBNUB_SUBSCRIBE_KEY", ""),
		PubNubSecretKey:    getEnv("PUBNUB_SECRET_KEY", ""),
		PubNubUserID:       getEnv("PUBNUB_USER_ID", "imagique"),

		// Receipts
		ReceiptDir: getEnv("RECEIPT_DIR", ""),
		ReceiptQR:  getEnvAsBool("RECEIPT_QR", false),

		// Monitoring
		EnableMetrics:      getEnvAsBool("ENABLE_METRICS", true),
		RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil {
		return fmt.Errorf("config: BACKEND_URL invalid (%q): %w", c.BackendURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("config: BACKEND_URL invalid (%q): need http(s) scheme and host", c.BackendURL)
	}
	if c.BackendTimeout <= 0 {
		return fmt.Errorf("config: BACKEND_TIMEOUT must be positive")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("config: RATE_LIMIT_PER_MINUTE must be positive")
	}

	switch c.SessionBackend {
	case SessionBackendFile:
		if strings.TrimSpace(c.SessionFile) == "" {
			return fmt.Errorf("config: SESSION_FILE is required with the file session backend")
		}
	case SessionBackendRedis:
		if strings.TrimSpace(c.RedisURL) == "" {
			return fmt.Errorf("config: REDIS_URL is required with the redis session backend")
		}
	default:
		return fmt.Errorf("config: SESSION_BACKEND must be %q or %q, got %q", SessionBackendFile, SessionBackendRedis, c.SessionBackend)
	}

	if c.BreakerFailureRatio <= 0 || c.BreakerFailureRatio > 1 {
		return fmt.Errorf("config: BREAKER_FAILURE_RATIO must be in (0, 1]")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return dir + string(os.PathSeparator) + "imagique" + string(os.PathSeparator) + "session.json"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	// If parsing fails, try to parse default value
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
