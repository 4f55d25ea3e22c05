package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: every environment variable is read here and nowhere else
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// Dashboard
	Dashboard DashboardConfig

	// API rate limiting
	RateLimit RateLimitConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
	Prefix   string // key namespace, e.g. "ezana"
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// DashboardConfig holds dashboard computation settings
type DashboardConfig struct {
	ScoringConfigPath string        // YAML scoring parameters, empty = built-in defaults
	BenchmarkSymbol   string        // benchmark used for beta
	CacheTTL          time.Duration // summary cache lifetime
	RefreshSchedule   string        // cron expression (seconds precision)
	SnapshotSchedule  string        // cron expression (seconds precision)
}

// RateLimitConfig holds API rate limiting settings
type RateLimitConfig struct {
	Enabled bool
	Limit   int           // requests per window per client
	Window  time.Duration // sliding window size

	// X-Forwarded-For is only honoured when the peer is one of these (IPs or CIDRs)
	TrustedProxies []string
}

// Load reads configuration from environment variables
// ⭐ SSOT: the only function that calls os.Getenv()
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
			Prefix:   getEnv("REDIS_PREFIX", "ezana"),
		},

		Dashboard: DashboardConfig{
			ScoringConfigPath: getEnv("SCORING_CONFIG", ""),
			BenchmarkSymbol:   getEnv("BENCHMARK_SYMBOL", "SPY"),
			CacheTTL:          getEnvAsDuration("DASHBOARD_CACHE_TTL", "10m"),
			RefreshSchedule:   getEnv("DASHBOARD_REFRESH_SCHEDULE", "0 */15 * * * *"),
			SnapshotSchedule:  getEnv("DASHBOARD_SNAPSHOT_SCHEDULE", "0 30 16 * * 1-5"),
		},

		RateLimit: RateLimitConfig{
			Enabled: getEnvAsBool("API_RATE_LIMIT_ENABLED", true),
			Limit:   getEnvAsInt("API_RATE_LIMIT", 120),
			Window:  getEnvAsDuration("API_RATE_WINDOW", "1m"),

			TrustedProxies: getEnvAsSlice("API_TRUSTED_PROXIES"),
		},

		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Dashboard.CacheTTL <= 0 {
		return fmt.Errorf("DASHBOARD_CACHE_TTL must be positive")
	}

	if c.RateLimit.Enabled && (c.RateLimit.Limit <= 0 || c.RateLimit.Window <= 0) {
		return fmt.Errorf("API_RATE_LIMIT and API_RATE_WINDOW must be positive when rate limiting is enabled")
	}

	for _, proxy := range c.RateLimit.TrustedProxies {
		if _, err := ParseCIDR(proxy); err != nil {
			return fmt.Errorf("API_TRUSTED_PROXIES: %w", err)
		}
	}

	return nil
}

// ParseCIDR accepts a CIDR or a bare IP (treated as a single-host network)
func ParseCIDR(value string) (*net.IPNet, error) {
	if strings.Contains(value, "/") {
		_, network, err := net.ParseCIDR(value)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy %q: %w", value, err)
		}
		return network, nil
	}

	ip := net.ParseIP(value)
	if ip == nil {
		return nil, fmt.Errorf("invalid proxy %q", value)
	}
	bits := 128
	if ip.To4() != nil {
		ip = ip.To4()
		bits = 32
	}
	return &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)}, nil
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
		"backend/.env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvAsSlice splits a comma-separated value, dropping empty items
func getEnvAsSlice(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
