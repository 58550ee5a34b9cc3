// Package config loads application configuration from the environment.
// A .env file in the working directory is read first when present; real
// environment variables take precedence over it.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server        ServerConfig
	Gemini        GeminiConfig
	Database      DatabaseConfig
	Observability ObservabilityConfig
	Geolocation   GeolocationConfig
	LogLevel      string
	LogFormat     string
}

type ServerConfig struct {
	Port               string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	RateLimitPerSecond int
	RateLimitBurst     int
	CORSOrigins        []string
	SessionSecret      string
	SessionTTL         time.Duration
	MaxBodyBytes       int64
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

// DatabaseConfig is optional; an empty URL disables search history.
type DatabaseConfig struct {
	URL string
}

func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

func (d DatabaseConfig) DSN() string {
	return d.URL
}

type ObservabilityConfig struct {
	MetricsEnabled bool
	ServiceName    string
}

type GeolocationConfig struct {
	Timeout time.Duration
}

// Load reads configuration and returns an error naming every required
// variable that is missing or malformed.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var problems []string

	cfg := &Config{
		Server: ServerConfig{
			Port:          getEnv("PORT", "8000"),
			CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")),
			SessionSecret: os.Getenv("SESSION_SECRET"),
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Observability: ObservabilityConfig{
			ServiceName: getEnv("SERVICE_NAME", "travelvibe-api"),
		},
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	cfg.Server.ReadTimeout = getDuration("SERVER_READ_TIMEOUT", 15*time.Second, &problems)
	// Generation calls routinely take tens of seconds.
	cfg.Server.WriteTimeout = getDuration("SERVER_WRITE_TIMEOUT", 120*time.Second, &problems)
	cfg.Server.SessionTTL = getDuration("SESSION_TTL", 2*time.Hour, &problems)
	cfg.Server.RateLimitPerSecond = getInt("RATE_LIMIT_PER_SECOND", 5, &problems)
	cfg.Server.RateLimitBurst = getInt("RATE_LIMIT_BURST", 10, &problems)
	cfg.Server.MaxBodyBytes = int64(getInt("MAX_BODY_BYTES", 64<<10, &problems))
	cfg.Observability.MetricsEnabled = getBool("METRICS_ENABLED", true, &problems)
	cfg.Geolocation.Timeout = getDuration("GEOLOCATION_TIMEOUT", 10*time.Second, &problems)

	if cfg.Gemini.APIKey == "" {
		problems = append(problems, "GEMINI_API_KEY is required")
	}
	if cfg.Server.SessionSecret == "" {
		problems = append(problems, "SESSION_SECRET is required")
	} else if len(cfg.Server.SessionSecret) < 32 {
		problems = append(problems, "SESSION_SECRET must be at least 32 bytes")
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int, problems *[]string) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*problems = append(*problems, fmt.Sprintf("%s must be an integer", key))
		return fallback
	}
	return n
}

func getBool(key string, fallback bool, problems *[]string) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*problems = append(*problems, fmt.Sprintf("%s must be a boolean", key))
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration, problems *[]string) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		*problems = append(*problems, fmt.Sprintf("%s must be a positive duration", key))
		return fallback
	}
	return d
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
