package config

import (
	"path/filepath"
	"strings"
	"time"
)

// Config holds all application configuration in a structured way.
type Config struct {
	App       AppConfig
	Paths     PathsConfig
	Database  DatabaseConfig
	Agent     AgentConfig
	Publisher PublisherConfig
}

type AppConfig struct {
	Version            string
	Port               string
	Debug              bool
	Environment        string
	BasicAuth          []string
	BasePath           string
	TrustedProxies     []string
	BaseUrl            string
	CorsAllowedOrigins []string
	ServerID           string
}

type PathsConfig struct {
	BaseDir  string
	Storages string
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string // File path for SQLite, DB Name for Postgres
}

// AgentConfig tunes the content execution agent. The retry delays are
// configurable mainly so tests do not sleep for real seconds.
type AgentConfig struct {
	Interval          time.Duration // between execution cycles
	InitialDelay      time.Duration // first cycle shortly after start
	MaxPublishRetries int           // extra in-cycle attempts per post
	RetryBaseDelay    time.Duration // first backoff delay
	RetryMaxDelay     time.Duration // backoff cap
	FailureCap        int           // total failures before a post is rejected
	ErrorBufferSize   int           // recent errors kept for the status endpoint
	Timezone          string        // wall-clock location for due checks
}

type PublisherConfig struct {
	BaseURL      string
	APIKey       string
	Timeout      time.Duration
	PromoEnabled bool
	PromoText    string
}

// Global provides access to the loaded configuration globally.
var Global *Config

// LoadConfig loads configuration from environment variables or defaults.
func LoadConfig() (*Config, error) {
	baseDir := getEnv("APP_BASE_DIR", "storages")

	debug := getEnvBool("APP_DEBUG", false)

	var basicAuth []string
	if v := getEnv("APP_BASIC_AUTH", ""); v != "" {
		basicAuth = strings.Split(v, ",")
	}

	corsOrigins := []string{"http://localhost:3000", "http://localhost:5173"}
	if v := getEnv("APP_CORS_ALLOWED_ORIGINS", ""); v != "" {
		corsOrigins = strings.Split(v, ",")
	}

	appCfg := AppConfig{
		Version:            "v1.3.0",
		Port:               getEnv("APP_PORT", "3000"),
		Debug:              debug,
		Environment:        getEnv("APP_ENV", "development"),
		BasicAuth:          basicAuth,
		BasePath:           getEnv("APP_BASE_PATH", ""),
		BaseUrl:            getEnv("APP_BASE_URL", "http://localhost:3000"),
		CorsAllowedOrigins: corsOrigins,
		ServerID:           getEnv("SERVER_ID", ""),
	}
	if v := getEnv("APP_TRUSTED_PROXIES", ""); v != "" {
		appCfg.TrustedProxies = strings.Split(v, ",")
	}

	pathsCfg := PathsConfig{
		BaseDir:  baseDir,
		Storages: baseDir,
	}

	dbCfg := DatabaseConfig{
		Driver:   getEnv("DB_DRIVER", "sqlite"),
		Name:     getEnv("DB_NAME", filepath.Join(pathsCfg.Storages, "agent.db")),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
	}

	agentCfg := AgentConfig{
		Interval:          getEnvDuration("AGENT_INTERVAL", 5*time.Minute),
		InitialDelay:      getEnvDuration("AGENT_INITIAL_DELAY", 1*time.Second),
		MaxPublishRetries: getEnvInt("AGENT_MAX_PUBLISH_RETRIES", 2),
		RetryBaseDelay:    getEnvDuration("AGENT_RETRY_BASE_DELAY", 2*time.Second),
		RetryMaxDelay:     getEnvDuration("AGENT_RETRY_MAX_DELAY", 4*time.Second),
		FailureCap:        getEnvInt("AGENT_FAILURE_CAP", 3),
		ErrorBufferSize:   getEnvInt("AGENT_ERROR_BUFFER_SIZE", 10),
		Timezone:          getEnv("AGENT_TIMEZONE", "UTC"),
	}

	publisherCfg := PublisherConfig{
		BaseURL:      getEnv("PUBLISHER_BASE_URL", ""),
		APIKey:       getEnv("PUBLISHER_API_KEY", ""),
		Timeout:      getEnvDuration("PUBLISHER_TIMEOUT", 30*time.Second),
		PromoEnabled: getEnvBool("PUBLISHER_PROMO_ENABLED", false),
		PromoText:    getEnv("PUBLISHER_PROMO_TEXT", ""),
	}

	cfg := &Config{
		App:       appCfg,
		Paths:     pathsCfg,
		Database:  dbCfg,
		Agent:     agentCfg,
		Publisher: publisherCfg,
	}

	Global = cfg
	return cfg, nil
}

// Location resolves the configured agent timezone, falling back to UTC.
func (c AgentConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
