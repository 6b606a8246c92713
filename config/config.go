// Package config loads the immutable service configuration.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Defaults applied when neither the config file nor the environment set a value.
const (
	DefaultPort            = 3000
	DefaultGeminiModel     = "gemini-pro"
	DefaultAICacheTTL      = 10 * time.Minute
	DefaultShutdownTimeout = 30 * time.Second
	DefaultCORSOrigins     = "*"

	// DefaultServiceCallTimeout stays below mono's 30s request-reply default.
	DefaultServiceCallTimeout = 25 * time.Second
)

// Config holds the settings read once at startup.
// Modules receive it by value and never mutate it.
type Config struct {
	OfficialEmail    string        `yaml:"official_email"`
	GeminiAPIKey     string        `yaml:"gemini_api_key"`
	GeminiModel      string        `yaml:"gemini_model"`
	Port             int           `yaml:"port"`
	StrictValidation bool          `yaml:"strict_validation"`
	RedisAddr        string        `yaml:"redis_addr"`
	AICacheTTL       time.Duration `yaml:"ai_cache_ttl"`
	CORSOrigins      string        `yaml:"cors_allowed_origins"`
	ShutdownTimeout  time.Duration `yaml:"shutdown_timeout"`

	// ServiceCallTimeout bounds each /bfhl dispatch, including the Gemini round trip.
	ServiceCallTimeout time.Duration `yaml:"service_call_timeout"`
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// CacheEnabled reports whether AI answers should be cached in Redis.
func (c Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

// Default returns a Config populated with defaults only.
func Default() Config {
	return Config{
		GeminiModel:     DefaultGeminiModel,
		Port:            DefaultPort,
		AICacheTTL:      DefaultAICacheTTL,
		CORSOrigins:     DefaultCORSOrigins,
		ShutdownTimeout: DefaultShutdownTimeout,

		ServiceCallTimeout: DefaultServiceCallTimeout,
	}
}

// Load builds the configuration from, in increasing precedence:
// defaults, the YAML file named by CONFIG_FILE, and the environment.
// A .env file in the working directory is loaded into the environment first.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadFile overlays the YAML file at path onto cfg.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("OFFICIAL_EMAIL"); v != "" {
		cfg.OfficialEmail = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.GeminiAPIKey = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.GeminiModel = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORSOrigins = v
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("STRICT_VALIDATION"); v != "" {
		strict, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid STRICT_VALIDATION %q: %w", v, err)
		}
		cfg.StrictValidation = strict
	}
	if v := os.Getenv("AI_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid AI_CACHE_TTL %q: %w", v, err)
		}
		cfg.AICacheTTL = ttl
	}
	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q: %w", v, err)
		}
		cfg.ShutdownTimeout = timeout
	}
	if v := os.Getenv("SERVICE_CALL_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SERVICE_CALL_TIMEOUT %q: %w", v, err)
		}
		cfg.ServiceCallTimeout = timeout
	}
	return nil
}

// Validate checks value ranges. Missing credentials are only warned about:
// the numeric operations work without them.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.AICacheTTL <= 0 {
		return fmt.Errorf("ai_cache_ttl must be positive, got %s", c.AICacheTTL)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got %s", c.ShutdownTimeout)
	}
	if c.ServiceCallTimeout <= 0 {
		return fmt.Errorf("service_call_timeout must be positive, got %s", c.ServiceCallTimeout)
	}
	if c.OfficialEmail == "" {
		log.Println("Warning: OFFICIAL_EMAIL is not set")
	}
	if c.GeminiAPIKey == "" {
		log.Println("Warning: GEMINI_API_KEY is not set, AI requests will fail")
	}
	return nil
}
