// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port           string `mapstructure:"PORT"`
	Env            string `mapstructure:"APP_ENV"`
	RedisURL       string `mapstructure:"REDIS_URL"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
	FeatureFlags   string `mapstructure:"FEATURE_FLAGS"`

	// ViewerID is the seeded user acting as the local viewer.
	ViewerID      string `mapstructure:"VIEWER_ID"`
	SeedFile      string `mapstructure:"SEED_FILE"`
	SeedFakePosts int    `mapstructure:"SEED_FAKE_POSTS"`

	GeminiAPIKey              string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel               string `mapstructure:"GEMINI_MODEL"`
	SuggestionTimeoutSeconds  int    `mapstructure:"SUGGESTION_TIMEOUT_SECONDS"`
	SuggestionCacheTTLMinutes int    `mapstructure:"SUGGESTION_CACHE_TTL_MINUTES"`
	SuggestionRateLimit       int    `mapstructure:"SUGGESTION_RATE_LIMIT"`

	AvatarMaxUploadSizeMB int `mapstructure:"AVATAR_MAX_UPLOAD_SIZE_MB"`
	AvatarSize            int `mapstructure:"AVATAR_SIZE"`
	AvatarMaxDimension    int `mapstructure:"AVATAR_MAX_DIMENSION"`

	TracingEnabled      bool    `mapstructure:"TRACING_ENABLED"`
	TracingExporter     string  `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint        string  `mapstructure:"OTLP_ENDPOINT"`
	TracingSamplerRatio float64 `mapstructure:"TRACING_SAMPLER_RATIO"`
}

// LoadConfig loads application configuration from .env, config files and environment variables.
func LoadConfig() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" && env != "test" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("required profile-specific config 'config.%s.yml' not found: %w", env, err)
		}
		log.Printf("Loaded profile-specific configuration: config.%s.yml", env)
	}

	viper.SetDefault("PORT", "8375")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173")
	viper.SetDefault("FEATURE_FLAGS", "ai_suggestions=on,live_feed=on")
	viper.SetDefault("VIEWER_ID", "u1")
	viper.SetDefault("SEED_FILE", "")
	viper.SetDefault("SEED_FAKE_POSTS", 0)
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	viper.SetDefault("SUGGESTION_TIMEOUT_SECONDS", 20)
	viper.SetDefault("SUGGESTION_CACHE_TTL_MINUTES", 60)
	viper.SetDefault("SUGGESTION_RATE_LIMIT", 10)
	viper.SetDefault("AVATAR_MAX_UPLOAD_SIZE_MB", 5)
	viper.SetDefault("AVATAR_SIZE", 256)
	viper.SetDefault("AVATAR_MAX_DIMENSION", 4096)
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACING_EXPORTER", "stdout")
	viper.SetDefault("OTLP_ENDPOINT", "localhost:4318")
	viper.SetDefault("TRACING_SAMPLER_RATIO", 1.0)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	// The browser build exposed the key as API_KEY.
	if config.GeminiAPIKey == "" {
		config.GeminiAPIKey = viper.GetString("API_KEY")
	}
	config.Env = strings.ToLower(strings.TrimSpace(config.Env))

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures that required configuration values are present and sane.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if strings.TrimSpace(c.ViewerID) == "" {
		return errors.New("VIEWER_ID is required")
	}
	if c.AvatarMaxUploadSizeMB <= 0 {
		return errors.New("AVATAR_MAX_UPLOAD_SIZE_MB must be positive")
	}
	if c.AvatarSize < 16 || c.AvatarSize > 2048 {
		return errors.New("AVATAR_SIZE must be between 16 and 2048")
	}
	if c.AvatarMaxDimension < 0 {
		return errors.New("AVATAR_MAX_DIMENSION cannot be negative")
	}
	if c.SuggestionTimeoutSeconds <= 0 {
		return errors.New("SUGGESTION_TIMEOUT_SECONDS must be positive")
	}
	if c.SeedFakePosts < 0 {
		return errors.New("SEED_FAKE_POSTS cannot be negative")
	}
	if c.TracingSamplerRatio < 0 || c.TracingSamplerRatio > 1 {
		return errors.New("TRACING_SAMPLER_RATIO must be between 0 and 1")
	}
	if c.TracingEnabled && c.TracingExporter == "otlp" && c.OTLPEndpoint == "" {
		return errors.New("OTLP_ENDPOINT is required when TRACING_EXPORTER is otlp")
	}

	if c.IsProduction() {
		if c.AllowedOrigins == "*" {
			log.Println("WARNING: ALLOWED_ORIGINS is set to '*' in production. This is insecure.")
		}
		if c.RedisURL == "" {
			log.Println("WARNING: REDIS_URL is empty in production. Rate limiting and suggestion caching are disabled.")
		}
	}
	if c.GeminiAPIKey == "" {
		log.Println("WARNING: GEMINI_API_KEY is not set. Post suggestions will be unavailable.")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

func (c *Config) SuggestionTimeout() time.Duration {
	return time.Duration(c.SuggestionTimeoutSeconds) * time.Second
}

func (c *Config) SuggestionCacheTTL() time.Duration {
	return time.Duration(c.SuggestionCacheTTLMinutes) * time.Minute
}

func (c *Config) AvatarMaxUploadBytes() int64 {
	return int64(c.AvatarMaxUploadSizeMB) * 1024 * 1024
}
