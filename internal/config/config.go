package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// TTS defaults
	Voice      string
	Language   string
	Format     string
	SampleRate int

	// HTTP settings
	HTTPPort       int
	BearerToken    string
	AllowedOrigins []string

	// Generated file settings
	TempDir         string
	FileTTL         time.Duration
	CleanupInterval time.Duration

	// Logging settings
	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables with sane defaults.
// A .env file in the working directory is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	origins := []string{"http://localhost:3000", "https://tauri.localhost"}
	if originsStr := os.Getenv("ALLOWED_ORIGINS"); originsStr != "" {
		origins = nil
		for _, o := range strings.Split(originsStr, ",") {
			o = strings.TrimSpace(o)
			if o != "" {
				origins = append(origins, o)
			}
		}
	}

	cfg := &Config{
		// TTS defaults
		Voice:      getEnvString("TTS_VOICE", "en-US-Chirp3-HD-Charon"),
		Language:   getEnvString("TTS_LANGUAGE", "en-US"),
		Format:     getEnvString("AUDIO_FORMAT", "MP3"),
		SampleRate: getEnvInt("SAMPLE_RATE", 24000),

		// HTTP settings
		HTTPPort:       getEnvInt("HTTP_PORT", 8000),
		BearerToken:    os.Getenv("BEARER_TOKEN"),
		AllowedOrigins: origins,

		// Generated file settings
		TempDir:         getEnvString("TEMP_DIR", filepath.Join(os.TempDir(), "kiwi_tts")),
		FileTTL:         getEnvDuration("FILE_TTL", time.Hour),
		CleanupInterval: getEnvDuration("CLEANUP_INTERVAL", 10*time.Minute),

		// Logging settings
		LogLevel:  getEnvString("LOG_LEVEL", "info"),
		LogFormat: getEnvString("LOG_FORMAT", "text"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// AuthDisabled returns true if bearer token authentication is disabled.
func (c *Config) AuthDisabled() bool {
	return c.BearerToken == ""
}

// Validate checks that required configuration values are set.
func (c *Config) Validate() error {
	if c.Voice == "" {
		return errors.New("TTS_VOICE cannot be empty")
	}

	if c.Language == "" {
		return errors.New("TTS_LANGUAGE cannot be empty")
	}

	validFormats := map[string]bool{"MP3": true, "LINEAR16": true}
	if !validFormats[strings.ToUpper(c.Format)] {
		return errors.New("AUDIO_FORMAT must be one of: MP3, LINEAR16")
	}

	if c.SampleRate < 1 {
		return errors.New("SAMPLE_RATE must be at least 1")
	}

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return errors.New("HTTP_PORT must be between 1 and 65535")
	}

	if c.TempDir == "" {
		return errors.New("TEMP_DIR cannot be empty")
	}

	if c.FileTTL < 0 {
		return errors.New("FILE_TTL must be non-negative")
	}

	if c.CleanupInterval < 0 {
		return errors.New("CLEANUP_INTERVAL must be non-negative")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.LogLevel] {
		return errors.New("LOG_LEVEL must be one of: debug, info, warn, error")
	}

	validLogFormats := map[string]bool{"text": true, "json": true}
	if !validLogFormats[c.LogFormat] {
		return errors.New("LOG_FORMAT must be one of: text, json")
	}

	return nil
}

// getEnvString returns the environment variable value or a default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as an int or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns the environment variable as a duration or a default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
