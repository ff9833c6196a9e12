package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	APIBaseURL     string        `yaml:"api_base_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	StatePath      string        `yaml:"state_path"`
	LogLevel       string        `yaml:"log_level"`
}

const defaultAPIBaseURL = "http://localhost:3000"

// Load resolves configuration in increasing precedence: defaults, the
// optional YAML file at JOBSEEKER_CONFIG (or the default location),
// a .env file in the working directory, then real environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:     defaultAPIBaseURL,
		RequestTimeout: 15 * time.Second,
		StatePath:      defaultStatePath(),
		LogLevel:       "info",
	}

	if path := configFilePath(); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.APIBaseURL = getEnv("JOBSEEKER_API_URL", cfg.APIBaseURL)
	cfg.RequestTimeout = getDuration("JOBSEEKER_REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.StatePath = getEnv("JOBSEEKER_STATE_PATH", cfg.StatePath)
	cfg.LogLevel = getEnv("JOBSEEKER_LOG_LEVEL", cfg.LogLevel)
	return cfg, nil
}

// Level maps the configured log level onto slog's levels, defaulting to
// info on unknown values.
func (c *Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func configFilePath() string {
	if path, ok := os.LookupEnv("JOBSEEKER_CONFIG"); ok {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(dir, "jobseeker", "config.yaml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "jobseeker.db"
	}
	return filepath.Join(dir, "jobseeker", "state.db")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
