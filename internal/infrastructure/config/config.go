package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all process configuration.
type Config struct {
	Bootstrap BootstrapConfig
	Autoload  AutoloadConfig
	Loader    LoaderConfig
	Logging   LogConfig
}

// BootstrapConfig holds the inputs of the bootstrap sequence.
type BootstrapConfig struct {
	Settings string `envconfig:"VCMS_SETTINGS" default:"config.json"`
	LibPath  string `envconfig:"VCMS_LIB_PATH" default:"lib"`
	Debug    bool   `envconfig:"VCMS_DEBUG" default:"false"`
}

// AutoloadConfig holds autoloader tuning.
type AutoloadConfig struct {
	SourceExt    string `envconfig:"VCMS_SOURCE_EXT" default:".php"`
	Search       bool   `envconfig:"VCMS_AUTOLOAD_SEARCH" default:"false"`
	RescanOnMiss bool   `envconfig:"VCMS_RESCAN_ON_MISS" default:"false"`
}

// LoaderConfig holds settings file decoding limits.
type LoaderConfig struct {
	MaxDepth int `envconfig:"VCMS_MAX_DEPTH" default:"512"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load applies the optional .env file and loads configuration from
// environment variables.
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Loader.MaxDepth <= 0 {
		return nil, fmt.Errorf("failed to load config: VCMS_MAX_DEPTH must be positive, got %d", cfg.Loader.MaxDepth)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Bootstrap: BootstrapConfig{
			Settings: "config.json",
			LibPath:  "lib",
			Debug:    false,
		},
		Autoload: AutoloadConfig{
			SourceExt:    ".php",
			Search:       false,
			RescanOnMiss: false,
		},
		Loader: LoaderConfig{
			MaxDepth: 512,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}

// loadEnvFile applies VCMS_ENV_FILE or ./.env if present. A missing file is
// not an error.
func loadEnvFile() error {
	path := os.Getenv("VCMS_ENV_FILE")
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return nil
}
