package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Transport TransportConfig `yaml:"transport"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type StorageConfig struct {
	// DataDir holds the JSON documents (projects, dailyScores).
	DataDir string `yaml:"data_dir"`
	// PhotosDir holds image blobs; defaults to <DataDir>/photos.
	PhotosDir string `yaml:"photos_dir"`
	// ActivityDBPath is the SQLite activity log; defaults to
	// <DataDir>/activity.db. Empty string after defaulting is kept as-is.
	ActivityDBPath string `yaml:"activity_db_path"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"` // "stdio" or "http"
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional .env file, an optional YAML
// file, and environment variables, in that order of precedence.
func Load() (Config, error) {
	// Load .env if present; absence is the normal case.
	_ = godotenv.Load()

	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			DataDir: "data",
		},
		Transport: TransportConfig{
			Mode: "stdio",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("GARDENLOG_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("GARDENLOG_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("GARDENLOG_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid GARDENLOG_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dataDir := os.Getenv("GARDENLOG_DATA_DIR"); dataDir != "" {
		cfg.Storage.DataDir = dataDir
	}
	if photosDir := os.Getenv("GARDENLOG_PHOTOS_DIR"); photosDir != "" {
		cfg.Storage.PhotosDir = photosDir
	}
	if dbPath := os.Getenv("GARDENLOG_ACTIVITY_DB_PATH"); dbPath != "" {
		cfg.Storage.ActivityDBPath = dbPath
	}
	if mode := os.Getenv("GARDENLOG_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if level := os.Getenv("GARDENLOG_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if cfg.Storage.PhotosDir == "" {
		cfg.Storage.PhotosDir = filepath.Join(cfg.Storage.DataDir, "photos")
	}
	if cfg.Storage.ActivityDBPath == "" {
		cfg.Storage.ActivityDBPath = filepath.Join(cfg.Storage.DataDir, "activity.db")
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
