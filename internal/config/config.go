package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v2"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

type Config struct {
	HTTPAddr     string   `yaml:"http_addr"`
	StoreBackend string   `yaml:"store_backend"` // memory or postgres
	DatabaseURL  string   `yaml:"database_url"`
	KafkaBrokers []string `yaml:"kafka_brokers"` // empty disables events
	KafkaTopic   string   `yaml:"kafka_topic"`
	LogLevel     string   `yaml:"log_level"`
}

func Default() *Config {
	return &Config{
		HTTPAddr:     ":8080",
		StoreBackend: BackendMemory,
		LogLevel:     "info",
	}
}

// Load reads the optional YAML file at path and then applies environment overrides.
// Variables from envFiles (".env" when none are given) are loaded first and never
// replace variables already set in the process environment. Missing files are skipped.
func Load(path string, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		cfg.HTTPAddr = addr
	}
	if backend := os.Getenv("STORE_BACKEND"); backend != "" {
		cfg.StoreBackend = backend
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.DatabaseURL = dsn
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		// comma separated list of host:port
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	if topic := os.Getenv("KAFKA_TOPIC"); topic != "" {
		cfg.KafkaTopic = topic
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// NewLogger builds a production zap logger at the configured level.
func (c *Config) NewLogger() (*zap.SugaredLogger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	logger, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
