package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigPath is read when RH_CONFIG is not set. A missing default file is not an error.
const ConfigPath = "config.yaml"

// Store drivers
const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment `yaml:"-"`

	// Server configuration
	ServerHost  string   `yaml:"serverHost"`
	ServerPort  string   `yaml:"serverPort"`
	CORSOrigins []string `yaml:"corsOrigins"`

	// Document store configuration
	StoreDriver     string `yaml:"storeDriver"`
	MongoURI        string `yaml:"mongoURI"`
	MongoDatabase   string `yaml:"mongoDatabase"`
	MongoCollection string `yaml:"mongoCollection"`

	// Redis configuration, used for rate limiting only
	RedisURL      string `yaml:"redisURL"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`

	RateLimitPerMinute int `yaml:"rateLimitPerMinute"`

	LogLevel  string `yaml:"logLevel"`
	LogFormat string `yaml:"logFormat"`

	// SeedSource is a local path or s3://bucket/key; empty means the bundled recipes
	SeedSource string `yaml:"seedSource"`
}

// Defaults returns the configuration used before any file, env or secret is applied
func Defaults() *Config {
	return &Config{
		ServerHost:         "0.0.0.0",
		ServerPort:         "8080",
		StoreDriver:        DriverMongo,
		MongoDatabase:      "recipeharbor",
		MongoCollection:    "recipes",
		RateLimitPerMinute: 60,
		LogLevel:           "INFO",
		LogFormat:          "text",
	}
}

// Addr is the listen address
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// LoadConfig builds the configuration from defaults, the YAML file, environment
// variables and secrets, in that order, then validates it.
func LoadConfig() (*Config, error) {
	cfg := Defaults()
	cfg.Environment = GetEnvironment()

	path, explicit := os.LookupEnv("RH_CONFIG")
	if !explicit {
		path = ConfigPath
	}
	if err := loadFile(cfg, path, explicit); err != nil {
		return nil, err
	}

	if err := loadEnv(cfg); err != nil {
		return nil, err
	}
	loadSecrets(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string, required bool) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !required {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// loadEnv overrides file values with environment variables
func loadEnv(cfg *Config) error {
	strs := map[string]*string{
		"SERVER_HOST":      &cfg.ServerHost,
		"SERVER_PORT":      &cfg.ServerPort,
		"STORE_DRIVER":     &cfg.StoreDriver,
		"MONGO_URI":        &cfg.MongoURI,
		"MONGO_DATABASE":   &cfg.MongoDatabase,
		"MONGO_COLLECTION": &cfg.MongoCollection,
		"REDIS_URL":        &cfg.RedisURL,
		"REDIS_ADDR":       &cfg.RedisAddr,
		"REDIS_PASSWORD":   &cfg.RedisPassword,
		"LOG_LEVEL":        &cfg.LogLevel,
		"LOG_FORMAT":       &cfg.LogFormat,
		"SEED_SOURCE":      &cfg.SeedSource,
	}
	for name, dst := range strs {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return ValidationError{Field: "RATE_LIMIT_PER_MINUTE", Message: "must be an integer"}
		}
		cfg.RateLimitPerMinute = n
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitCSV(v)
	}
	return nil
}

// loadSecrets applies Docker secrets. In production they win over every other
// source; elsewhere they only fill values that are still empty.
func loadSecrets(cfg *Config) {
	secrets := map[string]*string{
		"mongo_uri":      &cfg.MongoURI,
		"redis_password": &cfg.RedisPassword,
	}
	for name, dst := range secrets {
		v := readSecret(name)
		if v == "" {
			continue
		}
		if cfg.Environment == Production || *dst == "" {
			*dst = v
		}
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
