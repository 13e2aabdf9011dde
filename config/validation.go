package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig reports every problem at once
func ValidateConfig(cfg *Config) error {
	var errs []error

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{Field: "SERVER_PORT", Message: "is required"})
	} else if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, ValidationError{Field: "SERVER_PORT", Message: fmt.Sprintf("invalid port %q", cfg.ServerPort)})
	}

	switch cfg.StoreDriver {
	case DriverMongo:
		if cfg.MongoURI == "" {
			errs = append(errs, ValidationError{Field: "MONGO_URI", Message: "is required for the mongo store driver (env or mongo_uri secret)"})
		} else if !strings.HasPrefix(cfg.MongoURI, "mongodb://") && !strings.HasPrefix(cfg.MongoURI, "mongodb+srv://") {
			errs = append(errs, ValidationError{Field: "MONGO_URI", Message: "must start with mongodb:// or mongodb+srv://"})
		}
		if cfg.MongoDatabase == "" {
			errs = append(errs, ValidationError{Field: "MONGO_DATABASE", Message: "is required"})
		}
		if cfg.MongoCollection == "" {
			errs = append(errs, ValidationError{Field: "MONGO_COLLECTION", Message: "is required"})
		}
	case DriverMemory:
		if cfg.Environment == Production {
			errs = append(errs, ValidationError{Field: "STORE_DRIVER", Message: "memory store is not allowed in production"})
		}
	default:
		errs = append(errs, ValidationError{Field: "STORE_DRIVER", Message: fmt.Sprintf("unknown driver %q", cfg.StoreDriver)})
	}

	if cfg.RedisURL != "" {
		if u, err := url.Parse(cfg.RedisURL); err != nil || (u.Scheme != "redis" && u.Scheme != "rediss") {
			errs = append(errs, ValidationError{Field: "REDIS_URL", Message: "must be a redis:// or rediss:// URL"})
		}
	}

	if cfg.RateLimitPerMinute < 0 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT_PER_MINUTE", Message: "must not be negative"})
	}

	switch strings.ToLower(cfg.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, ValidationError{Field: "LOG_FORMAT", Message: fmt.Sprintf("unknown format %q", cfg.LogFormat)})
	}

	return errors.Join(errs...)
}
