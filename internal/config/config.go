package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Câmara open-data API
	CamaraBaseURL  string
	CamaraTimeout  time.Duration
	CamaraPageSize int

	// Logging
	LogLevel string
}

const defaultBaseURL = "https://dadosabertos.camara.leg.br/api/v2"

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8081"),

		CamaraBaseURL:  getEnv("CAMARA_BASE_URL", defaultBaseURL),
		CamaraTimeout:  getEnvDuration("CAMARA_TIMEOUT", 30*time.Second),
		CamaraPageSize: getEnvInt("CAMARA_PAGE_SIZE", 100),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate upstream base URL
	if parsedURL, err := url.Parse(c.CamaraBaseURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid base URL '%s': %v", c.CamaraBaseURL, err))
	} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid base URL scheme '%s': must be 'http' or 'https'", parsedURL.Scheme))
	}

	// The despesas listing caps pages at 100 items
	if c.CamaraPageSize < 1 || c.CamaraPageSize > 100 {
		errors = append(errors, fmt.Sprintf("invalid page size %d: must be between 1 and 100", c.CamaraPageSize))
	}

	if c.CamaraTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid timeout %v: must be at least 1 second", c.CamaraTimeout))
	} else if c.CamaraTimeout > 5*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid timeout %v: must be at most 5 minutes", c.CamaraTimeout))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
