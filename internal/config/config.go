package config

import (
	"fmt"
	"math"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"expensetracker/internal/core"
	"expensetracker/internal/events"
	"expensetracker/internal/filter"
)

type Config struct {
	// HTTP Server
	Port            string
	ShutdownTimeout time.Duration

	// Logging
	LogLevel  string
	LogFormat string

	// Input validation
	MaxAmount  float64
	Categories []string

	// Filter applied at startup, if any
	DefaultFilterKind  string
	DefaultFilterValue string

	// AMQP events; an empty URL disables publishing
	AMQPURL             string
	AMQPExchange        string
	AMQPRoutingKey      string
	AMQPPublishAttempts int
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8081"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		MaxAmount:  getEnvFloat("MAX_AMOUNT", core.DefaultMaxAmount),
		Categories: getEnvList("CATEGORIES", core.DefaultCategories),

		DefaultFilterKind:  getEnv("DEFAULT_FILTER_KIND", ""),
		DefaultFilterValue: getEnv("DEFAULT_FILTER_VALUE", ""),

		AMQPURL:             getEnv("AMQP_URL", ""),
		AMQPExchange:        getEnv("AMQP_EXCHANGE", "expensetracker"),
		AMQPRoutingKey:      getEnv("AMQP_ROUTING_KEY", "transactions"),
		AMQPPublishAttempts: getEnvInt("AMQP_PUBLISH_ATTEMPTS", 3),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.ShutdownTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid shutdown timeout %v: must be at least 1 second", c.ShutdownTimeout))
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'text' or 'json'", c.LogFormat))
	}

	if !(c.MaxAmount > 0) || math.IsInf(c.MaxAmount, 0) {
		errors = append(errors, fmt.Sprintf("invalid max amount %v: must be a positive finite number", c.MaxAmount))
	}
	if len(c.Categories) == 0 {
		errors = append(errors, "at least one category is required")
	}

	// Both or neither
	if (c.DefaultFilterKind == "") != (c.DefaultFilterValue == "") {
		errors = append(errors, "DEFAULT_FILTER_KIND and DEFAULT_FILTER_VALUE must be set together")
	} else if c.DefaultFilterKind != "" {
		if _, err := c.DefaultFilter(); err != nil {
			errors = append(errors, fmt.Sprintf("invalid default filter: %v", err))
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPPublishAttempts < 1 || c.AMQPPublishAttempts > 10 {
			errors = append(errors, fmt.Sprintf("invalid AMQP publish attempts %d: must be between 1 and 10", c.AMQPPublishAttempts))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// Rules returns the input validation rules described by the configuration.
func (c *Config) Rules() core.Rules {
	return core.Rules{
		MaxAmount:  c.MaxAmount,
		Categories: append([]string(nil), c.Categories...),
	}
}

// DefaultFilter builds the startup filter. It returns nil, nil when none is configured.
func (c *Config) DefaultFilter() (filter.Strategy, error) {
	if c.DefaultFilterKind == "" {
		return nil, nil
	}
	return filter.New(filter.Kind(c.DefaultFilterKind), c.DefaultFilterValue)
}

// EventsEnabled reports whether transaction events should be published.
func (c *Config) EventsEnabled() bool {
	return c.AMQPURL != ""
}

// Events returns the publisher settings.
func (c *Config) Events() events.Config {
	return events.Config{
		URL:        c.AMQPURL,
		Exchange:   c.AMQPExchange,
		RoutingKey: c.AMQPRoutingKey,
		Attempts:   uint(max(c.AMQPPublishAttempts, 1)),
		Timeout:    5 * time.Second,
	}
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

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
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

// getEnvList splits a comma separated value, dropping blanks and duplicates.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return append([]string(nil), defaultValue...)
	}
	seen := map[string]struct{}{}
	var out []string
	for _, v := range strings.Split(value, ",") {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
