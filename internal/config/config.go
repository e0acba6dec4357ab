package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	ServerAddress      string  `mapstructure:"SERVER_ADDRESS"`
	DBSource           string  `mapstructure:"DB_SOURCE"`
	APIURL             string  `mapstructure:"JUSHO_API_URL"`
	TimeoutMS          int     `mapstructure:"JUSHO_TIMEOUT_MS"`
	Headers            string  `mapstructure:"JUSHO_HEADERS"`
	LogLevel           string  `mapstructure:"LOG_LEVEL"`
	RateLimitRPS       float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst     int     `mapstructure:"RATE_LIMIT_BURST"`
	AutofillDebounceMS int     `mapstructure:"AUTOFILL_DEBOUNCE_MS"`
}

var defaults = map[string]any{
	"SERVER_ADDRESS":       "0.0.0.0:8080",
	"DB_SOURCE":            "",
	"JUSHO_API_URL":        "https://api.jusho.dev",
	"JUSHO_TIMEOUT_MS":     30000,
	"JUSHO_HEADERS":        "",
	"LOG_LEVEL":            "info",
	"RATE_LIMIT_RPS":       0,
	"RATE_LIMIT_BURST":     0,
	"AUTOFILL_DEBOUNCE_MS": 300,
}

// LoadConfig reads configuration from app.env in path, then from the environment.
// A missing file is not an error.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("config: failed to read config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: failed to decode config: %w", err)
	}
	if config.TimeoutMS <= 0 {
		return config, fmt.Errorf("config: JUSHO_TIMEOUT_MS must be positive, got %d", config.TimeoutMS)
	}

	return config, nil
}

// Timeout returns the request timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// AutofillDebounce returns the autofill quiet window as a duration.
func (c Config) AutofillDebounce() time.Duration {
	return time.Duration(c.AutofillDebounceMS) * time.Millisecond
}

// HeaderMap parses JUSHO_HEADERS ("Name=value,Other=value") into a map.
func (c Config) HeaderMap() (map[string]string, error) {
	return ParseHeaders(c.Headers)
}

// ParseHeaders parses a comma separated list of name=value pairs.
func ParseHeaders(s string) (map[string]string, error) {
	headers := map[string]string{}
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("config: invalid header %q, want name=value", pair)
		}
		headers[name] = strings.TrimSpace(value)
	}

	return headers, nil
}
