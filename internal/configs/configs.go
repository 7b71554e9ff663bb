/*
Package configs loads and validates the application's configuration from
environment variables, applying defaults suitable for development.
*/
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// AppConfig contains every configuration parameter the server needs.
type AppConfig struct {
	// General Server Settings
	Environment string
	Port        int

	// Security Settings
	AllowedOrigins []string

	// Chat Settings
	RoomName          string
	HistoryCapacity   int
	SendQueueCapacity int
}

// LoadConfig reads the configuration from environment variables, providing
// defaults and validating ranges. It returns the parsed AppConfig or an
// error describing the first invalid value.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	port, err := intFromEnv("PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port < 1024 || port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the allowed range (1024-65535)", port)
	}
	cfg.Port = port

	if originsStr := os.Getenv("ALLOWED_ORIGINS"); originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	} else {
		cfg.AllowedOrigins = []string{}
	}

	cfg.RoomName = os.Getenv("ROOM_NAME")
	if cfg.RoomName == "" {
		cfg.RoomName = "lobby"
	}

	cfg.HistoryCapacity, err = intFromEnv("HISTORY_CAPACITY", 1000)
	if err != nil {
		return nil, err
	}
	if cfg.HistoryCapacity <= 0 {
		return nil, fmt.Errorf("HISTORY_CAPACITY must be positive, got %d", cfg.HistoryCapacity)
	}

	cfg.SendQueueCapacity, err = intFromEnv("SEND_QUEUE_CAPACITY", 256)
	if err != nil {
		return nil, err
	}
	if cfg.SendQueueCapacity <= 0 {
		return nil, fmt.Errorf("SEND_QUEUE_CAPACITY must be positive, got %d", cfg.SendQueueCapacity)
	}

	return cfg, nil
}

// intFromEnv parses an integer environment variable, returning def when the
// variable is unset.
func intFromEnv(name string, def int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", name, err)
	}
	return value, nil
}
