package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Env holds settings read from the process environment (after .env loading).
type Env struct {
	Port       int
	ConfigPath string
	LogLevel   string
}

// NewEnv reads DASHBOARD_PORT (default: 8080), DASHBOARD_CONFIG and DASHBOARD_LOG_LEVEL (default: info).
func NewEnv() (*Env, error) {
	portStr := os.Getenv("DASHBOARD_PORT")
	if portStr == "" {
		portStr = "8080"
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DASHBOARD_PORT: %v", err)
	}
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("DASHBOARD_PORT must be between 1 and 65535, got: %d", port)
	}

	level, err := EnvLogLevel()
	if err != nil {
		return nil, err
	}

	return &Env{
		Port:       port,
		ConfigPath: EnvConfigPath(),
		LogLevel:   level,
	}, nil
}

// EnvLogLevel reads DASHBOARD_LOG_LEVEL on its own, for commands that never listen on a port.
func EnvLogLevel() (string, error) {
	level := strings.ToLower(strings.TrimSpace(os.Getenv("DASHBOARD_LOG_LEVEL")))
	switch level {
	case "":
		return "info", nil
	case "debug", "info", "warn", "error":
		return level, nil
	}
	return "", fmt.Errorf("DASHBOARD_LOG_LEVEL must be one of debug, info, warn, error, got: %q", level)
}

// EnvConfigPath returns DASHBOARD_CONFIG, or "" when unset.
func EnvConfigPath() string {
	return strings.TrimSpace(os.Getenv("DASHBOARD_CONFIG"))
}
