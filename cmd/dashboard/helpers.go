package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/channel-dashboard/internal/config"
	"github.com/jonathan/channel-dashboard/internal/session"
)

// resolveConfigPath prefers the flag, then DASHBOARD_CONFIG.
func resolveConfigPath(flag string) string {
	if flag != "" {
		return flag
	}
	return config.EnvConfigPath()
}

// loadDataset resolves the configuration and loads file into a fresh session.
func loadDataset(file, configPath string, opts ...session.Option) (*session.Session, error) {
	cfg, err := config.Resolve(resolveConfigPath(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	sess := session.New(cfg, append([]session.Option{session.WithLogger(logger)}, opts...)...)
	if _, err := sess.LoadFile(file); err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	return sess, nil
}

// decodeJSONArg decodes an inline JSON document, or the file it names when
// the value does not start with "{". An empty value leaves v untouched.
func decodeJSONArg(value string, v any) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	data := []byte(value)
	if !strings.HasPrefix(value, "{") {
		content, err := os.ReadFile(value)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", value, err)
		}
		data = content
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}

// writeJSON writes v as indented JSON to path, creating its directory.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	// Ensure output directory exists
	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func markRequired(cmd interface{ MarkFlagRequired(string) error }, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}
}
