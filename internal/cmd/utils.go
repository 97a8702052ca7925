package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hargabyte/liftoff/internal/config"
	"github.com/hargabyte/liftoff/internal/store"
	"gopkg.in/yaml.v3"
)

// Shared utility functions for command implementations

// openStore opens the workspace database, walking up from the current
// directory to find the .liftoff workspace.
func openStore() (*store.Store, error) {
	liftoffDir, err := config.FindWorkspaceDir(".")
	if err != nil {
		return nil, fmt.Errorf("liftoff not initialized: run 'liftoff init' first")
	}

	storeDB, err := store.Open(liftoffDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	return storeDB, nil
}

// loadConfig loads the workspace configuration, honoring the global
// --config flag. A missing config file yields the defaults.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromPath(configPath)
	}
	return config.Load(".")
}

// decodeDataFile reads a YAML or JSON data file into v. The format is
// chosen by file extension, defaulting to YAML.
func decodeDataFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return nil
}

// writeRecord encodes a data record to stdout in the global output
// format. Records have no markdown rendering, so the markdown default
// falls back to YAML.
func writeRecord(v interface{}) error {
	switch outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		return enc.Close()
	}
}

// splitCommaList splits a comma-separated flag value into trimmed,
// non-empty entries.
func splitCommaList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
