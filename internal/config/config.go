package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hargabyte/liftoff/internal/scoring"
)

// ConfigFileName is the name of the liftoff configuration file
const ConfigFileName = "config.yaml"

// WorkspaceDirName is the name of the liftoff workspace directory
const WorkspaceDirName = ".liftoff"

// Config holds all liftoff configuration
type Config struct {
	Report    ReportConfig    `yaml:"report"`
	Readiness ReadinessConfig `yaml:"readiness"`
}

// ReportConfig holds defaults for report generation
type ReportConfig struct {
	// DefaultTemplate is used when no template is named on the command line
	DefaultTemplate string `yaml:"default_template"`

	// IncludeCharts toggles chart generation. Nil means unset so a
	// configured false survives the merge with defaults.
	IncludeCharts *bool `yaml:"include_charts"`

	// Format is the default output format (yaml, json, markdown)
	Format string `yaml:"format"`
}

// ChartsEnabled reports whether charts should be generated by default.
// Unset means enabled.
func (r ReportConfig) ChartsEnabled() bool {
	return r.IncludeCharts == nil || *r.IncludeCharts
}

// ReadinessConfig holds the weights for the launch readiness composite
type ReadinessConfig struct {
	CompletionWeight float64 `yaml:"completion_weight"`
	RiskWeight       float64 `yaml:"risk_weight"`
	ArtifactWeight   float64 `yaml:"artifact_weight"`
}

// Weights converts the configured values into scorer weights.
func (r ReadinessConfig) Weights() scoring.ReadinessWeights {
	return scoring.ReadinessWeights{
		Completion: r.CompletionWeight,
		Risk:       r.RiskWeight,
		Artifacts:  r.ArtifactWeight,
	}
}

// ErrConfigNotFound is returned when no workspace directory can be found
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalidConfig is returned when config validation fails
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads config from .liftoff/config.yaml, falling back to defaults.
// It searches for the workspace directory starting from workDir and walking
// up the directory tree. If no workspace is found, returns defaults.
func Load(workDir string) (*Config, error) {
	workspaceDir, err := FindWorkspaceDir(workDir)
	if err != nil {
		// No workspace found, return defaults
		return DefaultConfig(), nil
	}

	configPath := filepath.Join(workspaceDir, ConfigFileName)
	return LoadFromPath(configPath)
}

// LoadFromPath reads config from a specific path.
// Merges loaded config with defaults and validates the result.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Merge with defaults
	merged := Merge(loaded, DefaultConfig())

	// Validate the merged config
	if err := Validate(merged); err != nil {
		return nil, err
	}

	return merged, nil
}

// FindWorkspaceDir locates the .liftoff directory by walking up from startDir.
// Returns the path to the .liftoff directory if found.
func FindWorkspaceDir(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	currentDir := absDir
	for {
		workspaceDir := filepath.Join(currentDir, WorkspaceDirName)
		info, err := os.Stat(workspaceDir)
		if err == nil && info.IsDir() {
			return workspaceDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root, workspace not found
			return "", ErrConfigNotFound
		}
		currentDir = parentDir
	}
}

// EnsureWorkspaceDir creates the .liftoff directory if it doesn't exist.
// Returns the path to the .liftoff directory.
func EnsureWorkspaceDir(workDir string) (string, error) {
	absDir, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	workspaceDir := filepath.Join(absDir, WorkspaceDirName)

	info, err := os.Stat(workspaceDir)
	if err == nil {
		if info.IsDir() {
			return workspaceDir, nil
		}
		return "", fmt.Errorf("%s exists but is not a directory", workspaceDir)
	}

	if err := os.MkdirAll(workspaceDir, 0755); err != nil {
		return "", fmt.Errorf("creating workspace directory: %w", err)
	}

	return workspaceDir, nil
}

// Validate checks that config values are valid.
// Returns an error if validation fails.
func Validate(cfg *Config) error {
	if !IsValidTemplate(cfg.Report.DefaultTemplate) {
		return fmt.Errorf("%w: default_template must be one of %v, got %q",
			ErrInvalidConfig, ValidTemplates, cfg.Report.DefaultTemplate)
	}

	if !IsValidFormat(cfg.Report.Format) {
		return fmt.Errorf("%w: format must be one of %v, got %q",
			ErrInvalidConfig, ValidFormats, cfg.Report.Format)
	}

	weights := []struct {
		name  string
		value float64
	}{
		{"completion_weight", cfg.Readiness.CompletionWeight},
		{"risk_weight", cfg.Readiness.RiskWeight},
		{"artifact_weight", cfg.Readiness.ArtifactWeight},
	}
	for _, w := range weights {
		if w.value < 0 || w.value > 1 {
			return fmt.Errorf("%w: %s must be between 0 and 1, got %f",
				ErrInvalidConfig, w.name, w.value)
		}
	}

	sum := cfg.Readiness.CompletionWeight + cfg.Readiness.RiskWeight + cfg.Readiness.ArtifactWeight
	if math.Abs(sum-1.0) > 0.001 {
		return fmt.Errorf("%w: readiness weights must sum to 1.0, got %.3f",
			ErrInvalidConfig, sum)
	}

	return nil
}

// SaveDefault writes the default configuration to .liftoff/config.yaml in
// workDir. Creates the .liftoff directory if it doesn't exist.
func SaveDefault(workDir string) (string, error) {
	workspaceDir, err := EnsureWorkspaceDir(workDir)
	if err != nil {
		return "", err
	}

	configPath := filepath.Join(workspaceDir, ConfigFileName)

	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists: %s", configPath)
	}

	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}

	// Add header comment
	header := "# liftoff configuration\n# See https://github.com/hargabyte/liftoff for documentation\n\n"
	data = append([]byte(header), data...)

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}

	return configPath, nil
}
