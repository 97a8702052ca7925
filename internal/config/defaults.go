package config

import "github.com/hargabyte/liftoff/internal/scoring"

// DefaultConfig returns configuration with sensible defaults.
// These defaults are used when no config file exists or when
// config file is missing specific fields.
func DefaultConfig() *Config {
	weights := scoring.DefaultReadinessWeights()
	return &Config{
		Report: ReportConfig{
			DefaultTemplate: "executive-summary",
			IncludeCharts:   boolPtr(true),
			Format:          "markdown",
		},
		Readiness: ReadinessConfig{
			CompletionWeight: weights.Completion,
			RiskWeight:       weights.Risk,
			ArtifactWeight:   weights.Artifacts,
		},
	}
}

// Merge merges loaded config with defaults.
// Values from loaded config take precedence over defaults.
// Returns a new Config with merged values.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{}

	// Merge Report config
	result.Report = mergeReportConfig(loaded.Report, defaults.Report)

	// Merge Readiness config
	result.Readiness = mergeReadinessConfig(loaded.Readiness, defaults.Readiness)

	return result
}

func mergeReportConfig(loaded, defaults ReportConfig) ReportConfig {
	result := ReportConfig{}

	// DefaultTemplate: use loaded if non-empty
	if loaded.DefaultTemplate != "" {
		result.DefaultTemplate = loaded.DefaultTemplate
	} else {
		result.DefaultTemplate = defaults.DefaultTemplate
	}

	// IncludeCharts: the pointer distinguishes unset from explicit false
	if loaded.IncludeCharts != nil {
		result.IncludeCharts = loaded.IncludeCharts
	} else {
		result.IncludeCharts = defaults.IncludeCharts
	}

	// Format: use loaded if non-empty
	if loaded.Format != "" {
		result.Format = loaded.Format
	} else {
		result.Format = defaults.Format
	}

	return result
}

func mergeReadinessConfig(loaded, defaults ReadinessConfig) ReadinessConfig {
	// The three weights only make sense together; a partial override would
	// silently break the sum-to-one requirement. All-or-nothing.
	if loaded.CompletionWeight == 0 && loaded.RiskWeight == 0 && loaded.ArtifactWeight == 0 {
		return defaults
	}
	return loaded
}

// ValidTemplates lists the report template ids accepted in configuration
var ValidTemplates = []string{"executive-summary", "detailed-analysis", "investor-pitch"}

// IsValidTemplate checks if the given template id is valid
func IsValidTemplate(template string) bool {
	for _, valid := range ValidTemplates {
		if template == valid {
			return true
		}
	}
	return false
}

// ValidFormats lists the valid values for the report output format
var ValidFormats = []string{"yaml", "json", "markdown"}

// IsValidFormat checks if the given format value is valid
func IsValidFormat(format string) bool {
	for _, valid := range ValidFormats {
		if format == valid {
			return true
		}
	}
	return false
}

func boolPtr(b bool) *bool {
	return &b
}
