package config

import (
	"fmt"
	"strings"
)

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"text":    true,
	"console": true,
}

var validFindingsBackends = map[string]bool{
	"memory": true,
	"sqlite": true,
}

// Validate checks the configuration for invalid or inconsistent values.
func Validate(cfg *Config) error {
	var problems []string

	if cfg.Contracts.Path == "" {
		problems = append(problems, "contracts.path must not be empty")
	}
	if cfg.Contracts.MaxFileSize <= 0 {
		problems = append(problems, "contracts.max_file_size must be positive")
	}
	for _, ext := range cfg.Contracts.Extensions {
		if !strings.HasPrefix(ext, ".") {
			problems = append(problems, fmt.Sprintf("contracts.extensions entry %q must start with '.'", ext))
		}
	}

	if !validFindingsBackends[cfg.Findings.Backend] {
		problems = append(problems, fmt.Sprintf("findings.backend %q must be one of: memory, sqlite", cfg.Findings.Backend))
	}
	if cfg.Findings.Backend == "sqlite" && cfg.Findings.SQLitePath == "" {
		problems = append(problems, "findings.sqlite_path must not be empty for the sqlite backend")
	}
	if cfg.Findings.RetentionDays <= 0 {
		problems = append(problems, "findings.retention_days must be positive")
	}

	if !validLogLevels[cfg.Telemetry.Logging.Level] {
		problems = append(problems, fmt.Sprintf("telemetry.logging.level %q must be one of: debug, info, warn, error", cfg.Telemetry.Logging.Level))
	}
	if !validLogFormats[cfg.Telemetry.Logging.Format] {
		problems = append(problems, fmt.Sprintf("telemetry.logging.format %q must be one of: json, text, console", cfg.Telemetry.Logging.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
