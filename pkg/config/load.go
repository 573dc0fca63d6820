package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any
// errors. Environment variables are not consulted; use
// LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies environment variable overrides. Variables follow the naming
// convention VERITY_SECTION_FIELD (e.g. VERITY_CONTRACTS_PATH) and always
// take precedence over file-based configuration.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies VERITY_* environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("VERITY_CONTRACTS_PATH"); val != "" {
		cfg.Contracts.Path = val
	}
	if val := os.Getenv("VERITY_CONTRACTS_MAX_FILE_SIZE"); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Contracts.MaxFileSize = n
		}
	}
	if val := os.Getenv("VERITY_CONTRACTS_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Contracts.Watch = b
		}
	}
	if val := os.Getenv("VERITY_CONTRACTS_WATCH_DEBOUNCE"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Contracts.WatchDebounce = d
		}
	}
	if val := os.Getenv("VERITY_CONTRACTS_CATALOG_PATH"); val != "" {
		cfg.Contracts.CatalogPath = val
	}

	if val := os.Getenv("VERITY_FINDINGS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Findings.Enabled = b
		}
	}
	if val := os.Getenv("VERITY_FINDINGS_BACKEND"); val != "" {
		cfg.Findings.Backend = val
	}
	if val := os.Getenv("VERITY_FINDINGS_SQLITE_PATH"); val != "" {
		cfg.Findings.SQLitePath = val
	}
	if val := os.Getenv("VERITY_FINDINGS_RETENTION_DAYS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.Findings.RetentionDays = n
		}
	}
	if val := os.Getenv("VERITY_FINDINGS_PRUNE_SCHEDULE"); val != "" {
		cfg.Findings.PruneSchedule = val
	}

	if val := os.Getenv("VERITY_LOG_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("VERITY_LOG_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("VERITY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
}
