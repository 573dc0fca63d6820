package config

import "time"

// Default values for configuration fields.
const (
	DefaultContractsPath  = "./contracts"
	DefaultMaxFileSize    = 10 * 1024 * 1024 // 10MB
	DefaultSkipHidden     = true
	DefaultFollowSymlinks = false
	DefaultWatch          = false
	DefaultWatchDebounce  = 100 * time.Millisecond

	DefaultFindingsEnabled    = false
	DefaultFindingsBackend    = "memory"
	DefaultFindingsSQLitePath = "data/findings.db"
	DefaultRetentionDays      = 90
	DefaultPruneSchedule      = "0 3 * * *"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	DefaultMetricsEnabled   = true
	DefaultMetricsNamespace = "verity"
	DefaultMetricsSubsystem = "contracts"
)

// ApplyDefaults fills unset configuration fields with default values.
func ApplyDefaults(cfg *Config) {
	if cfg.Contracts.Path == "" {
		cfg.Contracts.Path = DefaultContractsPath
	}
	if len(cfg.Contracts.Extensions) == 0 {
		cfg.Contracts.Extensions = []string{".yaml", ".yml"}
	}
	if cfg.Contracts.MaxFileSize <= 0 {
		cfg.Contracts.MaxFileSize = DefaultMaxFileSize
	}
	if cfg.Contracts.WatchDebounce <= 0 {
		cfg.Contracts.WatchDebounce = DefaultWatchDebounce
	}

	if cfg.Findings.Backend == "" {
		cfg.Findings.Backend = DefaultFindingsBackend
	}
	if cfg.Findings.SQLitePath == "" {
		cfg.Findings.SQLitePath = DefaultFindingsSQLitePath
	}
	if cfg.Findings.RetentionDays <= 0 {
		cfg.Findings.RetentionDays = DefaultRetentionDays
	}
	if cfg.Findings.PruneSchedule == "" {
		cfg.Findings.PruneSchedule = DefaultPruneSchedule
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
}

// DefaultConfig returns a configuration with every field set to its default.
func DefaultConfig() *Config {
	cfg := &Config{
		Contracts: ContractsConfig{
			SkipHidden:     DefaultSkipHidden,
			FollowSymlinks: DefaultFollowSymlinks,
			Watch:          DefaultWatch,
		},
		Findings: FindingsConfig{
			Enabled: DefaultFindingsEnabled,
		},
		Telemetry: TelemetryConfig{
			Metrics: MetricsConfig{Enabled: DefaultMetricsEnabled},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}
