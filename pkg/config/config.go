package config

import "time"

// Config is the root configuration structure for Verity. It contains the
// configuration sections for contract ingestion, the findings audit trail,
// and telemetry.
type Config struct {
	// Contracts contains configuration for contract loading: source
	// directory, file filtering, and watch mode.
	Contracts ContractsConfig `yaml:"contracts"`

	// Findings contains configuration for persisting validation findings,
	// including backend selection and retention.
	Findings FindingsConfig `yaml:"findings"`

	// Telemetry contains configuration for logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ContractsConfig contains configuration for contract and datasource file
// ingestion.
type ContractsConfig struct {
	// Path is the file or directory contracts are loaded from.
	// Default: "./contracts"
	Path string `yaml:"path"`

	// Extensions lists the file extensions treated as contract documents.
	// Default: [".yaml", ".yml"]
	Extensions []string `yaml:"extensions"`

	// MaxFileSize is the maximum size in bytes of a single contract file.
	// Larger files are rejected before parsing. Default: 10485760 (10MB)
	MaxFileSize int64 `yaml:"max_file_size"`

	// SkipHidden controls whether hidden files and directories are ignored
	// while scanning. Default: true
	SkipHidden bool `yaml:"skip_hidden"`

	// FollowSymlinks controls whether symbolic links are followed while
	// scanning. Default: false
	FollowSymlinks bool `yaml:"follow_symlinks"`

	// Watch enables reload-on-change for the contract source.
	// Default: false
	Watch bool `yaml:"watch"`

	// WatchDebounce is the quiet period after a file event before a reload
	// is triggered. Default: 100ms
	WatchDebounce time.Duration `yaml:"watch_debounce"`

	// Variables are substituted into ${NAME} placeholders before parsing.
	Variables map[string]string `yaml:"variables"`

	// CatalogPath is the SQLite file the validated contract index is
	// snapshotted to. Empty disables the catalog. Default: ""
	CatalogPath string `yaml:"catalog_path"`
}

// FindingsConfig contains configuration for the findings audit trail.
type FindingsConfig struct {
	// Enabled turns finding persistence on. Default: false
	Enabled bool `yaml:"enabled"`

	// Backend selects the storage backend: "memory" or "sqlite".
	// Default: "memory"
	Backend string `yaml:"backend"`

	// SQLitePath is the database file path for the sqlite backend.
	// Default: "data/findings.db"
	SQLitePath string `yaml:"sqlite_path"`

	// RetentionDays is how long findings are kept before pruning.
	// Default: 90
	RetentionDays int `yaml:"retention_days"`

	// PruneSchedule is the cron expression for scheduled pruning.
	// Empty disables the scheduler. Default: "0 3 * * *"
	PruneSchedule string `yaml:"prune_schedule"`
}

// TelemetryConfig contains configuration for logging and metrics.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains configuration for structured logging.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format: "json", "text", "console".
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file:line of the call site in log output.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains configuration for prometheus metrics.
type MetricsConfig struct {
	// Enabled turns metric collection on. Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix. Default: "verity"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem label. Default: "contracts"
	Subsystem string `yaml:"subsystem"`
}
