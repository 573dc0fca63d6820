package manager

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"verity-hq/verity/pkg/config"
	"verity-hq/verity/pkg/contract/ast"
	"verity-hq/verity/pkg/contract/diag"
	"verity-hq/verity/pkg/contract/parser"
	"verity-hq/verity/pkg/findings/recorder"
	"verity-hq/verity/pkg/telemetry/metrics"
)

// ContractManager orchestrates the contract pipeline: load files from disk,
// parse, validate cross-file semantics, publish the result to the registry,
// and optionally snapshot it to the catalog, persist findings, and watch for
// changes.
type ContractManager struct {
	config   *config.ContractsConfig
	registry *ContractRegistry
	catalog  *Catalog
	recorder *recorder.Recorder
	metrics  *metrics.ContractMetrics
	logger   *slog.Logger
	watcher  *FileWatcher
}

// ManagerOption configures optional manager collaborators.
type ManagerOption func(*ContractManager)

// WithCatalog attaches a catalog the manager snapshots validated sets to.
func WithCatalog(c *Catalog) ManagerOption {
	return func(m *ContractManager) { m.catalog = c }
}

// WithRecorder attaches a findings recorder; every run's diagnostics are
// persisted under a fresh session.
func WithRecorder(r *recorder.Recorder) ManagerOption {
	return func(m *ContractManager) { m.recorder = r }
}

// WithMetrics attaches run metrics.
func WithMetrics(cm *metrics.ContractMetrics) ManagerOption {
	return func(m *ContractManager) { m.metrics = cm }
}

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *ContractManager) { m.logger = logger }
}

// NewContractManager creates a manager over the given contracts configuration.
func NewContractManager(cfg *config.ContractsConfig, opts ...ManagerOption) *ContractManager {
	m := &ContractManager{
		config:   cfg,
		registry: NewContractRegistry(),
		logger:   slog.Default().With("component", "manager"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Registry returns the registry holding the active contract set.
func (m *ContractManager) Registry() *ContractRegistry {
	return m.registry
}

// Load runs the full pipeline once and atomically publishes the result.
// The registry is replaced even when the run has errors: diagnostics describe
// the set that is actually active.
func (m *ContractManager) Load(ctx context.Context) (*LoadResult, error) {
	start := time.Now()
	sink := diag.NewSink()

	p := parser.NewParser(parser.WithResolver(m.buildResolver()))
	loader := NewContractLoader(m.loaderConfig(), p)

	result := &LoadResult{Sink: sink}

	info, err := os.Stat(m.config.Path)
	if err != nil {
		return nil, &LoadError{FilePath: m.config.Path, Message: "failed to access contract source", Cause: err}
	}

	if info.IsDir() {
		files, err := loader.LoadFromDirectory(m.config.Path, sink)
		if err != nil {
			if errList, ok := err.(*ErrorList); ok {
				result.IOErrors = errList.Errors
			} else {
				result.IOErrors = []error{err}
			}
		}
		result.Files = files
	} else {
		file, err := loader.LoadFromFile(m.config.Path, sink)
		if err != nil {
			result.IOErrors = []error{err}
		}
		if file != nil {
			result.Files = []*ast.File{file}
		}
	}

	validationStart := time.Now()
	p.ValidateSemantics(sink)
	validationDuration := time.Since(validationStart)

	if err := m.registry.Replace(result.Files); err != nil {
		return nil, err
	}

	result.Version = m.registry.Version()
	result.FileCount = len(result.Files)
	result.LoadTime = time.Since(start)

	m.publish(ctx, result, validationDuration)

	m.logger.Info("contract load completed",
		"files", result.FileCount,
		"errors", sink.CountSeverity(diag.SeverityError),
		"warnings", sink.CountSeverity(diag.SeverityWarning),
		"version", result.Version,
		"duration_ms", result.LoadTime.Milliseconds(),
	)

	return result, nil
}

// publish sends the run's outcome to the optional collaborators.
func (m *ContractManager) publish(ctx context.Context, result *LoadResult, validationDuration time.Duration) {
	if m.metrics != nil {
		for _, f := range result.Files {
			m.metrics.RecordParse(string(f.Kind()), "ok", 0)
		}
		m.metrics.RecordDiagnostics("error", result.Sink.CountSeverity(diag.SeverityError))
		m.metrics.RecordDiagnostics("warning", result.Sink.CountSeverity(diag.SeverityWarning))
		m.metrics.RecordDiagnostics("debug", result.Sink.CountSeverity(diag.SeverityDebug))
		m.metrics.RecordValidation(validationDuration)
	}

	if m.catalog != nil && result.Success() {
		if err := m.catalog.Record(ctx, result.Version, result.Files); err != nil {
			m.logger.Error("failed to record catalog snapshot", "error", err)
		}
	}

	if m.recorder != nil {
		session := m.recorder.BeginSession()
		if _, err := m.recorder.Record(ctx, session, result.Sink); err != nil {
			m.logger.Error("failed to persist findings", "session_id", session.ID, "error", err)
		}
	}
}

// Watch starts watching the contract source and reloads on change. Blocks
// until the context is cancelled.
func (m *ContractManager) Watch(ctx context.Context) error {
	if !m.config.Watch {
		return fmt.Errorf("watch mode is disabled in configuration")
	}

	watcher, err := NewFileWatcher(&WatcherConfig{
		Path:             m.config.Path,
		DebounceInterval: m.config.WatchDebounce,
		Extensions:       m.config.Extensions,
		SkipHidden:       m.config.SkipHidden,
	}, m.logger)
	if err != nil {
		return err
	}
	m.watcher = watcher

	return watcher.Watch(ctx, func() error {
		_, err := m.Load(ctx)
		return err
	})
}

// Close stops the watcher and releases the catalog.
func (m *ContractManager) Close() error {
	if m.watcher != nil {
		if err := m.watcher.Stop(); err != nil {
			return err
		}
	}
	if m.catalog != nil {
		return m.catalog.Close()
	}
	return nil
}

// buildResolver builds the variable resolver: configured variables win over
// process environment.
func (m *ContractManager) buildResolver() parser.Resolver {
	if len(m.config.Variables) > 0 {
		return parser.NewMapResolver(m.config.Variables)
	}
	return parser.NewEnvResolver()
}

// loaderConfig maps the contracts configuration onto the loader's.
func (m *ContractManager) loaderConfig() *LoaderConfig {
	cfg := DefaultLoaderConfig()
	if m.config.MaxFileSize > 0 {
		cfg.MaxFileSize = m.config.MaxFileSize
	}
	if len(m.config.Extensions) > 0 {
		cfg.AllowedExtensions = m.config.Extensions
	}
	cfg.SkipHidden = m.config.SkipHidden
	cfg.FollowSymlinks = m.config.FollowSymlinks
	return cfg
}
