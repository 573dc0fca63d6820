package metrics

import (
	"time"

	"verity-hq/verity/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ContractMetrics tracks metrics related to contract parsing and validation.
//
// Metrics:
//   - verity_files_parsed_total: Total files parsed by kind and outcome
//   - verity_parse_duration_seconds: Parse duration per file
//   - verity_diagnostics_total: Diagnostics emitted by severity
//   - verity_validation_duration_seconds: Semantic validation duration
type ContractMetrics struct {
	// Total files handed to the parser
	filesParsedTotal *prometheus.CounterVec

	// Per-file parse duration histogram
	parseDuration prometheus.Histogram

	// Diagnostics emitted, by severity
	diagnosticsTotal *prometheus.CounterVec

	// Semantic validation duration histogram
	validationDuration prometheus.Histogram
}

// NewContractMetrics creates and registers contract metrics with the provided registry.
func NewContractMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ContractMetrics {
	cm := &ContractMetrics{
		filesParsedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "files_parsed_total",
				Help:      "Total number of files handed to the parser",
			},
			[]string{"kind", "outcome"},
		),

		parseDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parse_duration_seconds",
				Help:      "Duration of parsing a single file in seconds",
				// Parsing a single YAML file should be fast (< 10ms)
				Buckets: prometheus.ExponentialBuckets(0.000001, 2, 15), // 1µs to 16ms
			},
		),

		diagnosticsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "diagnostics_total",
				Help:      "Total number of diagnostics emitted",
			},
			[]string{"severity"},
		),

		validationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "validation_duration_seconds",
				Help:      "Duration of semantic validation in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.000001, 2, 15),
			},
		),
	}

	// Register all metrics
	registry.MustRegister(
		cm.filesParsedTotal,
		cm.parseDuration,
		cm.diagnosticsTotal,
		cm.validationDuration,
	)

	return cm
}

// RecordParse records a single parsed file.
//
// Parameters:
//   - kind: File kind ("contract", "datasource", "other") or "rejected" when
//     parsing produced no file
//   - outcome: "ok" or "error"
//   - duration: Time taken to parse the file
func (cm *ContractMetrics) RecordParse(kind, outcome string, duration time.Duration) {
	cm.filesParsedTotal.WithLabelValues(kind, outcome).Inc()
	cm.parseDuration.Observe(duration.Seconds())
}

// RecordDiagnostics records diagnostics emitted during a parse or validation run.
func (cm *ContractMetrics) RecordDiagnostics(severity string, count int) {
	if count <= 0 {
		return
	}
	cm.diagnosticsTotal.WithLabelValues(severity).Add(float64(count))
}

// RecordValidation records the duration of a semantic validation pass.
func (cm *ContractMetrics) RecordValidation(duration time.Duration) {
	cm.validationDuration.Observe(duration.Seconds())
}
