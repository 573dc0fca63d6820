// Package telemetry groups Verity's observability subpackages.
//
// Subpackages:
//   - logging: structured logging built on log/slog
//   - metrics: Prometheus metrics for parsing and validation
package telemetry
