// Package metrics exposes Prometheus metrics for contract parsing and
// validation.
package metrics
