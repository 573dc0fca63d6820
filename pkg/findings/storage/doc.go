// Package storage provides persistence backends for findings.
//
// Two backends are available: an in-memory map for CLI runs and tests, and
// a SQLite database for long-lived deployments.
package storage
