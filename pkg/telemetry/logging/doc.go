// Package logging configures structured logging for Verity using log/slog.
package logging
