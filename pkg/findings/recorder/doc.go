// Package recorder persists diagnostics as findings under validation
// sessions.
package recorder
