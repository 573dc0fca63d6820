// Package cli provides shared helpers for the verity command line tool.
package cli
