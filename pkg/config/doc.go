// Package config defines Verity's configuration model and loading.
//
// Configuration is read from a YAML file, filled with defaults, optionally
// overridden by VERITY_* environment variables, and validated before use.
package config
