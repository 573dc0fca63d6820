package manager

import (
	"time"

	"verity-hq/verity/pkg/contract/ast"
	"verity-hq/verity/pkg/contract/diag"
)

// LoaderConfig contains configuration for the contract loader.
type LoaderConfig struct {
	// MaxFileSize is the maximum file size in bytes (default: 10MB)
	MaxFileSize int64

	// AllowedExtensions is the list of allowed file extensions (default: [".yaml", ".yml"])
	AllowedExtensions []string

	// FollowSymlinks controls whether to follow symbolic links (default: true)
	FollowSymlinks bool

	// SkipHidden controls whether to skip hidden files/directories (default: true)
	SkipHidden bool
}

// DefaultLoaderConfig returns the default loader configuration.
func DefaultLoaderConfig() *LoaderConfig {
	return &LoaderConfig{
		MaxFileSize:       10 * 1024 * 1024, // 10MB
		AllowedExtensions: []string{".yaml", ".yml"},
		FollowSymlinks:    true,
		SkipHidden:        true,
	}
}

// LoadResult contains the results of a load-and-validate run.
type LoadResult struct {
	// Files is the list of successfully parsed files.
	Files []*ast.File

	// Sink holds every diagnostic emitted during the run.
	Sink *diag.Sink

	// IOErrors is the list of file system errors encountered. These are
	// distinct from diagnostics: a file that cannot be read never reaches
	// the parser.
	IOErrors []error

	// LoadTime is the duration of the run.
	LoadTime time.Duration

	// Version identifies the registry state produced by this run.
	Version string

	// FileCount is the number of files processed.
	FileCount int
}

// Success reports whether the run produced no error diagnostics and no
// file system errors.
func (r *LoadResult) Success() bool {
	return len(r.IOErrors) == 0 && !r.Sink.HasErrors()
}
