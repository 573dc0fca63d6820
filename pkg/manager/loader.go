package manager

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"verity-hq/verity/pkg/contract/ast"
	"verity-hq/verity/pkg/contract/diag"
	"verity-hq/verity/pkg/contract/parser"
)

// ContractLoader reads contract files from the file system and feeds them to
// the parser. File system failures surface as LoadErrors; parse failures stay
// inside the diagnostics sink so one broken file never aborts a run.
type ContractLoader struct {
	config *LoaderConfig
	parser *parser.Parser
}

// NewContractLoader creates a new contract loader with the given configuration.
func NewContractLoader(config *LoaderConfig, p *parser.Parser) *ContractLoader {
	if config == nil {
		config = DefaultLoaderConfig()
	}
	return &ContractLoader{
		config: config,
		parser: p,
	}
}

// LoadFromFile loads a single contract file from the given path.
// It performs file size and UTF-8 validation before parsing. A nil file with
// a nil error means the file was read but rejected by the parser; the reason
// is in the sink.
func (l *ContractLoader) LoadFromFile(path string, sink *diag.Sink) (*ast.File, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{FilePath: path, Message: "file not found", Cause: err}
		}
		if os.IsPermission(err) {
			return nil, &LoadError{FilePath: path, Message: "permission denied", Cause: err}
		}
		return nil, &LoadError{FilePath: path, Message: "failed to access file", Cause: err}
	}

	if !fileInfo.Mode().IsRegular() {
		return nil, &LoadError{FilePath: path, Message: "not a regular file"}
	}

	if fileInfo.Size() > l.config.MaxFileSize {
		return nil, &LoadError{
			FilePath: path,
			Message:  fmt.Sprintf("file size %d bytes exceeds maximum %d bytes", fileInfo.Size(), l.config.MaxFileSize),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{FilePath: path, Message: "failed to read file", Cause: err}
	}

	if !utf8.Valid(data) {
		return nil, &LoadError{FilePath: path, Message: "file contains invalid UTF-8 encoding"}
	}

	return l.parser.Parse(string(data), path, sink), nil
}

// LoadFromDirectory loads all contract files from the given directory
// recursively. Files that fail to read are collected into the returned
// ErrorList; files that fail to parse report through the sink.
func (l *ContractLoader) LoadFromDirectory(dir string, sink *diag.Sink) ([]*ast.File, error) {
	fileInfo, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{FilePath: dir, Message: "directory not found", Cause: err}
		}
		return nil, &LoadError{FilePath: dir, Message: "failed to access directory", Cause: err}
	}
	if !fileInfo.IsDir() {
		return nil, &LoadError{FilePath: dir, Message: "not a directory"}
	}

	paths, err := l.collectContractFiles(dir)
	if err != nil {
		return nil, err
	}

	var files []*ast.File
	errList := &ErrorList{}

	for _, path := range paths {
		file, err := l.LoadFromFile(path, sink)
		if err != nil {
			errList.Add(err)
			continue
		}
		if file != nil {
			files = append(files, file)
		}
	}

	return files, errList.ToError()
}

// collectContractFiles collects all contract file paths in the directory,
// filtering by extension and hidden-file policy.
func (l *ContractLoader) collectContractFiles(dir string) ([]string, error) {
	var paths []string
	visited := make(map[string]bool)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if l.config.SkipHidden && strings.HasPrefix(d.Name(), ".") && path != dir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			if !l.config.FollowSymlinks {
				return nil
			}

			realPath, err := filepath.EvalSymlinks(path)
			if err != nil {
				return &LoadError{FilePath: path, Message: "failed to resolve symlink", Cause: err}
			}
			if visited[realPath] {
				return &LoadError{FilePath: path, Message: "symlink loop detected"}
			}
			visited[realPath] = true

			if !l.hasValidExtension(realPath) {
				return nil
			}
			paths = append(paths, path)
			return nil
		}

		if !l.hasValidExtension(path) {
			return nil
		}

		paths = append(paths, path)
		return nil
	})

	if err != nil {
		if loadErr, ok := err.(*LoadError); ok {
			return nil, loadErr
		}
		return nil, &LoadError{FilePath: dir, Message: "failed to walk directory", Cause: err}
	}

	return paths, nil
}

// hasValidExtension checks if the file has an allowed contract extension.
func (l *ContractLoader) hasValidExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, validExt := range l.config.AllowedExtensions {
		if ext == strings.ToLower(validExt) {
			return true
		}
	}
	return false
}
