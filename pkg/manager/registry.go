package manager

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"sync"
	"time"

	"verity-hq/verity/pkg/contract/ast"
)

// ContractRegistry is a thread-safe in-memory store for the currently active
// set of parsed contract files. Updates are atomic: Replace swaps the whole
// set, so readers never observe a half-loaded state.
type ContractRegistry struct {
	mu       sync.RWMutex
	files    map[string]*ast.File
	version  string
	loadTime time.Time
}

// NewContractRegistry creates a new empty registry.
func NewContractRegistry() *ContractRegistry {
	return &ContractRegistry{
		files:    make(map[string]*ast.File),
		loadTime: time.Now(),
	}
}

// Replace atomically replaces the registered file set.
func (r *ContractRegistry) Replace(files []*ast.File) error {
	for _, f := range files {
		if f == nil {
			return &RegistryError{Operation: "replace", Message: "file cannot be nil"}
		}
		if f.Path == "" {
			return &RegistryError{Operation: "replace", Message: "file path cannot be empty"}
		}
	}

	newFiles := make(map[string]*ast.File, len(files))
	for _, f := range files {
		newFiles[f.Path] = f
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.files = newFiles
	r.loadTime = time.Now()
	r.updateVersion()

	return nil
}

// Get retrieves a file by path.
func (r *ContractRegistry) Get(path string) (*ast.File, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.files[path]
	return f, ok
}

// GetAll retrieves all registered files, sorted by path.
func (r *ContractRegistry) GetAll() []*ast.File {
	r.mu.RLock()
	defer r.mu.RUnlock()

	paths := make([]string, 0, len(r.files))
	for p := range r.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	files := make([]*ast.File, 0, len(paths))
	for _, p := range paths {
		files = append(files, r.files[p])
	}
	return files
}

// GetByKind retrieves all registered files of the given kind, sorted by path.
func (r *ContractRegistry) GetByKind(kind ast.FileKind) []*ast.File {
	var out []*ast.File
	for _, f := range r.GetAll() {
		if f.Kind() == kind {
			out = append(out, f)
		}
	}
	return out
}

// Count returns the number of registered files.
func (r *ContractRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.files)
}

// Clear removes all files from the registry.
func (r *ContractRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.files = make(map[string]*ast.File)
	r.updateVersion()
}

// Version returns the current registry version. It changes whenever the
// registered set changes.
func (r *ContractRegistry) Version() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.version
}

// LoadTime returns when the registry was last replaced.
func (r *ContractRegistry) LoadTime() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.loadTime
}

// updateVersion recomputes the version hash from the registered file
// contents. Must be called with the write lock held.
func (r *ContractRegistry) updateVersion() {
	h := sha256.New()

	paths := make([]string, 0, len(r.files))
	for p := range r.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		f := r.files[p]
		h.Write([]byte(f.Path))
		h.Write([]byte(f.Content))
	}

	r.version = fmt.Sprintf("%x", h.Sum(nil))[:16]
}
