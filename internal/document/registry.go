package document

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrExtractorNotFound is returned when no extractor handles an extension.
	ErrExtractorNotFound = errors.New("no extractor registered for file type")
	// ErrExtractorExists is returned when registering a duplicate extension.
	ErrExtractorExists = errors.New("extractor already registered")
)

// Registry maps file extensions to document extractors.
type Registry struct {
	mu         sync.RWMutex
	extractors map[string]Extractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[string]Extractor),
	}
}

// DefaultRegistry returns a registry with the built-in extractors.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(".txt", TextExtractor{})
	r.Register(".md", NewMarkdownExtractor())
	return r
}

// Register adds an extractor for a file extension (e.g. ".md").
func (r *Registry) Register(ext string, e Extractor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ext = strings.ToLower(ext)
	if _, exists := r.extractors[ext]; exists {
		return fmt.Errorf("%w: %s", ErrExtractorExists, ext)
	}

	r.extractors[ext] = e
	return nil
}

// ForPath retrieves the extractor for a path's extension, case-insensitively.
func (r *Registry) ForPath(path string) (Extractor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ext := strings.ToLower(filepath.Ext(path))
	e, exists := r.extractors[ext]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrExtractorNotFound, ext)
	}

	return e, nil
}

// Extensions returns all registered extensions, sorted.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.extractors))
	for ext := range r.extractors {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
