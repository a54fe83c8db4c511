package retriever

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Document is a named unit of source text, one per knowledge file.
// Documents are immutable once loaded and replaced wholesale on reload.
type Document struct {
	Name string
	Text string
}

// Chunk is a contiguous span of a document's text selected for retrieval.
type Chunk struct {
	Text   string
	Source string
}

// Options controls corpus loading, chunking, and scoring.
type Options struct {
	Include       []string // filename globs, e.g. "*.txt"
	Exclude       []string
	MinChunkChars int     // chunks at or below this length are discarded
	MergeCapChars int     // greedy paragraph merge stops before exceeding this
	MinSimilarity float64 // relevance floor for retrieval
}

// DefaultOptions returns the standard corpus options.
func DefaultOptions() Options {
	return Options{
		Include:       []string{"*.txt", "*.md"},
		MinChunkChars: 50,
		MergeCapChars: 500,
		MinSimilarity: 0.05,
	}
}

// matchesPatterns reports whether name matches any of the given globs.
func matchesPatterns(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, name); err == nil && matched {
			return true
		}
	}
	return false
}

// loadDocuments reads every matching file in dir. Unreadable files are
// skipped and reported through the returned error slice; a missing
// directory yields an empty corpus rather than an error.
func loadDocuments(dir string, opts Options) ([]Document, []error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, []error{fmt.Errorf("reading corpus directory %s: %w", dir, err)}
	}

	var docs []Document
	var errs []error
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !matchesPatterns(name, opts.Include) || matchesPatterns(name, opts.Exclude) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			errs = append(errs, fmt.Errorf("reading %s: %w", name, err))
			continue
		}
		docs = append(docs, Document{Name: name, Text: string(data)})
	}
	return docs, errs
}
