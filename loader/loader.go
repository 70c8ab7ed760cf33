// Package loader reads taxonomy manifests from YAML files. It discovers
// dataset files with glob patterns, parses them into documents, and hands
// the combined record set to the taxonomy validator.
package loader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/privlang/privlang/taxonomy"
)

// DefaultPatterns are the glob patterns used to discover dataset files
// when none are configured.
var DefaultPatterns = []string{"**/*.yml", "**/*.yaml"}

// Document is one parsed dataset file.
type Document struct {
	// ID is a unique identifier assigned at parse time, used to attribute
	// validation errors across multi-file datasets.
	ID string

	// Path is the file path the document was read from.
	Path string

	// Manifest holds the raw records parsed from the file.
	Manifest *taxonomy.Manifest
}

// Loader reads and parses taxonomy dataset files.
type Loader struct {
	logger *slog.Logger
}

// New creates a loader.
func New(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Parse parses raw YAML content into a document. Unknown top-level keys
// and unknown entry fields are ignored, matching the interchange format's
// extension policy.
func (l *Loader) Parse(path string, data []byte) (*Document, error) {
	var manifest taxonomy.Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &Document{
		ID:       uuid.New().String(),
		Path:     path,
		Manifest: &manifest,
	}, nil
}

// ParseFile reads and parses a single dataset file.
func (l *Loader) ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return l.Parse(path, data)
}

// Discover resolves glob patterns to dataset files under root, in stable
// sorted order. Patterns support recursive wildcards (**).
func (l *Loader) Discover(root string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	seen := make(map[string]bool)
	var files []string

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		for _, pattern := range patterns {
			ok, err := doublestar.Match(pattern, rel)
			if err != nil {
				return fmt.Errorf("resolve pattern %q: %w", pattern, err)
			}
			if ok && !seen[path] {
				seen[path] = true
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover dataset files in %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}

// LoadFiles parses a list of dataset files and returns the documents plus
// a combined manifest.
func (l *Loader) LoadFiles(paths []string) ([]*Document, *taxonomy.Manifest, error) {
	combined := &taxonomy.Manifest{}
	docs := make([]*Document, 0, len(paths))

	for _, path := range paths {
		doc, err := l.ParseFile(path)
		if err != nil {
			return nil, nil, err
		}
		l.logger.Debug("Parsed dataset file",
			slog.String("path", path),
			slog.String("document_id", doc.ID),
			slog.Int("records", doc.Manifest.Len()))
		docs = append(docs, doc)
		combined.Append(doc.Manifest)
	}

	return docs, combined, nil
}

// LoadDir discovers, parses, and validates every dataset file under root,
// returning the built taxonomy.
func (l *Loader) LoadDir(root string, patterns []string) (*taxonomy.Taxonomy, error) {
	files, err := l.Discover(root, patterns)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no dataset files found in %s", root)
	}

	_, manifest, err := l.LoadFiles(files)
	if err != nil {
		return nil, err
	}

	tax, err := taxonomy.BuildTaxonomy(manifest)
	if err != nil {
		return nil, fmt.Errorf("validate %s: %w", root, err)
	}

	l.logger.Debug("Loaded taxonomy",
		slog.String("root", root),
		slog.Int("files", len(files)),
		slog.Int("entries", tax.Len()))
	return tax, nil
}

// LoadPath loads a taxonomy from a single file or a directory.
func (l *Loader) LoadPath(path string) (*taxonomy.Taxonomy, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return l.LoadDir(path, nil)
	}

	doc, err := l.ParseFile(path)
	if err != nil {
		return nil, err
	}
	tax, err := taxonomy.BuildTaxonomy(doc.Manifest)
	if err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	return tax, nil
}
