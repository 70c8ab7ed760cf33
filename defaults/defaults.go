// Package defaults ships the system-provided privacy taxonomy as embedded
// YAML datasets. The shipped taxonomy is a versioned artifact: it never
// changes at runtime, and user-defined vocabularies are modeled as a second
// taxonomy merged by the caller via taxonomy.Merge.
package defaults

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/privlang/privlang/loader"
	"github.com/privlang/privlang/taxonomy"
)

//go:embed data/*.yml
var dataFS embed.FS

// Manifest returns the raw records of the shipped taxonomy.
func Manifest() (*taxonomy.Manifest, error) {
	files, err := fs.Glob(dataFS, "data/*.yml")
	if err != nil {
		return nil, err
	}

	l := loader.New(nil)
	combined := &taxonomy.Manifest{}
	for _, name := range files {
		data, err := dataFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read embedded dataset %s: %w", name, err)
		}
		doc, err := l.Parse(name, data)
		if err != nil {
			return nil, err
		}
		combined.Append(doc.Manifest)
	}
	return combined, nil
}

// Load builds the shipped taxonomy. The embedded dataset is validated like
// any other input, so a broken shipped dataset fails loudly rather than
// producing a partial taxonomy.
func Load() (*taxonomy.Taxonomy, error) {
	manifest, err := Manifest()
	if err != nil {
		return nil, err
	}
	tax, err := taxonomy.BuildTaxonomy(manifest)
	if err != nil {
		return nil, fmt.Errorf("validate embedded taxonomy: %w", err)
	}
	return tax, nil
}
