// Package export serializes built taxonomies back into their interchange
// formats. Output is stable: entries are emitted in ascending fides_key
// order per vocabulary, so repeated exports of the same taxonomy are
// byte-identical.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/privlang/privlang/taxonomy"
)

// Format identifies a serialization format.
type Format string

const (
	// FormatYAML is the native dataset format.
	FormatYAML Format = "yaml"

	// FormatJSON is line-tool-friendly JSON.
	FormatJSON Format = "json"
)

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatYAML: {
		Name:        FormatYAML,
		MIMEType:    "application/yaml",
		Extension:   ".yml",
		Description: "YAML - native taxonomy dataset format",
	},
	FormatJSON: {
		Name:        FormatJSON,
		MIMEType:    "application/json",
		Extension:   ".json",
		Description: "JSON - indented taxonomy records",
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// ParseFormat resolves a format name, accepting common aliases.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown export format: %s", name)
}

// Write serializes the taxonomy to w in the given format.
func Write(w io.Writer, tax *taxonomy.Taxonomy, format Format) error {
	manifest := tax.Manifest()

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(manifest); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()

	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(manifest); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}

	return fmt.Errorf("unknown export format: %s", format)
}

// Marshal serializes the taxonomy to bytes in the given format.
func Marshal(tax *taxonomy.Taxonomy, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, tax, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
