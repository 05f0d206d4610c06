// =============================================================================
// Clinical Catalog Builder - JSON Writer Module
// =============================================================================
//
// This module serializes catalogs for the client application. The output is
// a single JSON array of flat objects:
//
//   [{"code":"A09","label":"Diarrea y gastroenteritis de presunto origen infeccioso"}, ...]
//
// Non-ASCII characters are written literally (no \u escapes), and HTML
// characters such as "<" and "&" are not escaped either. The array is
// compact unless an indent string is given.
//
// =============================================================================

package jsonwriter

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ginjaninja78/clinical-catalog/internal/types"
)

// =============================================================================
// GENERATION OPTIONS
// =============================================================================

// Options contains options for JSON generation.
type Options struct {
	// Indent is the per-level indentation. Empty means compact output.
	Indent string
}

// Compact returns options for single-line output.
func Compact() Options {
	return Options{}
}

// Indented returns options for two-space indented output.
func Indented() Options {
	return Options{Indent: "  "}
}

// =============================================================================
// GENERATION FUNCTIONS
// =============================================================================

// WriteRecords writes CIE-10 records as a JSON array.
// A nil slice is written as an empty array.
func WriteRecords(w io.Writer, records []types.Record, opts Options) error {
	if records == nil {
		records = []types.Record{}
	}
	return write(w, records, opts)
}

// WriteProcedures writes CUPS procedures as a JSON array.
func WriteProcedures(w io.Writer, procedures []types.Procedure, opts Options) error {
	if procedures == nil {
		procedures = []types.Procedure{}
	}
	return write(w, procedures, opts)
}

func write(w io.Writer, v any, opts Options) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if opts.Indent != "" {
		enc.SetIndent("", opts.Indent)
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// =============================================================================
// READING
// =============================================================================

// ReadRecords decodes a CIE-10 catalog. Objects carrying fields other than
// "code" and "label" are rejected.
func ReadRecords(r io.Reader) ([]types.Record, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var records []types.Record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return records, nil
}
