// =============================================================================
// Clinical Catalog Builder - Transformation Engine
// =============================================================================
//
// This module turns raw CIE-10 rows into catalog records.
//
// PIPELINE (per row, in source order):
//   1. Acceptance filter  - skip ranges ("A00-B99") and non-code rows
//   2. Code normalization - "  j06.9 " -> "J069"
//   3. Label normalization - collapse whitespace runs to single spaces
//   4. Deduplication      - the first row with a normalized code wins
//
// After the last row the records are sorted by code.
//
// Rejected rows are never errors. The source table mixes chapter ranges and
// section markers with real codes, and those rows are expected.
//
// =============================================================================

package converter

import (
	"sort"
	"strings"
	"unicode"

	"github.com/ginjaninja78/clinical-catalog/internal/types"
	"github.com/ginjaninja78/clinical-catalog/internal/validation"
)

// =============================================================================
// NORMALIZATION FUNCTIONS
// =============================================================================

// NormalizeCode returns the catalog key for a raw code.
//
// EXAMPLE:
//
//	NormalizeCode(" j06.9 ") == "J069"
//	NormalizeCode("A09.")    == "A09"
func NormalizeCode(raw string) string {
	code := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '.' {
			return -1
		}
		return r
	}, raw)
	return strings.ToUpper(code)
}

// NormalizeLabel trims a description and collapses every whitespace run
// (spaces, tabs, newlines, non-breaking spaces) to one space. Letters are
// left untouched.
func NormalizeLabel(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// =============================================================================
// TRANSFORMER
// =============================================================================

// Stats counts what happened to each source row.
type Stats struct {
	// RowsRead is the number of non-empty data rows seen.
	RowsRead int

	// Rejected rows failed the acceptance filter.
	Rejected int

	// Ranges is the subset of Rejected that matched the range pattern.
	Ranges int

	// EmptyCodes were accepted but normalized to nothing.
	EmptyCodes int

	// Duplicates repeated an already emitted normalized code.
	Duplicates int

	// Emitted is the number of records in the output.
	Emitted int
}

// Transformer accumulates records for one source table.
// It is not safe for concurrent use.
type Transformer struct {
	matcher *validation.CodeMatcher
	seen    map[string]struct{}
	records []types.Record
	stats   Stats
}

// NewTransformer creates a Transformer that accepts codes with matcher.
// A nil matcher uses the default CIE-10 rule.
func NewTransformer(matcher *validation.CodeMatcher) *Transformer {
	if matcher == nil {
		matcher = validation.DefaultCodeRule().MustCompile()
	}
	return &Transformer{
		matcher: matcher,
		seen:    make(map[string]struct{}),
	}
}

// Add processes one source row and reports whether it produced a record.
func (t *Transformer) Add(rawCode, rawDescription string) bool {
	t.stats.RowsRead++

	if !t.matcher.Accept(rawCode) {
		t.stats.Rejected++
		if t.matcher.IsRange(rawCode) {
			t.stats.Ranges++
		}
		return false
	}

	code := NormalizeCode(rawCode)
	if code == "" {
		t.stats.EmptyCodes++
		return false
	}

	if _, dup := t.seen[code]; dup {
		t.stats.Duplicates++
		return false
	}

	t.seen[code] = struct{}{}
	t.records = append(t.records, types.Record{
		Code:  code,
		Label: NormalizeLabel(rawDescription),
	})
	t.stats.Emitted++
	return true
}

// Records sorts the accumulated records by code and returns them.
// The returned slice is never nil.
func (t *Transformer) Records() []types.Record {
	sort.Slice(t.records, func(i, j int) bool {
		return t.records[i].Code < t.records[j].Code
	})
	if t.records == nil {
		return []types.Record{}
	}
	return t.records
}

// Stats returns the row counters so far.
func (t *Transformer) Stats() Stats {
	return t.stats
}

// Transform runs rows through a fresh Transformer and returns sorted records.
// Each row is a [code, description] pair.
func Transform(rows [][2]string, matcher *validation.CodeMatcher) []types.Record {
	t := NewTransformer(matcher)
	for _, row := range rows {
		t.Add(row[0], row[1])
	}
	return t.Records()
}
