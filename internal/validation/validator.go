// =============================================================================
// Clinical Catalog Builder - Validation Engine
// =============================================================================
//
// This module holds the rules that decide which source rows are classifiable
// codes, and the checks run against a generated catalog.
//
// ACCEPTANCE RULE:
//   A raw code is trimmed and upper-cased, then:
//   1. It must not be empty
//   2. It must not fully match the range pattern  (e.g. "A00-B99")
//   3. It must fully match the code pattern        (e.g. "J06.9")
//
//   Both patterns are tuned to the Spanish CIE-10 table. Other datasets need
//   their own patterns, supplied through the configuration file.
//
// CATALOG CHECKS:
//   - Code shape: one uppercase letter followed by uppercase letters/digits
//   - Codes unique and strictly ascending
//   - Labels already whitespace-collapsed
//
// =============================================================================

package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ginjaninja78/clinical-catalog/internal/types"
)

// =============================================================================
// CODE RULE
// =============================================================================

const (
	// DefaultRangePattern matches two code-like tokens joined by a hyphen.
	DefaultRangePattern = `.+-.+`

	// DefaultCodePattern matches a single CIE-10 code such as "A09" or "J06.9".
	DefaultCodePattern = `[A-Z][0-9A-Z.]{2,7}`
)

// ErrInvalidPattern is returned when a configured pattern does not compile.
var ErrInvalidPattern = errors.New("invalid code rule pattern")

// CodeRule is the configurable acceptance rule for raw codes.
// Patterns are matched against the whole trimmed, upper-cased code.
type CodeRule struct {
	// RangePattern identifies range rows (chapter and block headings).
	RangePattern string `yaml:"range_pattern"`

	// CodePattern identifies a single classifiable code.
	CodePattern string `yaml:"code_pattern"`
}

// DefaultCodeRule returns the rule tuned to the Spanish CIE-10 table.
func DefaultCodeRule() CodeRule {
	return CodeRule{
		RangePattern: DefaultRangePattern,
		CodePattern:  DefaultCodePattern,
	}
}

// CodeMatcher is a compiled CodeRule.
type CodeMatcher struct {
	rangeRe *regexp.Regexp
	codeRe  *regexp.Regexp
}

// Compile anchors and compiles both patterns.
func (r CodeRule) Compile() (*CodeMatcher, error) {
	rangeRe, err := compileFull(r.RangePattern)
	if err != nil {
		return nil, fmt.Errorf("%w: range_pattern: %v", ErrInvalidPattern, err)
	}
	codeRe, err := compileFull(r.CodePattern)
	if err != nil {
		return nil, fmt.Errorf("%w: code_pattern: %v", ErrInvalidPattern, err)
	}
	return &CodeMatcher{rangeRe: rangeRe, codeRe: codeRe}, nil
}

// MustCompile is like Compile but panics on a bad pattern.
func (r CodeRule) MustCompile() *CodeMatcher {
	m, err := r.Compile()
	if err != nil {
		panic(err)
	}
	return m
}

// compileFull compiles pattern so that it must match the entire input.
func compileFull(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, errors.New("empty pattern")
	}
	return regexp.Compile(`^(?:` + pattern + `)$`)
}

// IsRange reports whether the trimmed, upper-cased code is a range row.
func (m *CodeMatcher) IsRange(raw string) bool {
	return m.rangeRe.MatchString(strings.ToUpper(strings.TrimSpace(raw)))
}

// Accept reports whether raw is a single classifiable code.
func (m *CodeMatcher) Accept(raw string) bool {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return false
	}
	if m.rangeRe.MatchString(s) {
		return false
	}
	return m.codeRe.MatchString(s)
}

// =============================================================================
// CATALOG VERIFICATION
// =============================================================================

// normalizedCodeRe is the shape every emitted code must have.
var normalizedCodeRe = regexp.MustCompile(`^[A-Z][0-9A-Z]*$`)

// ValidationError describes one violation found in a generated catalog.
type ValidationError struct {
	// Index is the position of the offending record in the array.
	Index int

	// Code is the code of the offending record.
	Code string

	// Rule is the short name of the violated check.
	Rule string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("record %d (%q): %s: %s", e.Index, e.Code, e.Rule, e.Message)
}

// VerifyRecords checks a CIE-10 catalog and returns every violation found.
// A nil result means the catalog is well-formed.
func VerifyRecords(records []types.Record) []*ValidationError {
	var errs []*ValidationError
	seen := make(map[string]int, len(records))

	for i, rec := range records {
		if !normalizedCodeRe.MatchString(rec.Code) {
			errs = append(errs, &ValidationError{
				Index:   i,
				Code:    rec.Code,
				Rule:    "code_shape",
				Message: "code must be an uppercase letter followed only by uppercase letters or digits",
			})
		}

		if first, dup := seen[rec.Code]; dup {
			errs = append(errs, &ValidationError{
				Index:   i,
				Code:    rec.Code,
				Rule:    "unique",
				Message: fmt.Sprintf("duplicate of record %d", first),
			})
		} else {
			seen[rec.Code] = i
		}

		if i > 0 && rec.Code < records[i-1].Code {
			errs = append(errs, &ValidationError{
				Index:   i,
				Code:    rec.Code,
				Rule:    "order",
				Message: fmt.Sprintf("code sorts before previous code %q", records[i-1].Code),
			})
		}

		if rec.Label != strings.Join(strings.Fields(rec.Label), " ") {
			errs = append(errs, &ValidationError{
				Index:   i,
				Code:    rec.Code,
				Rule:    "label_whitespace",
				Message: "label has surrounding or repeated whitespace",
			})
		}
	}

	return errs
}

// FormatErrors renders validation errors one per line.
func FormatErrors(errs []*ValidationError) string {
	var b strings.Builder
	for _, err := range errs {
		b.WriteString(err.Error())
		b.WriteByte('\n')
	}
	return b.String()
}
