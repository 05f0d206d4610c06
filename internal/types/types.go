// =============================================================================
// Clinical Catalog Builder - Shared Types
// =============================================================================
//
// This package contains the record types emitted by the converters and read
// back by the verifier. Types defined here are used by:
//   - converter
//   - validation
//   - jsonwriter
//
// =============================================================================

package types

// =============================================================================
// CATALOG RECORD TYPES
// =============================================================================

// Record is a single entry of the CIE-10 lookup array.
// Within an emitted collection, Code values are unique and ascending.
type Record struct {
	// Code is the normalized classification code.
	// Uppercase, no periods, no whitespace. Example: "J069".
	Code string `json:"code"`

	// Label is the whitespace-collapsed description.
	// Accented characters are kept exactly as read from the source.
	Label string `json:"label"`
}

// Procedure is a single entry of the CUPS procedure catalog.
type Procedure struct {
	// Code is the procedure code as it appears in the workbook, trimmed.
	Code string `json:"code"`

	// Name is the procedure name, trimmed.
	Name string `json:"name"`
}
