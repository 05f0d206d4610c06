// =============================================================================
// Clinical Catalog Builder - Main Entry Point
// =============================================================================
//
// This is the main entry point for the catalog CLI. It builds the lookup
// files the clinical client loads at startup.
//
// USAGE:
//   catalog cie10 --in data-src/cie-10.csv   - Build public/data/icd10.json
//   catalog cups  --in data-src/cups.xlsx    - Build public/data/cups.json
//   catalog verify --in public/data/icd10.json
//   catalog version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Parsing, normalization and serialization
//   - pkg/       : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/clinical-catalog/cmd"
)

func main() {
	cmd.Execute()
}
