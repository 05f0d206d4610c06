// =============================================================================
// Clinical Catalog Builder - Procedure Catalog Converter
// =============================================================================
//
// This module converts the CUPS procedure workbook into a JSON array of
// {"code","name"} objects, keeping workbook order.
//
// ROW FILTER:
//   - Rows with fewer than two cells are skipped
//   - Rows with an empty code or name are skipped
//   - Rows whose code or name starts with a section keyword are skipped
//     ("Sección", "Capítulo", "Incluye", "Simultáneo", "Excluye")
//   - Codes ending in "." or "," are group headers ("01.0.") and are skipped
//
// =============================================================================

package converter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ginjaninja78/clinical-catalog/internal/config"
	"github.com/ginjaninja78/clinical-catalog/internal/jsonwriter"
	"github.com/ginjaninja78/clinical-catalog/internal/logging"
	"github.com/ginjaninja78/clinical-catalog/internal/types"
	"github.com/ginjaninja78/clinical-catalog/internal/xlsxparser"
	"github.com/ginjaninja78/clinical-catalog/pkg/utils"
)

// ProcedureFilter decides which workbook rows are procedures.
type ProcedureFilter struct {
	keywords []string
}

// NewProcedureFilter creates a filter that drops rows starting with any keyword.
// Keyword matching ignores case.
func NewProcedureFilter(keywords []string) *ProcedureFilter {
	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			lowered = append(lowered, strings.ToLower(kw))
		}
	}
	return &ProcedureFilter{keywords: lowered}
}

// Procedure returns the procedure held by row, or false when the row is skipped.
func (f *ProcedureFilter) Procedure(row []string) (types.Procedure, bool) {
	if len(row) < 2 {
		return types.Procedure{}, false
	}

	code := strings.TrimSpace(row[0])
	name := strings.TrimSpace(row[1])

	if code == "" || name == "" {
		return types.Procedure{}, false
	}
	if f.isSection(code) || f.isSection(name) {
		return types.Procedure{}, false
	}
	if strings.HasSuffix(code, ".") || strings.HasSuffix(code, ",") {
		return types.Procedure{}, false
	}

	return types.Procedure{Code: code, Name: name}, true
}

func (f *ProcedureFilter) isSection(value string) bool {
	lower := strings.ToLower(value)
	for _, kw := range f.keywords {
		if strings.HasPrefix(lower, kw) {
			return true
		}
	}
	return false
}

// ConvertProcedures filters data rows (header excluded) into procedures.
// The result is never nil.
func ConvertProcedures(rows [][]string, filter *ProcedureFilter) []types.Procedure {
	procedures := make([]types.Procedure, 0, len(rows))
	for _, row := range rows {
		if p, ok := filter.Procedure(row); ok {
			procedures = append(procedures, p)
		}
	}
	return procedures
}

// =============================================================================
// PROCEDURE CONVERTER
// =============================================================================

// ProcedureConverter converts one CUPS workbook into a JSON catalog.
type ProcedureConverter struct {
	sourcePath string
	outputPath string
	cfg        *config.Config
}

// NewProcedureConverter creates a ProcedureConverter. A nil cfg uses the defaults.
func NewProcedureConverter(sourcePath, outputPath string, cfg *config.Config) *ProcedureConverter {
	if cfg == nil {
		cfg = config.Default()
	}
	if outputPath == "" {
		outputPath = cfg.CUPSOutput
	}
	return &ProcedureConverter{
		sourcePath: sourcePath,
		outputPath: outputPath,
		cfg:        cfg,
	}
}

// Run executes the conversion.
func (c *ProcedureConverter) Run() (*Result, error) {
	startTime := time.Now()

	logging.Info("reading procedure workbook", "source", c.sourcePath)

	var sheet *xlsxparser.SheetData
	var err error
	if c.cfg.CUPS.Sheet == "" {
		sheet, err = xlsxparser.Parse(c.sourcePath)
	} else {
		sheet, err = xlsxparser.ParseSheet(c.sourcePath, c.cfg.CUPS.Sheet)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read source %s: %w", c.sourcePath, err)
	}

	procedures := ConvertProcedures(sheet.DataRows(), NewProcedureFilter(c.cfg.CUPS.SectionKeywords))

	opts := jsonwriter.Compact()
	if c.cfg.CUPS.Indent != nil && *c.cfg.CUPS.Indent {
		opts = jsonwriter.Indented()
	}

	err = utils.WriteFile(c.outputPath, func(w io.Writer) error {
		return jsonwriter.WriteProcedures(w, procedures, opts)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}

	rowsRead := sheet.NonEmptyRowCount()
	result := &Result{
		SourcePath: c.sourcePath,
		OutputPath: c.outputPath,
		Count:      len(procedures),
		Stats: Stats{
			RowsRead: rowsRead,
			Rejected: rowsRead - len(procedures),
			Emitted:  len(procedures),
		},
		Duration: time.Since(startTime),
	}

	logging.Info("procedure catalog written",
		"source", result.SourcePath,
		"sheet", sheet.SheetName,
		"output", result.OutputPath,
		"emitted", result.Count,
		"duration", result.Duration,
	)

	return result, nil
}
