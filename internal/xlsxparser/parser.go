// =============================================================================
// Clinical Catalog Builder - XLSX Workbook Parser
// =============================================================================
//
// This module reads tabular data out of XLSX workbooks. The CUPS procedure
// catalog is distributed this way: one sheet, a header row, then one
// procedure per row with the code in column A and the name in column B.
//
// Cells are returned as excelize formats them, so numeric codes arrive as
// their displayed text.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// =============================================================================
// SHEET DATA STRUCTURE
// =============================================================================

// SheetData holds the rows of one worksheet.
type SheetData struct {
	// SourceFile is the path to the workbook.
	SourceFile string

	// SheetName is the worksheet the rows were read from.
	SheetName string

	// Rows contains every row of the sheet, header included.
	// Rows may have different lengths; trailing empty cells are dropped.
	Rows [][]string
}

// DataRows returns the rows after the header row.
func (s *SheetData) DataRows() [][]string {
	if len(s.Rows) <= 1 {
		return nil
	}
	return s.Rows[1:]
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads the first worksheet of the workbook at path.
func Parse(path string) (*SheetData, error) {
	return ParseSheet(path, "")
}

// ParseSheet reads the named worksheet. An empty name selects the first sheet.
func ParseSheet(path, sheetName string) (*SheetData, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
		if sheetName == "" {
			return nil, fmt.Errorf("workbook has no sheets")
		}
	} else if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found (available: %s)", sheetName, strings.Join(f.GetSheetList(), ", "))
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return &SheetData{
		SourceFile: path,
		SheetName:  sheetName,
		Rows:       rows,
	}, nil
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// NonEmptyRowCount returns the number of data rows holding at least one value.
func (s *SheetData) NonEmptyRowCount() int {
	count := 0
	for _, row := range s.DataRows() {
		if !isRowEmpty(row) {
			count++
		}
	}
	return count
}
