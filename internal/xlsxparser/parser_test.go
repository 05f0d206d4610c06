package xlsxparser

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTestWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Código", "Nombre"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"010101", "Biopsia de cerebro"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A4", &[]any{"010102", "Drenaje de absceso"}))

	_, err := f.NewSheet("Notas")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Notas", "A1", &[]any{"Versión"}))

	path := filepath.Join(t.TempDir(), "cups.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParseFirstSheet(t *testing.T) {
	path := writeTestWorkbook(t)

	sheet, err := Parse(path)
	require.NoError(t, err)

	assert.Equal(t, path, sheet.SourceFile)
	assert.Equal(t, "Sheet1", sheet.SheetName)
	assert.Equal(t, []string{"Código", "Nombre"}, sheet.Rows[0])
	assert.Len(t, sheet.DataRows(), 3)
	assert.Equal(t, 2, sheet.NonEmptyRowCount())
}

func TestParseNamedSheet(t *testing.T) {
	path := writeTestWorkbook(t)

	sheet, err := ParseSheet(path, "Notas")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Versión"}}, sheet.Rows)
	assert.Nil(t, sheet.DataRows())
	assert.Equal(t, 0, sheet.NonEmptyRowCount())

	_, err = ParseSheet(path, "Missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `sheet "Missing" not found`)
}

func TestParseMissingWorkbook(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.xlsx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open workbook")
}
