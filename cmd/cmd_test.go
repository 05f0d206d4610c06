package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/clinical-catalog/internal/config"
	"github.com/ginjaninja78/clinical-catalog/internal/logging"
)

func resetFlags() {
	cfgFile = config.DefaultConfigFile
	verbose = false
	cie10In, cie10Out, cie10Indent = "", "", false
	cupsIn, cupsOut, cupsSheet, cupsCompact = "", "", "", false
	verifyIn = ""
	cfg = nil
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestCIE10Command(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "cie-10.csv")
	require.NoError(t, os.WriteFile(source, []byte("code,description\n"+
		"A00-B99,Ciertas enfermedades infecciosas\n"+
		"J06.9,Infección aguda  de las vías respiratorias superiores\n"+
		"B01,Varicela\n"), 0644))
	output := filepath.Join(dir, "public", "data", "icd10.json")

	stdout, err := execute(t, "cie10", "--in", source, "--out", output)
	require.NoError(t, err)
	assert.Equal(t, "Wrote 2 CIE-10 entries → "+output+"\n", stdout)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, `[{"code":"B01","label":"Varicela"},`+
		`{"code":"J069","label":"Infección aguda de las vías respiratorias superiores"}]`+"\n", string(data))

	stdout, err = execute(t, "verify", "--in", output)
	require.NoError(t, err)
	assert.Equal(t, output+": 2 records OK\n", stdout)
}

func TestCIE10CommandMissingSource(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "cie10", "--in", filepath.Join(dir, "missing.csv"), "--out", filepath.Join(dir, "out.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCIE10CommandWithConfig(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "cie-10.tsv")
	require.NoError(t, os.WriteFile(source, []byte("codigo\tnombre\nA09\tDiarrea\n"), 0644))
	output := filepath.Join(dir, "build", "icd10.json")
	logFile := filepath.Join(dir, "logs", "catalog.log")

	configPath := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("cie10_output: "+output+"\n"+
		"log_file: "+logFile+"\n"+
		"csv_settings:\n"+
		"  delimiter: tab\n"+
		"  code_column: codigo\n"+
		"  description_column: nombre\n"), 0644))

	stdout, err := execute(t, "cie10", "--config", configPath, "--in", source)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote 1 CIE-10 entries")
	assert.FileExists(t, output)
	assert.FileExists(t, logFile)
}

func TestVerifyCommandReportsProblems(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "icd10.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"code":"B01","label":"Varicela"},{"code":"A09","label":"Diarrea"}]`), 0644))

	logFile := filepath.Join(dir, "catalog.log")
	configPath := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("log_file: "+logFile+"\n"), 0644))
	t.Cleanup(logging.Close)

	stdout, err := execute(t, "verify", "--config", configPath, "--in", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 problem(s) in 2 records")
	assert.Contains(t, stdout, "order")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"level":"ERROR","msg":"catalog verification failed"`)
	assert.Contains(t, string(data), `"problems":1`)
}

func TestCUPSCommand(t *testing.T) {
	dir := t.TempDir()

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Código", "Nombre"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Sección 01", "Procedimientos en sistema nervioso"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"010101", "Biopsia de cerebro"}))
	source := filepath.Join(dir, "cups.xlsx")
	require.NoError(t, f.SaveAs(source))
	require.NoError(t, f.Close())

	output := filepath.Join(dir, "public", "data", "cups.json")

	stdout, err := execute(t, "cups", "--in", source, "--out", output, "--compact")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Successfully wrote 1 items to "+output)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, `[{"code":"010101","name":"Biopsia de cerebro"}]`+"\n", string(data))
}

func TestVersionCommand(t *testing.T) {
	stdout, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Clinical Catalog Builder")
	assert.Contains(t, stdout, "Version:    "+Version)
}
