// =============================================================================
// Clinical Catalog Builder - Converter Module
// =============================================================================
//
// This module runs a whole conversion for one source file.
//
// CIE-10 PIPELINE:
//   1. Open the CSV source (BOM stripped, charset decoded)
//   2. Stream each row through the Transformer
//   3. Sort the records by code
//   4. Write the JSON array, creating the destination directory if needed
//
// FAILURES:
//   An unreadable source or an unwritable destination aborts the run.
//   Individual rows never do.
//
// =============================================================================

package converter

import (
	"fmt"
	"io"
	"time"

	"github.com/ginjaninja78/clinical-catalog/internal/config"
	"github.com/ginjaninja78/clinical-catalog/internal/csvparser"
	"github.com/ginjaninja78/clinical-catalog/internal/jsonwriter"
	"github.com/ginjaninja78/clinical-catalog/internal/logging"
	"github.com/ginjaninja78/clinical-catalog/internal/types"
	"github.com/ginjaninja78/clinical-catalog/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one conversion.
type Result struct {
	// SourcePath is the file that was read.
	SourcePath string

	// OutputPath is the file that was written.
	OutputPath string

	// Count is the number of records written.
	Count int

	// Stats holds the per-row counters.
	Stats Stats

	// Duration is the wall time of the run.
	Duration time.Duration
}

// =============================================================================
// CONVERTER
// =============================================================================

// Converter converts one CIE-10 CSV table into a JSON catalog.
type Converter struct {
	sourcePath string
	outputPath string
	cfg        *config.Config
	options    jsonwriter.Options
}

// New creates a Converter. A nil cfg uses the defaults.
func New(sourcePath, outputPath string, cfg *config.Config) *Converter {
	if cfg == nil {
		cfg = config.Default()
	}
	if outputPath == "" {
		outputPath = cfg.CIE10Output
	}
	return &Converter{
		sourcePath: sourcePath,
		outputPath: outputPath,
		cfg:        cfg,
		options:    jsonwriter.Compact(),
	}
}

// WithIndent switches the output to two-space indentation.
func (c *Converter) WithIndent(indent bool) *Converter {
	if indent {
		c.options = jsonwriter.Indented()
	} else {
		c.options = jsonwriter.Compact()
	}
	return c
}

// Run executes the conversion.
func (c *Converter) Run() (*Result, error) {
	startTime := time.Now()

	parser, err := csvparser.NewStreamingParser(c.sourcePath, c.cfg.CSVSettings)
	if err != nil {
		return nil, fmt.Errorf("failed to read source %s: %w", c.sourcePath, err)
	}
	defer parser.Close()

	records, stats, err := c.transform(parser)
	if err != nil {
		return nil, fmt.Errorf("failed to read source %s: %w", c.sourcePath, err)
	}

	if err := c.writeOutput(records); err != nil {
		return nil, err
	}

	result := &Result{
		SourcePath: c.sourcePath,
		OutputPath: c.outputPath,
		Count:      len(records),
		Stats:      stats,
		Duration:   time.Since(startTime),
	}

	logging.Info("CIE-10 catalog written",
		"source", result.SourcePath,
		"output", result.OutputPath,
		"rows", stats.RowsRead,
		"emitted", stats.Emitted,
		"rejected", stats.Rejected,
		"ranges", stats.Ranges,
		"duplicates", stats.Duplicates,
		"duration", result.Duration,
	)

	return result, nil
}

// transform streams every row of parser through a Transformer.
func (c *Converter) transform(parser *csvparser.StreamingParser) ([]types.Record, Stats, error) {
	codeColumn := c.cfg.CSVSettings.CodeColumn
	descColumn := c.cfg.CSVSettings.DescriptionColumn

	if err := parser.RequireColumns(codeColumn, descColumn); err != nil {
		// Missing columns read as empty strings; the rows are filtered out.
		logging.Warn("source header is incomplete", "source", c.sourcePath, "error", err)
	}

	matcher, err := c.cfg.CodeRule.Compile()
	if err != nil {
		return nil, Stats{}, err
	}

	t := NewTransformer(matcher)
	for parser.Next() {
		row := parser.Row()
		if !t.Add(row[codeColumn], row[descColumn]) {
			logging.Debug("row skipped", "row", parser.RowNumber(), "code", row[codeColumn])
		}
	}
	if err := parser.Err(); err != nil {
		return nil, Stats{}, err
	}

	return t.Records(), t.Stats(), nil
}

// writeOutput writes the records to the destination.
func (c *Converter) writeOutput(records []types.Record) error {
	if utils.FileExists(c.outputPath) {
		logging.Debug("overwriting existing catalog", "output", c.outputPath)
	}

	err := utils.WriteFile(c.outputPath, func(w io.Writer) error {
		return jsonwriter.WriteRecords(w, records, c.options)
	})
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}
