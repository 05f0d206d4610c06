// =============================================================================
// Clinical Catalog Builder - CSV Parser Module
// =============================================================================
//
// This module reads delimited text tables one row at a time. It handles:
//   - Different delimiters (comma, pipe, tab, semicolon)
//   - A leading UTF-8 byte-order mark
//   - Legacy single-byte encodings (ISO-8859-1, Windows-1252)
//   - Header-keyed rows (column order is irrelevant, extras are ignored)
//   - Short rows (missing cells read as empty strings)
//
// Values are returned exactly as read. Trimming and whitespace handling are
// the converter's job.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ginjaninja78/clinical-catalog/internal/config"
)

// ErrMissingColumn is reported when a required header is not present.
var ErrMissingColumn = errors.New("column not found in header")

// =============================================================================
// STREAMING PARSER
// =============================================================================

// StreamingParser reads a CSV source row by row.
//
// USAGE:
//
//	parser, err := NewStreamingParser(filePath, settings)
//	if err != nil {
//	    return err
//	}
//	defer parser.Close()
//
//	for parser.Next() {
//	    row := parser.Row()
//	}
//
//	if err := parser.Err(); err != nil {
//	    return err
//	}
type StreamingParser struct {
	closer     io.Closer
	reader     *csv.Reader
	headers    []string
	currentRow map[string]string
	rowNumber  int
	err        error
}

// NewStreamingParser opens filePath and reads its header row.
func NewStreamingParser(filePath string, settings config.CSVSettings) (*StreamingParser, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	parser, err := NewReader(file, settings)
	if err != nil {
		file.Close()
		return nil, err
	}
	parser.closer = file

	return parser, nil
}

// NewReader builds a parser over an already open source and reads its header row.
// An empty source is not an error: it simply yields no rows.
func NewReader(r io.Reader, settings config.CSVSettings) (*StreamingParser, error) {
	decoder, err := decoderFor(settings.Encoding)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bufio.NewReader(transform.NewReader(r, decoder)))
	configureReader(reader, settings)

	parser := &StreamingParser{reader: reader}
	if err := parser.readHeaders(); err != nil {
		return nil, err
	}

	return parser, nil
}

// decoderFor returns a transformer that turns the source into UTF-8.
// For UTF-8 sources the transformer strips a leading byte-order mark.
func decoderFor(name string) (transform.Transformer, error) {
	var enc encoding.Encoding

	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "UTF-8", "UTF8":
		return unicode.BOMOverride(unicode.UTF8.NewDecoder()), nil
	case "ISO-8859-1", "LATIN1":
		enc = charmap.ISO8859_1
	case "WINDOWS-1252", "CP1252":
		enc = charmap.Windows1252
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}

	return enc.NewDecoder(), nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) {
	switch settings.Delimiter {
	case "\\t", "\t", "tab", "TAB":
		reader.Comma = '\t'
	case "|", "pipe", "PIPE":
		reader.Comma = '|'
	case ";", "semicolon":
		reader.Comma = ';'
	default:
		if len(settings.Delimiter) > 0 {
			reader.Comma = []rune(settings.Delimiter)[0]
		} else {
			reader.Comma = ','
		}
	}

	// Source tables are not strict: rows may be short and quotes sloppy.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
}

// readHeaders reads the header row.
func (p *StreamingParser) readHeaders() error {
	row, err := p.reader.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error reading header row: %w", err)
	}

	p.rowNumber++
	p.headers = cleanHeaders(row)
	return nil
}

// cleanHeaders trims header names and names unnamed columns by position.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))

	for i, header := range headers {
		header = strings.TrimSpace(header)
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		cleaned[i] = header
	}

	return cleaned
}

// Next advances to the next row. Returns false when there are no more rows.
func (p *StreamingParser) Next() bool {
	if p.err != nil || p.headers == nil {
		return false
	}

	for {
		row, err := p.reader.Read()
		if err == io.EOF {
			return false
		}
		if err != nil {
			p.err = fmt.Errorf("error reading row %d: %w", p.rowNumber+1, err)
			return false
		}

		p.rowNumber++

		if isRowEmpty(row) {
			continue
		}

		p.currentRow = make(map[string]string, len(p.headers))
		for i, header := range p.headers {
			if i < len(row) {
				p.currentRow[header] = row[i]
			} else {
				p.currentRow[header] = ""
			}
		}

		return true
	}
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

// Row returns the current row keyed by header name.
func (p *StreamingParser) Row() map[string]string {
	return p.currentRow
}

// Headers returns the parsed headers.
func (p *StreamingParser) Headers() []string {
	return p.headers
}

// HasColumn reports whether the header row names the given column.
func (p *StreamingParser) HasColumn(name string) bool {
	for _, h := range p.headers {
		if h == name {
			return true
		}
	}
	return false
}

// RequireColumns returns ErrMissingColumn for the first name absent from the header.
// A source without any header row has no columns to check.
func (p *StreamingParser) RequireColumns(names ...string) error {
	if p.headers == nil {
		return nil
	}
	for _, name := range names {
		if !p.HasColumn(name) {
			return fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}
	return nil
}

// RowNumber returns the current record number (1-indexed, header included).
func (p *StreamingParser) RowNumber() int {
	return p.rowNumber
}

// Err returns any error that occurred during parsing.
func (p *StreamingParser) Err() error {
	return p.err
}

// Close closes the underlying file, if the parser opened one.
func (p *StreamingParser) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}
