package csvparser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/clinical-catalog/internal/config"
)

func defaultSettings() config.CSVSettings {
	return config.Default().CSVSettings
}

func readAll(t *testing.T, p *StreamingParser) []map[string]string {
	t.Helper()
	var rows []map[string]string
	for p.Next() {
		rows = append(rows, p.Row())
	}
	require.NoError(t, p.Err())
	return rows
}

func TestParserStripsBOM(t *testing.T) {
	p, err := NewReader(strings.NewReader("\ufeffcode,description\nA09,Diarrea\n"), defaultSettings())
	require.NoError(t, err)

	assert.Equal(t, []string{"code", "description"}, p.Headers())
	assert.True(t, p.HasColumn("code"))
	assert.Equal(t, []map[string]string{{"code": "A09", "description": "Diarrea"}}, readAll(t, p))
}

func TestParserKeepsValuesRaw(t *testing.T) {
	p, err := NewReader(strings.NewReader("code,description\n\" J06.9 \",\"Infección  aguda\n de las vías\"\n"), defaultSettings())
	require.NoError(t, err)

	rows := readAll(t, p)
	require.Len(t, rows, 1)
	assert.Equal(t, " J06.9 ", rows[0]["code"])
	assert.Equal(t, "Infección  aguda\n de las vías", rows[0]["description"])
}

func TestParserShortRowsAndEmptyLines(t *testing.T) {
	input := "code,description,level\n" +
		"A09\n" +
		"\n" +
		",,\n" +
		"B01,Varicela,1,extra\n"

	p, err := NewReader(strings.NewReader(input), defaultSettings())
	require.NoError(t, err)

	assert.Equal(t, []map[string]string{
		{"code": "A09", "description": "", "level": ""},
		{"code": "B01", "description": "Varicela", "level": "1"},
	}, readAll(t, p))
}

func TestParserDelimiters(t *testing.T) {
	tests := map[string]string{
		"tab":       "code\tdescription\nA09\tDiarrea\n",
		"pipe":      "code|description\nA09|Diarrea\n",
		"semicolon": "code;description\nA09;Diarrea\n",
		",":         "code,description\nA09,Diarrea\n",
	}

	for delimiter, input := range tests {
		t.Run(delimiter, func(t *testing.T) {
			settings := defaultSettings()
			settings.Delimiter = delimiter

			p, err := NewReader(strings.NewReader(input), settings)
			require.NoError(t, err)
			assert.Equal(t, []map[string]string{{"code": "A09", "description": "Diarrea"}}, readAll(t, p))
		})
	}
}

func TestParserLatin1(t *testing.T) {
	settings := defaultSettings()
	settings.Encoding = "ISO-8859-1"

	p, err := NewReader(strings.NewReader("code,description\nJ06.9,Infecci\xf3n aguda\n"), settings)
	require.NoError(t, err)

	rows := readAll(t, p)
	require.Len(t, rows, 1)
	assert.Equal(t, "Infección aguda", rows[0]["description"])
}

func TestParserUnsupportedEncoding(t *testing.T) {
	settings := defaultSettings()
	settings.Encoding = "EBCDIC"

	_, err := NewReader(strings.NewReader("code\n"), settings)
	require.Error(t, err)
}

func TestParserEmptySource(t *testing.T) {
	p, err := NewReader(strings.NewReader(""), defaultSettings())
	require.NoError(t, err)

	assert.Nil(t, p.Headers())
	assert.NoError(t, p.RequireColumns("code"))
	assert.Empty(t, readAll(t, p))
}

func TestParserRequireColumns(t *testing.T) {
	p, err := NewReader(strings.NewReader("code,label\n"), defaultSettings())
	require.NoError(t, err)

	require.NoError(t, p.RequireColumns("code"))
	err = p.RequireColumns("code", "description")
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), `"description"`)
}

func TestParserUnnamedHeaders(t *testing.T) {
	p, err := NewReader(strings.NewReader(" code ,,description\n"), defaultSettings())
	require.NoError(t, err)

	assert.Equal(t, []string{"code", "Column_2", "description"}, p.Headers())
}

func TestStreamingParserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cie-10.csv")
	require.NoError(t, os.WriteFile(path, []byte("code,description\nA09,Diarrea\nB01,Varicela\n"), 0644))

	p, err := NewStreamingParser(path, defaultSettings())
	require.NoError(t, err)
	defer p.Close()

	rows := readAll(t, p)
	assert.Len(t, rows, 2)
	assert.Equal(t, 3, p.RowNumber())
}

func TestStreamingParserMissingFile(t *testing.T) {
	_, err := NewStreamingParser(filepath.Join(t.TempDir(), "missing.csv"), defaultSettings())
	require.ErrorIs(t, err, os.ErrNotExist)
}
