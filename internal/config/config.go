// =============================================================================
// Clinical Catalog Builder - Configuration Module
// =============================================================================
//
// This module is responsible for loading the application configuration.
// A single YAML file drives every converter. The file is optional: when the
// default path does not exist, built-in defaults are used.
//
// CONFIGURATION FILE (catalog.yaml):
//   cie10_output: public/data/icd10.json
//   cups_output:  public/data/cups.json
//   log_level:    info
//   log_file:     ""
//   csv_settings:
//     delimiter: ","
//     encoding:  UTF-8
//     code_column: code
//     description_column: description
//   code_rule:
//     range_pattern: ".+-.+"
//     code_pattern:  "[A-Z][0-9A-Z.]{2,7}"
//   cups:
//     sheet: ""
//     indent: true
//     section_keywords: [Sección, Capítulo, Incluye, Simultáneo, Excluye]
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/clinical-catalog/internal/validation"
)

// DefaultConfigFile is the path used when --config is not given.
const DefaultConfigFile = "catalog.yaml"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// CIE10Output is the default destination of the CIE-10 lookup array.
	// Default: "public/data/icd10.json"
	CIE10Output string `yaml:"cie10_output"`

	// CUPSOutput is the default destination of the CUPS procedure catalog.
	// Default: "public/data/cups.json"
	CUPSOutput string `yaml:"cups_output"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFile, when set, receives JSON log lines instead of stderr.
	LogFile string `yaml:"log_file"`

	// =========================================================================
	// SOURCE SETTINGS
	// =========================================================================

	// CSVSettings contains settings for reading the CIE-10 table.
	CSVSettings CSVSettings `yaml:"csv_settings"`

	// CodeRule is the acceptance rule applied to raw CIE-10 codes.
	CodeRule validation.CodeRule `yaml:"code_rule"`

	// CUPS contains settings for the procedure workbook conversion.
	CUPS CUPSSettings `yaml:"cups"`
}

// CSVSettings contains settings for parsing the delimited source table.
type CSVSettings struct {
	// Delimiter is the character used to separate fields.
	// Accepts a literal character or one of "tab", "pipe", "semicolon".
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// Encoding is the character encoding of the file.
	// Valid values: "UTF-8", "ISO-8859-1", "Windows-1252"
	// Default: "UTF-8"
	Encoding string `yaml:"encoding"`

	// CodeColumn is the header name holding the raw code.
	// Default: "code"
	CodeColumn string `yaml:"code_column"`

	// DescriptionColumn is the header name holding the raw description.
	// Default: "description"
	DescriptionColumn string `yaml:"description_column"`
}

// CUPSSettings contains settings for the procedure workbook.
type CUPSSettings struct {
	// Sheet is the worksheet to read. Empty means the first sheet.
	Sheet string `yaml:"sheet"`

	// Indent pretty-prints the output with two spaces.
	// Default: true
	Indent *bool `yaml:"indent"`

	// SectionKeywords are prefixes marking section rows that must be skipped.
	SectionKeywords []string `yaml:"section_keywords"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Load reads the configuration from a YAML file.
//
// When path is the default file and it does not exist, the defaults are
// returned. Any other read failure is an error.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && path == DefaultConfigFile:
		// No config file; run on defaults.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.CIE10Output == "" {
		cfg.CIE10Output = "public/data/icd10.json"
	}
	if cfg.CUPSOutput == "" {
		cfg.CUPSOutput = "public/data/cups.json"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	// CSV settings defaults.
	if cfg.CSVSettings.Delimiter == "" {
		cfg.CSVSettings.Delimiter = ","
	}
	if cfg.CSVSettings.Encoding == "" {
		cfg.CSVSettings.Encoding = "UTF-8"
	}
	if cfg.CSVSettings.CodeColumn == "" {
		cfg.CSVSettings.CodeColumn = "code"
	}
	if cfg.CSVSettings.DescriptionColumn == "" {
		cfg.CSVSettings.DescriptionColumn = "description"
	}

	// Code rule defaults.
	if cfg.CodeRule.RangePattern == "" {
		cfg.CodeRule.RangePattern = validation.DefaultRangePattern
	}
	if cfg.CodeRule.CodePattern == "" {
		cfg.CodeRule.CodePattern = validation.DefaultCodePattern
	}

	// CUPS defaults.
	if cfg.CUPS.Indent == nil {
		indent := true
		cfg.CUPS.Indent = &indent
	}
	if len(cfg.CUPS.SectionKeywords) == 0 {
		cfg.CUPS.SectionKeywords = []string{"Sección", "Capítulo", "Incluye", "Simultáneo", "Excluye"}
	}
}

// Validate checks the configuration for values that cannot be used.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}

	switch strings.ToUpper(c.CSVSettings.Encoding) {
	case "UTF-8", "UTF8", "ISO-8859-1", "LATIN1", "WINDOWS-1252", "CP1252":
	default:
		return fmt.Errorf("unsupported csv_settings.encoding %q", c.CSVSettings.Encoding)
	}

	if _, err := c.CodeRule.Compile(); err != nil {
		return err
	}

	return nil
}
