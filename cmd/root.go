// =============================================================================
// Clinical Catalog Builder - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI.
//
// COBRA CLI STRUCTURE:
//   rootCmd (catalog)
//   ├── cie10Cmd   (catalog cie10)
//   ├── cupsCmd    (catalog cups)
//   ├── verifyCmd  (catalog verify)
//   └── versionCmd (catalog version)
//
// Before any subcommand runs, the root command loads the configuration file
// and sets up logging.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/clinical-catalog/internal/config"
	"github.com/ginjaninja78/clinical-catalog/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
var cfgFile string

// verbose forces debug logging.
var verbose bool

// cfg is the loaded configuration, available to every subcommand.
var cfg *config.Config

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Build the clinical lookup catalogs (CIE-10, CUPS)",
	Long: `catalog converts the classification tables used by the clinical client
into compact JSON lookup arrays.

  - CIE-10 (CSV): keeps single codes, drops range rows, removes periods from
    codes, collapses whitespace in labels, deduplicates and sorts by code.
  - CUPS (XLSX): keeps procedure rows, drops section headers.

Example Usage:
  catalog cie10 --in data-src/cie-10.csv
  catalog cie10 --in data-src/cie-10.csv --out public/data/icd10.json
  catalog cups --in data-src/cups.xlsx
  catalog verify --in public/data/icd10.json`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	defer logging.Close()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logging.Close()
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultConfigFile,
		"Path to the configuration file (optional)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}

// initConfig loads the configuration and initializes logging.
func initConfig() error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	level := loaded.LogLevel
	if verbose {
		level = "debug"
	}
	if err := logging.InitLogger(level, loaded.LogFile); err != nil {
		return err
	}

	cfg = loaded
	return nil
}
