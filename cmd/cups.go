// =============================================================================
// Clinical Catalog Builder - CUPS Command
// =============================================================================
//
// COMMAND USAGE:
//   catalog cups --in <xlsx> [--out <json>] [--sheet <name>] [--compact]
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/clinical-catalog/internal/converter"
)

var (
	cupsIn      string
	cupsOut     string
	cupsSheet   string
	cupsCompact bool
)

var cupsCmd = &cobra.Command{
	Use:   "cups",
	Short: "Convert the CUPS procedure workbook into a JSON array",
	Long: `Reads the first sheet of the CUPS workbook (code in column A, name in
column B) and writes [{"code","name"}, ...] in workbook order. Section rows
and group headers are skipped.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cupsSheet != "" {
			cfg.CUPS.Sheet = cupsSheet
		}
		if cupsCompact {
			indent := false
			cfg.CUPS.Indent = &indent
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Reading from: %s\n", cupsIn)

		result, err := converter.NewProcedureConverter(cupsIn, cupsOut, cfg).Run()
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Successfully wrote %d items to %s\n", result.Count, result.OutputPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cupsCmd)

	cupsCmd.Flags().StringVar(&cupsIn, "in", "", "Path to the CUPS XLSX workbook")
	cupsCmd.Flags().StringVar(&cupsOut, "out", "", "Output JSON path (default from config)")
	cupsCmd.Flags().StringVar(&cupsSheet, "sheet", "", "Worksheet name (default: first sheet)")
	cupsCmd.Flags().BoolVar(&cupsCompact, "compact", false, "Write compact JSON instead of indented")

	_ = cupsCmd.MarkFlagRequired("in")
}
