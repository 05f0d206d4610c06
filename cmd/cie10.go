// =============================================================================
// Clinical Catalog Builder - CIE-10 Command
// =============================================================================
//
// COMMAND USAGE:
//   catalog cie10 --in <csv> [--out <json>] [--indent]
//
// FLAGS:
//   --in      : CIE-10 table with a header row naming "code" and "description"
//   --out     : Destination JSON file (default from config: public/data/icd10.json)
//   --indent  : Pretty-print the output
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/clinical-catalog/internal/converter"
)

var (
	cie10In     string
	cie10Out    string
	cie10Indent bool
)

var cie10Cmd = &cobra.Command{
	Use:   "cie10",
	Short: "Convert the CIE-10 CSV table into a sorted JSON lookup array",
	Long: `Reads the Spanish CIE-10 table and writes [{"code","label"}, ...].

Only single codes are kept: range rows such as "A00-B99" and section markers
are skipped silently. Codes lose their periods ("J06.9" -> "J069"), labels
have their whitespace collapsed, the first row wins for repeated codes, and
the array is sorted by code.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := converter.New(cie10In, cie10Out, cfg).
			WithIndent(cie10Indent).
			Run()
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d CIE-10 entries → %s\n", result.Count, result.OutputPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cie10Cmd)

	cie10Cmd.Flags().StringVar(&cie10In, "in", "", "Path to the CIE-10 CSV table")
	cie10Cmd.Flags().StringVar(&cie10Out, "out", "", "Output JSON path (default from config)")
	cie10Cmd.Flags().BoolVar(&cie10Indent, "indent", false, "Indent the output JSON")

	_ = cie10Cmd.MarkFlagRequired("in")
}
