// =============================================================================
// Clinical Catalog Builder - Verify Command
// =============================================================================
//
// COMMAND USAGE:
//   catalog verify --in <json>
//
// Checks a generated CIE-10 catalog: code shape, unique codes, ascending
// order, collapsed labels. Exits non-zero when anything is wrong.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/clinical-catalog/internal/jsonwriter"
	"github.com/ginjaninja78/clinical-catalog/internal/logging"
	"github.com/ginjaninja78/clinical-catalog/internal/validation"
	"github.com/ginjaninja78/clinical-catalog/pkg/utils"
)

var verifyIn string

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check a CIE-10 JSON catalog for malformed, duplicate or unsorted codes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := verifyIn
		if path == "" {
			path = cfg.CIE10Output
		}

		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open catalog: %w", err)
		}
		defer file.Close()

		records, err := jsonwriter.ReadRecords(file)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		if size, err := utils.GetFileSize(path); err == nil {
			logging.Debug("catalog loaded", "path", path, "bytes", size, "records", len(records))
		}

		if errs := validation.VerifyRecords(records); len(errs) > 0 {
			logging.Error("catalog verification failed", "path", path, "problems", len(errs))
			fmt.Fprint(cmd.OutOrStdout(), validation.FormatErrors(errs))
			return fmt.Errorf("%s: %d problem(s) in %d records", path, len(errs), len(records))
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d records OK\n", path, len(records))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&verifyIn, "in", "", "Catalog to check (default from config)")
}
