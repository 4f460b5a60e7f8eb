package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/khrees2412/takecare-ats/internal/sheet"
	"github.com/spf13/cobra"
)

var sheetCmd = &cobra.Command{
	Use:   "sheet",
	Short: "Import and export spreadsheet CSV files",
}

var importCandidatesCmd = &cobra.Command{
	Use:     "import-candidates <file.csv>",
	Short:   "Import candidate rows with their existing reference IDs (admin only)",
	Args:    cobra.ExactArgs(1),
	Example: `  takecare sheet import-candidates dashboard.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, user, err := session(cmd)
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()

		records, readErr := sheet.ReadCandidates(f)
		if readErr != nil && len(records) == 0 {
			return readErr
		}
		printRowErrors(cmd, readErr)

		res, err := application.Tracker.ImportCandidates(cmd.Context(), user, records)
		if err != nil && res.Rejected == 0 {
			return err
		}
		printRowErrors(cmd, err)
		cmd.Printf("✓ Imported %d candidates, skipped %d existing, rejected %d\n", res.Imported, res.Skipped, res.Rejected)
		return nil
	},
}

var importClientsCmd = &cobra.Command{
	Use:     "import-clients <file.csv>",
	Short:   "Import the client master (admin only)",
	Args:    cobra.ExactArgs(1),
	Example: `  takecare sheet import-clients clients.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, user, err := session(cmd)
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()

		openings, readErr := sheet.ReadClients(f)
		if readErr != nil && len(openings) == 0 {
			return readErr
		}
		printRowErrors(cmd, readErr)

		res, err := application.Tracker.ImportClients(cmd.Context(), user, openings)
		if err != nil {
			return err
		}
		cmd.Printf("✓ Imported %d client openings\n", res.Imported)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write candidates or the client master as CSV",
	Example: `  takecare sheet export --out dashboard.csv
  takecare sheet export --clients`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, user, err := session(cmd)
		if err != nil {
			return err
		}
		clients, _ := cmd.Flags().GetBool("clients")
		out, _ := cmd.Flags().GetString("out")

		var w io.Writer = cmd.OutOrStdout()
		if out != "" {
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			defer f.Close()
			w = f
		}

		if clients {
			openings, err := application.Tracker.ClientOpenings(cmd.Context())
			if err != nil {
				return err
			}
			return sheet.WriteClients(w, openings)
		}

		records, err := application.Tracker.Export(cmd.Context(), user)
		if err != nil {
			return err
		}
		return sheet.WriteCandidates(w, records)
	},
}

// printRowErrors reports rows skipped during a sheet read
func printRowErrors(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range joined.Unwrap() {
			cmd.PrintErrf("%s %v\n", errorStyle.Render("Skipped:"), e)
		}
		return
	}
	cmd.PrintErrf("%s %v\n", errorStyle.Render("Skipped:"), err)
}

func init() {
	rootCmd.AddCommand(sheetCmd)
	sheetCmd.AddCommand(importCandidatesCmd)
	sheetCmd.AddCommand(importClientsCmd)
	sheetCmd.AddCommand(exportCmd)

	exportCmd.Flags().Bool("clients", false, "Export the client master instead of candidates")
	exportCmd.Flags().StringP("out", "o", "", "Output file (default stdout)")
}
