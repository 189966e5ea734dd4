package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spendy-ai/spendy/internal/source"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Bulk import transactions from a CSV file",
	Long: "Imports transactions from a CSV file with a header row. Required\n" +
		"columns: item, category, kind, amount, date. Optional: time,\n" +
		"location, latitude, longitude. Bad rows are skipped and reported.",
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	e, cfg, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	user := currentUser(cfg)

	result, err := source.ParseFile(args[0], user)
	if err != nil {
		return err
	}

	for _, re := range result.RowErrors {
		fmt.Fprintf(os.Stderr, "  line %d: %v (skipped)\n", re.Line, re.Err)
	}

	if len(result.Transactions) == 0 {
		fmt.Println("\n  No importable rows found.")
		return nil
	}

	n, err := e.ImportTransactions(result.Transactions)
	if err != nil {
		return err
	}

	fmt.Printf("\n  Imported %d transactions for %s", n, user)
	if len(result.RowErrors) > 0 {
		fmt.Printf(" (%d rows skipped)", len(result.RowErrors))
	}
	fmt.Println()
	return nil
}
