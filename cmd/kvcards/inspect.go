package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/ukaji3/kvcards-go/pkg/kvcards"
)

func newInspectCmd() *cobra.Command {
	var (
		ef          encodeFlags
		concurrency int
		noSuggest   bool
	)

	cmd := &cobra.Command{
		Use:               "inspect [input.xlsx]",
		Short:             "List sheets with row counts and suggested header rows",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeWorkbookPath,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]
			if _, err := os.Stat(inputPath); os.IsNotExist(err) {
				return fmt.Errorf("file not found: %s", inputPath)
			}

			opts := kvcards.DefaultOptions()
			opts.Concurrency = concurrency
			if noSuggest {
				suggest := false
				opts.IncludeSuggestions = &suggest
			}

			info, err := kvcards.Inspect(cmd.Context(), inputPath, opts)
			if err != nil {
				return fmt.Errorf("inspection failed: %w", err)
			}
			return ef.write(cmd, info)
		},
	}

	ef.register(cmd)
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Sheets scanned at once (default: number of CPUs)")
	cmd.Flags().BoolVar(&noSuggest, "no-suggest", false, "Skip suggested header rows")
	return cmd
}

func newHeadersCmd() *cobra.Command {
	var (
		sheet    string
		titleRow int
	)

	cmd := &cobra.Command{
		Use:               "headers [input.xlsx]",
		Short:             "Show the column indices and labels of a header row",
		Long: `headers lists the labels of a header row. Rows and column indices count
from the sheet's used range; COLUMN gives the sheet column letters.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeWorkbookPath,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sheet == "" {
				sheets, err := kvcards.ListSheets(args[0])
				if err != nil {
					return err
				}
				if len(sheets) == 0 {
					return fmt.Errorf("workbook has no sheets")
				}
				sheet = sheets[0]
			}

			labels, err := kvcards.HeaderRow(args[0], sheet, titleRow)
			if err != nil {
				return err
			}
			names, err := kvcards.ColumnNames(args[0], sheet)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "INDEX\tCOLUMN\tLABEL")
			for i, label := range labels {
				name := ""
				if i < len(names) {
					name = names[i]
				}
				fmt.Fprintf(w, "%d\t%s\t%s\n", i, name, label)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&sheet, "sheet", "s", "", "Sheet name (default: first sheet)")
	cmd.Flags().IntVarP(&titleRow, "title-row", "r", 1, "1-based header row")
	return cmd
}
