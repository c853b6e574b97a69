package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/kvcards-go/pkg/kvcards"
	"github.com/ukaji3/kvcards-go/pkg/kvcards/config"
	"github.com/ukaji3/kvcards-go/pkg/kvcards/graph"
	"github.com/ukaji3/kvcards-go/pkg/kvcards/models"
)

// configFlags describe a card configuration on the command line.
// Flags override the values of a job file.
type configFlags struct {
	job      string
	sheet    string
	titleRow string
	columns  string
	title    string
}

func (f *configFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.job, "job", "", "YAML job file with title, path, sheet, title_row and columns")
	cmd.Flags().StringVarP(&f.sheet, "sheet", "s", "", "Sheet name")
	cmd.Flags().StringVarP(&f.titleRow, "title-row", "r", "", "1-based header row (default: 1)")
	cmd.Flags().StringVarP(&f.columns, "columns", "c", "", "Comma-separated zero-based column indices, e.g. 1,2")
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "Card title")
}

// input merges the job file, the positional path and the flags.
func (f *configFlags) input(cmd *cobra.Command, args []string) (graph.Input, error) {
	var in graph.Input
	if f.job != "" {
		job, err := config.Load(f.job)
		if err != nil {
			return in, err
		}
		cfg := job.Config()
		in = graph.Input{
			Path:     cfg.Path,
			Sheet:    cfg.Sheet,
			TitleRow: cfg.TitleRowIndex,
			Columns:  cfg.Columns,
			Title:    job.Title,
		}
	}

	if len(args) > 0 {
		in.Path = args[0]
	}
	flags := cmd.Flags()
	if flags.Changed("sheet") {
		in.Sheet = f.sheet
	}
	if flags.Changed("title-row") {
		row, err := config.ParseTitleRow(f.titleRow)
		if err != nil {
			return in, err
		}
		in.TitleRow = row
	}
	if flags.Changed("columns") {
		cols, err := config.ParseColumns(f.columns)
		if err != nil {
			return in, err
		}
		in.Columns = cols
	}
	if flags.Changed("title") {
		in.Title = f.title
	}
	return in, nil
}

func apply(g *graph.Graph, in graph.Input) {
	g.SetPath(in.Path)
	g.SetSheet(in.Sheet)
	g.SetTitleRow(in.TitleRow)
	g.SetColumns(in.Columns)
	g.SetTitle(in.Title)
}

// explain turns unmet conditions of a settled state into messages.
func explain(st graph.State) []string {
	var reasons []string
	for _, m := range st.Missing {
		switch m {
		case "path":
			switch {
			case st.Input.Path == "":
				reasons = append(reasons, "no workbook path given")
			case st.Resolution.Kind != models.PathExists:
				reasons = append(reasons, fmt.Sprintf("file not found: %s", st.Input.Path))
			default:
				reasons = append(reasons, fmt.Sprintf("not an xlsx workbook: %s", st.Input.Path))
			}
		case "sheet":
			reasons = append(reasons, fmt.Sprintf("no sheet given (available: %s)", strings.Join(st.Sheets, ", ")))
		case "columns":
			reasons = append(reasons, "no columns selected")
		case "title":
			reasons = append(reasons, "no card title given")
		}
	}
	if st.Input.Sheet != "" && st.Sheets != nil && !st.SheetKnown {
		reasons = append(reasons, fmt.Sprintf("sheet %q not in workbook (available: %s)", st.Input.Sheet, strings.Join(st.Sheets, ", ")))
	}
	return reasons
}

// extract runs the graph to completion and returns the card set.
func extract(ctx context.Context, g *graph.Graph) (*models.CardSet, error) {
	st, err := g.Wait(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := g.Submit(); err != nil {
		return nil, fmt.Errorf("%w: %s", err, strings.Join(explain(st), "; "))
	}

	st, err = g.Wait(ctx)
	if err != nil {
		return nil, err
	}
	if st.CardsErr != nil {
		return nil, fmt.Errorf("extraction failed: %w", st.CardsErr)
	}
	if st.Config == nil {
		return nil, kvcards.ErrIncomplete
	}

	cards := st.Cards
	if cards == nil {
		cards = []models.Card{}
	}
	return &models.CardSet{Title: st.Input.Title, Config: *st.Config, Cards: cards}, nil
}

func newCardsCmd() *cobra.Command {
	var (
		cf configFlags
		ef encodeFlags
	)

	cmd := &cobra.Command{
		Use:   "cards [input.xlsx]",
		Short: "Extract cards from a sheet",
		Example: `  kvcards cards staff.xlsx --sheet People --columns 1,2 --title Staff
  kvcards cards --job staff.yaml --format yaml`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeWorkbookPath,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := cf.input(cmd, args)
			if err != nil {
				return err
			}

			g := graph.New(graph.Options{Logger: logger})
			defer g.Close()
			apply(g, in)

			set, err := extract(cmd.Context(), g)
			if err != nil {
				return err
			}
			return ef.write(cmd, set)
		},
	}

	cf.register(cmd)
	ef.register(cmd)
	return cmd
}
