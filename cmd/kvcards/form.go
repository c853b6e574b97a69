package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/ukaji3/kvcards-go/pkg/kvcards"
	"github.com/ukaji3/kvcards-go/pkg/kvcards/config"
	"github.com/ukaji3/kvcards-go/pkg/kvcards/graph"
)

// stageTimeout bounds how long a prompt waits for the graph to settle.
const stageTimeout = 10 * time.Second

// settled waits for the graph with a per-prompt timeout.
func settled(ctx context.Context, g *graph.Graph) (graph.State, error) {
	ctx, cancel := context.WithTimeout(ctx, stageTimeout)
	defer cancel()
	return g.Wait(ctx)
}

func newFormCmd() *cobra.Command {
	var (
		ef      encodeFlags
		saveJob string
	)

	cmd := &cobra.Command{
		Use:   "form",
		Short: "Build a card configuration interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g := graph.New(graph.Options{Logger: logger})
			defer g.Close()

			in, err := runForm(cmd.Context(), g)
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			if err != nil {
				return err
			}

			if saveJob != "" {
				job := &config.Job{
					Title:    in.Title,
					Path:     in.Path,
					Sheet:    in.Sheet,
					TitleRow: in.TitleRow,
					Columns:  in.Columns,
				}
				if err := job.Save(saveJob); err != nil {
					return fmt.Errorf("failed to save job: %w", err)
				}
			}

			set, err := extract(cmd.Context(), g)
			if err != nil {
				return err
			}
			return ef.write(cmd, set)
		},
	}

	ef.register(cmd)
	cmd.Flags().StringVar(&saveJob, "save", "", "Save the configuration as a job file")
	return cmd
}

// runForm prompts for each field in dependency order, feeding every answer
// into the graph so later prompts offer choices from settled stages.
func runForm(ctx context.Context, g *graph.Graph) (graph.Input, error) {
	var title string
	err := huh.NewInput().
		Title("Card title").
		Value(&title).
		Validate(func(s string) error {
			g.SetTitle(s)
			if g.Snapshot().Input.Title == "" {
				return errors.New("title is required")
			}
			return nil
		}).
		Run()
	if err != nil {
		return graph.Input{}, err
	}

	var path string
	err = huh.NewInput().
		Title("Workbook path").
		Value(&path).
		SuggestionsFunc(func() []string {
			g.SetPath(path)
			st, _ := settled(ctx, g)
			return st.Candidates
		}, &path).
		Validate(func(s string) error {
			g.SetPath(s)
			st, err := settled(ctx, g)
			if err != nil {
				return err
			}
			for _, m := range st.Missing {
				if m == "path" {
					return errors.New(explain(st)[0])
				}
			}
			return nil
		}).
		Run()
	if err != nil {
		return graph.Input{}, err
	}

	st, err := settled(ctx, g)
	if err != nil {
		return graph.Input{}, err
	}
	if len(st.Sheets) == 0 {
		return graph.Input{}, fmt.Errorf("no readable sheets in %s", st.Input.Path)
	}

	var sheet string
	err = huh.NewSelect[string]().
		Title("Sheet").
		Options(huh.NewOptions(st.Sheets...)...).
		Value(&sheet).
		Run()
	if err != nil {
		return graph.Input{}, err
	}
	g.SetSheet(sheet)

	var rowText string
	err = huh.NewInput().
		Title("Header row").
		Placeholder("1").
		Value(&rowText).
		Validate(func(s string) error {
			row, err := config.ParseTitleRow(s)
			if err != nil {
				return err
			}
			g.SetTitleRow(row)
			st, err := settled(ctx, g)
			if err != nil {
				return err
			}
			if !st.TitleRowValid {
				return fmt.Errorf("header row must be between 1 and %d", st.RowCount)
			}
			return st.HeaderErr
		}).
		Run()
	if err != nil {
		return graph.Input{}, err
	}

	st, err = settled(ctx, g)
	if err != nil {
		return graph.Input{}, err
	}

	names, err := kvcards.ColumnNames(st.Input.Path, st.Input.Sheet)
	if err != nil {
		return graph.Input{}, err
	}
	options := make([]huh.Option[int], len(st.Headers))
	for i, label := range st.Headers {
		name := strconv.Itoa(i)
		if i < len(names) {
			name = names[i]
		}
		if label == "" {
			label = "(empty)"
		}
		options[i] = huh.NewOption(name+"  "+label, i)
	}

	var columns []int
	err = huh.NewMultiSelect[int]().
		Title("Columns").
		Options(options...).
		Value(&columns).
		Validate(func(cols []int) error {
			if len(cols) == 0 {
				return errors.New("select at least one column")
			}
			return nil
		}).
		Run()
	if err != nil {
		return graph.Input{}, err
	}
	g.SetColumns(columns)

	st, err = settled(ctx, g)
	if err != nil {
		return graph.Input{}, err
	}
	if !st.Complete() {
		return graph.Input{}, fmt.Errorf("configuration incomplete: missing %s", strconv.Quote(st.Missing[0]))
	}
	return st.Input, nil
}
