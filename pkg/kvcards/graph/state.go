package graph

import (
	"slices"

	"github.com/ukaji3/kvcards-go/pkg/kvcards/models"
)

// State is a consistent view of a session. Slices are owned by the caller.
type State struct {
	Input      Input
	Resolution models.PathResolution
	Candidates []string

	Sheets []string
	// SheetKnown is set when the chosen sheet is in Sheets.
	SheetKnown bool

	RowCount int
	// TitleRowValid is set when the header row lies within RowCount.
	TitleRowValid bool

	Headers   []string
	HeaderErr error
	// ColumnLabels holds the header label of each selected column,
	// "" for columns outside the header.
	ColumnLabels []string
	// ColumnIssues lists selected columns outside the header width.
	ColumnIssues []int

	// Config is set when the input is complete.
	Config *models.Config
	// Missing names the unmet completeness conditions.
	Missing []string

	Submitted bool
	Cards     []models.Card
	CardsErr  error

	// Pending is set while any stage is running.
	Pending bool
}

// Complete reports whether extraction may run.
func (s State) Complete() bool {
	return s.Config != nil
}

// snapshot builds a State. Callers hold g.mu.
func (g *Graph) snapshot() State {
	in := g.input.clone()
	st := State{
		Input:      in,
		Resolution: g.resolve.value,
		Candidates: slices.Clone(g.complete.value),
		Sheets:     slices.Clone(g.sheets.value),
		RowCount:   g.rows.value,
		Headers:    slices.Clone(g.header.value),
		HeaderErr:  g.header.err,
		Submitted:  g.submitted,
		Cards:      slices.Clone(g.cards.value),
		CardsErr:   g.cards.err,
		Pending:    g.pending(),
	}

	st.SheetKnown = in.Sheet != "" && slices.Contains(st.Sheets, in.Sheet)

	if workbookPath(st.Resolution) != "" && in.Sheet != "" && g.rows.settled() {
		row := headerRow(in.TitleRow)
		st.TitleRowValid = row >= 1 && row <= st.RowCount
	}

	if st.Headers != nil {
		st.ColumnLabels = make([]string, len(in.Columns))
		for i, col := range in.Columns {
			if col >= 0 && col < len(st.Headers) {
				st.ColumnLabels[i] = st.Headers[col]
			} else {
				st.ColumnIssues = append(st.ColumnIssues, col)
			}
		}
	}

	cfg, missing := Gate(in, st.Resolution)
	if len(missing) == 0 {
		st.Config = &cfg
	}
	st.Missing = missing

	return st
}
