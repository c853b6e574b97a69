// Package parser provides excelize-level sheet reading utilities.
package parser

import (
	"slices"

	"github.com/xuri/excelize/v2"
)

// Grid is a sheet's used range as a rectangle of cell text.
// Row i of Rows is the range's row i+1 and column j is its column j, so a
// range starting at B3 has B3 at Rows[0][0].
type Grid struct {
	Rows  [][]string
	Width int
	// Range locates the grid on the sheet, 0-based. Zero for an empty sheet.
	Range Bounds
}

// Height returns the number of rows in the used range.
func (g *Grid) Height() int {
	return len(g.Rows)
}

// Row returns the 1-based row n of the used range.
func (g *Grid) Row(n int) ([]string, bool) {
	if n < 1 || n > len(g.Rows) {
		return nil, false
	}
	return g.Rows[n-1], true
}

// ColumnName returns the sheet column letters of grid column col.
func (g *Grid) ColumnName(col int) string {
	name, err := excelize.ColumnNumberToName(g.Range.MinCol + col + 1)
	if err != nil {
		return ""
	}
	return name
}

// Ref returns the used range in A1 notation, or "" for an empty sheet.
func (g *Grid) Ref() string {
	if len(g.Rows) == 0 {
		return ""
	}
	first, err := excelize.CoordinatesToCellName(g.Range.MinCol+1, g.Range.MinRow+1)
	if err != nil {
		return ""
	}
	last, err := excelize.CoordinatesToCellName(g.Range.MaxCol+1, g.Range.MaxRow+1)
	if err != nil {
		return ""
	}
	return first + ":" + last
}

// HasSheet reports whether the workbook contains a sheet named exactly
// sheetName. excelize's own lookup ignores case.
func HasSheet(f *excelize.File, sheetName string) bool {
	return slices.Contains(f.GetSheetList(), sheetName)
}

// ReadGrid reads the used range of a sheet into a Grid.
func ReadGrid(f *excelize.File, sheetName string) (*Grid, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	return NewGrid(rows), nil
}

// NewGrid crops ragged sheet rows to the bounding box of their non-empty
// cells and pads every row to its width.
func NewGrid(rows [][]string) *Grid {
	b, ok := FindBounds(rows)
	if !ok {
		return &Grid{}
	}

	width := b.Width()
	out := make([][]string, 0, b.Height())
	for _, src := range rows[b.MinRow : b.MaxRow+1] {
		row := make([]string, width)
		if b.MinCol < len(src) {
			copy(row, src[b.MinCol:])
		}
		out = append(out, row)
	}

	return &Grid{Rows: out, Width: width, Range: b}
}
