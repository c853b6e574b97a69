package kvcards

import (
	"context"
	"path/filepath"

	"github.com/ukaji3/kvcards-go/pkg/kvcards/models"
	"github.com/ukaji3/kvcards-go/pkg/kvcards/parser"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
)

// openWorkbook opens a read-only handle. Callers must close it.
func openWorkbook(path string) (*excelize.File, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	return f, nil
}

// readSheet opens path and reads sheetName as a grid.
func readSheet(path, sheetName string) (*parser.Grid, error) {
	f, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if !parser.HasSheet(f, sheetName) {
		return nil, &SheetNotFoundError{Sheet: sheetName}
	}
	return parser.ReadGrid(f, sheetName)
}

// ListSheets returns sheet names in workbook order.
func ListSheets(path string) ([]string, error) {
	f, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.GetSheetList(), nil
}

// SheetRowCount returns the height of a sheet's used range.
// It returns 0 when the workbook or sheet cannot be read.
func SheetRowCount(path, sheetName string) int {
	g, err := readSheet(path, sheetName)
	if err != nil {
		return 0
	}
	return g.Height()
}

// HeaderRow returns the labels on the 1-based row of a sheet's used range,
// padded to the range width. Row 0 means the default first row.
func HeaderRow(path, sheetName string, row int) ([]string, error) {
	if row <= 0 {
		row = models.DefaultTitleRow
	}
	g, err := readSheet(path, sheetName)
	if err != nil {
		return nil, err
	}
	header, ok := g.Row(row)
	if !ok {
		return nil, &HeaderNotFoundError{Sheet: sheetName, Row: row, Height: g.Height()}
	}
	return header, nil
}

// ColumnNames returns the sheet column letters of each column index of a
// sheet's used range.
func ColumnNames(path, sheetName string) ([]string, error) {
	g, err := readSheet(path, sheetName)
	if err != nil {
		return nil, err
	}
	names := make([]string, g.Width)
	for i := range names {
		names[i] = g.ColumnName(i)
	}
	return names, nil
}

// SuggestTitleRow returns the row of the used range most likely to hold
// headers: the first row with the most non-empty cells.
// It returns 0 when the sheet is empty or cannot be read.
func SuggestTitleRow(path, sheetName string) int {
	g, err := readSheet(path, sheetName)
	if err != nil {
		return 0
	}
	return parser.DensestRow(g.Rows)
}

// Inspect summarizes every sheet of a workbook.
// Sheets are scanned concurrently, each with its own handle; a sheet that
// fails to scan is reported with zero counts.
func Inspect(ctx context.Context, path string, opts Options) (*models.WorkbookInfo, error) {
	names, err := ListSheets(path)
	if err != nil {
		return nil, err
	}

	sheets := make([]models.SheetInfo, len(names))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.Workers())

	for i, name := range names {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			info := models.SheetInfo{Name: name}
			if g, err := readSheet(path, name); err == nil {
				info.Range = g.Ref()
				info.Rows = g.Height()
				info.Cells = parser.CountNonEmpty(g.Rows)
				if opts.ShouldIncludeSuggestions() {
					info.SuggestedTitleRow = parser.DensestRow(g.Rows)
				}
			}
			sheets[i] = info
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return &models.WorkbookInfo{
		BookName: filepath.Base(path),
		Sheets:   sheets,
	}, nil
}
