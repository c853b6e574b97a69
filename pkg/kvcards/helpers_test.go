package kvcards

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook saves sheets (name -> rows starting at A1) to a temp xlsx file.
// The first sheet replaces the default "Sheet1".
func writeWorkbook(t *testing.T, sheets map[string][][]any, order ...string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			if len(row) == 0 {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

// peopleBook is the header/two-row sheet used across tests.
func peopleBook(t *testing.T) string {
	t.Helper()
	return writeWorkbook(t, map[string][][]any{
		"People": {
			{"id", "name", "age"},
			{"1", "Ali", "30"},
			{"2", "", "25"},
		},
	}, "People")
}

// offsetBook holds a small table whose used range starts at B3.
func offsetBook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "B3", &[]any{"id", "name"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "B4", &[]any{"1", "Ali"}))

	path := filepath.Join(t.TempDir(), "offset.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}
