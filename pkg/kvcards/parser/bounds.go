package parser

// Bounds is the bounding box of non-empty cells.
// All fields are 0-based and inclusive.
type Bounds struct {
	MinRow, MaxRow int
	MinCol, MaxCol int
}

// Height returns the number of rows b spans.
func (b Bounds) Height() int {
	return b.MaxRow - b.MinRow + 1
}

// Width returns the number of columns b spans.
func (b Bounds) Width() int {
	return b.MaxCol - b.MinCol + 1
}

// FindBounds finds the bounding box of non-empty cells.
// ok is false when every cell is empty.
func FindBounds(rows [][]string) (b Bounds, ok bool) {
	for r, row := range rows {
		first, last, found := span(row)
		if !found {
			continue
		}
		if !ok {
			b = Bounds{MinRow: r, MaxRow: r, MinCol: first, MaxCol: last}
			ok = true
			continue
		}
		b.MaxRow = r
		b.MinCol = min(b.MinCol, first)
		b.MaxCol = max(b.MaxCol, last)
	}
	return b, ok
}

// span returns the first and last non-empty column of row.
func span(row []string) (first, last int, ok bool) {
	first = -1
	for c, cell := range row {
		if cell == "" {
			continue
		}
		if first < 0 {
			first = c
		}
		last = c
	}
	return first, last, first >= 0
}

// RowCounts returns the number of non-empty cells in each row.
func RowCounts(rows [][]string) []int {
	counts := make([]int, len(rows))
	for r, row := range rows {
		for _, cell := range row {
			if cell != "" {
				counts[r]++
			}
		}
	}
	return counts
}

// CountNonEmpty counts the non-empty cells of rows.
func CountNonEmpty(rows [][]string) int {
	total := 0
	for _, n := range RowCounts(rows) {
		total += n
	}
	return total
}

// DensestRow returns the 1-based index of the first row holding the most
// non-empty cells, or 0 when every row is empty.
func DensestRow(rows [][]string) int {
	best, bestCount := 0, 0
	for r, n := range RowCounts(rows) {
		if n > bestCount {
			best, bestCount = r+1, n
		}
	}
	return best
}
