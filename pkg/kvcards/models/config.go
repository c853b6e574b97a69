package models

import (
	"slices"
	"strconv"
	"strings"
)

// DefaultTitleRow is the header row used when none is specified.
const DefaultTitleRow = 1

// Config is an immutable snapshot of what drives extraction.
// Methods returning a Config never share the Columns backing array.
type Config struct {
	// Path is the workbook file path.
	Path string `json:"path" yaml:"path"`
	// Sheet is the sheet name.
	Sheet string `json:"sheet" yaml:"sheet"`
	// TitleRowIndex is the 1-based header row; 0 means unspecified.
	TitleRowIndex int `json:"title_row_index,omitempty" yaml:"title_row_index,omitempty"`
	// Columns is the ordered list of zero-based column indices.
	Columns []int `json:"columns_indexes" yaml:"columns_indexes"`
}

// HeaderRow returns the effective 1-based header row.
func (c Config) HeaderRow() int {
	if c.TitleRowIndex <= 0 {
		return DefaultTitleRow
	}
	return c.TitleRowIndex
}

// Clone returns a copy that shares no memory with c.
func (c Config) Clone() Config {
	c.Columns = slices.Clone(c.Columns)
	return c
}

// WithPath returns a copy of c with the path replaced.
func (c Config) WithPath(path string) Config {
	out := c.Clone()
	out.Path = path
	return out
}

// WithSheet returns a copy of c with the sheet replaced.
func (c Config) WithSheet(sheet string) Config {
	out := c.Clone()
	out.Sheet = sheet
	return out
}

// WithTitleRow returns a copy of c with the header row replaced.
func (c Config) WithTitleRow(row int) Config {
	out := c.Clone()
	out.TitleRowIndex = row
	return out
}

// WithColumns returns a copy of c with the column selection replaced.
func (c Config) WithColumns(columns []int) Config {
	out := c
	out.Columns = slices.Clone(columns)
	return out
}

// Equal reports whether c and o select the same cards.
// An unspecified header row equals an explicit row 1.
func (c Config) Equal(o Config) bool {
	return c.Path == o.Path &&
		c.Sheet == o.Sheet &&
		c.HeaderRow() == o.HeaderRow() &&
		slices.Equal(c.Columns, o.Columns)
}

// Key returns a string identity for c, equal for Equal configurations.
func (c Config) Key() string {
	var b strings.Builder
	b.WriteString(strconv.Quote(c.Path))
	b.WriteByte('|')
	b.WriteString(strconv.Quote(c.Sheet))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(c.HeaderRow()))
	b.WriteByte('|')
	for i, col := range c.Columns {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(col))
	}
	return b.String()
}
