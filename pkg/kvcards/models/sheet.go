package models

// SheetInfo summarizes one sheet for configuration choices.
type SheetInfo struct {
	// Name is the sheet name.
	Name string `json:"name" yaml:"name"`
	// Range is the used range in A1 notation, empty when there is none.
	Range string `json:"range,omitempty" yaml:"range,omitempty"`
	// Rows is the height of the used range (0 when empty or unreadable).
	Rows int `json:"rows" yaml:"rows"`
	// SuggestedTitleRow is the densest row of the used range, 0 if none.
	SuggestedTitleRow int `json:"suggested_title_row,omitempty" yaml:"suggested_title_row,omitempty"`
	// Cells is the number of non-empty cells.
	Cells int `json:"cells" yaml:"cells"`
}
