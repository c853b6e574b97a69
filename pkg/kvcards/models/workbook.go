package models

// WorkbookInfo represents the structure of a workbook.
type WorkbookInfo struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name" yaml:"book_name"`
	// Sheets lists sheets in workbook order.
	Sheets []SheetInfo `json:"sheets" yaml:"sheets"`
}
