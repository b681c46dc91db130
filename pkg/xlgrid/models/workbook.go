package models

// WorkbookInfo summarizes the layout of an opened workbook.
type WorkbookInfo struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets lists the non-empty sheets in workbook order.
	Sheets []SheetSummary `json:"sheets"`
}

// SheetSummary describes where the data of one sheet sits.
type SheetSummary struct {
	SheetInfo
	// HeaderRow is the 0-based detected header row, or -1 if none was found.
	HeaderRow int `json:"header_row"`
	// Merges lists the merged regions.
	Merges []CellAddress `json:"merges,omitempty"`
	// PrintAreas lists the print areas.
	PrintAreas []CellAddress `json:"print_areas,omitempty"`
	// PrintTitleRows is the number of leading rows repeated on every
	// printed page.
	PrintTitleRows int `json:"print_title_rows,omitempty"`
}
