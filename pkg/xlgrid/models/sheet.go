package models

// SheetInfo describes a non-empty sheet of an opened workbook.
type SheetInfo struct {
	// Index is the 0-based position of the sheet in the workbook.
	Index int `json:"index"`
	// Name is the sheet name.
	Name string `json:"name"`
	// Rows is the number of rows holding data.
	Rows int `json:"rows"`
}
