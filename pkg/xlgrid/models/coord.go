package models

import "fmt"

// Coord identifies a body cell relative to the first data row.
type Coord struct {
	// Row is the 0-based record index.
	Row int `json:"row"`
	// Col is the 0-based column index.
	Col int `json:"col"`
}

// NewCoord returns a coordinate, rejecting negative values.
func NewCoord(row, col int) (Coord, error) {
	if row < 0 || col < 0 {
		return Coord{}, fmt.Errorf("%w: coord (%d,%d)", ErrInvalidAddress, row, col)
	}
	return Coord{Row: row, Col: col}, nil
}
