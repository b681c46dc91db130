// Package models defines the value types shared by the header layout engine
// and the row codec.
package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrInvalidAddress indicates a negative or inverted cell coordinate.
var ErrInvalidAddress = errors.New("invalid cell address")

// CellAddress represents a rectangular span of cells.
// All coordinates are 0-based and inclusive.
type CellAddress struct {
	// FirstRow is the top row of the span.
	FirstRow int `json:"first_row"`
	// LastRow is the bottom row of the span.
	LastRow int `json:"last_row"`
	// FirstCol is the leftmost column of the span.
	FirstCol int `json:"first_col"`
	// LastCol is the rightmost column of the span.
	LastCol int `json:"last_col"`
}

// NewCellAddress validates the bounds and returns the span.
func NewCellAddress(firstRow, lastRow, firstCol, lastCol int) (CellAddress, error) {
	addr := CellAddress{FirstRow: firstRow, LastRow: lastRow, FirstCol: firstCol, LastCol: lastCol}
	if err := addr.Validate(); err != nil {
		return CellAddress{}, err
	}
	return addr, nil
}

// Cell returns the address of the single cell at row, col.
func Cell(row, col int) (CellAddress, error) {
	return NewCellAddress(row, row, col, col)
}

// ParseRange parses an A1-style reference such as "B2", "A1:C2" or "$A$1:$C$2".
func ParseRange(ref string) (CellAddress, error) {
	ref = strings.ReplaceAll(strings.TrimSpace(ref), "$", "")
	parts := strings.Split(ref, ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return CellAddress{}, fmt.Errorf("%w: %q", ErrInvalidAddress, ref)
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return CellAddress{}, fmt.Errorf("%w: %q: %v", ErrInvalidAddress, ref, err)
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return CellAddress{}, fmt.Errorf("%w: %q: %v", ErrInvalidAddress, ref, err)
	}

	return NewCellAddress(startRow-1, endRow-1, startCol-1, endCol-1)
}

// MustParseRange is like ParseRange but panics on error.
// Use it only with constant references.
func MustParseRange(ref string) CellAddress {
	addr, err := ParseRange(ref)
	if err != nil {
		panic(err)
	}
	return addr
}

// Validate reports ErrInvalidAddress for negative or inverted bounds.
func (a CellAddress) Validate() error {
	switch {
	case a.FirstRow < 0 || a.LastRow < 0 || a.FirstCol < 0 || a.LastCol < 0:
		return fmt.Errorf("%w: negative coordinate in %v", ErrInvalidAddress, a)
	case a.FirstRow > a.LastRow:
		return fmt.Errorf("%w: first row %d after last row %d", ErrInvalidAddress, a.FirstRow, a.LastRow)
	case a.FirstCol > a.LastCol:
		return fmt.Errorf("%w: first column %d after last column %d", ErrInvalidAddress, a.FirstCol, a.LastCol)
	}
	return nil
}

// IsMerged reports whether the span covers more than one cell.
func (a CellAddress) IsMerged() bool {
	return a.FirstRow != a.LastRow || a.FirstCol != a.LastCol
}

// Overlaps reports whether both the row and the column ranges intersect.
func (a CellAddress) Overlaps(b CellAddress) bool {
	return a.FirstRow <= b.LastRow && b.FirstRow <= a.LastRow &&
		a.FirstCol <= b.LastCol && b.FirstCol <= a.LastCol
}

// Shift returns the span moved down by rows, keeping its height and columns.
func (a CellAddress) Shift(rows int) CellAddress {
	a.FirstRow += rows
	a.LastRow += rows
	return a
}

// TopLeft returns the A1-style name of the first cell.
func (a CellAddress) TopLeft() string {
	name, _ := excelize.CoordinatesToCellName(a.FirstCol+1, a.FirstRow+1)
	return name
}

// BottomRight returns the A1-style name of the last cell.
func (a CellAddress) BottomRight() string {
	name, _ := excelize.CoordinatesToCellName(a.LastCol+1, a.LastRow+1)
	return name
}

// String formats the span as an A1 reference, e.g. "A1:C2" or "B3".
func (a CellAddress) String() string {
	if a.Validate() != nil {
		return fmt.Sprintf("(%d,%d,%d,%d)", a.FirstRow, a.LastRow, a.FirstCol, a.LastCol)
	}
	if !a.IsMerged() {
		return a.TopLeft()
	}
	return a.TopLeft() + ":" + a.BottomRight()
}

// MarshalText encodes the span as its A1 reference.
func (a CellAddress) MarshalText() ([]byte, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return []byte(a.String()), nil
}

// UnmarshalText parses an A1 reference.
func (a *CellAddress) UnmarshalText(text []byte) error {
	addr, err := ParseRange(string(text))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
