package layout

import "fmt"

// Layout is the stack of header rows sitting above the data body.
//
// A Layout is mutated only while it is being built. It is not safe to
// append to a Layout while a write derived from it is in progress.
type Layout struct {
	rows   []*Row
	maxRow int
	maxCol int
	stale  bool
}

// New returns a layout holding rows, appended in order.
func New(rows ...*Row) (*Layout, error) {
	l := &Layout{maxRow: -1, maxCol: -1}
	for i, r := range rows {
		if err := l.Append(r); err != nil {
			return nil, fmt.Errorf("header row %d: %w", i, err)
		}
	}
	return l, nil
}

// Append adds a copy of row below the existing rows. Cells on row 0,
// whether placed by default or given an explicit row-0 span, are moved to
// the row after the current MaxRow, keeping their column span. Cells whose
// address reaches below row 0 stay where they are, which is how multi-row
// merges are expressed.
func (l *Layout) Append(row *Row) error {
	if row == nil {
		return nil
	}
	if err := row.Err(); err != nil {
		return err
	}

	offset := 0
	if !l.IsEmpty() {
		offset = l.MaxRow() + 1
	}
	r := row.clone()
	r.shift(offset)

	l.rows = append(l.rows, r)
	l.stale = true
	return nil
}

// IsEmpty reports whether the layout has no rows.
func (l *Layout) IsEmpty() bool {
	return l == nil || len(l.rows) == 0
}

// Rows returns the header rows top to bottom.
func (l *Layout) Rows() []*Row {
	if l == nil {
		return nil
	}
	return l.rows
}

// Cells returns every header cell, row by row in insertion order.
func (l *Layout) Cells() []Cell {
	var cells []Cell
	for _, r := range l.Rows() {
		cells = append(cells, r.cells...)
	}
	return cells
}

// MaxRow returns the bottom row used by the header, or -1 when empty.
func (l *Layout) MaxRow() int {
	if l.IsEmpty() {
		return -1
	}
	l.refresh()
	return l.maxRow
}

// MaxColumn returns the rightmost column used by the header, or -1 when empty.
func (l *Layout) MaxColumn() int {
	if l.IsEmpty() {
		return -1
	}
	l.refresh()
	return l.maxCol
}

// Height returns the number of grid rows taken by the header.
func (l *Layout) Height() int {
	return l.MaxRow() + 1
}

// HasFieldMapping reports whether any cell in any row is bound to a field.
func (l *Layout) HasFieldMapping() bool {
	for _, r := range l.Rows() {
		if r.HasFieldMapping() {
			return true
		}
	}
	return false
}

// Clone returns a deep copy that can be extended independently.
func (l *Layout) Clone() *Layout {
	c := &Layout{maxRow: -1, maxCol: -1, stale: true}
	for _, r := range l.Rows() {
		c.rows = append(c.rows, r.clone())
	}
	return c
}

func (l *Layout) refresh() {
	if !l.stale {
		return
	}
	l.maxRow, l.maxCol = -1, -1
	for _, r := range l.rows {
		l.maxRow = max(l.maxRow, r.MaxRow())
		l.maxCol = max(l.maxCol, r.MaxColumn())
	}
	l.stale = false
}
