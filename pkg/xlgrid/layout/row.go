// Package layout builds multi-row, possibly merged header grids and resolves
// them into a column-to-field order.
package layout

import (
	"errors"
	"fmt"

	"github.com/ukaji3/xlgrid/pkg/xlgrid/models"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/record"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/style"
)

var (
	// ErrDuplicateField indicates a field key bound twice in one header row.
	ErrDuplicateField = errors.New("duplicate field in header row")
	// ErrInvalidField indicates an empty field key.
	ErrInvalidField = errors.New("invalid field key")
)

// Cell is one label of the header grid.
type Cell struct {
	// Key is the bound field, or a "#<n>#" placeholder for decorative labels.
	Key string
	// Mapped reports whether Key names a data field.
	Mapped bool
	// Name is the display text.
	Name string
	// Address is where the label is rendered; multi-cell spans are merged.
	Address models.CellAddress
	// Style overrides the sheet header style when set.
	Style *style.Spec
}

// Field returns the bound field key, or false for a decorative label.
func (c Cell) Field() (string, bool) {
	if !c.Mapped {
		return "", false
	}
	return c.Key, true
}

// Option configures the placement or style of a header cell.
type Option func(*cellOptions)

type cellOptions struct {
	addr  *models.CellAddress
	err   error
	style *style.Spec
}

// At places the cell at an explicit address.
func At(addr models.CellAddress) Option {
	return func(o *cellOptions) {
		if err := addr.Validate(); err != nil {
			o.err = err
			return
		}
		o.addr = &addr
	}
}

// AtRange places the cell at an A1-style reference such as "A1:C2".
func AtRange(ref string) Option {
	return func(o *cellOptions) {
		addr, err := models.ParseRange(ref)
		if err != nil {
			o.err = err
			return
		}
		o.addr = &addr
	}
}

// Span places the cell at the given 0-based inclusive bounds.
func Span(firstRow, lastRow, firstCol, lastCol int) Option {
	return func(o *cellOptions) {
		addr, err := models.NewCellAddress(firstRow, lastRow, firstCol, lastCol)
		if err != nil {
			o.err = err
			return
		}
		o.addr = &addr
	}
}

// WithStyle sets the cell style.
func WithStyle(spec style.Spec) Option {
	return func(o *cellOptions) {
		o.style = &spec
	}
}

// Row is an ordered sequence of header cells. Insertion order defines the
// left-to-right precedence of default placement.
//
// Builder methods record the first error and ignore later calls; check it
// with Err or through Layout.Append.
type Row struct {
	cells           []Cell
	keys            map[string]struct{}
	labels          int
	hasFieldMapping bool
	maxRow          int
	maxCol          int
	err             error
}

// NewRow returns an empty header row.
func NewRow() *Row {
	return &Row{keys: make(map[string]struct{}), maxRow: -1, maxCol: -1}
}

// FromFields builds a row binding each discovered field to its label.
func FromFields(fields []record.Field, opts ...Option) *Row {
	r := NewRow()
	for _, f := range fields {
		r.Bind(f.Key, f.Label, opts...)
	}
	return r
}

// Bind maps field to a display label. Without an address the first cell of
// the row goes to (0,0,0,0) and each later cell to the right of the previous
// one, on the previous cell's first row.
func (r *Row) Bind(field, name string, opts ...Option) *Row {
	if r.err != nil {
		return r
	}
	if field == "" {
		r.err = fmt.Errorf("%w: empty key for %q", ErrInvalidField, name)
		return r
	}
	if _, dup := r.keys[field]; dup {
		r.err = fmt.Errorf("%w: %q", ErrDuplicateField, field)
		return r
	}
	if r.add(field, true, name, opts) {
		r.keys[field] = struct{}{}
		r.hasFieldMapping = true
	}
	return r
}

// Label adds a decorative header cell that is not bound to any field,
// such as a title spanning several columns.
func (r *Row) Label(name string, opts ...Option) *Row {
	if r.err != nil {
		return r
	}
	key := fmt.Sprintf("#%d#", r.labels)
	if r.add(key, false, name, opts) {
		r.labels++
	}
	return r
}

func (r *Row) add(key string, mapped bool, name string, opts []Option) bool {
	var o cellOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		r.err = fmt.Errorf("header cell %q: %w", name, o.err)
		return false
	}

	c := Cell{Key: key, Mapped: mapped, Name: name, Style: o.style}
	switch {
	case o.addr != nil:
		c.Address = *o.addr
	case len(r.cells) > 0:
		prev := r.cells[len(r.cells)-1]
		next := prev.Address.LastCol + 1
		c.Address = models.CellAddress{FirstRow: prev.Address.FirstRow, LastRow: prev.Address.FirstRow, FirstCol: next, LastCol: next}
	}

	r.cells = append(r.cells, c)
	r.track(c.Address)
	return true
}

func (r *Row) track(addr models.CellAddress) {
	r.maxRow = max(r.maxRow, addr.LastRow)
	r.maxCol = max(r.maxCol, addr.LastCol)
}

// Err returns the first builder error.
func (r *Row) Err() error { return r.err }

// Len returns the number of cells.
func (r *Row) Len() int { return len(r.cells) }

// Cells returns a copy of the cells in insertion order.
func (r *Row) Cells() []Cell {
	return append([]Cell(nil), r.cells...)
}

// Cell looks up a cell by field key or placeholder.
func (r *Row) Cell(key string) (Cell, bool) {
	for _, c := range r.cells {
		if c.Key == key {
			return c, true
		}
	}
	return Cell{}, false
}

// HasFieldMapping reports whether any cell is bound to a field.
func (r *Row) HasFieldMapping() bool { return r.hasFieldMapping }

// MaxRow returns the largest last row over the cells, or -1 when empty.
func (r *Row) MaxRow() int { return r.maxRow }

// MaxColumn returns the largest last column over the cells, or -1 when empty.
func (r *Row) MaxColumn() int { return r.maxCol }

func (r *Row) clone() *Row {
	c := *r
	c.cells = append([]Cell(nil), r.cells...)
	c.keys = make(map[string]struct{}, len(r.keys))
	for k := range r.keys {
		c.keys[k] = struct{}{}
	}
	return &c
}

// shift moves every cell confined to row 0 down by offset, keeping its
// column span. Cells reaching below row 0 stay where they are.
func (r *Row) shift(offset int) {
	r.maxRow, r.maxCol = -1, -1
	for i := range r.cells {
		if a := r.cells[i].Address; a.FirstRow == 0 && a.LastRow == 0 {
			r.cells[i].Address = a.Shift(offset)
		}
		r.track(r.cells[i].Address)
	}
}
