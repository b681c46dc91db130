package grid

import (
	"errors"
	"fmt"

	"github.com/ukaji3/xlgrid/pkg/xlgrid/models"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/style"
)

// ErrSheetIndex is returned for a sheet index outside the workbook.
var ErrSheetIndex = errors.New("sheet index out of range")

// ErrAutoSizeUnsupported is returned by sinks that cannot re-read written
// rows.
var ErrAutoSizeUnsupported = errors.New("auto-size not supported by streaming sheet")

// MemoryCell is a cell held in memory.
type MemoryCell struct {
	Val   any
	Style style.Handle
}

// Value implements Cell.
func (c *MemoryCell) Value() any { return c.Val }

// SetValue implements SinkCell.
func (c *MemoryCell) SetValue(v string) error {
	c.Val = v
	return nil
}

// SetStyle implements SinkCell.
func (c *MemoryCell) SetStyle(h style.Handle) error {
	c.Style = h
	return nil
}

// MemoryRow is a sparse row of cells.
type MemoryRow struct {
	cells map[int]*MemoryCell
	width int
}

// CreateCell implements SinkRow.
func (r *MemoryRow) CreateCell(col int) (SinkCell, error) {
	if col < 0 {
		return nil, fmt.Errorf("%w: column %d", models.ErrInvalidAddress, col)
	}
	c := &MemoryCell{}
	r.cells[col] = c
	r.width = max(r.width, col+1)
	return c, nil
}

// Len implements Row.
func (r *MemoryRow) Len() int { return r.width }

// Cell implements Row.
func (r *MemoryRow) Cell(col int) (Cell, bool) {
	c, ok := r.cells[col]
	if !ok {
		return nil, false
	}
	return c, true
}

// MemorySheet is an in-memory sheet usable as both Sink and row source.
type MemorySheet struct {
	Name      string
	rows      map[int]*MemoryRow
	merges    []models.CellAddress
	widths    map[int]float64
	autoSized []int
	streaming bool
	reads     int
}

// CreateRow implements Sink. Creating an existing row returns it.
func (s *MemorySheet) CreateRow(index int) (SinkRow, error) {
	if index < 0 {
		return nil, fmt.Errorf("%w: row %d", models.ErrInvalidAddress, index)
	}
	if r, ok := s.rows[index]; ok {
		return r, nil
	}
	r := &MemoryRow{cells: make(map[int]*MemoryCell)}
	s.rows[index] = r
	return r, nil
}

// AddMergedRegion implements Sink.
func (s *MemorySheet) AddMergedRegion(addr models.CellAddress) error {
	if err := addr.Validate(); err != nil {
		return err
	}
	s.merges = append(s.merges, addr)
	return nil
}

// AutoSizeColumn implements Sink.
func (s *MemorySheet) AutoSizeColumn(col int) error {
	if s.streaming {
		return ErrAutoSizeUnsupported
	}
	s.autoSized = append(s.autoSized, col)
	return nil
}

// SetColumnWidth implements Sink.
func (s *MemorySheet) SetColumnWidth(col int, width float64) error {
	s.widths[col] = width
	return nil
}

// Capabilities implements Sink.
func (s *MemorySheet) Capabilities() Capabilities {
	return Capabilities{AutoSize: !s.streaming}
}

// Value returns the value at row, col.
func (s *MemorySheet) Value(row, col int) (any, bool) {
	r, ok := s.rows[row]
	if !ok {
		return nil, false
	}
	c, ok := r.cells[col]
	if !ok {
		return nil, false
	}
	return c.Val, true
}

// StyleAt returns the style handle at row, col.
func (s *MemorySheet) StyleAt(row, col int) style.Handle {
	if r, ok := s.rows[row]; ok {
		if c, ok := r.cells[col]; ok {
			return c.Style
		}
	}
	return 0
}

// SetRow replaces a row with the given values; nil leaves a column absent.
func (s *MemorySheet) SetRow(index int, values ...any) {
	r := &MemoryRow{cells: make(map[int]*MemoryCell)}
	for i, v := range values {
		if v == nil {
			continue
		}
		r.cells[i] = &MemoryCell{Val: v}
		r.width = i + 1
	}
	s.rows[index] = r
}

// RowCount is one past the last row index holding a row.
func (s *MemorySheet) RowCount() int {
	n := 0
	for i := range s.rows {
		n = max(n, i+1)
	}
	return n
}

// Merges returns the registered merged regions in order.
func (s *MemorySheet) Merges() []models.CellAddress { return s.merges }

// Widths returns the manual column widths.
func (s *MemorySheet) Widths() map[int]float64 { return s.widths }

// AutoSized returns the columns auto-sized, in call order.
func (s *MemorySheet) AutoSized() []int { return s.autoSized }

// Reads returns how many rows iterators have pulled from the sheet.
func (s *MemorySheet) Reads() int { return s.reads }

// Memory is an in-memory Workbook. It counts Close calls so callers can
// check resource release.
type Memory struct {
	sheets []*MemorySheet
	closes int
}

// NewMemory returns an empty workbook.
func NewMemory() *Memory { return &Memory{} }

// AddSheet appends a sheet. A streaming sheet reports no auto-size capability.
func (m *Memory) AddSheet(name string, streaming bool) *MemorySheet {
	s := &MemorySheet{
		Name:      name,
		rows:      make(map[int]*MemoryRow),
		widths:    make(map[int]float64),
		streaming: streaming,
	}
	m.sheets = append(m.sheets, s)
	return s
}

// Sheet returns the sheet at index, or nil.
func (m *Memory) Sheet(index int) *MemorySheet {
	if index < 0 || index >= len(m.sheets) {
		return nil
	}
	return m.sheets[index]
}

// Sheets implements Workbook.
func (m *Memory) Sheets() ([]models.SheetInfo, error) {
	var out []models.SheetInfo
	for i, s := range m.sheets {
		if len(s.rows) == 0 {
			continue
		}
		out = append(out, models.SheetInfo{Index: i, Name: s.Name, Rows: len(s.rows)})
	}
	return out, nil
}

// RowIterator implements Workbook. Rows missing between populated rows are
// returned as empty rows.
func (m *Memory) RowIterator(sheetIndex int) (RowIterator, error) {
	s := m.Sheet(sheetIndex)
	if s == nil {
		return nil, fmt.Errorf("%w: %d", ErrSheetIndex, sheetIndex)
	}
	return &memoryIterator{sheet: s, total: s.RowCount(), cur: -1}, nil
}

// Close implements Workbook.
func (m *Memory) Close() error {
	m.closes++
	return nil
}

// Closes returns how many times Close was called.
func (m *Memory) Closes() int { return m.closes }

type memoryIterator struct {
	sheet  *MemorySheet
	total  int
	cur    int
	closed bool
}

func (it *memoryIterator) Next() bool {
	if it.closed || it.cur+1 >= it.total {
		return false
	}
	it.cur++
	it.sheet.reads++
	return true
}

func (it *memoryIterator) Row() (Row, error) {
	if r, ok := it.sheet.rows[it.cur]; ok {
		return r, nil
	}
	return &MemoryRow{cells: map[int]*MemoryCell{}}, nil
}

func (it *memoryIterator) Close() error {
	it.closed = true
	return nil
}
