// Package grid defines the narrow cell-level interfaces the codec writes to
// and reads from. Workbook encodings live behind them.
package grid

import (
	"io"

	"github.com/ukaji3/xlgrid/pkg/xlgrid/models"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/style"
)

// Capabilities describes optional sink behavior.
type Capabilities struct {
	// AutoSize is false for sinks that stream rows out and cannot re-read them.
	AutoSize bool
}

// Sink receives cells for one sheet.
//
// Rows are created in ascending order. A row is complete once a row with a
// higher index has been created.
type Sink interface {
	CreateRow(index int) (SinkRow, error)
	AddMergedRegion(addr models.CellAddress) error
	AutoSizeColumn(col int) error
	SetColumnWidth(col int, width float64) error
	Capabilities() Capabilities
}

// SinkRow creates cells within one row.
type SinkRow interface {
	CreateCell(col int) (SinkCell, error)
}

// SinkCell receives a rendered value and an optional style.
type SinkCell interface {
	SetValue(v string) error
	SetStyle(h style.Handle) error
}

// Workbook is a readable, closeable grid of sheets.
type Workbook interface {
	io.Closer
	// Sheets lists the non-empty sheets.
	Sheets() ([]models.SheetInfo, error)
	// RowIterator walks the rows of the sheet at index in physical order.
	RowIterator(sheetIndex int) (RowIterator, error)
}

// RowIterator is a forward-only cursor over the rows of one sheet.
type RowIterator interface {
	Next() bool
	Row() (Row, error)
	Close() error
}

// Row gives access to the cells of one source row.
type Row interface {
	// Len is one past the last column holding a cell.
	Len() int
	// Cell returns the cell at col, or false if it is structurally absent.
	Cell(col int) (Cell, bool)
}

// Cell exposes the rendered scalar of a source cell: string, bool, int64,
// float64, time.Time, or formula text.
type Cell interface {
	Value() any
}
