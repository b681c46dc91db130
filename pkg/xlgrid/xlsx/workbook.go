package xlsx

import (
	"fmt"

	"github.com/ukaji3/xlgrid/pkg/xlgrid/grid"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/models"
	"github.com/xuri/excelize/v2"
)

// Workbook is a readable xlsx workbook.
type Workbook struct {
	f   *excelize.File
	raw bool
}

// Option configures an opened Workbook.
type Option func(*Workbook)

// WithRawStrings returns every cell as its formatted text.
//
// Raw reads stream the worksheet part row by row. Typed reads look up each
// cell's formula, type and style, which makes excelize parse the whole
// worksheet into memory on the first row; large sheets should be read raw.
func WithRawStrings(raw bool) Option {
	return func(w *Workbook) { w.raw = raw }
}

// NewWorkbook wraps an opened excelize file.
func NewWorkbook(f *excelize.File, opts ...Option) *Workbook {
	w := &Workbook{f: f}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// File returns the underlying excelize file.
func (w *Workbook) File() *excelize.File { return w.f }

// Sheets implements grid.Workbook. Sheets without any non-empty row are
// left out; Index refers to the position in the workbook.
func (w *Workbook) Sheets() ([]models.SheetInfo, error) {
	var out []models.SheetInfo
	for i, name := range w.f.GetSheetList() {
		n, err := w.countRows(name)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", name, err)
		}
		if n == 0 {
			continue
		}
		out = append(out, models.SheetInfo{Index: i, Name: name, Rows: n})
	}
	return out, nil
}

func (w *Workbook) countRows(sheet string) (int, error) {
	rows, err := w.f.Rows(sheet)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		cols, err := rows.Columns()
		if err != nil {
			return 0, err
		}
		for _, c := range cols {
			if c != "" {
				n++
				break
			}
		}
	}
	return n, rows.Error()
}

// RowIterator implements grid.Workbook. Unless the workbook was opened
// with WithRawStrings, the sheet is held in memory until the file closes.
func (w *Workbook) RowIterator(sheetIndex int) (grid.RowIterator, error) {
	sheets := w.f.GetSheetList()
	if sheetIndex < 0 || sheetIndex >= len(sheets) {
		return nil, fmt.Errorf("%w: %d of %d", grid.ErrSheetIndex, sheetIndex, len(sheets))
	}
	name := sheets[sheetIndex]
	rows, err := w.f.Rows(name)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", name, err)
	}
	it := &rowIterator{rows: rows, raw: w.raw}
	if !w.raw {
		it.typer = newTyper(w.f, name)
	}
	return it, nil
}

// Close implements grid.Workbook.
func (w *Workbook) Close() error {
	return w.f.Close()
}

type rowIterator struct {
	rows  *excelize.Rows
	raw   bool
	typer *typer
	row   int
}

func (it *rowIterator) Next() bool {
	if !it.rows.Next() {
		return false
	}
	it.row++
	return true
}

func (it *rowIterator) Row() (grid.Row, error) {
	if it.raw {
		cols, err := it.rows.Columns()
		if err != nil {
			return nil, err
		}
		values := make([]any, len(cols))
		for i, c := range cols {
			values[i] = c
		}
		return &sourceRow{values: values}, nil
	}

	cols, err := it.rows.Columns(excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	values := make([]any, len(cols))
	for i, c := range cols {
		values[i] = it.typer.value(it.row, i, c)
	}
	return &sourceRow{values: values}, nil
}

func (it *rowIterator) Close() error {
	if err := it.rows.Error(); err != nil {
		it.rows.Close()
		return err
	}
	return it.rows.Close()
}
