package xlgrid

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ukaji3/xlgrid/pkg/xlgrid/record"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/xlsx"
)

// LineWriter appends plain rows to streamed sheets without any header
// layout. Each sheet keeps its own row counter.
type LineWriter struct {
	book   *xlsx.Book
	opts   WriteOptions
	log    *slog.Logger
	sheets []*LineSheet
	done   bool
}

// LineSheet is one sheet of a LineWriter.
type LineSheet struct {
	Name string
	sink *xlsx.StreamSink
	next int
}

// NewLineWriter returns an empty LineWriter.
func NewLineWriter(opts WriteOptions) *LineWriter {
	if opts.TimeLayout == "" {
		opts.TimeLayout = DefaultWriteOptions().TimeLayout
	}
	return &LineWriter{book: xlsx.NewBook(), opts: opts, log: opts.logger()}
}

// CreateSheet adds a sheet to write rows into.
func (w *LineWriter) CreateSheet(name string) (*LineSheet, error) {
	if w.done {
		return nil, ErrResourceAlreadyClosed
	}
	name, err := w.book.AddSheet(name)
	if err != nil {
		return nil, err
	}
	sink, err := xlsx.NewStreamSink(w.book.File(), name)
	if err != nil {
		return nil, NewSheetError(name, "flush", err)
	}
	s := &LineSheet{Name: name, sink: sink}
	w.sheets = append(w.sheets, s)
	return s, nil
}

// WriteRow appends one row of values to s. Nil values are written as empty
// cells.
func (w *LineWriter) WriteRow(s *LineSheet, values ...any) error {
	if w.done {
		return ErrResourceAlreadyClosed
	}
	row, err := s.sink.CreateRow(s.next)
	if err != nil {
		return NewSheetError(s.Name, "body", err)
	}
	for col, v := range values {
		cell, err := row.CreateCell(col)
		if err != nil {
			return NewSheetError(s.Name, "body", err)
		}
		if err := cell.SetValue(record.Render(v, w.opts.TimeLayout)); err != nil {
			return NewSheetError(s.Name, "body", fmt.Errorf("row %d col %d: %w", s.next, col, err))
		}
	}
	s.next++
	return nil
}

// Rows returns the number of rows written to s.
func (s *LineSheet) Rows() int { return s.next }

func (w *LineWriter) finish() error {
	if len(w.sheets) == 0 {
		return ErrEmptyDataSet
	}
	if w.done {
		return nil
	}
	w.done = true
	for _, s := range w.sheets {
		if err := s.sink.Flush(); err != nil {
			return NewSheetError(s.Name, "flush", err)
		}
		w.log.Debug("line sheet flushed", "sheet", s.Name, "rows", s.next)
	}
	return nil
}

// WriteTo finishes every sheet and writes the workbook to out. No rows can
// be added afterwards.
func (w *LineWriter) WriteTo(out io.Writer) (int64, error) {
	if err := w.finish(); err != nil {
		return 0, err
	}
	return w.book.WriteTo(out)
}

// SaveAs finishes every sheet and saves the workbook, appending ".xlsx" if
// missing.
func (w *LineWriter) SaveAs(path string) (string, error) {
	if err := w.finish(); err != nil {
		return "", err
	}
	return w.book.SaveAs(path)
}

// Close releases the workbook.
func (w *LineWriter) Close() error {
	w.done = true
	return w.book.Close()
}
