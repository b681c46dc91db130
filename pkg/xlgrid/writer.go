package xlgrid

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/ukaji3/xlgrid/pkg/xlgrid/grid"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/models"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/style"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/xlsx"
)

// Writer renders sheets into one xlsx workbook. Sheets are materialized on
// the first write; a Writer writes its workbook once.
type Writer struct {
	book    *xlsx.Book
	opts    WriteOptions
	log     *slog.Logger
	styles  *style.Registry
	sheets  []*Sheet
	stats   []SheetStats
	flushed bool
	err     error
}

// NewWriter returns a Writer with its own workbook and style registry.
func NewWriter(opts WriteOptions) *Writer {
	if opts.TimeLayout == "" {
		opts.TimeLayout = DefaultWriteOptions().TimeLayout
	}
	book := xlsx.NewBook()
	return &Writer{
		book:   book,
		opts:   opts,
		log:    opts.logger(),
		styles: style.NewRegistry(xlsx.StyleResolver(book.File())),
	}
}

// Add registers sheets in output order.
func (w *Writer) Add(sheets ...*Sheet) *Writer {
	w.sheets = append(w.sheets, sheets...)
	return w
}

// Styles returns the registry styles are resolved against. Named styles can
// be looked up and registered here before writing.
func (w *Writer) Styles() *style.Registry { return w.styles }

// Stats returns per-sheet statistics once the workbook has been flushed.
func (w *Writer) Stats() []SheetStats { return w.stats }

// Flush materializes every registered sheet. It runs once; later calls
// return the first result.
func (w *Writer) Flush() error {
	if w.flushed {
		return w.err
	}
	if len(w.sheets) == 0 {
		return ErrEmptyDataSet
	}
	w.flushed = true
	for _, sheet := range w.sheets {
		if err := w.flushSheet(sheet); err != nil {
			w.err = err
			return err
		}
	}
	return nil
}

func (w *Writer) flushSheet(sheet *Sheet) error {
	name, err := w.book.AddSheet(sheet.Name)
	if err != nil {
		return NewSheetError(sheet.Name, "flush", err)
	}
	sheet.Name = name

	var sink grid.Sink
	var stream *xlsx.StreamSink
	if w.opts.Streaming {
		stream, err = xlsx.NewStreamSink(w.book.File(), name)
		if err != nil {
			return NewSheetError(name, "flush", err)
		}
		sink = stream
	} else {
		sink = xlsx.NewFileSink(w.book.File(), name)
	}

	stats, err := Materialize(sink, sheet, w.styles, w.opts)
	if err != nil {
		return err
	}
	if stream != nil {
		if err := stream.Flush(); err != nil {
			return NewSheetError(name, "flush", err)
		}
	}
	if err := w.printSettings(sheet, stats); err != nil {
		return NewSheetError(name, "flush", err)
	}
	w.stats = append(w.stats, stats)
	return nil
}

func (w *Writer) printSettings(sheet *Sheet, stats SheetStats) error {
	f := w.book.File()
	if last := stats.HeaderRows + stats.Rows - 1; sheet.PrintArea && last >= 0 && stats.Columns > 0 {
		area := models.CellAddress{LastRow: last, LastCol: stats.Columns - 1}
		if err := xlsx.SetPrintArea(f, sheet.Name, area); err != nil {
			return fmt.Errorf("print area: %w", err)
		}
	}
	if sheet.RepeatHeader && stats.HeaderRows > 0 {
		if err := xlsx.SetPrintTitleRows(f, sheet.Name, stats.HeaderRows); err != nil {
			return fmt.Errorf("print titles: %w", err)
		}
	}
	return nil
}

// WriteTo flushes and writes the workbook to out.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	if err := w.Flush(); err != nil {
		return 0, err
	}
	return w.book.WriteTo(out)
}

// Bytes flushes and returns the encoded workbook.
func (w *Writer) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveAs flushes and saves the workbook to path, appending ".xlsx" if
// missing. It returns the path written.
func (w *Writer) SaveAs(path string) (string, error) {
	if err := w.Flush(); err != nil {
		return "", err
	}
	out, err := w.book.SaveAs(path)
	if err != nil {
		return "", err
	}
	w.log.Info("workbook saved", "path", out, "sheets", len(w.sheets))
	return out, nil
}

// Close releases the workbook.
func (w *Writer) Close() error {
	return w.book.Close()
}
