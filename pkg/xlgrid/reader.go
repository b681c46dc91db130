package xlgrid

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ukaji3/xlgrid/pkg/xlgrid/grid"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/models"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/xlsx"
)

// Reader reads records from the sheets of one workbook.
//
// A stream opened by the Reader takes over the workbook: closing the stream
// releases it, and the Reader cannot be used afterwards.
type Reader struct {
	wb   grid.Workbook
	res  *onceCloser
	opts ReadOptions
	log  *slog.Logger
}

// Open opens the xlsx workbook at path. Compressed workbooks ending in .gz,
// .bz2, .xz or .zst are accepted.
func Open(path string, opts ReadOptions) (*Reader, error) {
	wb, err := xlsx.Open(path, xlsx.WithRawStrings(opts.RawStrings))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	r := NewReader(wb, opts)
	r.log.Debug("workbook opened", "path", path)
	return r, nil
}

// OpenReader reads an xlsx workbook from in.
func OpenReader(in io.Reader, opts ReadOptions) (*Reader, error) {
	wb, err := xlsx.OpenReader(in, xlsx.WithRawStrings(opts.RawStrings))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return NewReader(wb, opts), nil
}

// NewReader reads from an already opened workbook and takes ownership of it.
func NewReader(wb grid.Workbook, opts ReadOptions) *Reader {
	return &Reader{
		wb:   wb,
		res:  newOnceCloser(wb),
		opts: opts,
		log:  opts.logger(),
	}
}

// Workbook returns the underlying workbook.
func (r *Reader) Workbook() grid.Workbook { return r.wb }

// Sheets lists the non-empty sheets.
func (r *Reader) Sheets() ([]models.SheetInfo, error) {
	if r.res.isClosed() {
		return nil, ErrResourceAlreadyClosed
	}
	return r.wb.Sheets()
}

// Stream opens a record stream over one sheet. The stream must be drained
// or closed.
func (r *Reader) Stream(opts StreamOptions) (*RowStream, error) {
	if r.res.isClosed() {
		return nil, ErrResourceAlreadyClosed
	}
	rows, err := r.wb.RowIterator(opts.SheetIndex)
	if err != nil {
		return nil, NewSheetError(fmt.Sprintf("#%d", opts.SheetIndex), "stream", err)
	}
	log := r.log
	if opts.Logger != nil {
		log = opts.Logger
	}
	return newRowStream(rows, r.res, opts, log.With("sheet_index", opts.SheetIndex)), nil
}

// Close releases the workbook. It is a no-op if a stream already did.
func (r *Reader) Close() error {
	return r.res.Close()
}
