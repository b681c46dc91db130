package xlgrid

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"sync"

	"github.com/ukaji3/xlgrid/pkg/xlgrid/grid"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/record"
)

// onceCloser releases a resource at most once, whoever asks first.
type onceCloser struct {
	c      io.Closer
	once   sync.Once
	closed bool
	err    error
}

func newOnceCloser(c io.Closer) *onceCloser {
	return &onceCloser{c: c}
}

func (o *onceCloser) Close() error {
	o.once.Do(func() {
		o.closed = true
		o.err = o.c.Close()
	})
	return o.err
}

func (o *onceCloser) isClosed() bool { return o.closed }

type streamState int

const (
	streamInit streamState = iota
	streamActive
	streamClosed
)

// RowStream yields one record per sheet row below the header. It reads
// rows lazily, holds a single row at a time and cannot be restarted.
//
// The stream owns the workbook it was opened on: reaching the end, an
// error or Close releases it exactly once.
type RowStream struct {
	rows  grid.RowIterator
	res   *onceCloser
	opts  StreamOptions
	log   *slog.Logger
	state streamState
	names []string
	rec   *record.Row
	err   error
	index int
}

func newRowStream(rows grid.RowIterator, res *onceCloser, opts StreamOptions, log *slog.Logger) *RowStream {
	return &RowStream{rows: rows, res: res, opts: opts, log: log}
}

// Next advances to the next record. It returns false at the end of the
// sheet, after an error or once the stream was closed.
func (s *RowStream) Next() bool {
	switch s.state {
	case streamClosed:
		if s.err == nil {
			s.err = ErrResourceAlreadyClosed
		}
		return false
	case streamInit:
		if !s.start() {
			return false
		}
	}

	if !s.rows.Next() {
		s.finish(nil)
		return false
	}
	row, err := s.rows.Row()
	if err != nil {
		s.finish(fmt.Errorf("row %d: %w", s.index, err))
		return false
	}
	s.rec = decodeRow(s.names, row)
	s.index++
	return true
}

// start skips the leading rows and settles the field names.
func (s *RowStream) start() bool {
	s.state = streamActive
	if s.res.isClosed() {
		s.finish(ErrResourceAlreadyClosed)
		return false
	}

	for i := 0; i < s.opts.HeaderRow; i++ {
		if !s.rows.Next() {
			s.finish(nil)
			return false
		}
	}

	if s.opts.FieldNames != nil {
		s.names = s.opts.FieldNames
		// The sheet's own header row is replaced, not read as data.
		if !s.rows.Next() {
			s.finish(nil)
			return false
		}
		s.log.Debug("stream started", "header_row", s.opts.HeaderRow, "fields", len(s.names))
		return true
	}

	if !s.rows.Next() {
		s.finish(nil)
		return false
	}
	row, err := s.rows.Row()
	if err != nil {
		s.finish(fmt.Errorf("header: %w", err))
		return false
	}
	s.names = headerNames(row, s.opts.ShouldSkipBlankHeaderCols())
	s.log.Debug("stream started", "header_row", s.opts.HeaderRow, "fields", len(s.names))
	return true
}

// finish releases the row iterator and the workbook and records err.
func (s *RowStream) finish(err error) {
	if s.state == streamClosed {
		return
	}
	s.state = streamClosed
	s.rec = nil
	if err != nil && s.err == nil {
		s.err = err
	}
	if cerr := s.rows.Close(); cerr != nil && s.err == nil {
		s.err = cerr
	}
	if cerr := s.res.Close(); cerr != nil && s.err == nil {
		s.err = cerr
	}
	s.log.Debug("stream closed", "records", s.index)
}

// Record returns the current record. It is valid until the next call to
// Next.
func (s *RowStream) Record() *record.Row {
	return s.rec
}

// Fields returns the field names of the stream's records. It is empty until
// the first call to Next.
func (s *RowStream) Fields() []string {
	return s.names
}

// Err returns the first error met by the stream.
func (s *RowStream) Err() error {
	return s.err
}

// Close releases the stream's resources. It is safe to call more than once
// and after the stream has ended.
func (s *RowStream) Close() error {
	if s.state == streamClosed {
		return nil
	}
	s.finish(nil)
	return s.err
}

// All returns an iterator over the remaining records. Breaking out of the
// loop closes the stream; a read error is yielded last.
func (s *RowStream) All() iter.Seq2[*record.Row, error] {
	return func(yield func(*record.Row, error) bool) {
		defer s.Close()
		for s.Next() {
			if !yield(s.rec, nil) {
				return
			}
		}
		if err := s.Err(); err != nil {
			yield(nil, err)
		}
	}
}

// Collect drains the stream into a slice and closes it.
func (s *RowStream) Collect() ([]*record.Row, error) {
	var out []*record.Row
	for rec, err := range s.All() {
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// headerNames names each header cell after its text. Missing cells, and
// blank ones if skipBlank is set, are named "#<index>#".
func headerNames(row grid.Row, skipBlank bool) []string {
	names := make([]string, row.Len())
	for i := range names {
		cell, ok := row.Cell(i)
		if !ok || (skipBlank && record.IsBlank(cell.Value())) {
			names[i] = fmt.Sprintf("#%d#", i)
			continue
		}
		names[i] = record.Render(cell.Value(), "")
	}
	return names
}

// decodeRow pairs names with the row's cells by index. Absent cells decode
// as the empty string; cells beyond the names are dropped.
func decodeRow(names []string, row grid.Row) *record.Row {
	values := make([]any, len(names))
	for i := range values {
		values[i] = ""
		if cell, ok := row.Cell(i); ok && cell.Value() != nil {
			values[i] = cell.Value()
		}
	}
	return record.NewRow(names, values)
}
