package xlsx

import (
	"fmt"

	"github.com/ukaji3/xlgrid/pkg/xlgrid/grid"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/models"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/style"
	"github.com/xuri/excelize/v2"
)

// StreamSink writes rows through an excelize StreamWriter. Only the current
// row is buffered; it is written out once a higher row is created or the
// sink is flushed. Column widths must be set before the first row.
type StreamSink struct {
	sw      *excelize.StreamWriter
	cur     int
	pending map[int]excelize.Cell
	width   int
	flushed bool
}

// NewStreamSink opens a stream writer on an existing sheet of f.
func NewStreamSink(f *excelize.File, sheet string) (*StreamSink, error) {
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return nil, err
	}
	return &StreamSink{sw: sw, cur: -1, pending: make(map[int]excelize.Cell)}, nil
}

type streamRow struct {
	s   *StreamSink
	row int
}

type streamCell struct {
	s   *StreamSink
	row int
	col int
}

// CreateRow implements grid.Sink. Rows must be created in ascending order;
// creating the current row again returns it.
func (s *StreamSink) CreateRow(index int) (grid.SinkRow, error) {
	if s.flushed {
		return nil, fmt.Errorf("stream sink already flushed")
	}
	if index < 0 || index < s.cur {
		return nil, fmt.Errorf("%w: row %d after row %d", models.ErrInvalidAddress, index, s.cur)
	}
	if index > s.cur {
		if err := s.writeRow(); err != nil {
			return nil, err
		}
		s.cur = index
	}
	return &streamRow{s: s, row: index}, nil
}

func (r *streamRow) CreateCell(col int) (grid.SinkCell, error) {
	if col < 0 {
		return nil, fmt.Errorf("%w: column %d", models.ErrInvalidAddress, col)
	}
	if r.row != r.s.cur {
		return nil, fmt.Errorf("row %d already written", r.row)
	}
	if _, ok := r.s.pending[col]; !ok {
		r.s.pending[col] = excelize.Cell{}
	}
	r.s.width = max(r.s.width, col+1)
	return &streamCell{s: r.s, row: r.row, col: col}, nil
}

func (c *streamCell) SetValue(v string) error {
	if c.row != c.s.cur {
		return fmt.Errorf("row %d already written", c.row)
	}
	cell := c.s.pending[c.col]
	cell.Value = v
	c.s.pending[c.col] = cell
	return nil
}

func (c *streamCell) SetStyle(h style.Handle) error {
	if c.row != c.s.cur {
		return fmt.Errorf("row %d already written", c.row)
	}
	cell := c.s.pending[c.col]
	cell.StyleID = int(h)
	c.s.pending[c.col] = cell
	return nil
}

func (s *StreamSink) writeRow() error {
	if s.cur < 0 || len(s.pending) == 0 {
		return nil
	}
	values := make([]interface{}, s.width)
	for col, cell := range s.pending {
		values[col] = cell
	}
	name, err := excelize.CoordinatesToCellName(1, s.cur+1)
	if err != nil {
		return err
	}
	if err := s.sw.SetRow(name, values); err != nil {
		return fmt.Errorf("write row %d: %w", s.cur, err)
	}
	clear(s.pending)
	s.width = 0
	return nil
}

// AddMergedRegion implements grid.Sink.
func (s *StreamSink) AddMergedRegion(addr models.CellAddress) error {
	return s.sw.MergeCell(addr.TopLeft(), addr.BottomRight())
}

// AutoSizeColumn implements grid.Sink. Streamed rows cannot be re-read.
func (s *StreamSink) AutoSizeColumn(col int) error {
	return grid.ErrAutoSizeUnsupported
}

// SetColumnWidth implements grid.Sink.
func (s *StreamSink) SetColumnWidth(col int, width float64) error {
	return s.sw.SetColWidth(col+1, col+1, width)
}

// Capabilities implements grid.Sink.
func (s *StreamSink) Capabilities() grid.Capabilities {
	return grid.Capabilities{AutoSize: false}
}

// Flush writes the buffered row and finishes the sheet. Calling it again is
// a no-op.
func (s *StreamSink) Flush() error {
	if s.flushed {
		return nil
	}
	if err := s.writeRow(); err != nil {
		return err
	}
	s.flushed = true
	return s.sw.Flush()
}
