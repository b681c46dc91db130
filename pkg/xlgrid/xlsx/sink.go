package xlsx

import (
	"fmt"

	"github.com/ukaji3/xlgrid/pkg/xlgrid/grid"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/models"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/style"
	"github.com/xuri/excelize/v2"
)

// FileSink writes cells into an in-memory excelize sheet. It remembers the
// widest value per column for AutoSizeColumn.
type FileSink struct {
	f      *excelize.File
	sheet  string
	widths map[int]int
	merged map[string]struct{}
}

// NewFileSink returns a sink for an existing sheet of f.
func NewFileSink(f *excelize.File, sheet string) *FileSink {
	return &FileSink{
		f:      f,
		sheet:  sheet,
		widths: make(map[int]int),
		merged: make(map[string]struct{}),
	}
}

type fileRow struct {
	s   *FileSink
	row int
}

type fileCell struct {
	s    *FileSink
	name string
	col  int
}

// CreateRow implements grid.Sink.
func (s *FileSink) CreateRow(index int) (grid.SinkRow, error) {
	if index < 0 {
		return nil, fmt.Errorf("%w: row %d", models.ErrInvalidAddress, index)
	}
	return &fileRow{s: s, row: index}, nil
}

func (r *fileRow) CreateCell(col int) (grid.SinkCell, error) {
	name, err := excelize.CoordinatesToCellName(col+1, r.row+1)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidAddress, err)
	}
	return &fileCell{s: r.s, name: name, col: col}, nil
}

func (c *fileCell) SetValue(v string) error {
	if err := c.s.f.SetCellStr(c.s.sheet, c.name, v); err != nil {
		return err
	}
	if _, ok := c.s.merged[c.name]; !ok {
		c.s.widths[c.col] = max(c.s.widths[c.col], displayWidth(v))
	}
	return nil
}

func (c *fileCell) SetStyle(h style.Handle) error {
	return c.s.f.SetCellStyle(c.s.sheet, c.name, c.name, int(h))
}

// AddMergedRegion implements grid.Sink.
func (s *FileSink) AddMergedRegion(addr models.CellAddress) error {
	tl, br := addr.TopLeft(), addr.BottomRight()
	if err := s.f.MergeCell(s.sheet, tl, br); err != nil {
		return err
	}
	s.merged[tl] = struct{}{}
	return nil
}

// AutoSizeColumn implements grid.Sink. Columns without content keep their
// default width.
func (s *FileSink) AutoSizeColumn(col int) error {
	chars, ok := s.widths[col]
	if !ok {
		return nil
	}
	return s.SetColumnWidth(col, columnWidth(chars))
}

// SetColumnWidth implements grid.Sink.
func (s *FileSink) SetColumnWidth(col int, width float64) error {
	name, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrInvalidAddress, err)
	}
	return s.f.SetColWidth(s.sheet, name, name, width)
}

// Capabilities implements grid.Sink.
func (s *FileSink) Capabilities() grid.Capabilities {
	return grid.Capabilities{AutoSize: true}
}
