package xlgrid

import (
	"fmt"
	"iter"
	"log/slog"
	"sort"

	"github.com/ukaji3/xlgrid/pkg/xlgrid/grid"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/layout"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/models"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/record"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/style"
)

// SheetStats summarizes one materialized sheet.
type SheetStats struct {
	Sheet      string `json:"sheet"`
	HeaderRows int    `json:"header_rows"`
	Rows       int    `json:"rows"`
	Columns    int    `json:"columns"`
	Cells      int    `json:"cells"`
	Merges     int    `json:"merges"`
	Unresolved int    `json:"unresolved"`
}

type materializer struct {
	sink   grid.Sink
	sheet  *Sheet
	styles *style.Registry
	opts   WriteOptions
	log    *slog.Logger

	merged map[models.CellAddress]struct{}
	manual map[int]struct{}
	stats  SheetStats
}

// Materialize renders sheet into sink: the header first, then one grid row
// per record directly below it. A sheet without records renders its header
// only.
func Materialize(sink grid.Sink, sheet *Sheet, styles *style.Registry, opts WriteOptions) (SheetStats, error) {
	m := &materializer{
		sink:   sink,
		sheet:  sheet,
		styles: styles,
		opts:   opts,
		log:    opts.logger().With("sheet", sheet.Name),
		merged: make(map[models.CellAddress]struct{}),
		manual: make(map[int]struct{}),
		stats:  SheetStats{Sheet: sheet.Name},
	}
	return m.run()
}

func (m *materializer) run() (SheetStats, error) {
	records := m.sheet.Records
	if records == nil {
		records = func(func(record.Record) bool) {}
	}
	next, stop := iter.Pull(records)
	defer stop()

	first, ok := next()
	var fallback []string
	if ok {
		fallback = first.Fields()
	}
	header, order := layout.Resolve(m.sheet.Header, fallback)
	m.stats.Columns = max(len(order), header.MaxColumn()+1)

	if err := m.applyWidths(header); err != nil {
		return m.stats, NewSheetError(m.sheet.Name, "width", err)
	}
	if err := m.renderHeader(header); err != nil {
		return m.stats, err
	}

	start := header.MaxRow() + 1
	for i := 0; ok; i++ {
		if err := m.renderRecord(start+i, i, first, order); err != nil {
			return m.stats, NewSheetError(m.sheet.Name, "body", err)
		}
		first, ok = next()
	}

	if err := m.autoSize(); err != nil {
		return m.stats, NewSheetError(m.sheet.Name, "width", err)
	}

	if m.stats.Unresolved > 0 {
		m.log.Debug("filled missing values", "count", m.stats.Unresolved, "fallback", m.sheet.EmptyValue, "err", ErrUnresolvedField)
	}
	m.log.Debug("sheet materialized",
		"header_rows", m.stats.HeaderRows,
		"rows", m.stats.Rows,
		"cells", m.stats.Cells,
		"merges", m.stats.Merges)
	return m.stats, nil
}

// applyWidths sets manual widths up front; streaming sinks only accept them
// before any row is written.
func (m *materializer) applyWidths(header *layout.Layout) error {
	if len(m.sheet.FieldWidths) > 0 {
		for _, c := range header.Cells() {
			width, ok := m.sheet.FieldWidths[c.Key]
			if !ok {
				continue
			}
			if err := m.setWidth(c.Address.FirstCol, width); err != nil {
				return err
			}
		}
	}

	cols := make([]int, 0, len(m.sheet.ColumnWidths))
	for col := range m.sheet.ColumnWidths {
		cols = append(cols, col)
	}
	sort.Ints(cols)
	for _, col := range cols {
		if err := m.setWidth(col, m.sheet.ColumnWidths[col]); err != nil {
			return err
		}
	}
	return nil
}

func (m *materializer) setWidth(col int, width float64) error {
	if err := m.sink.SetColumnWidth(col, width); err != nil {
		return fmt.Errorf("column %d: %w", col, err)
	}
	m.manual[col] = struct{}{}
	return nil
}

func (m *materializer) renderHeader(header *layout.Layout) error {
	if header.IsEmpty() {
		return nil
	}

	byRow := make(map[int][]layout.Cell)
	for _, c := range header.Cells() {
		byRow[c.Address.FirstRow] = append(byRow[c.Address.FirstRow], c)
	}

	for r := 0; r <= header.MaxRow(); r++ {
		row, err := m.sink.CreateRow(r)
		if err != nil {
			return NewSheetError(m.sheet.Name, "header", err)
		}
		cells := byRow[r]
		sort.SliceStable(cells, func(i, j int) bool {
			return cells[i].Address.FirstCol < cells[j].Address.FirstCol
		})
		for _, c := range cells {
			if err := m.renderHeaderCell(row, c); err != nil {
				return err
			}
		}
		m.stats.HeaderRows++
	}
	return nil
}

func (m *materializer) renderHeaderCell(row grid.SinkRow, c layout.Cell) error {
	// Merged anchors are registered before their value is set.
	if c.Address.IsMerged() {
		if err := m.merge(c.Address); err != nil {
			return NewSheetError(m.sheet.Name, "merge", err)
		}
	}

	cell, err := row.CreateCell(c.Address.FirstCol)
	if err != nil {
		return NewSheetError(m.sheet.Name, "header", err)
	}
	if err := cell.SetValue(c.Name); err != nil {
		return NewSheetError(m.sheet.Name, "header", err)
	}
	m.stats.Cells++

	spec := c.Style
	if spec == nil {
		spec = m.sheet.HeaderStyle
	}
	if err := m.applyStyle(cell, spec); err != nil {
		return NewSheetError(m.sheet.Name, "style", fmt.Errorf("header %s: %w", c.Address, err))
	}

	return nil
}

func (m *materializer) renderRecord(gridRow, i int, rec record.Record, order layout.FieldOrder) error {
	row, err := m.sink.CreateRow(gridRow)
	if err != nil {
		return err
	}

	for j, col := range order {
		if !col.Bound {
			continue
		}
		at := models.Coord{Row: i, Col: j}

		value, found := rec.Get(col.Field)
		if !found {
			m.stats.Unresolved++
		}
		if m.sheet.CellValue != nil {
			if v, ok := m.sheet.CellValue(rec, col.Field, at); ok {
				value = v
			}
		}

		text := m.sheet.EmptyValue
		if !record.IsEmpty(value) {
			text = record.Render(value, m.opts.TimeLayout)
		}

		cell, err := row.CreateCell(j)
		if err != nil {
			return err
		}
		if err := cell.SetValue(text); err != nil {
			return fmt.Errorf("cell (%d,%d): %w", gridRow, j, err)
		}
		m.stats.Cells++

		if m.sheet.CellStyle != nil {
			if err := m.applyStyle(cell, m.sheet.CellStyle(rec, col.Field, at)); err != nil {
				return fmt.Errorf("cell (%d,%d) style: %w", gridRow, j, err)
			}
		}
		if m.sheet.CellMerge != nil {
			if addr := m.sheet.CellMerge(rec, col.Field, at); addr != nil {
				if err := m.merge(*addr); err != nil {
					return err
				}
			}
		}
	}
	m.stats.Rows++
	return nil
}

func (m *materializer) applyStyle(cell grid.SinkCell, spec *style.Spec) error {
	if spec == nil {
		return nil
	}
	if m.styles == nil {
		return fmt.Errorf("no style registry")
	}
	h, err := m.styles.Resolve(*spec)
	if err != nil {
		return err
	}
	return cell.SetStyle(h)
}

// merge registers addr once; repeated addresses are ignored.
func (m *materializer) merge(addr models.CellAddress) error {
	if err := addr.Validate(); err != nil {
		return err
	}
	if _, done := m.merged[addr]; done {
		return nil
	}
	if err := m.sink.AddMergedRegion(addr); err != nil {
		return fmt.Errorf("merge %s: %w", addr, err)
	}
	m.merged[addr] = struct{}{}
	m.stats.Merges++
	return nil
}

func (m *materializer) autoSize() error {
	if !m.opts.ShouldAutoSize() || !m.sink.Capabilities().AutoSize {
		return nil
	}
	for col := 0; col < m.stats.Columns; col++ {
		if _, ok := m.manual[col]; ok {
			continue
		}
		if err := m.sink.AutoSizeColumn(col); err != nil {
			return fmt.Errorf("column %d: %w", col, err)
		}
	}
	return nil
}
