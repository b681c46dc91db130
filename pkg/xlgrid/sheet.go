package xlgrid

import (
	"iter"
	"slices"

	"github.com/ukaji3/xlgrid/pkg/xlgrid/layout"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/models"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/record"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/style"
)

// CellValueFunc may replace the value of a body cell. at is relative to the
// first data row. Returning false keeps the record's value.
type CellValueFunc func(rec record.Record, field string, at models.Coord) (any, bool)

// CellStyleFunc returns the style of a body cell, or nil to leave it unstyled.
type CellStyleFunc func(rec record.Record, field string, at models.Coord) *style.Spec

// CellMergeFunc returns a region to merge starting at a body cell, or nil.
type CellMergeFunc func(rec record.Record, field string, at models.Coord) *models.CellAddress

// Sheet is one sheet's worth of data waiting to be written.
type Sheet struct {
	// Name is the sheet name.
	Name string
	// Header is the label grid above the data. Nil or empty derives a
	// one-row header from the first record's fields.
	Header *layout.Layout
	// Records yields the data rows. Each record is rendered and dropped.
	Records iter.Seq[record.Record]
	// EmptyValue replaces nil, empty and missing values.
	EmptyValue string
	// HeaderStyle applies to header cells without their own style.
	HeaderStyle *style.Spec
	// CellValue, CellStyle and CellMerge are optional per-cell hooks.
	CellValue CellValueFunc
	CellStyle CellStyleFunc
	CellMerge CellMergeFunc
	// FieldWidths sets the width of the column of a header field.
	FieldWidths map[string]float64
	// ColumnWidths sets the width of a column by index.
	ColumnWidths map[int]float64
	// PrintArea limits printing to the written header and data.
	PrintArea bool
	// RepeatHeader prints the header rows on every page.
	RepeatHeader bool
}

// NewSheet returns a sheet over a record slice.
func NewSheet(name string, records []record.Record, header *layout.Layout) *Sheet {
	return &Sheet{
		Name:    name,
		Header:  header,
		Records: slices.Values(records),
	}
}

// NewStreamSheet returns a sheet pulling records from seq.
func NewStreamSheet(name string, seq iter.Seq[record.Record], header *layout.Layout) *Sheet {
	return &Sheet{Name: name, Header: header, Records: seq}
}

// FieldWidth sets the width of the column bound to field.
func (s *Sheet) FieldWidth(field string, width float64) *Sheet {
	if s.FieldWidths == nil {
		s.FieldWidths = make(map[string]float64)
	}
	s.FieldWidths[field] = width
	return s
}

// ColumnWidth sets the width of column index.
func (s *Sheet) ColumnWidth(index int, width float64) *Sheet {
	if s.ColumnWidths == nil {
		s.ColumnWidths = make(map[int]float64)
	}
	s.ColumnWidths[index] = width
	return s
}
