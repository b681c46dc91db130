package output

import (
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/models"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/record"
)

// Table renders records as a text table once all rows are appended.
type Table struct {
	tw         *tablewriter.Table
	fields     []string
	timeLayout string
}

// NewTable returns a table with one column per field.
func NewTable(w io.Writer, fields []string, timeLayout string) *Table {
	tw := tablewriter.NewWriter(w)
	header := make([]any, len(fields))
	for i, f := range fields {
		header[i] = f
	}
	tw.Header(header...)
	return &Table{tw: tw, fields: fields, timeLayout: timeLayout}
}

// Append adds rec as a row, rendering each field's value.
func (t *Table) Append(rec record.Record) error {
	row := make([]string, len(t.fields))
	for i, f := range t.fields {
		if v, ok := rec.Get(f); ok {
			row[i] = record.Render(v, t.timeLayout)
		}
	}
	return t.tw.Append(row)
}

// Render writes the table.
func (t *Table) Render() error {
	return t.tw.Render()
}

// RenderSheets writes a sheet summary as a table. A sheet without a
// detected header shows "-" in the header column.
func RenderSheets(w io.Writer, sheets []models.SheetSummary) error {
	tw := tablewriter.NewWriter(w)
	tw.Header("Index", "Name", "Rows", "Header Row", "Merges", "Print Area")
	for _, s := range sheets {
		header := "-"
		if s.HeaderRow >= 0 {
			header = strconv.Itoa(s.HeaderRow)
		}
		areas := make([]string, len(s.PrintAreas))
		for i, a := range s.PrintAreas {
			areas[i] = a.String()
		}
		row := []string{
			strconv.Itoa(s.Index),
			s.Name,
			strconv.Itoa(s.Rows),
			header,
			strconv.Itoa(len(s.Merges)),
			strings.Join(areas, ","),
		}
		if err := tw.Append(row); err != nil {
			return err
		}
	}
	return tw.Render()
}
