package xlgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/grid"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/layout"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/models"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/record"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/style"
)

func countingRegistry() *style.Registry {
	next := 0
	return style.NewRegistry(func(style.Spec) (style.Handle, error) {
		next++
		return style.Handle(next), nil
	})
}

func people() []record.Record {
	return []record.Record{
		record.FromMap(map[string]any{"a": "1", "b": "2", "c": "3"}, "a", "b", "c"),
		record.FromMap(map[string]any{"a": "4", "b": "5", "c": "6"}, "a", "b", "c"),
	}
}

func mustLayout(t *testing.T, rows ...*layout.Row) *layout.Layout {
	t.Helper()
	l, err := layout.New(rows...)
	require.NoError(t, err)
	return l
}

func value(t *testing.T, s *grid.MemorySheet, row, col int) any {
	t.Helper()
	v, ok := s.Value(row, col)
	require.True(t, ok, "no cell at (%d,%d)", row, col)
	return v
}

func TestMaterialize_SingleRowHeader(t *testing.T) {
	header := mustLayout(t, layout.NewRow().Bind("name", "Name").Bind("age", "Age"))
	records := []record.Record{
		record.FromMap(map[string]any{"name": "cyx", "age": 18}),
	}

	mem := grid.NewMemory()
	sheet := mem.AddSheet("s", false)
	stats, err := Materialize(sheet, NewSheet("s", records, header), countingRegistry(), DefaultWriteOptions())
	require.NoError(t, err)

	assert.Equal(t, "Name", value(t, sheet, 0, 0))
	assert.Equal(t, "Age", value(t, sheet, 0, 1))
	assert.Equal(t, "cyx", value(t, sheet, 1, 0))
	assert.Equal(t, "18", value(t, sheet, 1, 1))
	assert.Equal(t, SheetStats{Sheet: "s", HeaderRows: 1, Rows: 1, Columns: 2, Cells: 4}, stats)
}

func TestMaterialize_TitleAboveFields(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		fieldsRow int
		dataRows  []int
	}{
		{"title spans two rows", "A1:C2", 2, []int{3, 4}},
		{"title spans one row", "A1:C1", 1, []int{2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := mustLayout(t,
				layout.NewRow().Label("Report", layout.AtRange(tt.title)),
				layout.NewRow().Bind("a", "A").Bind("b", "B").Bind("c", "C"),
			)

			mem := grid.NewMemory()
			sheet := mem.AddSheet("s", false)
			_, err := Materialize(sheet, NewSheet("s", people(), header), countingRegistry(), DefaultWriteOptions())
			require.NoError(t, err)

			assert.Equal(t, "Report", value(t, sheet, 0, 0))
			assert.Equal(t, "C", value(t, sheet, tt.fieldsRow, 2))
			assert.Equal(t, "1", value(t, sheet, tt.dataRows[0], 0))
			assert.Equal(t, "6", value(t, sheet, tt.dataRows[1], 2))
			assert.Equal(t, tt.dataRows[1]+1, sheet.RowCount())
			assert.Equal(t, []models.CellAddress{models.MustParseRange(tt.title)}, sheet.Merges())
		})
	}
}

func TestMaterialize_NoRecordsRendersHeaderOnly(t *testing.T) {
	header := mustLayout(t, layout.NewRow().Label("T", layout.AtRange("A1:B1")), layout.NewRow().Bind("a", "A").Bind("b", "B"))

	mem := grid.NewMemory()
	sheet := mem.AddSheet("s", false)
	stats, err := Materialize(sheet, NewSheet("s", nil, header), countingRegistry(), DefaultWriteOptions())
	require.NoError(t, err)

	assert.Equal(t, 2, sheet.RowCount())
	assert.Equal(t, 0, stats.Rows)
	assert.Equal(t, 2, stats.HeaderRows)
}

func TestMaterialize_NoLayoutUsesFirstRecordFields(t *testing.T) {
	records := []record.Record{
		record.NewRow([]string{"id", "title"}, []any{1, "first"}),
		record.NewRow([]string{"id", "title"}, []any{2, "second"}),
	}

	mem := grid.NewMemory()
	sheet := mem.AddSheet("s", false)
	_, err := Materialize(sheet, NewSheet("s", records, nil), countingRegistry(), DefaultWriteOptions())
	require.NoError(t, err)

	assert.Equal(t, "id", value(t, sheet, 0, 0))
	assert.Equal(t, "title", value(t, sheet, 0, 1))
	assert.Equal(t, "2", value(t, sheet, 2, 0))
	assert.Equal(t, "second", value(t, sheet, 2, 1))
}

func TestMaterialize_EmptySheetWithoutLayout(t *testing.T) {
	mem := grid.NewMemory()
	sheet := mem.AddSheet("s", false)
	stats, err := Materialize(sheet, &Sheet{Name: "s"}, countingRegistry(), DefaultWriteOptions())
	require.NoError(t, err)

	assert.Equal(t, 0, sheet.RowCount())
	assert.Equal(t, SheetStats{Sheet: "s"}, stats)
}

func TestMaterialize_EmptyFallbackAndUnresolved(t *testing.T) {
	header := mustLayout(t, layout.NewRow().Bind("a", "A").Bind("b", "B").Bind("c", "C"))
	var nilPtr *string
	records := []record.Record{
		record.FromMap(map[string]any{"a": nil, "b": ""}),
		record.FromMap(map[string]any{"a": nilPtr, "b": "x", "c": 0}),
	}

	mem := grid.NewMemory()
	sheet := mem.AddSheet("s", false)
	s := NewSheet("s", records, header)
	s.EmptyValue = "-"
	stats, err := Materialize(sheet, s, countingRegistry(), DefaultWriteOptions())
	require.NoError(t, err)

	assert.Equal(t, "-", value(t, sheet, 1, 0))
	assert.Equal(t, "-", value(t, sheet, 1, 1))
	assert.Equal(t, "-", value(t, sheet, 1, 2))
	assert.Equal(t, "-", value(t, sheet, 2, 0))
	assert.Equal(t, "x", value(t, sheet, 2, 1))
	assert.Equal(t, "0", value(t, sheet, 2, 2))
	assert.Equal(t, 1, stats.Unresolved)
}

func TestMaterialize_UnboundColumnsAreSkipped(t *testing.T) {
	header := mustLayout(t,
		layout.NewRow().Bind("a", "A").Label("spacer").Bind("c", "C"),
	)
	records := []record.Record{record.FromMap(map[string]any{"a": "1", "c": "3"})}

	mem := grid.NewMemory()
	sheet := mem.AddSheet("s", false)
	_, err := Materialize(sheet, NewSheet("s", records, header), countingRegistry(), DefaultWriteOptions())
	require.NoError(t, err)

	assert.Equal(t, "spacer", value(t, sheet, 0, 1))
	_, ok := sheet.Value(1, 1)
	assert.False(t, ok)
	assert.Equal(t, "3", value(t, sheet, 1, 2))
}

func TestMaterialize_Hooks(t *testing.T) {
	header := mustLayout(t, layout.NewRow().Bind("name", "Name").Bind("score", "Score"))
	records := []record.Record{
		record.FromMap(map[string]any{"name": "a", "score": 10}),
		record.FromMap(map[string]any{"name": "b", "score": 90}),
	}

	danger := style.New().WithFill("#FFC7CE")
	var coords []models.Coord

	s := NewSheet("s", records, header)
	s.CellValue = func(rec record.Record, field string, at models.Coord) (any, bool) {
		if field == "name" {
			v, _ := rec.Get(field)
			return "user-" + v.(string), true
		}
		return nil, false
	}
	s.CellStyle = func(rec record.Record, field string, at models.Coord) *style.Spec {
		coords = append(coords, at)
		if v, _ := rec.Get("score"); field == "score" && v.(int) < 50 {
			return &danger
		}
		return nil
	}

	mem := grid.NewMemory()
	sheet := mem.AddSheet("s", false)
	_, err := Materialize(sheet, s, countingRegistry(), DefaultWriteOptions())
	require.NoError(t, err)

	assert.Equal(t, "user-a", value(t, sheet, 1, 0))
	assert.Equal(t, "10", value(t, sheet, 1, 1))
	assert.NotZero(t, sheet.StyleAt(1, 1))
	assert.Zero(t, sheet.StyleAt(2, 1))
	assert.Equal(t, []models.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 1}}, coords)
}

func TestMaterialize_StylesResolvedOncePerSpec(t *testing.T) {
	bold := style.New().WithBold()
	header := mustLayout(t,
		layout.NewRow().Bind("a", "A", layout.WithStyle(bold)).Bind("b", "B", layout.WithStyle(bold)).Bind("c", "C"),
	)
	headerStyle := style.New().WithItalic()

	s := NewSheet("s", people(), header)
	s.HeaderStyle = &headerStyle

	registry := countingRegistry()
	mem := grid.NewMemory()
	sheet := mem.AddSheet("s", false)
	_, err := Materialize(sheet, s, registry, DefaultWriteOptions())
	require.NoError(t, err)

	assert.Equal(t, sheet.StyleAt(0, 0), sheet.StyleAt(0, 1))
	assert.NotEqual(t, sheet.StyleAt(0, 0), sheet.StyleAt(0, 2))
	assert.Equal(t, 2, registry.Len())
}

func TestMaterialize_MergesRegisteredOnce(t *testing.T) {
	header := mustLayout(t,
		layout.NewRow().Label("Title", layout.AtRange("A1:C1")),
		layout.NewRow().Bind("a", "A").Bind("b", "B").Bind("c", "C"),
	)
	body := models.MustParseRange("A3:C3")
	title := models.MustParseRange("A1:C1")

	s := NewSheet("s", people(), header)
	s.CellMerge = func(rec record.Record, field string, at models.Coord) *models.CellAddress {
		if at.Row == 0 {
			return &body
		}
		return &title
	}

	mem := grid.NewMemory()
	sheet := mem.AddSheet("s", false)
	stats, err := Materialize(sheet, s, countingRegistry(), DefaultWriteOptions())
	require.NoError(t, err)

	assert.Equal(t, []models.CellAddress{title, body}, sheet.Merges())
	assert.Equal(t, 2, stats.Merges)
}

func TestMaterialize_InvalidBodyMerge(t *testing.T) {
	bad := models.CellAddress{FirstRow: 3, LastRow: 2}
	s := NewSheet("s", people(), nil)
	s.CellMerge = func(record.Record, string, models.Coord) *models.CellAddress { return &bad }

	mem := grid.NewMemory()
	_, err := Materialize(mem.AddSheet("s", false), s, countingRegistry(), DefaultWriteOptions())

	require.ErrorIs(t, err, ErrInvalidAddress)
	var sheetErr *SheetError
	require.ErrorAs(t, err, &sheetErr)
	assert.Equal(t, "body", sheetErr.Stage)
}

func TestMaterialize_ColumnWidths(t *testing.T) {
	header := mustLayout(t, layout.NewRow().Bind("a", "A").Bind("b", "B").Bind("c", "C"))

	tests := []struct {
		name      string
		streaming bool
		autoSize  *bool
		wantAuto  []int
	}{
		{"in memory", false, nil, []int{1}},
		{"streaming", true, nil, nil},
		{"disabled", false, Bool(false), nil},
		{"forced on streaming sheet", true, Bool(true), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSheet("s", people(), header).FieldWidth("a", 20).ColumnWidth(2, 5)

			opts := DefaultWriteOptions()
			opts.Streaming = tt.streaming
			opts.AutoSize = tt.autoSize

			mem := grid.NewMemory()
			sheet := mem.AddSheet("s", tt.streaming)
			_, err := Materialize(sheet, s, countingRegistry(), opts)
			require.NoError(t, err)

			assert.Equal(t, map[int]float64{0: 20, 2: 5}, sheet.Widths())
			assert.Equal(t, tt.wantAuto, sheet.AutoSized())
		})
	}
}

func TestMaterialize_StreamsRecords(t *testing.T) {
	pulled := 0
	seq := func(yield func(record.Record) bool) {
		for i := 0; i < 3; i++ {
			pulled++
			if !yield(record.FromValues([]any{i}, "n")) {
				return
			}
		}
	}

	mem := grid.NewMemory()
	sheet := mem.AddSheet("s", true)
	stats, err := Materialize(sheet, NewStreamSheet("s", seq, nil), countingRegistry(), DefaultWriteOptions())
	require.NoError(t, err)

	assert.Equal(t, 3, pulled)
	assert.Equal(t, 3, stats.Rows)
	assert.Equal(t, "2", value(t, sheet, 3, 0))
}
