package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/models"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/record"
)

func TestToJSON(t *testing.T) {
	sheets := []models.SheetInfo{{Index: 0, Name: "Data", Rows: 3}}

	compact, err := ToJSON(sheets, false)
	require.NoError(t, err)
	assert.Equal(t, `[{"index":0,"name":"Data","rows":3}]`, string(compact))

	pretty, err := ToJSON(sheets, true)
	require.NoError(t, err)
	assert.Contains(t, string(pretty), "\n  {")
}

func TestJSONLines_KeepsColumnOrder(t *testing.T) {
	var buf bytes.Buffer
	jl := NewJSONLines(&buf)

	require.NoError(t, jl.Write(record.NewRow([]string{"z", "a"}, []any{"1", int64(2)})))
	require.NoError(t, jl.Write(record.NewRow([]string{"z", "a"}, []any{"3"})))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `{"z":"1","a":2}`, lines[0])
	assert.Equal(t, `{"z":"3","a":""}`, lines[1])
	assert.Equal(t, 2, jl.Count())
}

func TestTable_Render(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, []string{"name", "age"}, "")
	require.NoError(t, tbl.Append(record.FromMap(map[string]any{"name": "cyx", "age": 18})))
	require.NoError(t, tbl.Append(record.FromMap(map[string]any{"name": "jack"})))
	require.NoError(t, tbl.Render())

	out := buf.String()
	assert.Contains(t, out, "cyx")
	assert.Contains(t, out, "18")
	assert.Contains(t, out, "jack")
}

func TestRenderSheets(t *testing.T) {
	var buf bytes.Buffer
	err := RenderSheets(&buf, []models.SheetSummary{
		{
			SheetInfo:  models.SheetInfo{Index: 0, Name: "Users", Rows: 10},
			HeaderRow:  2,
			PrintAreas: []models.CellAddress{models.MustParseRange("A1:C12")},
		},
		{SheetInfo: models.SheetInfo{Index: 2, Name: "Orders", Rows: 4}, HeaderRow: -1},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Users")
	assert.Contains(t, buf.String(), "Orders")
	assert.Contains(t, buf.String(), "A1:C12")
}
