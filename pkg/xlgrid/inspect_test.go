package xlgrid

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/models"
)

func TestInspect(t *testing.T) {
	w := NewWriter(DefaultWriteOptions())
	defer w.Close()

	report := NewSheet("People", people(), reportHeader(t))
	report.PrintArea = true
	report.RepeatHeader = true
	w.Add(report, NewSheet("Plain", people(), nil))

	path, err := w.SaveAs(filepath.Join(t.TempDir(), "book"))
	require.NoError(t, err)

	info, err := Inspect(path, ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "book.xlsx", info.BookName)
	require.Len(t, info.Sheets, 2)

	first := info.Sheets[0]
	assert.Equal(t, models.SheetInfo{Index: 0, Name: "People", Rows: 4}, first.SheetInfo)
	assert.Equal(t, 1, first.HeaderRow)
	assert.Equal(t, []models.CellAddress{models.MustParseRange("A1:C1")}, first.Merges)
	assert.Equal(t, []models.CellAddress{models.MustParseRange("A1:C4")}, first.PrintAreas)
	assert.Equal(t, 2, first.PrintTitleRows)

	second := info.Sheets[1]
	assert.Equal(t, "Plain", second.Name)
	assert.Equal(t, 0, second.HeaderRow)
	assert.Empty(t, second.Merges)
	assert.Empty(t, second.PrintAreas)
	assert.Zero(t, second.PrintTitleRows)
}

func TestInspect_Missing(t *testing.T) {
	_, err := Inspect(filepath.Join(t.TempDir(), "missing.xlsx"), ReadOptions{})
	assert.Error(t, err)
}
