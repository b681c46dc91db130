package xlsx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/grid"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/models"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/style"
	"github.com/xuri/excelize/v2"
)

func setCell(t *testing.T, s grid.Sink, row, col int, v string) grid.SinkCell {
	t.Helper()
	r, err := s.CreateRow(row)
	require.NoError(t, err)
	c, err := r.CreateCell(col)
	require.NoError(t, err)
	require.NoError(t, c.SetValue(v))
	return c
}

func reopen(t *testing.T, f *excelize.File) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)
	out, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { out.Close() })
	return out
}

func TestFileSink_ValuesAndWidths(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	s := NewFileSink(f, "Sheet1")

	require.NoError(t, s.AddMergedRegion(models.MustParseRange("A1:C1")))
	setCell(t, s, 0, 0, "A very long merged title that spans three columns")
	setCell(t, s, 1, 0, "id")
	setCell(t, s, 1, 1, "hello world")
	setCell(t, s, 2, 1, "日本語")

	for col := 0; col < 3; col++ {
		require.NoError(t, s.AutoSizeColumn(col))
	}
	assert.True(t, s.Capabilities().AutoSize)

	v, err := f.GetCellValue("Sheet1", "B2")
	require.NoError(t, err)
	assert.Equal(t, "hello world", v)

	w, err := f.GetColWidth("Sheet1", "A")
	require.NoError(t, err)
	assert.Equal(t, minColumnWidth, w, "merged anchor must not widen column A")

	w, err = f.GetColWidth("Sheet1", "B")
	require.NoError(t, err)
	assert.Equal(t, float64(len("hello world")+widthPadding), w)

	merges, err := f.GetMergeCells("Sheet1")
	require.NoError(t, err)
	require.Len(t, merges, 1)
	assert.Equal(t, "A1", merges[0].GetStartAxis())
	assert.Equal(t, "C1", merges[0].GetEndAxis())
}

func TestFileSink_Style(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	s := NewFileSink(f, "Sheet1")

	reg := style.NewRegistry(StyleResolver(f))
	spec, ok := reg.Named(style.PresetHeader)
	require.True(t, ok)
	h, err := reg.Resolve(spec)
	require.NoError(t, err)

	c := setCell(t, s, 0, 0, "Name")
	require.NoError(t, c.SetStyle(h))

	got, err := f.GetCellStyle("Sheet1", "A1")
	require.NoError(t, err)
	assert.Equal(t, int(h), got)

	st, err := f.GetStyle(got)
	require.NoError(t, err)
	require.NotNil(t, st.Font)
	assert.True(t, st.Font.Bold)
}

func TestFileSink_InvalidAddress(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	s := NewFileSink(f, "Sheet1")

	_, err := s.CreateRow(-1)
	assert.ErrorIs(t, err, models.ErrInvalidAddress)

	r, err := s.CreateRow(0)
	require.NoError(t, err)
	_, err = r.CreateCell(excelize.MaxColumns)
	assert.ErrorIs(t, err, models.ErrInvalidAddress)
}

func TestStreamSink_WritesInOrder(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	s, err := NewStreamSink(f, "Sheet1")
	require.NoError(t, err)

	require.NoError(t, s.SetColumnWidth(1, 20))
	require.NoError(t, s.AddMergedRegion(models.MustParseRange("A1:B1")))
	setCell(t, s, 0, 0, "Title")
	setCell(t, s, 2, 0, "a")
	setCell(t, s, 2, 1, "b")
	setCell(t, s, 3, 1, "only b")

	_, err = s.CreateRow(1)
	assert.ErrorIs(t, err, models.ErrInvalidAddress)

	require.NoError(t, s.Flush())
	require.NoError(t, s.Flush())
	_, err = s.CreateRow(4)
	assert.Error(t, err)

	out := reopen(t, f)
	rows, err := out.GetRows("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Title"}, nil, {"a", "b"}, {"", "only b"}}, rows)

	w, err := out.GetColWidth("Sheet1", "B")
	require.NoError(t, err)
	assert.Equal(t, 20.0, w)

	merges, err := out.GetMergeCells("Sheet1")
	require.NoError(t, err)
	require.Len(t, merges, 1)
	assert.Equal(t, "A1", merges[0].GetStartAxis())
}

func TestStreamSink_NoAutoSize(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	s, err := NewStreamSink(f, "Sheet1")
	require.NoError(t, err)

	assert.False(t, s.Capabilities().AutoSize)
	assert.ErrorIs(t, s.AutoSizeColumn(0), grid.ErrAutoSizeUnsupported)
}

func TestStreamSink_StaleRow(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	s, err := NewStreamSink(f, "Sheet1")
	require.NoError(t, err)

	first, err := s.CreateRow(0)
	require.NoError(t, err)
	_, err = s.CreateRow(1)
	require.NoError(t, err)

	_, err = first.CreateCell(0)
	assert.Error(t, err)
}

func TestToExcelize(t *testing.T) {
	st := ToExcelize(style.New())
	assert.Nil(t, st.Font)
	assert.Nil(t, st.Alignment)
	assert.Empty(t, st.Border)

	st = ToExcelize(style.New().WithFill("c6efce").WithFont(12, "#006100").WithBorder(style.BorderThin, "9bbb59").WithWrap())
	require.NotNil(t, st.Font)
	assert.Equal(t, 12.0, st.Font.Size)
	assert.Equal(t, "#006100", st.Font.Color)
	assert.Equal(t, style.PatternSolid, st.Fill.Pattern)
	assert.Equal(t, []string{"#C6EFCE"}, st.Fill.Color)
	require.Len(t, st.Border, 4)
	assert.Equal(t, "#9BBB59", st.Border[0].Color)
	require.NotNil(t, st.Alignment)
	assert.True(t, st.Alignment.WrapText)
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"日本", 4},
		{"ｶﾅ", 2},
		{"short\nmuch longer", 11},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, displayWidth(tt.in), tt.in)
	}

	assert.Equal(t, minColumnWidth, columnWidth(0))
	assert.Equal(t, 12.0, columnWidth(10))
	assert.Equal(t, float64(maxColumnWidth), columnWidth(1000))
}
