package xlgrid

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineWriter(t *testing.T) {
	w := NewLineWriter(DefaultWriteOptions())
	defer w.Close()

	users, err := w.CreateSheet("users")
	require.NoError(t, err)
	orders, err := w.CreateSheet("")
	require.NoError(t, err)
	assert.Equal(t, "Sheet2", orders.Name)

	require.NoError(t, w.WriteRow(users, "name", "age", "joined"))
	require.NoError(t, w.WriteRow(users, "cyx", 18, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))
	require.NoError(t, w.WriteRow(users, "anon", nil, true))
	require.NoError(t, w.WriteRow(orders, "id"))
	assert.Equal(t, 3, users.Rows())
	assert.Equal(t, 1, orders.Rows())

	var buf bytes.Buffer
	_, err = w.WriteTo(&buf)
	require.NoError(t, err)

	f := openBytes(t, buf.Bytes())
	rows, err := f.GetRows("users")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"name", "age", "joined"},
		{"cyx", "18", "2024-01-02 03:04:05"},
		{"anon", "", "true"},
	}, rows)

	assert.ErrorIs(t, w.WriteRow(users, "late"), ErrResourceAlreadyClosed)
	_, err = w.CreateSheet("late")
	assert.ErrorIs(t, err, ErrResourceAlreadyClosed)
}

func TestLineWriter_Empty(t *testing.T) {
	w := NewLineWriter(DefaultWriteOptions())
	defer w.Close()

	_, err := w.SaveAs(filepath.Join(t.TempDir(), "out"))
	assert.ErrorIs(t, err, ErrEmptyDataSet)
}

func TestLineWriter_SaveAs(t *testing.T) {
	w := NewLineWriter(DefaultWriteOptions())
	defer w.Close()
	s, err := w.CreateSheet("s")
	require.NoError(t, err)
	require.NoError(t, w.WriteRow(s, "x"))

	path, err := w.SaveAs(filepath.Join(t.TempDir(), "lines"))
	require.NoError(t, err)
	assert.Equal(t, ".xlsx", filepath.Ext(path))
}
