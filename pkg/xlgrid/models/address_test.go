package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCellAddress(t *testing.T) {
	tests := []struct {
		name                                 string
		firstRow, lastRow, firstCol, lastCol int
		wantErr                              bool
	}{
		{"single cell", 0, 0, 0, 0, false},
		{"span", 0, 1, 0, 2, false},
		{"negative row", -1, 0, 0, 0, true},
		{"negative col", 0, 0, 0, -3, true},
		{"inverted rows", 2, 1, 0, 0, true},
		{"inverted cols", 0, 0, 3, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := NewCellAddress(tt.firstRow, tt.lastRow, tt.firstCol, tt.lastCol)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidAddress)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, CellAddress{tt.firstRow, tt.lastRow, tt.firstCol, tt.lastCol}, addr)
		})
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		ref     string
		want    CellAddress
		wantErr bool
	}{
		{"A1", CellAddress{0, 0, 0, 0}, false},
		{"B3", CellAddress{2, 2, 1, 1}, false},
		{"A1:C2", CellAddress{0, 1, 0, 2}, false},
		{"$A$1:$C$2", CellAddress{0, 1, 0, 2}, false},
		{" AA10:AB11 ", CellAddress{9, 10, 26, 27}, false},
		{"C2:A1", CellAddress{}, true},
		{"A1:B2:C3", CellAddress{}, true},
		{"1A", CellAddress{}, true},
		{"", CellAddress{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := ParseRange(tt.ref)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidAddress)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMustParseRange_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParseRange("nope") })
	assert.NotPanics(t, func() { MustParseRange("A1:B1") })
}

func TestCellAddress_String(t *testing.T) {
	assert.Equal(t, "A1:C2", MustParseRange("A1:C2").String())
	assert.Equal(t, "B3", MustParseRange("B3").String())
	assert.Equal(t, "(2,1,0,0)", CellAddress{FirstRow: 2, LastRow: 1}.String())
}

func TestCellAddress_Overlaps(t *testing.T) {
	title := MustParseRange("A1:C2")

	assert.True(t, title.Overlaps(MustParseRange("B2")))
	assert.True(t, title.Overlaps(MustParseRange("C1:D5")))
	assert.False(t, title.Overlaps(MustParseRange("A3:C3")))
	assert.False(t, title.Overlaps(MustParseRange("D1")))
}

func TestCellAddress_ShiftAndMerge(t *testing.T) {
	addr := MustParseRange("A1:B1")
	assert.True(t, addr.IsMerged())
	assert.False(t, MustParseRange("A1").IsMerged())

	moved := addr.Shift(3)
	assert.Equal(t, CellAddress{3, 3, 0, 1}, moved)
	assert.Equal(t, "A4", moved.TopLeft())
	assert.Equal(t, "B4", moved.BottomRight())
}

func TestNewCoord(t *testing.T) {
	c, err := NewCoord(1, 2)
	require.NoError(t, err)
	assert.Equal(t, Coord{Row: 1, Col: 2}, c)

	_, err = NewCoord(-1, 0)
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestCellAddress_JSON(t *testing.T) {
	data, err := json.Marshal([]CellAddress{MustParseRange("A1:C2"), MustParseRange("D4")})
	require.NoError(t, err)
	assert.JSONEq(t, `["A1:C2","D4"]`, string(data))

	var back []CellAddress
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, []CellAddress{MustParseRange("A1:C2"), MustParseRange("D4")}, back)

	_, err = json.Marshal(CellAddress{FirstRow: -1})
	assert.Error(t, err)
	assert.Error(t, json.Unmarshal([]byte(`"nope"`), &back))
}
