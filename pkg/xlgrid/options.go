// Package xlgrid maps between logical records and spreadsheet grids: it
// renders records beneath multi-row, merged headers and streams sheet rows
// back into records.
package xlgrid

import (
	"log/slog"

	"github.com/ukaji3/xlgrid/pkg/xlgrid/record"
)

// WriteOptions configures a Writer.
type WriteOptions struct {
	// Streaming writes rows straight to the output instead of holding the
	// workbook in memory. Columns are never auto-sized in this mode.
	Streaming bool
	// AutoSize sizes every body column to its content.
	// If nil, defaults to true unless Streaming is set.
	AutoSize *bool
	// TimeLayout formats time.Time values. Defaults to record.DefaultTimeLayout.
	TimeLayout string
	// Logger receives debug output. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultWriteOptions returns default write options.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{TimeLayout: record.DefaultTimeLayout}
}

// ShouldAutoSize returns whether columns are auto-sized.
func (o WriteOptions) ShouldAutoSize() bool {
	if o.AutoSize != nil {
		return *o.AutoSize
	}
	return !o.Streaming
}

func (o WriteOptions) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// ReadOptions configures a Reader.
type ReadOptions struct {
	// RawStrings returns every cell as its formatted string instead of a
	// typed scalar. Raw reads stream the sheet; typed reads load it whole.
	RawStrings bool
	// Logger receives debug output. Defaults to slog.Default().
	Logger *slog.Logger
}

func (o ReadOptions) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// StreamOptions selects the sheet and header handling of a row stream.
type StreamOptions struct {
	// SheetIndex is the 0-based sheet to read.
	SheetIndex int
	// HeaderRow is the number of leading rows to skip before the header.
	HeaderRow int
	// SkipBlankHeaderCols names missing or blank header cells "#<index>#".
	// If nil, defaults to true.
	SkipBlankHeaderCols *bool
	// FieldNames replaces the sheet's own header row, which is then skipped.
	FieldNames []string
	// Logger receives debug output. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultStreamOptions returns options reading the first sheet with its
// first row as header.
func DefaultStreamOptions() StreamOptions {
	return StreamOptions{}
}

// ShouldSkipBlankHeaderCols returns whether blank header cells get
// positional names.
func (o StreamOptions) ShouldSkipBlankHeaderCols() bool {
	if o.SkipBlankHeaderCols != nil {
		return *o.SkipBlankHeaderCols
	}
	return true
}

// Bool returns a pointer to b, for the tri-state option fields.
func Bool(b bool) *bool { return &b }
