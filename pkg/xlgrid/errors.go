package xlgrid

import (
	"errors"
	"fmt"

	"github.com/ukaji3/xlgrid/pkg/xlgrid/layout"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/models"
)

// ErrInvalidAddress indicates a negative or inverted cell coordinate.
var ErrInvalidAddress = models.ErrInvalidAddress

// ErrEmptyDataSet indicates a flush with no sheets registered.
var ErrEmptyDataSet = errors.New("nothing to write: no sheets registered")

// ErrUnresolvedField indicates a record without a value for a header field.
// It is recovered by writing the empty fallback and is only logged.
var ErrUnresolvedField = errors.New("unresolved field")

// ErrResourceAlreadyClosed indicates a read after the workbook was released.
var ErrResourceAlreadyClosed = errors.New("resource already closed")

// ErrDuplicateField indicates a field key bound twice in one header row.
var ErrDuplicateField = layout.ErrDuplicateField

// SheetError represents a failure while writing or reading one sheet.
type SheetError struct {
	SheetName string
	Stage     string // "header", "body", "merge", "style", "width", "flush", "stream", "inspect"
	Err       error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("sheet %q (%s): %v", e.SheetName, e.Stage, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// NewSheetError creates a new SheetError.
func NewSheetError(sheetName, stage string, err error) *SheetError {
	return &SheetError{
		SheetName: sheetName,
		Stage:     stage,
		Err:       err,
	}
}
