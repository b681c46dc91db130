package xlsx

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// Extension is appended to output paths that lack it.
const Extension = ".xlsx"

// ErrDuplicateSheet is returned when a sheet name is already taken.
// Sheet names compare case-insensitively.
var ErrDuplicateSheet = errors.New("duplicate sheet name")

// Book is a workbook being written.
type Book struct {
	f      *excelize.File
	sheets []string
}

// NewBook returns an empty workbook.
func NewBook() *Book {
	return &Book{f: excelize.NewFile()}
}

// File returns the underlying excelize file.
func (b *Book) File() *excelize.File { return b.f }

// Sheets returns the names of added sheets in order.
func (b *Book) Sheets() []string { return b.sheets }

// AddSheet appends a sheet. The first sheet takes over the default sheet
// of a new file. An empty name becomes "Sheet<n>".
func (b *Book) AddSheet(name string) (string, error) {
	if name == "" {
		name = fmt.Sprintf("Sheet%d", len(b.sheets)+1)
	}
	for _, existing := range b.sheets {
		if strings.EqualFold(existing, name) {
			return "", fmt.Errorf("sheet %q: %w", name, ErrDuplicateSheet)
		}
	}
	if len(b.sheets) == 0 {
		if err := b.f.SetSheetName(b.f.GetSheetName(0), name); err != nil {
			return "", fmt.Errorf("sheet %q: %w", name, err)
		}
	} else if _, err := b.f.NewSheet(name); err != nil {
		return "", fmt.Errorf("sheet %q: %w", name, err)
	}
	b.sheets = append(b.sheets, name)
	return name, nil
}

// WriteTo writes the workbook as xlsx.
func (b *Book) WriteTo(w io.Writer) (int64, error) {
	return b.f.WriteTo(w)
}

// SaveAs writes the workbook to path and returns the final path, with
// Extension appended if missing. The file is written under a temporary
// name and renamed into place.
func (b *Book) SaveAs(path string) (string, error) {
	if !strings.EqualFold(filepath.Ext(path), Extension) {
		path += Extension
	}
	tmp := filepath.Join(filepath.Dir(path), "."+uuid.NewString()+".tmp")
	out, err := os.Create(tmp)
	if err != nil {
		return "", err
	}
	if _, err := b.f.WriteTo(out); err != nil {
		out.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", err
	}
	return path, nil
}

// Close releases the workbook's temporary resources.
func (b *Book) Close() error {
	return b.f.Close()
}
