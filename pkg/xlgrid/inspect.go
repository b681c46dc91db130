package xlgrid

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/ukaji3/xlgrid/pkg/xlgrid/models"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/xlsx"
)

// Inspect opens the workbook at path and reports, for every non-empty
// sheet, the detected header row, the merged regions and the print
// settings. Its result tells which StreamOptions.HeaderRow to read with.
func Inspect(path string, opts ReadOptions) (*models.WorkbookInfo, error) {
	wb, err := xlsx.Open(path, xlsx.WithRawStrings(true))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer wb.Close()

	info, err := inspect(wb, opts.logger())
	if err != nil {
		return nil, err
	}
	info.BookName = filepath.Base(path)
	return info, nil
}

func inspect(wb *xlsx.Workbook, log *slog.Logger) (*models.WorkbookInfo, error) {
	sheets, err := wb.Sheets()
	if err != nil {
		return nil, err
	}

	f := wb.File()
	areas := xlsx.PrintAreas(f)
	titles := xlsx.PrintTitleRows(f)

	info := &models.WorkbookInfo{Sheets: make([]models.SheetSummary, 0, len(sheets))}
	for _, s := range sheets {
		summary := models.SheetSummary{
			SheetInfo:      s,
			HeaderRow:      -1,
			PrintAreas:     areas[s.Name],
			PrintTitleRows: titles[s.Name],
		}

		row, err := xlsx.DetectHeaderRow(f, s.Name, xlsx.DefaultHeaderParams())
		switch {
		case err == nil:
			summary.HeaderRow = row
		case errors.Is(err, xlsx.ErrNoHeader):
			log.Debug("no header row detected", "sheet", s.Name)
		default:
			return nil, NewSheetError(s.Name, "inspect", err)
		}

		if summary.Merges, err = xlsx.MergedRegions(f, s.Name); err != nil {
			return nil, NewSheetError(s.Name, "inspect", err)
		}
		info.Sheets = append(info.Sheets, summary)
	}
	return info, nil
}
