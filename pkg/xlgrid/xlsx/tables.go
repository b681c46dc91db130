package xlsx

import (
	"errors"
	"fmt"

	"github.com/ukaji3/xlgrid/pkg/xlgrid/models"
	"github.com/xuri/excelize/v2"
)

// ErrNoHeader is returned when no row of a sheet looks like a header.
var ErrNoHeader = errors.New("no header row found")

// HeaderDetectionParams holds parameters for header row detection.
type HeaderDetectionParams struct {
	// DensityMin is the minimum share of non-empty cells in the data bounds.
	DensityMin float64
	// CoverageMin is the minimum share of the data width a header row fills.
	CoverageMin float64
	// MinNonemptyCells is the minimum number of cells in a header row.
	MinNonemptyCells int
	// MaxScanRows bounds how many rows are inspected. Zero scans them all.
	MaxScanRows int
}

// DefaultHeaderParams returns default header detection parameters.
func DefaultHeaderParams() HeaderDetectionParams {
	return HeaderDetectionParams{
		DensityMin:       0.04,
		CoverageMin:      0.6,
		MinNonemptyCells: 2,
		MaxScanRows:      50,
	}
}

// DetectHeaderRow returns the 0-based index of the first row that looks like
// a table header: the first row filling enough of the sheet's data width
// with text. Titles and banners above a table are skipped this way. The
// result can be used as a stream's header row offset.
func DetectHeaderRow(f *excelize.File, sheetName string, params HeaderDetectionParams) (int, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return 0, err
	}
	if params.MaxScanRows > 0 && len(rows) > params.MaxScanRows {
		rows = rows[:params.MaxScanRows]
	}

	// Find the bounding box of non-empty cells
	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return 0, fmt.Errorf("sheet %q: %w", sheetName, ErrNoHeader)
	}

	width := maxCol - minCol + 1
	totalCells := (maxRow - minRow + 1) * width
	density := float64(countNonEmptyCells(rows, minRow, maxRow, minCol, maxCol)) / float64(totalCells)
	if density < params.DensityMin {
		return 0, fmt.Errorf("sheet %q: %w", sheetName, ErrNoHeader)
	}

	for rowIdx := minRow; rowIdx <= maxRow; rowIdx++ {
		count, text := rowCounts(rows[rowIdx], minCol, maxCol)
		if count < params.MinNonemptyCells || text < count {
			continue
		}
		if float64(count)/float64(width) >= params.CoverageMin {
			return rowIdx, nil
		}
	}
	return 0, fmt.Errorf("sheet %q: %w", sheetName, ErrNoHeader)
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell == "" {
				continue
			}
			if minRow < 0 {
				minRow = rowIdx
			}
			maxRow = rowIdx
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}
	return
}

// countNonEmptyCells counts non-empty cells within bounds.
func countNonEmptyCells(rows [][]string, minRow, maxRow, minCol, maxCol int) int {
	count := 0
	for rowIdx := minRow; rowIdx <= maxRow && rowIdx < len(rows); rowIdx++ {
		n, _ := rowCounts(rows[rowIdx], minCol, maxCol)
		count += n
	}
	return count
}

// rowCounts returns the non-empty and the non-numeric cell counts of row
// within the column bounds.
func rowCounts(row []string, minCol, maxCol int) (count, text int) {
	for colIdx := minCol; colIdx <= maxCol && colIdx < len(row); colIdx++ {
		if row[colIdx] == "" {
			continue
		}
		count++
		if _, isText := parseValue(row[colIdx]).(string); isText {
			text++
		}
	}
	return count, text
}

// MergedRegions returns the merged regions of a sheet.
func MergedRegions(f *excelize.File, sheetName string) ([]models.CellAddress, error) {
	cells, err := f.GetMergeCells(sheetName, true)
	if err != nil {
		return nil, err
	}
	regions := make([]models.CellAddress, 0, len(cells))
	for _, mc := range cells {
		addr, err := models.ParseRange(mc.GetStartAxis() + ":" + mc.GetEndAxis())
		if err != nil {
			return nil, err
		}
		regions = append(regions, addr)
	}
	return regions, nil
}
