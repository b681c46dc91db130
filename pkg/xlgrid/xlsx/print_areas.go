package xlsx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/xlgrid/pkg/xlgrid/models"
	"github.com/xuri/excelize/v2"
)

// Built-in defined names holding print settings.
const (
	printAreaName   = "_xlnm.Print_Area"
	printTitlesName = "_xlnm.Print_Titles"
)

// PrintAreas returns the print areas of a workbook by sheet name.
func PrintAreas(f *excelize.File) map[string][]models.CellAddress {
	result := make(map[string][]models.CellAddress)
	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, printAreaName) {
			continue
		}
		sheet, areas := parseAreaReference(dn.RefersTo)
		if sheet == "" {
			sheet = dn.Scope
		}
		if sheet != "" && len(areas) > 0 {
			result[sheet] = append(result[sheet], areas...)
		}
	}
	return result
}

// PrintTitleRows returns the number of leading rows repeated on every
// printed page, by sheet name. Only row titles starting at the first row
// are reported.
func PrintTitleRows(f *excelize.File) map[string]int {
	result := make(map[string]int)
	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, printTitlesName) {
			continue
		}
		for _, part := range strings.Split(dn.RefersTo, ",") {
			sheet, ref := splitSheetRef(part)
			if sheet == "" {
				sheet = dn.Scope
			}
			first, last, ok := strings.Cut(strings.ReplaceAll(ref, "$", ""), ":")
			if !ok || first != "1" {
				continue
			}
			if n, err := strconv.Atoi(last); err == nil && n > 0 {
				result[sheet] = n
			}
		}
	}
	return result
}

// SetPrintArea stores addr as the print area of sheet.
func SetPrintArea(f *excelize.File, sheet string, addr models.CellAddress) error {
	if err := addr.Validate(); err != nil {
		return err
	}
	return f.SetDefinedName(&excelize.DefinedName{
		Name:     printAreaName,
		RefersTo: fmt.Sprintf("%s!%s", quoteSheet(sheet), absoluteRef(addr)),
		Scope:    sheet,
	})
}

// SetPrintTitleRows repeats the first rows of sheet on every printed page.
func SetPrintTitleRows(f *excelize.File, sheet string, rows int) error {
	if rows <= 0 {
		return fmt.Errorf("%w: %d title rows", models.ErrInvalidAddress, rows)
	}
	return f.SetDefinedName(&excelize.DefinedName{
		Name:     printTitlesName,
		RefersTo: fmt.Sprintf("%s!$1:$%d", quoteSheet(sheet), rows),
		Scope:    sheet,
	})
}

// parseAreaReference parses a reference such as 'Sheet 1'!$A$1:$D$10,
// possibly holding several comma-separated areas.
func parseAreaReference(ref string) (string, []models.CellAddress) {
	var areas []models.CellAddress
	var sheetName string
	for _, part := range strings.Split(ref, ",") {
		sheet, rangeStr := splitSheetRef(part)
		if rangeStr == "" {
			continue
		}
		if sheetName == "" {
			sheetName = sheet
		}
		if area, err := models.ParseRange(rangeStr); err == nil {
			areas = append(areas, area)
		}
	}
	return sheetName, areas
}

// splitSheetRef splits Sheet!Range and unquotes the sheet name.
func splitSheetRef(part string) (sheet, ref string) {
	part = strings.TrimSpace(part)
	idx := strings.LastIndex(part, "!")
	if idx < 0 {
		return "", part
	}
	sheet = part[:idx]
	if len(sheet) >= 2 && sheet[0] == '\'' && sheet[len(sheet)-1] == '\'' {
		sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
	}
	return sheet, part[idx+1:]
}

func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

func absoluteRef(addr models.CellAddress) string {
	col := func(c int) string {
		name, _ := excelize.ColumnNumberToName(c + 1)
		return name
	}
	return fmt.Sprintf("$%s$%d:$%s$%d", col(addr.FirstCol), addr.FirstRow+1, col(addr.LastCol), addr.LastRow+1)
}
