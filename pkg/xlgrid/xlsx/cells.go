package xlsx

import (
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/xlgrid/pkg/xlgrid/grid"
	"github.com/xuri/excelize/v2"
)

// cellValue is a source cell holding a decoded scalar.
type cellValue struct {
	v any
}

func (c cellValue) Value() any { return c.v }

// sourceRow holds the decoded cells of one sheet row. Empty strings mark
// absent cells.
type sourceRow struct {
	values []any
}

func (r *sourceRow) Len() int { return len(r.values) }

func (r *sourceRow) Cell(col int) (grid.Cell, bool) {
	if col < 0 || col >= len(r.values) {
		return nil, false
	}
	if s, ok := r.values[col].(string); ok && s == "" {
		return nil, false
	}
	return cellValue{v: r.values[col]}, true
}

// typer decodes raw cell text into typed scalars using the cell's type and
// number format.
type typer struct {
	f       *excelize.File
	sheet   string
	dates   map[int]bool
	use1904 bool
}

func newTyper(f *excelize.File, sheet string) *typer {
	t := &typer{f: f, sheet: sheet, dates: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		t.use1904 = *props.Date1904
	}
	return t
}

// value returns the scalar at col (0-based) of row (1-based).
// Formulas decode as their formula text.
func (t *typer) value(row, col int, raw string) any {
	cell, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		return raw
	}
	if formula, err := t.f.GetCellFormula(t.sheet, cell); err == nil && formula != "" {
		return formula
	}
	if raw == "" {
		return ""
	}

	typ, err := t.f.GetCellType(t.sheet, cell)
	if err != nil {
		return raw
	}
	switch typ {
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true")
	case excelize.CellTypeDate:
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			return ts
		}
		return raw
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		v := parseValue(raw)
		if _, isText := v.(string); isText {
			return raw
		}
		if t.isDate(cell) {
			if serial, ok := toFloat(v); ok {
				if ts, err := excelize.ExcelDateToTime(serial, t.use1904); err == nil {
					return ts
				}
			}
		}
		return v
	default:
		return raw
	}
}

func (t *typer) isDate(cell string) bool {
	idx, err := t.f.GetCellStyle(t.sheet, cell)
	if err != nil || idx == 0 {
		return false
	}
	if d, ok := t.dates[idx]; ok {
		return d
	}
	d := false
	if st, err := t.f.GetStyle(idx); err == nil && st != nil {
		d = isDateFormat(st.NumFmt, st.CustomNumFmt)
	}
	t.dates[idx] = d
	return d
}

// isDateFormat reports whether a built-in number format id or a custom
// format code renders dates or times.
func isDateFormat(id int, custom *string) bool {
	if custom != nil && *custom != "" {
		code := strings.ToLower(stripLiterals(*custom))
		return strings.ContainsAny(code, "ydhs")
	}
	return (id >= 14 && id <= 22) || (id >= 45 && id <= 47)
}

// stripLiterals drops quoted text and bracketed sections from a format code.
func stripLiterals(code string) string {
	var b strings.Builder
	quoted, bracket := false, false
	for _, r := range code {
		switch {
		case r == '"':
			quoted = !quoted
		case quoted:
		case r == '[':
			bracket = true
		case r == ']':
			bracket = false
		case bracket:
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
