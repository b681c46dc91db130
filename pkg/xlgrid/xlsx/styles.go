package xlsx

import (
	"strings"

	"github.com/ukaji3/xlgrid/pkg/xlgrid/style"
	"github.com/xuri/excelize/v2"
)

var borderSides = []string{"left", "top", "right", "bottom"}

// ToExcelize converts a Spec into an excelize style definition.
func ToExcelize(spec style.Spec) *excelize.Style {
	st := &excelize.Style{NumFmt: spec.NumFmt}

	if spec.Bold || spec.Italic || spec.FontSize > 0 || spec.FontColor != "" {
		st.Font = &excelize.Font{
			Bold:   spec.Bold,
			Italic: spec.Italic,
			Size:   spec.FontSize,
			Color:  normalizeColor(spec.FontColor),
		}
	}

	if spec.Fill != "" {
		pattern := spec.Pattern
		if pattern == style.PatternNone {
			pattern = style.PatternSolid
		}
		st.Fill = excelize.Fill{
			Type:    "pattern",
			Pattern: pattern,
			Color:   []string{normalizeColor(spec.Fill)},
		}
	}

	if spec.Border.Style != style.BorderNone {
		for _, side := range borderSides {
			st.Border = append(st.Border, excelize.Border{
				Type:  side,
				Style: spec.Border.Style,
				Color: normalizeColor(spec.Border.Color),
			})
		}
	}

	if spec.Horizontal != "" || spec.Vertical != "" || spec.WrapText {
		st.Alignment = &excelize.Alignment{
			Horizontal: spec.Horizontal,
			Vertical:   spec.Vertical,
			WrapText:   spec.WrapText,
		}
	}
	return st
}

// StyleResolver returns a style.ResolveFunc that registers styles in f.
func StyleResolver(f *excelize.File) style.ResolveFunc {
	return func(spec style.Spec) (style.Handle, error) {
		id, err := f.NewStyle(ToExcelize(spec))
		if err != nil {
			return 0, err
		}
		return style.Handle(id), nil
	}
}

// normalizeColor accepts "#RRGGBB" or "RRGGBB" and returns the form excelize
// expects.
func normalizeColor(c string) string {
	if c == "" {
		return ""
	}
	return "#" + strings.ToUpper(strings.TrimPrefix(c, "#"))
}
