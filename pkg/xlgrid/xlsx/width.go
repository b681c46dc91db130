package xlsx

import (
	"strings"

	"golang.org/x/text/width"
)

// Column width bounds in character units.
const (
	minColumnWidth = 8.43
	maxColumnWidth = 255
	widthPadding   = 2
)

// displayWidth returns the widest line of s in character cells; wide and
// fullwidth runes count twice.
func displayWidth(s string) int {
	widest := 0
	for _, line := range strings.Split(s, "\n") {
		n := 0
		for _, r := range line {
			switch width.LookupRune(r).Kind() {
			case width.EastAsianWide, width.EastAsianFullwidth:
				n += 2
			default:
				n++
			}
		}
		widest = max(widest, n)
	}
	return widest
}

// columnWidth converts a content width into an Excel column width.
func columnWidth(chars int) float64 {
	w := float64(chars + widthPadding)
	return min(max(w, minColumnWidth), maxColumnWidth)
}
