// Package style carries cell formatting as immutable values.
//
// A Spec describes how a cell should look. It is resolved into an opaque
// Handle by a Registry exactly once per distinct Spec, at materialization
// time, by the grid implementation that owns the workbook.
package style

// Handle is an opaque style reference produced by a grid implementation.
type Handle int

// Border line styles understood by the excelize sink.
const (
	BorderNone   = 0
	BorderThin   = 1
	BorderMedium = 2
	BorderDashed = 3
	BorderDotted = 4
	BorderThick  = 5
	BorderDouble = 6
)

// Fill patterns. PatternSolid is the only one most callers need.
const (
	PatternNone  = 0
	PatternSolid = 1
)

// Border is a uniform border drawn on all four sides of a cell.
type Border struct {
	Style int    `json:"style"`
	Color string `json:"color,omitempty"`
}

// Spec is an immutable style description. It is comparable and can be used
// as a map key; every modifier returns a new value.
type Spec struct {
	Bold       bool    `json:"bold,omitempty"`
	Italic     bool    `json:"italic,omitempty"`
	FontSize   float64 `json:"font_size,omitempty"`
	FontColor  string  `json:"font_color,omitempty"`
	Fill       string  `json:"fill,omitempty"`
	Pattern    int     `json:"pattern,omitempty"`
	Border     Border  `json:"border"`
	Horizontal string  `json:"horizontal,omitempty"`
	Vertical   string  `json:"vertical,omitempty"`
	WrapText   bool    `json:"wrap_text,omitempty"`
	NumFmt     int     `json:"num_fmt,omitempty"`
}

// New returns the empty Spec.
func New() Spec { return Spec{} }

// WithBold returns a copy with a bold font.
func (s Spec) WithBold() Spec {
	s.Bold = true
	return s
}

// WithItalic returns a copy with an italic font.
func (s Spec) WithItalic() Spec {
	s.Italic = true
	return s
}

// WithFont returns a copy with the given font size and color (hex, e.g. "#1F1F1F").
func (s Spec) WithFont(size float64, color string) Spec {
	s.FontSize = size
	s.FontColor = color
	return s
}

// WithFill returns a copy with a solid background fill.
func (s Spec) WithFill(color string) Spec {
	s.Fill = color
	s.Pattern = PatternSolid
	return s
}

// WithBorder returns a copy with a uniform border.
func (s Spec) WithBorder(lineStyle int, color string) Spec {
	s.Border = Border{Style: lineStyle, Color: color}
	return s
}

// WithAlign returns a copy with horizontal and vertical alignment
// ("left", "center", "right"; "top", "center", "bottom").
func (s Spec) WithAlign(horizontal, vertical string) Spec {
	s.Horizontal = horizontal
	s.Vertical = vertical
	return s
}

// WithWrap returns a copy that wraps long text.
func (s Spec) WithWrap() Spec {
	s.WrapText = true
	return s
}

// WithNumFmt returns a copy with a built-in number format id.
func (s Spec) WithNumFmt(id int) Spec {
	s.NumFmt = id
	return s
}

// IsZero reports whether the Spec carries no formatting at all.
func (s Spec) IsZero() bool {
	return s == Spec{}
}
