package models

// TextAlignment is the horizontal alignment of cell text.
type TextAlignment int

const (
	// TextAlignNone leaves alignment to the application default.
	TextAlignNone TextAlignment = iota
	TextAlignLeft
	TextAlignCenter
	TextAlignRight
)

func (a TextAlignment) String() string {
	switch a {
	case TextAlignLeft:
		return "left"
	case TextAlignCenter:
		return "center"
	case TextAlignRight:
		return "right"
	}
	return ""
}

// VerticalAlignment is the vertical alignment of cell text.
type VerticalAlignment int

const (
	// VerticalAlignNone leaves alignment to the application default.
	VerticalAlignNone VerticalAlignment = iota
	VerticalAlignTop
	VerticalAlignMiddle
	VerticalAlignBottom
)

func (a VerticalAlignment) String() string {
	switch a {
	case VerticalAlignTop:
		return "top"
	case VerticalAlignMiddle:
		return "middle"
	case VerticalAlignBottom:
		return "bottom"
	}
	return ""
}

// Style is the set of cell formatting attributes the decoder understands.
// Every attribute is optional; the zero value is the default style.
type Style struct {
	Bold      bool `json:"bold,omitempty"`
	Italic    bool `json:"italic,omitempty"`
	Underline bool `json:"underline,omitempty"`
	// FontSize is in points, 0 when unset.
	FontSize        int               `json:"font_size,omitempty"`
	FontColor       *Color            `json:"font_color,omitempty"`
	BackgroundColor *Color            `json:"background_color,omitempty"`
	TextAlign       TextAlignment     `json:"text_align,omitempty"`
	VerticalAlign   VerticalAlignment `json:"vertical_align,omitempty"`
	// Conditions are evaluated by the consumer, never by the decoder.
	Conditions []ConditionalFormat `json:"conditions,omitempty"`
}

// ConditionalFormat binds a condition expression to an alternate style.
type ConditionalFormat struct {
	// Condition is the raw style:condition text, e.g. "cell-content()>5".
	Condition string `json:"condition"`
	Style     *Style `json:"-"`
}

// AddCondition appends a conditional format.
func (s *Style) AddCondition(condition string, style *Style) {
	s.Conditions = append(s.Conditions, ConditionalFormat{Condition: condition, Style: style})
}

// IsDefault reports whether no attribute is set.
func (s *Style) IsDefault() bool {
	return !s.Bold && !s.Italic && !s.Underline &&
		s.FontSize == 0 &&
		s.FontColor == nil && s.BackgroundColor == nil &&
		s.TextAlign == TextAlignNone && s.VerticalAlign == VerticalAlignNone &&
		len(s.Conditions) == 0
}

// ColumnStyle is a table-column family style.
type ColumnStyle struct {
	Width *Length `json:"width,omitempty"`
}

// RowStyle is a table-row family style.
type RowStyle struct {
	Height *Length `json:"height,omitempty"`
}

// TableStyle is a table family style.
type TableStyle struct {
	Hidden bool `json:"hidden"`
}
