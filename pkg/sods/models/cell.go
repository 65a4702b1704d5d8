package models

// Cell is a single grid position.
type Cell struct {
	// Value is one of string, float64, bool, time.Time, time.Duration,
	// Percentage or Currency. Nil for empty cells.
	Value any
	// Formula is the raw table:formula text, empty when absent.
	Formula string
	// Style is shared with the style table; nil means no style.
	Style *Style
	// Annotation is the cell comment, if any.
	Annotation *Annotation
}

// IsEmpty reports whether the cell carries nothing.
func (c Cell) IsEmpty() bool {
	return c.Value == nil && c.Formula == "" && c.Style == nil && c.Annotation == nil
}

// CellRow represents a single row of cells with optional annotations.
type CellRow struct {
	// R is the row index (1-based).
	R int `json:"r"`
	// C maps column name (A, B, ...) to cell value.
	C map[string]interface{} `json:"c"`
	// Notes maps column name to annotation text (optional).
	Notes map[string]string `json:"notes,omitempty"`
}
