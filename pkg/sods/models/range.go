package models

// Range is a rectangular block of cells of a sheet. Setters apply to every
// cell of the block; getters read the top-left cell.
type Range struct {
	sheet *Sheet
	area  CellRange
}

// Area returns the position and extent of the range.
func (r *Range) Area() CellRange {
	return r.area
}

// Address returns the range in A1 notation.
func (r *Range) Address() string {
	return r.area.Address()
}

func (r *Range) each(fn func(c *Cell)) {
	for i := r.area.Row; i < r.area.Row+r.area.Rows; i++ {
		for j := r.area.Column; j < r.area.Column+r.area.Columns; j++ {
			fn(r.sheet.cellAt(i, j))
		}
	}
}

func (r *Range) first() Cell {
	return r.sheet.Cell(r.area.Row, r.area.Column)
}

// SetValue sets the value of every cell.
func (r *Range) SetValue(v any) {
	r.each(func(c *Cell) { c.Value = v })
}

// Value returns the value of the top-left cell.
func (r *Range) Value() any {
	return r.first().Value
}

// SetFormula sets the formula of every cell.
func (r *Range) SetFormula(formula string) {
	r.each(func(c *Cell) { c.Formula = formula })
}

// Formula returns the formula of the top-left cell.
func (r *Range) Formula() string {
	return r.first().Formula
}

// SetStyle sets the style of every cell.
func (r *Range) SetStyle(style *Style) {
	r.each(func(c *Cell) { c.Style = style })
}

// Style returns the style of the top-left cell.
func (r *Range) Style() *Style {
	return r.first().Style
}

// SetAnnotation attaches an annotation to every cell.
func (r *Range) SetAnnotation(a *Annotation) {
	r.each(func(c *Cell) { c.Annotation = a })
}

// Annotation returns the annotation of the top-left cell.
func (r *Range) Annotation() *Annotation {
	return r.first().Annotation
}

// Merge records the range as a merged region. Single cells and regions
// already recorded are ignored.
func (r *Range) Merge() {
	r.sheet.addMerge(r.area)
}
