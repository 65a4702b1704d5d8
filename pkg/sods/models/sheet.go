package models

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ErrOutOfBounds is returned when a position lies outside the sheet grid.
var ErrOutOfBounds = errors.New("position out of sheet bounds")

// Protection describes a protected sheet.
type Protection struct {
	// Key is the password digest as stored in the document (base64).
	Key string `json:"key"`
	// Algorithm is the digest algorithm URI.
	Algorithm string `json:"algorithm"`
}

// CellRange is a rectangular block anchored at (Row, Column), 0-based.
type CellRange struct {
	Row     int `json:"row"`
	Column  int `json:"column"`
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// Address returns the range in A1 notation ("B2:C3"), or a single cell name
// for a 1x1 range.
func (r CellRange) Address() string {
	first, err := excelize.CoordinatesToCellName(r.Column+1, r.Row+1)
	if err != nil {
		return ""
	}
	if r.Rows <= 1 && r.Columns <= 1 {
		return first
	}
	last, err := excelize.CoordinatesToCellName(r.Column+r.Columns, r.Row+r.Rows)
	if err != nil {
		return ""
	}
	return first + ":" + last
}

type rowInfo struct {
	hidden bool
	height *Length
	// cells is allocated lazily and may be shorter than the column count.
	cells []Cell
}

type columnInfo struct {
	hidden       bool
	width        *Length
	defaultStyle *Style
}

// Sheet is a named, growable grid of cells.
//
// Row and column indexes count from zero. The grid only grows: rows and
// columns are appended, never removed.
type Sheet struct {
	// Name is the table:name of the sheet; may be empty.
	Name string
	// Hidden is set for sheets whose table style has display="false".
	Hidden bool
	// Protection is nil for unprotected sheets.
	Protection *Protection
	// PrintAreas holds the table:print-ranges of the sheet.
	PrintAreas []PrintArea

	rows    []rowInfo
	columns []columnInfo
	merges  []CellRange
}

// NewSheet returns a sheet with no rows and no columns.
func NewSheet(name string) *Sheet {
	return &Sheet{Name: name}
}

// MaxRows returns the number of rows.
func (s *Sheet) MaxRows() int {
	return len(s.rows)
}

// MaxColumns returns the number of columns.
func (s *Sheet) MaxColumns() int {
	return len(s.columns)
}

// IsEmpty reports whether the sheet has neither rows nor columns.
func (s *Sheet) IsEmpty() bool {
	return len(s.rows) == 0 && len(s.columns) == 0
}

// AppendRows adds n rows at the bottom of the sheet.
func (s *Sheet) AppendRows(n int) {
	if n <= 0 {
		return
	}
	s.rows = append(s.rows, make([]rowInfo, n)...)
}

// AppendColumns adds n columns at the right of the sheet.
func (s *Sheet) AppendColumns(n int) {
	if n <= 0 {
		return
	}
	s.columns = append(s.columns, make([]columnInfo, n)...)
}

func (s *Sheet) checkRows(start, n int) error {
	if start < 0 || n < 0 || start+n > len(s.rows) {
		return fmt.Errorf("rows %d..%d of %d: %w", start, start+n, len(s.rows), ErrOutOfBounds)
	}
	return nil
}

func (s *Sheet) checkColumns(start, n int) error {
	if start < 0 || n < 0 || start+n > len(s.columns) {
		return fmt.Errorf("columns %d..%d of %d: %w", start, start+n, len(s.columns), ErrOutOfBounds)
	}
	return nil
}

// HideRows marks n rows starting at start as hidden.
func (s *Sheet) HideRows(start, n int) error {
	if err := s.checkRows(start, n); err != nil {
		return err
	}
	for i := start; i < start+n; i++ {
		s.rows[i].hidden = true
	}
	return nil
}

// HideColumns marks n columns starting at start as hidden.
func (s *Sheet) HideColumns(start, n int) error {
	if err := s.checkColumns(start, n); err != nil {
		return err
	}
	for i := start; i < start+n; i++ {
		s.columns[i].hidden = true
	}
	return nil
}

// SetRowHeights sets the height of n rows starting at start.
func (s *Sheet) SetRowHeights(start, n int, height *Length) error {
	if err := s.checkRows(start, n); err != nil {
		return err
	}
	for i := start; i < start+n; i++ {
		s.rows[i].height = height
	}
	return nil
}

// SetColumnWidths sets the width of n columns starting at start.
func (s *Sheet) SetColumnWidths(start, n int, width *Length) error {
	if err := s.checkColumns(start, n); err != nil {
		return err
	}
	for i := start; i < start+n; i++ {
		s.columns[i].width = width
	}
	return nil
}

// SetDefaultColumnStyle records the default cell style of a column.
func (s *Sheet) SetDefaultColumnStyle(column int, style *Style) error {
	if err := s.checkColumns(column, 1); err != nil {
		return err
	}
	s.columns[column].defaultStyle = style
	return nil
}

// DefaultColumnStyle returns the default cell style of a column, or nil.
func (s *Sheet) DefaultColumnStyle(column int) *Style {
	if column < 0 || column >= len(s.columns) {
		return nil
	}
	return s.columns[column].defaultStyle
}

// IsRowHidden reports whether a row is hidden.
func (s *Sheet) IsRowHidden(row int) bool {
	return row >= 0 && row < len(s.rows) && s.rows[row].hidden
}

// IsColumnHidden reports whether a column is hidden.
func (s *Sheet) IsColumnHidden(column int) bool {
	return column >= 0 && column < len(s.columns) && s.columns[column].hidden
}

// RowHeight returns the height of a row, or nil when it is unset.
func (s *Sheet) RowHeight(row int) *Length {
	if row < 0 || row >= len(s.rows) {
		return nil
	}
	return s.rows[row].height
}

// ColumnWidth returns the width of a column, or nil when it is unset.
func (s *Sheet) ColumnWidth(column int) *Length {
	if column < 0 || column >= len(s.columns) {
		return nil
	}
	return s.columns[column].width
}

// SetRawPassword protects the sheet with an already digested password.
func (s *Sheet) SetRawPassword(key, algorithm string) {
	s.Protection = &Protection{Key: key, Algorithm: algorithm}
}

// Hide hides the sheet.
func (s *Sheet) Hide() {
	s.Hidden = true
}

// Cell returns the cell at (row, column). Positions outside the grid and
// cells never written yield the zero Cell.
func (s *Sheet) Cell(row, column int) Cell {
	if row < 0 || row >= len(s.rows) || column < 0 {
		return Cell{}
	}
	cells := s.rows[row].cells
	if column >= len(cells) {
		return Cell{}
	}
	return cells[column]
}

// CellByName returns the cell at an A1-style reference such as "B3".
func (s *Sheet) CellByName(name string) (Cell, error) {
	col, row, err := excelize.CellNameToCoordinates(name)
	if err != nil {
		return Cell{}, err
	}
	if row > len(s.rows) || col > len(s.columns) {
		return Cell{}, fmt.Errorf("cell %s: %w", name, ErrOutOfBounds)
	}
	return s.Cell(row-1, col-1), nil
}

// RowCells returns the cells written in a row; trailing untouched cells are
// omitted. The slice must not be modified.
func (s *Sheet) RowCells(row int) []Cell {
	if row < 0 || row >= len(s.rows) {
		return nil
	}
	return s.rows[row].cells
}

// Range returns the block of rows x columns anchored at (row, column).
func (s *Sheet) Range(row, column, rows, columns int) (*Range, error) {
	if rows < 1 || columns < 1 {
		return nil, fmt.Errorf("range %dx%d: %w", rows, columns, ErrOutOfBounds)
	}
	if err := s.checkRows(row, rows); err != nil {
		return nil, err
	}
	if err := s.checkColumns(column, columns); err != nil {
		return nil, err
	}
	return &Range{sheet: s, area: CellRange{Row: row, Column: column, Rows: rows, Columns: columns}}, nil
}

// MergedRegions returns the merged regions in the order they were merged.
func (s *Sheet) MergedRegions() []CellRange {
	return s.merges
}

func (s *Sheet) addMerge(area CellRange) {
	if area.Rows == 1 && area.Columns == 1 {
		return
	}
	for _, m := range s.merges {
		if m == area {
			return
		}
	}
	s.merges = append(s.merges, area)
}

// cellAt returns a writable cell, growing the row's cell slice as needed.
func (s *Sheet) cellAt(row, column int) *Cell {
	r := &s.rows[row]
	if column >= len(r.cells) {
		grown := make([]Cell, column+1, max(column+1, len(s.columns)))
		copy(grown, r.cells)
		r.cells = grown
	}
	return &r.cells[column]
}
