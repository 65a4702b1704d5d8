package parser

import (
	"strconv"

	"github.com/hrk/sods/pkg/sods/models"
	"go.uber.org/zap"
)

// DefaultDigestAlgorithm is assumed for protected tables that do not name
// their password digest algorithm.
const DefaultDigestAlgorithm = "http://www.w3.org/2000/09/xmldsig#sha1"

const (
	tagTableColumn       = "table:table-column"
	tagTableRow          = "table:table-row"
	tagTableCell         = "table:table-cell"
	tagCoveredTableCell  = "table:covered-table-cell"
	attrColumnsRepeated  = "table:number-columns-repeated"
	attrRowsRepeated     = "table:number-rows-repeated"
	attrColumnsSpanned   = "table:number-columns-spanned"
	attrRowsSpanned      = "table:number-rows-spanned"
	attrStyleName        = "table:style-name"
	attrDefaultCellStyle = "table:default-cell-style-name"
	attrVisibility       = "table:visibility"
)

// Elements that only group rows or columns; their children are read as if
// they were children of the table.
var tableGroupTags = []string{
	"table:table-columns",
	"table:table-header-columns",
	"table:table-column-group",
	"table:table-rows",
	"table:table-header-rows",
	"table:table-row-group",
}

type sheetDecoder struct {
	sheet  *models.Sheet
	styles *StyleTable
	cfg    Config
	log    *zap.Logger

	// Default cell styles by column index and by the first index of the
	// row declaration that named them.
	columnDefaults map[int]*models.Style
	rowDefaults    map[int]*models.Style

	merges    []models.CellRange
	mergeSeen map[models.CellRange]struct{}
}

// DecodeSheet fills sheet from a table:table element.
//
// Merged regions are collected during the scan and applied once the whole
// table has been read.
func DecodeSheet(table *Cursor, sheet *models.Sheet, styles *StyleTable, cfg Config) {
	d := &sheetDecoder{
		sheet:          sheet,
		styles:         styles,
		cfg:            cfg,
		log:            cfg.log().With(zap.String("sheet", sheet.Name)),
		columnDefaults: make(map[int]*models.Style),
		rowDefaults:    make(map[int]*models.Style),
		mergeSeen:      make(map[models.CellRange]struct{}),
	}
	d.decode(table)
}

func (d *sheetDecoder) decode(table *Cursor) {
	if name, ok := table.Attr(attrStyleName); ok {
		if style := d.styles.TableStyle(name); style != nil && style.Hidden {
			d.sheet.Hide()
		}
	}

	if _, ok := table.Attr("table:protected"); ok {
		algorithm, ok := table.Attr("table:protection-key-digest-algorithm")
		if !ok {
			algorithm = DefaultDigestAlgorithm
		}
		key, _ := table.Attr("table:protection-key")
		d.sheet.SetRawPassword(key, algorithm)
	}

	if ranges, ok := table.Attr("table:print-ranges"); ok {
		d.sheet.PrintAreas = ParsePrintRanges(ranges, d.log)
	}

	d.readColumnsAndRows(table)

	for _, m := range d.merges {
		r, err := d.sheet.Range(m.Row, m.Column, m.Rows, m.Columns)
		if err != nil {
			d.log.Warn("merged region outside table", zap.String("range", m.Address()), zap.Error(err))
			continue
		}
		r.Merge()
	}
}

func (d *sheetDecoder) readColumnsAndRows(scope *Cursor) {
	tags := append([]string{tagTableColumn, tagTableRow}, tableGroupTags...)
	for {
		el := scope.Next(tags...)
		if el == nil {
			return
		}

		var style *models.Style
		if name, ok := el.Attr(attrDefaultCellStyle); ok {
			style = d.styles.CellStyle(name)
		}

		switch el.Tag() {
		case tagTableColumn:
			d.readColumn(el, style)
		case tagTableRow:
			d.readRow(el, style)
		default:
			d.readColumnsAndRows(el)
		}
	}
}

// count reads a positive integer attribute that defaults to 1.
func (d *sheetDecoder) count(el *Cursor, attr string) int {
	v, ok := el.Attr(attr)
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		d.log.Warn("invalid count", zap.String("attr", attr), zap.String("value", v), zap.Error(err))
		return 1
	}
	return n
}

// repeat reads a repeat count. It reports false when the count exceeds the
// configured ceiling, in which case the declaration must be dropped.
func (d *sheetDecoder) repeat(el *Cursor, attr string) (int, bool) {
	n := d.count(el, attr)
	if n > d.cfg.maxRepeat() {
		d.log.Debug("dropping declaration with oversized repeat count",
			zap.String("element", el.Tag()), zap.String("attr", attr), zap.Int("count", n))
		return 0, false
	}
	return n, true
}

func (d *sheetDecoder) collapsed(el *Cursor) bool {
	v, ok := el.Attr(attrVisibility)
	if !ok {
		return false
	}
	switch v {
	case "collapse":
		return true
	case "visible", "filter":
	default:
		d.log.Warn("unknown visibility", zap.String("element", el.Tag()), zap.String("value", v))
	}
	return false
}

func (d *sheetDecoder) readColumn(el *Cursor, style *models.Style) {
	n, ok := d.repeat(el, attrColumnsRepeated)
	if !ok {
		return
	}

	index := d.sheet.MaxColumns()
	d.sheet.AppendColumns(n)

	if style != nil && !style.IsDefault() {
		for j := index; j < index+n; j++ {
			_ = d.sheet.SetDefaultColumnStyle(j, style)
			d.columnDefaults[j] = style
		}
	}

	if d.collapsed(el) {
		_ = d.sheet.HideColumns(index, n)
	}

	if name, ok := el.Attr(attrStyleName); ok {
		if cs := d.styles.ColumnStyle(name); cs != nil && cs.Width != nil {
			_ = d.sheet.SetColumnWidths(index, n, cs.Width)
		}
	}
}

func (d *sheetDecoder) readRow(el *Cursor, style *models.Style) {
	n, ok := d.repeat(el, attrRowsRepeated)
	if !ok {
		return
	}

	first := d.sheet.MaxRows()
	d.sheet.AppendRows(n)

	if d.collapsed(el) {
		_ = d.sheet.HideRows(first, n)
	}

	if name, ok := el.Attr(attrStyleName); ok {
		if rs := d.styles.RowStyle(name); rs != nil && rs.Height != nil {
			_ = d.sheet.SetRowHeights(first, n, rs.Height)
		}
	}

	// Only the first row of a repeated declaration gets an entry; the cell
	// phase looks rows up by the last row index.
	if style != nil {
		d.rowDefaults[first] = style
	}

	d.readCells(el, n)
}

// readCells walks the cells of a row declaration that stands for
// rowsRepeated identical rows.
func (d *sheetDecoder) readCells(row *Cursor, rowsRepeated int) {
	column := 0
	for {
		el := row.Next(tagTableCell, tagCoveredTableCell)
		if el == nil {
			return
		}

		if el.Tag() == tagCoveredTableCell {
			// Covered cells only move the column cursor.
			column += d.count(el, attrColumnsRepeated)
			continue
		}
		column += d.readCell(el, column, rowsRepeated)
	}
}

// readCell decodes one table:table-cell at column and returns the number of
// columns it covers.
func (d *sheetDecoder) readCell(el *Cursor, column, rowsRepeated int) int {
	columnsRepeated, ok := d.repeat(el, attrColumnsRepeated)
	if !ok {
		return 0
	}

	lastRow := d.sheet.MaxRows() - 1
	rowsSpanned := d.count(el, attrRowsSpanned)
	columnsSpanned := d.count(el, attrColumnsSpanned)
	if rowsRepeated == 1 && (rowsSpanned != 1 || columnsSpanned != 1) {
		d.addMerge(models.CellRange{Row: lastRow, Column: column, Rows: rowsSpanned, Columns: columnsSpanned})
	}

	value := DecodeValue(el, d.log)

	if extent := column + max(columnsRepeated, columnsSpanned); extent > d.sheet.MaxColumns() {
		d.sheet.AppendColumns(extent - d.sheet.MaxColumns())
	}

	r, err := d.sheet.Range(lastRow-rowsRepeated+1, column, rowsRepeated, columnsRepeated)
	if err != nil {
		d.log.Warn("cell outside table", zap.Int("row", lastRow), zap.Int("column", column), zap.Error(err))
		return columnsRepeated
	}

	if formula, ok := el.Attr("table:formula"); ok {
		r.SetFormula(formula)
	}
	if value != nil {
		r.SetValue(value)
	}

	if style := d.cellStyle(el, column, lastRow); style != nil && !style.IsDefault() {
		r.SetStyle(style)
	}

	d.readCellText(el, r)
	return columnsRepeated
}

// cellStyle resolves the style of a cell: its own style name, then the
// column default, then the row default.
func (d *sheetDecoder) cellStyle(el *Cursor, column, row int) *models.Style {
	if name, ok := el.Attr(attrStyleName); ok {
		if style := d.styles.CellStyle(name); style != nil {
			return style
		}
	}
	if style := d.columnDefaults[column]; style != nil {
		return style
	}
	return d.rowDefaults[row]
}

func (d *sheetDecoder) addMerge(m models.CellRange) {
	if _, ok := d.mergeSeen[m]; ok {
		return
	}
	d.mergeSeen[m] = struct{}{}
	d.merges = append(d.merges, m)
}
