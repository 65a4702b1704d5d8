package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/hrk/sods/pkg/sods/models"
	"go.uber.org/zap"
)

// DefaultStyleName is the cell style every document implicitly defines.
const DefaultStyleName = "Default"

const (
	tagStyle                 = "style:style"
	tagTextProperties        = "style:text-properties"
	tagTableCellProperties   = "style:table-cell-properties"
	tagParagraphProperties   = "style:paragraph-properties"
	tagStyleMap              = "style:map"
	tagTableColumnProperties = "style:table-column-properties"
	tagTableRowProperties    = "style:table-row-properties"
	tagTableProperties       = "style:table-properties"
)

// StyleTable holds the named styles of a document, one catalog per family.
// Lookups of unknown names return nil.
type StyleTable struct {
	log     *zap.Logger
	cells   map[string]*models.Style
	columns map[string]*models.ColumnStyle
	rows    map[string]*models.RowStyle
	tables  map[string]*models.TableStyle
}

// NewStyleTable returns a table that only knows the "Default" cell style.
func NewStyleTable(log *zap.Logger) *StyleTable {
	if log == nil {
		log = zap.NewNop()
	}
	return &StyleTable{
		log:     log,
		cells:   map[string]*models.Style{DefaultStyleName: {}},
		columns: make(map[string]*models.ColumnStyle),
		rows:    make(map[string]*models.RowStyle),
		tables:  make(map[string]*models.TableStyle),
	}
}

// CellStyle returns the table-cell style with the given name.
func (t *StyleTable) CellStyle(name string) *models.Style {
	return t.cells[name]
}

// ColumnStyle returns the table-column style with the given name.
func (t *StyleTable) ColumnStyle(name string) *models.ColumnStyle {
	return t.columns[name]
}

// RowStyle returns the table-row style with the given name.
func (t *StyleTable) RowStyle(name string) *models.RowStyle {
	return t.rows[name]
}

// TableStyle returns the table style with the given name.
func (t *StyleTable) TableStyle(name string) *models.TableStyle {
	return t.tables[name]
}

// Parse reads the style:style children of an office:styles or
// office:automatic-styles element.
func (t *StyleTable) Parse(scope *Cursor) {
	if scope == nil {
		return
	}
	for {
		el := scope.Next(tagStyle)
		if el == nil {
			return
		}
		name, hasName := el.Attr("style:name")
		family, hasFamily := el.Attr("style:family")
		if !hasName || !hasFamily {
			continue
		}

		switch family {
		case "table-cell":
			style := t.cellStyleRef(name)
			*style = models.Style{}
			t.readCellStyle(el, style)
		case "table-column":
			t.columns[name] = t.readColumnStyle(el)
		case "table-row":
			t.rows[name] = t.readRowStyle(el)
		case "table":
			t.tables[name] = t.readTableStyle(el)
		}
	}
}

// cellStyleRef returns the style registered under name, creating an empty
// placeholder when the name has not been seen yet. A placeholder created by
// a forward reference is the same value later filled in by its definition.
func (t *StyleTable) cellStyleRef(name string) *models.Style {
	style, ok := t.cells[name]
	if !ok {
		style = &models.Style{}
		t.cells[name] = style
	}
	return style
}

func (t *StyleTable) readCellStyle(el *Cursor, style *models.Style) {
	for {
		prop := el.Next(tagTextProperties, tagTableCellProperties, tagParagraphProperties, tagStyleMap)
		if prop == nil {
			return
		}

		switch prop.Tag() {
		case tagTextProperties:
			t.readTextProperties(prop, style)
		case tagTableCellProperties:
			if v, ok := prop.Attr("fo:background-color"); ok {
				style.BackgroundColor = t.color("fo:background-color", v)
			}
			if v, ok := prop.Attr("style:vertical-align"); ok {
				style.VerticalAlign = verticalAlignment(v)
			}
		case tagParagraphProperties:
			if v, ok := prop.Attr("fo:text-align"); ok {
				style.TextAlign = textAlignment(v)
			}
		case tagStyleMap:
			key, hasKey := prop.Attr("style:apply-style-name")
			condition, hasCondition := prop.Attr("style:condition")
			if hasKey && hasCondition {
				style.AddCondition(condition, t.cellStyleRef(key))
			}
		}
	}
}

func (t *StyleTable) readTextProperties(prop *Cursor, style *models.Style) {
	if v, ok := prop.Attr("fo:font-weight"); ok {
		style.Bold = v == "bold"
	}
	if v, ok := prop.Attr("fo:font-style"); ok {
		style.Italic = v == "italic"
	}
	if v, ok := prop.Attr("style:text-underline-style"); ok {
		style.Underline = v == "solid"
	}
	if v, ok := prop.Attr("fo:color"); ok {
		style.FontColor = t.color("fo:color", v)
	}
	if v, ok := prop.Attr("fo:font-size"); ok && strings.HasSuffix(v, "pt") {
		size, err := strconv.ParseFloat(strings.TrimSuffix(v, "pt"), 64)
		if err != nil {
			t.log.Warn("invalid font size", zap.String("value", v), zap.Error(err))
		} else {
			style.FontSize = int(math.Round(size))
		}
	}
}

// color parses a colour attribute. Empty and "transparent" values mean no
// colour; invalid values are logged and ignored.
func (t *StyleTable) color(attr, v string) *models.Color {
	if v == "" || v == "transparent" {
		return nil
	}
	c, err := models.ParseColor(v)
	if err != nil {
		t.log.Warn("invalid color", zap.String("attr", attr), zap.String("value", v), zap.Error(err))
		return nil
	}
	return &c
}

func verticalAlignment(v string) models.VerticalAlignment {
	switch strings.ToLower(v) {
	case "middle":
		return models.VerticalAlignMiddle
	case "top":
		return models.VerticalAlignTop
	case "bottom":
		return models.VerticalAlignBottom
	}
	return models.VerticalAlignNone
}

func textAlignment(v string) models.TextAlignment {
	switch v {
	case "center":
		return models.TextAlignCenter
	case "end":
		return models.TextAlignRight
	case "start":
		return models.TextAlignLeft
	}
	return models.TextAlignNone
}

func (t *StyleTable) length(attr, v string) *models.Length {
	l, err := models.ParseLength(v)
	if err != nil {
		t.log.Warn("invalid length", zap.String("attr", attr), zap.String("value", v), zap.Error(err))
		return nil
	}
	return &l
}

func (t *StyleTable) readColumnStyle(el *Cursor) *models.ColumnStyle {
	style := &models.ColumnStyle{}
	for prop := el.Next(tagTableColumnProperties); prop != nil; prop = el.Next(tagTableColumnProperties) {
		if v, ok := prop.Attr("style:column-width"); ok {
			style.Width = t.length("style:column-width", v)
		}
	}
	return style
}

func (t *StyleTable) readRowStyle(el *Cursor) *models.RowStyle {
	style := &models.RowStyle{}
	for prop := el.Next(tagTableRowProperties); prop != nil; prop = el.Next(tagTableRowProperties) {
		if v, ok := prop.Attr("style:row-height"); ok {
			style.Height = t.length("style:row-height", v)
		}
	}
	return style
}

// readTableStyle reads table:display; "false" marks the table hidden.
func (t *StyleTable) readTableStyle(el *Cursor) *models.TableStyle {
	style := &models.TableStyle{}
	for prop := el.Next(tagTableProperties); prop != nil; prop = el.Next(tagTableProperties) {
		if v, ok := prop.Attr("table:display"); ok {
			style.Hidden = v == "false"
		}
	}
	return style
}
