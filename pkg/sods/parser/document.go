package parser

import "github.com/hrk/sods/pkg/sods/models"

// Root elements of the XML parts that may carry styles or content. A flat
// ODS file has office:document as its single part.
var documentTags = []string{
	"office:document-content",
	"office:document-styles",
	"office:document",
}

// DecodeDocument reads the styles and body sections of one XML part, in
// document order, into styles and spread.
func DecodeDocument(root *Cursor, styles *StyleTable, spread *models.Spreadsheet, cfg Config) {
	doc := root.Next(documentTags...)
	if doc == nil {
		return
	}
	for {
		el := doc.Next("office:automatic-styles", "office:styles", "office:body")
		if el == nil {
			return
		}
		if el.Tag() == "office:body" {
			DecodeBody(el, styles, spread, cfg)
			continue
		}
		styles.Parse(el)
	}
}

// DecodeBody appends one sheet per table:table of the office:spreadsheet
// element found in an office:body element. Bodies without a spreadsheet add
// nothing.
func DecodeBody(body *Cursor, styles *StyleTable, spread *models.Spreadsheet, cfg Config) {
	if body == nil {
		return
	}
	spreadsheet := body.Next("office:spreadsheet")
	if spreadsheet == nil {
		return
	}
	for {
		table := spreadsheet.Next("table:table")
		if table == nil {
			return
		}
		name, _ := table.Attr("table:name")
		sheet := models.NewSheet(name)
		DecodeSheet(table, sheet, styles, cfg)
		spread.AppendSheet(sheet)
	}
}
