// Package output serialises decoded spreadsheets.
package output

import (
	"github.com/goccy/go-json"

	"github.com/hrk/sods/pkg/sods/models"
	"github.com/hrk/sods/pkg/sods/parser"
)

// Build summarises a decoded spreadsheet for serialisation.
func Build(bookName string, spread *models.Spreadsheet) *models.WorkbookData {
	wb := &models.WorkbookData{
		BookName: bookName,
		Sheets:   make([]models.SheetData, 0, spread.NumSheets()),
	}
	for _, sheet := range spread.Sheets {
		wb.Sheets = append(wb.Sheets, BuildSheet(sheet))
	}
	return wb
}

// BuildSheet summarises one sheet.
func BuildSheet(sheet *models.Sheet) models.SheetData {
	data := models.SheetData{
		Name:            sheet.Name,
		Hidden:          sheet.Hidden,
		Protected:       sheet.Protection != nil,
		Rows:            parser.ExtractCells(sheet),
		TableCandidates: parser.DetectTables(sheet, parser.DefaultTableParams()),
		PrintAreas:      sheet.PrintAreas,
	}
	for _, m := range sheet.MergedRegions() {
		data.Merges = append(data.Merges, m.Address())
	}
	return data
}

// BuildPrintAreaView restricts a sheet to one of its print areas.
func BuildPrintAreaView(bookName string, sheet *models.Sheet, area models.PrintArea) models.PrintAreaView {
	view := models.PrintAreaView{
		BookName:  bookName,
		SheetName: sheet.Name,
		Area:      area,
		Rows:      parser.ExtractArea(sheet, area),
	}
	for _, m := range sheet.MergedRegions() {
		if mergeOverlapsArea(m, area) {
			view.Merges = append(view.Merges, m.Address())
		}
	}
	return view
}

func mergeOverlapsArea(m models.CellRange, area models.PrintArea) bool {
	r1, c1 := m.Row+1, m.Column+1
	r2, c2 := m.Row+m.Rows, m.Column+m.Columns
	return r1 <= area.R2 && r2 >= area.R1 && c1 <= area.C2 && c2 >= area.C1
}

// ToJSON serialises a workbook summary.
func ToJSON(wb *models.WorkbookData, pretty bool) ([]byte, error) {
	return marshal(wb, pretty)
}

// SheetToJSON serialises one sheet summary.
func SheetToJSON(sheet *models.SheetData, pretty bool) ([]byte, error) {
	return marshal(sheet, pretty)
}

// PrintAreaViewToJSON serialises a print area view.
func PrintAreaViewToJSON(view *models.PrintAreaView, pretty bool) ([]byte, error) {
	return marshal(view, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
