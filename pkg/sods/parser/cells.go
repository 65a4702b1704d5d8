package parser

import (
	"math"
	"time"

	"github.com/hrk/sods/pkg/sods/models"
	"github.com/xuri/excelize/v2"
)

// ExtractCells flattens a decoded sheet into rows keyed by column name.
// Rows without values or annotations are omitted.
func ExtractCells(sheet *models.Sheet) []models.CellRow {
	var result []models.CellRow
	for rowIdx := 0; rowIdx < sheet.MaxRows(); rowIdx++ {
		row, ok := extractRow(sheet, rowIdx, 0, sheet.MaxColumns()-1)
		if ok {
			result = append(result, row)
		}
	}
	return result
}

// ExtractArea flattens the part of a sheet covered by a print area.
func ExtractArea(sheet *models.Sheet, area models.PrintArea) []models.CellRow {
	var result []models.CellRow
	for rowIdx := area.R1 - 1; rowIdx < area.R2 && rowIdx < sheet.MaxRows(); rowIdx++ {
		row, ok := extractRow(sheet, rowIdx, area.C1-1, area.C2-1)
		if ok {
			result = append(result, row)
		}
	}
	return result
}

func extractRow(sheet *models.Sheet, rowIdx, firstCol, lastCol int) (models.CellRow, bool) {
	cellMap := make(map[string]interface{})
	noteMap := make(map[string]string)
	hasData := false

	cells := sheet.RowCells(rowIdx)
	for colIdx := max(firstCol, 0); colIdx <= lastCol && colIdx < len(cells); colIdx++ {
		cell := cells[colIdx]
		if cell.Value == nil && cell.Annotation == nil {
			continue
		}
		hasData = true
		colName, err := excelize.ColumnNumberToName(colIdx + 1)
		if err != nil {
			continue
		}
		if cell.Value != nil {
			cellMap[colName] = rowValue(cell.Value)
		}
		if cell.Annotation != nil {
			noteMap[colName] = cell.Annotation.Msg
		}
	}

	if !hasData {
		return models.CellRow{}, false
	}
	row := models.CellRow{R: rowIdx + 1, C: cellMap}
	if len(noteMap) > 0 {
		row.Notes = noteMap
	}
	return row, true
}

// rowValue converts a cell value to its JSON form.
// Integral numbers become int64, dates and times become strings.
func rowValue(v any) interface{} {
	switch v := v.(type) {
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
			return int64(v)
		}
		return v
	case models.Percentage:
		return float64(v)
	case models.Currency:
		return v.String()
	case time.Time:
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 && v.Nanosecond() == 0 {
			return v.Format(time.DateOnly)
		}
		return v.Format("2006-01-02T15:04:05.999999999")
	case time.Duration:
		return v.String()
	}
	return v
}
