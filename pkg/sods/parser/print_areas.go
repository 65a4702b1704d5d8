package parser

import (
	"strings"

	"github.com/hrk/sods/pkg/sods/models"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ParsePrintRanges parses a table:print-ranges value.
// Format: space separated ranges such as Sheet1.A1:Sheet1.D10,
// 'My sheet'.$A$1:.$B$2 or a single cell Sheet1.C3.
func ParsePrintRanges(ref string, log *zap.Logger) []models.PrintArea {
	if log == nil {
		log = zap.NewNop()
	}

	var areas []models.PrintArea
	for _, part := range splitOutsideQuotes(ref, ' ') {
		if part == "" {
			continue
		}
		area, ok := parseRangeToArea(part)
		if !ok {
			log.Warn("invalid print range", zap.String("value", part))
			continue
		}
		areas = append(areas, area)
	}
	return areas
}

// parseRangeToArea parses one range address into a PrintArea.
func parseRangeToArea(rangeStr string) (models.PrintArea, bool) {
	ends := splitOutsideQuotes(rangeStr, ':')
	if len(ends) == 1 {
		ends = append(ends, ends[0])
	}
	if len(ends) != 2 {
		return models.PrintArea{}, false
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(cellPart(ends[0]))
	if err != nil {
		return models.PrintArea{}, false
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(cellPart(ends[1]))
	if err != nil {
		return models.PrintArea{}, false
	}

	return models.PrintArea{
		R1: startRow,
		C1: startCol,
		R2: endRow,
		C2: endCol,
	}, true
}

// cellPart strips the table name and absolute markers from a cell address
// such as $'Sheet 1'.$B$4.
func cellPart(addr string) string {
	parts := splitOutsideQuotes(addr, '.')
	return strings.ReplaceAll(parts[len(parts)-1], "$", "")
}

// splitOutsideQuotes splits s at sep, ignoring separators inside single
// quoted table names. Doubled quotes inside a name stay part of it.
func splitOutsideQuotes(s string, sep byte) []string {
	var parts []string
	quoted := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\'':
			quoted = !quoted
		case sep:
			if !quoted {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
