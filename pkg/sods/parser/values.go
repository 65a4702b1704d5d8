package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hrk/sods/pkg/sods/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

// Layouts accepted for xsd:date and xsd:dateTime literals, most specific
// first. Time zones are not used by ODF producers.
var dateLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// DecodeValue returns the typed value declared by the office:value-type
// attribute of a table cell, or nil when the cell declares none. String
// cells without office:string-value also yield nil; their text comes from
// the paragraphs of the cell.
func DecodeValue(cell *Cursor, log *zap.Logger) any {
	valueType, ok := cell.Attr("office:value-type")
	if !ok {
		return nil
	}
	if log == nil {
		log = zap.NewNop()
	}

	attr := valueAttr(valueType)
	raw, ok := cell.Attr(attr)
	if !ok {
		if valueType != "string" {
			log.Warn("missing cell value", zap.String("type", valueType), zap.String("attr", attr))
		}
		return nil
	}

	v, err := parseValue(valueType, raw, cell, log)
	if err != nil {
		log.Warn("invalid cell value", zap.String("type", valueType), zap.String("value", raw), zap.Error(err))
		return nil
	}
	return v
}

// valueAttr names the attribute carrying the literal of a value type.
func valueAttr(valueType string) string {
	switch valueType {
	case "date":
		return "office:date-value"
	case "time":
		return "office:time-value"
	case "boolean":
		return "office:boolean-value"
	case "string":
		return "office:string-value"
	}
	return "office:value"
}

func parseValue(valueType, raw string, cell *Cursor, log *zap.Logger) (any, error) {
	switch valueType {
	case "float":
		return strconv.ParseFloat(raw, 64)
	case "percentage":
		f, err := strconv.ParseFloat(raw, 64)
		return models.Percentage(f), err
	case "currency":
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, err
		}
		c := models.Currency{Amount: amount}
		if code, ok := cell.Attr("office:currency"); ok {
			if _, err := currency.ParseISO(code); err != nil {
				log.Warn("unknown currency code", zap.String("code", code), zap.Error(err))
			}
			c.Code = code
		}
		return c, nil
	case "date":
		return ParseDateTime(raw)
	case "time":
		return ParseDuration(raw)
	case "boolean":
		return strconv.ParseBool(raw)
	case "string":
		return raw, nil
	}
	return nil, fmt.Errorf("unknown value type %q", valueType)
}

// ParseDateTime parses an xsd:date or xsd:dateTime literal without zone.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// ParseDuration parses an xsd:duration literal such as "PT12H30M05.5S".
// Years and months are rejected because they have no fixed length.
func ParseDuration(s string) (time.Duration, error) {
	orig := s
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	if !strings.HasPrefix(s, "P") || len(s) < 3 {
		return 0, fmt.Errorf("invalid duration %q", orig)
	}
	s = s[1:]

	var d time.Duration
	inTime := false
	for len(s) > 0 {
		if s[0] == 'T' {
			inTime = true
			s = s[1:]
			continue
		}
		i := 0
		for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
			i++
		}
		if i == 0 || i == len(s) {
			return 0, fmt.Errorf("invalid duration %q", orig)
		}
		n, err := strconv.ParseFloat(s[:i], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", orig, err)
		}

		var unit time.Duration
		switch {
		case s[i] == 'D' && !inTime:
			unit = 24 * time.Hour
		case s[i] == 'H' && inTime:
			unit = time.Hour
		case s[i] == 'M' && inTime:
			unit = time.Minute
		case s[i] == 'S' && inTime:
			unit = time.Second
		default:
			return 0, fmt.Errorf("invalid duration %q: unsupported designator %q", orig, s[i])
		}
		d += time.Duration(n * float64(unit))
		s = s[i+1:]
	}

	if neg {
		d = -d
	}
	return d, nil
}
