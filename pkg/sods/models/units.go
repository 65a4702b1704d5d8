package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Millimetres per unit for the ODF length units (XSL-FO "length" type).
// 1 inch = 25.4 mm, 1 inch = 72 pt = 6 pc, and 1 inch = 96 px at 96 DPI.
var unitToMM = map[string]float64{
	"mm": 1,
	"cm": 10,
	"in": 25.4,
	"pt": 25.4 / 72,
	"pc": 25.4 / 6,
	"px": 25.4 / 96,
}

// Length is an ODF length such as a column width ("2.258cm").
type Length struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// ParseLength parses a number immediately followed by a unit.
func ParseLength(s string) (Length, error) {
	s = strings.TrimSpace(s)
	i := len(s)
	for i > 0 && (s[i-1] >= 'a' && s[i-1] <= 'z') {
		i--
	}
	unit := s[i:]
	if _, ok := unitToMM[unit]; !ok {
		return Length{}, fmt.Errorf("invalid length %q: unknown unit %q", s, unit)
	}
	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return Length{}, fmt.Errorf("invalid length %q: %w", s, err)
	}
	return Length{Value: v, Unit: unit}, nil
}

// Millimetres converts the length to millimetres.
func (l Length) Millimetres() float64 {
	return l.Value * unitToMM[l.Unit]
}

// Points converts the length to typographic points.
func (l Length) Points() float64 {
	return l.Millimetres() * 72 / 25.4
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + l.Unit
}
