package models

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Percentage is a cell value declared with office:value-type="percentage".
// 0.5 means 50%.
type Percentage float64

func (p Percentage) String() string {
	return strconv.FormatFloat(float64(p)*100, 'f', -1, 64) + "%"
}

// Currency is a monetary cell value.
type Currency struct {
	Amount decimal.Decimal `json:"amount"`
	// Code is the ISO 4217 code from office:currency, possibly empty.
	Code string `json:"code,omitempty"`
}

func (c Currency) String() string {
	if c.Code == "" {
		return c.Amount.String()
	}
	return c.Amount.String() + " " + c.Code
}
