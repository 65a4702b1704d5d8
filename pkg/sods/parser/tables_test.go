package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hrk/sods/pkg/sods/models"
)

func TestDetectTables(t *testing.T) {
	tests := []struct {
		name     string
		values   map[[2]int]any
		params   TableDetectionParams
		expected []string
	}{
		{
			name:     "empty sheet",
			values:   nil,
			params:   DefaultTableParams(),
			expected: nil,
		},
		{
			name: "dense block",
			values: map[[2]int]any{
				{1, 1}: "id", {1, 2}: "name",
				{2, 1}: 1.0, {2, 2}: "a",
				{3, 1}: 2.0, {3, 2}: "b",
			},
			params:   DefaultTableParams(),
			expected: []string{"B2:C4"},
		},
		{
			name: "too few cells",
			values: map[[2]int]any{
				{0, 0}: "x", {5, 5}: "y",
			},
			params:   DefaultTableParams(),
			expected: nil,
		},
		{
			name: "too sparse",
			values: map[[2]int]any{
				{0, 0}: "x", {0, 9}: "y", {9, 0}: "z", {9, 9}: "w",
			},
			params:   TableDetectionParams{DensityMin: 0.5, MinNonemptyCells: 3},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := newTestSheet(t, 10, 10, tt.values)
			assert.Equal(t, tt.expected, DetectTables(sheet, tt.params))
		})
	}
}

func TestDetectTablesIgnoresStyledEmptyCells(t *testing.T) {
	sheet := newTestSheet(t, 5, 5, map[[2]int]any{
		{0, 0}: "a", {0, 1}: "b", {1, 0}: "c",
	})
	r, err := sheet.Range(4, 4, 1, 1)
	assert.NoError(t, err)
	r.SetStyle(&models.Style{Bold: true})

	assert.Equal(t, []string{"A1:B2"}, DetectTables(sheet, DefaultTableParams()))
}
