// Package models defines the in-memory spreadsheet produced by the ODS decoder.
package models

// Spreadsheet is an ordered collection of sheets.
type Spreadsheet struct {
	// Sheets holds the sheets in document order.
	Sheets []*Sheet `json:"sheets"`
}

// NewSpreadsheet returns an empty spreadsheet.
func NewSpreadsheet() *Spreadsheet {
	return &Spreadsheet{}
}

// AppendSheet adds a sheet after the existing ones.
func (s *Spreadsheet) AppendSheet(sheet *Sheet) {
	s.Sheets = append(s.Sheets, sheet)
}

// NumSheets returns the number of sheets.
func (s *Spreadsheet) NumSheets() int {
	return len(s.Sheets)
}

// Sheet returns the first sheet with the given name, or nil.
func (s *Spreadsheet) Sheet(name string) *Sheet {
	for _, sheet := range s.Sheets {
		if sheet.Name == name {
			return sheet
		}
	}
	return nil
}

// SheetAt returns the sheet at index i, or nil when i is out of range.
func (s *Spreadsheet) SheetAt(i int) *Sheet {
	if i < 0 || i >= len(s.Sheets) {
		return nil
	}
	return s.Sheets[i]
}

// TrimSheets removes trailing sheets that have neither rows nor columns.
func (s *Spreadsheet) TrimSheets() {
	n := len(s.Sheets)
	for n > 0 && s.Sheets[n-1].IsEmpty() {
		n--
	}
	for i := n; i < len(s.Sheets); i++ {
		s.Sheets[i] = nil
	}
	s.Sheets = s.Sheets[:n]
}
