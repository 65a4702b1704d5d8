package models

// SheetData is the serialisable summary of a decoded sheet.
type SheetData struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// Hidden reports whether the sheet is hidden.
	Hidden bool `json:"hidden,omitempty"`
	// Protected reports whether the sheet is password protected.
	Protected bool `json:"protected,omitempty"`
	// Rows contains rows holding values or annotations.
	Rows []CellRow `json:"rows,omitempty"`
	// Merges contains merged regions in A1 notation.
	Merges []string `json:"merges,omitempty"`
	// TableCandidates contains cell ranges likely representing tables.
	TableCandidates []string `json:"table_candidates,omitempty"`
	// PrintAreas contains the sheet's print ranges.
	PrintAreas []PrintArea `json:"print_areas,omitempty"`
}

// WorkbookData is the serialisable summary of a decoded document.
type WorkbookData struct {
	// BookName is the document file name (no path).
	BookName string `json:"book_name"`
	// Sheets lists the sheets in document order.
	Sheets []SheetData `json:"sheets"`
}
