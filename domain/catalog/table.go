package catalog

import (
	"slices"
)

// RawTable is the source table as ingested: a header and string rows.
// An empty cell is a missing value.
type RawTable struct {
	Columns []string
	Rows    [][]string

	// PriceCeiling is the IQR clip bound. The cleaner sets it once; a table
	// straight from the loader leaves it nil.
	PriceCeiling *float64
}

// Index returns the position of a column in the header, or -1.
func (t *RawTable) Index(col Column) int {
	return slices.Index(t.Columns, string(col))
}

// Missing returns the columns from want that the header does not contain.
func (t *RawTable) Missing(want ...Column) []string {
	var missing []string
	for _, c := range want {
		if t.Index(c) < 0 {
			missing = append(missing, string(c))
		}
	}
	return missing
}

// Len returns the number of data rows.
func (t *RawTable) Len() int {
	return len(t.Rows)
}

// Clone returns a deep copy; cleaning never mutates its input.
func (t *RawTable) Clone() *RawTable {
	out := &RawTable{
		Columns: slices.Clone(t.Columns),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = slices.Clone(row)
	}
	if t.PriceCeiling != nil {
		c := *t.PriceCeiling
		out.PriceCeiling = &c
	}
	return out
}

// CleanedTable is a RawTable after deduplication, imputation and price clipping.
type CleanedTable struct {
	RawTable

	DuplicatesRemoved int
	ImputedColumns    []string
	ClippedPrices     int
}

// Ceiling returns the price clip bound the table was cleaned with.
func (t *CleanedTable) Ceiling() float64 {
	if t.PriceCeiling == nil {
		return 0
	}
	return *t.PriceCeiling
}
