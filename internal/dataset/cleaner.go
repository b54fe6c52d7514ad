package dataset

import (
	"strings"

	"gamestats/domain/catalog"
	"gamestats/domain/core"

	"github.com/montanaflynn/stats"
)

const rowKeySeparator = "\x1f"

// Clean deduplicates rows, fills missing values of the required columns and
// clips price outliers. The input is never mutated. Either the whole table is
// cleaned or an error is returned; every row must have one cell per header.
//
// The price ceiling is computed once and stored in PriceCeiling. Re-cleaning
// a cleaned table reuses it, so rows re-cleaned without that ceiling can clip
// differently.
func Clean(raw *catalog.RawTable) (*catalog.CleanedTable, []catalog.Event, error) {
	if missing := raw.Missing(catalog.RequiredColumns...); len(missing) > 0 {
		return nil, nil, core.NewMissingColumnError("clean", missing...)
	}
	for i, row := range raw.Rows {
		if len(row) != len(raw.Columns) {
			return nil, nil, core.NewRaggedRowError("clean", i, len(row), len(raw.Columns))
		}
	}

	var events []catalog.Event
	table := raw.Clone()

	removed := dropDuplicates(table)
	if removed > 0 {
		events = append(events, catalog.NewEvent(catalog.StageClean, "duplicate rows removed", "count", removed))
	} else {
		events = append(events, catalog.NewEvent(catalog.StageClean, "no duplicate rows found"))
	}

	imputed, imputeEvents := imputeRequired(table)
	events = append(events, imputeEvents...)

	clipped, clipEvent := clipPrices(table)
	events = append(events, clipEvent)

	// imputation and clipping can make rows identical
	if extra := dropDuplicates(table); extra > 0 {
		removed += extra
		events = append(events, catalog.NewEvent(catalog.StageClean, "rows identical after imputation removed", "count", extra))
	}

	events = append(events, catalog.NewEvent(catalog.StageClean, "cleaning complete", "rows", table.Len()))

	return &catalog.CleanedTable{
		RawTable:          *table,
		DuplicatesRemoved: removed,
		ImputedColumns:    imputed,
		ClippedPrices:     clipped,
	}, events, nil
}

// dropDuplicates keeps the first occurrence of every distinct row.
func dropDuplicates(t *catalog.RawTable) int {
	seen := make(map[string]struct{}, len(t.Rows))
	kept := t.Rows[:0]
	for _, row := range t.Rows {
		key := strings.Join(row, rowKeySeparator)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, row)
	}
	removed := len(t.Rows) - len(kept)
	t.Rows = kept
	return removed
}

type columnFill struct {
	col     catalog.Column
	idx     int
	value   string
	missing []int
}

// imputeRequired computes every fill value before writing any of them, so a
// column median never sees another column's substitutions.
func imputeRequired(t *catalog.RawTable) ([]string, []catalog.Event) {
	var fills []columnFill
	var events []catalog.Event

	for _, col := range catalog.RequiredColumns {
		idx := t.Index(col)
		fill := columnFill{col: col, idx: idx}
		var present []float64

		for i, row := range t.Rows {
			cell := row[idx]
			if col.Numeric() {
				if v, ok := parseNumber(cell); ok {
					present = append(present, v)
					continue
				}
				fill.missing = append(fill.missing, i)
			} else if strings.TrimSpace(cell) == "" {
				fill.missing = append(fill.missing, i)
			}
		}
		if len(fill.missing) == 0 {
			continue
		}

		if !col.Numeric() {
			fill.value = catalog.UnknownLabel
		} else if median, err := stats.Median(present); err == nil {
			fill.value = formatNumber(median)
		} else {
			fill.value = "0"
			events = append(events, catalog.NewEvent(catalog.StageClean, "column has no values, imputing zero", "column", string(col)))
		}
		fills = append(fills, fill)
	}

	imputed := make([]string, 0, len(fills))
	for _, fill := range fills {
		for _, i := range fill.missing {
			t.Rows[i][fill.idx] = fill.value
		}
		imputed = append(imputed, string(fill.col))
		events = append(events, catalog.NewEvent(catalog.StageClean, "missing values imputed",
			"column", string(fill.col), "count", len(fill.missing), "value", fill.value))
	}
	if len(fills) == 0 {
		events = append(events, catalog.NewEvent(catalog.StageClean, "no missing values in required columns"))
	}
	return imputed, events
}

// clipPrices caps prices at the IQR ceiling. A ceiling already carried by the
// table is reused rather than recomputed.
func clipPrices(t *catalog.RawTable) (int, catalog.Event) {
	idx := t.Index(catalog.ColPrice)
	if len(t.Rows) == 0 {
		return 0, catalog.NewEvent(catalog.StageClean, "no rows, price clipping skipped")
	}

	prices := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		prices[i], _ = parseNumber(row[idx])
	}

	attrs := []any{}
	if t.PriceCeiling == nil {
		ceiling, q1, q3 := IQRCeiling(prices)
		t.PriceCeiling = &ceiling
		attrs = append(attrs, "q1", q1, "q3", q3)
	}
	ceiling := *t.PriceCeiling

	clipped := 0
	for i, p := range prices {
		if p > ceiling {
			t.Rows[i][idx] = formatNumber(ceiling)
			clipped++
		}
	}

	attrs = append(attrs, "count", clipped, "ceiling", ceiling)
	return clipped, catalog.NewEvent(catalog.StageClean, "price outliers clipped", attrs...)
}
