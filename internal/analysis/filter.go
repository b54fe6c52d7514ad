// Package analysis filters the enriched catalog and reduces it to grouped
// aggregates. Every reduction fails on an empty view instead of reporting zeros.
package analysis

import (
	"fmt"
	"slices"
	"strings"

	"gamestats/domain/catalog"
	"gamestats/domain/core"
)

// Population is anything that yields enriched records: the cached table or a
// view already filtered from it.
type Population interface {
	Records() []catalog.EnrichedRecord
}

// Criteria selects records by genre and release year. An empty genre set
// matches everything; a zero year bound leaves that side open.
type Criteria struct {
	Genres  []string
	MinYear int
	MaxYear int
}

// NewCriteria trims and deduplicates the genre selection.
func NewCriteria(genres []string, minYear, maxYear int) Criteria {
	var clean []string
	for _, g := range genres {
		g = strings.TrimSpace(g)
		if g != "" && !slices.Contains(clean, g) {
			clean = append(clean, g)
		}
	}
	return Criteria{Genres: clean, MinYear: minYear, MaxYear: maxYear}
}

// Matches reports whether rec passes both predicates.
func (c Criteria) Matches(rec catalog.EnrichedRecord) bool {
	if c.MinYear != 0 && rec.ReleaseYear < c.MinYear {
		return false
	}
	if c.MaxYear != 0 && rec.ReleaseYear > c.MaxYear {
		return false
	}
	if len(c.Genres) == 0 {
		return true
	}
	for _, g := range rec.GenreList() {
		if slices.Contains(c.Genres, g) {
			return true
		}
	}
	return false
}

func (c Criteria) String() string {
	genres := "all genres"
	if len(c.Genres) > 0 {
		genres = strings.Join(c.Genres, ", ")
	}
	return fmt.Sprintf("%s, years %s-%s", genres, yearBound(c.MinYear), yearBound(c.MaxYear))
}

func yearBound(y int) string {
	if y == 0 {
		return "*"
	}
	return fmt.Sprint(y)
}

// FilteredView is the read-only result of Filter. It is itself a Population,
// so views can be filtered again.
type FilteredView struct {
	criteria Criteria
	records  []catalog.EnrichedRecord
}

// Filter keeps the records of pop that match criteria, in their original order.
func Filter(pop Population, criteria Criteria) *FilteredView {
	all := pop.Records()
	kept := make([]catalog.EnrichedRecord, 0, len(all))
	for _, rec := range all {
		if criteria.Matches(rec) {
			kept = append(kept, rec)
		}
	}
	return &FilteredView{criteria: criteria, records: kept}
}

// Records returns a copy of the matching records.
func (v *FilteredView) Records() []catalog.EnrichedRecord {
	return slices.Clone(v.records)
}

func (v *FilteredView) Len() int { return len(v.records) }

// IsEmpty must be checked before requesting aggregates or statistics.
func (v *FilteredView) IsEmpty() bool { return len(v.records) == 0 }

func (v *FilteredView) Criteria() Criteria { return v.criteria }

// Values returns the non-missing values of col, in record order.
func Values(pop Population, col catalog.Column) ([]float64, error) {
	if !col.Numeric() {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownColumn, col)
	}
	var out []float64
	for _, rec := range pop.Records() {
		if v, ok := rec.Value(col); ok {
			out = append(out, v)
		}
	}
	return out, nil
}

// DistinctGenres lists every genre token in pop, sorted.
func DistinctGenres(pop Population) []string {
	seen := map[string]struct{}{}
	for _, rec := range pop.Records() {
		for _, g := range rec.GenreList() {
			seen[g] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for g := range seen {
		out = append(out, g)
	}
	slices.Sort(out)
	return out
}

// YearBounds returns the earliest and latest release year in pop.
func YearBounds(pop Population) (minYear, maxYear int, err error) {
	recs := pop.Records()
	if len(recs) == 0 {
		return 0, 0, core.NewEmptyPopulationError("year bounds")
	}
	minYear, maxYear = recs[0].ReleaseYear, recs[0].ReleaseYear
	for _, rec := range recs[1:] {
		minYear = min(minYear, rec.ReleaseYear)
		maxYear = max(maxYear, rec.ReleaseYear)
	}
	return minYear, maxYear, nil
}
