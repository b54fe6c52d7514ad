package catalog

import (
	"math"
	"slices"
	"strings"
	"time"
)

// EnrichedRecord is one cleaned game with derived fields. Optional numeric
// fields hold NaN when the source cell was missing.
type EnrichedRecord struct {
	Name            string
	Price           float64
	Genres          string
	Positive        float64
	Negative        float64
	MetacriticScore float64
	Reviews         string
	EstimatedOwners string
	Achievements    float64
	Recommendations float64
	AvgPlaytime     float64

	ReleaseDate        time.Time
	ReleaseYear        int
	TotalReviews       float64
	PositivePercentage float64
}

// Value reads a numeric column. ok is false for unknown columns and missing values.
func (r EnrichedRecord) Value(col Column) (v float64, ok bool) {
	switch col {
	case ColPrice:
		v = r.Price
	case ColPositive:
		v = r.Positive
	case ColNegative:
		v = r.Negative
	case ColMetacriticScore:
		v = r.MetacriticScore
	case ColAchievements:
		v = r.Achievements
	case ColRecommendations:
		v = r.Recommendations
	case ColAvgPlaytime:
		v = r.AvgPlaytime
	case ColReleaseYear:
		v = float64(r.ReleaseYear)
	case ColTotalReviews:
		v = r.TotalReviews
	case ColPositivePercentage:
		v = r.PositivePercentage
	default:
		return math.NaN(), false
	}
	if math.IsNaN(v) {
		return v, false
	}
	return v, true
}

// GenreList splits the comma-delimited genre field into trimmed, non-empty tokens.
func (r EnrichedRecord) GenreList() []string {
	return SplitGenres(r.Genres)
}

// SplitGenres splits a comma-delimited genre string into trimmed, non-empty tokens.
func SplitGenres(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// EnrichedTable is the immutable output of the feature engine.
type EnrichedTable struct {
	records []EnrichedRecord
}

// NewEnrichedTable takes ownership of records.
func NewEnrichedTable(records []EnrichedRecord) *EnrichedTable {
	return &EnrichedTable{records: records}
}

// Records returns a copy so callers cannot alter the cached table.
func (t *EnrichedTable) Records() []EnrichedRecord {
	return slices.Clone(t.records)
}

// Len returns the number of records.
func (t *EnrichedTable) Len() int {
	return len(t.records)
}

// Head returns up to n leading records for a same-shape preview.
func (t *EnrichedTable) Head(n int) []EnrichedRecord {
	if n > len(t.records) {
		n = len(t.records)
	}
	return slices.Clone(t.records[:n])
}
