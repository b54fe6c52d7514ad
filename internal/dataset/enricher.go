package dataset

import (
	"math"
	"strings"
	"time"

	"gamestats/domain/catalog"
	"gamestats/domain/core"
)

// Enrich parses release dates and derives the year, review totals, positive
// percentage and compact owner labels. Rows whose release date does not match
// catalog.ReleaseDateLayout are dropped.
func Enrich(cleaned *catalog.CleanedTable) (*catalog.EnrichedTable, []catalog.Event, error) {
	t := &cleaned.RawTable
	need := append(append([]catalog.Column{}, catalog.RequiredColumns...), catalog.EnrichmentColumns...)
	if missing := t.Missing(need...); len(missing) > 0 {
		return nil, nil, core.NewMissingColumnError("enrich", missing...)
	}

	col := columnIndexes(t)
	records := make([]catalog.EnrichedRecord, 0, t.Len())
	dropped := 0

	for _, row := range t.Rows {
		released, err := time.Parse(catalog.ReleaseDateLayout, strings.TrimSpace(cell(row, col[catalog.ColReleaseDate])))
		if err != nil {
			dropped++
			continue
		}

		rec := catalog.EnrichedRecord{
			Name:            cell(row, col[catalog.ColName]),
			Price:           number(row, col[catalog.ColPrice]),
			Genres:          cell(row, col[catalog.ColGenres]),
			Positive:        number(row, col[catalog.ColPositive]),
			Negative:        number(row, col[catalog.ColNegative]),
			MetacriticScore: number(row, col[catalog.ColMetacriticScore]),
			Reviews:         cell(row, col[catalog.ColReviews]),
			EstimatedOwners: CompactOwnerRange(cell(row, col[catalog.ColEstimatedOwners])),
			Achievements:    number(row, col[catalog.ColAchievements]),
			Recommendations: number(row, col[catalog.ColRecommendations]),
			AvgPlaytime:     number(row, col[catalog.ColAvgPlaytime]),
			ReleaseDate:     released,
			ReleaseYear:     released.Year(),
		}
		rec.TotalReviews, rec.PositivePercentage = reviewShare(rec.Positive, rec.Negative)
		records = append(records, rec)
	}

	events := []catalog.Event{
		catalog.NewEvent(catalog.StageEnrich, "release dates parsed",
			"layout", catalog.ReleaseDateLayout, "dropped", dropped, "kept", len(records)),
		catalog.NewEvent(catalog.StageEnrich, "derived columns added",
			"columns", []string{string(catalog.ColReleaseYear), string(catalog.ColTotalReviews), string(catalog.ColPositivePercentage)}),
		catalog.NewEvent(catalog.StageEnrich, "owner ranges compacted", "column", string(catalog.ColEstimatedOwners)),
	}
	return catalog.NewEnrichedTable(records), events, nil
}

// reviewShare returns positive+negative and the positive share in percent.
// A missing negative count is treated as zero, so such a game gets a finite
// total and a share of 100 rather than an undefined total and a share of 0.
// The share is 0 without reviews.
func reviewShare(positive, negative float64) (total, pct float64) {
	if math.IsNaN(positive) {
		positive = 0
	}
	if math.IsNaN(negative) {
		negative = 0
	}
	total = positive + negative
	if total <= 0 {
		return total, 0
	}
	pct = positive / total * 100
	return total, math.Max(0, math.Min(100, pct))
}

func columnIndexes(t *catalog.RawTable) map[catalog.Column]int {
	cols := []catalog.Column{
		catalog.ColName, catalog.ColPrice, catalog.ColGenres, catalog.ColPositive,
		catalog.ColNegative, catalog.ColMetacriticScore, catalog.ColReviews,
		catalog.ColEstimatedOwners, catalog.ColReleaseDate, catalog.ColAchievements,
		catalog.ColRecommendations, catalog.ColAvgPlaytime,
	}
	idx := make(map[catalog.Column]int, len(cols))
	for _, c := range cols {
		idx[c] = t.Index(c)
	}
	return idx
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func number(row []string, idx int) float64 {
	if v, ok := parseNumber(cell(row, idx)); ok {
		return v
	}
	return math.NaN()
}
