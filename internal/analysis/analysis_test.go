package analysis

import (
	"errors"
	"math"
	"testing"

	"gamestats/domain/catalog"
	"gamestats/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func game(name, genres string, year int, price, positive float64) catalog.EnrichedRecord {
	return catalog.EnrichedRecord{
		Name:            name,
		Genres:          genres,
		ReleaseYear:     year,
		Price:           price,
		Positive:        positive,
		Negative:        positive / 4,
		Achievements:    math.NaN(),
		Recommendations: math.NaN(),
		AvgPlaytime:     math.NaN(),
		EstimatedOwners: "0 - 20K",
		TotalReviews:    positive + positive/4,
	}
}

func sampleTable() *catalog.EnrichedTable {
	return catalog.NewEnrichedTable([]catalog.EnrichedRecord{
		game("a", "Action, Indie", 2010, 0, 100),
		game("b", "RPG", 2012, 4.99, 200),
		game("c", "Action", 2015, 9.99, 300),
		game("d", "Strategy,RPG", 2015, 19.99, 400),
		game("e", "Indie", 2020, 59.99, 500),
	})
}

func names(pop Population) []string {
	var out []string
	for _, r := range pop.Records() {
		out = append(out, r.Name)
	}
	return out
}

func TestFilter_GenreMembership(t *testing.T) {
	view := Filter(sampleTable(), NewCriteria([]string{" Indie ", "Strategy"}, 0, 0))
	assert.Equal(t, []string{"a", "d", "e"}, names(view))
}

func TestFilter_TokenNotSubstring(t *testing.T) {
	table := catalog.NewEnrichedTable([]catalog.EnrichedRecord{game("a", "Action RPG", 2010, 1, 1)})
	assert.True(t, Filter(table, NewCriteria([]string{"RPG"}, 0, 0)).IsEmpty())
}

func TestFilter_EmptyGenresMatchAll(t *testing.T) {
	view := Filter(sampleTable(), NewCriteria(nil, 0, 0))
	assert.Equal(t, 5, view.Len())
}

func TestFilter_InclusiveYearRange(t *testing.T) {
	view := Filter(sampleTable(), NewCriteria(nil, 2012, 2015))
	assert.Equal(t, []string{"b", "c", "d"}, names(view))
}

func TestFilter_Idempotent(t *testing.T) {
	criteria := NewCriteria([]string{"RPG", "Action"}, 2011, 0)
	once := Filter(sampleTable(), criteria)
	twice := Filter(once, criteria)
	assert.Equal(t, once.Records(), twice.Records())
}

func TestFilter_DoesNotAlterSource(t *testing.T) {
	table := sampleTable()
	view := Filter(table, NewCriteria([]string{"RPG"}, 0, 0))
	recs := view.Records()
	recs[0].Name = "changed"
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, names(table))
	assert.Equal(t, "b", view.Records()[0].Name)
}

func TestAggregates_EmptyView(t *testing.T) {
	empty := Filter(sampleTable(), NewCriteria([]string{"Racing"}, 0, 0))
	require.True(t, empty.IsEmpty())

	_, err := GroupBy(empty, ByGenre, catalog.ColPositive, Mean)
	assert.True(t, errors.Is(err, core.ErrEmptyPopulation))
	_, err = PriceBucketMean(empty, catalog.ColPositive)
	assert.True(t, errors.Is(err, core.ErrEmptyPopulation))
	_, err = TopNByMean(empty, ByGenre, catalog.ColPositive, 3)
	assert.True(t, errors.Is(err, core.ErrEmptyPopulation))
	_, err = Summarize(empty)
	assert.True(t, errors.Is(err, core.ErrEmptyPopulation))
	_, err = YearlyTrend(empty, catalog.ColPositive, 3)
	assert.True(t, errors.Is(err, core.ErrEmptyPopulation))
}

func TestGroupBy_GenreExploded(t *testing.T) {
	res, err := GroupBy(sampleTable(), ByGenre, catalog.ColPositive, Mean)
	require.NoError(t, err)

	var keys []string
	for _, g := range res.Groups {
		keys = append(keys, g.Key)
	}
	assert.Equal(t, []string{"Action", "Indie", "RPG", "Strategy"}, keys)

	action, ok := res.Lookup("Action")
	require.True(t, ok)
	assert.Equal(t, 2, action.Count)
	assert.InDelta(t, 200.0, action.Value, 1e-9)

	rpg, _ := res.Lookup("RPG")
	assert.InDelta(t, 300.0, rpg.Value, 1e-9)
}

func TestGroupBy_SumAndCount(t *testing.T) {
	sum, err := GroupBy(sampleTable(), ByReleaseYear, catalog.ColPositive, Sum)
	require.NoError(t, err)
	g, _ := sum.Lookup("2015")
	assert.Equal(t, 700.0, g.Value)
	assert.Equal(t, "2010", sum.Groups[0].Key)
	assert.Equal(t, "2020", sum.Groups[len(sum.Groups)-1].Key)

	count, err := GroupBy(sampleTable(), ByReleaseYear, "", Count)
	require.NoError(t, err)
	g, _ = count.Lookup("2015")
	assert.Equal(t, 2.0, g.Value)
}

func TestGroupBy_SkipsMissingMetric(t *testing.T) {
	recs := sampleTable().Records()
	recs[0].Achievements = 10

	res, err := GroupBy(catalog.NewEnrichedTable(recs), ByGenre, catalog.ColAchievements, Mean)
	require.NoError(t, err)
	require.Len(t, res.Groups, 2)
	for _, g := range res.Groups {
		assert.Equal(t, 1, g.Count)
		assert.Equal(t, 10.0, g.Value)
	}
}

func TestGroupBy_UnknownMetric(t *testing.T) {
	_, err := GroupBy(sampleTable(), ByGenre, catalog.ColReviews, Mean)
	assert.True(t, errors.Is(err, core.ErrUnknownColumn))
}

func TestGroupBy_OwnerRangeOrder(t *testing.T) {
	recs := sampleTable().Records()
	recs[0].EstimatedOwners = "1M - 2M"
	recs[1].EstimatedOwners = "Unknown"
	recs[2].EstimatedOwners = "20K - 50K"

	res, err := GroupBy(catalog.NewEnrichedTable(recs), ByOwnerRange, "", Count)
	require.NoError(t, err)

	var keys []string
	for _, g := range res.Groups {
		keys = append(keys, g.Key)
	}
	assert.Equal(t, []string{"0 - 20K", "20K - 50K", "1M - 2M", "Unknown"}, keys)
}

func TestPriceBucketMean(t *testing.T) {
	res, err := PriceBucketMean(sampleTable(), catalog.ColPositive)
	require.NoError(t, err)
	require.Len(t, res.Groups, len(PriceBuckets))

	want := map[string]float64{"Free": 100, "0.01-5": 200, "5.01-10": 300, "15.01-20": 400, "Over 20": 500}
	for i, g := range res.Groups {
		assert.Equal(t, PriceBuckets[i].Label, g.Key)
		if v, ok := want[g.Key]; ok {
			assert.InDelta(t, v, g.Value, 1e-9, g.Key)
			continue
		}
		assert.Zero(t, g.Count, g.Key)
		assert.True(t, math.IsNaN(g.Value), g.Key)
	}
}

func TestBucketFor(t *testing.T) {
	assert.Equal(t, "Free", BucketFor(0))
	assert.Equal(t, "0.01-5", BucketFor(0.01))
	assert.Equal(t, "5.01-10", BucketFor(5))
	assert.Equal(t, "Over 20", BucketFor(20))
	assert.Equal(t, "", BucketFor(-1))
}

func TestTopNByMean(t *testing.T) {
	res, err := TopNByMean(sampleTable(), ByGenre, catalog.ColPositive, 2)
	require.NoError(t, err)
	require.Len(t, res.Groups, 2)
	assert.Equal(t, "Strategy", res.Groups[0].Key)
	// Indie and RPG tie at 300; ties keep key order
	assert.Equal(t, "Indie", res.Groups[1].Key)
}

func TestSummarize(t *testing.T) {
	s, err := Summarize(sampleTable())
	require.NoError(t, err)
	assert.Equal(t, 5, s.Games)
	assert.InDelta(t, 1875.0, s.TotalReviews, 1e-9)
	assert.Equal(t, 1, s.FreeGames)
}

func TestYearlyTrend_MovingAverage(t *testing.T) {
	points, err := YearlyTrend(sampleTable(), catalog.ColPositive, 3)
	require.NoError(t, err)
	require.Len(t, points, 4)

	// years 2010, 2012, 2015, 2020 with means 100, 200, 350, 500
	assert.Equal(t, 2010, points[0].Year)
	assert.InDelta(t, 100.0, points[0].MovingAverage, 1e-9)
	assert.InDelta(t, 150.0, points[1].MovingAverage, 1e-9)
	assert.InDelta(t, 650.0/3, points[2].MovingAverage, 1e-9)
	assert.InDelta(t, 350.0, points[3].MovingAverage, 1e-9)
}

func TestYearlyTrend_InvalidWindow(t *testing.T) {
	_, err := YearlyTrend(sampleTable(), catalog.ColPositive, 4)
	assert.True(t, errors.Is(err, core.ErrInvalidWindow))
}

func TestDistinctGenresAndYearBounds(t *testing.T) {
	assert.Equal(t, []string{"Action", "Indie", "RPG", "Strategy"}, DistinctGenres(sampleTable()))

	lo, hi, err := YearBounds(sampleTable())
	require.NoError(t, err)
	assert.Equal(t, 2010, lo)
	assert.Equal(t, 2020, hi)
}

func TestDistribution_PriceBuckets(t *testing.T) {
	recs := []catalog.EnrichedRecord{
		game("a", "Action", 2010, 1, 1),
		game("b", "Action", 2010, 2, 2),
		game("c", "Action", 2010, 3, 3),
		game("d", "Action", 2010, 4, 4),
		game("e", "Action", 2010, 4.5, 100),
		game("f", "Action", 2010, 25, 7),
	}
	boxes, err := Distribution(catalog.NewEnrichedTable(recs), ByPriceBucket, catalog.ColPositive)
	require.NoError(t, err)
	require.Len(t, boxes, 2)

	low := boxes[0]
	assert.Equal(t, "0.01-5", low.Key)
	assert.Equal(t, 5, low.N)
	assert.Equal(t, 3.0, low.Median)
	assert.Equal(t, 2.0, low.Q1)
	assert.Equal(t, 4.0, low.Q3)
	assert.Equal(t, 1, low.Outliers)
	assert.Equal(t, 4.0, low.UpperWhisker)
	assert.Equal(t, 100.0, low.Max)
	assert.Greater(t, low.Skewness, 0.0)

	high := boxes[1]
	assert.Equal(t, "Over 20", high.Key)
	assert.Equal(t, 1, high.N)
	assert.True(t, math.IsNaN(high.StdDev))
}
