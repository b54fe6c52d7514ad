package analysis

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"gamestats/domain/catalog"
	"gamestats/domain/core"
	"gamestats/internal/dataset"
)

// Dimension is the key records are grouped by.
type Dimension string

const (
	ByGenre       Dimension = "genre"
	ByPriceBucket Dimension = "price_bucket"
	ByReleaseYear Dimension = "release_year"
	ByOwnerRange  Dimension = "owner_range"
)

// Reduction folds the metric values of one group.
type Reduction string

const (
	Mean  Reduction = "mean"
	Sum   Reduction = "sum"
	Count Reduction = "count"
)

// PriceBuckets are the fixed right-open price intervals, in display order.
var PriceBuckets = []PriceBucket{
	{Label: "Free", Lower: 0, Upper: 0.01},
	{Label: "0.01-5", Lower: 0.01, Upper: 5},
	{Label: "5.01-10", Lower: 5, Upper: 10},
	{Label: "10.01-15", Lower: 10, Upper: 15},
	{Label: "15.01-20", Lower: 15, Upper: 20},
	{Label: "Over 20", Lower: 20, Upper: math.Inf(1)},
}

// PriceBucket is the interval [Lower, Upper).
type PriceBucket struct {
	Label string
	Lower float64
	Upper float64
}

// BucketFor returns the label of the bucket containing price. Negative
// prices fall outside every bucket and return "".
func BucketFor(price float64) string {
	for _, b := range PriceBuckets {
		if price >= b.Lower && price < b.Upper {
			return b.Label
		}
	}
	return ""
}

// Group is one key of an aggregate. Count is the number of values reduced;
// Value is NaN for a mean over no values.
type Group struct {
	Key   string
	Count int
	Value float64
}

// AggregateResult is an ordered set of groups.
type AggregateResult struct {
	Dimension Dimension
	Metric    catalog.Column
	Reduction Reduction
	Groups    []Group
}

// Lookup returns the group with the given key.
func (r *AggregateResult) Lookup(key string) (Group, bool) {
	for _, g := range r.Groups {
		if g.Key == key {
			return g, true
		}
	}
	return Group{}, false
}

type accumulator struct {
	count int
	sum   float64
}

// GroupBy reduces metric per dimension key. Genres are exploded, so a record
// counts toward each of its genres. Records missing the metric are skipped.
// For Count the metric may be empty, which counts records.
func GroupBy(pop Population, dim Dimension, metric catalog.Column, red Reduction) (*AggregateResult, error) {
	recs := pop.Records()
	if len(recs) == 0 {
		return nil, core.NewEmptyPopulationError("group by " + string(dim))
	}
	if err := checkReduction(red, metric); err != nil {
		return nil, err
	}

	acc := map[string]*accumulator{}
	var keys []string
	add := func(key string, v float64) {
		a, ok := acc[key]
		if !ok {
			a = &accumulator{}
			acc[key] = a
			keys = append(keys, key)
		}
		a.count++
		a.sum += v
	}

	for _, rec := range recs {
		v := 1.0
		if metric != "" {
			var ok bool
			if v, ok = rec.Value(metric); !ok {
				continue
			}
		}
		for _, key := range dimensionKeys(rec, dim) {
			add(key, v)
		}
	}

	if dim == ByPriceBucket {
		keys = keys[:0]
		for _, b := range PriceBuckets {
			keys = append(keys, b.Label)
		}
	} else if err := orderKeys(dim, keys); err != nil {
		return nil, err
	}

	result := &AggregateResult{Dimension: dim, Metric: metric, Reduction: red}
	for _, key := range keys {
		a := acc[key]
		if a == nil {
			a = &accumulator{}
		}
		result.Groups = append(result.Groups, Group{Key: key, Count: a.count, Value: reduce(red, a)})
	}
	return result, nil
}

// TopNByMean ranks groups by mean metric, highest first, and keeps n of them.
// Groups without values are left out.
func TopNByMean(pop Population, dim Dimension, metric catalog.Column, n int) (*AggregateResult, error) {
	res, err := GroupBy(pop, dim, metric, Mean)
	if err != nil {
		return nil, err
	}
	groups := res.Groups[:0]
	for _, g := range res.Groups {
		if g.Count > 0 {
			groups = append(groups, g)
		}
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Value > groups[j].Value })
	if n >= 0 && n < len(groups) {
		groups = groups[:n]
	}
	res.Groups = groups
	return res, nil
}

// PriceBucketMean reports the mean metric of every price bucket in order.
func PriceBucketMean(pop Population, metric catalog.Column) (*AggregateResult, error) {
	return GroupBy(pop, ByPriceBucket, metric, Mean)
}

// Summary holds the headline numbers of a view.
type Summary struct {
	Games        int
	TotalReviews float64
	MeanPrice    float64
	FreeGames    int
}

// Summarize counts records and sums their reviews.
func Summarize(pop Population) (Summary, error) {
	recs := pop.Records()
	if len(recs) == 0 {
		return Summary{}, core.NewEmptyPopulationError("summary")
	}
	s := Summary{Games: len(recs)}
	priced := 0
	for _, rec := range recs {
		s.TotalReviews += rec.TotalReviews
		if math.IsNaN(rec.Price) {
			continue
		}
		priced++
		s.MeanPrice += rec.Price
		if rec.Price == 0 {
			s.FreeGames++
		}
	}
	if priced > 0 {
		s.MeanPrice /= float64(priced)
	} else {
		s.MeanPrice = math.NaN()
	}
	return s, nil
}

func checkReduction(red Reduction, metric catalog.Column) error {
	switch red {
	case Mean, Sum:
		if metric == "" {
			return fmt.Errorf("%s needs a metric column", red)
		}
	case Count:
		if metric == "" {
			return nil
		}
	default:
		return fmt.Errorf("unknown reduction %q", red)
	}
	if !metric.Numeric() {
		return fmt.Errorf("%w: %q", core.ErrUnknownColumn, metric)
	}
	return nil
}

func dimensionKeys(rec catalog.EnrichedRecord, dim Dimension) []string {
	switch dim {
	case ByGenre:
		return rec.GenreList()
	case ByPriceBucket:
		if b := BucketFor(rec.Price); b != "" {
			return []string{b}
		}
	case ByReleaseYear:
		return []string{strconv.Itoa(rec.ReleaseYear)}
	case ByOwnerRange:
		return []string{rec.EstimatedOwners}
	}
	return nil
}

func orderKeys(dim Dimension, keys []string) error {
	switch dim {
	case ByGenre:
		sort.Strings(keys)
	case ByReleaseYear:
		sort.Slice(keys, func(i, j int) bool {
			a, _ := strconv.Atoi(keys[i])
			b, _ := strconv.Atoi(keys[j])
			return a < b
		})
	case ByOwnerRange:
		dataset.SortOwnerLabels(keys)
	default:
		return fmt.Errorf("unknown dimension %q", dim)
	}
	return nil
}

func reduce(red Reduction, a *accumulator) float64 {
	switch red {
	case Sum:
		return a.sum
	case Count:
		return float64(a.count)
	default:
		if a.count == 0 {
			return math.NaN()
		}
		return a.sum / float64(a.count)
	}
}
