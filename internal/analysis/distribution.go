package analysis

import (
	"fmt"
	"math"

	"gamestats/domain/catalog"
	"gamestats/domain/core"
	"gamestats/internal/dataset"

	"github.com/montanaflynn/stats"
)

// BoxSummary describes the distribution of a metric within one group, as
// drawn by a box plot. Whiskers reach the most extreme values within 1.5 IQR.
type BoxSummary struct {
	Key    string
	N      int
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64

	LowerWhisker float64
	UpperWhisker float64
	Outliers     int

	Mean     float64
	StdDev   float64
	Skewness float64
}

// Distribution summarizes metric per group of dim, in the group order of
// GroupBy. Groups without values are left out.
func Distribution(pop Population, dim Dimension, metric catalog.Column) ([]BoxSummary, error) {
	recs := pop.Records()
	if len(recs) == 0 {
		return nil, core.NewEmptyPopulationError("distribution by " + string(dim))
	}
	if !metric.Numeric() {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownColumn, metric)
	}

	// GroupBy fixes the key order
	groups, err := GroupBy(pop, dim, metric, Count)
	if err != nil {
		return nil, err
	}

	values := map[string][]float64{}
	for _, rec := range recs {
		v, ok := rec.Value(metric)
		if !ok {
			continue
		}
		for _, key := range dimensionKeys(rec, dim) {
			values[key] = append(values[key], v)
		}
	}

	out := make([]BoxSummary, 0, len(groups.Groups))
	for _, g := range groups.Groups {
		if g.Count == 0 {
			continue
		}
		out = append(out, summarizeBox(g.Key, values[g.Key]))
	}
	return out, nil
}

func summarizeBox(key string, data []float64) BoxSummary {
	b := BoxSummary{Key: key, N: len(data)}
	b.Min, _ = stats.Min(data)
	b.Max, _ = stats.Max(data)
	b.Median, _ = stats.Median(data)
	b.Mean, _ = stats.Mean(data)
	b.Q1 = dataset.Quantile(data, 0.25)
	b.Q3 = dataset.Quantile(data, 0.75)

	b.StdDev = math.NaN()
	if len(data) > 1 {
		b.StdDev, _ = stats.StandardDeviationSample(data)
	}
	b.Skewness = skewness(data, b.Mean)

	iqr := b.Q3 - b.Q1
	lower, upper := b.Q1-1.5*iqr, b.Q3+1.5*iqr
	b.LowerWhisker, b.UpperWhisker = b.Max, b.Min
	for _, x := range data {
		if x < lower || x > upper {
			b.Outliers++
			continue
		}
		b.LowerWhisker = math.Min(b.LowerWhisker, x)
		b.UpperWhisker = math.Max(b.UpperWhisker, x)
	}
	return b
}

// skewness computes sample skewness using the adjusted Fisher-Pearson coefficient
func skewness(data []float64, mean float64) float64 {
	if len(data) < 3 {
		return math.NaN()
	}
	stdDev, _ := stats.StandardDeviationPopulation(data)
	if stdDev == 0 {
		return 0
	}

	n := float64(len(data))
	sumCubedDeviations := 0.0
	for _, x := range data {
		deviation := (x - mean) / stdDev
		sumCubedDeviations += deviation * deviation * deviation
	}

	// Bias correction for sample skewness
	return sumCubedDeviations / n * math.Sqrt(n*(n-1)) / (n - 2)
}
