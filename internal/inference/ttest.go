package inference

import (
	"fmt"
	"math"

	"gamestats/domain/catalog"
	"gamestats/domain/core"
	"gamestats/internal/analysis"

	"github.com/montanaflynn/stats"
)

const (
	GroupAbove = "above"
	GroupBelow = "at-or-below"
)

// TestResult is the outcome of Welch's two-sample t-test. Group A holds the
// records whose split value is above the threshold.
type TestResult struct {
	Metric    catalog.Column
	Split     catalog.Column
	Threshold float64

	GroupA string
	GroupB string
	NA     int
	NB     int
	MeanA  float64
	MeanB  float64

	TStatistic       float64
	DegreesOfFreedom float64
	PValue           float64
}

// Significant reports whether the p-value is below alpha.
func (r TestResult) Significant(alpha float64) bool {
	return r.PValue < alpha
}

func (r TestResult) String() string {
	return fmt.Sprintf("%s by %s > %g: t=%.3f df=%.1f p=%.4g (n=%d/%d)",
		r.Metric, r.Split, r.Threshold, r.TStatistic, r.DegreesOfFreedom, r.PValue, r.NA, r.NB)
}

// TwoSampleTest splits pop on split > threshold and compares the means of
// metric with Welch's unequal-variance t-test. Records missing the split
// value are in neither group; missing metric values are dropped per group.
// Each group needs at least two observations for a sample variance, so a
// group of one fails with an InsufficientSampleError like an empty group.
func TwoSampleTest(pop analysis.Population, metric, split catalog.Column, threshold float64) (*TestResult, error) {
	recs := pop.Records()
	if len(recs) == 0 {
		return nil, core.NewEmptyPopulationError("two-sample test")
	}
	for _, col := range []catalog.Column{metric, split} {
		if !col.Numeric() {
			return nil, fmt.Errorf("%w: %q", core.ErrUnknownColumn, col)
		}
	}

	var above, below []float64
	for _, rec := range recs {
		s, ok := rec.Value(split)
		if !ok {
			continue
		}
		m, ok := rec.Value(metric)
		if !ok {
			continue
		}
		if s > threshold {
			above = append(above, m)
		} else {
			below = append(below, m)
		}
	}
	if n := min(len(above), len(below)); n < 2 {
		return nil, core.NewInsufficientSampleError("two-sample test", n, 2)
	}

	res := &TestResult{
		Metric:    metric,
		Split:     split,
		Threshold: threshold,
		GroupA:    GroupAbove,
		GroupB:    GroupBelow,
		NA:        len(above),
		NB:        len(below),
	}
	res.MeanA, _ = stats.Mean(above)
	res.MeanB, _ = stats.Mean(below)
	varA, _ := stats.SampleVariance(above)
	varB, _ := stats.SampleVariance(below)

	res.TStatistic, res.DegreesOfFreedom = welch(res.MeanA, varA, res.NA, res.MeanB, varB, res.NB)
	res.PValue = distributions.TTestPValue(res.TStatistic, res.DegreesOfFreedom)
	return res, nil
}

// TwoSampleTestAtMedian runs TwoSampleTest with the median of split as threshold.
func TwoSampleTestAtMedian(pop analysis.Population, metric, split catalog.Column) (*TestResult, error) {
	values, err := populationValues(pop, split, "two-sample test")
	if err != nil {
		return nil, err
	}
	median, err := stats.Median(values)
	if err != nil {
		return nil, core.NewInsufficientSampleError("two-sample test", 0, 2)
	}
	return TwoSampleTest(pop, metric, split, median)
}

// welch returns the Welch t statistic and Welch–Satterthwaite degrees of
// freedom. With zero standard error the statistic is 0 for equal means and
// infinite otherwise.
func welch(meanA, varA float64, nA int, meanB, varB float64, nB int) (t, df float64) {
	va := varA / float64(nA)
	vb := varB / float64(nB)
	se := math.Sqrt(va + vb)
	if se == 0 {
		df = float64(nA + nB - 2)
		switch {
		case meanA == meanB:
			return 0, df
		case meanA > meanB:
			return math.Inf(1), df
		default:
			return math.Inf(-1), df
		}
	}
	t = (meanA - meanB) / se
	df = (va + vb) * (va + vb) / (va*va/float64(nA-1) + vb*vb/float64(nB-1))
	return t, df
}
