// Package inference runs the read-only statistical procedures on a filtered
// view: t-based confidence intervals, Welch's two-sample test and Pearson
// correlation.
package inference

import (
	"fmt"
	"math"
	"slices"

	"gamestats/domain/catalog"
	"gamestats/domain/core"
	"gamestats/internal/analysis"

	"github.com/montanaflynn/stats"
)

// ConfidenceLevels are the supported levels, in percent.
var ConfidenceLevels = []int{70, 80, 90, 95, 99}

var distributions = NewDistributions()

// Interval is a t-based confidence interval for a column mean.
type Interval struct {
	Column catalog.Column
	Level  int
	N      int
	Mean   float64
	StdErr float64
	Lower  float64
	Upper  float64
}

func (ci Interval) String() string {
	return fmt.Sprintf("%s mean %.2f, %d%% CI [%.2f, %.2f] (n=%d)", ci.Column, ci.Mean, ci.Level, ci.Lower, ci.Upper, ci.N)
}

// ValidLevel reports whether level is one of ConfidenceLevels.
func ValidLevel(level int) bool {
	return slices.Contains(ConfidenceLevels, level)
}

// ConfidenceInterval estimates the mean of column with a Student's t interval
// at level percent, using n-1 degrees of freedom. Missing values are dropped.
func ConfidenceInterval(pop analysis.Population, column catalog.Column, level int) (*Interval, error) {
	if !ValidLevel(level) {
		return nil, fmt.Errorf("%w: %d", core.ErrInvalidConfidenceLevel, level)
	}
	values, err := populationValues(pop, column, "confidence interval")
	if err != nil {
		return nil, err
	}
	n := len(values)
	if n <= 1 {
		return nil, core.NewInsufficientSampleError("confidence interval", n, 2)
	}

	mean, _ := stats.Mean(values)
	sd, _ := stats.StandardDeviationSample(values)
	se := sd / math.Sqrt(float64(n))
	margin := distributions.TCritical(float64(level)/100, float64(n-1)) * se

	return &Interval{
		Column: column,
		Level:  level,
		N:      n,
		Mean:   mean,
		StdErr: se,
		Lower:  mean - margin,
		Upper:  mean + margin,
	}, nil
}

// populationValues fails on an empty population and returns the
// non-missing values of column otherwise.
func populationValues(pop analysis.Population, column catalog.Column, operation string) ([]float64, error) {
	if len(pop.Records()) == 0 {
		return nil, core.NewEmptyPopulationError(operation)
	}
	return analysis.Values(pop, column)
}
