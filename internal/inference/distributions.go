package inference

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// StatisticalDistributions provides Student's t probabilities for the tests in this package
type StatisticalDistributions struct{}

// NewDistributions creates a new distributions utility
func NewDistributions() *StatisticalDistributions {
	return &StatisticalDistributions{}
}

// TTestPValue computes the two-sided p-value of a t statistic. Degrees of
// freedom may be fractional (Welch).
func (sd *StatisticalDistributions) TTestPValue(tStatistic, degreesOfFreedom float64) float64 {
	if degreesOfFreedom <= 0 || math.IsNaN(tStatistic) {
		return 1.0
	}
	if math.IsInf(tStatistic, 0) {
		return 0
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: degreesOfFreedom}

	// Two-tailed test
	p := 2 * (1 - tDist.CDF(math.Abs(tStatistic)))
	return math.Max(0, math.Min(1, p))
}

// TCritical returns the two-sided critical value for a confidence level in (0,1).
func (sd *StatisticalDistributions) TCritical(confidence, degreesOfFreedom float64) float64 {
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: degreesOfFreedom}
	return tDist.Quantile(1 - (1-confidence)/2)
}

// CorrelationPValue computes exact p-value for correlation coefficient
func (sd *StatisticalDistributions) CorrelationPValue(correlation float64, sampleSize int) float64 {
	if sampleSize < 3 || math.IsNaN(correlation) {
		return 1.0
	}
	if math.Abs(correlation) >= 1 {
		return 0
	}

	// Transform correlation to t-statistic
	df := float64(sampleSize - 2)
	tStatistic := correlation * math.Sqrt(df/(1-correlation*correlation))

	return sd.TTestPValue(tStatistic, df)
}
