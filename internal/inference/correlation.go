package inference

import (
	"fmt"
	"math"

	"gamestats/domain/catalog"
	"gamestats/domain/core"
	"gamestats/internal/analysis"

	"gonum.org/v1/gonum/stat"
)

// CorrelationResult is a Pearson coefficient over paired values.
type CorrelationResult struct {
	A      catalog.Column
	B      catalog.Column
	R      float64
	N      int
	PValue float64
}

func (c CorrelationResult) String() string {
	return fmt.Sprintf("%s ~ %s: r=%.3f p=%.4g (n=%d)", c.A, c.B, c.R, c.PValue, c.N)
}

// Correlation computes Pearson's r over records where both columns are
// present. R is NaN when either column has no variance.
func Correlation(pop analysis.Population, a, b catalog.Column) (*CorrelationResult, error) {
	recs := pop.Records()
	if len(recs) == 0 {
		return nil, core.NewEmptyPopulationError("correlation")
	}
	for _, col := range []catalog.Column{a, b} {
		if !col.Numeric() {
			return nil, fmt.Errorf("%w: %q", core.ErrUnknownColumn, col)
		}
	}

	var xs, ys []float64
	for _, rec := range recs {
		x, okX := rec.Value(a)
		y, okY := rec.Value(b)
		if okX && okY {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	if len(xs) < 2 {
		return nil, core.NewInsufficientSampleError("correlation", len(xs), 2)
	}

	r := math.NaN()
	if stat.Variance(xs, nil) > 0 && stat.Variance(ys, nil) > 0 {
		r = math.Max(-1, math.Min(1, stat.Correlation(xs, ys, nil)))
	}
	return &CorrelationResult{
		A:      a,
		B:      b,
		R:      r,
		N:      len(xs),
		PValue: distributions.CorrelationPValue(r, len(xs)),
	}, nil
}

// CorrelationMatrix correlates every pair of columns. Pairs that cannot be
// computed are skipped.
func CorrelationMatrix(pop analysis.Population, columns []catalog.Column) ([]CorrelationResult, error) {
	if len(pop.Records()) == 0 {
		return nil, core.NewEmptyPopulationError("correlation matrix")
	}
	var out []CorrelationResult
	for i := range columns {
		for j := i + 1; j < len(columns); j++ {
			res, err := Correlation(pop, columns[i], columns[j])
			if err != nil {
				if core.IsNoDataError(err) {
					continue
				}
				return nil, err
			}
			out = append(out, *res)
		}
	}
	return out, nil
}
