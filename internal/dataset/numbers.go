package dataset

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// parseNumber reads a numeric cell. Empty, non-numeric and NaN cells are missing.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Quantile interpolates linearly between the closest ranks at position
// (n-1)*p of the sorted sample. data must be non-empty.
func Quantile(data []float64, p float64) float64 {
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	pos := float64(len(sorted)-1) * p
	lo := math.Floor(pos)
	hi := math.Ceil(pos)
	if lo == hi {
		return sorted[int(lo)]
	}
	return sorted[int(lo)] + (pos-lo)*(sorted[int(hi)]-sorted[int(lo)])
}

// IQRCeiling returns Q3 + 1.5*(Q3-Q1) together with both quartiles.
func IQRCeiling(data []float64) (ceiling, q1, q3 float64) {
	q1 = Quantile(data, 0.25)
	q3 = Quantile(data, 0.75)
	return q3 + 1.5*(q3-q1), q1, q3
}
