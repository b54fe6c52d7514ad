package analysis

import (
	"fmt"
	"strconv"

	"gamestats/domain/catalog"
	"gamestats/domain/core"
)

// RollingWindows are the moving-average window sizes a caller may pick.
var RollingWindows = []int{1, 3, 5, 7}

// TrendPoint is the mean metric of one release year and its trailing moving average.
type TrendPoint struct {
	Year          int
	Count         int
	Mean          float64
	MovingAverage float64
}

// ValidWindow reports whether w is one of RollingWindows.
func ValidWindow(w int) bool {
	for _, v := range RollingWindows {
		if v == w {
			return true
		}
	}
	return false
}

// YearlyTrend returns the per-year mean of metric with a trailing moving
// average over window years. The first points average what is available.
func YearlyTrend(pop Population, metric catalog.Column, window int) ([]TrendPoint, error) {
	if !ValidWindow(window) {
		return nil, fmt.Errorf("%w: %d", core.ErrInvalidWindow, window)
	}
	res, err := GroupBy(pop, ByReleaseYear, metric, Mean)
	if err != nil {
		return nil, err
	}

	points := make([]TrendPoint, 0, len(res.Groups))
	for _, g := range res.Groups {
		if g.Count == 0 {
			continue
		}
		year, _ := strconv.Atoi(g.Key)
		points = append(points, TrendPoint{Year: year, Count: g.Count, Mean: g.Value})
	}

	for i := range points {
		lo := max(0, i-window+1)
		sum := 0.0
		for _, p := range points[lo : i+1] {
			sum += p.Mean
		}
		points[i].MovingAverage = sum / float64(i+1-lo)
	}
	return points, nil
}
