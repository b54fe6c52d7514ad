package dataset

import (
	"sort"
	"strconv"
	"strings"

	"gamestats/domain/core"
)

const (
	ownerRangeSeparator = " - "
	unparsableSortBound = int64(9999999999)
)

// FormatCompact rewrites n with the K/M/B suffix rule (thresholds 1e3, 1e6,
// 1e9, rounded to whole units); smaller values print as plain numbers.
func FormatCompact(n float64) string {
	switch {
	case n >= 1e9:
		return strconv.FormatFloat(n/1e9, 'f', 0, 64) + "B"
	case n >= 1e6:
		return strconv.FormatFloat(n/1e6, 'f', 0, 64) + "M"
	case n >= 1e3:
		return strconv.FormatFloat(n/1e3, 'f', 0, 64) + "K"
	default:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
}

// CompactOwnerRange turns "1,000 - 2,000" into "1K - 2K". Text without two
// integer bounds is returned comma-stripped and otherwise unchanged.
func CompactOwnerRange(s string) string {
	label, err := compactOwnerRange(s)
	if err != nil {
		return strings.ReplaceAll(s, ",", "")
	}
	return label
}

func compactOwnerRange(s string) (string, error) {
	stripped := strings.ReplaceAll(s, ",", "")
	parts := strings.Split(stripped, ownerRangeSeparator)
	if len(parts) != 2 {
		return stripped, nil
	}

	bounds := make([]string, 2)
	for i, part := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return "", &core.MalformedRangeError{Input: s, Bound: part}
		}
		bounds[i] = FormatCompact(float64(n))
	}
	return bounds[0] + ownerRangeSeparator + bounds[1], nil
}

// OwnerRangeSortKey orders compact owner labels by their numeric bounds.
// Labels that cannot be read sort last.
func OwnerRangeSortKey(label string) (start, end int64) {
	if strings.Contains(label, ownerRangeSeparator) {
		parts := strings.SplitN(label, ownerRangeSeparator, 2)
		s, err1 := expandCompact(parts[0])
		e, err2 := expandCompact(parts[1])
		if err1 != nil || err2 != nil {
			return unparsableSortBound, unparsableSortBound
		}
		return s, e
	}
	v, err := expandCompact(label)
	if err != nil {
		return unparsableSortBound, unparsableSortBound
	}
	return v, 0
}

func expandCompact(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("K", "000", "M", "000000", "B", "000000000").Replace(s)
	return strconv.ParseInt(s, 10, 64)
}

// SortOwnerLabels sorts labels in place by OwnerRangeSortKey, ties by text.
func SortOwnerLabels(labels []string) {
	sort.SliceStable(labels, func(i, j int) bool {
		si, ei := OwnerRangeSortKey(labels[i])
		sj, ej := OwnerRangeSortKey(labels[j])
		if si != sj {
			return si < sj
		}
		if ei != ej {
			return ei < ej
		}
		return labels[i] < labels[j]
	})
}
