package dataset

import (
	"errors"
	"testing"

	"gamestats/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCompact(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1K"},
		{20000, "20K"},
		{1500000, "2M"},
		{2e9, "2B"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCompact(tt.in), "FormatCompact(%v)", tt.in)
	}
}

func TestCompactOwnerRange(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1,000 - 2,000", "1K - 2K"},
		{"0 - 20,000", "0 - 20K"},
		{"20,000,000 - 50,000,000", "20M - 50M"},
		{"Unknown", "Unknown"},
		{"1,000+", "1000+"},
		{"abc - 2,000", "abc - 2000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CompactOwnerRange(tt.in), "CompactOwnerRange(%q)", tt.in)
	}
}

func TestCompactOwnerRange_MalformedBoundIsTyped(t *testing.T) {
	_, err := compactOwnerRange("abc - 2,000")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrMalformedRange))
}

func TestSortOwnerLabels(t *testing.T) {
	labels := []string{"Unknown", "1M - 2M", "0 - 20K", "20K - 50K", "0 - 0"}
	SortOwnerLabels(labels)
	assert.Equal(t, []string{"0 - 0", "0 - 20K", "20K - 50K", "1M - 2M", "Unknown"}, labels)
}
