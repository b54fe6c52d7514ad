package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	missing := NewMissingColumnError("clean", "Price", "Genres")
	assert.True(t, errors.Is(missing, ErrMissingColumn))
	assert.Contains(t, missing.Error(), "Price, Genres")
	assert.True(t, IsPipelineError(fmt.Errorf("load: %w", missing)))

	var mc *MissingColumnError
	assert.True(t, errors.As(missing, &mc))
	assert.Equal(t, []string{"Price", "Genres"}, mc.Columns)

	empty := NewEmptyPopulationError("group_by")
	assert.True(t, errors.Is(empty, ErrEmptyPopulation))
	assert.False(t, errors.Is(empty, ErrInsufficientSample))

	small := NewInsufficientSampleError("confidence_interval", 1, 2)
	assert.True(t, errors.Is(small, ErrInsufficientSample))
	assert.False(t, errors.Is(small, ErrEmptyPopulation))

	assert.True(t, IsNoDataError(empty))
	assert.True(t, IsNoDataError(small))
	assert.False(t, IsNoDataError(missing))

	ragged := NewRaggedRowError("clean", 4, 2, 12)
	assert.True(t, errors.Is(ragged, ErrRaggedRow))
	assert.True(t, IsPipelineError(ragged))
	assert.False(t, IsNoDataError(ragged))
	assert.Contains(t, ragged.Error(), "row 4 has 2 cells")

	malformed := &MalformedRangeError{Input: "a - b", Bound: "a"}
	assert.True(t, errors.Is(malformed, ErrMalformedRange))
}
