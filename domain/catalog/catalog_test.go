package catalog

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrichedRecord_Value(t *testing.T) {
	r := EnrichedRecord{
		Price:           9.99,
		Positive:        80,
		Negative:        20,
		MetacriticScore: 71,
		Achievements:    math.NaN(),
		Recommendations: 5,
		AvgPlaytime:     120,
		ReleaseYear:     2019,
		TotalReviews:    100,
	}

	v, ok := r.Value(ColPrice)
	assert.True(t, ok)
	assert.Equal(t, 9.99, v)

	v, ok = r.Value(ColReleaseYear)
	assert.True(t, ok)
	assert.Equal(t, 2019.0, v)

	_, ok = r.Value(ColAchievements)
	assert.False(t, ok, "NaN is a missing value")

	_, ok = r.Value(ColName)
	assert.False(t, ok, "textual column has no numeric value")
}

func TestSplitGenres(t *testing.T) {
	assert.Equal(t, []string{"Action", "Indie", "Free to Play"}, SplitGenres("Action, Indie ,Free to Play"))
	assert.Empty(t, SplitGenres(""))
	assert.Equal(t, []string{"RPG"}, SplitGenres(" , RPG,"))
}

func TestEnrichedTable_RecordsAreCopies(t *testing.T) {
	table := NewEnrichedTable([]EnrichedRecord{{Name: "a"}, {Name: "b"}})

	recs := table.Records()
	recs[0].Name = "mutated"

	assert.Equal(t, "a", table.Records()[0].Name)
	assert.Len(t, table.Head(10), 2)
	assert.Len(t, table.Head(1), 1)
}

func TestRawTable_MissingAndClone(t *testing.T) {
	ceiling := 10.0
	raw := &RawTable{
		Columns:      []string{"Name", "Price"},
		Rows:         [][]string{{"a", "1"}},
		PriceCeiling: &ceiling,
	}

	assert.Equal(t, []string{"Genres"}, raw.Missing(ColPrice, ColGenres))
	assert.Equal(t, 1, raw.Index(ColPrice))

	clone := raw.Clone()
	clone.Rows[0][1] = "2"
	*clone.PriceCeiling = 20
	assert.Equal(t, "1", raw.Rows[0][1])
	assert.Equal(t, 10.0, *raw.PriceCeiling)
}

func TestEvent_String(t *testing.T) {
	e := NewEvent(StageClean, "prices clipped", "count", 3, "ceiling", 65.5)
	assert.Equal(t, "clean: prices clipped ceiling=65.5 count=3", e.String())
}

func TestSourceKeyForFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name\n"), 0o644))

	k1, err := SourceKeyForFile(path)
	require.NoError(t, err)
	k2, err := SourceKeyForFile(path)
	require.NoError(t, err)
	assert.Equal(t, k1, k2)

	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, later, later))
	k3, err := SourceKeyForFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, k1, k3, "modification changes the key")

	_, err = SourceKeyForFile(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestSourceKeyForContent(t *testing.T) {
	a := SourceKeyForContent("games.csv", []byte("x"))
	b := SourceKeyForContent("games.csv", []byte("y"))
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, SourceKeyForContent("games.csv", []byte("x")))
}
