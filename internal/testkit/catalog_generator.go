// Package testkit builds synthetic game catalogs for tests and demos.
package testkit

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"math/rand"
	"strconv"
	"time"

	"gamestats/domain/catalog"
)

// CatalogColumns is the header written by the generator, in source order.
var CatalogColumns = []catalog.Column{
	catalog.ColName,
	catalog.ColReleaseDate,
	catalog.ColEstimatedOwners,
	catalog.ColPrice,
	catalog.ColGenres,
	catalog.ColPositive,
	catalog.ColNegative,
	catalog.ColMetacriticScore,
	catalog.ColReviews,
	catalog.ColAchievements,
	catalog.ColRecommendations,
	catalog.ColAvgPlaytime,
}

var (
	ownerRanges = []string{
		"0 - 0", "0 - 20,000", "20,000 - 50,000", "50,000 - 100,000", "100,000 - 200,000",
		"200,000 - 500,000", "500,000 - 1,000,000", "1,000,000 - 2,000,000", "20,000,000 - 50,000,000",
	}
	genreNames = []string{
		"Action", "Adventure", "Indie", "RPG", "Strategy", "Simulation", "Casual",
		"Sports", "Racing", "Massively Multiplayer", "Free to Play", "Utilities",
	}
	badDates = []string{"Coming soon", "Q3 2021", "2020-05-01", "TBA"}
)

// CatalogGeneratorConfig configures the catalog generator
type CatalogGeneratorConfig struct {
	GameCount int   `json:"game_count"`
	StartYear int   `json:"start_year"`
	EndYear   int   `json:"end_year"`
	Seed      int64 `json:"seed"`

	// MissingRate is the chance that a required cell is left empty.
	MissingRate float64 `json:"missing_rate"`
	// DuplicateRate is the chance that a generated row is repeated verbatim.
	DuplicateRate float64 `json:"duplicate_rate"`
	// BadDateRate is the chance of a release date outside the accepted layout.
	BadDateRate float64 `json:"bad_date_rate"`
	// AchievementEffect multiplies positive reviews of games with more than 20 achievements.
	AchievementEffect float64 `json:"achievement_effect"`
}

// DefaultCatalogConfig returns sensible defaults for catalog generation
func DefaultCatalogConfig() CatalogGeneratorConfig {
	return CatalogGeneratorConfig{
		GameCount:         2000,
		StartYear:         2006,
		EndYear:           2024,
		Seed:              42,
		MissingRate:       0.02,
		DuplicateRate:     0.01,
		BadDateRate:       0.01,
		AchievementEffect: 2.0,
	}
}

// CatalogGenerator generates realistic-looking store catalog rows
type CatalogGenerator struct {
	config CatalogGeneratorConfig
	rng    *rand.Rand
}

// NewCatalogGenerator creates a new catalog generator
func NewCatalogGenerator(config CatalogGeneratorConfig) *CatalogGenerator {
	if config.EndYear < config.StartYear {
		config.EndYear = config.StartYear
	}
	return &CatalogGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate returns a raw table in the catalog's CSV layout.
func (g *CatalogGenerator) Generate() *catalog.RawTable {
	table := &catalog.RawTable{Columns: columnNames(CatalogColumns)}
	for i := 0; i < g.config.GameCount; i++ {
		row := g.gameRow(i)
		table.Rows = append(table.Rows, row)
		if g.rng.Float64() < g.config.DuplicateRate {
			table.Rows = append(table.Rows, append([]string(nil), row...))
		}
	}
	return table
}

func (g *CatalogGenerator) gameRow(i int) []string {
	achievements := math.Floor(g.rng.ExpFloat64() * 20)
	positive := math.Round(math.Exp(4 + g.rng.NormFloat64()))
	if achievements > 20 {
		positive = math.Round(positive * math.Max(1, g.config.AchievementEffect))
	}
	negative := math.Round(positive * (0.1 + 0.4*g.rng.Float64()))

	metacritic := 0.0
	if g.rng.Float64() < 0.3 {
		metacritic = float64(50 + g.rng.Intn(46))
	}

	reviews := ""
	if metacritic > 0 && g.rng.Float64() < 0.5 {
		reviews = fmt.Sprintf("\"A solid %d/100 experience\" - Example Review", int(metacritic))
	}

	row := GameRow{
		Name:            fmt.Sprintf("Game %05d", i+1),
		ReleaseDate:     g.releaseDate(),
		EstimatedOwners: ownerRanges[g.rng.Intn(len(ownerRanges))],
		Price:           g.price(),
		Genres:          g.genres(),
		Positive:        strconv.Itoa(int(positive)),
		Negative:        strconv.Itoa(int(negative)),
		MetacriticScore: strconv.Itoa(int(metacritic)),
		Reviews:         reviews,
		Achievements:    strconv.Itoa(int(achievements)),
		Recommendations: strconv.Itoa(int(positive * (0.5 + g.rng.Float64()))),
		AvgPlaytime:     strconv.Itoa(g.rng.Intn(600)),
	}
	g.blankRequired(&row)
	return row.Cells()
}

func (g *CatalogGenerator) releaseDate() string {
	if g.rng.Float64() < g.config.BadDateRate {
		return badDates[g.rng.Intn(len(badDates))]
	}
	year := g.config.StartYear + g.rng.Intn(g.config.EndYear-g.config.StartYear+1)
	day := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, g.rng.Intn(365))
	if day.Year() != year {
		day = day.AddDate(0, 0, -1)
	}
	return day.Format(catalog.ReleaseDateLayout)
}

func (g *CatalogGenerator) price() string {
	switch r := g.rng.Float64(); {
	case r < 0.25:
		return "0"
	case r < 0.03+0.25:
		return "199.99"
	default:
		p := math.Max(0.99, math.Floor(math.Exp(2+0.8*g.rng.NormFloat64()))+0.99)
		return strconv.FormatFloat(p, 'f', 2, 64)
	}
}

func (g *CatalogGenerator) genres() string {
	n := 1 + g.rng.Intn(3)
	picked := make([]string, 0, n)
	seen := map[int]bool{}
	for len(picked) < n {
		k := g.rng.Intn(len(genreNames))
		if seen[k] {
			continue
		}
		seen[k] = true
		picked = append(picked, genreNames[k])
	}
	out := picked[0]
	for _, p := range picked[1:] {
		out += "," + p
	}
	return out
}

func (g *CatalogGenerator) blankRequired(row *GameRow) {
	for _, field := range []*string{&row.Price, &row.Genres, &row.Positive, &row.MetacriticScore, &row.EstimatedOwners} {
		if g.rng.Float64() < g.config.MissingRate {
			*field = ""
		}
	}
}

// GameRow is one catalog row with every cell as text; empty means missing.
type GameRow struct {
	Name            string
	ReleaseDate     string
	EstimatedOwners string
	Price           string
	Genres          string
	Positive        string
	Negative        string
	MetacriticScore string
	Reviews         string
	Achievements    string
	Recommendations string
	AvgPlaytime     string
}

// Cells returns the row in CatalogColumns order.
func (r GameRow) Cells() []string {
	return []string{
		r.Name, r.ReleaseDate, r.EstimatedOwners, r.Price, r.Genres, r.Positive,
		r.Negative, r.MetacriticScore, r.Reviews, r.Achievements, r.Recommendations, r.AvgPlaytime,
	}
}

// BuildTable assembles hand-written rows into a raw table with the full header.
func BuildTable(rows ...GameRow) *catalog.RawTable {
	table := &catalog.RawTable{Columns: columnNames(CatalogColumns)}
	for _, r := range rows {
		table.Rows = append(table.Rows, r.Cells())
	}
	return table
}

// Game returns a complete, valid row that tests adjust field by field.
func Game(name string) GameRow {
	return GameRow{
		Name:            name,
		ReleaseDate:     "Oct 21, 2008",
		EstimatedOwners: "0 - 20,000",
		Price:           "9.99",
		Genres:          "Action,Indie",
		Positive:        "80",
		Negative:        "20",
		MetacriticScore: "70",
		Reviews:         "Great",
		Achievements:    "10",
		Recommendations: "50",
		AvgPlaytime:     "120",
	}
}

// WriteCSV writes the table with its header.
func WriteCSV(w io.Writer, table *catalog.RawTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(table.Columns); err != nil {
		return err
	}
	if err := cw.WriteAll(table.Rows); err != nil {
		return err
	}
	return cw.Error()
}

func columnNames(cols []catalog.Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = string(c)
	}
	return out
}
