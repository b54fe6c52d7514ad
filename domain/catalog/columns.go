package catalog

// Column names a field of the game catalog. Source columns match the CSV
// header verbatim; derived columns are added by the feature engine.
type Column string

// Source columns
const (
	ColName            Column = "Name"
	ColPrice           Column = "Price"
	ColGenres          Column = "Genres"
	ColPositive        Column = "Positive"
	ColNegative        Column = "Negative"
	ColMetacriticScore Column = "Metacritic score"
	ColReviews         Column = "Reviews"
	ColEstimatedOwners Column = "Estimated owners"
	ColReleaseDate     Column = "Release date"
	ColAchievements    Column = "Achievements"
	ColRecommendations Column = "Recommendations"
	ColAvgPlaytime     Column = "Average playtime forever"
)

// Derived columns
const (
	ColReleaseYear        Column = "Release Year"
	ColTotalReviews       Column = "Total_Reviews"
	ColPositivePercentage Column = "Positive_Percentage"
)

// UnknownLabel fills missing values of required textual columns.
const UnknownLabel = "Unknown"

// ReleaseDateLayout is the one accepted format of the release date column.
const ReleaseDateLayout = "Jan 2, 2006"

// RequiredColumns must be present and are never missing after cleaning.
var RequiredColumns = []Column{
	ColPrice,
	ColGenres,
	ColPositive,
	ColMetacriticScore,
	ColReviews,
	ColEstimatedOwners,
}

// EnrichmentColumns are needed by the feature engine on top of RequiredColumns.
var EnrichmentColumns = []Column{
	ColReleaseDate,
	ColNegative,
}

var numericColumns = map[Column]bool{
	ColPrice:              true,
	ColPositive:           true,
	ColNegative:           true,
	ColMetacriticScore:    true,
	ColAchievements:       true,
	ColRecommendations:    true,
	ColAvgPlaytime:        true,
	ColReleaseYear:        true,
	ColTotalReviews:       true,
	ColPositivePercentage: true,
}

// Numeric reports whether the column holds numbers.
func (c Column) Numeric() bool {
	return numericColumns[c]
}

func (c Column) String() string {
	return string(c)
}

// NumericColumns lists every column EnrichedRecord.Value can read, in a stable order.
func NumericColumns() []Column {
	return []Column{
		ColPrice,
		ColPositive,
		ColNegative,
		ColMetacriticScore,
		ColAchievements,
		ColRecommendations,
		ColAvgPlaytime,
		ColReleaseYear,
		ColTotalReviews,
		ColPositivePercentage,
	}
}
