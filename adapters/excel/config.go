package excel

// ReaderConfig holds settings for reading the source table
type ReaderConfig struct {
	// Sheet is the worksheet read from .xlsx files; empty means the first sheet.
	Sheet string
	// Comma is the CSV field delimiter.
	Comma rune
}

// DefaultReaderConfig returns sensible defaults for the catalog export
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		Comma: ',',
	}
}
