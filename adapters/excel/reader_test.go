package excel

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gamestats/domain/catalog"
	"gamestats/internal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func quietReader() *DataReader {
	return NewDataReader(DefaultReaderConfig(), internal.NewLoggerTo(&bytes.Buffer{}, internal.LogLevelError))
}

func TestReadCSV_PadsAndTrims(t *testing.T) {
	src := "Name,Price,Genres\n" +
		" Portal ,9.99,\"Action,Puzzle\"\n" +
		"Short,1\n" +
		",,\n"

	table, err := quietReader().ReadCSV(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Price", "Genres"}, table.Columns)
	require.Len(t, table.Rows, 2, "blank rows are skipped")
	assert.Equal(t, []string{"Portal", "9.99", "Action,Puzzle"}, table.Rows[0])
	assert.Equal(t, []string{"Short", "1", ""}, table.Rows[1], "short rows are padded with missing cells")
	assert.Nil(t, table.PriceCeiling)
}

func TestReadCSV_StripsBOM(t *testing.T) {
	table, err := quietReader().ReadCSV(strings.NewReader("\ufeffName,Price\nA,1\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, table.Index(catalog.ColName))
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := quietReader().ReadCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestReadTable_CSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,Price\nA,1\nB,2\n"), 0o644))

	key, err := catalog.SourceKeyForFile(path)
	require.NoError(t, err)

	table, err := quietReader().Load(key)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
}

func TestReadTable_Excel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Name", "Price", "Genres"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Portal", "9.99", "Puzzle"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"Free", "0"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := quietReader().ReadTable(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Price", "Genres"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"Portal", "9.99", "Puzzle"}, table.Rows[0])
	assert.Equal(t, []string{"Free", "0", ""}, table.Rows[1])
}

func TestReadTable_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := quietReader().ReadTable(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)

	path := filepath.Join(dir, "games.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	_, err = quietReader().ReadTable(path)
	assert.ErrorContains(t, err, "unsupported file type")
}
