// Package excel is the raw loader: it reads the catalog from CSV or Excel
// files into a catalog.RawTable without interpreting any value.
package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gamestats/domain/catalog"
	"gamestats/internal"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	config ReaderConfig
	logger *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(config ReaderConfig, logger *internal.Logger) *DataReader {
	if config.Comma == 0 {
		config.Comma = ','
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DataReader{config: config, logger: logger}
}

// Load reads the table identified by key.Path.
func (r *DataReader) Load(key catalog.SourceKey) (*catalog.RawTable, error) {
	return r.ReadTable(key.Path)
}

// ReadTable reads a .csv, .xlsx or .xlsm file into a RawTable
func (r *DataReader) ReadTable(path string) (*catalog.RawTable, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("dataset file not found: %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return r.readCSVFile(path)
	case ".xlsx", ".xlsm":
		return r.readExcelFile(path)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

func (r *DataReader) readCSVFile(path string) (*catalog.RawTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	return r.ReadCSV(file)
}

// ReadCSV reads CSV content from any reader
func (r *DataReader) ReadCSV(src io.Reader) (*catalog.RawTable, error) {
	reader := csv.NewReader(src)
	reader.Comma = r.config.Comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	r.logger.Debug("[DataReader] CSV read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

func (r *DataReader) readExcelFile(path string) (*catalog.RawTable, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := r.config.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("Excel file has no sheets: %s", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	r.logger.Debug("[DataReader] %s read in %.2fms (%d rows)", sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

// processRows converts raw string rows into a RawTable. Short rows are padded
// with empty cells and cells beyond the header are dropped.
func (r *DataReader) processRows(rows [][]string) (*catalog.RawTable, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("file must have at least a header row")
	}

	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
	}

	dataRows := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		cells := make([]string, len(headers))
		for j := range headers {
			if j < len(row) {
				cells[j] = strings.TrimSpace(row[j])
			}
		}
		dataRows = append(dataRows, cells)
	}

	r.logger.Info("[DataReader] table loaded (%d columns, %d rows)", len(headers), len(dataRows))

	return &catalog.RawTable{
		Columns: headers,
		Rows:    dataRows,
	}, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
