package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Expected column headers in the product source. Matching is case-insensitive.
const (
	colSKU   = "product_code"
	colName  = "product_name"
	colPrice = "price"
	colStock = "available_in_stock"
	colMOQ   = "min_order_quantity"
)

// Loader parses tabular product sources into catalog entries. An unreadable
// source fails the whole load; a malformed individual row is skipped.
type Loader struct {
	logger *slog.Logger
}

func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load reads a product file into entries. CSV is the default format; .xlsx
// workbooks with the same header row are also accepted.
func (l *Loader) Load(path string) ([]Entry, error) {
	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readXLSX(path)
	default:
		rows, err = readCSV(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("catalog %s: no header row", path)
	}

	cols := headerIndex(rows[0])
	for _, required := range []string{colSKU, colName, colPrice, colStock, colMOQ} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("catalog %s: missing column %q", path, required)
		}
	}

	var entries []Entry
	skipped := 0
	for i, row := range rows[1:] {
		e, err := parseRow(row, cols)
		if err != nil {
			skipped++
			l.logger.Warn("skipping malformed catalog row", "row", i+2, "error", err)
			continue
		}
		entries = append(entries, e)
	}

	l.logger.Info("catalog loaded", "path", path, "entries", len(entries), "skipped", skipped)
	return entries, nil
}

func parseRow(row []string, cols map[string]int) (Entry, error) {
	get := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	sku := get(colSKU)
	if sku == "" {
		return Entry{}, errors.New("empty product code")
	}
	price, err := strconv.ParseFloat(get(colPrice), 64)
	if err != nil || price < 0 {
		return Entry{}, fmt.Errorf("bad price %q", get(colPrice))
	}
	stock, err := strconv.Atoi(get(colStock))
	if err != nil || stock < 0 {
		return Entry{}, fmt.Errorf("bad stock %q", get(colStock))
	}
	moq, err := strconv.Atoi(get(colMOQ))
	if err != nil || moq < 0 {
		return Entry{}, fmt.Errorf("bad min order quantity %q", get(colMOQ))
	}

	return Entry{
		SKU:         sku,
		Description: get(colName),
		Price:       price,
		Stock:       stock,
		MinOrderQty: moq,
	}, nil
}

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return cols
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	// Real-world product exports have ragged rows and loose quoting.
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows [][]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}
