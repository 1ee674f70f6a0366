// Package prices reads daily close prices exported by a market data source.
package prices

import (
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tax-dashboard/core/indicator"
	"tax-dashboard/internal/errors"
)

// ReadCSV parses close prices. The input is either two columns (date, close)
// without a header, or a headed export where the "Date" and "Close" columns
// are picked by name. Rows are returned in ascending date order.
func ReadCSV(r io.Reader) ([]indicator.Close, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Parsing("failed to read price CSV", err)
	}
	if len(records) == 0 {
		return nil, errors.InvalidInput("price CSV is empty")
	}

	dateCol, closeCol := 0, 1
	rows := records
	if cols, ok := headerColumns(records[0]); ok {
		dateCol, closeCol = cols[0], cols[1]
		rows = records[1:]
	}

	out := make([]indicator.Close, 0, len(rows))
	for i, row := range rows {
		if len(row) <= dateCol || len(row) <= closeCol {
			return nil, errors.InvalidInputf("price CSV row %d has %d columns", i+1, len(row))
		}

		date, err := time.Parse(time.DateOnly, strings.TrimSpace(row[dateCol]))
		if err != nil {
			return nil, errors.Parsing("invalid date in price CSV", err).WithContext("row", i+1)
		}
		price, err := decimal.NewFromString(strings.TrimSpace(row[closeCol]))
		if err != nil {
			return nil, errors.Parsing("invalid close in price CSV", err).WithContext("row", i+1)
		}

		out = append(out, indicator.Close{Date: date, Price: price})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// headerColumns returns the date and close column indexes when row is a header
func headerColumns(row []string) ([2]int, bool) {
	cols := [2]int{-1, -1}
	for i, name := range row {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date":
			cols[0] = i
		case "close":
			cols[1] = i
		}
	}
	if cols[0] < 0 || cols[1] < 0 {
		return cols, false
	}
	return cols, true
}

// ReadFile parses close prices from a CSV file
func ReadFile(path string) ([]indicator.Close, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("price file", path)
		}
		return nil, errors.Internal("failed to open price file", err)
	}
	defer f.Close()

	return ReadCSV(f)
}
