// Package source parses transaction files for bulk import.
package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spendy-ai/spendy/internal/model"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// RowError records one rejected row and why.
type RowError struct {
	Line int
	Err  error
}

// ImportResult holds the output of parsing one transaction file. Rejected
// rows are reported per line; they never abort the import.
type ImportResult struct {
	Transactions []model.Transaction
	RowErrors    []RowError
}

// ParseFile reads a CSV transaction file for the given user.
func ParseFile(path, userID string) (ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{}, err
	}
	defer func() { _ = f.Close() }()
	return Parse(f, userID)
}

// Parse reads CSV transaction rows for the given user.
//
// The first row is a header naming the columns: item, category, kind,
// amount and date are required; time, location, latitude and longitude
// are optional. Column order is free and unknown columns are ignored.
func Parse(r io.Reader, userID string) (ImportResult, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return ImportResult{}, fmt.Errorf("reading header: %w", err)
	}
	cols, err := mapColumns(header)
	if err != nil {
		return ImportResult{}, err
	}

	var result ImportResult
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.RowErrors = append(result.RowErrors, RowError{Line: line, Err: err})
			continue
		}

		txn, err := parseRow(record, cols, userID)
		if err != nil {
			result.RowErrors = append(result.RowErrors, RowError{Line: line, Err: err})
			continue
		}
		result.Transactions = append(result.Transactions, txn)
	}

	return result, nil
}

// columns maps each known column name to its index, -1 when absent.
type columns struct {
	item, category, kind, amount, date int
	timeOfDay, location, lat, lon      int
}

func mapColumns(header []string) (columns, error) {
	c := columns{
		item: -1, category: -1, kind: -1, amount: -1, date: -1,
		timeOfDay: -1, location: -1, lat: -1, lon: -1,
	}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "item":
			c.item = i
		case "category":
			c.category = i
		case "kind", "type":
			c.kind = i
		case "amount":
			c.amount = i
		case "date":
			c.date = i
		case "time", "time_of_day":
			c.timeOfDay = i
		case "location":
			c.location = i
		case "latitude", "lat":
			c.lat = i
		case "longitude", "lon", "lng":
			c.lon = i
		}
	}

	missing := []string{}
	for _, req := range []struct {
		name string
		idx  int
	}{
		{"item", c.item}, {"category", c.category}, {"kind", c.kind},
		{"amount", c.amount}, {"date", c.date},
	} {
		if req.idx < 0 {
			missing = append(missing, req.name)
		}
	}
	if len(missing) > 0 {
		return c, fmt.Errorf("header missing required columns: %s", strings.Join(missing, ", "))
	}
	return c, nil
}

func parseRow(record []string, cols columns, userID string) (model.Transaction, error) {
	field := func(idx int) string {
		if idx < 0 || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	txn := model.Transaction{
		UserID:   userID,
		Item:     field(cols.item),
		Category: field(cols.category),
		Location: field(cols.location),
	}

	kind, err := parseKind(field(cols.kind))
	if err != nil {
		return model.Transaction{}, err
	}
	txn.Kind = kind

	amount, err := strconv.ParseInt(field(cols.amount), 10, 64)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("bad amount %q", field(cols.amount))
	}
	if amount < 0 {
		return model.Transaction{}, fmt.Errorf("negative amount %d", amount)
	}
	txn.Amount = amount

	date, err := time.Parse(dateLayout, field(cols.date))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("bad date %q (want YYYY-MM-DD)", field(cols.date))
	}
	txn.Date = date

	if v := field(cols.timeOfDay); v != "" {
		tod, err := time.Parse(timeLayout, v)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("bad time %q (want HH:MM)", v)
		}
		txn.TimeOfDay = &tod
	}

	if v := field(cols.lat); v != "" {
		lat, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("bad latitude %q", v)
		}
		txn.Latitude = &lat
	}
	if v := field(cols.lon); v != "" {
		lon, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("bad longitude %q", v)
		}
		txn.Longitude = &lon
	}

	return txn, nil
}

func parseKind(v string) (model.Kind, error) {
	switch strings.ToLower(v) {
	case "expense":
		return model.Expense, nil
	case "income":
		return model.Income, nil
	}
	return "", fmt.Errorf("bad kind %q (want Income or Expense)", v)
}
