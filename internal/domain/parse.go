package domain

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Column names expected in the dataset header.
const (
	ColumnYear   = "year"
	ColumnSeason = "season"
	ColumnCount  = "count"
)

// ParseRecords reads a headered CSV stream into records. Any structural problem,
// missing column, or invalid count is reported as ErrParse.
func ParseRecords(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty input", ErrParse)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrParse, err)
	}

	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var records []Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}

		line, _ := cr.FieldPos(0)
		count, err := parseCount(row[idx[ColumnCount]])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrParse, line, err)
		}

		records = append(records, Record{
			Year:   strings.TrimSpace(row[idx[ColumnYear]]),
			Season: strings.TrimSpace(row[idx[ColumnSeason]]),
			Count:  count,
		})
	}
	return records, nil
}

// columnIndex maps the required column names to their header positions.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, 3)
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}
	for _, col := range []string{ColumnYear, ColumnSeason, ColumnCount} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: missing %q column", ErrParse, col)
		}
	}
	return idx, nil
}

// parseCount accepts non-negative integers. Integral floats such as "12.0" are
// tolerated since spreadsheet exports often write them.
func parseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty count")
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative count %d", n)
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("invalid count %q", s)
	}
	if f < 0 {
		return 0, fmt.Errorf("negative count %q", s)
	}
	return int(f), nil
}
