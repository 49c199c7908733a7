package domain

import (
	"errors"
	"time"
)

var (
	// ErrNetwork reports that the dataset could not be retrieved.
	ErrNetwork = errors.New("network error")
	// ErrParse reports that the dataset content is malformed.
	ErrParse = errors.New("parse error")
	// ErrLookup reports a record whose year has no top season.
	ErrLookup = errors.New("lookup error")
)

// Record is one row of the dataset plus its derived top season.
type Record struct {
	Year      string `json:"year"`
	Season    string `json:"season"`
	Count     int    `json:"count"`
	TopSeason string `json:"top_season,omitempty"`
}

// Key identifies the heatmap cell a record occupies.
func (r Record) Key() string {
	return r.Season + ":" + r.Year
}

// YearTopSeason is the winning season for a single year.
type YearTopSeason struct {
	Year      string `json:"year"`
	TopSeason string `json:"top_season"`
	Count     int    `json:"count"`
}

// Dataset is an annotated, read-only snapshot of the records.
type Dataset struct {
	Records    []Record
	TopSeasons []YearTopSeason
	Years      []string // first-appearance order
	Seasons    []string // first-appearance order
	LoadedAt   time.Time
}

// Counts returns every record's count in input order.
func (d *Dataset) Counts() []float64 {
	out := make([]float64, len(d.Records))
	for i, r := range d.Records {
		out[i] = float64(r.Count)
	}
	return out
}
