package domain

import "fmt"

// TopSeasons finds, for each distinct year in first-appearance order, the
// season with the highest count. Ties go to the record seen first.
func TopSeasons(records []Record) []YearTopSeason {
	pos := make(map[string]int)
	var out []YearTopSeason
	for _, r := range records {
		i, ok := pos[r.Year]
		if !ok {
			pos[r.Year] = len(out)
			out = append(out, YearTopSeason{Year: r.Year, TopSeason: r.Season, Count: r.Count})
			continue
		}
		if r.Count > out[i].Count {
			out[i].TopSeason = r.Season
			out[i].Count = r.Count
		}
	}
	return out
}

// AnnotateTopSeasons returns a copy of records with TopSeason filled in from tops.
func AnnotateTopSeasons(records []Record, tops []YearTopSeason) ([]Record, error) {
	byYear := make(map[string]string, len(tops))
	for _, t := range tops {
		byYear[t.Year] = t.TopSeason
	}

	out := make([]Record, len(records))
	for i, r := range records {
		top, ok := byYear[r.Year]
		if !ok {
			return nil, fmt.Errorf("%w: no top season for year %q", ErrLookup, r.Year)
		}
		r.TopSeason = top
		out[i] = r
	}
	return out, nil
}

// NewDataset aggregates and annotates records into a Dataset stamped with the
// current time.
func NewDataset(records []Record) (*Dataset, error) {
	tops := TopSeasons(records)
	annotated, err := AnnotateTopSeasons(records, tops)
	if err != nil {
		return nil, err
	}
	return &Dataset{
		Records:    annotated,
		TopSeasons: tops,
		Years:      distinct(records, func(r Record) string { return r.Year }),
		Seasons:    distinct(records, func(r Record) string { return r.Season }),
		LoadedAt:   clock.Now().UTC(),
	}, nil
}

func distinct(records []Record, key func(Record) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range records {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
