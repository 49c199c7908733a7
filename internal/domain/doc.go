// Package domain models the seasonal movie-count dataset behind the heatmap.
//
// # Data Source
//
// The dataset is a tidy CSV with one row per (year, season) pair:
//
//	year,season,count
//	2019,Winter,12
//	2019,Spring,31
//
// Columns are located by header name, so their order does not matter. Year and
// season are opaque category labels; only count is numeric and must be a
// non-negative integer.
//
// # Top Season
//
// For every distinct year the season with the highest count is the year's top
// season. Years are visited in first-appearance order. When two seasons tie on
// the maximum count, the one that appears first in the input wins. Every
// record is annotated with its year's top season by [AnnotateTopSeasons].
//
// # Errors
//
// Loading classifies failures as [ErrNetwork] (the resource could not be
// fetched) or [ErrParse] (the content is not a valid dataset). [ErrLookup]
// marks a record whose year has no computed top season, which cannot happen
// when the top seasons were derived from the same records.
package domain
