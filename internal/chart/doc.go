// Package chart renders the season heatmap and its legend as SVG trees.
//
// Rendering is pure: a [Layout] and a dataset go in, [Scales] and
// golang.org/x/net/html nodes come out. Nothing is kept between calls, so
// rendering the same dataset twice yields identical output.
//
// Scales follow the usual band/quantile definitions:
//
//	band:     step = span / max(1, n - inner + 2*outer)
//	          start += (span - step*(n - inner)) * align
//	quantile: thresholds are the R-7 quantiles at i/k, i = 1..k-1,
//	          and a value maps to bucket bisectRight(thresholds, value).
//
// The rendered subtrees are attached to a host page by [Mount], which requires
// the page to provide the chart and legend containers.
package chart
