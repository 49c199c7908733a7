package chart

import (
	"errors"
	"math"
	"slices"
	"sort"
)

// ErrEmptyDataset is returned when a scale has nothing to map.
var ErrEmptyDataset = errors.New("empty dataset")

// BandScale maps discrete categories to equal-width bands of a pixel range.
type BandScale struct {
	domain    []string
	index     map[string]int
	positions []float64
	step      float64
	bandwidth float64
}

// NewBandScale lays the domain out over [r0, r1] with equal inner and outer
// padding and centered alignment. A reversed range (r0 > r1) assigns the first
// category to the band nearest r0. Repeated categories keep their first
// position and do not take a band of their own.
func NewBandScale(domain []string, r0, r1, padding float64) *BandScale {
	const align = 0.5

	index := make(map[string]int, len(domain))
	unique := make([]string, 0, len(domain))
	for _, v := range domain {
		if _, ok := index[v]; ok {
			continue
		}
		index[v] = len(unique)
		unique = append(unique, v)
	}

	n := len(unique)
	reverse := r1 < r0
	start, stop := r0, r1
	if reverse {
		start, stop = r1, r0
	}

	step := (stop - start) / math.Max(1, float64(n)-padding+padding*2)
	start += (stop - start - step*(float64(n)-padding)) * align

	positions := make([]float64, n)
	for i := range positions {
		positions[i] = start + step*float64(i)
	}
	if reverse {
		slices.Reverse(positions)
	}

	return &BandScale{
		domain:    unique,
		index:     index,
		positions: positions,
		step:      step,
		bandwidth: step * (1 - padding),
	}
}

// Position returns the start of the band for v.
func (s *BandScale) Position(v string) (float64, bool) {
	i, ok := s.index[v]
	if !ok {
		return 0, false
	}
	return s.positions[i], true
}

// Center returns the midpoint of the band for v.
func (s *BandScale) Center(v string) (float64, bool) {
	p, ok := s.Position(v)
	return p + s.bandwidth/2, ok
}

// Bandwidth is the width of each band.
func (s *BandScale) Bandwidth() float64 { return s.bandwidth }

// Step is the distance between the starts of adjacent bands.
func (s *BandScale) Step() float64 { return s.step }

// Domain returns the categories in scale order.
func (s *BandScale) Domain() []string { return slices.Clone(s.domain) }

// QuantileScale maps numbers to a discrete palette so that each color covers
// an equal share of the observed values.
type QuantileScale struct {
	colors     []string
	thresholds []float64
}

// NewQuantileScale computes len(colors)-1 cut-points over values.
func NewQuantileScale(values []float64, colors []string) (*QuantileScale, error) {
	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			sorted = append(sorted, v)
		}
	}
	if len(sorted) == 0 || len(colors) == 0 {
		return nil, ErrEmptyDataset
	}
	sort.Float64s(sorted)

	k := len(colors)
	thresholds := make([]float64, 0, k-1)
	for i := 1; i < k; i++ {
		thresholds = append(thresholds, quantileSorted(sorted, i, k))
	}

	return &QuantileScale{colors: slices.Clone(colors), thresholds: thresholds}, nil
}

// Bucket returns the palette index for v.
func (s *QuantileScale) Bucket(v float64) int {
	return sort.Search(len(s.thresholds), func(i int) bool { return s.thresholds[i] > v })
}

// Color returns the palette entry for v.
func (s *QuantileScale) Color(v float64) string {
	return s.colors[s.Bucket(v)]
}

// Thresholds returns the cut-points between buckets.
func (s *QuantileScale) Thresholds() []float64 { return slices.Clone(s.thresholds) }

// Colors returns the output palette.
func (s *QuantileScale) Colors() []string { return slices.Clone(s.colors) }

// quantileSorted is the R-7 quantile of sorted at p = num/den.
func quantileSorted(sorted []float64, num, den int) float64 {
	n := len(sorted)
	if n == 1 || num <= 0 {
		return sorted[0]
	}
	if num >= den {
		return sorted[n-1]
	}
	h := float64((n-1)*num) / float64(den)
	i0 := int(math.Floor(h))
	v0 := sorted[i0]
	if i0+1 >= n {
		return v0
	}
	return v0 + (sorted[i0+1]-v0)*(h-float64(i0))
}
