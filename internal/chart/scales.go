package chart

import (
	"slices"

	"github.com/couchcryptid/season-heatmap-service/internal/domain"
)

// Scales are the three mappings used to place and color cells.
type Scales struct {
	X     *BandScale     // season -> horizontal band
	Y     *BandScale     // year -> vertical band, earliest year on top
	Color *QuantileScale // count -> palette entry
}

// BuildScales derives the heatmap scales from a dataset.
func BuildScales(ds *domain.Dataset, layout Layout, colors []string) (Scales, error) {
	if ds == nil || len(ds.Records) == 0 {
		return Scales{}, ErrEmptyDataset
	}

	years := slices.Clone(ds.Years)
	slices.Reverse(years)

	color, err := NewQuantileScale(ds.Counts(), colors)
	if err != nil {
		return Scales{}, err
	}

	return Scales{
		X:     NewBandScale(ds.Seasons, 0, layout.PlotWidth(), layout.Padding),
		Y:     NewBandScale(years, layout.PlotHeight(), 0, layout.Padding),
		Color: color,
	}, nil
}
