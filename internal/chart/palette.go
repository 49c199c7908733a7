package chart

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// ErrUnknownPalette is returned for palette names with no color scheme.
var ErrUnknownPalette = errors.New("unknown palette")

// DefaultPalette is used when no palette is requested.
const DefaultPalette = "purples"

// Five-step sequential schemes, lightest first.
var palettes = map[string][]string{
	"purples": {"#f2f0f7", "#cbc9e2", "#9e9ac8", "#756bb1", "#54278f"},
	"blues":   {"#eff3ff", "#bdd7e7", "#6baed6", "#3182bd", "#08519c"},
	"greens":  {"#edf8e9", "#bae4b3", "#74c476", "#31a354", "#006d2c"},
	"oranges": {"#feedde", "#fdbe85", "#fd8d3c", "#e6550d", "#a63603"},
	"reds":    {"#fee5d9", "#fcae91", "#fb6a4a", "#de2d26", "#a50f15"},
	"greys":   {"#f7f7f7", "#cccccc", "#969696", "#636363", "#252525"},
}

// Palette returns a copy of the named color scheme. An empty name selects
// DefaultPalette.
func Palette(name string) ([]string, error) {
	if name == "" {
		name = DefaultPalette
	}
	colors, ok := palettes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPalette, name)
	}
	return slices.Clone(colors), nil
}

// PaletteNames lists the available schemes in sorted order.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
