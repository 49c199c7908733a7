package chart

import (
	"errors"
	"fmt"
)

// Host page container ids.
const (
	ChartMountID  = "my_dataviz"
	LegendMountID = "legend"
)

// Margin is the space reserved around the plot area.
type Margin struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
}

// Layout holds every dimension and label used to draw the chart.
type Layout struct {
	Width   float64 `yaml:"width"`  // total SVG width including margins
	Height  float64 `yaml:"height"` // total SVG height including margins
	Margin  Margin  `yaml:"margin"`
	Padding float64 `yaml:"padding"` // band padding fraction

	Title            string  `yaml:"title"`
	TitleFontSize    float64 `yaml:"title_font_size"`
	Subtitle         string  `yaml:"subtitle"`
	SubtitleFontSize float64 `yaml:"subtitle_font_size"`
	AxisFontSize     float64 `yaml:"axis_font_size"`

	CellRadius  float64 `yaml:"cell_radius"`
	StrokeColor string  `yaml:"stroke_color"`
	StrokeWidth float64 `yaml:"stroke_width"`
	CellOpacity float64 `yaml:"cell_opacity"`

	LegendWidth   float64  `yaml:"legend_width"`
	LegendSwatch  float64  `yaml:"legend_swatch"`
	LegendSpacing float64  `yaml:"legend_spacing"`
	LegendLabels  []string `yaml:"legend_labels"`
	CountLabel    string   `yaml:"count_label"`
}

// DefaultLayout returns the standard 750x750 heatmap layout.
func DefaultLayout() Layout {
	return Layout{
		Width:   750,
		Height:  750,
		Margin:  Margin{Top: 80, Right: 25, Bottom: 30, Left: 40},
		Padding: 0.05,

		Title:            "A d3.js heatmap",
		TitleFontSize:    22,
		Subtitle:         "A short description of the take-away message of this chart.",
		SubtitleFontSize: 14,
		AxisFontSize:     15,

		CellRadius:  4,
		StrokeColor: "black",
		StrokeWidth: 2,
		CellOpacity: 0.8,

		LegendWidth:   200,
		LegendSwatch:  20,
		LegendSpacing: 30,
		LegendLabels:  []string{"least movies", "", "", "", "most movies"},
		CountLabel:    "Number of movies",
	}
}

// PlotWidth is the drawable width inside the margins.
func (l Layout) PlotWidth() float64 { return l.Width - l.Margin.Left - l.Margin.Right }

// PlotHeight is the drawable height inside the margins.
func (l Layout) PlotHeight() float64 { return l.Height - l.Margin.Top - l.Margin.Bottom }

// Validate reports every inconsistent dimension.
func (l Layout) Validate() error {
	var errs []error
	if l.PlotWidth() <= 0 {
		errs = append(errs, fmt.Errorf("plot width %g must be positive", l.PlotWidth()))
	}
	if l.PlotHeight() <= 0 {
		errs = append(errs, fmt.Errorf("plot height %g must be positive", l.PlotHeight()))
	}
	if l.Padding < 0 || l.Padding >= 1 {
		errs = append(errs, fmt.Errorf("padding %g must be in [0, 1)", l.Padding))
	}
	if l.CellOpacity < 0 || l.CellOpacity > 1 {
		errs = append(errs, fmt.Errorf("cell opacity %g must be in [0, 1]", l.CellOpacity))
	}
	return errors.Join(errs...)
}
