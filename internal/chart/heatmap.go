package chart

import (
	"fmt"
	"strconv"

	"github.com/couchcryptid/season-heatmap-service/internal/domain"
	"golang.org/x/net/html"
)

// Axis tick text sits this far above the top edge.
const axisTickPadding = 3

// RenderHeatmap draws one cell per record plus the season axis, title, and
// subtitle. Cells carry data-* attributes consumed by the tooltip handlers.
func RenderHeatmap(ds *domain.Dataset, scales Scales, layout Layout) (*html.Node, error) {
	if ds == nil || len(ds.Records) == 0 {
		return nil, ErrEmptyDataset
	}

	svg := el("svg",
		"xmlns", svgNS,
		"class", "heatmap",
		"width", px(layout.Width),
		"height", px(layout.Height),
	)
	root := el("g", "transform", translate(layout.Margin.Left, layout.Margin.Top))
	svg.AppendChild(root)

	root.AppendChild(textEl("text", layout.Title,
		"class", "title",
		"x", "0",
		"y", "-50",
		"text-anchor", "start",
		"font-size", px(layout.TitleFontSize)+"px",
	))
	root.AppendChild(textEl("text", layout.Subtitle,
		"class", "subtitle",
		"x", "0",
		"y", "-20",
		"text-anchor", "start",
		"font-size", px(layout.SubtitleFontSize)+"px",
		"fill", "grey",
	))

	root.AppendChild(seasonAxis(scales.X, layout))

	cells := el("g", "class", "cells")
	root.AppendChild(cells)
	for _, r := range ds.Records {
		cell, err := renderCell(r, scales, layout)
		if err != nil {
			return nil, err
		}
		cells.AppendChild(cell)
	}

	return svg, nil
}

// seasonAxis renders the top axis labels without the domain line.
func seasonAxis(x *BandScale, layout Layout) *html.Node {
	axis := el("g",
		"class", "axis axis-x",
		"transform", translate(0, 0),
		"font-size", px(layout.AxisFontSize),
		"font-family", "sans-serif",
		"text-anchor", "middle",
		"fill", "none",
	)
	for _, season := range x.Domain() {
		cx, _ := x.Center(season)
		tick := el("g", "class", "tick", "opacity", "1", "transform", translate(cx, 0))
		tick.AppendChild(textEl("text", season,
			"fill", "currentColor",
			"y", px(-axisTickPadding),
			"dy", "0em",
		))
		axis.AppendChild(tick)
	}
	return axis
}

func renderCell(r domain.Record, scales Scales, layout Layout) (*html.Node, error) {
	x, ok := scales.X.Position(r.Season)
	if !ok {
		return nil, fmt.Errorf("%w: season %q not on the x scale", domain.ErrLookup, r.Season)
	}
	y, ok := scales.Y.Position(r.Year)
	if !ok {
		return nil, fmt.Errorf("%w: year %q not on the y scale", domain.ErrLookup, r.Year)
	}

	count := strconv.Itoa(r.Count)
	cell := el("rect",
		"class", "cell",
		"x", px(x),
		"y", px(y),
		"rx", px(layout.CellRadius),
		"ry", px(layout.CellRadius),
		"width", px(scales.X.Bandwidth()),
		"height", px(scales.Y.Bandwidth()),
		"fill", scales.Color.Color(float64(r.Count)),
		"stroke", layout.StrokeColor,
		"stroke-width", px(layout.StrokeWidth),
		"opacity", px(layout.CellOpacity),
		"data-key", r.Key(),
		"data-year", r.Year,
		"data-season", r.Season,
		"data-count", count,
		"data-top-season", r.TopSeason,
	)
	cell.AppendChild(textEl("title", fmt.Sprintf("%s: %s (%s, %s)", layout.CountLabel, count, r.Season, r.Year)))
	return cell, nil
}
