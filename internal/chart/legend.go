package chart

import "golang.org/x/net/html"

// RenderLegend draws one swatch per palette color, stacked vertically, with
// the layout's legend labels beside them. It does not depend on any data.
func RenderLegend(colors []string, layout Layout) *html.Node {
	svg := el("svg",
		"xmlns", svgNS,
		"class", "legend",
		"width", px(layout.LegendWidth),
		"height", px(layout.Height),
	)
	g := el("g", "transform", translate(0, layout.Margin.Top))
	svg.AppendChild(g)

	for i, c := range colors {
		g.AppendChild(el("rect",
			"class", "swatch",
			"x", "0",
			"y", px(float64(i)*layout.LegendSpacing),
			"width", px(layout.LegendSwatch),
			"height", px(layout.LegendSwatch),
			"fill", c,
		))
	}

	for i := range colors {
		label := ""
		if i < len(layout.LegendLabels) {
			label = layout.LegendLabels[i]
		}
		g.AppendChild(textEl("text", label,
			"class", "swatch-label",
			"x", px(layout.LegendSwatch+10),
			"y", px(float64(i)*layout.LegendSpacing+15),
			"font-size", "12px",
		))
	}

	return svg
}
