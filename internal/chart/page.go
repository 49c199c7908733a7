package chart

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ErrMissingMountPoint is returned when the host page lacks a container.
var ErrMissingMountPoint = errors.New("missing mount point")

// DefaultPage is the host page used when none is configured.
const DefaultPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Movies per season</title>
<style>
body { font-family: sans-serif; margin: 1rem; }
.charts { display: flex; align-items: flex-start; }
#my_dataviz { position: relative; }
.tooltip { position: absolute; pointer-events: none; background: #fff; border: 1px solid #ccc; border-radius: 4px; padding: 6px 8px; font-size: 12px; }
.tooltip-count { border-bottom: 8px groove #1c87c9; margin-bottom: 4px; }
</style>
</head>
<body>
<div class="charts">
<div id="my_dataviz"></div>
<div id="legend"></div>
</div>
</body>
</html>
`

// View is everything Mount places into a host page.
type View struct {
	Chart   *html.Node
	Legend  *html.Node
	Tooltip TooltipHandlers
}

// Mount parses the host page and attaches the view's subtrees to the chart
// and legend containers. Both containers must exist.
func Mount(page io.Reader, v View) (*html.Node, error) {
	doc, err := html.Parse(page)
	if err != nil {
		return nil, fmt.Errorf("parse host page: %w", err)
	}

	chartMount := FindByID(doc, ChartMountID)
	legendMount := FindByID(doc, LegendMountID)
	var missing []string
	if chartMount == nil {
		missing = append(missing, "#"+ChartMountID)
	}
	if legendMount == nil {
		missing = append(missing, "#"+LegendMountID)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingMountPoint, strings.Join(missing, ", "))
	}

	if v.Chart != nil {
		chartMount.AppendChild(v.Chart)
		chartMount.AppendChild(v.Tooltip.Element())
		chartMount.AppendChild(v.Tooltip.Script())
	}
	if v.Legend != nil {
		legendMount.AppendChild(v.Legend)
	}
	return doc, nil
}

// ErrorSVG is a visible placeholder shown in place of the chart when the
// dataset could not be loaded.
func ErrorSVG(layout Layout, err error) *html.Node {
	svg := el("svg",
		"xmlns", svgNS,
		"class", "heatmap-error",
		"width", px(layout.Width),
		"height", px(layout.Height),
	)
	svg.AppendChild(textEl("text", "Chart unavailable: "+err.Error(),
		"x", px(layout.Width/2),
		"y", px(layout.Height/2),
		"text-anchor", "middle",
		"fill", "red",
		"font-size", "14px",
	))
	return svg
}
