package chart

import (
	"strings"
	"testing"

	"github.com/couchcryptid/season-heatmap-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func testDataset(t *testing.T) *domain.Dataset {
	t.Helper()
	records := []domain.Record{
		{Year: "2020", Season: "Summer", Count: 10},
		{Year: "2020", Season: "Winter", Count: 25},
		{Year: "2021", Season: "Summer", Count: 5},
		{Year: "2021", Season: "Winter", Count: 7},
		{Year: "2022", Season: "Summer", Count: 40},
		{Year: "2022", Season: "Winter", Count: 2},
	}
	ds, err := domain.NewDataset(records)
	require.NoError(t, err)
	return ds
}

func renderTestHeatmap(t *testing.T, ds *domain.Dataset) (*html.Node, Scales) {
	t.Helper()
	layout := DefaultLayout()
	colors, err := Palette(DefaultPalette)
	require.NoError(t, err)
	scales, err := BuildScales(ds, layout, colors)
	require.NoError(t, err)
	svg, err := RenderHeatmap(ds, scales, layout)
	require.NoError(t, err)
	return svg, scales
}

func cellsOf(root *html.Node) []*html.Node {
	return FindAll(root, func(n *html.Node) bool { return n.Data == "rect" && HasClass(n, "cell") })
}

func attr(t *testing.T, n *html.Node, key string) string {
	t.Helper()
	v, ok := Attr(n, key)
	require.True(t, ok, "missing attribute %q", key)
	return v
}

func TestBuildScales(t *testing.T) {
	ds := testDataset(t)
	_, scales := renderTestHeatmap(t, ds)

	assert.Equal(t, []string{"Summer", "Winter"}, scales.X.Domain())
	assert.Equal(t, []string{"2022", "2021", "2020"}, scales.Y.Domain())

	first, _ := scales.Y.Position("2020")
	last, _ := scales.Y.Position("2022")
	assert.Less(t, first, last, "earliest year is drawn at the top")
}

func TestBuildScales_Empty(t *testing.T) {
	_, err := BuildScales(&domain.Dataset{}, DefaultLayout(), []string{"#fff"})
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestRenderHeatmap(t *testing.T) {
	ds := testDataset(t)
	svg, scales := renderTestHeatmap(t, ds)

	assert.Equal(t, "750", attr(t, svg, "width"))
	assert.Equal(t, "750", attr(t, svg, "height"))
	assert.Equal(t, "translate(40,80)", attr(t, svg.FirstChild, "transform"))

	cells := cellsOf(svg)
	require.Len(t, cells, len(ds.Records))

	for i, cell := range cells {
		r := ds.Records[i]
		x, _ := scales.X.Position(r.Season)
		y, _ := scales.Y.Position(r.Year)

		assert.Equal(t, px(x), attr(t, cell, "x"))
		assert.Equal(t, px(y), attr(t, cell, "y"))
		assert.Equal(t, px(scales.X.Bandwidth()), attr(t, cell, "width"))
		assert.Equal(t, px(scales.Y.Bandwidth()), attr(t, cell, "height"))
		assert.Equal(t, "4", attr(t, cell, "rx"))
		assert.Equal(t, "4", attr(t, cell, "ry"))
		assert.Equal(t, "black", attr(t, cell, "stroke"))
		assert.Equal(t, "2", attr(t, cell, "stroke-width"))
		assert.Equal(t, "0.8", attr(t, cell, "opacity"))
		assert.Equal(t, scales.Color.Color(float64(r.Count)), attr(t, cell, "fill"))
		assert.Equal(t, r.TopSeason, attr(t, cell, "data-top-season"))
		assert.Equal(t, r.Year, attr(t, cell, "data-year"))
	}
}

func TestRenderHeatmap_AxisShowsSeasonsOnly(t *testing.T) {
	svg, _ := renderTestHeatmap(t, testDataset(t))

	ticks := FindAll(svg, func(n *html.Node) bool { return HasClass(n, "tick") })
	require.Len(t, ticks, 2)
	assert.Equal(t, "Summer", ticks[0].FirstChild.FirstChild.Data)
	assert.Equal(t, "Winter", ticks[1].FirstChild.FirstChild.Data)

	paths := FindAll(svg, func(n *html.Node) bool { return n.Data == "path" })
	assert.Empty(t, paths, "axis domain line must not be drawn")

	out, err := Render(svg)
	require.NoError(t, err)
	assert.NotContains(t, string(out), ">2021</text>", "years are not labelled on an axis")
}

func TestRenderHeatmap_TitleAndSubtitle(t *testing.T) {
	svg, _ := renderTestHeatmap(t, testDataset(t))

	out, err := Render(svg)
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, `y="-50"`)
	assert.Contains(t, s, `font-size="22px"`)
	assert.Contains(t, s, "A d3.js heatmap")
	assert.Contains(t, s, `fill="grey"`)
}

func TestRenderHeatmap_Idempotent(t *testing.T) {
	ds := testDataset(t)
	a, _ := renderTestHeatmap(t, ds)
	b, _ := renderTestHeatmap(t, ds)

	outA, err := Render(a)
	require.NoError(t, err)
	outB, err := Render(b)
	require.NoError(t, err)
	assert.Equal(t, string(outA), string(outB))
}

func TestRenderHeatmap_EscapesLabels(t *testing.T) {
	ds, err := domain.NewDataset([]domain.Record{{Year: "2020", Season: "<Winter & co>", Count: 1}})
	require.NoError(t, err)
	svg, _ := renderTestHeatmap(t, ds)

	out, err := Render(svg)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<Winter")
	assert.True(t, strings.Contains(string(out), "&lt;Winter &amp; co&gt;"))
}

func TestRenderHeatmap_Empty(t *testing.T) {
	_, err := RenderHeatmap(&domain.Dataset{}, Scales{}, DefaultLayout())
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestRenderLegend(t *testing.T) {
	colors, err := Palette("blues")
	require.NoError(t, err)

	svg := RenderLegend(colors, DefaultLayout())

	assert.Equal(t, "200", attr(t, svg, "width"))
	swatches := FindAll(svg, func(n *html.Node) bool { return HasClass(n, "swatch") })
	require.Len(t, swatches, 5)
	for i, s := range swatches {
		assert.Equal(t, colors[i], attr(t, s, "fill"))
		assert.Equal(t, px(float64(i*30)), attr(t, s, "y"))
		assert.Equal(t, "20", attr(t, s, "width"))
	}

	labels := FindAll(svg, func(n *html.Node) bool { return HasClass(n, "swatch-label") })
	require.Len(t, labels, 5)
	assert.Equal(t, "least movies", labels[0].FirstChild.Data)
	assert.Equal(t, "most movies", labels[4].FirstChild.Data)
	for _, l := range labels[1:4] {
		assert.Empty(t, l.FirstChild.Data)
	}
	assert.Equal(t, "30", attr(t, labels[0], "x"))
	assert.Equal(t, "15", attr(t, labels[0], "y"))
}

func TestPalette(t *testing.T) {
	colors, err := Palette("")
	require.NoError(t, err)
	assert.Len(t, colors, 5)
	assert.Equal(t, "#54278f", colors[4])

	_, err = Palette("rainbow")
	assert.ErrorIs(t, err, ErrUnknownPalette)

	assert.Contains(t, PaletteNames(), "greys")
}

func TestLayout_Validate(t *testing.T) {
	require.NoError(t, DefaultLayout().Validate())

	l := DefaultLayout()
	l.Width = 10
	l.Padding = 1
	err := l.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plot width")
	assert.Contains(t, err.Error(), "padding")
}
