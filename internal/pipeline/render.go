package pipeline

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/couchcryptid/season-heatmap-service/internal/chart"
	"github.com/couchcryptid/season-heatmap-service/internal/domain"
	"golang.org/x/net/html"
)

// ErrUnknownView is returned for a view name Render does not produce.
var ErrUnknownView = errors.New("unknown view")

// View names accepted by Render.
const (
	ViewPage   = "page"
	ViewChart  = "chart"
	ViewLegend = "legend"
)

// Render produces the named view of the current dataset using a palette.
// Results are cached per dataset version. Before the first successful load,
// the chart and page views return an error-state body together with
// ErrNotReady so callers can still show something.
func (s *Service) Render(view, palette string) ([]byte, error) {
	if palette == "" {
		palette = chart.DefaultPalette
	}
	colors, err := chart.Palette(palette)
	if err != nil {
		return nil, err
	}
	if view != ViewPage && view != ViewChart && view != ViewLegend {
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, view)
	}

	// The legend does not depend on the data.
	if view == ViewLegend {
		return s.cachedRender(cacheKey(0, view, palette), view, func() (*html.Node, error) {
			return chart.RenderLegend(colors, s.layout), nil
		})
	}

	snap, err := s.Snapshot()
	if err != nil {
		body, rerr := s.renderUnavailable(view, colors, err)
		if rerr != nil {
			return nil, rerr
		}
		return body, err
	}

	return s.cachedRender(cacheKey(snap.Version, view, palette), view, func() (*html.Node, error) {
		heatmap, err := s.renderHeatmap(snap.Dataset, colors)
		if err != nil {
			return nil, err
		}
		if view == ViewChart {
			return heatmap, nil
		}
		return chart.Mount(strings.NewReader(s.hostPage), chart.View{
			Chart:   heatmap,
			Legend:  chart.RenderLegend(colors, s.layout),
			Tooltip: s.tooltip,
		})
	})
}

// TopSeasons returns the per-year winners of the current dataset.
func (s *Service) TopSeasons() ([]domain.YearTopSeason, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Dataset.TopSeasons, nil
}

func (s *Service) renderHeatmap(ds *domain.Dataset, colors []string) (*html.Node, error) {
	scales, err := chart.BuildScales(ds, s.layout, colors)
	if err != nil {
		return nil, err
	}
	return chart.RenderHeatmap(ds, scales, s.layout)
}

func (s *Service) renderUnavailable(view string, colors []string, cause error) ([]byte, error) {
	placeholder := chart.ErrorSVG(s.layout, cause)
	if view == ViewChart {
		return chart.Render(placeholder)
	}
	doc, err := chart.Mount(strings.NewReader(s.hostPage), chart.View{
		Chart:   placeholder,
		Legend:  chart.RenderLegend(colors, s.layout),
		Tooltip: s.tooltip,
	})
	if err != nil {
		return nil, err
	}
	return chart.Render(doc)
}

func (s *Service) cachedRender(key, view string, build func() (*html.Node, error)) ([]byte, error) {
	if body, ok := s.cache.get(key); ok {
		s.metrics.RenderCache.WithLabelValues("hit").Inc()
		return body, nil
	}
	s.metrics.RenderCache.WithLabelValues("miss").Inc()

	start := s.clock.Now()
	node, err := build()
	if err == nil {
		var body []byte
		body, err = chart.Render(node)
		if err == nil {
			s.metrics.RenderDuration.WithLabelValues(view).Observe(s.clock.Since(start).Seconds())
			s.cache.put(key, body)
			return body, nil
		}
	}
	s.metrics.RenderErrors.WithLabelValues(view).Inc()
	s.logger.Error("render failed", "view", view, "error", err)
	return nil, fmt.Errorf("render %s: %w", view, err)
}

func cacheKey(version uint64, view, palette string) string {
	return strconv.FormatUint(version, 10) + "|" + view + "|" + palette
}
