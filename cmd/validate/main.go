// Command validate checks a seasonal movie-count CSV, an optional layout file,
// and an optional host page before they are deployed. It verifies the rows
// parse, that every year resolves to a top season, that the scales place and
// color every cell, and that the host page has both mount points.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -csv data/seasons_totals_tidy.csv \
//	  -layout deploy/layout.yaml \
//	  -page web/index.html
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/couchcryptid/season-heatmap-service/internal/adapter/csvsource"
	"github.com/couchcryptid/season-heatmap-service/internal/chart"
	"github.com/couchcryptid/season-heatmap-service/internal/config"
	"github.com/couchcryptid/season-heatmap-service/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	csvPath := flag.String("csv", "", "path to the dataset CSV")
	layoutPath := flag.String("layout", "", "optional YAML layout file")
	pagePath := flag.String("page", "", "optional host page HTML")
	flag.Parse()

	if *csvPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(*csvPath, *layoutPath, *pagePath))
}

func run(csvPath, layoutPath, pagePath string) int {
	fmt.Println("=== Season Heatmap Validation ===")
	fmt.Println()

	records, err := csvsource.File{Path: csvPath}.Fetch(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load CSV: %v\n", err)
		return 1
	}
	layout, err := config.LoadLayout(layoutPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}
	page, err := config.LoadHostPage(pagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	ds, dsPhase := validateDataset(records)
	phases := []*phase{dsPhase}
	if ds != nil {
		phases = append(phases, validateTopSeasons(ds), validateScales(ds, layout))
	}
	phases = append(phases, validatePage(page))

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-36s %s\n", p.name, status)
	}

	fmt.Println()
	if ds != nil {
		fmt.Printf("Records: %d rows, %d years, %d seasons\n", len(ds.Records), len(ds.Years), len(ds.Seasons))
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: Dataset ──

func validateDataset(records []domain.Record) (*domain.Dataset, *phase) {
	p := &phase{name: "Phase 1: Dataset"}

	if len(records) == 0 {
		p.errorf("no data rows")
		return nil, p
	}

	seen := make(map[string]int, len(records))
	for i, r := range records {
		if r.Year == "" || r.Season == "" {
			p.errorf("row %d: empty year or season", i+1)
		}
		if prev, ok := seen[r.Key()]; ok {
			p.errorf("row %d: duplicate cell %s (first seen at row %d)", i+1, r.Key(), prev)
			continue
		}
		seen[r.Key()] = i + 1
	}

	ds, err := domain.NewDataset(records)
	if err != nil {
		p.errorf("aggregate: %v", err)
		return nil, p
	}
	return ds, p
}

// ── Phase 2: Top seasons ──
// Recomputes each year's maximum independently and checks the annotation.

func validateTopSeasons(ds *domain.Dataset) *phase {
	p := &phase{name: "Phase 2: Top seasons"}

	best := map[string]domain.Record{}
	for _, r := range ds.Records {
		if cur, ok := best[r.Year]; !ok || r.Count > cur.Count {
			best[r.Year] = r
		}
	}

	if len(ds.TopSeasons) != len(ds.Years) {
		p.errorf("expected %d top seasons, got %d", len(ds.Years), len(ds.TopSeasons))
	}
	for _, ts := range ds.TopSeasons {
		want := best[ts.Year]
		if ts.TopSeason != want.Season || ts.Count != want.Count {
			p.errorf("year %s: top season %s (%d), expected %s (%d)", ts.Year, ts.TopSeason, ts.Count, want.Season, want.Count)
		}
	}
	for _, r := range ds.Records {
		if r.TopSeason != best[r.Year].Season {
			p.errorf("cell %s: annotated %q, expected %q", r.Key(), r.TopSeason, best[r.Year].Season)
		}
	}
	return p
}

// ── Phase 3: Scales ──

func validateScales(ds *domain.Dataset, layout chart.Layout) *phase {
	p := &phase{name: "Phase 3: Scales"}

	colors, err := chart.Palette(chart.DefaultPalette)
	if err != nil {
		p.errorf("palette: %v", err)
		return p
	}
	scales, err := chart.BuildScales(ds, layout, colors)
	if err != nil {
		p.errorf("build scales: %v", err)
		return p
	}

	first, _ := scales.Y.Position(ds.Years[0])
	last, _ := scales.Y.Position(ds.Years[len(ds.Years)-1])
	if len(ds.Years) > 1 && first >= last {
		p.errorf("earliest year %s is not drawn above latest year %s", ds.Years[0], ds.Years[len(ds.Years)-1])
	}

	used := map[string]int{}
	for _, r := range ds.Records {
		if _, ok := scales.X.Position(r.Season); !ok {
			p.errorf("cell %s: season has no column", r.Key())
		}
		if _, ok := scales.Y.Position(r.Year); !ok {
			p.errorf("cell %s: year has no row", r.Key())
		}
		used[scales.Color.Color(float64(r.Count))]++
	}

	var dist []string
	for _, c := range scales.Color.Colors() {
		dist = append(dist, fmt.Sprintf("%s=%d", c, used[c]))
	}
	fmt.Printf("  Color buckets: %s\n", strings.Join(dist, " "))
	return p
}

// ── Phase 4: Host page ──

func validatePage(page string) *phase {
	p := &phase{name: "Phase 4: Host page"}
	if _, err := chart.Mount(strings.NewReader(page), chart.View{}); err != nil {
		p.errorf("%v", err)
	}
	return p
}
