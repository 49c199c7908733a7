// Command render loads the dataset once and writes the host page with the
// heatmap and legend mounted into it. It is the offline counterpart of the
// heatmap service.
//
// Usage:
//
//	go run ./cmd/render \
//	  -src https://example.com/seasons_totals_tidy.csv \
//	  -page web/index.html \
//	  -palette blues \
//	  -out heatmap.html
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/couchcryptid/season-heatmap-service/internal/adapter/csvsource"
	"github.com/couchcryptid/season-heatmap-service/internal/chart"
	"github.com/couchcryptid/season-heatmap-service/internal/config"
	"github.com/couchcryptid/season-heatmap-service/internal/observability"
	"github.com/couchcryptid/season-heatmap-service/internal/pipeline"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	src := flag.String("src", config.DefaultDataURL, "dataset CSV: http(s) URL or local path")
	out := flag.String("out", "", "output file (default stdout)")
	page := flag.String("page", "", "host page HTML (default built-in page)")
	layoutFile := flag.String("layout", "", "YAML layout overrides")
	palette := flag.String("palette", chart.DefaultPalette, "color scheme: "+strings.Join(chart.PaletteNames(), ", "))
	view := flag.String("view", pipeline.ViewPage, "what to write: page, chart, or legend")
	timeout := flag.Duration("timeout", 30*time.Second, "overall fetch timeout")
	flag.Parse()

	logger := observability.NewLogger("warn", "text")
	metrics := observability.NewMetricsForTesting()

	layout, err := config.LoadLayout(*layoutFile)
	if err != nil {
		return err
	}
	hostPage, err := config.LoadHostPage(*page)
	if err != nil {
		return err
	}

	var source pipeline.Source = csvsource.File{Path: *src}
	if strings.HasPrefix(*src, "http://") || strings.HasPrefix(*src, "https://") {
		source = csvsource.NewClient(*src, *timeout, 3, metrics, logger)
	}

	svc, err := pipeline.New(source, pipeline.Options{Layout: layout, HostPage: hostPage}, logger, metrics)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	if err := svc.Load(ctx); err != nil {
		return fmt.Errorf("load %s: %w", *src, err)
	}

	body, err := svc.Render(*view, *palette)
	if err != nil {
		return err
	}

	if *out == "" {
		_, err := os.Stdout.Write(body)
		return err
	}
	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := writeAndClose(f, body); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %d bytes to %s\n", len(body), *out)
	return nil
}

// writeAndClose writes body and closes w, reporting a failed close since
// buffered data may not have reached the file.
func writeAndClose(w io.WriteCloser, body []byte) error {
	if _, err := w.Write(body); err != nil {
		_ = w.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}
