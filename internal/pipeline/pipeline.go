package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/season-heatmap-service/internal/chart"
	"github.com/couchcryptid/season-heatmap-service/internal/domain"
	"github.com/couchcryptid/season-heatmap-service/internal/observability"
	"github.com/jonboulle/clockwork"
)

// ErrNotReady is returned by reads before the first dataset has loaded.
var ErrNotReady = errors.New("dataset not loaded")

// Source fetches the raw dataset records.
type Source interface {
	Fetch(ctx context.Context) ([]domain.Record, error)
}

// Publisher announces the per-year top seasons of each loaded dataset.
type Publisher interface {
	PublishTopSeasons(ctx context.Context, version uint64, loadedAt time.Time, tops []domain.YearTopSeason) error
}

// Snapshot is an immutable, loaded dataset.
type Snapshot struct {
	Version uint64
	Dataset *domain.Dataset
}

// Options holds the optional Service settings.
type Options struct {
	Layout    chart.Layout
	HostPage  string
	CacheSize int
	Clock     clockwork.Clock
	Publisher Publisher // nil disables publishing
}

// Service loads the dataset and renders views of it.
type Service struct {
	source    Source
	publisher Publisher
	layout    chart.Layout
	hostPage  string
	tooltip   chart.TooltipHandlers
	cache     *renderCache
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *observability.Metrics

	current atomic.Pointer[Snapshot]
	lastErr atomic.Pointer[error]
	version atomic.Uint64
}

// New creates a Service. It fails if the layout is inconsistent or the host
// page lacks a mount point.
func New(src Source, opts Options, logger *slog.Logger, metrics *observability.Metrics) (*Service, error) {
	if opts.Layout.Width == 0 {
		opts.Layout = chart.DefaultLayout()
	}
	if err := opts.Layout.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}
	if opts.HostPage == "" {
		opts.HostPage = chart.DefaultPage
	}
	if _, err := chart.Mount(strings.NewReader(opts.HostPage), chart.View{}); err != nil {
		return nil, fmt.Errorf("invalid host page: %w", err)
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}

	return &Service{
		source:    src,
		publisher: opts.Publisher,
		layout:    opts.Layout,
		hostPage:  opts.HostPage,
		tooltip:   chart.DefaultTooltip(opts.Layout),
		cache:     newRenderCache(opts.CacheSize),
		clock:     opts.Clock,
		logger:    logger,
		metrics:   metrics,
	}, nil
}

// CheckReadiness returns nil once a dataset has been loaded, or an error
// describing why the service is not yet ready.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.current.Load() != nil {
		return nil
	}
	if errp := s.lastErr.Load(); errp != nil {
		return fmt.Errorf("%w: %w", ErrNotReady, *errp)
	}
	return ErrNotReady
}

// Snapshot returns the current dataset, or ErrNotReady.
func (s *Service) Snapshot() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, s.CheckReadiness(context.Background())
	}
	return snap, nil
}

// Load fetches, aggregates, and installs a new dataset. On failure the
// previous dataset, if any, stays in place.
func (s *Service) Load(ctx context.Context) error {
	start := s.clock.Now()

	records, err := s.source.Fetch(ctx)
	if err == nil && len(records) == 0 {
		err = fmt.Errorf("%w: dataset has no records", domain.ErrParse)
	}
	var ds *domain.Dataset
	if err == nil {
		ds, err = domain.NewDataset(records)
	}
	if err != nil {
		s.lastErr.Store(&err)
		s.metrics.DatasetLoads.WithLabelValues(outcome(err)).Inc()
		s.logger.Error("dataset load failed", "error", err)
		return err
	}

	snap := &Snapshot{Version: s.version.Add(1), Dataset: ds}
	s.current.Store(snap)
	s.lastErr.Store(nil)

	s.metrics.DatasetLoads.WithLabelValues("success").Inc()
	s.metrics.DatasetRecords.Set(float64(len(ds.Records)))
	s.metrics.DatasetYears.Set(float64(len(ds.Years)))
	s.metrics.LoadDuration.Observe(s.clock.Since(start).Seconds())
	s.logger.Info("dataset loaded",
		"version", snap.Version,
		"records", len(ds.Records),
		"years", len(ds.Years),
		"seasons", len(ds.Seasons),
	)

	s.publish(ctx, snap)
	return nil
}

// publish is best-effort: failures are logged and counted but never undo a load.
func (s *Service) publish(ctx context.Context, snap *Snapshot) {
	if s.publisher == nil {
		return
	}
	tops := snap.Dataset.TopSeasons
	if err := s.publisher.PublishTopSeasons(ctx, snap.Version, snap.Dataset.LoadedAt, tops); err != nil {
		s.metrics.PublishErrors.Inc()
		s.logger.Warn("publish top seasons failed", "error", err, "version", snap.Version)
		return
	}
	s.metrics.MessagesPublished.Add(float64(len(tops)))
}

// Run loads the dataset, retrying with backoff until the first load succeeds,
// then reloads every interval until the context is cancelled. With a zero
// interval it returns after the first successful load.
func (s *Service) Run(ctx context.Context, interval time.Duration) error {
	// Exponential backoff: start at 200ms, double each retry, cap at 30s.
	backoff := 200 * time.Millisecond
	const maxBackoff = 30 * time.Second

	for {
		if err := s.Load(ctx); err == nil {
			break
		}
		if ctx.Err() != nil || !s.sleep(ctx, backoff) {
			s.logger.Info("dataset loader stopping", "reason", ctx.Err())
			return nil
		}
		backoff = nextBackoff(backoff, maxBackoff)
	}

	if interval <= 0 {
		return nil
	}

	s.logger.Info("dataset refresher started", "interval", interval)
	s.metrics.RefreshRunning.Set(1)
	defer s.metrics.RefreshRunning.Set(0)

	ticker := s.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("dataset refresher stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			_ = s.Load(ctx) // failures are logged by Load; the last good dataset keeps serving
		}
	}
}

func (s *Service) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	timer := s.clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func outcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrNetwork):
		return "network_error"
	case errors.Is(err, domain.ErrParse):
		return "parse_error"
	default:
		return "error"
	}
}
