package csvsource

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/couchcryptid/season-heatmap-service/internal/domain"
	"github.com/couchcryptid/season-heatmap-service/internal/observability"
)

// maxBodyBytes is the largest dataset accepted. Anything longer is rejected
// rather than truncated.
const maxBodyBytes = 8 << 20

// Client fetches the dataset CSV over HTTP.
type Client struct {
	url        string
	httpClient *http.Client
	attempts   uint
	delay      time.Duration
	maxBody    int64
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a client for the CSV at url. attempts counts the first
// try, so 1 disables retries.
func NewClient(url string, timeout time.Duration, attempts uint, metrics *observability.Metrics, logger *slog.Logger) *Client {
	if attempts == 0 {
		attempts = 1
	}
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		attempts: attempts,
		delay:    500 * time.Millisecond,
		maxBody:  maxBodyBytes,
		metrics:  metrics,
		logger:   logger,
	}
}

// Fetch downloads and parses the dataset. Network failures are retried;
// parse failures are returned immediately.
func (c *Client) Fetch(ctx context.Context) ([]domain.Record, error) {
	var records []domain.Record
	err := retry.Do(
		func() error {
			var err error
			records, err = c.fetchOnce(ctx)
			if errors.Is(err, domain.ErrParse) {
				return retry.Unrecoverable(err)
			}
			return err
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			c.metrics.FetchRetries.Inc()
			c.logger.Warn("dataset fetch failed, retrying",
				"url", c.url,
				"attempt", attempt+1,
				"error", err,
			)
		}),
	)
	if err != nil {
		if ctx.Err() != nil && !errors.Is(err, domain.ErrNetwork) && !errors.Is(err, domain.ErrParse) {
			return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
		}
		return nil, err
	}
	return records, nil
}

func (c *Client) fetchOnce(ctx context.Context) ([]domain.Record, error) {
	start := time.Now()
	defer func() {
		c.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %v", domain.ErrNetwork, c.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: fetch %s: status %d: %s", domain.ErrNetwork, c.url, resp.StatusCode, body)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrNetwork, c.url, err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("%w: dataset exceeds %d bytes", domain.ErrParse, c.maxBody)
	}
	return domain.ParseRecords(bytes.NewReader(body))
}

// File reads the dataset CSV from a local path.
type File struct {
	Path string
}

// Fetch opens and parses the file. A missing or unreadable file is an ErrNetwork.
func (f File) Fetch(_ context.Context) ([]domain.Record, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer fh.Close()
	return domain.ParseRecords(fh)
}
