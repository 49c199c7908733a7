package kafka

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/season-heatmap-service/internal/config"
	"github.com/couchcryptid/season-heatmap-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeToMessage(t *testing.T) {
	loadedAt := time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC)
	ts := domain.YearTopSeason{Year: "2020", TopSeason: "Winter", Count: 25}

	msg, err := serializeToMessage(ts, 7, loadedAt)
	require.NoError(t, err)

	assert.Equal(t, []byte("2020"), msg.Key)
	assert.JSONEq(t, `{"year":"2020","top_season":"Winter","count":25,"loaded_at":"2024-04-26T15:10:00Z"}`, string(msg.Value))
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "dataset_version", msg.Headers[0].Key)
	assert.Equal(t, []byte("7"), msg.Headers[0].Value)
	assert.Equal(t, "loaded_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(loadedAt.Format(time.RFC3339)), msg.Headers[1].Value)
}

func TestPublishTopSeasons_EmptyIsNoop(t *testing.T) {
	w := NewWriter(&config.Config{KafkaBrokers: []string{"localhost:1"}, KafkaTopic: "unused"},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, w.PublishTopSeasons(context.Background(), 1, time.Now(), nil))
}
