package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/season-heatmap-service/internal/config"
	"github.com/couchcryptid/season-heatmap-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes per-year top seasons to a Kafka topic.
// It implements pipeline.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishTopSeasons writes one message per year in a single WriteMessages call.
func (w *Writer) PublishTopSeasons(ctx context.Context, version uint64, loadedAt time.Time, tops []domain.YearTopSeason) error {
	if len(tops) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(tops))
	for i := range tops {
		msg, err := serializeToMessage(tops[i], version, loadedAt)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish top seasons: %w", err)
	}
	w.logger.Debug("top seasons published", "topic", w.writer.Topic, "count", len(msgs), "dataset_version", version)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// topSeasonMessage is the JSON value written for each year.
type topSeasonMessage struct {
	Year      string    `json:"year"`
	TopSeason string    `json:"top_season"`
	Count     int       `json:"count"`
	LoadedAt  time.Time `json:"loaded_at"`
}

// serializeToMessage marshals a YearTopSeason into a Kafka message keyed by year.
func serializeToMessage(ts domain.YearTopSeason, version uint64, loadedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(topSeasonMessage{
		Year:      ts.Year,
		TopSeason: ts.TopSeason,
		Count:     ts.Count,
		LoadedAt:  loadedAt.UTC(),
	})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize top season: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(ts.Year),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "dataset_version", Value: []byte(strconv.FormatUint(version, 10))},
			{Key: "loaded_at", Value: []byte(loadedAt.UTC().Format(time.RFC3339))},
		},
	}, nil
}
