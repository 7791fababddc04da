package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/Samulko/SurfForcast/internal/config"
	"github.com/Samulko/SurfForcast/internal/domain"
)

// Writer publishes merged forecast series to the archive topic.
// It implements forecast.Archiver.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured archive topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes one merged series and writes it to the archive topic,
// keyed by coordinate so all forecasts for a spot land on one partition.
func (w *Writer) Publish(ctx context.Context, lat, lon float64, series *domain.ForecastSeries) error {
	msg, err := serializeToMessage(lat, lon, series)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a forecast series into a Kafka message.
func serializeToMessage(lat, lon float64, series *domain.ForecastSeries) (kafkago.Message, error) {
	data, err := json.Marshal(series)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize forecast series: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(fmt.Sprintf("%.4f,%.4f", lat, lon)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "points", Value: []byte(strconv.Itoa(len(series.Forecast)))},
			{Key: "warnings", Value: []byte(strconv.Itoa(len(series.Warnings)))},
		},
	}, nil
}
