package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"gbfs-station-scraper/internal/gbfs"

	"github.com/segmentio/kafka-go"
)

var (
	ErrMarshalRecord = errors.New("error marshalling record")
	ErrWriteMessage  = errors.New("error writing message")
)

type Config struct {
	Brokers []string
	Topic   string
}

// Publisher announces persisted snapshots on a topic, keyed by last_updated.
type Publisher struct {
	writer Writer
}

func NewPublisher(cfg Config) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.Topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *Publisher) Name() string {
	return "kafka"
}

func (p *Publisher) Publish(ctx context.Context, snap *gbfs.Snapshot) error {
	const fn = "Publisher:Publish"
	record := StructuredConnectRecord{
		Schema:  SnapshotSchema,
		Payload: NewSnapshotEvent(snap),
	}
	out, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrMarshalRecord, err)
	}
	key := strconv.FormatInt(snap.LastUpdated, 10)
	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: out}); err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrWriteMessage, err)
	}
	slog.InfoContext(ctx, "Published snapshot event", "last_updated", snap.LastUpdated)
	return nil
}

func (p *Publisher) Close(ctx context.Context) {
	slog.InfoContext(ctx, "Closing publisher resources...")
	if err := p.writer.Close(); err != nil {
		slog.ErrorContext(ctx, "Error closing kafka writer", "error", err)
	}
}

func NewSnapshotEvent(snap *gbfs.Snapshot) SnapshotEvent {
	return SnapshotEvent{
		LastUpdated:  snap.LastUpdated,
		FileName:     snap.File,
		SizeBytes:    int64(len(snap.Body)),
		TTL:          int32(snap.TTL),
		StationCount: int32(snap.StationCount),
		FetchedAt:    snap.FetchedAt.UnixMilli(),
	}
}
