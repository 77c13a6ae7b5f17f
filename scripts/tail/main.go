package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	k "gbfs-station-scraper/internal/kafka"

	"github.com/segmentio/kafka-go"
)

// Prints snapshot events as they are published.
// Usage: tail [broker] [topic]
func main() {
	broker := "localhost:9092"
	topic := "station_status_snapshots"
	if len(os.Args) > 1 {
		broker = os.Args[1]
	}
	if len(os.Args) > 2 {
		topic = os.Args[2]
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       topic,
		StartOffset: kafka.FirstOffset,
		// No consumer group, always replay from the start
	})
	defer reader.Close()

	for {
		m, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			fmt.Printf("failed to read message: %v\n", err)
			return
		}
		var record k.StructuredConnectRecord
		if err := json.Unmarshal(m.Value, &record); err != nil {
			fmt.Printf("failed to decode event at offset %d: %v\n", m.Offset, err)
			continue
		}
		e := record.Payload
		fmt.Printf("%s  %-34s %8d bytes  %4d stations  fetched %s\n",
			time.Unix(e.LastUpdated, 0).UTC().Format(time.RFC3339),
			e.FileName,
			e.SizeBytes,
			e.StationCount,
			time.UnixMilli(e.FetchedAt).UTC().Format(time.RFC3339),
		)
	}
}
