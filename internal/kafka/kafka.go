package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"
)

//go:generate mockery --name Writer --inpackage --with-expecter

// Writer is the subset of *kafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}
