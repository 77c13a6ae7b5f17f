package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"gbfs-station-scraper/internal/gbfs"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func Test_Publish(t *testing.T) {
	fetchedAt := time.UnixMilli(1700000003000)
	snap := &gbfs.Snapshot{
		LastUpdated:  1700000000,
		Body:         []byte(`{"last_updated":1700000000}`),
		FetchedAt:    fetchedAt,
		TTL:          5,
		StationCount: 2,
		File:         "1700000000_station_status.json",
	}

	cases := []struct {
		name        string
		setupWriter func(*testing.T) *MockWriter
		expectedErr error
	}{
		{
			name: "valid snapshot",
			setupWriter: func(t *testing.T) *MockWriter {
				w := NewMockWriter(t)
				w.EXPECT().WriteMessages(mock.Anything, mock.AnythingOfType("kafka.Message")).
					Run(func(ctx context.Context, msgs ...kafka.Message) {
						require.Len(t, msgs, 1)
						assert.Equal(t, []byte("1700000000"), msgs[0].Key)

						var record StructuredConnectRecord
						require.NoError(t, json.Unmarshal(msgs[0].Value, &record))
						assert.Equal(t, SnapshotSchema, record.Schema)
						assert.Equal(t, SnapshotEvent{
							LastUpdated:  1700000000,
							FileName:     "1700000000_station_status.json",
							SizeBytes:    int64(len(snap.Body)),
							TTL:          5,
							StationCount: 2,
							FetchedAt:    1700000003000,
						}, record.Payload)
					}).
					Return(nil)
				return w
			},
			expectedErr: nil,
		},
		{
			name: "writer failed",
			setupWriter: func(t *testing.T) *MockWriter {
				w := NewMockWriter(t)
				w.EXPECT().WriteMessages(mock.Anything, mock.AnythingOfType("kafka.Message")).
					Return(errors.New("broker unavailable"))
				return w
			},
			expectedErr: ErrWriteMessage,
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			p := &Publisher{writer: tt.setupWriter(t)}
			err := p.Publish(context.Background(), snap)
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func Test_Close(t *testing.T) {
	w := NewMockWriter(t)
	w.EXPECT().Close().Return(errors.New("already closed"))

	p := &Publisher{writer: w}
	p.Close(context.Background())
}
