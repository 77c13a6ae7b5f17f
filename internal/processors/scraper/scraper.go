package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gbfs-station-scraper/internal/cache"
	"gbfs-station-scraper/internal/gbfs"
	"gbfs-station-scraper/internal/metrics"
	"gbfs-station-scraper/internal/worker"
)

var (
	ErrFetch   = errors.New("error fetching feed")
	ErrPersist = errors.New("error persisting snapshot")
	ErrPublish = errors.New("error publishing snapshot")
)

type Feed interface {
	Fetch(ctx context.Context) (*gbfs.Snapshot, error)
}

type Store interface {
	Save(ctx context.Context, snap *gbfs.Snapshot) (string, error)
}

// Sink is notified of every snapshot that reached the store.
type Sink interface {
	Name() string
	Publish(ctx context.Context, snap *gbfs.Snapshot) error
}

type Config struct {
	Feed  Feed
	Store Store
	Cache cache.Cache
	Sinks []Sink

	Interval     time.Duration
	ErrorBackoff time.Duration
	RunFor       time.Duration
	Clock        worker.Clock
}

type Scraper struct {
	worker *worker.Worker
	feed   Feed
	store  Store
	cache  cache.Cache
	sinks  []Sink
}

func New(cfg Config) *Scraper {
	scraper := &Scraper{
		feed:  cfg.Feed,
		store: cfg.Store,
		cache: cfg.Cache,
		sinks: cfg.Sinks,
	}

	scraper.worker = worker.New(worker.Config{
		Name:         "scraper-worker",
		Processor:    scraper,
		Interval:     cfg.Interval,
		ErrorBackoff: cfg.ErrorBackoff,
		RunFor:       cfg.RunFor,
		Clock:        cfg.Clock,
	})
	return scraper
}

func (s *Scraper) Run(ctx context.Context) {
	s.worker.Run(ctx)
}

// Process runs one poll: the snapshot is persisted only when its
// last_updated differs from the last one seen. The last-seen value moves
// only after the file and every sink succeeded.
func (s *Scraper) Process(ctx context.Context) error {
	const fn = "Scraper:Process"

	started := time.Now()
	snap, err := s.feed.Fetch(ctx)
	metrics.FeedFetchDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		metrics.FeedFetches.WithLabelValues("error").Inc()
		return fmt.Errorf("%s:%w:%w", fn, ErrFetch, err)
	}
	metrics.FeedFetches.WithLabelValues("ok").Inc()
	metrics.FeedLastUpdated.Set(float64(snap.LastUpdated))

	if snap.LastUpdated == s.cache.Get() {
		metrics.SnapshotsUnchanged.Inc()
		slog.DebugContext(ctx, "Feed unchanged", "last_updated", snap.LastUpdated)
		return nil
	}

	path, err := s.store.Save(ctx, snap)
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrPersist, err)
	}
	metrics.SnapshotsWritten.Inc()

	for _, sink := range s.sinks {
		if err := sink.Publish(ctx, snap); err != nil {
			metrics.SinkFailures.WithLabelValues(sink.Name()).Inc()
			return fmt.Errorf("%s:%w:%s:%w", fn, ErrPublish, sink.Name(), err)
		}
	}

	s.cache.Set(snap.LastUpdated)
	slog.InfoContext(ctx, "Persisted snapshot",
		"last_updated", snap.LastUpdated,
		"last_updated_at", snap.LastUpdatedTime(),
		"path", path,
		"bytes", len(snap.Body),
		"stations", snap.StationCount,
	)
	return nil
}
