package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gbfs_scraper"

var (
	// Feed
	FeedFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feed_fetches_total",
		Help:      "Total number of feed fetches by result",
	}, []string{"result"})

	FeedFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "feed_fetch_duration_seconds",
		Help:      "Feed fetch duration in seconds",
		Buckets:   prometheus.DefBuckets,
	})

	FeedLastUpdated = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "feed_last_updated_seconds",
		Help:      "Last last_updated value reported by the feed",
	})

	// Snapshots
	SnapshotsWritten = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshots_written_total",
		Help:      "Total number of snapshot files written",
	})

	SnapshotsUnchanged = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshots_unchanged_total",
		Help:      "Total number of polls that returned an already seen last_updated",
	})

	SinkFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sink_failures_total",
		Help:      "Total number of failed snapshot deliveries by sink",
	}, []string{"sink"})

	// Loop
	IterationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "iteration_failures_total",
		Help:      "Total number of poll iterations that ended in the error backoff",
	})
)
