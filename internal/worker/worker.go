package worker

import (
	"context"
	"log/slog"
	"time"

	"gbfs-station-scraper/internal/metrics"
)

type Processor interface {
	Process(ctx context.Context) error
}

// Clock is the worker's view of time. Sleep returns early with the context
// error when ctx is done.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

type Config struct {
	Name      string
	Processor Processor
	// Interval is slept after a successful iteration.
	Interval time.Duration
	// ErrorBackoff is slept after a failed iteration, whatever the failure.
	ErrorBackoff time.Duration
	// RunFor ends the run once exceeded; zero runs until ctx is done.
	RunFor time.Duration
	Clock  Clock
}

type Worker struct {
	name         string
	processor    Processor
	interval     time.Duration
	errorBackoff time.Duration
	runFor       time.Duration
	clock        Clock
}

func New(cfg Config) *Worker {
	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	return &Worker{
		name:         cfg.Name,
		processor:    cfg.Processor,
		interval:     cfg.Interval,
		errorBackoff: cfg.ErrorBackoff,
		runFor:       cfg.RunFor,
		clock:        clock,
	}
}

// Run processes sequentially until ctx is done or the run budget is spent.
// Failures never stop the loop.
func (w *Worker) Run(ctx context.Context) {
	start := w.clock.Now()
	slog.InfoContext(ctx, "Worker started...", "worker", w.name, "interval", w.interval, "error_backoff", w.errorBackoff, "run_for", w.runFor)
	for {
		if ctx.Err() != nil {
			slog.InfoContext(ctx, "Worker stopped...", "worker", w.name)
			return
		}

		wait := w.interval
		if err := w.processor.Process(ctx); err != nil {
			metrics.IterationFailures.Inc()
			slog.ErrorContext(ctx, "Iteration failed, backing off", "worker", w.name, "error", err, "backoff", w.errorBackoff)
			wait = w.errorBackoff
		}

		if err := w.clock.Sleep(ctx, wait); err != nil {
			slog.InfoContext(ctx, "Worker stopped...", "worker", w.name)
			return
		}

		if elapsed := w.clock.Now().Sub(start); w.runFor > 0 && elapsed > w.runFor {
			slog.InfoContext(ctx, "Worker run budget spent", "worker", w.name, "elapsed", elapsed)
			return
		}
	}
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
