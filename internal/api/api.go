package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"gbfs-station-scraper/internal/db"
	"gbfs-station-scraper/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:generate mockery --name repository --inpackage --with-expecter

type repository interface {
	LoadSnapshotsBetween(ctx context.Context, start, end int64) ([]db.Snapshot, error)
}

type snapshotReader interface {
	Read(lastUpdated int64) ([]byte, error)
}

type lastSeen interface {
	Get() int64
	SetAt() time.Time
}

type API struct {
	DB    repository
	Files snapshotReader
	Cache lastSeen
}

// Config wires the API. DB may be nil, in which case snapshot listing is
// not routed.
type Config struct {
	DB    repository
	Files snapshotReader
	Cache lastSeen
}

func New(cfg Config) *API {
	return &API{DB: cfg.DB, Files: cfg.Files, Cache: cfg.Cache}
}

func (a *API) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Get("/status", a.GetStatus)
	if a.DB != nil {
		r.Get("/snapshots", a.ListSnapshots)
	}
	r.Get("/snapshots/{last_updated}", a.GetSnapshot)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func (a *API) GetStatus(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{LastUpdated: a.Cache.Get()}
	if resp.LastUpdated != 0 {
		resp.LastUpdatedAt = time.Unix(resp.LastUpdated, 0).UTC().Format(time.RFC3339)
	}
	if at := a.Cache.SetAt(); !at.IsZero() {
		resp.ObservedAt = at.UTC().Format(time.RFC3339)
	}
	writeJSON(r.Context(), w, resp)
}

func (a *API) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	startTime, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		http.Error(w, "invalid start timestamp", http.StatusBadRequest)
		return
	}
	endTime, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		http.Error(w, "invalid end timestamp", http.StatusBadRequest)
		return
	}
	if endTime.Before(startTime) {
		http.Error(w, "end must not be before start", http.StatusBadRequest)
		return
	}

	snapshots, err := a.DB.LoadSnapshotsBetween(r.Context(), startTime.Unix(), endTime.Unix())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := ListSnapshotsResponse{Snapshots: make([]Snapshot, 0, len(snapshots))}
	for _, s := range snapshots {
		resp.Snapshots = append(resp.Snapshots, Snapshot{
			LastUpdated:   s.LastUpdated,
			LastUpdatedAt: time.Unix(s.LastUpdated, 0).UTC().Format(time.RFC3339),
			FileName:      s.FileName,
			SizeBytes:     s.SizeBytes,
			TTL:           s.TTL,
			StationCount:  s.StationCount,
			FetchedAt:     time.UnixMilli(s.FetchedAt).UTC().Format(time.RFC3339Nano),
		})
	}
	writeJSON(r.Context(), w, resp)
}

// GetSnapshot serves a stored snapshot file verbatim.
func (a *API) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	lastUpdated, err := strconv.ParseInt(chi.URLParam(r, "last_updated"), 10, 64)
	if err != nil {
		http.Error(w, "invalid last_updated", http.StatusBadRequest)
		return
	}

	body, err := a.Files.Read(lastUpdated)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "snapshot not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(ctx, "Error encoding response", "error", err)
	}
}
