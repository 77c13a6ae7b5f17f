package db

import (
	"context"
	"errors"
	"fmt"

	"gbfs-station-scraper/internal/gbfs"

	"github.com/georgysavva/scany/pgxscan"
	"github.com/jackc/pgx/v4"
)

var (
	ErrInsertFailed = errors.New("insert operation failed")
	ErrSelectFailed = errors.New("select operation failed")
)

// InsertSnapshot indexes a snapshot. Re-inserting the same last_updated is a
// no-op so retried deliveries stay idempotent.
func (db *DB) InsertSnapshot(ctx context.Context, s Snapshot) error {
	const fn = "DB:InsertSnapshot"
	_, err := db.pool.Exec(ctx, `
		INSERT INTO station_status_snapshots (
			last_updated,
			file_name,
			size_bytes,
			ttl,
			station_count,
			fetched_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (last_updated) DO NOTHING
	`, s.LastUpdated, s.FileName, s.SizeBytes, s.TTL, s.StationCount, s.FetchedAt)
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrInsertFailed, err)
	}
	return nil
}

// Publish indexes a persisted feed snapshot.
func (db *DB) Publish(ctx context.Context, snap *gbfs.Snapshot) error {
	return db.InsertSnapshot(ctx, SnapshotFromFeed(snap))
}

// LoadSnapshotsBetween returns snapshots whose last_updated lies in
// [start, end] (unix seconds), oldest first.
func (db *DB) LoadSnapshotsBetween(ctx context.Context, start, end int64) ([]Snapshot, error) {
	const fn = "DB:LoadSnapshotsBetween"
	var snapshots []Snapshot
	err := pgxscan.Select(ctx, db.pool, &snapshots, `
			SELECT
				last_updated,
				file_name,
				size_bytes,
				ttl,
				station_count,
				fetched_at
			FROM station_status_snapshots
			WHERE last_updated >= $1
			AND last_updated <= $2
			ORDER BY last_updated ASC
		`, start, end)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrSelectFailed, err)
	}
	if snapshots == nil {
		return []Snapshot{}, nil
	}
	return snapshots, nil
}

func (db *DB) LatestLastUpdated(ctx context.Context) (int64, bool, error) {
	const fn = "DB:LatestLastUpdated"
	var lastUpdated int64
	err := db.pool.QueryRow(ctx, `
		SELECT last_updated
		FROM station_status_snapshots
		ORDER BY last_updated DESC
		LIMIT 1
	`).Scan(&lastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("%s:%w:%w", fn, ErrSelectFailed, err)
	}
	return lastUpdated, true, nil
}

func SnapshotFromFeed(snap *gbfs.Snapshot) Snapshot {
	return Snapshot{
		LastUpdated:  snap.LastUpdated,
		FileName:     snap.File,
		SizeBytes:    int64(len(snap.Body)),
		TTL:          int32(snap.TTL),
		StationCount: int32(snap.StationCount),
		FetchedAt:    snap.FetchedAt.UnixMilli(),
	}
}
