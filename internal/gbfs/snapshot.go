package gbfs

import "time"

// Snapshot is one station_status document as received from the feed.
// Body is kept verbatim; the remaining fields are read from it for
// bookkeeping only.
type Snapshot struct {
	LastUpdated int64
	Body        []byte
	FetchedAt   time.Time

	// Best effort, zero when absent.
	TTL          int
	Version      string
	StationCount int

	// File is set by the store once the snapshot is persisted.
	File string
}

func (s *Snapshot) LastUpdatedTime() time.Time {
	return time.Unix(s.LastUpdated, 0).UTC()
}
