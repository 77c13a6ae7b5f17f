package db

// Snapshot is one row of the snapshot index. FetchedAt is unix milliseconds.
type Snapshot struct {
	LastUpdated  int64  `json:"last_updated" db:"last_updated"`
	FileName     string `json:"file_name" db:"file_name"`
	SizeBytes    int64  `json:"size_bytes" db:"size_bytes"`
	TTL          int32  `json:"ttl" db:"ttl"`
	StationCount int32  `json:"station_count" db:"station_count"`
	FetchedAt    int64  `json:"fetched_at" db:"fetched_at"`
}
