package api

type Snapshot struct {
	LastUpdated   int64  `json:"lastUpdated"`
	LastUpdatedAt string `json:"lastUpdatedAt"`
	FileName      string `json:"fileName"`
	SizeBytes     int64  `json:"sizeBytes"`
	TTL           int32  `json:"ttl"`
	StationCount  int32  `json:"stationCount"`
	FetchedAt     string `json:"fetchedAt"`
}

type ListSnapshotsResponse struct {
	Snapshots []Snapshot `json:"snapshots"`
}

type StatusResponse struct {
	LastUpdated   int64  `json:"lastUpdated"`
	LastUpdatedAt string `json:"lastUpdatedAt,omitempty"`
	ObservedAt    string `json:"observedAt,omitempty"`
}
