package kafka

// SnapshotEvent describes one persisted station_status snapshot.
type SnapshotEvent struct {
	LastUpdated  int64  `json:"last_updated"`
	FileName     string `json:"file_name"`
	SizeBytes    int64  `json:"size_bytes"`
	TTL          int32  `json:"ttl"`
	StationCount int32  `json:"station_count"`
	FetchedAt    int64  `json:"fetched_at"`
}

type StructuredConnectRecord struct {
	Schema  Schema        `json:"schema"`
	Payload SnapshotEvent `json:"payload"`
}

type Schema struct {
	Type     string  `json:"type"`
	Name     string  `json:"name"`
	Fields   []Field `json:"fields"`
	Optional bool    `json:"optional"`
}

type Field struct {
	Field string `json:"field"`
	Type  string `json:"type"`
}

var SnapshotSchema = Schema{
	Type:     "struct",
	Name:     "StationStatusSnapshot",
	Optional: false,
	Fields: []Field{
		{Field: "last_updated", Type: "int64"},
		{Field: "file_name", Type: "string"},
		{Field: "size_bytes", Type: "int64"},
		{Field: "ttl", Type: "int32"},
		{Field: "station_count", Type: "int32"},
		{Field: "fetched_at", Type: "int64"},
	},
}
