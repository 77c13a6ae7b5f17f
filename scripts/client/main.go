package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

type Snapshot struct {
	LastUpdated   int64  `json:"lastUpdated"`
	LastUpdatedAt string `json:"lastUpdatedAt"`
	FileName      string `json:"fileName"`
	SizeBytes     int64  `json:"sizeBytes"`
	StationCount  int32  `json:"stationCount"`
}

func main() {
	baseURL := "http://localhost:8080"
	if len(os.Args) > 1 {
		baseURL = os.Args[1]
	}

	// 1. GET /status
	resp, err := http.Get(baseURL + "/status")
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()
	var status struct {
		LastUpdated   int64  `json:"lastUpdated"`
		LastUpdatedAt string `json:"lastUpdatedAt"`
		ObservedAt    string `json:"observedAt"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		panic(err)
	}
	fmt.Printf("GET /status: last_updated=%d (%s) observed_at=%s\n", status.LastUpdated, status.LastUpdatedAt, status.ObservedAt)

	// 2. GET /snapshots?start=...&end=...
	start := time.Now().Add(-1 * time.Hour).UTC().Format(time.RFC3339)
	end := time.Now().UTC().Format(time.RFC3339)
	resp, err = http.Get(fmt.Sprintf("%s/snapshots?start=%s&end=%s", baseURL, start, end))
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		fmt.Println("GET /snapshots status:", resp.Status, string(body))
		return
	}
	var result struct {
		Snapshots []Snapshot `json:"snapshots"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		panic(err)
	}
	fmt.Printf("GET /snapshots: %d snapshots in the last hour\n", len(result.Snapshots))
	for _, s := range result.Snapshots {
		fmt.Printf("  %s %s %d bytes %d stations\n", s.LastUpdatedAt, s.FileName, s.SizeBytes, s.StationCount)
	}

	// 3. GET /snapshots/{last_updated}
	if status.LastUpdated == 0 {
		return
	}
	resp, err = http.Get(fmt.Sprintf("%s/snapshots/%d", baseURL, status.LastUpdated))
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		panic(err)
	}
	fmt.Printf("GET /snapshots/%d: %s, %d bytes\n", status.LastUpdated, resp.Status, len(body))
}
