package gbfs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	ErrRequest            = errors.New("error requesting feed")
	ErrUnexpectedStatus   = errors.New("unexpected feed status")
	ErrReadBody           = errors.New("error reading feed body")
	ErrDecode             = errors.New("error decoding feed document")
	ErrMissingLastUpdated = errors.New("feed document has no last_updated")
	ErrInvalidLastUpdated = errors.New("feed last_updated is not an integer")
)

type Config struct {
	URL        string
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client
}

type Client struct {
	url        string
	userAgent  string
	httpClient *http.Client
	now        func() time.Time
}

func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		url:        cfg.URL,
		userAgent:  cfg.UserAgent,
		httpClient: httpClient,
		now:        time.Now,
	}
}

// Fetch issues a single GET against the feed and returns the raw body
// together with its last_updated value.
func (c *Client) Fetch(ctx context.Context) (*Snapshot, error) {
	const fn = "GBFS:Fetch"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrRequest, err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%s:%w: %s", fn, ErrUnexpectedStatus, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrReadBody, err)
	}

	snap, err := Parse(body)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", fn, err)
	}
	snap.FetchedAt = c.now()
	return snap, nil
}

// Parse extracts last_updated from a feed document. The document must be a
// JSON object; nothing else about its shape is checked.
func Parse(body []byte) (*Snapshot, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w:%w", ErrDecode, err)
	}

	raw, ok := doc["last_updated"]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, ErrMissingLastUpdated
	}
	lastUpdated, err := parseInt(raw)
	if err != nil {
		return nil, fmt.Errorf("%w:%w", ErrInvalidLastUpdated, err)
	}

	snap := &Snapshot{
		LastUpdated: lastUpdated,
		Body:        body,
	}

	if v, ok := doc["ttl"]; ok {
		if ttl, err := parseInt(v); err == nil {
			snap.TTL = int(ttl)
		}
	}
	if v, ok := doc["version"]; ok {
		_ = json.Unmarshal(v, &snap.Version)
	}
	if v, ok := doc["data"]; ok {
		var data struct {
			Stations []json.RawMessage `json:"stations"`
		}
		if err := json.Unmarshal(v, &data); err == nil {
			snap.StationCount = len(data.Stations)
		}
	}
	return snap, nil
}

// parseInt accepts a JSON integer or a string holding one.
func parseInt(raw json.RawMessage) (int64, error) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, err
	}
	return n.Int64()
}
