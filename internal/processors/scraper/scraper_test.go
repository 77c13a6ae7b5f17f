package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"gbfs-station-scraper/internal/cache"
	"gbfs-station-scraper/internal/gbfs"
	"gbfs-station-scraper/internal/store"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFeed struct {
	mock.Mock
}

func (m *MockFeed) Fetch(ctx context.Context) (*gbfs.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gbfs.Snapshot), args.Error(1)
}

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Save(ctx context.Context, snap *gbfs.Snapshot) (string, error) {
	args := m.Called(ctx, snap)
	return args.String(0), args.Error(1)
}

type MockSink struct {
	mock.Mock
}

func (m *MockSink) Name() string {
	return "mock"
}

func (m *MockSink) Publish(ctx context.Context, snap *gbfs.Snapshot) error {
	args := m.Called(ctx, snap)
	return args.Error(0)
}

func Test_Process(t *testing.T) {
	snap := func(lastUpdated int64) *gbfs.Snapshot {
		return &gbfs.Snapshot{LastUpdated: lastUpdated, Body: []byte(`{}`)}
	}

	cases := []struct {
		name          string
		lastSeen      int64
		setup         func(feed *MockFeed, st *MockStore, sink *MockSink)
		expectedErr   error
		expectedCache int64
	}{
		{
			name:     "new snapshot persisted and published",
			lastSeen: 100,
			setup: func(feed *MockFeed, st *MockStore, sink *MockSink) {
				s := snap(200)
				feed.On("Fetch", mock.Anything).Return(s, nil)
				st.On("Save", mock.Anything, s).Return("files/200_station_status.json", nil)
				sink.On("Publish", mock.Anything, s).Return(nil)
			},
			expectedCache: 200,
		},
		{
			name:     "unchanged snapshot skipped",
			lastSeen: 100,
			setup: func(feed *MockFeed, st *MockStore, sink *MockSink) {
				feed.On("Fetch", mock.Anything).Return(snap(100), nil)
			},
			expectedCache: 100,
		},
		{
			name:     "zero last_updated on fresh start is not written",
			lastSeen: 0,
			setup: func(feed *MockFeed, st *MockStore, sink *MockSink) {
				feed.On("Fetch", mock.Anything).Return(snap(0), nil)
			},
			expectedCache: 0,
		},
		{
			name:     "fetch failed",
			lastSeen: 100,
			setup: func(feed *MockFeed, st *MockStore, sink *MockSink) {
				feed.On("Fetch", mock.Anything).Return(nil, errors.New("timeout"))
			},
			expectedErr:   ErrFetch,
			expectedCache: 100,
		},
		{
			name:     "store failed",
			lastSeen: 100,
			setup: func(feed *MockFeed, st *MockStore, sink *MockSink) {
				s := snap(200)
				feed.On("Fetch", mock.Anything).Return(s, nil)
				st.On("Save", mock.Anything, s).Return("", errors.New("disk full"))
			},
			expectedErr:   ErrPersist,
			expectedCache: 100,
		},
		{
			name:     "sink failed keeps last seen",
			lastSeen: 100,
			setup: func(feed *MockFeed, st *MockStore, sink *MockSink) {
				s := snap(200)
				feed.On("Fetch", mock.Anything).Return(s, nil)
				st.On("Save", mock.Anything, s).Return("files/200_station_status.json", nil)
				sink.On("Publish", mock.Anything, s).Return(errors.New("broker down"))
			},
			expectedErr:   ErrPublish,
			expectedCache: 100,
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			feed, st, sink := &MockFeed{}, &MockStore{}, &MockSink{}
			tt.setup(feed, st, sink)

			seen := cache.New()
			seen.Set(tt.lastSeen)

			s := New(Config{Feed: feed, Store: st, Cache: seen, Sinks: []Sink{sink}})
			err := s.Process(context.Background())

			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Equal(t, tt.expectedCache, seen.Get())
			feed.AssertExpectations(t)
			st.AssertExpectations(t)
			sink.AssertExpectations(t)
		})
	}
}

// stepClock advances instantly and cancels the run after a fixed number of sleeps.
type stepClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
	limit  int
	cancel context.CancelFunc
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) Sleep(ctx context.Context, d time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	if c.limit > 0 && len(c.sleeps) >= c.limit {
		c.cancel()
	}
	return nil
}

type response struct {
	status int
	body   string
}

func Test_RunAgainstFeed(t *testing.T) {
	responses := []response{
		{status: http.StatusOK, body: `{"last_updated":1700000000,"ttl":5,"data":{"stations":[]}}`},
		{status: http.StatusOK, body: `{"last_updated":1700000000,"ttl":5,"data":{"stations":[]}}`},
		{status: http.StatusServiceUnavailable, body: `down`},
		{status: http.StatusOK, body: `{"last_updated": 1700000010, "ttl":5, "data":{"stations":[{"station_id":"x"}]}}`},
	}
	var mu sync.Mutex
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		resp := responses[calls%len(responses)]
		calls++
		w.WriteHeader(resp.status)
		w.Write([]byte(resp.body))
	}))
	defer srv.Close()

	fs := afero.NewMemMapFs()
	st, err := store.New(store.Config{Fs: fs, Dir: "files", CreateDir: true})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	clock := &stepClock{now: time.Unix(0, 0), limit: len(responses), cancel: cancel}

	s := New(Config{
		Feed:         gbfs.NewClient(gbfs.Config{URL: srv.URL, Timeout: time.Second}),
		Store:        st,
		Cache:        cache.New(),
		Interval:     4 * time.Second,
		ErrorBackoff: 300 * time.Second,
		RunFor:       24 * time.Hour,
		Clock:        clock,
	})
	s.Run(ctx)

	assert.Equal(t, []time.Duration{
		4 * time.Second,
		4 * time.Second,
		300 * time.Second,
		4 * time.Second,
	}, clock.sleeps)

	files, err := afero.ReadDir(fs, "files")
	require.NoError(t, err)
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name())
	}
	assert.ElementsMatch(t, []string{
		"1700000000_station_status.json",
		"1700000010_station_status.json",
	}, names, "two fetches with the same last_updated must write exactly one file")

	got, err := afero.ReadFile(fs, "files/1700000010_station_status.json")
	require.NoError(t, err)
	assert.Equal(t, []byte(responses[3].body), got)
}

func Test_RunStopsAfterBudget(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	clock := &stepClock{now: time.Unix(0, 0)}
	s := New(Config{
		Feed:         gbfs.NewClient(gbfs.Config{URL: srv.URL, Timeout: time.Second}),
		Store:        &MockStore{},
		Cache:        cache.New(),
		Interval:     4 * time.Second,
		ErrorBackoff: 300 * time.Second,
		RunFor:       86400 * time.Second,
		Clock:        clock,
	})
	s.Run(context.Background())

	// 288 backoffs reach exactly 86400s, the 289th exceeds it.
	assert.Len(t, clock.sleeps, 289)
}
