package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"prospects/internal/components/chrono"
	"prospects/internal/components/telemetry"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testServer struct {
	*httptest.Server
	hits   atomic.Int64
	status atomic.Int64
}

func newTestServer(t testing.TB) *testServer {
	s := &testServer{}
	s.status.Store(http.StatusOK)
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := s.hits.Add(1)
		w.WriteHeader(int(s.status.Load()))
		fmt.Fprintf(w, "%s #%d", r.URL.Path, n)
	}))
	t.Cleanup(s.Close)
	return s
}

type cacheFixture struct {
	cache  *Cache
	clock  *chrono.ManualTime
	store  MemoryStore
	server *testServer
}

func newCacheFixture(t testing.TB, baseDelay time.Duration) cacheFixture {
	clock := chrono.NewManualTime(epoch)
	store := NewMemoryStore(64)
	server := newTestServer(t)
	tel := &telemetry.Recorder{}

	cache := NewCache(Options{
		TTL:       DefaultTTL,
		Store:     store,
		Gate:      NewGate(GateOptions{BaseDelay: baseDelay}, clock),
		Transport: NewRestyTransport(TransportOptions{DisableCloudflareBypass: true}, tel),
		Time:      clock,
		Tel:       tel,
	})
	return cacheFixture{cache: cache, clock: clock, store: store, server: server}
}

func TestCacheHitWithinTTL(t *testing.T) {
	f := newCacheFixture(t, 0)
	ctx := context.Background()
	req := Request{URL: f.server.URL + "/team/64"}

	first, err := f.cache.Get(ctx, req)
	require.NoError(t, err)
	second, err := f.cache.Get(ctx, req)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, int64(1), f.server.hits.Load())
}

func TestCacheExpiry(t *testing.T) {
	f := newCacheFixture(t, 0)
	ctx := context.Background()
	req := Request{URL: f.server.URL + "/player/1"}

	_, err := f.cache.Get(ctx, req)
	require.NoError(t, err)

	f.clock.Advance(DefaultTTL - time.Second)
	payload, err := f.cache.Get(ctx, req)
	require.NoError(t, err)
	require.Equal(t, "/player/1 #1", string(payload))
	require.Equal(t, int64(1), f.server.hits.Load())

	f.clock.Advance(2 * time.Second)
	payload, err = f.cache.Get(ctx, req)
	require.NoError(t, err)
	require.Equal(t, "/player/1 #2", string(payload))
	require.Equal(t, int64(2), f.server.hits.Load())

	// the refetch replaced the stale entry
	payload, err = f.cache.Get(ctx, req)
	require.NoError(t, err)
	require.Equal(t, "/player/1 #2", string(payload))
}

func TestCacheHitSkipsGate(t *testing.T) {
	f := newCacheFixture(t, 10*time.Second)
	ctx := context.Background()

	_, err := f.cache.Get(ctx, Request{URL: f.server.URL + "/a"})
	require.NoError(t, err)
	_, err = f.cache.Get(ctx, Request{URL: f.server.URL + "/b"})
	require.NoError(t, err)
	require.Len(t, f.clock.Slept(), 2)
	require.InDelta(t, float64(10*time.Second), float64(f.clock.Slept()[1]), tolerance)

	for i := 0; i < 5; i++ {
		_, err = f.cache.Get(ctx, Request{URL: f.server.URL + "/a"})
		require.NoError(t, err)
	}
	require.Len(t, f.clock.Slept(), 2)
	require.Equal(t, int64(2), f.server.hits.Load())
}

func TestCacheHeadersAndParams(t *testing.T) {
	f := newCacheFixture(t, 0)
	ctx := context.Background()

	req := Request{
		URL:     f.server.URL + "/stats",
		Params:  map[string]string{"season": "2026-2027", "sort": "gp"},
		Headers: map[string]string{"Accept-Language": "en"},
	}
	_, err := f.cache.Get(ctx, req)
	require.NoError(t, err)

	_, err = f.cache.Get(ctx, Request{
		URL:     f.server.URL + "/stats",
		Params:  map[string]string{"sort": "gp", "season": "2026-2027"},
		Headers: map[string]string{"accept-language": "en"},
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), f.server.hits.Load())

	_, err = f.cache.Get(ctx, Request{
		URL:     f.server.URL + "/stats",
		Params:  req.Params,
		Headers: map[string]string{"Accept-Language": "sv"},
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), f.server.hits.Load())
}

func TestCacheTransportError(t *testing.T) {
	f := newCacheFixture(t, 0)
	ctx := context.Background()
	req := Request{URL: f.server.URL + "/player/2"}

	f.server.status.Store(http.StatusServiceUnavailable)
	_, err := f.cache.Get(ctx, req)
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	require.Equal(t, http.StatusServiceUnavailable, transportErr.StatusCode)

	// nothing was cached for the failure
	_, err = f.store.Get(ctx, Identity(req.URL, nil))
	require.ErrorIs(t, err, ErrEntryNotFound)

	f.server.status.Store(http.StatusOK)
	payload, err := f.cache.Get(ctx, req)
	require.NoError(t, err)
	require.Equal(t, "/player/2 #2", string(payload))

	// a failed refresh leaves the stale entry untouched
	f.clock.Advance(DefaultTTL * 2)
	f.server.status.Store(http.StatusInternalServerError)
	_, err = f.cache.Get(ctx, req)
	require.Error(t, err)

	entry, err := f.store.Get(ctx, Identity(req.URL, nil))
	require.NoError(t, err)
	require.Equal(t, "/player/2 #2", string(entry.Payload))
	require.True(t, entry.StoredAt.Equal(epoch))
}

func TestCacheNetworkError(t *testing.T) {
	f := newCacheFixture(t, 0)
	url := f.server.URL + "/gone"
	f.server.Close()

	_, err := f.cache.Get(context.Background(), Request{URL: url})
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	require.NotNil(t, transportErr.Err)

	_, err = f.store.Get(context.Background(), Identity(url, nil))
	require.ErrorIs(t, err, ErrEntryNotFound)
}
