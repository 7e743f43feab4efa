package web_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hiercluster/distance"
	"github.com/katalvlaran/hiercluster/distance/web"
)

// fakeCounter serves fixed counts and fails on unknown terms.
type fakeCounter map[string]int64

func (f fakeCounter) Count(_ context.Context, term string) (int64, error) {
	n, ok := f[term]
	if !ok {
		return 0, errors.New("offline")
	}

	return n, nil
}

// searchServer answers like the search API, counting requests.
func searchServer(t *testing.T, counts map[string]string, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		v, ok := counts[r.URL.Query().Get("q")]
		if !ok {
			http.Error(w, "nope", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"responseData":{"results":[],"cursor":{"estimatedResultCount":%s}},"responseStatus":200}`, v)
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestNWD(t *testing.T) {
	logN := math.Log(web.DefaultIndexSize)
	want := (math.Log(1000) - math.Log(50)) / (logN - math.Log(100))

	assert.InDelta(t, want, web.NWD(1000, 100, 50, logN), 1e-12)
	assert.InDelta(t, want, web.NWD(100, 1000, 50, logN), 1e-12) // symmetric
	assert.Equal(t, distance.Max, web.NWD(0, 100, 50, logN))     // zero count
	assert.Equal(t, distance.Max, web.NWD(100, 100, 0, logN))    // never together
	assert.Equal(t, distance.Min, web.NWD(100, 100, 100, logN))  // always together
	assert.Equal(t, distance.Max, web.NWD(100, 100, 1, math.Log(10)))
}

func TestCalculatorDistance(t *testing.T) {
	c, err := web.New(fakeCounter{"open": 1000, "close": 100, "open close": 50})
	require.NoError(t, err)
	assert.Equal(t, distance.KindWeb, c.Kind())

	d, err := c.Distance("open", "close")
	require.NoError(t, err)
	assert.InDelta(t, web.NWD(1000, 100, 50, math.Log(web.DefaultIndexSize)), d, 1e-12)

	d, err = c.Distance("open", "open")
	require.NoError(t, err)
	assert.Equal(t, distance.Min, d)
}

func TestCalculatorFetchFailureIsUnknown(t *testing.T) {
	var buf strings.Builder
	c, err := web.New(fakeCounter{"open": 1000}, web.WithLogger(zerolog.New(&buf)))
	require.NoError(t, err)

	d, err := c.Distance("open", "missing")
	require.NoError(t, err)                                   // degraded, not failed
	assert.Equal(t, distance.Unknown, d)                      // never a guessed value
	assert.Contains(t, buf.String(), "web count unavailable") // logged
	assert.Equal(t, distance.Max, distance.Resolve(d))        // worst case downstream

	_, err = web.New(nil)
	require.ErrorIs(t, err, web.ErrNilCounter)
}

func TestHTTPCounter(t *testing.T) {
	var hits atomic.Int32
	srv := searchServer(t, map[string]string{
		"meriweather":  `"13700"`,
		"numeric":      `42`,
		"a b":          `7`,
		"not a number": `"many"`,
	}, &hits)

	hc, err := web.NewHTTPCounter(srv.URL+"/search?v=1.0", web.WithRate(1000, 10))
	require.NoError(t, err)
	ctx := context.Background()

	n, err := hc.Count(ctx, "meriweather")
	require.NoError(t, err)
	assert.Equal(t, int64(13700), n) // quoted count

	n, err = hc.Count(ctx, "numeric")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n) // bare count

	n, err = hc.Count(ctx, " a b ")
	require.NoError(t, err)
	assert.Equal(t, int64(7), n) // joint query, trimmed

	_, err = hc.Count(ctx, "not a number")
	require.Error(t, err)

	_, err = hc.Count(ctx, "unknown")
	require.ErrorIs(t, err, web.ErrStatus)

	_, err = hc.Count(ctx, "  ")
	require.ErrorIs(t, err, web.ErrEmptyTerm)

	_, err = web.NewHTTPCounter("not a url")
	require.ErrorIs(t, err, web.ErrEndpoint)
}

func TestHTTPCounterMissingCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"responseData":null,"responseStatus":403}`)
	}))
	defer srv.Close()

	hc, err := web.NewHTTPCounter(srv.URL, web.WithRate(1000, 1))
	require.NoError(t, err)
	_, err = hc.Count(context.Background(), "x")
	require.ErrorIs(t, err, web.ErrNoCount)
}

func TestSQLiteCache(t *testing.T) {
	ctx := context.Background()
	cache, err := web.OpenCache(filepath.Join(t.TempDir(), "nested", "terms.db"))
	require.NoError(t, err)
	defer cache.Close()

	_, ok, err := cache.Get(ctx, "go")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Put(ctx, "go", 10))
	require.NoError(t, cache.Put(ctx, "go", 11)) // replaces
	n, ok, err := cache.Get(ctx, "go")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(11), n)

	rows, err := cache.Import(ctx, strings.NewReader("getter setter 120\nfield 3\n\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, rows)
	n, ok, _ = cache.Get(ctx, "getter setter")
	assert.True(t, ok)
	assert.Equal(t, int64(120), n)

	size, err := cache.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, size)

	_, err = cache.Import(ctx, strings.NewReader("lonely\n"))
	require.Error(t, err)
}

func TestCachedCounterAvoidsRefetch(t *testing.T) {
	var hits atomic.Int32
	srv := searchServer(t, map[string]string{"x": `5`}, &hits)
	hc, err := web.NewHTTPCounter(srv.URL, web.WithRate(1000, 10))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "terms.db")
	cache, err := web.OpenCache(path)
	require.NoError(t, err)

	cc := web.NewCachedCounter(hc, cache, zerolog.Nop())
	for i := 0; i < 3; i++ {
		n, err := cc.Count(context.Background(), "x")
		require.NoError(t, err)
		assert.Equal(t, int64(5), n)
	}
	assert.Equal(t, int32(1), hits.Load()) // one fetch, then cache hits
	require.NoError(t, cache.Close())

	// reopened cache still answers without the network
	cache, err = web.OpenCache(path)
	require.NoError(t, err)
	defer cache.Close()
	n, err := web.NewCachedCounter(fakeCounter{}, cache, zerolog.Nop()).Count(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
}

func TestCachedCounterTrimsTerms(t *testing.T) {
	var hits atomic.Int32
	srv := searchServer(t, map[string]string{"open file": `8`}, &hits)
	hc, err := web.NewHTTPCounter(srv.URL, web.WithRate(1000, 10))
	require.NoError(t, err)

	cache, err := web.OpenCache(filepath.Join(t.TempDir(), "terms.db"))
	require.NoError(t, err)
	defer cache.Close()

	cc := web.NewCachedCounter(hc, cache, zerolog.Nop())
	ctx := context.Background()
	for _, term := range []string{"open file", "  open file", "open file \t"} {
		n, err := cc.Count(ctx, term)
		require.NoError(t, err)
		assert.Equal(t, int64(8), n)
	}
	assert.Equal(t, int32(1), hits.Load()) // one key, one fetch

	size, err := cache.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, size)

	_, err = cc.Count(ctx, " ")
	require.ErrorIs(t, err, web.ErrEmptyTerm)
}

// TestHTTPCounterCallerCancelDoesNotFailOthers cancels the caller that
// started a shared fetch; a second caller for the same term still gets
// the count.
func TestHTTPCounterCallerCancelDoesNotFailOthers(t *testing.T) {
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
		fmt.Fprint(w, `{"responseData":{"cursor":{"estimatedResultCount":"21"}}}`)
	}))
	defer srv.Close()
	defer func() {
		select {
		case <-release:
		default:
			close(release)
		}
	}()

	hc, err := web.NewHTTPCounter(srv.URL, web.WithRate(1000, 10))
	require.NoError(t, err)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := hc.Count(firstCtx, "slow")
		firstErr <- err
	}()
	<-started // the shared request is in flight

	type result struct {
		n   int64
		err error
	}
	second := make(chan result, 1)
	go func() {
		n, err := hc.Count(context.Background(), "slow")
		second <- result{n, err}
	}()

	cancelFirst()
	require.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	got := <-second
	require.NoError(t, got.err)
	assert.Equal(t, int64(21), got.n)
}
