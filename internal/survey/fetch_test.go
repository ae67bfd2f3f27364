package survey

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFetchFallsThroughProxyChain(t *testing.T) {
	direct := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer direct.Close()

	var firstProxyHits atomic.Int32
	proxy1 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		firstProxyHits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer proxy1.Close()

	proxy2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NotEmpty(t, r.URL.Query().Get("u"), "proxy must receive the escaped target")
		w.Write([]byte("proxied page body"))
	}))
	defer proxy2.Close()

	f := NewFetcher(2*time.Second, []string{
		proxy1.URL + "/?u=%s",
		proxy2.URL + "/?u=%s",
	})

	body, err := f.Fetch(context.Background(), direct.URL)
	require.NoError(t, err)
	require.Equal(t, "proxied page body", body)
	require.Equal(t, int32(1), firstProxyHits.Load(), "first proxy must be attempted before the second")
}

func TestFetchAggregatesAllRouteFailures(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	deadURL := dead.URL
	dead.Close() // connection refused from here on

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer broken.Close()

	f := NewFetcher(time.Second, []string{
		deadURL + "/?u=%s",
		broken.URL + "/?u=%s",
		broken.URL + "/other?u=%s",
	})

	_, err := f.Fetch(context.Background(), deadURL)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUpstreamUnavailable, "caller gets one aggregated error, not one per route")
}

func TestFetchDirectSuccessSkipsProxies(t *testing.T) {
	direct := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("direct body"))
	}))
	defer direct.Close()

	var proxyHits atomic.Int32
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		proxyHits.Add(1)
	}))
	defer proxy.Close()

	f := NewFetcher(time.Second, []string{proxy.URL + "/?u=%s"})
	body, err := f.Fetch(context.Background(), direct.URL)
	require.NoError(t, err)
	require.Equal(t, "direct body", body)
	require.Equal(t, int32(0), proxyHits.Load())
}
