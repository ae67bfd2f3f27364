package survey

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExpandFollowsRedirectChain(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/s/abc", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, srv.URL+"/hop", http.StatusFound)
	})
	mux.HandleFunc("/hop", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, srv.URL+"/forms/d/e/123/viewform", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/forms/d/e/123/viewform", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("form page"))
	})

	r := NewShortlinkResolver(2 * time.Second)
	final, err := r.Expand(context.Background(), srv.URL+"/s/abc")
	require.NoError(t, err)
	require.Equal(t, srv.URL+"/forms/d/e/123/viewform", final)
}

func TestIsShortlink(t *testing.T) {
	u, _ := url.Parse("https://forms.gle/abc")
	require.True(t, IsShortlink(u))

	u, _ = url.Parse("https://docs.google.com/forms/d/e/1/viewform")
	require.False(t, IsShortlink(u))
}
