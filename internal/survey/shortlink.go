package survey

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Hosts that only ever serve redirects to the real survey page.
var shortenerHosts = map[string]struct{}{
	"forms.gle":   {},
	"bit.ly":      {},
	"tinyurl.com": {},
	"t.co":        {},
}

// IsShortlink reports whether the URL points at a known link shortener.
func IsShortlink(u *url.URL) bool {
	_, ok := shortenerHosts[u.Hostname()]
	return ok
}

// ShortlinkResolver expands a redirect-chain URL to its final destination so
// platform detection sees the real host.
type ShortlinkResolver struct {
	client *http.Client
}

func NewShortlinkResolver(timeout time.Duration) *ShortlinkResolver {
	return &ShortlinkResolver{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
	}
}

// Expand follows the redirect chain and returns the final URL.
func (r *ShortlinkResolver) Expand(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	res, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer res.Body.Close()
	io.Copy(io.Discard, io.LimitReader(res.Body, 1<<16))

	return res.Request.URL.String(), nil
}
