package survey

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

// Fetcher retrieves raw survey page HTML. Some platforms block datacenter
// IPs, so after a failed direct fetch it walks an ordered list of CORS-bypass
// proxy templates until one answers. This is retry-with-fallback across
// alternative network routes, nothing smarter.
type Fetcher struct {
	client *resty.Client
	// proxies are URL templates containing one %s placeholder for the
	// query-escaped target URL, tried in order.
	proxies []string
}

// NewFetcher creates a fetcher with a bounded per-request timeout.
func NewFetcher(timeout time.Duration, proxies []string) *Fetcher {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", "Mozilla/5.0 (compatible; surveypay/1.0)")
	return &Fetcher{client: client, proxies: proxies}
}

// Fetch returns the page body for target, trying the direct route first and
// then each configured proxy. All route failures are aggregated into a single
// error wrapping ErrUpstreamUnavailable.
func (f *Fetcher) Fetch(ctx context.Context, target string) (string, error) {
	routes := make([]string, 0, len(f.proxies)+1)
	routes = append(routes, target)
	for _, tpl := range f.proxies {
		routes = append(routes, fmt.Sprintf(tpl, url.QueryEscape(target)))
	}

	var failures []error
	for i, route := range routes {
		res, err := f.client.R().SetContext(ctx).Get(route)
		if err != nil {
			failures = append(failures, fmt.Errorf("route %d: %w", i, err))
			continue
		}
		if res.IsError() {
			failures = append(failures, fmt.Errorf("route %d: status %d", i, res.StatusCode()))
			continue
		}
		return res.String(), nil
	}
	return "", fmt.Errorf("%w: %w", ErrUpstreamUnavailable, errors.Join(failures...))
}
