package survey

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/surveypay/backend/internal/domain"
	"golang.org/x/net/publicsuffix"
)

// Extraction failure classes. Callers translate these to HTTP codes.
var (
	ErrInvalidURL          = errors.New("invalid survey url")
	ErrUnsupportedPlatform = errors.New("unsupported survey platform")
	ErrUpstreamUnavailable = errors.New("survey platform unreachable")
	ErrUnrecognizedFormat  = errors.New("page contains no recognizable survey data")
	ErrUnsupportedLayout   = errors.New("survey page is missing expected fields")
)

// Marker is a URL pattern a platform is known by. Host matches exactly or as
// a dot-separated suffix ("typeform.com" matches "form.typeform.com").
type Marker struct {
	Host       string
	PathPrefix string
}

func (m Marker) matches(u *url.URL) bool {
	host := strings.ToLower(u.Hostname())
	if host != m.Host && !strings.HasSuffix(host, "."+m.Host) {
		return false
	}
	return m.PathPrefix == "" || strings.HasPrefix(u.Path, m.PathPrefix)
}

// specificity orders markers so that narrower patterns win over broader ones
// regardless of registration order.
func (m Marker) specificity() int {
	return len(m.Host) + len(m.PathPrefix)
}

// MatchMarkers reports whether any marker matches the URL.
func MatchMarkers(markers []Marker, u *url.URL) bool {
	for _, m := range markers {
		if m.matches(u) {
			return true
		}
	}
	return false
}

// Extractor knows how to pull structured survey metadata out of one
// platform's pages.
type Extractor interface {
	Platform() domain.Platform
	Markers() []Marker
	CanHandle(u *url.URL) bool
	Extract(ctx context.Context, rawURL string) (*domain.SurveyMetadata, error)
}

// ParseURL validates a user-supplied survey link. Only http(s) URLs with a
// resolvable registered domain are accepted.
func ParseURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, ErrInvalidURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, ErrInvalidURL
	}
	host := u.Hostname()
	if host == "" {
		return nil, ErrInvalidURL
	}
	if _, err := publicsuffix.EffectiveTLDPlusOne(host); err != nil {
		return nil, ErrInvalidURL
	}
	return u, nil
}
