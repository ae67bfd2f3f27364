package survey

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/surveypay/backend/internal/domain"
)

// broadExtractor claims an entire registered domain, to prove specificity
// ordering beats registration order.
type broadExtractor struct{}

func (broadExtractor) Platform() domain.Platform { return domain.PlatformUnknown }
func (broadExtractor) Markers() []Marker         { return []Marker{{Host: "google.com"}} }
func (b broadExtractor) CanHandle(u *url.URL) bool {
	return MatchMarkers(b.Markers(), u)
}
func (broadExtractor) Extract(context.Context, string) (*domain.SurveyMetadata, error) {
	return nil, ErrUnrecognizedFormat
}

func newTestDetector() *Detector {
	fetcher := NewFetcher(0, nil)
	return NewDetector(
		NewGoogleFormsExtractor(fetcher),
		NewTypeformExtractor(fetcher),
		NewSurveyMonkeyExtractor(fetcher),
	)
}

func TestDetectKnownPlatforms(t *testing.T) {
	d := newTestDetector()
	cases := map[string]domain.Platform{
		"https://docs.google.com/forms/d/e/1FAIpQLSd/viewform": domain.PlatformGoogleForms,
		"https://forms.gle/abc123":                             domain.PlatformGoogleForms,
		"https://acme.typeform.com/to/xyz":                     domain.PlatformTypeform,
		"https://www.surveymonkey.com/r/XYZ123":                domain.PlatformSurveyMonkey,
	}
	for rawURL, want := range cases {
		ex, err := d.Detect(rawURL)
		require.NoError(t, err, rawURL)
		require.Equal(t, want, ex.Platform(), rawURL)
	}
}

func TestDetectUnsupportedPlatform(t *testing.T) {
	_, err := newTestDetector().Detect("https://example.com/some/survey")
	require.ErrorIs(t, err, ErrUnsupportedPlatform)
}

func TestDetectRejectsInvalidURLs(t *testing.T) {
	d := newTestDetector()
	for _, rawURL := range []string{"", "not a url", "ftp://docs.google.com/forms", "https:///forms"} {
		_, err := d.Detect(rawURL)
		require.ErrorIs(t, err, ErrInvalidURL, "url=%q", rawURL)
	}
}

func TestDetectPrefersMoreSpecificMarker(t *testing.T) {
	fetcher := NewFetcher(0, nil)
	// Broad google.com pattern registered first; the narrower
	// docs.google.com/forms marker must still win.
	d := NewDetector(broadExtractor{}, NewGoogleFormsExtractor(fetcher))

	ex, err := d.Detect("https://docs.google.com/forms/d/e/1FAIpQLSd/viewform")
	require.NoError(t, err)
	require.Equal(t, domain.PlatformGoogleForms, ex.Platform())
}

func TestMarkerHostSuffixMatch(t *testing.T) {
	m := Marker{Host: "typeform.com"}
	u, _ := url.Parse("https://acme.typeform.com/to/x")
	require.True(t, m.matches(u))

	// Substring of the host label is not a suffix match.
	u, _ = url.Parse("https://eviltypeform.com/to/x")
	require.False(t, m.matches(u))
}
