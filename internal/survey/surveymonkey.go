package survey

import (
	"context"
	"net/url"

	"github.com/surveypay/backend/internal/domain"
)

// SurveyMonkeyExtractor has no stable embedded payload to read; it counts
// question markup and reports the reduced confidence through Note.
type SurveyMonkeyExtractor struct {
	fetcher *Fetcher
}

func NewSurveyMonkeyExtractor(fetcher *Fetcher) *SurveyMonkeyExtractor {
	return &SurveyMonkeyExtractor{fetcher: fetcher}
}

func (e *SurveyMonkeyExtractor) Platform() domain.Platform {
	return domain.PlatformSurveyMonkey
}

func (e *SurveyMonkeyExtractor) Markers() []Marker {
	return []Marker{{Host: "surveymonkey.com"}}
}

func (e *SurveyMonkeyExtractor) CanHandle(u *url.URL) bool {
	return MatchMarkers(e.Markers(), u)
}

func (e *SurveyMonkeyExtractor) Extract(ctx context.Context, rawURL string) (*domain.SurveyMetadata, error) {
	page, err := e.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return countMarkupQuestions(page, domain.PlatformSurveyMonkey,
		".question-container", "[id^='question-field-']")
}
