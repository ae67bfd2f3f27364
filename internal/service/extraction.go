package service

import (
	"context"
	"errors"

	"github.com/surveypay/backend/internal/domain"
	"github.com/surveypay/backend/internal/survey"
)

// ExtractionService turns a survey link into normalized metadata:
// validate → expand shortlink → detect platform → extract.
type ExtractionService struct {
	detector *survey.Detector
	resolver *survey.ShortlinkResolver
}

func NewExtractionService(detector *survey.Detector, resolver *survey.ShortlinkResolver) *ExtractionService {
	return &ExtractionService{detector: detector, resolver: resolver}
}

// Extract returns metadata for the survey behind rawURL, translating the
// extraction failure classes into HTTP-mapped application errors.
func (s *ExtractionService) Extract(ctx context.Context, rawURL string) (*domain.SurveyMetadata, error) {
	u, err := survey.ParseURL(rawURL)
	if err != nil {
		return nil, domain.ErrBadRequest("invalid survey url")
	}

	if s.resolver != nil && survey.IsShortlink(u) {
		// Expansion failure is non-fatal; detection may still match the
		// shortener host itself (forms.gle does).
		if expanded, err := s.resolver.Expand(ctx, rawURL); err == nil {
			rawURL = expanded
		}
	}

	extractor, err := s.detector.Detect(rawURL)
	if err != nil {
		if errors.Is(err, survey.ErrInvalidURL) {
			return nil, domain.ErrBadRequest("invalid survey url")
		}
		return nil, domain.ErrBadRequest("unsupported survey platform")
	}

	meta, err := extractor.Extract(ctx, rawURL)
	if err != nil {
		switch {
		case errors.Is(err, survey.ErrUpstreamUnavailable):
			return nil, domain.ErrUpstream("survey platform unreachable", err)
		case errors.Is(err, survey.ErrUnrecognizedFormat), errors.Is(err, survey.ErrUnsupportedLayout):
			return nil, domain.ErrNotFound("no recognizable survey data at url")
		default:
			return nil, domain.ErrInternal("extraction failed", err)
		}
	}
	return meta, nil
}
