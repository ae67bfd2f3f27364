package survey

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/surveypay/backend/internal/domain"
)

// GoogleFormsExtractor reads the FB_PUBLIC_LOAD_DATA_ payload Google Forms
// embeds in every public form page.
type GoogleFormsExtractor struct {
	fetcher *Fetcher
}

func NewGoogleFormsExtractor(fetcher *Fetcher) *GoogleFormsExtractor {
	return &GoogleFormsExtractor{fetcher: fetcher}
}

func (e *GoogleFormsExtractor) Platform() domain.Platform {
	return domain.PlatformGoogleForms
}

func (e *GoogleFormsExtractor) Markers() []Marker {
	return []Marker{
		{Host: "docs.google.com", PathPrefix: "/forms"},
		{Host: "forms.gle"},
	}
}

func (e *GoogleFormsExtractor) CanHandle(u *url.URL) bool {
	return MatchMarkers(e.Markers(), u)
}

func (e *GoogleFormsExtractor) Extract(ctx context.Context, rawURL string) (*domain.SurveyMetadata, error) {
	page, err := e.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return parsePublicLoadData(page)
}

func parsePublicLoadData(page string) (*domain.SurveyMetadata, error) {
	literal, ok := captureJSONAfter(page, publicLoadDataMarker, maxEmbeddedPayload)
	if !ok {
		return nil, ErrUnrecognizedFormat
	}

	var decoded []any
	if err := json.Unmarshal([]byte(literal), &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnrecognizedFormat, err)
	}
	root := jsonArray(decoded)

	block, ok := root.arrayAt(idxFormBlock)
	if !ok {
		return nil, ErrUnsupportedLayout
	}
	questions, ok := block.arrayAt(blockIdxQuestions)
	if !ok {
		return nil, ErrUnsupportedLayout
	}

	count := 0
	for _, raw := range questions {
		q, ok := asArray(raw)
		if !ok {
			continue
		}
		tag, ok := q.numberAt(questionIdxType)
		if !ok {
			continue
		}
		if int(tag) != typeTagPageBreak {
			count++
		}
	}

	title := block.stringAt(blockIdxTitle)
	if title == "" {
		// Untitled forms still carry the document title at the top level.
		title = root.stringAt(idxDocTitle)
	}

	meta := &domain.SurveyMetadata{
		Title:         title,
		Description:   block.stringAt(blockIdxDescription),
		QuestionCount: count,
		Platform:      domain.PlatformGoogleForms,
		FormID:        root.stringAt(idxFormID),
	}
	if settings, ok := block.arrayAt(blockIdxSettings); ok {
		meta.IsQuiz = settings.flagAt(settingsIdxQuiz)
		meta.RequiresLogin = settings.flagAt(settingsIdxRequiresLogin)
	}
	return meta, nil
}
