package survey

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/surveypay/backend/internal/domain"
)

const typeformDataMarker = "window.rendererData ="

// typeformRendererData is the slice of the embedded renderer payload we care
// about. Unknown fields are ignored on purpose.
type typeformRendererData struct {
	Form struct {
		ID             string `json:"id"`
		Title          string `json:"title"`
		WelcomeScreens []struct {
			Title      string `json:"title"`
			Properties struct {
				Description string `json:"description"`
			} `json:"properties"`
		} `json:"welcome_screens"`
		Fields []struct {
			Type string `json:"type"`
		} `json:"fields"`
	} `json:"form"`
}

// TypeformExtractor reads the renderer payload Typeform embeds in form
// pages, degrading to markup counting when the payload is absent.
type TypeformExtractor struct {
	fetcher *Fetcher
}

func NewTypeformExtractor(fetcher *Fetcher) *TypeformExtractor {
	return &TypeformExtractor{fetcher: fetcher}
}

func (e *TypeformExtractor) Platform() domain.Platform {
	return domain.PlatformTypeform
}

func (e *TypeformExtractor) Markers() []Marker {
	return []Marker{{Host: "typeform.com"}}
}

func (e *TypeformExtractor) CanHandle(u *url.URL) bool {
	return MatchMarkers(e.Markers(), u)
}

func (e *TypeformExtractor) Extract(ctx context.Context, rawURL string) (*domain.SurveyMetadata, error) {
	page, err := e.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if meta, ok := parseTypeformRendererData(page); ok {
		return meta, nil
	}
	// Renderer payload missing: count question markup instead.
	return countMarkupQuestions(page, domain.PlatformTypeform, "[data-qa^='question']")
}

func parseTypeformRendererData(page string) (*domain.SurveyMetadata, bool) {
	literal, ok := captureJSONAfter(page, typeformDataMarker, maxEmbeddedPayload)
	if !ok {
		return nil, false
	}
	var data typeformRendererData
	if err := json.Unmarshal([]byte(literal), &data); err != nil {
		return nil, false
	}

	count := 0
	for _, f := range data.Form.Fields {
		// Statement screens display text without asking anything.
		if f.Type != "statement" {
			count++
		}
	}

	meta := &domain.SurveyMetadata{
		Title:         data.Form.Title,
		QuestionCount: count,
		Platform:      domain.PlatformTypeform,
		FormID:        data.Form.ID,
	}
	if len(data.Form.WelcomeScreens) > 0 {
		ws := data.Form.WelcomeScreens[0]
		meta.Description = ws.Properties.Description
		if meta.Title == "" {
			meta.Title = ws.Title
		}
	}
	return meta, true
}

// countMarkupQuestions is the degraded fallback shared by platforms without a
// readable embedded payload: count question-container markup and flag the
// reduced confidence through Note. Fragile against upstream markup changes,
// which is why it lives behind the Extractor contract.
func countMarkupQuestions(page string, platform domain.Platform, selectors ...string) (*domain.SurveyMetadata, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, ErrUnrecognizedFormat
	}

	count := 0
	for _, sel := range selectors {
		if n := doc.Find(sel).Length(); n > count {
			count = n
		}
	}

	title, _ := doc.Find("meta[property='og:title']").Attr("content")
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	description, _ := doc.Find("meta[property='og:description']").Attr("content")

	if title == "" && count == 0 {
		return nil, ErrUnrecognizedFormat
	}
	return &domain.SurveyMetadata{
		Title:         title,
		Description:   description,
		QuestionCount: count,
		Platform:      platform,
		Note:          "question count estimated from page markup",
	}, nil
}
