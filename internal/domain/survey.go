package domain

// Platform identifies the survey service a link points at.
type Platform string

const (
	PlatformGoogleForms  Platform = "google_forms"
	PlatformTypeform     Platform = "typeform"
	PlatformSurveyMonkey Platform = "surveymonkey"
	PlatformUnknown      Platform = "unknown"
)

// SurveyMetadata is the normalized result of scraping a survey page.
// It is produced once per extraction request and never mutated afterwards.
type SurveyMetadata struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	QuestionCount int      `json:"questionCount"`
	Platform      Platform `json:"platform"`
	FormID        string   `json:"formId,omitempty"`
	IsQuiz        bool     `json:"isQuiz,omitempty"`
	RequiresLogin bool     `json:"requiresLogin,omitempty"`
	// Note is set when extraction had to fall back to a degraded path
	// (e.g. counting question markup instead of reading embedded data).
	Note string `json:"note,omitempty"`
}

// ExtractRequest is the input for the extraction endpoint.
type ExtractRequest struct {
	URL string `json:"url" validate:"required,url"`
}
