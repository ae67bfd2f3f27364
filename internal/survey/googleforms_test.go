package survey

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/surveypay/backend/internal/domain"
)

// Five real questions and two page breaks (type tag 8).
const samplePublicLoadData = `<!DOCTYPE html><html><head><title>Customer Survey - Google Forms</title></head>
<body><script type="text/javascript">var FB_PUBLIC_LOAD_DATA_ = [null,["What we ask [and why]",[[111,"Q1",null,0],[112,"Q2",null,1],[113,null,null,8],[114,"Q3",null,2],[115,"Q4",null,4],[116,null,null,8],[117,"Q5",null,3]],null,null,null,null,null,null,"Customer Survey",null,[[1],[1]]],"/forms","Customer Survey",null,null,null,null,null,null,null,null,null,null,"1FAIpQLSdSAMPLE"];</script></body></html>`

func TestParsePublicLoadData(t *testing.T) {
	meta, err := parsePublicLoadData(samplePublicLoadData)
	require.NoError(t, err)

	require.Equal(t, "Customer Survey", meta.Title)
	require.Equal(t, "What we ask [and why]", meta.Description)
	require.Equal(t, 5, meta.QuestionCount, "page breaks must not count as questions")
	require.Equal(t, domain.PlatformGoogleForms, meta.Platform)
	require.Equal(t, "1FAIpQLSdSAMPLE", meta.FormID)
	require.True(t, meta.IsQuiz)
	require.True(t, meta.RequiresLogin)
	require.Empty(t, meta.Note)
}

func TestParsePublicLoadDataFallsBackToDocTitle(t *testing.T) {
	page := `<script>var FB_PUBLIC_LOAD_DATA_ = [null,[null,[[1,"Q",null,0]]],"/forms","Doc Title"];</script>`
	meta, err := parsePublicLoadData(page)
	require.NoError(t, err)
	require.Equal(t, "Doc Title", meta.Title)
	require.Equal(t, 1, meta.QuestionCount)
	require.False(t, meta.IsQuiz)
	require.False(t, meta.RequiresLogin)
}

func TestParsePublicLoadDataMissingMarker(t *testing.T) {
	_, err := parsePublicLoadData(`<html><body>no embedded data here</body></html>`)
	require.ErrorIs(t, err, ErrUnrecognizedFormat)
}

func TestParsePublicLoadDataMalformedLiteral(t *testing.T) {
	_, err := parsePublicLoadData(`<script>var FB_PUBLIC_LOAD_DATA_ = [unquoted,];</script>`)
	require.ErrorIs(t, err, ErrUnrecognizedFormat)
}

func TestParsePublicLoadDataMissingFormBlock(t *testing.T) {
	_, err := parsePublicLoadData(`<script>var FB_PUBLIC_LOAD_DATA_ = [null,"not a block"];</script>`)
	require.True(t, errors.Is(err, ErrUnsupportedLayout))
}

func TestCaptureJSONAfterRespectsBound(t *testing.T) {
	page := publicLoadDataMarker + " [1,2,3,[4,5]]"
	_, ok := captureJSONAfter(page, publicLoadDataMarker, 4)
	require.False(t, ok, "scan must stop at the byte cap")

	literal, ok := captureJSONAfter(page, publicLoadDataMarker, maxEmbeddedPayload)
	require.True(t, ok)
	require.Equal(t, "[1,2,3,[4,5]]", literal)
}

func TestCaptureJSONAfterIgnoresBracketsInStrings(t *testing.T) {
	page := `var FB_PUBLIC_LOAD_DATA_ = ["a ] tricky \" string", 2];tail`
	literal, ok := captureJSONAfter(page, publicLoadDataMarker, maxEmbeddedPayload)
	require.True(t, ok)
	require.Equal(t, `["a ] tricky \" string", 2]`, literal)
}

func TestCaptureJSONAfterUnclosedLiteral(t *testing.T) {
	_, ok := captureJSONAfter(`var FB_PUBLIC_LOAD_DATA_ = [1,2`, publicLoadDataMarker, maxEmbeddedPayload)
	require.False(t, ok)
}
