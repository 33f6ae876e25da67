package verify

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/news_verifier/internal/model"
)

func TestResolveLanguage_ExplicitSelectionUnchanged(t *testing.T) {
	texts := []string{"Hello world", "測試新聞", "Breaking: 測試", ""}
	for _, lang := range []model.Language{"en", "zh-TW", "ja", "fr-CA"} {
		for _, text := range texts {
			assert.Equal(t, lang, ResolveLanguage(lang, text, "de"), "lang=%s text=%q", lang, text)
		}
	}
}

func TestResolveLanguage_Heuristic(t *testing.T) {
	tests := []struct {
		text string
		want model.Language
	}{
		{"Hello world", "en"},
		{"測試新聞", "zh-TW"},
		{"Breaking: 測試", "zh-TW"},
		{"一", "zh-TW"},  // U+4E00
		{"龥", "zh-TW"},  // U+9FA5
		{"龦", "en"},     // U+9FA6, outside the range
		{"㐀", "en"},     // U+3400, extension A is not included
		{"こんにちは", "en"}, // kana only
		{"", "en"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveLanguage(model.LanguageAuto, tt.text, ""), "text=%q", tt.text)
	}
}

func TestResolveLanguage_HintWins(t *testing.T) {
	assert.Equal(t, model.Language("ja"), ResolveLanguage(model.LanguageAuto, "測試新聞", "ja"))
	assert.Equal(t, model.Language("zh-CN"), ResolveLanguage(model.LanguageAuto, "Hello", "zh-CN"))
}

func TestBuildRequest_EmptyText(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t "} {
		req, err := BuildRequest(model.ModeNews, text, model.LanguageAuto, "", "")
		assert.Nil(t, req)
		require.Error(t, err)
		assert.Equal(t, KindEmptyText, KindOf(err))
	}
}

func TestBuildRequest_InvalidMode(t *testing.T) {
	_, err := BuildRequest(model.Mode("blog"), "ok", model.LanguageAuto, "", "")
	require.Error(t, err)
	assert.Equal(t, KindInvalidMode, KindOf(err))
}

func TestBuildRequest_OmitsPublishDate(t *testing.T) {
	req, err := BuildRequest(model.ModeNews, "ok", model.LanguageAuto, "", "")
	require.NoError(t, err)
	assert.Nil(t, req.PublishDate)

	b, err := json.Marshal(req)
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(b, &fields))
	assert.NotContains(t, fields, "publishDate")
	assert.Equal(t, map[string]any{"mode": "news", "text": "ok", "language": "en"}, fields)
}

func TestBuildRequest_Full(t *testing.T) {
	req, err := BuildRequest(model.ModeNews, "  台積電宣布新廠  ", model.LanguageAuto, "", "2025-02-17")
	require.NoError(t, err)
	assert.Equal(t, "台積電宣布新廠", req.Text)
	assert.Equal(t, model.LanguageZhTW, req.Language)
	require.NotNil(t, req.PublishDate)
	assert.Equal(t, "2025-02-17", *req.PublishDate)

	b, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"mode":"news","text":"台積電宣布新廠","language":"zh-TW","publishDate":"2025-02-17"}`, string(b))
}

func TestBuildRequest_HintAndSelection(t *testing.T) {
	req, err := BuildRequest(model.ModeQA, "Who won?", model.LanguageAuto, "fr", "")
	require.NoError(t, err)
	assert.Equal(t, model.Language("fr"), req.Language)
	assert.Equal(t, model.ModeQA, req.Mode)

	req, err = BuildRequest(model.ModeQA, "誰贏了？", "en", "fr", "")
	require.NoError(t, err)
	assert.Equal(t, model.Language("en"), req.Language)
}

func TestError_UserMessage(t *testing.T) {
	endpoint := "http://127.0.0.1:5000/verify"

	assert.Equal(t, "Please enter some text.", NewEmptyTextError().UserMessage())
	assert.Contains(t, NewUnreachableError(endpoint, "request failed", nil).UserMessage(), endpoint)

	status := NewServerStatusError(endpoint, 500).UserMessage()
	assert.Contains(t, status, "500")
	assert.Contains(t, status, endpoint)

	assert.Equal(t, "No text provided", NewReportedError(endpoint, "No text provided").UserMessage())
	assert.True(t, NewEmptyTextError().IsInput())
	assert.False(t, NewServerStatusError(endpoint, 502).IsInput())
}
