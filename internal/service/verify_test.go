package service

import (
	"context"
	stderrors "errors"
	"fmt"
	nethttp "net/http"
	"testing"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/news_verifier/internal/config"
	"github.com/iWorld-y/news_verifier/internal/engine"
	"github.com/iWorld-y/news_verifier/internal/model"
	"github.com/iWorld-y/news_verifier/internal/pagetext"
	"github.com/iWorld-y/news_verifier/internal/render"
	"github.com/iWorld-y/news_verifier/internal/verify"
)

// mockRunner 记录运行选项
type mockRunner struct {
	opts engine.RunOptions
	doc  *render.Document
	err  error
}

func (m *mockRunner) Run(ctx context.Context, opts engine.RunOptions) (*render.Document, error) {
	m.opts = opts
	return m.doc, m.err
}

func newService(r Runner) *VerifyService {
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	return NewVerifyService(r, cfg, log.DefaultLogger)
}

func TestRun_Defaults(t *testing.T) {
	r := &mockRunner{doc: &render.Document{Kind: model.KindQA}}
	doc, err := newService(r).Run(context.Background(), &VerifyRequest{Text: "hello", SurfaceID: "tab-1"})
	require.NoError(t, err)
	assert.Equal(t, model.KindQA, doc.Kind)

	assert.Equal(t, model.ModeNews, r.opts.Mode)
	assert.Equal(t, model.LanguageAuto, r.opts.Language)
	assert.Equal(t, "hello", r.opts.Text)
	assert.Nil(t, r.opts.Page)
	assert.Equal(t, "tab-1", r.opts.SurfaceID)
}

func TestRun_PageSource(t *testing.T) {
	r := &mockRunner{doc: &render.Document{}}
	s := newService(r)

	_, err := s.Run(context.Background(), &VerifyRequest{Mode: "news", URL: "https://example.com", Language: "en"})
	require.NoError(t, err)
	require.NotNil(t, r.opts.Page)
	assert.Equal(t, "https://example.com", r.opts.Page.URL)
	assert.Equal(t, model.LanguageEnglish, r.opts.Language)

	_, err = s.Run(context.Background(), &VerifyRequest{Mode: "news", Source: "text", Text: "t", URL: "https://example.com"})
	require.NoError(t, err)
	assert.Nil(t, r.opts.Page)
	assert.Equal(t, "t", r.opts.Text)

	_, err = s.Run(context.Background(), &VerifyRequest{Source: "page", HTML: "<p>x</p>"})
	require.NoError(t, err)
	assert.Equal(t, []byte("<p>x</p>"), r.opts.Page.HTML)
}

func TestRun_LanguageAutoAnyCase(t *testing.T) {
	r := &mockRunner{doc: &render.Document{}}
	s := newService(r)
	for _, lang := range []string{"AUTO", "Auto", " auto "} {
		_, err := s.Run(context.Background(), &VerifyRequest{Text: "x", Language: lang})
		require.NoError(t, err)
		assert.Equal(t, model.LanguageAuto, r.opts.Language, "language=%q", lang)
	}
}

func TestRun_QA(t *testing.T) {
	r := &mockRunner{doc: &render.Document{}}
	_, err := newService(r).Run(context.Background(), &VerifyRequest{Mode: "QA", Question: "Who?", Text: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, model.ModeQA, r.opts.Mode)
	assert.Equal(t, "Who?", r.opts.Question)
}

func TestRun_InvalidInput(t *testing.T) {
	s := newService(&mockRunner{})

	_, err := s.Run(context.Background(), &VerifyRequest{Mode: "blog", Text: "x"})
	assert.Equal(t, "INVALID_MODE", errors.Reason(err))
	assert.Equal(t, nethttp.StatusBadRequest, errors.Code(err))

	_, err = s.Run(context.Background(), &VerifyRequest{Source: "pdf", Text: "x"})
	assert.Equal(t, "INVALID_SOURCE", errors.Reason(err))
}

func TestToHTTPError(t *testing.T) {
	endpoint := "http://127.0.0.1:5000/verify"
	tests := []struct {
		err    error
		code   int
		reason string
	}{
		{verify.NewEmptyTextError(), nethttp.StatusBadRequest, "EMPTY_TEXT"},
		{verify.NewInvalidModeError("blog"), nethttp.StatusBadRequest, "INVALID_MODE"},
		{verify.NewUnreachableError(endpoint, "request failed", stderrors.New("refused")), nethttp.StatusServiceUnavailable, "BACKEND_UNREACHABLE"},
		{verify.NewServerStatusError(endpoint, 500), nethttp.StatusBadGateway, "BACKEND_STATUS"},
		{verify.NewReportedError(endpoint, "No text provided"), nethttp.StatusUnprocessableEntity, "BACKEND_REPORTED"},
		{fmt.Errorf("%w: timeout", pagetext.ErrExtractFailed), nethttp.StatusBadRequest, "PAGE_EXTRACTION_FAILED"},
		{verify.ErrSuperseded, nethttp.StatusConflict, "SUPERSEDED"},
		{stderrors.New("unexpected"), nethttp.StatusInternalServerError, "INTERNAL"},
	}
	for _, tt := range tests {
		err := ToHTTPError(tt.err)
		assert.Equal(t, tt.code, errors.Code(err), tt.reason)
		assert.Equal(t, tt.reason, errors.Reason(err))
	}

	assert.NoError(t, ToHTTPError(nil))
	assert.Equal(t, "No text provided", errors.FromError(ToHTTPError(verify.NewReportedError(endpoint, "No text provided"))).Message)
}

func TestRun_RunnerErrorMapped(t *testing.T) {
	s := newService(&mockRunner{err: verify.NewServerStatusError("http://backend", 500)})
	_, err := s.Run(context.Background(), &VerifyRequest{Text: "x"})
	assert.Equal(t, nethttp.StatusBadGateway, errors.Code(err))
}
