package server

import (
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/news_verifier/internal/conf"
	"github.com/iWorld-y/news_verifier/internal/config"
	"github.com/iWorld-y/news_verifier/internal/service"
)

// newTestServer 启动一个指向假验证后端的完整 HTTP 服务
func newTestServer(t *testing.T, backendStatus int, backendBody string) *httptest.Server {
	t.Helper()
	backend := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(backendStatus)
		_, _ = io.WriteString(w, backendBody)
	}))
	t.Cleanup(backend.Close)
	t.Setenv("VERIFIER_ENDPOINT", "")

	cfg, err := NewConfig(&conf.Verifier{Backend: &conf.Backend{Endpoint: backend.URL, Timeout: 5}})
	require.NoError(t, err)
	eng, cleanup, err := NewVerifierEngine(cfg, log.DefaultLogger)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	hs := NewHTTPServer(&conf.Server{}, service.NewVerifyService(eng, cfg, log.DefaultLogger), log.DefaultLogger)
	srv := httptest.NewServer(hs)
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) (*nethttp.Response, string) {
	t.Helper()
	resp, err := nethttp.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(b)
}

func TestVerify_Document(t *testing.T) {
	srv := newTestServer(t, nethttp.StatusOK, `{"mode":"qa","question":"Who?","answer":"Nobody."}`)

	resp, body := post(t, srv.URL+"/api/verify", `{"mode":"qa","question":"Who?"}`)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode, body)

	var reply struct {
		Document struct {
			Kind   string `json:"kind"`
			Blocks []struct {
				Label string `json:"label"`
				Text  string `json:"text"`
			} `json:"blocks"`
		} `json:"document"`
		Text string `json:"text"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &reply))
	assert.Equal(t, "qa", reply.Document.Kind)
	require.Len(t, reply.Document.Blocks, 2)
	assert.Equal(t, "Nobody.", reply.Document.Blocks[1].Text)
	assert.Equal(t, "Question: Who?\n\nAnswer: Nobody.\n", reply.Text)
}

func TestVerify_HTML(t *testing.T) {
	srv := newTestServer(t, nethttp.StatusOK, `{"overall_credibility":"LOW","claims":[]}`)

	resp, body := post(t, srv.URL+"/api/verify/html", `{"text":"Some news"}`)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode, body)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, "verdict-misleading")
}

func TestVerify_Errors(t *testing.T) {
	srv := newTestServer(t, nethttp.StatusOK, `{"error":"claim extraction failed"}`)

	resp, body := post(t, srv.URL+"/api/verify", `{"text":"   "}`)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "EMPTY_TEXT")

	resp, body = post(t, srv.URL+"/api/verify", `{"text":"something"}`)
	assert.Equal(t, nethttp.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "claim extraction failed")

	statusSrv := newTestServer(t, nethttp.StatusInternalServerError, `boom`)
	resp, body = post(t, statusSrv.URL+"/api/verify", `{"text":"something"}`)
	assert.Equal(t, nethttp.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body, "BACKEND_STATUS")
}

func TestHealthAndCORS(t *testing.T) {
	srv := newTestServer(t, nethttp.StatusOK, `{}`)

	resp, err := nethttp.Get(srv.URL + "/")
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, healthMessage, string(b))

	req, err := nethttp.NewRequest(nethttp.MethodOptions, srv.URL+"/api/verify", nil)
	require.NoError(t, err)
	resp, err = nethttp.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestNewConfig(t *testing.T) {
	t.Setenv("VERIFIER_ENDPOINT", "")
	t.Setenv("VERIFIER_TIMEOUT", "")

	cfg, err := NewConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultEndpoint, cfg.Backend.Endpoint)
	assert.Equal(t, config.DefaultTimeout, cfg.Backend.Timeout)

	cfg, err = NewConfig(&conf.Verifier{
		Backend:     &conf.Backend{Endpoint: "http://verifier:5000/verify", Timeout: 30},
		Page:        &conf.Page{Extractor: "dom"},
		Concurrency: &conf.Concurrency{Qps: 2, Rpm: 60},
	})
	require.NoError(t, err)
	assert.Equal(t, "http://verifier:5000/verify", cfg.Backend.Endpoint)
	assert.Equal(t, 30, cfg.Backend.Timeout)
	assert.Equal(t, "dom", cfg.Page.Extractor)
	assert.Equal(t, 60, cfg.Concurrency.RPM)

	_, err = NewConfig(&conf.Verifier{Backend: &conf.Backend{Endpoint: "not a url"}})
	assert.Error(t, err)
}
