package pagetext

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/iWorld-y/news_verifier/internal/logger"
	"github.com/iWorld-y/news_verifier/internal/model"
)

const (
	DefaultUserAgent = "Mozilla/5.0 (compatible; news-verifier/1.0)"
	maxPageBytes     = 10 << 20
	dateLayout       = time.DateOnly
)

// ErrExtractFailed 页面没有可用正文
var ErrExtractFailed = errors.New("failed to extract page text")

// Provider 定义页面正文提取接口
type Provider interface {
	Extract(ctx context.Context, req *Request) (*PageText, error)
}

// Request 提取请求。HTML 非空时直接解析，否则抓取 URL
type Request struct {
	URL  string
	HTML []byte
}

// PageText 提取结果，Language 与 PublishDate 可能为空
type PageText struct {
	Text        string
	Language    model.Language
	PublishDate string
}

// Fetcher 负责下载页面
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher 创建页面下载器
func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Fetch 下载页面 HTML
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) ([]byte, error) {
	logger.Log.WithField("url", pageURL).Debug("开始抓取页面")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch page: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("read page: %w", err)
	}
	return body, nil
}

func (f *Fetcher) load(ctx context.Context, req *Request) ([]byte, error) {
	if req == nil {
		return nil, ErrExtractFailed
	}
	if len(req.HTML) > 0 {
		return req.HTML, nil
	}
	if req.URL == "" {
		return nil, ErrExtractFailed
	}
	return f.Fetch(ctx, req.URL)
}

// NormalizeLanguage 将页面声明的语言规范化为 BCP 47 标签，无法解析时返回空
func NormalizeLanguage(raw string) model.Language {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	tag, err := language.Parse(strings.ReplaceAll(raw, "_", "-"))
	if err != nil || tag == language.Und {
		return ""
	}
	return model.Language(tag.String())
}

// normalizeDate 接受常见时间格式，统一为 YYYY-MM-DD
func normalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339, time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04", dateLayout} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(dateLayout)
		}
	}
	if len(raw) >= len(dateLayout) {
		if t, err := time.Parse(dateLayout, raw[:len(dateLayout)]); err == nil {
			return t.Format(dateLayout)
		}
	}
	return ""
}
