package pagetext

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"

	"github.com/iWorld-y/news_verifier/internal/logger"
)

// ReadabilityProvider 使用 go-readability 提取正文
type ReadabilityProvider struct {
	fetcher *Fetcher
}

var _ Provider = (*ReadabilityProvider)(nil)

// NewReadabilityProvider 创建 readability 提取器
func NewReadabilityProvider(fetcher *Fetcher) *ReadabilityProvider {
	return &ReadabilityProvider{fetcher: fetcher}
}

func (p *ReadabilityProvider) Extract(ctx context.Context, req *Request) (*PageText, error) {
	html, err := p.fetcher.load(ctx, req)
	if err != nil {
		return nil, err
	}

	var pageURL *url.URL
	if req.URL != "" {
		if u, err := url.Parse(req.URL); err == nil {
			pageURL = u
		}
	}

	article, err := readability.FromReader(bytes.NewReader(html), pageURL)
	if err != nil {
		return nil, fmt.Errorf("readability parse: %w", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return nil, ErrExtractFailed
	}

	out := &PageText{
		Text:     text,
		Language: NormalizeLanguage(article.Language),
	}
	if article.PublishedTime != nil {
		out.PublishDate = article.PublishedTime.Format(dateLayout)
	}

	logger.Log.WithField("title", article.Title).Debugf("readability 提取完成, 长度: %d", len(text))
	return out, nil
}
