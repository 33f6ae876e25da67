package factory

import (
	"fmt"
	"time"

	"github.com/iWorld-y/news_verifier/internal/config"
	"github.com/iWorld-y/news_verifier/internal/pagetext"
)

// NewProvider 根据配置创建正文提取器
func NewProvider(cfg *config.Config) (pagetext.Provider, error) {
	fetcher := pagetext.NewFetcher(time.Duration(cfg.Page.Timeout)*time.Second, cfg.Page.UserAgent)

	switch cfg.Page.Extractor {
	case "":
		// 默认先用 readability，正文为空时退回整页文本
		return pagetext.Chain{
			pagetext.NewReadabilityProvider(fetcher),
			pagetext.NewDOMProvider(fetcher),
		}, nil

	case "readability":
		return pagetext.NewReadabilityProvider(fetcher), nil

	case "dom":
		return pagetext.NewDOMProvider(fetcher), nil

	default:
		return nil, fmt.Errorf("unknown page extractor: %s", cfg.Page.Extractor)
	}
}
