package pagetext

import (
	"context"
	"errors"

	"github.com/iWorld-y/news_verifier/internal/logger"
)

// Chain 依次尝试多个提取器，返回第一个有正文的结果
type Chain []Provider

var _ Provider = Chain(nil)

func (c Chain) Extract(ctx context.Context, req *Request) (*PageText, error) {
	var errs []error
	for _, p := range c {
		page, err := p.Extract(ctx, req)
		if err == nil && page != nil && page.Text != "" {
			return page, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err != nil {
			logger.Log.Warnf("正文提取失败, 尝试下一个提取器: %v", err)
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil, ErrExtractFailed
	}
	return nil, errors.Join(append([]error{ErrExtractFailed}, errs...)...)
}
