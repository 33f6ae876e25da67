package engine

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/iWorld-y/news_verifier/internal/config"
	"github.com/iWorld-y/news_verifier/internal/logger"
	"github.com/iWorld-y/news_verifier/internal/model"
	"github.com/iWorld-y/news_verifier/internal/pagetext"
	"github.com/iWorld-y/news_verifier/internal/pagetext/factory"
	"github.com/iWorld-y/news_verifier/internal/render"
	"github.com/iWorld-y/news_verifier/internal/verify"
)

const (
	StatusReadingPage = "Reading page content..."
	StatusVerifying   = "Verifying with AI agent..."
	StatusDone        = "done"
)

// Engine 串联正文提取、验证请求与结果渲染
type Engine struct {
	submitter verify.Submitter
	provider  pagetext.Provider
	surfaces  *verify.Surfaces
}

// NewEngine 根据配置创建引擎实例
func NewEngine(cfg *config.Config) (*Engine, error) {
	var opts []verify.Option
	if cfg.Concurrency.RPM > 0 {
		// 初始化限流器
		limit := rate.Limit(float64(cfg.Concurrency.RPM) / 60.0)
		burst := cfg.Concurrency.QPS
		if burst <= 0 {
			burst = 1
		}
		opts = append(opts, verify.WithLimiter(rate.NewLimiter(limit, burst)))
	}
	submitter := verify.NewOrchestrator(cfg.Backend.Endpoint, cfg.Backend.TimeoutDuration(), opts...)

	provider, err := factory.NewProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("正文提取器初始化失败: %w", err)
	}

	return New(submitter, provider), nil
}

// New 使用给定组件创建引擎
func New(submitter verify.Submitter, provider pagetext.Provider) *Engine {
	return &Engine{
		submitter: submitter,
		provider:  provider,
		surfaces:  &verify.Surfaces{},
	}
}

// RunOptions 运行选项
type RunOptions struct {
	Mode model.Mode
	// Text news 模式下的粘贴文本，Page 为空时使用
	Text string
	// Question qa 模式下的问题
	Question string
	// Page news 模式下待提取的页面
	Page        *pagetext.Request
	Language    model.Language
	PublishDate string
	// SurfaceID 非空时同一界面上新请求会取代旧请求
	SurfaceID        string
	ProgressCallback func(status string)
}

// Run 执行一次验证并返回展示文档
func (e *Engine) Run(ctx context.Context, opts RunOptions) (*render.Document, error) {
	var doc *render.Document
	run := func(ctx context.Context) error {
		var err error
		doc, err = e.run(ctx, opts)
		return err
	}

	if opts.SurfaceID == "" {
		if err := run(ctx); err != nil {
			return nil, err
		}
		return doc, nil
	}

	if err := e.surfaces.Do(ctx, opts.SurfaceID, run); err != nil {
		return nil, err
	}
	return doc, nil
}

func (e *Engine) run(ctx context.Context, opts RunOptions) (*render.Document, error) {
	lang := model.ParseLanguage(string(opts.Language))

	var (
		source      string
		hint        model.Language
		publishDate = opts.PublishDate
	)

	switch opts.Mode {
	case model.ModeQA:
		source = opts.Question

	case model.ModeNews:
		if opts.Page == nil {
			source = opts.Text
			break
		}
		progress(opts, StatusReadingPage)
		page, err := e.provider.Extract(ctx, opts.Page)
		if err != nil {
			logger.Log.Errorf("页面正文提取失败: %v", err)
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if !errors.Is(err, pagetext.ErrExtractFailed) {
				err = fmt.Errorf("%w: %w", pagetext.ErrExtractFailed, err)
			}
			return nil, err
		}
		source = page.Text
		hint = page.Language
		if publishDate == "" {
			publishDate = page.PublishDate
		}

	default:
		return nil, verify.NewInvalidModeError(string(opts.Mode))
	}

	req, err := verify.BuildRequest(opts.Mode, source, lang, hint, publishDate)
	if err != nil {
		return nil, err
	}

	progress(opts, StatusVerifying)
	result, err := e.submitter.Submit(ctx, req)
	if err != nil {
		return nil, err
	}

	doc := render.Render(result)
	progress(opts, StatusDone)
	return doc, nil
}

func progress(opts RunOptions, status string) {
	if opts.ProgressCallback != nil {
		opts.ProgressCallback(status)
	}
}
