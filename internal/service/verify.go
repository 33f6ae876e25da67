package service

import (
	"context"
	stderrors "errors"
	nethttp "net/http"
	"strings"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/news_verifier/internal/config"
	"github.com/iWorld-y/news_verifier/internal/engine"
	"github.com/iWorld-y/news_verifier/internal/model"
	"github.com/iWorld-y/news_verifier/internal/pagetext"
	"github.com/iWorld-y/news_verifier/internal/render"
	"github.com/iWorld-y/news_verifier/internal/verify"
)

const (
	SourcePage = "page"
	SourceText = "text"
)

// Runner 执行一次验证
type Runner interface {
	Run(ctx context.Context, opts engine.RunOptions) (*render.Document, error)
}

var _ Runner = (*engine.Engine)(nil)

// VerifyRequest POST /api/verify 请求体
type VerifyRequest struct {
	Mode string `json:"mode"`
	// Source news 模式下的输入来源: page 或 text，留空时有 url/html 即为 page
	Source      string `json:"source"`
	Text        string `json:"text"`
	URL         string `json:"url"`
	HTML        string `json:"html"`
	Question    string `json:"question"`
	Language    string `json:"language"`
	PublishDate string `json:"publish_date"`
	SurfaceID   string `json:"surface_id"`
}

// VerifyReply POST /api/verify 响应体
type VerifyReply struct {
	Document *render.Document `json:"document"`
	Text     string           `json:"text"`
}

type VerifyService struct {
	runner   Runner
	defaults config.DefaultsConfig
	log      *log.Helper
}

func NewVerifyService(runner Runner, cfg *config.Config, logger log.Logger) *VerifyService {
	return &VerifyService{
		runner:   runner,
		defaults: cfg.Defaults,
		log:      log.NewHelper(logger),
	}
}

// Verify 返回结构化文档与纯文本
func (s *VerifyService) Verify(ctx http.Context) error {
	doc, err := s.handle(ctx)
	if err != nil {
		return err
	}
	return ctx.Result(nethttp.StatusOK, &VerifyReply{
		Document: doc,
		Text:     render.Text(doc),
	})
}

// VerifyHTML 返回渲染好的 HTML 页面
func (s *VerifyService) VerifyHTML(ctx http.Context) error {
	doc, err := s.handle(ctx)
	if err != nil {
		return err
	}
	w := ctx.Response()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(nethttp.StatusOK)
	return render.WriteHTML(w, doc)
}

func (s *VerifyService) handle(ctx http.Context) (*render.Document, error) {
	var in VerifyRequest
	if err := ctx.Bind(&in); err != nil {
		return nil, errors.BadRequest("INVALID_REQUEST", "invalid request body").WithCause(err)
	}

	h := ctx.Middleware(func(c context.Context, req interface{}) (interface{}, error) {
		return s.Run(c, req.(*VerifyRequest))
	})
	out, err := h(ctx, &in)
	if err != nil {
		return nil, err
	}
	return out.(*render.Document), nil
}

// Run 将请求转换为运行选项并执行验证，错误统一转换为 kratos 错误
func (s *VerifyService) Run(ctx context.Context, in *VerifyRequest) (*render.Document, error) {
	opts, err := s.runOptions(in)
	if err != nil {
		return nil, ToHTTPError(err)
	}

	doc, err := s.runner.Run(ctx, opts)
	if err != nil {
		s.log.WithContext(ctx).Warnf("verify failed: mode=%s surface=%q err=%v", opts.Mode, opts.SurfaceID, err)
		return nil, ToHTTPError(err)
	}
	return doc, nil
}

func (s *VerifyService) runOptions(in *VerifyRequest) (engine.RunOptions, error) {
	modeStr := in.Mode
	if modeStr == "" {
		modeStr = s.defaults.Mode
	}
	mode, err := model.ParseMode(modeStr)
	if err != nil {
		return engine.RunOptions{}, verify.NewInvalidModeError(modeStr)
	}

	lang := in.Language
	if lang == "" {
		lang = s.defaults.Language
	}

	opts := engine.RunOptions{
		Mode:        mode,
		Language:    model.ParseLanguage(lang),
		PublishDate: in.PublishDate,
		SurfaceID:   in.SurfaceID,
	}

	switch mode {
	case model.ModeQA:
		opts.Question = in.Question
		if opts.Question == "" {
			opts.Question = in.Text
		}

	case model.ModeNews:
		source := strings.ToLower(strings.TrimSpace(in.Source))
		if source == "" && (in.URL != "" || in.HTML != "") {
			source = SourcePage
		}
		switch source {
		case SourcePage:
			opts.Page = &pagetext.Request{URL: in.URL, HTML: []byte(in.HTML)}
		case SourceText, "":
			opts.Text = in.Text
		default:
			return engine.RunOptions{}, errors.BadRequest("INVALID_SOURCE", "source must be page or text")
		}
	}
	return opts, nil
}

// ToHTTPError 将验证错误映射为 kratos 错误
func ToHTTPError(err error) error {
	if err == nil {
		return nil
	}
	if se := new(errors.Error); stderrors.As(err, &se) {
		return se
	}

	var ve *verify.Error
	switch {
	case stderrors.As(err, &ve):
		switch ve.Kind {
		case verify.KindEmptyText:
			return errors.BadRequest("EMPTY_TEXT", ve.UserMessage())
		case verify.KindInvalidMode:
			return errors.BadRequest("INVALID_MODE", ve.UserMessage())
		case verify.KindUnreachable:
			return errors.ServiceUnavailable("BACKEND_UNREACHABLE", ve.UserMessage()).WithCause(err)
		case verify.KindServerStatus:
			return errors.New(nethttp.StatusBadGateway, "BACKEND_STATUS", ve.UserMessage())
		case verify.KindReported:
			return errors.New(nethttp.StatusUnprocessableEntity, "BACKEND_REPORTED", ve.UserMessage())
		}
	case stderrors.Is(err, pagetext.ErrExtractFailed):
		return errors.BadRequest("PAGE_EXTRACTION_FAILED", "Failed to extract page text.").WithCause(err)
	case stderrors.Is(err, verify.ErrSuperseded):
		return errors.Conflict("SUPERSEDED", "request superseded by a newer one")
	}
	return errors.InternalServer("INTERNAL", err.Error())
}
