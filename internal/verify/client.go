package verify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/news_verifier/internal/logger"
	"github.com/iWorld-y/news_verifier/internal/model"
)

// Submitter 提交验证请求
type Submitter interface {
	Submit(ctx context.Context, req *model.Request) (model.Result, error)
}

// Orchestrator 验证后端客户端。每次 Submit 独立，无重试、无会话
type Orchestrator struct {
	endpoint string
	client   *http.Client
	limiter  *rate.Limiter
}

// Ensure Orchestrator implements Submitter
var _ Submitter = (*Orchestrator)(nil)

// Option 配置 Orchestrator
type Option func(*Orchestrator)

// WithHTTPClient 使用自定义 http.Client
func WithHTTPClient(c *http.Client) Option {
	return func(o *Orchestrator) {
		o.client = c
	}
}

// WithLimiter 提交前等待限流令牌，仅用于节流，不会重试
func WithLimiter(l *rate.Limiter) Option {
	return func(o *Orchestrator) {
		o.limiter = l
	}
}

// NewOrchestrator 创建验证客户端，timeout 为 0 时使用 transport 默认行为
func NewOrchestrator(endpoint string, timeout time.Duration, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Submit 发送一次验证请求并返回结果或 *Error
func (o *Orchestrator) Submit(ctx context.Context, req *model.Request) (model.Result, error) {
	if req == nil || strings.TrimSpace(req.Text) == "" {
		return nil, NewEmptyTextError()
	}

	requestID := uuid.NewString()
	log := logger.Log.WithField("request_id", requestID)

	if o.limiter != nil {
		if err := o.limiter.Wait(ctx); err != nil {
			return nil, NewUnreachableError(o.endpoint, "limiter wait failed", err)
		}
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request failed: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, NewUnreachableError(o.endpoint, "create request failed", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)

	log.Debugf("提交验证请求: mode=%s language=%s text_len=%d", req.Mode, req.Language, len(req.Text))
	start := time.Now()

	res, err := o.client.Do(httpReq)
	if err != nil {
		log.Warnf("验证后端不可达 [%s]: %v", o.endpoint, err)
		return nil, NewUnreachableError(o.endpoint, "request failed", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, NewUnreachableError(o.endpoint, "read body failed", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		log.Warnf("验证后端返回异常状态 (status %d): %s", res.StatusCode, truncate(body, 200))
		return nil, NewServerStatusError(o.endpoint, res.StatusCode)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, NewUnreachableError(o.endpoint, "invalid response body", err)
	}
	if raw, ok := fields["error"]; ok {
		var msg model.Text
		_ = msg.UnmarshalJSON(raw)
		if msg != "" {
			log.Infof("验证后端报告错误: %s", msg)
			return nil, NewReportedError(o.endpoint, string(msg))
		}
	}

	result, err := model.UnmarshalResult(body)
	if err != nil {
		return nil, NewUnreachableError(o.endpoint, "invalid response body", err)
	}

	log.Infof("验证完成: kind=%s 耗时 %v", result.Kind(), time.Since(start).Round(time.Millisecond))
	return result, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
