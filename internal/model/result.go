package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ResultKind 结果形态
type ResultKind string

const (
	KindClaims      ResultKind = "claims"
	KindNewsArticle ResultKind = "news_article"
	KindQA          ResultKind = "qa"
)

// Result 验证结果，按 mode 区分三种形态
type Result interface {
	Kind() ResultKind
}

// Breakdown 证据分布
type Breakdown struct {
	Support    Count `json:"support"`
	Refute     Count `json:"refute"`
	Irrelevant Count `json:"irrelevant"`
}

// Entry 单条声明（claims 形态）或细节（news_article 形态）
type Entry struct {
	Claim         Text       `json:"claim"`
	Detail        Text       `json:"detail"`
	SearchQuery   Text       `json:"search_query"`
	EvidenceCount Count      `json:"evidence_count"`
	Breakdown     *Breakdown `json:"evidence_breakdown"`
	Verdict       Text       `json:"verdict"`
	Explanation   Text       `json:"explanation"`
}

// Statement 返回条目正文，claim 优先
func (e Entry) Statement() string {
	if e.Claim != "" {
		return string(e.Claim)
	}
	return string(e.Detail)
}

// ClaimResult 最早的响应形态，也是未知 mode 的兜底形态
type ClaimResult struct {
	Mode               Text    `json:"mode"`
	OverallCredibility Text    `json:"overall_credibility"`
	Summary            Summary `json:"summary"`
	Claims             []Entry `json:"claims"`
}

func (*ClaimResult) Kind() ResultKind { return KindClaims }

// NewsArticleResult 新闻文章形态
type NewsArticleResult struct {
	Title            Text    `json:"title"`
	TitleVerdict     Text    `json:"title_verdict"`
	TitleExplanation Text    `json:"title_explanation"`
	Details          []Entry `json:"details"`
	DetailSummary    Mapping `json:"detail_summary"`
	TemporalWarnings []Text  `json:"temporal_warnings"`
}

func (*NewsArticleResult) Kind() ResultKind { return KindNewsArticle }

// QAResult 问答形态
type QAResult struct {
	Question Text `json:"question"`
	Answer   Text `json:"answer"`
}

func (*QAResult) Kind() ResultKind { return KindQA }

// UnmarshalResult 按 mode 字段解析响应体。
// mode 缺失或无法识别时按 claims 形态解析。
func UnmarshalResult(data []byte) (Result, error) {
	var envelope struct {
		Mode Text `json:"mode"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("unmarshal result envelope failed: %w", err)
	}

	var result Result
	switch ResultKind(envelope.Mode) {
	case KindNewsArticle:
		result = &NewsArticleResult{}
	case KindQA:
		result = &QAResult{}
	default:
		result = &ClaimResult{}
	}

	if err := json.Unmarshal(data, result); err != nil {
		return nil, fmt.Errorf("unmarshal %s result failed: %w", result.Kind(), err)
	}
	return result, nil
}

// isNull 判断原始 JSON 是否为空或 null
func isNull(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) == 0 || bytes.Equal(b, []byte("null"))
}
