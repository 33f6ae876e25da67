package render

import "github.com/iWorld-y/news_verifier/internal/model"

// Style 判定的展示样式
type Style string

const (
	StyleNone       Style = ""
	StyleCredible   Style = "credible"
	StyleMisleading Style = "misleading"
	StyleUncertain  Style = "uncertain"
)

// BlockKind 区块类型，决定使用 Block 的哪个字段
type BlockKind string

const (
	BlockText    BlockKind = "text"
	BlockEntries BlockKind = "entries"
	BlockPairs   BlockKind = "pairs"
	BlockList    BlockKind = "list"
)

// Document 展示文档
type Document struct {
	Kind   model.ResultKind `json:"kind"`
	Blocks []Block          `json:"blocks"`
}

// Block 一个带标签的区块
type Block struct {
	Kind    BlockKind    `json:"kind"`
	Label   string       `json:"label"`
	Text    string       `json:"text,omitempty"`
	Style   Style        `json:"style,omitempty"`
	Entries []EntryView  `json:"entries,omitempty"`
	Pairs   []model.Pair `json:"pairs,omitempty"`
	Items   []string     `json:"items,omitempty"`
}

// EntryView 单条声明或细节的展示数据
type EntryView struct {
	Index         int              `json:"index"`
	Statement     string           `json:"statement"`
	SearchQuery   string           `json:"search_query,omitempty"`
	Verdict       string           `json:"verdict"`
	Style         Style            `json:"style"`
	EvidenceCount int              `json:"evidence_count"`
	Breakdown     *model.Breakdown `json:"evidence_breakdown,omitempty"`
	Explanation   string           `json:"explanation"`
}
