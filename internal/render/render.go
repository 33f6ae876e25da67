package render

import (
	"github.com/iWorld-y/news_verifier/internal/model"
)

const (
	LabelTitle              = "Title"
	LabelTitleVerdict       = "Title verdict"
	LabelTitleExplanation   = "Title explanation"
	LabelDetails            = "Detail verification"
	LabelSummary            = "Summary"
	LabelTemporalWarnings   = "Temporal warnings"
	LabelQuestion           = "Question"
	LabelAnswer             = "Answer"
	LabelOverallCredibility = "Overall credibility"
	LabelClaims             = "Claim verification"
)

// Render 将验证结果映射为展示文档。纯函数，不修改 result
func Render(result model.Result) *Document {
	switch r := result.(type) {
	case *model.NewsArticleResult:
		return renderNewsArticle(r)
	case *model.QAResult:
		return renderQA(r)
	case *model.ClaimResult:
		return renderClaims(r)
	default:
		return &Document{Kind: model.KindClaims}
	}
}

// VerdictStyle CREDIBLE、MISLEADING 各自对应样式，其余均为 uncertain
func VerdictStyle(verdict string) Style {
	switch verdict {
	case "CREDIBLE":
		return StyleCredible
	case "MISLEADING":
		return StyleMisleading
	default:
		return StyleUncertain
	}
}

// CredibilityStyle 总体可信度 HIGH / LOW 对应的样式
func CredibilityStyle(credibility string) Style {
	switch credibility {
	case "HIGH":
		return StyleCredible
	case "LOW":
		return StyleMisleading
	default:
		return StyleUncertain
	}
}

func renderNewsArticle(r *model.NewsArticleResult) *Document {
	doc := &Document{Kind: model.KindNewsArticle}
	doc.Blocks = append(doc.Blocks,
		Block{Kind: BlockText, Label: LabelTitle, Text: string(r.Title)},
		Block{Kind: BlockText, Label: LabelTitleVerdict, Text: string(r.TitleVerdict), Style: VerdictStyle(string(r.TitleVerdict))},
		Block{Kind: BlockText, Label: LabelTitleExplanation, Text: string(r.TitleExplanation)},
		Block{Kind: BlockEntries, Label: LabelDetails, Entries: entryViews(r.Details)},
	)

	if len(r.DetailSummary) > 0 {
		doc.Blocks = append(doc.Blocks, Block{Kind: BlockPairs, Label: LabelSummary, Pairs: copyPairs(r.DetailSummary)})
	}

	if len(r.TemporalWarnings) > 0 {
		items := make([]string, 0, len(r.TemporalWarnings))
		for _, w := range r.TemporalWarnings {
			items = append(items, string(w))
		}
		doc.Blocks = append(doc.Blocks, Block{Kind: BlockList, Label: LabelTemporalWarnings, Items: items})
	}
	return doc
}

func renderQA(r *model.QAResult) *Document {
	return &Document{
		Kind: model.KindQA,
		Blocks: []Block{
			{Kind: BlockText, Label: LabelQuestion, Text: string(r.Question)},
			{Kind: BlockText, Label: LabelAnswer, Text: string(r.Answer)},
		},
	}
}

func renderClaims(r *model.ClaimResult) *Document {
	doc := &Document{Kind: model.KindClaims}
	doc.Blocks = append(doc.Blocks, Block{
		Kind:  BlockText,
		Label: LabelOverallCredibility,
		Text:  string(r.OverallCredibility),
		Style: CredibilityStyle(string(r.OverallCredibility)),
	})

	switch {
	case r.Summary.IsMapping():
		doc.Blocks = append(doc.Blocks, Block{Kind: BlockPairs, Label: LabelSummary, Pairs: copyPairs(r.Summary.Mapping)})
	case r.Summary.Present:
		doc.Blocks = append(doc.Blocks, Block{Kind: BlockText, Label: LabelSummary, Text: r.Summary.Text})
	}

	doc.Blocks = append(doc.Blocks, Block{Kind: BlockEntries, Label: LabelClaims, Entries: entryViews(r.Claims)})
	return doc
}

func entryViews(entries []model.Entry) []EntryView {
	views := make([]EntryView, 0, len(entries))
	for i, e := range entries {
		v := EntryView{
			Index:         i + 1,
			Statement:     e.Statement(),
			SearchQuery:   string(e.SearchQuery),
			Verdict:       string(e.Verdict),
			Style:         VerdictStyle(string(e.Verdict)),
			EvidenceCount: int(e.EvidenceCount),
			Explanation:   string(e.Explanation),
		}
		if e.Breakdown != nil {
			b := *e.Breakdown
			v.Breakdown = &b
		}
		views = append(views, v)
	}
	return views
}

func copyPairs(m model.Mapping) []model.Pair {
	pairs := make([]model.Pair, len(m))
	copy(pairs, m)
	return pairs
}
