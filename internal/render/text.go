package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	entryIndent       = "   "
	continuationLines = "      "
)

// TextOptions 纯文本输出选项
type TextOptions struct {
	// Highlight 为带样式的值着色，nil 时原样输出
	Highlight func(style Style, s string) string
}

func (o TextOptions) highlight(style Style, s string) string {
	if o.Highlight == nil || style == StyleNone {
		return s
	}
	return o.Highlight(style, s)
}

// WriteText 以纯文本形式输出文档
func WriteText(w io.Writer, doc *Document, opts TextOptions) error {
	bw := bufio.NewWriter(w)
	for i, b := range doc.Blocks {
		if i > 0 {
			bw.WriteString("\n")
		}
		writeTextBlock(bw, b, opts)
	}
	return bw.Flush()
}

// Text 返回文档的纯文本形式，不着色
func Text(doc *Document) string {
	var sb strings.Builder
	_ = WriteText(&sb, doc, TextOptions{})
	return sb.String()
}

func writeTextBlock(w *bufio.Writer, b Block, opts TextOptions) {
	switch b.Kind {
	case BlockText:
		if strings.Contains(b.Text, "\n") {
			fmt.Fprintf(w, "%s:\n", b.Label)
			writeIndented(w, "  ", opts.highlight(b.Style, b.Text))
			return
		}
		fmt.Fprintf(w, "%s: %s\n", b.Label, opts.highlight(b.Style, b.Text))

	case BlockEntries:
		fmt.Fprintf(w, "%s:\n", b.Label)
		for i, e := range b.Entries {
			if i > 0 {
				w.WriteString("\n")
			}
			writeEntry(w, e, opts)
		}

	case BlockPairs:
		fmt.Fprintf(w, "%s:\n", b.Label)
		for _, p := range b.Pairs {
			fmt.Fprintf(w, "- %s: %s\n", p.Key, p.Value)
		}

	case BlockList:
		fmt.Fprintf(w, "%s:\n", b.Label)
		for _, item := range b.Items {
			fmt.Fprintf(w, "- %s\n", item)
		}
	}
}

func writeEntry(w *bufio.Writer, e EntryView, opts TextOptions) {
	fmt.Fprintf(w, "%d. %s\n", e.Index, e.Statement)
	if e.SearchQuery != "" {
		fmt.Fprintf(w, "%sSearch query: %s\n", entryIndent, e.SearchQuery)
	}
	fmt.Fprintf(w, "%sVerdict: %s\n", entryIndent, opts.highlight(e.Style, e.Verdict))
	fmt.Fprintf(w, "%sEvidence: %d\n", entryIndent, e.EvidenceCount)
	if e.Breakdown != nil {
		fmt.Fprintf(w, "%sBreakdown: support %d, refute %d, irrelevant %d\n",
			entryIndent, e.Breakdown.Support, e.Breakdown.Refute, e.Breakdown.Irrelevant)
	}

	// 多行解释首行跟在标签后，其余行缩进对齐
	lines := strings.Split(e.Explanation, "\n")
	fmt.Fprintf(w, "%sExplanation: %s\n", entryIndent, lines[0])
	for _, line := range lines[1:] {
		fmt.Fprintf(w, "%s%s\n", continuationLines, line)
	}
}

func writeIndented(w *bufio.Writer, indent, s string) {
	for _, line := range strings.Split(s, "\n") {
		fmt.Fprintf(w, "%s%s\n", indent, line)
	}
}
