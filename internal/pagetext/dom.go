package pagetext

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DOMProvider 去掉脚本和样式后直接读取 body 全部文本，块级元素各占一行
type DOMProvider struct {
	fetcher *Fetcher
}

var _ Provider = (*DOMProvider)(nil)

// NewDOMProvider 创建 DOM 提取器
func NewDOMProvider(fetcher *Fetcher) *DOMProvider {
	return &DOMProvider{fetcher: fetcher}
}

func (p *DOMProvider) Extract(ctx context.Context, req *Request) (*PageText, error) {
	html, err := p.fetcher.load(ctx, req)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc.Find("script, style, noscript").Remove()

	text := blockText(doc.Find("body"))
	if text == "" {
		return nil, ErrExtractFailed
	}

	return &PageText{
		Text:        text,
		Language:    NormalizeLanguage(doc.Find("html").AttrOr("lang", "")),
		PublishDate: publishDate(doc),
	}, nil
}

// blockElements 提取文本时按行分隔的元素
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true, "br": true,
	"dd": true, "div": true, "dl": true, "dt": true, "figcaption": true, "figure": true,
	"footer": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "main": true, "nav": true, "ol": true, "p": true,
	"pre": true, "section": true, "table": true, "td": true, "th": true, "tr": true, "ul": true,
}

// blockText 块级元素之间换行，行内空白压缩为单个空格，丢弃空行
func blockText(sel *goquery.Selection) string {
	var b strings.Builder
	writeText(sel, &b)

	var lines []string
	for _, line := range strings.Split(b.String(), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func writeText(sel *goquery.Selection, b *strings.Builder) {
	sel.Contents().Each(func(_ int, c *goquery.Selection) {
		name := goquery.NodeName(c)
		switch {
		case name == "#text":
			b.WriteString(strings.ReplaceAll(c.Text(), "\n", " "))
		case blockElements[name]:
			b.WriteByte('\n')
			writeText(c, b)
			b.WriteByte('\n')
		default:
			writeText(c, b)
		}
	})
}

func publishDate(doc *goquery.Document) string {
	selectors := []struct {
		query string
		attr  string
	}{
		{"meta[property='article:published_time']", "content"},
		{"meta[name='pubdate']", "content"},
		{"meta[itemprop='datePublished']", "content"},
		{"time[datetime]", "datetime"},
	}
	for _, s := range selectors {
		if v, ok := doc.Find(s.query).First().Attr(s.attr); ok {
			if d := normalizeDate(v); d != "" {
				return d
			}
		}
	}
	return ""
}
