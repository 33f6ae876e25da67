package render

import (
	"html/template"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const pageTpl = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            background-color: #f8fafc;
            color: #1e293b;
            line-height: 1.6;
            margin: 0;
            padding: 20px;
        }
        .container { max-width: 900px; margin: 0 auto; }
        .block { background: #fff; border: 1px solid #e2e8f0; border-radius: 8px; padding: 16px 20px; margin-bottom: 16px; }
        .label { font-weight: 600; color: #64748b; margin-bottom: 6px; }
        .entry { border-top: 1px solid #e2e8f0; padding: 10px 0; }
        .entry:first-of-type { border-top: none; }
        .statement { font-weight: 600; }
        .meta { color: #64748b; font-size: 0.9em; }
        .explanation { white-space: pre-wrap; }
        .verdict-credible { color: #16a34a; font-weight: 600; }
        .verdict-misleading { color: #dc2626; font-weight: 600; }
        .verdict-uncertain { color: #ca8a04; font-weight: 600; }
    </style>
</head>
<body>
<div class="container">
    {{range .Blocks}}
    <div class="block block-{{.Kind}}">
        <div class="label">{{.Label}}</div>
        {{if eq .Kind "text"}}
        <div class="explanation {{styleClass .Style}}">{{.Text}}</div>
        {{else if eq .Kind "entries"}}
        <ol>
            {{range .Entries}}
            <li class="entry">
                <div class="statement">{{.Statement}}</div>
                {{if .SearchQuery}}<div class="meta">Search query: {{.SearchQuery}}</div>{{end}}
                <div>Verdict: <span class="{{styleClass .Style}}">{{.Verdict}}</span></div>
                <div class="meta">Evidence: {{.EvidenceCount}}</div>
                {{with .Breakdown}}<div class="meta">Breakdown: support {{.Support}}, refute {{.Refute}}, irrelevant {{.Irrelevant}}</div>{{end}}
                <div class="explanation">{{sanitize .Explanation}}</div>
            </li>
            {{end}}
        </ol>
        {{else if eq .Kind "pairs"}}
        <ul>
            {{range .Pairs}}<li>{{.Key}}: {{.Value}}</li>{{end}}
        </ul>
        {{else if eq .Kind "list"}}
        <ul>
            {{range .Items}}<li>{{.}}</li>{{end}}
        </ul>
        {{end}}
    </div>
    {{end}}
</div>
</body>
</html>
`

var (
	policy = bluemonday.UGCPolicy()

	pageTemplate = template.Must(template.New("result").Funcs(template.FuncMap{
		"styleClass": styleClass,
		"sanitize":   sanitize,
	}).Parse(pageTpl))
)

type pageData struct {
	Title  string
	Blocks []Block
}

// WriteHTML 以 HTML 页面形式输出文档
func WriteHTML(w io.Writer, doc *Document) error {
	return pageTemplate.Execute(w, pageData{
		Title:  pageTitle(doc),
		Blocks: doc.Blocks,
	})
}

func pageTitle(doc *Document) string {
	for _, b := range doc.Blocks {
		if b.Kind == BlockText && (b.Label == LabelTitle || b.Label == LabelQuestion) && b.Text != "" {
			return b.Text
		}
	}
	return "Verification result"
}

func styleClass(s Style) string {
	if s == StyleNone {
		return ""
	}
	return "verdict-" + string(s)
}

// sanitize 解释可能带有后端生成的标记，经过 UGC 策略清洗后原样输出
func sanitize(s string) template.HTML {
	return template.HTML(strings.TrimSpace(policy.Sanitize(s)))
}
