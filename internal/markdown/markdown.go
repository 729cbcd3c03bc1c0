// Package markdown renders post bodies. Only a small markup subset is
// allowed: emphasis, code spans, fenced code blocks and strikethrough.
// Output is sanitized before it is embedded in a page.
package markdown

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/util"
)

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *Renderer {
	// Deliberately restricted parser: no headings, lists, links or raw HTML
	// in post bodies.
	p := parser.NewParser(
		parser.WithBlockParsers(
			util.Prioritized(parser.NewFencedCodeBlockParser(), 700),
			util.Prioritized(parser.NewParagraphParser(), 1000),
		),
		parser.WithInlineParsers(
			util.Prioritized(parser.NewCodeSpanParser(), 100),
			util.Prioritized(parser.NewEmphasisParser(), 500),
		),
	)

	md := goldmark.New(
		goldmark.WithParser(p),
		goldmark.WithExtensions(extension.Strikethrough),
	)

	policy := bluemonday.NewPolicy()
	policy.AllowElements("p", "br", "em", "strong", "code", "pre", "del")

	return &Renderer{md: md, policy: policy}
}

// Render converts a post body to sanitized HTML, falling back to escaped
// plain text if conversion fails.
func (r *Renderer) Render(text string) template.HTML {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return template.HTML("<p>" + template.HTMLEscapeString(text) + "</p>")
	}
	return template.HTML(r.policy.Sanitize(buf.String()))
}
