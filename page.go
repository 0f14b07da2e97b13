package ss

import (
	"path/filepath"
	"strings"

	"github.com/valyala/fasttemplate"
	"golang.org/x/net/html"
)

// DefaultTemplate is a page layout, placeholders are {{title}}, {{head}}, {{toc}}, {{body}} and {{math}}
const DefaultTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{title}}</title>
{{head}}
</head>
<body>
<nav>{{toc}}</nav>
<main>{{body}}</main>
<script>
{{math}}</script>
</body>
</html>
`

// Layout describes the shell of an output page
type Layout struct {
	Template string
	Styles   []string
	Scripts  []string
}

// RenderPage converts compiled document into a complete HTML page
func (c *Compiler) RenderPage(doc *Document, layout Layout) (string, error) {
	toc := NewTocPage(doc.Math)
	gen := NewHTMLGen(doc.Path, toc)

	body, err := HTML(gen, doc.Nodes)
	if err != nil {
		return "", err
	}

	var nav strings.Builder
	if err := html.Render(&nav, toc.Fragment()); err != nil {
		return "", err
	}

	var head strings.Builder
	if err := RenderHTML(&head, layout.head()); err != nil {
		return "", err
	}

	tmpl := layout.Template
	if tmpl == "" {
		tmpl = DefaultTemplate
	}

	return fasttemplate.ExecuteString(tmpl, "{{", "}}", map[string]any{
		"title": html.EscapeString(title(doc)),
		"head":  head.String(),
		"toc":   nav.String(),
		"body":  body,
		"math":  toc.Math.Script(),
	}), nil
}

func (l Layout) head() (nodes []*html.Node) {
	for _, href := range l.Styles {
		nodes = append(nodes, element("link", []html.Attribute{{Key: "rel", Val: "stylesheet"}, {Key: "href", Val: href}}), text("\n"))
	}

	for _, src := range l.Scripts {
		nodes = append(nodes, element("script", []html.Attribute{{Key: "src", Val: src}}), text("\n"))
	}

	return
}

// title is the text of the first heading, or file name if document has no headings
func title(doc *Document) string {
	h := headings{}
	for _, n := range h.collect(doc.Nodes) {
		if text := strings.TrimSpace(Flatten(n.(*Cmd).Body())); text != "" {
			return text
		}
	}

	return strings.TrimSuffix(filepath.Base(doc.Path), SourceExt)
}
