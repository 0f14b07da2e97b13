package ss

import (
	"encoding/base64"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLGen converts nodes of one page to HTML
type HTMLGen struct {
	PagePath string
	Toc      *TocPage
}

func NewHTMLGen(pagePath string, toc *TocPage) *HTMLGen {
	return &HTMLGen{PagePath: pagePath, Toc: toc}
}

// Nodes converts node list to HTML nodes
func (g *HTMLGen) Nodes(nodes []Node) (out []*html.Node) {
	for _, n := range nodes {
		out = append(out, g.Node(n)...)
	}

	return
}

// Node converts node to HTML nodes, most nodes produce one HTML node, but enclosures and fragments may produce
// several
func (g *HTMLGen) Node(node Node) []*html.Node {
	switch n := node.(type) {
	case *Text:
		return []*html.Node{text(symbol(n.Value))}
	case *Symbol:
		return []*html.Node{text(symbol(n.Value))}
	case *Ident:
		return []*html.Node{text(n.Name)}
	case *InvalidToken:
		return []*html.Node{text(n.Token.Text)}
	case *Bracket:
		return g.enclose(n.Open.text(), n.Close.text(), n.Children)
	case *Quotation:
		closing := ""
		if n.Close != nil {
			closing = quote(false)
		}

		return g.enclose(quote(true), closing, n.Children)
	case *Fragment:
		return g.Nodes(n.Children)
	case *Drawing:
		return []*html.Node{
			element("img", []html.Attribute{{Key: "class", Val: "drawing-light"}, {Key: "src", Val: svgURL(n.Light)}, {Key: "alt", Val: n.Name}}),
			element("img", []html.Attribute{{Key: "class", Val: "drawing-dark"}, {Key: "src", Val: svgURL(n.Dark)}, {Key: "alt", Val: n.Name}}),
		}
	case *Tag:
		out := []*html.Node{text(n.Ident.Name)}
		if n.Options != nil {
			out = append(out, g.Node(n.Options)...)
		}

		for _, arg := range n.Args {
			out = append(out, g.Node(arg)...)
		}

		return out
	case *Cmd:
		if n.Decl != nil && n.Decl.HTML != nil {
			return n.Decl.HTML.LowerHTML(g, n)
		}

		return Elementize(g, n)
	default:
		return nil
	}
}

func (g *HTMLGen) enclose(open, close string, children []Node) []*html.Node {
	var out []*html.Node
	if open != "" {
		out = append(out, text(symbol(open)))
	}

	out = append(out, g.Nodes(children)...)

	if close != "" {
		out = append(out, text(symbol(close)))
	}

	return out
}

// Elementize is the default HTML lowering: command name becomes element name, attributes become element
// attributes and arguments without the outermost curly braces become children.
func Elementize(g *HTMLGen, c *Cmd) []*html.Node {
	name := strings.TrimPrefix(c.Ident.Name, "\\")
	if name == "" {
		name = "span"
	}

	return []*html.Node{element(name, htmlAttributes(c.Attrs), g.Nodes(c.Body())...)}
}

// RenderHTML writes HTML nodes
func RenderHTML(w io.Writer, nodes []*html.Node) error {
	for _, n := range nodes {
		if err := html.Render(w, n); err != nil {
			return err
		}
	}

	return nil
}

// HTML converts nodes to an HTML string
func HTML(g *HTMLGen, nodes []Node) (string, error) {
	var b strings.Builder
	if err := RenderHTML(&b, g.Nodes(nodes)); err != nil {
		return "", err
	}

	return b.String(), nil
}

func htmlAttributes(attrs *Attributes) (out []html.Attribute) {
	if attrs == nil {
		return nil
	}

	for _, item := range attrs.Items {
		attr := html.Attribute{Key: Flatten([]Node{item.Key})}
		if item.Value != nil {
			attr.Val = Flatten([]Node{item.Value})
		}

		out = append(out, attr)
	}

	return
}

func text(data string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: data}
}

func element(name string, attrs []html.Attribute, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: name, DataAtom: atom.Lookup([]byte(name)), Attr: attrs}
	for _, child := range children {
		n.AppendChild(child)
	}

	return n
}

func svgURL(data []byte) string {
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(data)
}
