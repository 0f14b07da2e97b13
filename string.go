package ss

import "strings"

// Source re-serializes leaf tokens in order. For input with balanced brackets it reproduces the source text.
func Source(nodes []Node) string {
	var b strings.Builder
	for _, n := range nodes {
		writeSource(&b, n)
	}

	return b.String()
}

func writeSource(b *strings.Builder, node Node) {
	switch n := node.(type) {
	case *Ident:
		b.WriteString(n.Name)
	case *Text:
		b.WriteString(n.Value)
	case *Symbol:
		b.WriteString(n.Value)
	case *InvalidToken:
		b.WriteString(n.Token.Text)
	case *Bracket:
		b.WriteString(n.Open.text())
		for _, child := range n.Children {
			writeSource(b, child)
		}
		b.WriteString(n.Close.text())
	case *Quotation:
		b.WriteString(n.Open.text())
		for _, child := range n.Children {
			writeSource(b, child)
		}
		b.WriteString(n.Close.text())
	case *Fragment:
		for _, child := range n.Children {
			writeSource(b, child)
		}
	case *Tag:
		b.WriteString(n.Ident.Name)
		if n.Options != nil {
			writeSource(b, n.Options)
		}
		for _, arg := range n.Args {
			writeSource(b, arg)
		}
	case *Cmd:
		b.WriteString(n.Ident.Name)
		for _, arg := range n.Args {
			writeSource(b, arg)
		}
	}
}

// Flatten extracts text content from nodes: quote marks are dropped, brackets are kept
func Flatten(nodes []Node) string {
	var b strings.Builder
	for _, n := range nodes {
		flatten(&b, n)
	}

	return b.String()
}

func flatten(b *strings.Builder, node Node) {
	switch n := node.(type) {
	case *Ident:
		b.WriteString(n.Name)
	case *Text:
		b.WriteString(n.Value)
	case *Symbol:
		b.WriteString(n.Value)
	case *InvalidToken:
		b.WriteString(n.Token.Text)
	case *Bracket:
		b.WriteString(n.Open.text())
		for _, child := range n.Children {
			flatten(b, child)
		}
		b.WriteString(n.Close.text())
	case *Quotation:
		for _, child := range n.Children {
			flatten(b, child)
		}
	case *Fragment:
		for _, child := range n.Children {
			flatten(b, child)
		}
	case *Tag:
		for _, arg := range n.Args {
			for _, child := range arg.Children {
				flatten(b, child)
			}
		}
	case *Cmd:
		for _, child := range n.Body() {
			flatten(b, child)
		}
	}
}
