package ss

import (
	"fmt"
	"io"
	"strings"
)

// LaTeX converts nodes to LaTeX string
func LaTeX(nodes []Node) string {
	var b strings.Builder
	_ = RenderLaTeX(&b, nodes)

	return b.String()
}

// RenderLaTeX writes nodes as LaTeX. Text is written as is, commands use their declaration's LaTeX lowering.
func RenderLaTeX(w io.Writer, nodes []Node) error {
	for _, n := range nodes {
		if err := renderLaTeX(w, n); err != nil {
			return err
		}
	}

	return nil
}

func renderLaTeX(w io.Writer, node Node) error {
	switch n := node.(type) {
	case *Text:
		_, err := fmt.Fprint(w, n.Value)
		return err
	case *Symbol:
		_, err := fmt.Fprint(w, n.Value)
		return err
	case *Ident:
		_, err := fmt.Fprint(w, n.Name)
		return err
	case *InvalidToken:
		_, err := fmt.Fprint(w, n.Token.Text)
		return err
	case *Bracket:
		return renderChildrenAndWrap(w, n.Children, n.Open.text(), n.Close.text())
	case *Quotation:
		closing := ""
		if n.Close != nil {
			closing = "''"
		}

		return renderChildrenAndWrap(w, n.Children, "``", closing)
	case *Fragment:
		return RenderLaTeX(w, n.Children)
	case *Drawing:
		_, err := fmt.Fprint(w, "\\includegraphics{", n.Name, "}")
		return err
	case *Tag:
		if _, err := fmt.Fprint(w, n.Ident.Name); err != nil {
			return err
		}

		if n.Options != nil {
			if err := renderLaTeX(w, n.Options); err != nil {
				return err
			}
		}

		for _, arg := range n.Args {
			if err := renderLaTeX(w, arg); err != nil {
				return err
			}
		}

		return nil
	case *Cmd:
		if n.Decl != nil && n.Decl.LaTeX != nil {
			return n.Decl.LaTeX.LowerLaTeX(w, n)
		}

		return writeCommand(w, n)
	default:
		return nil
	}
}

func renderChildrenAndWrap(w io.Writer, children []Node, prefix, suffix string) error {
	if _, err := fmt.Fprint(w, prefix); err != nil {
		return err
	}

	if err := RenderLaTeX(w, children); err != nil {
		return err
	}

	if _, err := fmt.Fprint(w, suffix); err != nil {
		return err
	}

	return nil
}

// writeCommand is the default LaTeX lowering: \name[key=value,...]{arg}...
func writeCommand(w io.Writer, c *Cmd) error {
	if _, err := fmt.Fprint(w, c.Ident.Name); err != nil {
		return err
	}

	if c.Attrs.Len() > 0 {
		if _, err := fmt.Fprint(w, "[", latexOptions(c.Attrs), "]"); err != nil {
			return err
		}
	}

	return RenderLaTeX(w, c.Args)
}

// writeWrapped writes body of a command wrapped in a prefix and suffix, for example \textbf{ and }
func writeWrapped(prefix, suffix string) LaTeXFunc {
	return func(w io.Writer, c *Cmd) error {
		return renderChildrenAndWrap(w, c.Body(), prefix, suffix)
	}
}

func latexOptions(attrs *Attributes) string {
	var parts []string
	for _, item := range attrs.Items {
		key := Flatten([]Node{item.Key})
		if item.Value == nil {
			parts = append(parts, key)
			continue
		}

		parts = append(parts, key+"="+Flatten([]Node{item.Value}))
	}

	return strings.Join(parts, ",")
}
