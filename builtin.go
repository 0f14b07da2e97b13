package ss

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

const (
	IncludeIdent = "\\include"
	MathSlot     = "\\mathslot"
)

// mathSlot is a declaration of placeholders left in place of extracted formulas, it can't be invoked from
// source
var mathSlot = &Declaration{
	Name:  MathSlot,
	HTML:  HTMLFunc(lowerMathSlot),
	LaTeX: LaTeXFunc(func(io.Writer, *Cmd) error { return nil }),
}

var (
	blockText  = &ScopeConstraint{Content: TextContent, Layout: BlockLayout}
	anyText    = &ScopeConstraint{Content: TextContent, Layout: BothLayouts}
	symbolic   = &ScopeConstraint{Content: SymbolicContent, Layout: BothLayouts}
	inlineText = &ScopeOverride{Content: TextContent, Layout: InlineLayout}
)

func curly(n int) []ArgumentInstance {
	kinds := make([]BracketKind, n)
	return []ArgumentInstance{{Shape: ExactArity, Brackets: kinds}}
}

// DefaultRegistry declares built-in commands
func DefaultRegistry() *Registry {
	var decls []*Declaration

	for level := 1; level <= 6; level++ {
		decls = append(decls, &Declaration{
			Name:   "\\h" + strconv.Itoa(level),
			Parent: blockText,
			Child:  inlineText,
			Attributes: []AttributeSpec{
				{Name: "source"},
				{Name: "toc-only", Type: BoolAttribute},
				{Name: "no-toc", Type: BoolAttribute},
			},
			Arguments: curly(1),
			HTML:      HTMLFunc(lowerHeading),
			LaTeX:     LaTeXFunc(headingLaTeX),
			Heading:   level,
		})
	}

	formats := map[string]string{"\\b": "\\textbf{", "\\i": "\\textit{", "\\u": "\\underline{", "\\code": "\\texttt{"}
	for _, name := range []string{"\\b", "\\i", "\\u", "\\code"} {
		decls = append(decls, &Declaration{
			Name:      name,
			Parent:    anyText,
			Child:     inlineText,
			Arguments: curly(1),
			LaTeX:     writeWrapped(formats[name], "}"),
		})
	}

	decls = append(decls,
		&Declaration{
			Name:      "\\p",
			Parent:    blockText,
			Child:     inlineText,
			Arguments: []ArgumentInstance{{Shape: GreedyCurly}},
			LaTeX:     writeWrapped("", "\n\n"),
		},
		&Declaration{
			Name:       "\\link",
			Parent:     anyText,
			Child:      inlineText,
			Attributes: []AttributeSpec{{Name: "href", Required: true}},
			Arguments:  curly(1),
			HTML:       HTMLFunc(lowerLink),
			LaTeX:      LaTeXFunc(linkLaTeX),
		},
		&Declaration{
			Name:   "\\img",
			Parent: anyText,
			Child:  inlineText,
			Attributes: []AttributeSpec{
				{Name: "src", Required: true},
				{Name: "width"},
				{Name: "height"},
			},
			Arguments: []ArgumentInstance{
				{Shape: ExactArity, Brackets: []BracketKind{CurlyBrace}},
				{Shape: NoArguments},
			},
			HTML:  HTMLFunc(lowerImage),
			LaTeX: LaTeXFunc(imageLaTeX),
		},
		&Declaration{
			Name:      "\\ul",
			Parent:    blockText,
			Child:     &ScopeOverride{Content: TextContent, Layout: BlockLayout},
			Arguments: []ArgumentInstance{{Shape: GreedyCurly}},
			LaTeX:     writeWrapped("\\begin{itemize}\n", "\\end{itemize}\n"),
		},
		&Declaration{
			Name:      "\\ol",
			Parent:    blockText,
			Child:     &ScopeOverride{Content: TextContent, Layout: BlockLayout},
			Arguments: []ArgumentInstance{{Shape: GreedyCurly}},
			LaTeX:     writeWrapped("\\begin{enumerate}\n", "\\end{enumerate}\n"),
		},
		&Declaration{
			Name:      "\\item",
			Parent:    &ScopeConstraint{Ancestor: "\\ul", Content: TextContent, Layout: BothLayouts},
			Arguments: curly(1),
			HTML:      HTMLFunc(lowerItem),
			LaTeX:     writeWrapped("\\item ", "\n"),
		},
		&Declaration{
			Name:      "\\item",
			Parent:    &ScopeConstraint{Ancestor: "\\ol", Content: TextContent, Layout: BothLayouts},
			Arguments: curly(1),
			HTML:      HTMLFunc(lowerItem),
			LaTeX:     writeWrapped("\\item ", "\n"),
		},
		&Declaration{
			Name:      InlineMath,
			Parent:    anyText,
			Child:     &ScopeOverride{Content: MathContent, Layout: InlineLayout},
			Arguments: curly(1),
			HTML:      HTMLFunc(lowerMath),
			LaTeX:     writeWrapped("$", "$"),
			Math:      &MathSpec{},
		},
		&Declaration{
			Name:      "\\math",
			Parent:    anyText,
			Child:     &ScopeOverride{Content: MathContent, Layout: InlineLayout},
			Arguments: curly(1),
			HTML:      HTMLFunc(lowerMath),
			LaTeX:     writeWrapped("$", "$"),
			Math:      &MathSpec{Unique: true},
		},
		&Declaration{
			Name:      "\\equation",
			Parent:    blockText,
			Child:     &ScopeOverride{Content: MathContent, Layout: BlockLayout},
			Arguments: curly(1),
			HTML:      HTMLFunc(lowerMath),
			LaTeX:     writeWrapped("\\begin{equation}", "\\end{equation}"),
			Math:      &MathSpec{Env: "equation", Block: true, Unique: true},
		},
		&Declaration{
			Name:      "\\frac",
			Parent:    symbolic,
			Arguments: curly(2),
		},
		&Declaration{
			Name:             "\\sqrt",
			Parent:           symbolic,
			IgnoreAttributes: true,
			Arguments: []ArgumentInstance{
				{Shape: ExactArity, Brackets: []BracketKind{SquareParen, CurlyBrace}},
				{Shape: ExactArity, Brackets: []BracketKind{CurlyBrace}},
			},
		},
		&Declaration{
			Name:      "\\text",
			Parent:    symbolic,
			Child:     inlineText,
			Arguments: curly(1),
		},
		&Declaration{
			Name:      "\\matrix",
			Parent:    symbolic,
			Arguments: []ArgumentInstance{{Shape: GreedyCurly}},
			LaTeX:     LaTeXFunc(matrixLaTeX),
		},
		&Declaration{
			Name:   IncludeIdent,
			Parent: &ScopeConstraint{Content: TextContent, Layout: BothLayouts},
			Attributes: []AttributeSpec{
				{Name: "src", Required: true},
				{Name: "baseline", Type: HeadingAttribute},
				{Name: "toc-only", Type: BoolAttribute},
				{Name: "no-toc", Type: BoolAttribute},
			},
			Arguments:     []ArgumentInstance{{Shape: NoArguments}},
			HTML:          HTMLFunc(func(*HTMLGen, *Cmd) []*html.Node { return nil }),
			LaTeX:         LaTeXFunc(includeLaTeX),
			DeferRewrites: true,
		},
	)

	return NewRegistry(decls...)
}

// lowerHeading renders heading with an anchor link and registers it in the table of contents
func lowerHeading(g *HTMLGen, c *Cmd) []*html.Node {
	name := "h" + strconv.Itoa(c.Decl.Heading)
	children := g.Nodes(c.Body())

	if g.Toc == nil {
		return []*html.Node{element(name, nil, children...)}
	}

	id := g.Toc.Anchor(Flatten(c.Body()))

	source, external := c.Attr("source")
	href := PageURL(g.PagePath) + "#" + id
	if external {
		href = PageURL(source) + "#" + id
	}

	if !c.Attrs.Has("no-toc") {
		g.Toc.Add(c.Decl.Heading, href, external, text(Flatten(c.Body())))
	}

	if c.Attrs.Has("toc-only") {
		return nil
	}

	link := element("a", []html.Attribute{{Key: "href", Val: href}}, children...)
	return []*html.Node{element(name, []html.Attribute{{Key: "id", Val: id}}, link)}
}

func headingLaTeX(w io.Writer, c *Cmd) error {
	if c.Attrs.Has("toc-only") {
		return nil
	}

	sections := []string{"section", "subsection", "subsubsection", "paragraph", "subparagraph", "subparagraph"}
	return renderChildrenAndWrap(w, c.Body(), "\\"+sections[c.Decl.Heading-1]+"{", "}\n")
}

func lowerLink(g *HTMLGen, c *Cmd) []*html.Node {
	href, _ := c.Attr("href")
	return []*html.Node{element("a", []html.Attribute{{Key: "href", Val: href}}, g.Nodes(c.Body())...)}
}

func linkLaTeX(w io.Writer, c *Cmd) error {
	href, _ := c.Attr("href")
	return renderChildrenAndWrap(w, c.Body(), "\\href{"+href+"}{", "}")
}

func lowerImage(g *HTMLGen, c *Cmd) []*html.Node {
	src, _ := c.Attr("src")
	attrs := []html.Attribute{{Key: "src", Val: src}}

	if alt := Flatten(c.Body()); alt != "" {
		attrs = append(attrs, html.Attribute{Key: "alt", Val: alt})
	}

	for _, key := range []string{"width", "height"} {
		raw, ok := c.Attr(key)
		if !ok {
			continue
		}

		if px, err := MeasurePixels(raw); err == nil {
			raw = strconv.FormatFloat(float64(px), 'f', -1, 32)
		}

		attrs = append(attrs, html.Attribute{Key: key, Val: raw})
	}

	return []*html.Node{element("img", attrs)}
}

func imageLaTeX(w io.Writer, c *Cmd) error {
	src, _ := c.Attr("src")

	var opts []string
	for _, key := range []string{"width", "height"} {
		if v, ok := c.Attr(key); ok {
			opts = append(opts, key+"="+v)
		}
	}

	params := ""
	if len(opts) > 0 {
		params = "[" + strings.Join(opts, ",") + "]"
	}

	_, err := fmt.Fprint(w, "\\includegraphics", params, "{", src, "}")
	return err
}

func lowerItem(g *HTMLGen, c *Cmd) []*html.Node {
	return []*html.Node{element("li", nil, g.Nodes(c.Body())...)}
}

// lowerMath renders formula which was not extracted to the math environment as its LaTeX source
func lowerMath(g *HTMLGen, c *Cmd) []*html.Node {
	name, class := "span", "math math-inline"
	if c.Decl.Math.Block {
		name, class = "div", "math math-block"
	}

	return []*html.Node{element(name, []html.Attribute{{Key: "class", Val: class}}, text(LaTeX(c.Body())))}
}

func lowerMathSlot(g *HTMLGen, c *Cmd) []*html.Node {
	id, _ := c.Attr("id")
	display, _ := c.Attr("display")

	name := "span"
	if display == "block" {
		name = "div"
	}

	return []*html.Node{element(name, []html.Attribute{{Key: "id", Val: id}, {Key: "class", Val: "math math-" + display}})}
}

func matrixLaTeX(w io.Writer, c *Cmd) error {
	rows := make([]string, 0, len(c.Args))
	for _, arg := range c.Args {
		rows = append(rows, LaTeX(unwrap([]Node{arg})))
	}

	_, err := fmt.Fprint(w, "\\begin{matrix}", strings.Join(rows, " \\\\ "), "\\end{matrix}")
	return err
}

func includeLaTeX(w io.Writer, c *Cmd) error {
	src, _ := c.Attr("src")
	_, err := fmt.Fprint(w, "\\input{", strings.TrimSuffix(src, ".ss"), "}")
	return err
}
