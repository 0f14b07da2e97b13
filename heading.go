package ss

import "strconv"

// headings adjusts headings of an included document, so they fit into the outline of the including one
type headings struct {
	registry *Registry
	shift    int
	source   string
	tocOnly  bool
	noToc    bool
}

func (h headings) adjust(nodes []Node) []Node {
	for _, node := range nodes {
		switch n := node.(type) {
		case *Cmd:
			if n.Decl != nil && n.Decl.Heading > 0 {
				h.heading(n)
				continue
			}

			h.adjust(n.Args)
		case *Bracket:
			h.adjust(n.Children)
		case *Quotation:
			h.adjust(n.Children)
		case *Fragment:
			h.adjust(n.Children)
		}
	}

	return nodes
}

func (h headings) heading(c *Cmd) {
	if h.shift > 0 {
		level := min(c.Decl.Heading+h.shift, 6)
		if decl := h.registry.First("\\h" + strconv.Itoa(level)); decl != nil {
			c.Decl = decl
			c.Ident.Name = decl.Name
		}
	}

	if c.Attrs == nil {
		c.Attrs = NewAttributes()
	}

	if !c.Attrs.Has("source") {
		c.Attrs.Set("source", h.source)
	}

	if h.tocOnly && !c.Attrs.Has("toc-only") {
		c.Attrs.Insert(&Symbol{Value: "toc-only"}, nil)
	}

	if h.noToc && !c.Attrs.Has("no-toc") {
		c.Attrs.Insert(&Symbol{Value: "no-toc"}, nil)
	}
}

// collect returns headings only, in document order
func (h headings) collect(nodes []Node) (out []Node) {
	for _, node := range nodes {
		switch n := node.(type) {
		case *Cmd:
			if n.Decl != nil && n.Decl.Heading > 0 {
				out = append(out, n)
				continue
			}

			out = append(out, h.collect(n.Args)...)
		case *Bracket:
			out = append(out, h.collect(n.Children)...)
		case *Quotation:
			out = append(out, h.collect(n.Children)...)
		case *Fragment:
			out = append(out, h.collect(n.Children)...)
		}
	}

	return
}
