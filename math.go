package ss

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// MathRenderer is a client-side function which typesets formulas
const MathRenderer = "katex.render"

// MathEntry is a formula extracted from the document
type MathEntry struct {
	ID     string
	Latex  string
	Block  bool
	Unique bool
}

// MathEnv collects formulas of a document, they are typeset on the client side
type MathEnv struct {
	Entries []MathEntry
	newID   func() string
}

func NewMathEnv() *MathEnv {
	return &MathEnv{newID: uuid.NewString}
}

// Add registers formula and returns id of its placeholder. A formula which is not unique shares id with an
// identical formula added before, if that one is not unique either.
func (e *MathEnv) Add(latex string, block, unique bool) string {
	if !unique {
		for _, entry := range e.Entries {
			if !entry.Unique && entry.Block == block && entry.Latex == latex {
				return entry.ID
			}
		}
	}

	id := e.newID()
	e.Entries = append(e.Entries, MathEntry{ID: id, Latex: latex, Block: block, Unique: unique})

	return id
}

// Merge appends entries of an included document
func (e *MathEnv) Merge(other *MathEnv) {
	if other == nil {
		return
	}

	known := make(map[string]bool, len(e.Entries))
	for _, entry := range e.Entries {
		known[entry.ID] = true
	}

	for _, entry := range other.Entries {
		if !known[entry.ID] {
			e.Entries = append(e.Entries, entry)
			known[entry.ID] = true
		}
	}
}

// Script renders javascript which typesets every formula into its placeholder
func (e *MathEnv) Script() string {
	var b strings.Builder

	for _, entry := range e.Entries {
		code, _ := json.Marshal(entry.Latex)
		id, _ := json.Marshal(entry.ID)

		opts := "{throwOnError: true}"
		if entry.Block {
			opts = "{throwOnError: true, displayMode: true}"
		}

		fmt.Fprintf(&b, "%s(%s, document.getElementById(%s), %s);\n", MathRenderer, code, id, opts)
	}

	return b.String()
}

// ExtractMath replaces formula containers with placeholders and moves their LaTeX into env. Headings marked
// toc-only are never drawn, formulas inside them are removed, so env has no entry without a placeholder on the
// page.
func ExtractMath(nodes []Node, env *MathEnv) []Node {
	return extractMath(nodes, env, false)
}

// extractMath drops formulas when env is nil
func extractMath(nodes []Node, env *MathEnv, heading bool) []Node {
	for i, node := range nodes {
		switch n := node.(type) {
		case *Cmd:
			if n.Decl != nil && n.Decl.Math != nil {
				if env == nil {
					nodes[i] = &Fragment{}
					continue
				}

				nodes[i] = mathPlaceholder(n, env, heading)
				continue
			}

			inner := env
			if n.Decl != nil && n.Decl.Heading > 0 && n.Attrs.Has("toc-only") {
				inner = nil
			}

			n.Args = extractMath(n.Args, inner, heading || (n.Decl != nil && n.Decl.Heading > 0))
		case *Bracket:
			n.Children = extractMath(n.Children, env, heading)
		case *Quotation:
			n.Children = extractMath(n.Children, env, heading)
		case *Fragment:
			n.Children = extractMath(n.Children, env, heading)
		case *Tag:
			for _, arg := range n.Args {
				arg.Children = extractMath(arg.Children, env, heading)
			}
		}
	}

	return nodes
}

func mathPlaceholder(c *Cmd, env *MathEnv, heading bool) Node {
	spec := c.Decl.Math

	code := LaTeX(c.Body())
	if spec.Env != "" {
		code = "\\begin{" + spec.Env + "}" + code + "\\end{" + spec.Env + "}"
	}

	id := env.Add(code, spec.Block, spec.Unique || heading)

	attrs := NewAttributes()
	attrs.Set("id", id)
	if spec.Block {
		attrs.Set("display", "block")
	} else {
		attrs.Set("display", "inline")
	}

	return &Cmd{Ident: Ident{Name: MathSlot, Span: c.Ident.Span}, Attrs: attrs, Decl: mathSlot}
}
