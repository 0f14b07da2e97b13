package ss

// Normalize turns identifiers with adjacent enclosures into tags: a [...] right after an identifier is parsed as
// attribute list, each {...} right after an identifier or a tag becomes an argument block, and a \where!{...}
// right after a tag is collapsed into the tag's rewrite rules. Whitespace breaks adjacency. Enclosures which
// don't follow an identifier are kept as they are.
//
// Normalization works bottom-up and is idempotent.
func Normalize(nodes []Node) []Node {
	for _, n := range nodes {
		normalizeChildren(n)
	}

	out := make([]Node, 0, len(nodes))

	for i := 0; i < len(nodes); i++ {
		var tag *Tag

		switch n := nodes[i].(type) {
		case *Ident:
			tag = &Tag{Ident: *n}
			if b, ok := bracketAt(nodes, i+1, SquareParen); ok {
				tag.Options = b
				tag.Attrs = ParseAttributes(b.Children)
				i++
			}
		case *Tag:
			tag = n
		default:
			out = append(out, n)
			continue
		}

		for {
			b, ok := bracketAt(nodes, i+1, CurlyBrace)
			if !ok {
				break
			}

			tag.Args = append(tag.Args, b)
			i++
		}

		if tag.Options == nil && len(tag.Args) == 0 {
			out = append(out, nodes[i])
			continue
		}

		for {
			rules, used := whereBlock(nodes, i+1)
			if used == 0 {
				break
			}

			tag.Rewrites = append(tag.Rewrites, rules...)
			i += used
		}

		out = append(out, tag)
	}

	return out
}

func normalizeChildren(node Node) {
	switch n := node.(type) {
	case *Bracket:
		n.Children = Normalize(n.Children)
	case *Quotation:
		n.Children = Normalize(n.Children)
	case *Fragment:
		n.Children = Normalize(n.Children)
	case *Tag:
		for _, arg := range n.Args {
			arg.Children = Normalize(arg.Children)
		}
	case *Cmd:
		n.Args = Normalize(n.Args)
	}
}

// bracketAt returns enclosure of a given kind at position i
func bracketAt(nodes []Node, i int, kind BracketKind) (*Bracket, bool) {
	if i >= len(nodes) {
		return nil, false
	}

	b, ok := nodes[i].(*Bracket)
	if !ok || b.Kind != kind {
		return nil, false
	}

	return b, true
}

// whereBlock reads a where block at position i, either a raw \where! identifier followed by a curly block or an
// already normalized tag. It returns rules and number of consumed nodes, zero if there is no where block.
func whereBlock(nodes []Node, i int) ([]Rule, int) {
	if i >= len(nodes) {
		return nil, 0
	}

	switch n := nodes[i].(type) {
	case *Ident:
		if n.Name != WhereIdent {
			return nil, 0
		}

		b, ok := bracketAt(nodes, i+1, CurlyBrace)
		if !ok {
			return nil, 0
		}

		return ParseRules(b.Children), 2
	case *Tag:
		if n.Ident.Name != WhereIdent || n.Options != nil || len(n.Args) == 0 {
			return nil, 0
		}

		var rules []Rule
		for _, arg := range n.Args {
			rules = append(rules, ParseRules(arg.Children)...)
		}

		return rules, 1
	default:
		return nil, 0
	}
}
