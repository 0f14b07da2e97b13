package ss

// Clone makes a deep copy of a node. Declarations are immutable and stay shared.
func Clone(node Node) Node {
	switch n := node.(type) {
	case nil:
		return nil
	case *Ident:
		c := *n
		return &c
	case *Text:
		c := *n
		return &c
	case *Symbol:
		c := *n
		return &c
	case *InvalidToken:
		c := *n
		return &c
	case *Drawing:
		c := *n
		return &c
	case *Bracket:
		return cloneBracket(n)
	case *Quotation:
		return &Quotation{Open: cloneToken(n.Open), Close: cloneToken(n.Close), Children: CloneAll(n.Children)}
	case *Fragment:
		return &Fragment{Children: CloneAll(n.Children)}
	case *Tag:
		c := &Tag{Ident: n.Ident, Attrs: cloneAttributes(n.Attrs), Rewrites: cloneRules(n.Rewrites)}
		if n.Options != nil {
			c.Options = cloneBracket(n.Options)
		}

		for _, arg := range n.Args {
			c.Args = append(c.Args, cloneBracket(arg))
		}

		return c
	case *Cmd:
		return &Cmd{
			Ident:    n.Ident,
			Attrs:    cloneAttributes(n.Attrs),
			Args:     CloneAll(n.Args),
			Decl:     n.Decl,
			Rewrites: cloneRules(n.Rewrites),
		}
	default:
		return node
	}
}

// CloneAll makes a deep copy of a node list
func CloneAll(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}

	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = Clone(n)
	}

	return out
}

func cloneBracket(b *Bracket) *Bracket {
	return &Bracket{Kind: b.Kind, Open: cloneToken(b.Open), Close: cloneToken(b.Close), Children: CloneAll(b.Children)}
}

func cloneToken(t *Token) *Token {
	if t == nil {
		return nil
	}

	c := *t
	return &c
}

func cloneAttributes(a *Attributes) *Attributes {
	if a == nil {
		return nil
	}

	c := &Attributes{Items: make([]Attribute, len(a.Items))}
	for i, item := range a.Items {
		c.Items[i] = Attribute{Key: Clone(item.Key), Value: Clone(item.Value)}
	}

	return c
}

func cloneRules(rules []Rule) []Rule {
	if rules == nil {
		return nil
	}

	c := make([]Rule, len(rules))
	for i, r := range rules {
		c[i] = Rule{Pattern: CloneAll(r.Pattern), Target: CloneAll(r.Target)}
	}

	return c
}
