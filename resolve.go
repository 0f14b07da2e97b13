package ss

import "github.com/rs/zerolog"

// Resolver matches identifiers against command declarations
type Resolver struct {
	registry *Registry
	log      zerolog.Logger
}

func NewResolver(registry *Registry, log zerolog.Logger) *Resolver {
	return &Resolver{registry: registry, log: log}
}

// Resolve scans node list left to right, each identifier (or tag) matching a declaration is replaced together
// with consumed attributes, arguments and where block by the node produced by the declaration. Produced nodes
// are not rescanned, unmatched identifiers are left as they are. Then resolution descends into children, with
// a derived scope for arguments of matched commands.
func (r *Resolver) Resolve(nodes []Node, scope Scope) []Node {
	out := make([]Node, 0, len(nodes))

	for i := 0; i < len(nodes); {
		produced, used, ok := r.match(nodes, i, scope)
		if !ok {
			out = append(out, nodes[i])
			i++
			continue
		}

		out = append(out, produced...)
		i += used
	}

	for _, n := range out {
		r.descend(n, scope)
	}

	return out
}

func (r *Resolver) descend(node Node, scope Scope) {
	switch n := node.(type) {
	case *Cmd:
		var override *ScopeOverride
		if n.Decl != nil {
			override = n.Decl.Child
		}

		n.Args = r.Resolve(n.Args, scope.Descend(n.Ident.Name, override))
	case *Bracket:
		n.Children = r.Resolve(n.Children, scope)
	case *Quotation:
		n.Children = r.Resolve(n.Children, scope)
	case *Fragment:
		n.Children = r.Resolve(n.Children, scope)
	case *Tag:
		for _, arg := range n.Args {
			arg.Children = r.Resolve(arg.Children, scope)
		}
	}
}

// head is an identifier together with whatever normalization attached to it
type head struct {
	ident    Ident
	options  *Bracket
	attrs    *Attributes
	attached []Node
	rules    []Rule
}

func headAt(nodes []Node, i int) (head, bool) {
	switch n := nodes[i].(type) {
	case *Ident:
		return head{ident: *n}, true
	case *Tag:
		h := head{ident: n.Ident, options: n.Options, attrs: n.Attrs, rules: n.Rewrites}
		for _, arg := range n.Args {
			h.attached = append(h.attached, arg)
		}

		return h, true
	default:
		return head{}, false
	}
}

// match tries declarations of the identifier at position i in order, it returns produced nodes and number of
// consumed nodes
func (r *Resolver) match(nodes []Node, i int, scope Scope) ([]Node, int, bool) {
	h, ok := headAt(nodes, i)
	if !ok {
		return nil, 0, false
	}

	rest := nodes[i+1:]

	for _, decl := range r.registry.Lookup(h.ident.Name) {
		if !decl.Parent.allows(scope) {
			continue
		}

		// stream is a sequence of candidate arguments: enclosures attached to the tag, then following siblings
		var stream []Node
		attrs := h.attrs
		skipped := 0 // siblings consumed as attribute list

		if decl.IgnoreAttributes {
			attrs = nil
			if h.options != nil {
				stream = append(stream, h.options)
			}
		} else if h.options == nil && len(h.attached) == 0 {
			pos := skipBlank(rest, 0)
			if b, ok := bracketAt(rest, pos, SquareParen); ok {
				attrs = ParseAttributes(b.Children)
				skipped = pos + 1
			}
		}

		if !decl.IgnoreAttributes && !decl.checkAttributes(attrs) {
			continue
		}

		prefix := len(stream) + len(h.attached)
		stream = append(stream, h.attached...)
		stream = append(stream, rest[skipped:]...)

		for _, instance := range decl.Arguments {
			args, used, ok := instance.match(stream)
			if !ok {
				continue
			}

			consumed := 1 + skipped
			if used > prefix {
				consumed += used - prefix
			}

			call := Call{Ident: h.ident, Attrs: attrs, Args: args, Scope: scope, Decl: decl}
			node := instance.convert(call)

			// where block is attached to the tag, or follows consumed arguments
			rules := h.rules
			if used >= prefix {
				if more, n := whereBlock(nodes, i+consumed); n > 0 {
					rules = append(rules, more...)
					consumed += n
				}
			}

			if len(rules) > 0 {
				applyRules(node, rules, decl.DeferRewrites)
			}

			produced := []Node{node}

			// enclosures attached to the tag but not taken by the argument list stay in place
			if used < prefix {
				produced = append(produced, stream[used:prefix]...)
			}

			r.log.Debug().Str("command", h.ident.Name).Int("args", len(args)).Msg("command resolved")
			return produced, consumed, true
		}
	}

	r.log.Debug().Str("command", h.ident.Name).Str("path", scope.Path).Msg("command is not resolved")
	return nil, 0, false
}

// applyRules rewrites arguments of the produced node, or stores rules on the command if rewrites are deferred
func applyRules(node Node, rules []Rule, deferred bool) {
	switch n := node.(type) {
	case *Cmd:
		if deferred {
			n.Rewrites = append(n.Rewrites, rules...)
			return
		}

		n.Args = Rewrite(n.Args, rules)
	case *Fragment:
		if !deferred {
			n.Children = Rewrite(n.Children, rules)
		}
	case *Bracket:
		if !deferred {
			n.Children = Rewrite(n.Children, rules)
		}
	}
}
