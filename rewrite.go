package ss

// WhereIdent is the identifier of a substitution block: \where!{ {pattern} => {target}; ... }
const WhereIdent = "\\where!"

// Rule replaces a sequence of nodes syntactically equal to Pattern with Target
type Rule struct {
	Pattern []Node
	Target  []Node
}

// ParseRules reads {pattern} => {target} arms from the content of a where block. Anything between arms
// (whitespace, ";") is ignored.
func ParseRules(children []Node) (rules []Rule) {
	var pattern *Bracket
	arrow := false

	for _, n := range children {
		switch v := n.(type) {
		case *Bracket:
			if v.Kind != CurlyBrace {
				pattern, arrow = nil, false
				continue
			}

			if pattern != nil && arrow {
				rules = append(rules, Rule{Pattern: pattern.Children, Target: v.Children})
				pattern, arrow = nil, false
				continue
			}

			pattern, arrow = v, false
		case *Tag:
			// a {pattern} glued to an identifier is consumed by the identifier, such arm can't be read
			pattern, arrow = nil, false
		case *Symbol:
			if v.Value == "=>" && pattern != nil {
				arrow = true
				continue
			}

			pattern, arrow = nil, false
		case *Text:
			if isBlank(v.Value) {
				continue
			}

			pattern, arrow = nil, false
		default:
			pattern, arrow = nil, false
		}
	}

	return
}

// Rewrite applies rules to a node list in a single left to right pass. At each position rules are tried in
// order and the first one whose pattern matches the window of following nodes wins: the window is replaced with
// a copy of the target and scanning continues after it, so substituted nodes are never rewritten again in the
// same pass. Nodes which are kept are rewritten recursively.
func Rewrite(nodes []Node, rules []Rule) []Node {
	if len(rules) == 0 {
		return nodes
	}

	out := make([]Node, 0, len(nodes))

	for i := 0; i < len(nodes); {
		rule, ok := matchRule(nodes[i:], rules)
		if ok {
			out = append(out, CloneAll(rule.Target)...)
			i += len(rule.Pattern)
			continue
		}

		out = append(out, rewriteChildren(nodes[i], rules))
		i++
	}

	return out
}

func matchRule(window []Node, rules []Rule) (Rule, bool) {
	for _, rule := range rules {
		if len(rule.Pattern) == 0 || len(rule.Pattern) > len(window) {
			continue
		}

		if EqualAll(window[:len(rule.Pattern)], rule.Pattern) {
			return rule, true
		}
	}

	return Rule{}, false
}

func rewriteChildren(node Node, rules []Rule) Node {
	switch n := node.(type) {
	case *Bracket:
		n.Children = Rewrite(n.Children, rules)
	case *Quotation:
		n.Children = Rewrite(n.Children, rules)
	case *Fragment:
		n.Children = Rewrite(n.Children, rules)
	case *Tag:
		for _, arg := range n.Args {
			arg.Children = Rewrite(arg.Children, rules)
		}
	case *Cmd:
		n.Args = Rewrite(n.Args, rules)
	}

	return node
}
