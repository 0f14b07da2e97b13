package ss

import (
	"io"

	"gopkg.in/yaml.v3"
)

// Dump converts tree into plain values for debugging output
func Dump(nodes []Node) []any {
	out := make([]any, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, dump(n))
	}

	return out
}

// DumpYAML writes tree as YAML
func DumpYAML(w io.Writer, nodes []Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(Dump(nodes)); err != nil {
		return err
	}

	return enc.Close()
}

func dump(node Node) any {
	switch n := node.(type) {
	case *Text:
		return map[string]any{"text": n.Value}
	case *Symbol:
		return map[string]any{"symbol": n.Value}
	case *Ident:
		return map[string]any{"ident": n.Name}
	case *InvalidToken:
		return map[string]any{"invalid": n.Token.Text}
	case *Drawing:
		return map[string]any{"drawing": n.Name}
	case *Bracket:
		return map[string]any{"bracket": n.Open.text() + n.Close.text(), "children": Dump(n.Children)}
	case *Quotation:
		return map[string]any{"quote": n.Open.text() + n.Close.text(), "children": Dump(n.Children)}
	case *Fragment:
		return map[string]any{"fragment": Dump(n.Children)}
	case *Tag:
		args := make([]Node, len(n.Args))
		for i, arg := range n.Args {
			args[i] = arg
		}

		m := map[string]any{"tag": n.Ident.Name, "args": Dump(args)}
		if n.Attrs != nil {
			m["attrs"] = dumpAttributes(n.Attrs)
		}

		if len(n.Rewrites) > 0 {
			m["rules"] = len(n.Rewrites)
		}

		return m
	case *Cmd:
		m := map[string]any{"cmd": n.Ident.Name, "args": Dump(n.Args)}
		if n.Attrs.Len() > 0 {
			m["attrs"] = dumpAttributes(n.Attrs)
		}

		return m
	default:
		return nil
	}
}

func dumpAttributes(attrs *Attributes) []string {
	out := make([]string, 0, attrs.Len())
	for _, item := range attrs.Items {
		key := Flatten([]Node{item.Key})
		if item.Value == nil {
			out = append(out, key)
			continue
		}

		out = append(out, key+"="+Flatten([]Node{item.Value}))
	}

	return out
}
