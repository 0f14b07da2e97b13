package ss

import "strings"

// Attribute is a key with an optional value (nil when attribute is a flag, like [no-toc])
type Attribute struct {
	Key   Node
	Value Node
}

// Attributes is an ordered key-value list, keys are looked up by syntactic equality
type Attributes struct {
	Items []Attribute
}

func NewAttributes() *Attributes {
	return &Attributes{}
}

// Get finds value by key
func (a *Attributes) Get(key Node) (Node, bool) {
	if a == nil {
		return nil, false
	}

	for _, item := range a.Items {
		if Equal(item.Key, key) {
			return item.Value, true
		}
	}

	return nil, false
}

// Insert sets value for a key, existing key is updated in place
func (a *Attributes) Insert(key, value Node) {
	for i, item := range a.Items {
		if Equal(item.Key, key) {
			a.Items[i].Value = value
			return
		}
	}

	a.Items = append(a.Items, Attribute{Key: key, Value: value})
}

// Has checks if attribute is present, with or without value
func (a *Attributes) Has(name string) bool {
	_, ok := a.Get(&Symbol{Value: name})
	return ok
}

// Value returns attribute value as text, flags have empty value
func (a *Attributes) Value(name string) (string, bool) {
	v, ok := a.Get(&Symbol{Value: name})
	if !ok {
		return "", false
	}

	if v == nil {
		return "", true
	}

	return Flatten([]Node{v}), true
}

// Set inserts string key and value
func (a *Attributes) Set(name, value string) {
	a.Insert(&Symbol{Value: name}, &Text{Value: value})
}

func (a *Attributes) Len() int {
	if a == nil {
		return 0
	}

	return len(a.Items)
}

// ParseAttributes parses key-value list in this format: key=value, key="quoted value", flag. Segments are
// separated by top-level "," and key is separated from value by the first top-level "=". Segments with an
// empty key are dropped.
func ParseAttributes(children []Node) *Attributes {
	attrs := NewAttributes()

	for _, segment := range split(children, ",") {
		key, value, ok := cut(segment, "=")

		name := strings.TrimSpace(Flatten(key))
		if name == "" {
			continue
		}

		if !ok {
			attrs.Insert(&Symbol{Value: name}, nil)
			continue
		}

		attrs.Insert(&Symbol{Value: name}, &Text{Value: strings.TrimSpace(Flatten(value))})
	}

	return attrs
}

// split splits nodes by top-level symbol
func split(nodes []Node, sep string) (parts [][]Node) {
	var part []Node
	for _, n := range nodes {
		if s, ok := n.(*Symbol); ok && s.Value == sep {
			parts = append(parts, part)
			part = nil
			continue
		}

		part = append(part, n)
	}

	return append(parts, part)
}

// cut splits nodes around the first top-level symbol
func cut(nodes []Node, sep string) (before, after []Node, found bool) {
	for i, n := range nodes {
		if s, ok := n.(*Symbol); ok && s.Value == sep {
			return nodes[:i], nodes[i+1:], true
		}
	}

	return nodes, nil, false
}
