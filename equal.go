package ss

// Equal checks syntactic equality of two nodes: structure and token text, ignoring source location.
//
// Any two Text nodes are equal regardless of their content, and so are any two Drawing nodes. Symbol and Ident
// nodes compare by content.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch x := a.(type) {
	case *Text:
		_, ok := b.(*Text)
		return ok
	case *Drawing:
		_, ok := b.(*Drawing)
		return ok
	case *Symbol:
		y, ok := b.(*Symbol)
		return ok && x.Value == y.Value
	case *Ident:
		y, ok := b.(*Ident)
		return ok && x.Name == y.Name
	case *InvalidToken:
		y, ok := b.(*InvalidToken)
		return ok && x.Token.Text == y.Token.Text
	case *Bracket:
		y, ok := b.(*Bracket)
		return ok && x.Kind == y.Kind && x.Open.text() == y.Open.text() && x.Close.text() == y.Close.text() &&
			EqualAll(x.Children, y.Children)
	case *Quotation:
		y, ok := b.(*Quotation)
		return ok && x.Open.text() == y.Open.text() && x.Close.text() == y.Close.text() &&
			EqualAll(x.Children, y.Children)
	case *Fragment:
		y, ok := b.(*Fragment)
		return ok && EqualAll(x.Children, y.Children)
	case *Tag:
		y, ok := b.(*Tag)
		if !ok || x.Ident.Name != y.Ident.Name || !equalAttributes(x.Attrs, y.Attrs) || len(x.Args) != len(y.Args) {
			return false
		}

		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}

		return true
	case *Cmd:
		y, ok := b.(*Cmd)
		return ok && x.Ident.Name == y.Ident.Name && equalAttributes(x.Attrs, y.Attrs) && EqualAll(x.Args, y.Args)
	default:
		return false
	}
}

// EqualAll checks syntactic equality of two node lists
func EqualAll(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}

	return true
}

func equalAttributes(a, b *Attributes) bool {
	if a.Len() != b.Len() {
		return false
	}

	for i := 0; i < a.Len(); i++ {
		x, y := a.Items[i], b.Items[i]
		if !Equal(x.Key, y.Key) || !Equal(x.Value, y.Value) {
			return false
		}
	}

	return true
}
