package ss

// Node is an element of the document tree. It is one of: *Cmd, *Ident, *Tag, *Bracket, *Quotation, *Text,
// *Symbol, *InvalidToken, *Drawing or *Fragment.
type Node interface {
	node()
}

type BracketKind int

const (
	CurlyBrace BracketKind = iota
	SquareParen
	Parens
)

// Ident is a \name token which is not resolved to a command (yet)
type Ident struct {
	Name string
	Span Span
}

// Text is a run of plain characters or whitespace
type Text struct {
	Value string
	Span  Span
}

// Symbol is a reserved punctuation word, like "=", "," or "=>"
type Symbol struct {
	Value string
	Span  Span
}

// InvalidToken is a closing bracket without an opening one
type InvalidToken struct {
	Token Token
}

// Bracket is an enclosure: {...}, [...] or (...). Close is nil when enclosure is not terminated.
type Bracket struct {
	Kind     BracketKind
	Open     *Token
	Close    *Token
	Children []Node
}

// Quotation is an enclosure in quote marks. Close is nil when quotation is not terminated.
type Quotation struct {
	Open     *Token
	Close    *Token
	Children []Node
}

// Drawing is an opaque vector graphics payload, pre-rendered for light and dark color schemes
type Drawing struct {
	Name  string
	Light []byte
	Dark  []byte
}

// Fragment is a list of nodes spliced into its parent without a wrapping element
type Fragment struct {
	Children []Node
}

// Tag is an identifier with its adjacent option list, argument blocks and rewrite rules attached
type Tag struct {
	Ident    Ident
	Options  *Bracket
	Attrs    *Attributes
	Args     []*Bracket
	Rewrites []Rule
}

// Cmd is an identifier resolved against a command declaration
type Cmd struct {
	Ident    Ident
	Attrs    *Attributes
	Args     []Node
	Decl     *Declaration
	Rewrites []Rule
}

func (*Ident) node()        {}
func (*Text) node()         {}
func (*Symbol) node()       {}
func (*InvalidToken) node() {}
func (*Bracket) node()      {}
func (*Quotation) node()    {}
func (*Drawing) node()      {}
func (*Fragment) node()     {}
func (*Tag) node()          {}
func (*Cmd) node()          {}

// Document is a compiled file
type Document struct {
	Path  string
	Nodes []Node
	Math  *MathEnv
}

// Curly makes a synthesized curly brace block
func Curly(children ...Node) *Bracket {
	return &Bracket{
		Kind:     CurlyBrace,
		Open:     &Token{Text: "{"},
		Close:    &Token{Text: "}"},
		Children: children,
	}
}

// Attr returns attribute value as a string
func (c *Cmd) Attr(name string) (string, bool) {
	if c.Attrs == nil {
		return "", false
	}

	return c.Attrs.Value(name)
}

// Body returns argument nodes with the outermost curly brace layer removed
func (c *Cmd) Body() []Node {
	return unwrap(c.Args)
}

func unwrap(args []Node) (children []Node) {
	for _, arg := range args {
		if b, ok := arg.(*Bracket); ok && b.Kind == CurlyBrace {
			children = append(children, b.Children...)
			continue
		}

		children = append(children, arg)
	}

	return
}
