package ss

// ContentMode describes what kind of content is expected at a position in the document
type ContentMode int

const (
	TextContent     ContentMode = iota
	SymbolicContent             // any symbolic content
	MathContent                 // symbolic content of a formula
)

// accepts reports if content required by a declaration is satisfied by the current content mode
func (m ContentMode) accepts(current ContentMode) bool {
	return m == current || (m == SymbolicContent && current == MathContent)
}

func (m ContentMode) String() string {
	switch m {
	case TextContent:
		return "text"
	case SymbolicContent:
		return "symbolic"
	case MathContent:
		return "math"
	default:
		return "unknown"
	}
}

// LayoutMode describes how content at a position in the document is laid out
type LayoutMode int

const (
	BlockLayout LayoutMode = iota
	InlineLayout
	BothLayouts
)

// accepts reports if layout modes are compatible, BothLayouts on either side is always compatible
func (m LayoutMode) accepts(current LayoutMode) bool {
	return m == BothLayouts || current == BothLayouts || m == current
}

func (m LayoutMode) String() string {
	switch m {
	case BlockLayout:
		return "block"
	case InlineLayout:
		return "inline"
	case BothLayouts:
		return "both"
	default:
		return "unknown"
	}
}

// Scope is a context in which identifiers are resolved. Scopes are values: descending into command arguments
// derives a new scope and never changes the parent one.
type Scope struct {
	Ancestors []string
	Content   ContentMode
	Layout    LayoutMode
	Path      string
	Cache     *IncludeCache
}

// NewScope creates top-level scope of a file
func NewScope(path string, cache *IncludeCache) Scope {
	return Scope{Content: TextContent, Layout: BlockLayout, Path: path, Cache: cache}
}

// Descend derives scope for arguments of a command
func (s Scope) Descend(ident string, override *ScopeOverride) Scope {
	ancestors := make([]string, len(s.Ancestors), len(s.Ancestors)+1)
	copy(ancestors, s.Ancestors)

	child := s
	child.Ancestors = append(ancestors, ident)

	if override != nil {
		child.Content = override.Content
		child.Layout = override.Layout
	}

	return child
}

// Within checks if identifier is present anywhere in the ancestor stack
func (s Scope) Within(ident string) bool {
	for _, a := range s.Ancestors {
		if a == ident {
			return true
		}
	}

	return false
}

// ScopeConstraint limits where a command may appear
type ScopeConstraint struct {
	Ancestor string // required ancestor, anywhere up the stack; empty means no requirement
	Content  ContentMode
	Layout   LayoutMode
}

func (c *ScopeConstraint) allows(s Scope) bool {
	if c == nil {
		return true
	}

	if !c.Content.accepts(s.Content) || !c.Layout.accepts(s.Layout) {
		return false
	}

	return c.Ancestor == "" || s.Within(c.Ancestor)
}

// ScopeOverride is imposed on descendants of a command
type ScopeOverride struct {
	Content ContentMode
	Layout  LayoutMode
}
