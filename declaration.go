package ss

import (
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Shape is a kind of argument list a command accepts
type Shape int

const (
	ExactArity  Shape = iota // exact sequence of enclosures, whitespace between them is skipped
	GreedyCurly              // all immediately following curly brace blocks
	NoArguments
)

// Call is a matched invocation, it's passed to a converter to produce the replacement node
type Call struct {
	Ident Ident
	Attrs *Attributes
	Args  []Node
	Scope Scope
	Decl  *Declaration
}

// Converter produces a node for a matched invocation
type Converter func(c Call) Node

// ArgumentInstance is one of alternative argument lists of a command
type ArgumentInstance struct {
	Shape    Shape
	Brackets []BracketKind // for ExactArity
	Convert  Converter     // nil means a plain Cmd node
}

// match captures arguments at the beginning of nodes, it returns captured arguments and number of consumed nodes
func (a ArgumentInstance) match(nodes []Node) (args []Node, used int, ok bool) {
	switch a.Shape {
	case NoArguments:
		return nil, 0, true
	case GreedyCurly:
		for used < len(nodes) {
			b, ok := bracketAt(nodes, used, CurlyBrace)
			if !ok {
				break
			}

			args = append(args, b)
			used++
		}

		return args, used, true
	case ExactArity:
		for _, kind := range a.Brackets {
			pos := skipBlank(nodes, used)

			b, ok := bracketAt(nodes, pos, kind)
			if !ok {
				return nil, 0, false
			}

			args = append(args, b)
			used = pos + 1
		}

		return args, used, true
	default:
		return nil, 0, false
	}
}

func (a ArgumentInstance) convert(c Call) Node {
	if a.Convert != nil {
		return a.Convert(c)
	}

	return &Cmd{Ident: c.Ident, Attrs: c.Attrs, Args: c.Args, Decl: c.Decl}
}

type AttributeType int

const (
	StringAttribute AttributeType = iota
	IntAttribute
	BoolAttribute
	HeadingAttribute // heading level: h1..h6
)

// AttributeSpec describes an attribute a command accepts
type AttributeSpec struct {
	Name     string
	Required bool
	Type     AttributeType
}

func (s AttributeSpec) valid(value string) bool {
	switch s.Type {
	case IntAttribute:
		_, err := strconv.Atoi(value)
		return err == nil
	case BoolAttribute:
		if value == "" {
			return true
		}

		_, err := strconv.ParseBool(value)
		return err == nil
	case HeadingAttribute:
		_, ok := HeadingLevel(value)
		return ok
	default:
		return true
	}
}

// MathSpec marks a command as a formula container
type MathSpec struct {
	Env    string // LaTeX environment to wrap the formula in, e.g. equation
	Block  bool
	Unique bool // identical formulas never share an entry
}

// HTMLLowering converts command to HTML
type HTMLLowering interface {
	LowerHTML(g *HTMLGen, c *Cmd) []*html.Node
}

type HTMLFunc func(g *HTMLGen, c *Cmd) []*html.Node

func (f HTMLFunc) LowerHTML(g *HTMLGen, c *Cmd) []*html.Node {
	return f(g, c)
}

// LaTeXLowering converts command to LaTeX
type LaTeXLowering interface {
	LowerLaTeX(w io.Writer, c *Cmd) error
}

type LaTeXFunc func(w io.Writer, c *Cmd) error

func (f LaTeXFunc) LowerLaTeX(w io.Writer, c *Cmd) error {
	return f(w, c)
}

// Declaration describes where and how a command may be invoked and how it is converted to output
type Declaration struct {
	Name             string
	Parent           *ScopeConstraint
	Child            *ScopeOverride
	Attributes       []AttributeSpec
	IgnoreAttributes bool
	Arguments        []ArgumentInstance
	HTML             HTMLLowering
	LaTeX            LaTeXLowering
	DeferRewrites    bool // keep trailing rewrite rules on the command instead of applying them
	Math             *MathSpec
	Heading          int // heading level, 0 for other commands
}

// checkAttributes validates attributes against the declared schema
func (d *Declaration) checkAttributes(attrs *Attributes) bool {
	for _, spec := range d.Attributes {
		value, ok := attrs.Value(spec.Name)
		if !ok {
			if spec.Required {
				return false
			}

			continue
		}

		if !spec.valid(value) {
			return false
		}
	}

	return true
}

// HeadingLevel parses heading level in format hN
func HeadingLevel(value string) (int, bool) {
	value = strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(value)), "\\"), "h")

	level, err := strconv.Atoi(value)
	if err != nil || level < 1 || level > 6 {
		return 0, false
	}

	return level, true
}

// skipBlank returns position of the first node at or after i which isn't whitespace
func skipBlank(nodes []Node, i int) int {
	for i < len(nodes) {
		t, ok := nodes[i].(*Text)
		if !ok || !isBlank(t.Value) {
			return i
		}

		i++
	}

	return i
}
