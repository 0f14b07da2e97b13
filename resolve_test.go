package ss_test

import (
	"testing"

	"github.com/eolymp/go-ss"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

func resolve(src string) []ss.Node {
	r := ss.NewResolver(ss.DefaultRegistry(), zerolog.Nop())
	return r.Resolve(ss.Normalize(ss.ParseString(src)), ss.NewScope("doc.ss", nil))
}

func cmd(name string, args ...ss.Node) *ss.Cmd {
	return &ss.Cmd{Ident: ss.Ident{Name: name}, Args: args}
}

func TestResolve(t *testing.T) {
	attrs := func(kv ...string) *ss.Attributes {
		a := ss.NewAttributes()
		for i := 0; i < len(kv); i += 2 {
			a.Set(kv[i], kv[i+1])
		}

		return a
	}

	tag := func(name string, args ...*ss.Bracket) *ss.Tag {
		return &ss.Tag{Ident: ss.Ident{Name: name}, Args: args}
	}

	tt := []struct {
		name   string
		input  string
		output []ss.Node
	}{
		{
			name:   "where block rewrites arguments",
			input:  "\\h1{\\test1}\\where!{{\\test1}=>{Text}}",
			output: nodes(cmd("\\h1", ss.Curly(text("Text")))),
		},
		{
			name:   "unknown command is left as is",
			input:  "\\foo{x}",
			output: nodes(tag("\\foo", ss.Curly(text("x")))),
		},
		{
			name:   "command resolved inside unknown one",
			input:  "\\foo{\\b{x}}",
			output: nodes(tag("\\foo", ss.Curly(cmd("\\b", ss.Curly(text("x")))))),
		},
		{
			name:   "greedy arguments",
			input:  "\\p{a}{b} {c}",
			output: nodes(cmd("\\p", ss.Curly(text("a")), ss.Curly(text("b"))), text(" "), ss.Curly(text("c"))),
		},
		{
			name:   "exact arity skips whitespace between arguments",
			input:  "\\{\\frac{a} {b}}",
			output: nodes(cmd(ss.InlineMath, ss.Curly(cmd("\\frac", ss.Curly(text("a")), ss.Curly(text("b")))))),
		},
		{
			name:   "attached arguments which are not taken stay in place",
			input:  "\\b{x}{y}",
			output: nodes(cmd("\\b", ss.Curly(text("x"))), ss.Curly(text("y"))),
		},
		{
			name:   "missing argument",
			input:  "\\{\\frac{a}}",
			output: nodes(cmd(ss.InlineMath, ss.Curly(tag("\\frac", ss.Curly(text("a")))))),
		},
		{
			name:   "image without argument",
			input:  "\\img[src=a.png]",
			output: nodes(&ss.Cmd{Ident: ss.Ident{Name: "\\img"}, Attrs: attrs("src", "a.png")}),
		},
		{
			name:   "image with argument",
			input:  "\\img[src=a.png]{alt}",
			output: nodes(&ss.Cmd{Ident: ss.Ident{Name: "\\img"}, Attrs: attrs("src", "a.png"), Args: nodes(ss.Curly(text("alt")))}),
		},
		{
			name:   "attributes following after whitespace",
			input:  "\\include [src=a.ss]",
			output: nodes(&ss.Cmd{Ident: ss.Ident{Name: ss.IncludeIdent}, Attrs: attrs("src", "a.ss")}),
		},
		{
			name:   "required attribute is missing",
			input:  "\\link{x}",
			output: nodes(tag("\\link", ss.Curly(text("x")))),
		},
		{
			name:  "options taken as an argument",
			input: "\\{\\sqrt[3]{x}}",
			output: nodes(cmd(ss.InlineMath, ss.Curly(
				cmd("\\sqrt", square(text("3")), ss.Curly(text("x"))),
			))),
		},
		{
			name:   "second alternative",
			input:  "\\{\\sqrt{x}}",
			output: nodes(cmd(ss.InlineMath, ss.Curly(cmd("\\sqrt", ss.Curly(text("x")))))),
		},
		{
			name:   "command outside of math",
			input:  "\\frac{a}{b}",
			output: nodes(tag("\\frac", ss.Curly(text("a")), ss.Curly(text("b")))),
		},
		{
			name:   "block command in inline scope",
			input:  "\\h1{\\p{x}}",
			output: nodes(cmd("\\h1", ss.Curly(tag("\\p", ss.Curly(text("x")))))),
		},
		{
			name:   "item outside of list",
			input:  "\\item{a}",
			output: nodes(tag("\\item", ss.Curly(text("a")))),
		},
		{
			name:  "item in list",
			input: "\\ul{\\item{a}\\item{b}}",
			output: nodes(cmd("\\ul", ss.Curly(
				cmd("\\item", ss.Curly(text("a"))),
				cmd("\\item", ss.Curly(text("b"))),
			))),
		},
		{
			name:  "required ancestor anywhere up the stack",
			input: "\\ol{\\b{\\item{a}}}",
			output: nodes(cmd("\\ol", ss.Curly(
				cmd("\\b", ss.Curly(cmd("\\item", ss.Curly(text("a"))))),
			))),
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got := resolve(tc.input)

			if diff := cmp.Diff(tc.output, got, treeOpts); diff != "" {
				t.Errorf("Tree does not match (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveDeclaration(t *testing.T) {
	got := resolve("\\h3{x} \\item{y}")

	h, ok := got[0].(*ss.Cmd)
	if !ok {
		t.Fatalf("Expected command, got %T", got[0])
	}

	if h.Decl == nil || h.Decl.Heading != 3 {
		t.Errorf("Heading is resolved to a wrong declaration: %+v", h.Decl)
	}

	if _, ok := got[2].(*ss.Tag); !ok {
		t.Errorf("Item outside of list must stay unresolved, got %T", got[2])
	}
}

func TestResolveDeferredRewrites(t *testing.T) {
	got := resolve("\\include[src=a.drawing]\\where!{{\\pic}=>{\\b{\\pic}}}")

	c, ok := got[0].(*ss.Cmd)
	if !ok {
		t.Fatalf("Expected command, got %T", got[0])
	}

	want := []ss.Rule{{
		Pattern: nodes(ident("\\pic")),
		Target:  nodes(&ss.Tag{Ident: ss.Ident{Name: "\\b"}, Args: []*ss.Bracket{ss.Curly(ident("\\pic"))}}),
	}}

	if diff := cmp.Diff(want, c.Rewrites, treeOpts); diff != "" {
		t.Errorf("Rules do not match (-want +got):\n%s", diff)
	}
}

func TestResolveScope(t *testing.T) {
	var scopes []ss.Scope

	probe := func(c ss.Call) ss.Node {
		scopes = append(scopes, c.Scope)
		return &ss.Cmd{Ident: c.Ident, Decl: c.Decl}
	}

	registry := ss.NewRegistry(
		&ss.Declaration{
			Name:      "\\outer",
			Child:     &ss.ScopeOverride{Content: ss.MathContent, Layout: ss.InlineLayout},
			Arguments: []ss.ArgumentInstance{{Shape: ss.ExactArity, Brackets: []ss.BracketKind{ss.CurlyBrace}}},
		},
		&ss.Declaration{
			Name:      "\\probe",
			Arguments: []ss.ArgumentInstance{{Shape: ss.NoArguments, Convert: probe}},
		},
	)

	r := ss.NewResolver(registry, zerolog.Nop())
	top := ss.NewScope("doc.ss", nil)

	r.Resolve(ss.Normalize(ss.ParseString("\\outer{\\outer{\\probe}} \\probe")), top)

	if len(scopes) != 2 {
		t.Fatalf("Expected 2 probes, got %d", len(scopes))
	}

	// siblings are matched before descending into arguments
	outer, inner := scopes[0], scopes[1]

	if len(outer.Ancestors) != 0 || outer.Content != ss.TextContent || outer.Layout != ss.BlockLayout {
		t.Errorf("Top-level scope does not match: %+v", outer)
	}

	if diff := cmp.Diff([]string{"\\outer", "\\outer"}, inner.Ancestors); diff != "" {
		t.Errorf("Ancestors do not match (-want +got):\n%s", diff)
	}

	if inner.Content != ss.MathContent || inner.Layout != ss.InlineLayout {
		t.Errorf("Scope override is not applied: %+v", inner)
	}

	if len(top.Ancestors) != 0 {
		t.Errorf("Parent scope is changed: %+v", top)
	}
}

func TestScopeDescend(t *testing.T) {
	parent := ss.NewScope("doc.ss", nil).Descend("\\a", nil)

	left := parent.Descend("\\b", nil)
	right := parent.Descend("\\c", &ss.ScopeOverride{Content: ss.MathContent, Layout: ss.InlineLayout})

	if diff := cmp.Diff([]string{"\\a", "\\b"}, left.Ancestors); diff != "" {
		t.Errorf("Ancestors do not match (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"\\a", "\\c"}, right.Ancestors); diff != "" {
		t.Errorf("Ancestors do not match (-want +got):\n%s", diff)
	}

	if left.Content != ss.TextContent || right.Content != ss.MathContent {
		t.Errorf("Content modes do not match: %v, %v", left.Content, right.Content)
	}

	if !right.Within("\\a") || right.Within("\\b") {
		t.Errorf("Within does not match ancestors: %v", right.Ancestors)
	}
}
