package ss

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// SourceExt is the extension of source files
const SourceExt = ".ss"

// Compiler compiles source files into documents. It's safe for concurrent use: the registry is immutable and
// the include cache is synchronized.
type Compiler struct {
	fs       afero.Fs
	registry *Registry
	resolver *Resolver
	decoders map[string]DrawingDecoder
	cache    *IncludeCache
	log      zerolog.Logger
}

type Option func(*Compiler)

func WithRegistry(r *Registry) Option {
	return func(c *Compiler) {
		c.registry = r
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Compiler) {
		c.log = log
	}
}

// WithDecoder registers drawing decoder for a file extension, for example ".drawing"
func WithDecoder(ext string, d DrawingDecoder) Option {
	return func(c *Compiler) {
		c.decoders[strings.ToLower(ext)] = d
	}
}

func WithCache(cache *IncludeCache) Option {
	return func(c *Compiler) {
		c.cache = cache
	}
}

// NewCompiler creates compiler reading files from fs, all paths are relative to the fs root
func NewCompiler(fs afero.Fs, opts ...Option) *Compiler {
	c := &Compiler{
		fs:       fs,
		decoders: map[string]DrawingDecoder{},
		log:      zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.registry == nil {
		c.registry = DefaultRegistry()
	}

	if c.cache == nil {
		c.cache = NewIncludeCache()
	}

	c.resolver = NewResolver(c.registry, c.log)

	return c
}

// Compile compiles a file: parses, normalizes and resolves it, expands includes and extracts formulas
func (c *Compiler) Compile(path string) (*Document, error) {
	path = filepath.Clean(path)

	doc, err := c.compile(path, true)
	if err != nil {
		return nil, fmt.Errorf("unable to compile %s: %w", path, err)
	}

	return doc, nil
}

// CompileLaTeX compiles a file into LaTeX, formulas stay in place
func (c *Compiler) CompileLaTeX(path string) (string, error) {
	path = filepath.Clean(path)

	doc, err := c.compile(path, false)
	if err != nil {
		return "", fmt.Errorf("unable to compile %s: %w", path, err)
	}

	return LaTeX(doc.Nodes), nil
}

// CompileString compiles source text which is not stored in a file, includes are resolved relative to path
func (c *Compiler) CompileString(path, src string) (*Document, error) {
	path = filepath.Clean(path)
	return c.finish(path, c.resolve(src, NewScope(path, c.cache)), true)
}

func (c *Compiler) compile(path string, extract bool) (*Document, error) {
	nodes, err := c.load(c.cache, path)
	if err != nil {
		return nil, err
	}

	return c.finish(path, nodes, extract)
}

// finish expands includes and, if extract is set, moves formulas to the math environment
func (c *Compiler) finish(path string, nodes []Node, extract bool) (*Document, error) {
	var math *MathEnv
	if extract {
		math = NewMathEnv()
	}

	nodes, err := c.expand(nodes, NewScope(path, c.cache), []string{path}, math)
	if err != nil {
		return nil, err
	}

	if extract {
		nodes = ExtractMath(nodes, math)
	}

	return &Document{Path: path, Nodes: nodes, Math: math}, nil
}

// load returns resolved content of a file, either a source file or a drawing
func (c *Compiler) load(cache *IncludeCache, path string) ([]Node, error) {
	return cache.Load(path, func() ([]Node, error) {
		ext := strings.ToLower(filepath.Ext(path))

		decoder, ok := c.decoders[ext]
		if ext != SourceExt && !ok {
			return nil, ErrUnsupportedFormat
		}

		data, err := afero.ReadFile(c.fs, path)
		if err != nil {
			return nil, err
		}

		c.log.Debug().Str("path", path).Int("size", len(data)).Msg("file loaded")

		if ext == SourceExt {
			return c.resolve(string(data), NewScope(path, cache)), nil
		}

		drawings, err := decoder.Decode(filepath.Base(path), data)
		if err != nil {
			return nil, err
		}

		nodes := make([]Node, len(drawings))
		for i, d := range drawings {
			nodes[i] = d
		}

		return nodes, nil
	})
}

func (c *Compiler) resolve(src string, scope Scope) []Node {
	return c.resolver.Resolve(Normalize(ParseString(src)), scope)
}

// expand replaces \include commands with content of included files, they are loaded through the cache of the
// scope. Formulas of included files are extracted into math, unless it is nil.
func (c *Compiler) expand(nodes []Node, scope Scope, chain []string, math *MathEnv) ([]Node, error) {
	for i, node := range nodes {
		var err error

		switch n := node.(type) {
		case *Cmd:
			if n.Decl != nil && n.Decl.Name == IncludeIdent {
				var included []Node
				if included, err = c.include(n, scope, chain, math); err != nil {
					return nil, err
				}

				nodes[i] = &Fragment{Children: included}
				continue
			}

			n.Args, err = c.expand(n.Args, scope, chain, math)
		case *Bracket:
			n.Children, err = c.expand(n.Children, scope, chain, math)
		case *Quotation:
			n.Children, err = c.expand(n.Children, scope, chain, math)
		case *Fragment:
			n.Children, err = c.expand(n.Children, scope, chain, math)
		}

		if err != nil {
			return nil, err
		}
	}

	return nodes, nil
}

// include loads a file named by \include and prepares its content for the including document. Headings of a
// toc-only include are never drawn, so its formulas are left to be dropped by ExtractMath instead of being added
// to the page.
func (c *Compiler) include(cmd *Cmd, scope Scope, chain []string, math *MathEnv) ([]Node, error) {
	src, _ := cmd.Attr("src")
	target := filepath.Join(filepath.Dir(scope.Path), filepath.FromSlash(src))

	for _, p := range chain {
		if p == target {
			return nil, &IncludeError{Path: target, Err: ErrIncludeCycle}
		}
	}

	cached := scope.Cache.Cached(target)

	nodes, err := c.load(scope.Cache, target)
	if err != nil {
		return nil, &IncludeError{Path: target, Err: err}
	}

	c.log.Debug().Str("path", target).Str("from", scope.Path).Bool("cached", cached).Msg("file included")

	if filepath.Ext(target) != SourceExt {
		return c.splice(nodes, cmd.Rewrites, NewScope(scope.Path, scope.Cache)), nil
	}

	shift := 0
	if baseline, ok := cmd.Attr("baseline"); ok {
		level, _ := HeadingLevel(baseline)
		shift = level - 1
	}

	h := headings{
		registry: c.registry,
		shift:    shift,
		source:   filepath.ToSlash(target),
		tocOnly:  cmd.Attrs.Has("toc-only"),
		noToc:    cmd.Attrs.Has("no-toc"),
	}

	var sub *MathEnv
	if math != nil && !h.tocOnly {
		sub = NewMathEnv()
	}

	nodes, err = c.expand(nodes, NewScope(target, scope.Cache), extend(chain, target), sub)
	if err != nil {
		return nil, err
	}

	nodes = h.adjust(nodes)
	if h.tocOnly {
		return h.collect(nodes), nil
	}

	if sub != nil {
		nodes = ExtractMath(nodes, sub)
		math.Merge(sub)
	}

	return nodes, nil
}

// splice puts each drawing into target template of the where rules, in place of the rule's pattern. Without
// rules drawings are returned as they are.
func (c *Compiler) splice(drawings []Node, rules []Rule, scope Scope) []Node {
	if len(rules) == 0 {
		return drawings
	}

	var out []Node
	for _, d := range drawings {
		for _, rule := range rules {
			out = append(out, Rewrite(CloneAll(rule.Target), []Rule{{Pattern: rule.Pattern, Target: []Node{d}}})...)
		}
	}

	return c.resolver.Resolve(out, scope)
}

func extend(chain []string, path string) []string {
	out := make([]string, len(chain), len(chain)+1)
	copy(out, chain)

	return append(out, path)
}
