package ss

// Registry holds command declarations grouped by identifier. It's built once and never changes afterwards, so
// it can be shared between concurrent compilations.
type Registry struct {
	decls map[string][]*Declaration
}

// NewRegistry builds registry, declarations without codegen overrides get the default element lowering
func NewRegistry(decls ...*Declaration) *Registry {
	r := &Registry{decls: map[string][]*Declaration{}}

	for _, d := range decls {
		if d.HTML == nil {
			d.HTML = HTMLFunc(Elementize)
		}

		if d.LaTeX == nil {
			d.LaTeX = LaTeXFunc(writeCommand)
		}

		if len(d.Arguments) == 0 {
			d.Arguments = []ArgumentInstance{{Shape: NoArguments}}
		}

		r.decls[d.Name] = append(r.decls[d.Name], d)
	}

	return r
}

// Lookup returns declarations of an identifier in registration order
func (r *Registry) Lookup(name string) []*Declaration {
	return r.decls[name]
}

// First returns the first declaration of an identifier
func (r *Registry) First(name string) *Declaration {
	if decls := r.decls[name]; len(decls) > 0 {
		return decls[0]
	}

	return nil
}
