package ss

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrIncludeCycle      = errors.New("file includes itself")
)

// IncludeError is returned when an included file can't be resolved
type IncludeError struct {
	Path string
	Err  error
}

func (e *IncludeError) Error() string {
	return fmt.Sprintf("unable to include %s: %v", e.Path, e.Err)
}

func (e *IncludeError) Unwrap() error {
	return e.Err
}

// DrawingDecoder deserializes drawing or composition file into drawings
type DrawingDecoder interface {
	Decode(name string, data []byte) ([]*Drawing, error)
}

type DrawingDecoderFunc func(name string, data []byte) ([]*Drawing, error)

func (f DrawingDecoderFunc) Decode(name string, data []byte) ([]*Drawing, error) {
	return f(name, data)
}

// SVG decodes a plain SVG file as one drawing, the same picture is used for both color schemes
var SVG = DrawingDecoderFunc(func(name string, data []byte) ([]*Drawing, error) {
	if !bytes.Contains(data, []byte("<svg")) {
		return nil, fmt.Errorf("%s is not an svg image", name)
	}

	return []*Drawing{{Name: name, Light: data, Dark: data}}, nil
})

// IncludeCache keeps resolved content of files for the duration of one compilation run. Each path is loaded at
// most once, concurrent requests for a path which is being loaded wait for the first one. Callers always get a
// copy, so cached trees are never shared.
type IncludeCache struct {
	group   singleflight.Group
	mu      sync.Mutex
	entries map[string][]Node
}

func NewIncludeCache() *IncludeCache {
	return &IncludeCache{entries: map[string][]Node{}}
}

// Load returns copy of cached nodes for a path, calling load if path is not cached yet. Errors are not cached.
func (c *IncludeCache) Load(path string, load func() ([]Node, error)) ([]Node, error) {
	if nodes, ok := c.get(path); ok {
		return CloneAll(nodes), nil
	}

	v, err, _ := c.group.Do(path, func() (any, error) {
		if nodes, ok := c.get(path); ok {
			return nodes, nil
		}

		nodes, err := load()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[path] = nodes
		c.mu.Unlock()

		return nodes, nil
	})

	if err != nil {
		return nil, err
	}

	return CloneAll(v.([]Node)), nil
}

// Cached checks if path is loaded
func (c *IncludeCache) Cached(path string) bool {
	_, ok := c.get(path)
	return ok
}

func (c *IncludeCache) get(path string) ([]Node, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	nodes, ok := c.entries[path]
	return nodes, ok
}
