package ss

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// PageResult is an outcome of building one page
type PageResult struct {
	Source string
	Output string
	Err    error
}

// BuildOptions configure a multi-page build
type BuildOptions struct {
	Output  afero.Fs
	Layout  Layout
	Workers int
}

// Sources lists all source files under the compiler's file system root
func (c *Compiler) Sources() ([]string, error) {
	var sources []string

	err := afero.Walk(c.fs, ".", func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && strings.EqualFold(filepath.Ext(path), SourceExt) {
			sources = append(sources, path)
		}

		return nil
	})

	return sources, err
}

// Build compiles every source file into a page. Files are compiled concurrently, a file which fails doesn't
// stop others: its error is reported in its result and in the joined error.
func (c *Compiler) Build(opts BuildOptions) ([]PageResult, error) {
	sources, err := c.Sources()
	if err != nil {
		return nil, err
	}

	results := make([]PageResult, len(sources))

	var g errgroup.Group
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}

	for i, source := range sources {
		g.Go(func() error {
			results[i] = c.BuildPage(source, opts)
			return nil
		})
	}

	// errgroup only bounds concurrency here, failures are kept in results so siblings are never cancelled
	_ = g.Wait()

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			c.log.Error().Err(r.Err).Str("path", r.Source).Msg("page is not built")
			errs = append(errs, r.Err)
			continue
		}

		c.log.Info().Str("path", r.Source).Str("output", r.Output).Msg("page is built")
	}

	return results, errors.Join(errs...)
}

// BuildPage compiles one source file and writes the page to the output file system
func (c *Compiler) BuildPage(source string, opts BuildOptions) PageResult {
	result := PageResult{Source: source, Output: strings.TrimSuffix(source, filepath.Ext(source)) + ".html"}

	doc, err := c.Compile(source)
	if err != nil {
		result.Err = err
		return result
	}

	page, err := c.RenderPage(doc, opts.Layout)
	if err != nil {
		result.Err = err
		return result
	}

	if err := opts.Output.MkdirAll(filepath.Dir(result.Output), os.ModePerm); err != nil {
		result.Err = err
		return result
	}

	result.Err = afero.WriteFile(opts.Output, result.Output, []byte(page), 0o644)
	return result
}
