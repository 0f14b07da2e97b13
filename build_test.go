package ss_test

import (
	"errors"
	"testing"

	"github.com/eolymp/go-ss"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	mem := afero.NewMemMapFs()
	for name, content := range map[string]string{
		"/src/a.ss":     "\\h1{A}",
		"/src/b.ss":     "\\include[src=missing.ss]",
		"/src/dir/c.ss": "\\p{C \\{x}}",
		"/src/notes.md": "# not a source",
	} {
		require.NoError(t, afero.WriteFile(mem, name, []byte(content), 0o644))
	}

	c := ss.NewCompiler(afero.NewBasePathFs(mem, "/src"))

	results, err := c.Build(ss.BuildOptions{
		Output:  afero.NewBasePathFs(mem, "/out"),
		Workers: 2,
	})

	require.Error(t, err)

	var ie *ss.IncludeError
	assert.True(t, errors.As(err, &ie))

	require.Len(t, results, 3)
	assert.Equal(t, "a.ss", results[0].Source)
	assert.Equal(t, "a.html", results[0].Output)
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.Equal(t, "dir/c.html", results[2].Output)
	assert.NoError(t, results[2].Err)

	a, err := afero.ReadFile(mem, "/out/a.html")
	require.NoError(t, err)
	assert.Contains(t, string(a), `<h1 id="A"><a href="/a.html#A">A</a></h1>`)

	cp, err := afero.ReadFile(mem, "/out/dir/c.html")
	require.NoError(t, err)
	assert.Contains(t, string(cp), "katex.render(\"x\"")

	exists, err := afero.Exists(mem, "/out/b.html")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRenderPage(t *testing.T) {
	c := ss.NewCompiler(afero.NewMemMapFs())

	doc, err := c.CompileString("doc.ss", "\\h1{Hi}")
	require.NoError(t, err)

	page, err := c.RenderPage(doc, ss.Layout{
		Template: "{{title}}|{{toc}}|{{body}}|{{head}}|{{math}}",
		Styles:   []string{"/s.css"},
	})
	require.NoError(t, err)

	want := `Hi|` +
		`<ul class="toc"><li class="toc-local" data-level="1"><a href="/doc.html#Hi">Hi</a></li></ul>|` +
		`<h1 id="Hi"><a href="/doc.html#Hi">Hi</a></h1>|` +
		`<link rel="stylesheet" href="/s.css"/>` + "\n|"

	assert.Equal(t, want, page)
}

func TestRenderPageDefaultTemplate(t *testing.T) {
	c := ss.NewCompiler(afero.NewMemMapFs())

	doc, err := c.CompileString("notes/day.ss", "no <headings> \\{x}")
	require.NoError(t, err)

	page, err := c.RenderPage(doc, ss.Layout{Scripts: []string{"/katex.js"}})
	require.NoError(t, err)

	assert.Contains(t, page, "<title>day</title>")
	assert.Contains(t, page, `<script src="/katex.js"></script>`)
	assert.Contains(t, page, "no &lt;headings&gt;")
	assert.Contains(t, page, "katex.render(\"x\", document.getElementById(\""+doc.Math.Entries[0].ID+"\"), {throwOnError: true});")
}

func TestSources(t *testing.T) {
	fs := project(t, map[string]string{
		"b.ss":       "",
		"a/x.SS":     "",
		"a/y.ss":     "",
		"readme.txt": "",
	})

	sources, err := ss.NewCompiler(fs).Sources()
	require.NoError(t, err)

	assert.Equal(t, []string{"a/x.SS", "a/y.ss", "b.ss"}, sources)
}
