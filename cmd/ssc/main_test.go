package main

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const manifest = `
[project]
name = "notes"
source = "/p/src"
output = "/p/dist"
workers = 1

[html]
layout = "/p/layout.html"
`

// useMemFs replaces the file system of the commands with an in-memory project
func useMemFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	mem := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(mem, name, []byte(content), 0o644))
	}

	prev := fsys
	fsys = mem
	t.Cleanup(func() { fsys = prev })

	return mem
}

func TestBuildCommand(t *testing.T) {
	mem := useMemFs(t, map[string]string{
		"/p/ss.toml":      manifest,
		"/p/layout.html":  "{{body}}",
		"/p/src/a.ss":     "\\b{x}",
		"/p/src/dir/b.ss": "\\i{y}",
	})

	rootCmd.SetArgs([]string{"--config", "/p/ss.toml", "build"})
	require.NoError(t, rootCmd.Execute())

	a, err := afero.ReadFile(mem, "/p/dist/a.html")
	require.NoError(t, err)
	assert.Equal(t, "<b>x</b>", string(a))

	b, err := afero.ReadFile(mem, "/p/dist/dir/b.html")
	require.NoError(t, err)
	assert.Equal(t, "<i>y</i>", string(b))
}

func TestDumpCommand(t *testing.T) {
	useMemFs(t, map[string]string{
		"/p/ss.toml":     manifest,
		"/p/layout.html": "{{body}}",
		"/p/src/a.ss":    "\\b{x}",
	})

	var out strings.Builder
	rootCmd.SetOut(&out)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		raw = false
	})

	rootCmd.SetArgs([]string{"--config", "/p/ss.toml", "dump", "--raw", "/p/src/a.ss"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "x")
}
