package ss_test

import (
	"testing"

	"github.com/eolymp/go-ss"
	"github.com/google/go-cmp/cmp"
)

func TestAnchor(t *testing.T) {
	tt := []struct {
		name   string
		input  []string
		output []string
	}{
		{name: "unique", input: []string{"Intro", "Intro", "Intro"}, output: []string{"Intro", "Intro1", "Intro2"}},
		{name: "whitespace", input: []string{"Hello  World", " Hello World "}, output: []string{"Hello-World", "Hello-World1"}},
		{name: "empty", input: []string{"", " "}, output: []string{"section", "section1"}},
		{name: "percent encoded", input: []string{"a%20b"}, output: []string{"a-b"}},
		{name: "unicode", input: []string{"é"}, output: []string{"%C3%A9"}},
		{name: "unsafe characters", input: []string{"a/b?c"}, output: []string{"a%2Fb%3Fc"}},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			toc := ss.NewTocPage(nil)

			var got []string
			for _, text := range tc.input {
				got = append(got, toc.Anchor(text))
			}

			if diff := cmp.Diff(tc.output, got); diff != "" {
				t.Errorf("Anchors do not match (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPageURL(t *testing.T) {
	tt := []struct {
		input  string
		output string
	}{
		{input: "doc.ss", output: "/doc.html"},
		{input: "docs/intro.ss", output: "/docs/intro.html"},
		{input: "./docs/../intro.ss", output: "/intro.html"},
		{input: "/abs/page.ss", output: "/abs/page.html"},
	}

	for _, tc := range tt {
		t.Run(tc.input, func(t *testing.T) {
			if got := ss.PageURL(tc.input); got != tc.output {
				t.Errorf("URL does not match: want %q, got %q", tc.output, got)
			}
		})
	}
}
