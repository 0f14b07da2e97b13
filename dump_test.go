package ss_test

import (
	"strings"
	"testing"

	"github.com/eolymp/go-ss"
	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestDump(t *testing.T) {
	got := ss.Dump(resolve("\\link[href=u]{x} \\foo"))

	want := []any{
		map[string]any{
			"cmd":   "\\link",
			"attrs": []string{"href=u"},
			"args":  []any{map[string]any{"bracket": "{}", "children": []any{map[string]any{"text": "x"}}}},
		},
		map[string]any{"text": " "},
		map[string]any{"ident": "\\foo"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Dump does not match (-want +got):\n%s", diff)
	}
}

func TestDumpYAML(t *testing.T) {
	var b strings.Builder
	if err := ss.DumpYAML(&b, ss.ParseString("a}")); err != nil {
		t.Fatal(err)
	}

	var got []map[string]string
	if err := yaml.Unmarshal([]byte(b.String()), &got); err != nil {
		t.Fatalf("Dump is not valid YAML: %v\n%s", err, b.String())
	}

	want := []map[string]string{{"text": "a"}, {"invalid": "}"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("YAML does not match (-want +got):\n%s", diff)
	}
}
