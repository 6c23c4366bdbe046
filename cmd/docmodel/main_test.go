package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

const testRules = `
fields:
  - path: name
    type: string
    range: [1, 5]
  - path: tags
    presence: should
    max: 2
`

func TestRun_Validate(t *testing.T) {
	dir := t.TempDir()
	rules := writeFile(t, dir, "rules.yaml", testRules)
	good := writeFile(t, dir, "good.json", `{"name":"box","tags":["a"]}`)
	bad := writeFile(t, dir, "bad.yaml", "name: toolong\ntags: [a, b, c]\n")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"validate", "-rules", rules, good}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit = %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "good.json: ok") {
		t.Fatalf("stdout: %s", stdout.String())
	}

	stdout.Reset()
	if code := run([]string{"validate", "-rules", rules, bad}, &stdout, &stderr); code != 1 {
		t.Fatalf("exit = %d, want 1", code)
	}
	out := stdout.String()
	for _, want := range []string{
		"bad.yaml: name: Field 'name' violated 'Range' constraint rule.",
		"bad.yaml: tags: Field 'tags' violated 'Max' constraint rule.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRun_JSONSchema(t *testing.T) {
	rules := writeFile(t, t.TempDir(), "rules.yaml", testRules)
	var stdout, stderr bytes.Buffer
	if code := run([]string{"jsonschema", "-rules", rules}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit = %d, stderr: %s", code, stderr.String())
	}
	for _, want := range []string{`"required": [`, `"maxLength": 5`, `"maxItems": 2`} {
		if !strings.Contains(stdout.String(), want) {
			t.Fatalf("missing %s in:\n%s", want, stdout.String())
		}
	}
}

func TestRun_Convert(t *testing.T) {
	in := writeFile(t, t.TempDir(), "doc.yaml", "b: 1\na:\n  - x\n")
	var stdout, stderr bytes.Buffer
	if code := run([]string{"convert", "-to", "json", in}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit = %d, stderr: %s", code, stderr.String())
	}
	if got := stdout.String(); got != "{\"b\":1,\"a\":[\"x\"]}\n" {
		t.Fatalf("got %q", got)
	}
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	for _, args := range [][]string{nil, {"nope"}, {"validate"}, {"convert", "-to", "xml", "a.json"}} {
		if code := run(args, &stdout, &stderr); code != 2 {
			t.Fatalf("run(%v) = %d, want 2", args, code)
		}
	}
}
