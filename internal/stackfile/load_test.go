package stackfile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/appstack/internal/stack"
)

func writeFile(t *testing.T, path string, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_StripsAPIVersionAndKind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stack.yaml")
	writeFile(t, path, `
apiVersion: appstack.dev/v1
kind: Stack
objects:
  task:
    fields:
      title: text
`)
	raw, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := raw["apiVersion"]; ok {
		t.Fatalf("apiVersion should be stripped: %v", raw)
	}
	if _, ok := raw["objects"]; !ok {
		t.Fatalf("objects missing: %v", raw)
	}
}

func TestLoad_RejectsWrongKind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stack.yaml")
	writeFile(t, path, "kind: Release\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected kind error")
	}
}

func TestDiscover_SortedPaths(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "crm", "stack.yaml"), "objects: []\n")
	writeFile(t, filepath.Join(root, "billing", "stack.yaml"), "objects: []\n")
	writeFile(t, filepath.Join(root, "billing", "notes.yaml"), "ignored: true\n")

	paths, err := Discover(root)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("paths=%v", paths)
	}
	if !strings.Contains(paths[0], "billing") || !strings.Contains(paths[1], "crm") {
		t.Fatalf("paths not sorted: %v", paths)
	}
}

func TestDiscover_EmptyRootFails(t *testing.T) {
	if _, err := Discover(t.TempDir()); err == nil {
		t.Fatalf("expected no-stacks error")
	}
}

func TestMarshal_CanonicalAndDeterministic(t *testing.T) {
	def := stack.NewDefinition()
	def.Manifest = stack.Entity{"name": "crm", "version": "1.0.0"}
	def.Collections["objects"] = []stack.Entity{{"name": "task", "fields": map[string]any{"title": "text"}}}

	first, err := Marshal(def)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := Marshal(def)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("marshal not deterministic:\n%s\n%s", first, second)
	}
	for _, want := range []string{"apiVersion: appstack.dev/v1", "kind: Stack", "name: task"} {
		if !strings.Contains(string(first), want) {
			t.Fatalf("missing %q in:\n%s", want, first)
		}
	}
}

func TestLoadRoundTrip(t *testing.T) {
	def := stack.NewDefinition()
	def.Collections["objects"] = []stack.Entity{{"name": "task"}}
	raw, err := Marshal(def)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "stack.yaml")
	writeFile(t, path, string(raw))

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	back, err := stack.Normalize(doc)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if back.Collections["objects"][0].Name() != "task" {
		t.Fatalf("round trip lost data: %v", back)
	}
}
