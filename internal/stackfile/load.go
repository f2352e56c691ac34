// File: internal/stackfile/load.go
// Brief: YAML loading and filesystem discovery of stack files.

// Package stackfile is the file boundary in front of the engine: it loads
// raw stack documents from YAML and discovers stack.yaml files under a
// directory root. The engine itself never touches the filesystem.
package stackfile

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/example/appstack/internal/stack"
)

const (
	// APIVersion gates stack documents that declare one.
	APIVersion = "appstack.dev/v1"
	// Kind gates stack documents that declare one.
	Kind = "Stack"

	stackFileName = "stack.yaml"
)

// Load reads one YAML stack document and returns the raw stack value ready
// for stack.Normalize. apiVersion and kind are optional but must match when
// present; they are stripped from the returned value.
func Load(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	if v, ok := doc["apiVersion"].(string); ok && v != "" && v != APIVersion {
		return nil, fmt.Errorf("%s: apiVersion must be %s (got %q)", path, APIVersion, v)
	}
	if k, ok := doc["kind"].(string); ok && k != "" && k != Kind {
		return nil, fmt.Errorf("%s: kind must be %s (got %q)", path, Kind, k)
	}
	delete(doc, "apiVersion")
	delete(doc, "kind")
	return doc, nil
}

// Discover walks root and returns every stack.yaml path in sorted order, so
// multi-stack composition over a directory tree is deterministic.
func Discover(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	var paths []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			name := d.Name()
			if name == ".git" || name == "bin" || name == "dist" {
				return fs.SkipDir
			}
			return nil
		}
		if filepath.Base(path) == stackFileName {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no %s found under %s", stackFileName, absRoot)
	}
	sort.Strings(paths)
	return paths, nil
}

// Marshal renders a definition as a canonical YAML stack document. Map keys
// are emitted in yaml.v3's sorted order, so identical definitions marshal
// to identical bytes.
func Marshal(def *stack.Definition) ([]byte, error) {
	doc := map[string]any{
		"apiVersion": APIVersion,
		"kind":       Kind,
	}
	if def.Manifest != nil {
		doc["manifest"] = map[string]any(def.Manifest)
	}
	if def.I18n != nil {
		doc["i18n"] = map[string]any(def.I18n)
	}
	for _, name := range stack.CollectionNames {
		if !def.HasCollection(name) {
			continue
		}
		entities := def.Collections[name]
		items := make([]map[string]any, 0, len(entities))
		for _, e := range entities {
			items = append(items, map[string]any(e))
		}
		doc[name] = items
	}
	return yaml.Marshal(doc)
}
