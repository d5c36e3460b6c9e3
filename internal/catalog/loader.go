package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// LoadFromPath reads a catalog document (YAML or JSON).
// Format is detected by extension (.yaml/.yml → YAML, .json → JSON) or by content.
func LoadFromPath(p string) (*Document, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	doc, err := Load(data, filepath.Ext(p))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	doc.Source = p
	return doc, nil
}

// Load parses a catalog document from bytes and checks it against the
// schema. ext is the file extension used as a format hint; empty detects
// from content.
func Load(data []byte, ext string) (*Document, error) {
	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}
	if ext == "" {
		ext = ".yaml"
		if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
			ext = ".json"
		}
	}

	var raw any
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse catalog json: %w", err)
		}
	case ".yaml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse catalog yaml: %w", err)
		}
		// Re-encode so the schema sees the same value types as for JSON input.
		js, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("parse catalog yaml: %w", err)
		}
		data, raw = js, nil
		if err := json.Unmarshal(js, &raw); err != nil {
			return nil, fmt.Errorf("parse catalog yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", ext)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	if err := validate(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return &doc, nil
}

// LoadDir reads every .yaml, .yml and .json file in dir, in name order.
func LoadDir(dir string) ([]*Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read catalog dir: %w", err)
	}
	var docs []*Document
	for _, e := range entries {
		if e.IsDir() || !isCatalogFile(e.Name()) {
			continue
		}
		doc, err := LoadFromPath(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// BuiltinDocuments returns the catalog documents compiled into the binary.
func BuiltinDocuments() ([]*Document, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("read builtin catalog: %w", err)
	}
	docs := make([]*Document, 0, len(entries))
	for _, e := range entries {
		name := path.Join("builtin", e.Name())
		data, err := builtinFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read builtin catalog: %w", err)
		}
		doc, err := Load(data, path.Ext(name))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		doc.Source = name
		docs = append(docs, doc)
	}
	return docs, nil
}

// Builtin returns the catalog of historical machines: Enigma I, M3 and M4.
func Builtin() (*Catalog, error) {
	docs, err := BuiltinDocuments()
	if err != nil {
		return nil, err
	}
	return Merge(docs...)
}

// Open merges the built-in catalog with extra documents. Each path may be a
// file or a directory of catalog files.
func Open(paths ...string) (*Catalog, error) {
	docs, err := BuiltinDocuments()
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		if p == "" {
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("open catalog: %w", err)
		}
		if info.IsDir() {
			more, err := LoadDir(p)
			if err != nil {
				return nil, err
			}
			docs = append(docs, more...)
			continue
		}
		doc, err := LoadFromPath(p)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return Merge(docs...)
}

func isCatalogFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
