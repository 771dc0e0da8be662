// This package handles reusable label definitions: TOML documents
// listing render operations, loaded from files or from the sqlite
// template store.
package template

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"tapewriter/render"
)

// opSpec is one [[op]] table in a template document.
type opSpec struct {
	Kind    string  `toml:"kind"`
	Value   string  `toml:"value"`
	Font    string  `toml:"font"`
	File    string  `toml:"file"`
	Size    float64 `toml:"size"`
	Columns int     `toml:"columns"`
	Path    string  `toml:"path"`
}

type document struct {
	Op []opSpec `toml:"op"`
}

// Parse decodes TOML template source into render ops.
func Parse(source string) ([]render.Op, error) {
	var doc document
	if _, err := toml.Decode(source, &doc); err != nil {
		return nil, fmt.Errorf("decoding template: %w", err)
	}
	if len(doc.Op) == 0 {
		return nil, fmt.Errorf("template defines no ops")
	}

	ops := make([]render.Op, 0, len(doc.Op))
	for i, spec := range doc.Op {
		op, err := spec.op()
		if err != nil {
			return nil, fmt.Errorf("op %d: %w", i, err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// LoadFile reads and parses a template file from disk.
func LoadFile(path string) ([]render.Op, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}
	return Parse(string(data))
}

func (s *opSpec) op() (render.Op, error) {
	switch s.Kind {
	case "text":
		if s.Value == "" {
			return nil, fmt.Errorf("text op needs a value")
		}
		return &render.Text{Value: s.Value, Font: s.Font, File: s.File, Size: s.Size}, nil
	case "qr":
		if s.Value == "" {
			return nil, fmt.Errorf("qr op needs a value")
		}
		return &render.QR{Value: s.Value}, nil
	case "barcode":
		if s.Value == "" {
			return nil, fmt.Errorf("barcode op needs a value")
		}
		return &render.Barcode{Value: s.Value}, nil
	case "image":
		if s.Path == "" {
			return nil, fmt.Errorf("image op needs a path")
		}
		return &render.Image{Path: s.Path}, nil
	case "pad":
		return &render.Pad{Columns: s.Columns}, nil
	}
	return nil, fmt.Errorf(`unrecognised op kind "%s"`, s.Kind)
}
