package runtimeops

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSpec reports a structurally unusable specification. A run must not
// start when Validate returns it.
var ErrInvalidSpec = errors.New("invalid specification")

// Load reads a runtime-operations document from a YAML or JSON file.
func Load(path string) (Ops, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Ops{}, fmt.Errorf("runtimeops: reading %s: %w", path, err)
	}
	ops, err := Parse(data)
	if err != nil {
		return Ops{}, fmt.Errorf("runtimeops: %s: %w", path, err)
	}
	return ops, nil
}

// Parse decodes a runtime-operations document. JSON input is accepted as a
// subset of YAML.
func Parse(data []byte) (Ops, error) {
	var ops Ops
	if err := yaml.Unmarshal(data, &ops); err != nil {
		return Ops{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return ops, nil
}

// Validate checks that the world is present and has positive dimensions.
func Validate(ops Ops) error {
	w := ops.World
	if w == nil {
		return fmt.Errorf("runtimeops: world missing: %w", ErrInvalidSpec)
	}
	if w.TileSize <= 0 || w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("runtimeops: world %dx%d t=%d: dimensions must be positive: %w",
			w.Width, w.Height, w.TileSize, ErrInvalidSpec)
	}
	return nil
}
