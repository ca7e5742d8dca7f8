package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSpec(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spec.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write spec: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestClassifyPursuit(t *testing.T) {
	path := writeSpec(t, `
world: {tileSize: 16, width: 20, height: 10}
systems:
  - type: snakeMovement
  - type: tick
entities:
  - id: snake
    components:
      - {type: GridPosition, x: 4, y: 5}
      - {type: Renderable, color: "nope"}
`)

	out, err := execute(t, "classify", path)
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	for _, want := range []string{
		"Genre: pursuit",
		"World 20x10 t=16",
		"Pursuer: start (4,5) length 4",
		"Notes:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestClassifyInvalidWorld(t *testing.T) {
	path := writeSpec(t, `
world: {tileSize: 16, width: 0, height: 10}
systems: [{type: tetrominoes}]
`)

	if _, err := execute(t, "classify", path); err == nil {
		t.Error("expected an error for a zero-width world")
	}
}

func TestLoadConfigRejectsUnknownSpeed(t *testing.T) {
	flagSpeed = "warp"
	defer func() { flagSpeed = "" }()

	if _, err := loadConfig(); err == nil {
		t.Error("expected unknown preset error")
	}
}
