package openscad

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveDependencies(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.scad"), "use <lib/shapes.scad>\n// include <ignored.scad>\ninclude <./common.scad>\ncube(10);\n")
	writeFile(t, filepath.Join(dir, "lib", "shapes.scad"), "include <../common.scad>\nmodule s() {}\n")
	writeFile(t, filepath.Join(dir, "common.scad"), "use <main.scad>\n")

	deps, err := NewRenderer(dir).ResolveDependencies("main.scad")
	if err != nil {
		t.Fatalf("ResolveDependencies failed: %v", err)
	}

	want := []string{
		filepath.Join(dir, "main.scad"),
		filepath.Join(dir, "lib", "shapes.scad"),
		filepath.Join(dir, "common.scad"),
	}
	if len(deps) != len(want) {
		t.Fatalf("ResolveDependencies failed: expected %v, got %v", want, deps)
	}
	for i := range want {
		if deps[i] != want[i] {
			t.Errorf("dependency %d failed: expected %s, got %s", i, want[i], deps[i])
		}
	}
}

func TestResolveDependenciesMissingFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.scad"), "use <./nowhere.scad>\n")

	if _, err := NewRenderer(dir).ResolveDependencies("main.scad"); err == nil {
		t.Error("expected an error for a missing dependency")
	}
}

func TestRenderCube(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir)
	if !r.Available() {
		t.Skip("openscad not installed")
	}
	writeFile(t, filepath.Join(dir, "cube.scad"), "cube([10, 20, 30]);\n")

	m, err := r.Render(context.Background(), "cube.scad")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if m.Name != "cube" || m.FaceCount() == 0 {
		t.Errorf("Render failed: got name %q with %d faces", m.Name, m.FaceCount())
	}
}
