package resolver

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte("return {}\n"), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "core", "vec.lua"))

	r := NewResolver(root, []string{"src"})

	tests := []struct {
		name       string
		identifier string
		want       string
	}{
		{"dot separated", "core.vec", filepath.Join(root, "src", "core", "vec.lua")},
		{"slash separated", "core/vec", filepath.Join(root, "src", "core", "vec.lua")},
		{"unresolved", "third_party.json", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Resolve(tt.identifier); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.identifier, got, tt.want)
			}
		})
	}
}

func TestResolvePrecedence(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "r1", "util.lua"))
	writeFile(t, filepath.Join(root, "r2", "util.lua"))

	r := NewResolver(root, []string{"r1", "r2"})

	got := r.Resolve("util")
	want := filepath.Join(root, "r1", "util.lua")
	if got != want {
		t.Errorf("Resolve = %q, want first-root match %q", got, want)
	}

	// Reversed root order flips the winner
	r = NewResolver(root, []string{"r2", "r1"})
	got = r.Resolve("util")
	want = filepath.Join(root, "r2", "util.lua")
	if got != want {
		t.Errorf("Resolve = %q, want %q", got, want)
	}
}

func TestResolveDirectoryIsNotAModule(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "src", "core.lua"), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}

	r := NewResolver(root, []string{"src"})
	if got := r.Resolve("core"); got != "" {
		t.Errorf("a directory should not resolve, got %q", got)
	}
}
