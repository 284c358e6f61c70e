package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lcb/internal/buildcfg"
	"lcb/internal/bundle"
	"lcb/internal/errors"
	"lcb/internal/logging"
	"lcb/internal/manifest"
)

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func quietLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{Level: logging.ErrorLevel, Output: &bytes.Buffer{}})
}

// setupProject creates the §8 end-to-end scenario: a has no requires,
// b requires a, c requires b.
func setupProject(t *testing.T) (string, *buildcfg.Config) {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "a.lua"), "local A = {}\nreturn A\n")
	writeFile(t, filepath.Join(root, "src", "b.lua"), "require(\"a\")\nlocal B = {}\nreturn B\n")
	writeFile(t, filepath.Join(root, "src", "c.lua"), "require(\"b\")\nlocal C = {}\nreturn C\n")

	cfg := &buildcfg.Config{
		SrcDir:        "src",
		DistDir:       "dist",
		Output:        "harness.lua",
		ModuleRoots:   []string{"src"},
		StripRequires: true,
	}
	return root, cfg
}

func TestPipelineEndToEnd(t *testing.T) {
	root, cfg := setupProject(t)
	logger := quietLogger()

	order, err := runPipeline(root, cfg, logger)
	if err != nil {
		t.Fatalf("runPipeline failed: %v", err)
	}

	wantOrder := []string{"src/a.lua", "src/b.lua", "src/c.lua"}
	if len(order) != 3 {
		t.Fatalf("order length = %d, want 3", len(order))
	}
	for i, want := range wantOrder {
		got := filepath.ToSlash(strings.TrimPrefix(order[i].Path, root+string(filepath.Separator)))
		if got != want {
			t.Errorf("order[%d] = %q, want %q", i, got, want)
		}
	}

	asm := bundle.NewAssembler(root, cfg, logger)
	text, err := asm.Assemble(order, manifest.Info{Name: "harness", Version: "1.0.0"})
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	if !strings.HasPrefix(text, "-- harness: 1.0.0 loading...\n") {
		t.Errorf("banner missing:\n%s", text)
	}
	for _, block := range wantOrder {
		if !strings.Contains(text, "-- ==== BEGIN: "+block+" ====\n") {
			t.Errorf("missing marker block for %s", block)
		}
	}
	aIdx := strings.Index(text, "BEGIN: src/a.lua")
	bIdx := strings.Index(text, "BEGIN: src/b.lua")
	cIdx := strings.Index(text, "BEGIN: src/c.lua")
	if !(aIdx < bIdx && bIdx < cIdx) {
		t.Errorf("blocks out of order: a=%d b=%d c=%d", aIdx, bIdx, cIdx)
	}
	if strings.Contains(text, "require(") {
		t.Errorf("stripped bundle must contain no requires:\n%s", text)
	}

	outputPath, err := asm.WriteArtifact(text)
	if err != nil {
		t.Fatalf("WriteArtifact failed: %v", err)
	}
	if outputPath != filepath.Join(root, "dist", "harness.lua") {
		t.Errorf("outputPath = %q", outputPath)
	}
}

func TestPipelineDeterminism(t *testing.T) {
	root, cfg := setupProject(t)
	logger := quietLogger()

	run := func() string {
		order, err := runPipeline(root, cfg, logger)
		if err != nil {
			t.Fatalf("runPipeline failed: %v", err)
		}
		asm := bundle.NewAssembler(root, cfg, logger)
		text, err := asm.Assemble(order, manifest.Info{Name: "harness"})
		if err != nil {
			t.Fatalf("Assemble failed: %v", err)
		}
		return text
	}

	first := run()
	second := run()
	if first != second {
		t.Error("two runs over identical inputs must produce byte-identical output")
	}
}

func TestPipelineNoSources(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "src"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	cfg := &buildcfg.Config{SrcDir: "src", DistDir: "dist", Output: "x.lua", ModuleRoots: []string{"src"}}

	_, err := runPipeline(root, cfg, quietLogger())
	if err == nil {
		t.Fatal("runPipeline should fail with no sources")
	}
	if errors.CodeOf(err) != errors.NoSourcesFound {
		t.Errorf("code = %v, want %v", errors.CodeOf(err), errors.NoSourcesFound)
	}
}

func TestPipelineHeaderExcluded(t *testing.T) {
	root, cfg := setupProject(t)
	writeFile(t, filepath.Join(root, "src", "_header.lua"), "HEADER = true\n")
	cfg.Prepend = []string{"src/_header.lua"}

	order, err := runPipeline(root, cfg, quietLogger())
	if err != nil {
		t.Fatalf("runPipeline failed: %v", err)
	}
	for _, node := range order {
		if strings.HasSuffix(node.Path, "_header.lua") {
			t.Error("the header file must not appear in the build order")
		}
	}
}

func TestFindHeaderFile(t *testing.T) {
	root, cfg := setupProject(t)

	if got := findHeaderFile(root, cfg); got != "" {
		t.Errorf("no prepend configured, got %q", got)
	}

	writeFile(t, filepath.Join(root, "src", "_header.lua"), "HEADER = true\n")
	cfg.Prepend = []string{"src/_header.lua"}
	want := filepath.Join(root, "src", "_header.lua")
	if got := findHeaderFile(root, cfg); got != want {
		t.Errorf("findHeaderFile = %q, want %q", got, want)
	}

	// src-dir relative entries resolve through the fallback
	cfg.Prepend = []string{"_header.lua"}
	if got := findHeaderFile(root, cfg); got != want {
		t.Errorf("findHeaderFile (fallback) = %q, want %q", got, want)
	}

	// non-header prepends are inlined but never designated as the header
	writeFile(t, filepath.Join(root, "src", "prelude.lua"), "P = 1\n")
	cfg.Prepend = []string{"src/prelude.lua"}
	if got := findHeaderFile(root, cfg); got != "" {
		t.Errorf("prelude should not be a header, got %q", got)
	}
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		code errors.ErrorCode
		want int
	}{
		{errors.ConfigMissing, 2},
		{errors.ConfigInvalid, 2},
		{errors.ManifestMissing, 2},
		{errors.NoSourcesFound, 1},
		{errors.WriteFailed, 1},
	}
	for _, tt := range tests {
		err := errors.NewBuildError(tt.code, "x", nil)
		if got := exitCodeFor(err); got != tt.want {
			t.Errorf("exitCodeFor(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
