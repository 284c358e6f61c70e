package buildcfg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lcb/internal/errors"
)

func writeBuildrc(t *testing.T, dir string, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", ConfigFileName, err)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeBuildrc(t, dir, `{
  "src_dir": "src",
  "dist_dir": "dist",
  "output": "dist/harness.lua",
  "prepend": ["src/_header.lua"],
  "module_roots": ["src"],
  "strip_requires": true,
  "exclude_globs": ["**/_*.lua"]
}`)

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.SrcDir != "src" {
		t.Errorf("SrcDir = %q, want src", cfg.SrcDir)
	}
	if cfg.Output != "dist/harness.lua" {
		t.Errorf("Output = %q", cfg.Output)
	}
	if len(cfg.ModuleRoots) != 1 || cfg.ModuleRoots[0] != "src" {
		t.Errorf("ModuleRoots = %v", cfg.ModuleRoots)
	}
	if !cfg.StripRequires {
		t.Error("StripRequires should be true")
	}
	if len(cfg.Prepend) != 1 || cfg.Prepend[0] != "src/_header.lua" {
		t.Errorf("Prepend = %v", cfg.Prepend)
	}
	if len(cfg.ExcludeGlobs) != 1 {
		t.Errorf("ExcludeGlobs = %v", cfg.ExcludeGlobs)
	}
	if cfg.VersionGlobal != "HARNESS_VERSION" {
		t.Errorf("VersionGlobal = %q, want the default when unset", cfg.VersionGlobal)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(dir)
	if err == nil {
		t.Fatal("LoadConfig should fail when .buildrc is absent")
	}
	if errors.CodeOf(err) != errors.ConfigMissing {
		t.Errorf("code = %v, want %v", errors.CodeOf(err), errors.ConfigMissing)
	}
}

func TestLoadConfigMissingRequiredKeys(t *testing.T) {
	dir := t.TempDir()
	writeBuildrc(t, dir, `{"src_dir": "src", "strip_requires": true}`)

	_, err := LoadConfig(dir)
	if err == nil {
		t.Fatal("LoadConfig should fail when required keys are absent")
	}
	if errors.CodeOf(err) != errors.ConfigInvalid {
		t.Errorf("code = %v, want %v", errors.CodeOf(err), errors.ConfigInvalid)
	}
	for _, key := range []string{"dist_dir", "output", "module_roots"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error should name missing key %q, got: %v", key, err)
		}
	}
	if strings.Contains(err.Error(), "src_dir") {
		t.Errorf("error should not name present key src_dir, got: %v", err)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	writeBuildrc(t, dir, `{not json`)

	_, err := LoadConfig(dir)
	if err == nil {
		t.Fatal("LoadConfig should fail on malformed JSON")
	}
	if errors.CodeOf(err) != errors.ConfigInvalid {
		t.Errorf("code = %v, want %v", errors.CodeOf(err), errors.ConfigInvalid)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig()
	if err := cfg.Save(dir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig after Save failed: %v", err)
	}
	if loaded.SrcDir != cfg.SrcDir || loaded.Output != cfg.Output {
		t.Errorf("round trip mismatch: %+v vs %+v", loaded, cfg)
	}
	if loaded.VersionGlobal != "HARNESS_VERSION" {
		t.Errorf("VersionGlobal = %q", loaded.VersionGlobal)
	}
}

func TestOutputPath(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "proj")

	tests := []struct {
		name   string
		output string
		want   string
	}{
		{"bare filename goes to dist", "harness.lua", filepath.Join(root, "dist", "harness.lua")},
		{"path stays project-relative", "dist/harness.lua", filepath.Join(root, "dist", "harness.lua")},
		{"nested path", "out/release/h.lua", filepath.Join(root, "out", "release", "h.lua")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{DistDir: "dist", Output: tt.output}
			if got := cfg.OutputPath(root); got != tt.want {
				t.Errorf("OutputPath = %q, want %q", got, tt.want)
			}
		})
	}
}
