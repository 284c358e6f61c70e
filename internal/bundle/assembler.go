// Package bundle assembles the ordered source files into the single
// distributable artifact.
package bundle

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"lcb/internal/buildcfg"
	"lcb/internal/errors"
	"lcb/internal/graph"
	"lcb/internal/logging"
	"lcb/internal/manifest"
	"lcb/internal/paths"
	"lcb/internal/require"
)

// Assembler concatenates files in build order into the bundle text
type Assembler struct {
	projectRoot string
	cfg         *buildcfg.Config
	logger      *logging.Logger
}

// NewAssembler creates an assembler rooted at the given project root
func NewAssembler(projectRoot string, cfg *buildcfg.Config, logger *logging.Logger) *Assembler {
	return &Assembler{
		projectRoot: projectRoot,
		cfg:         cfg,
		logger:      logger,
	}
}

// Banner renders the one-line bundle banner from the optional project
// metadata. Either field may be absent; with neither present there is
// no banner line at all.
func Banner(meta manifest.Info) string {
	switch {
	case meta.Name != "" && meta.Version != "":
		return "-- " + meta.Name + ": " + meta.Version + " loading...\n"
	case meta.Name != "":
		return "-- " + meta.Name + " loading...\n"
	case meta.Version != "":
		return "-- version: " + meta.Version + " loading...\n"
	}
	return ""
}

// ResolvePrepend locates a configured prepend entry: relative to the project
// root first, falling back to the source directory. Missing entries resolve
// to the empty string and are skipped by Assemble.
func (a *Assembler) ResolvePrepend(entry string) string {
	candidate := paths.JoinProjectPath(a.projectRoot, entry)
	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		return candidate
	}
	candidate = filepath.Join(paths.JoinProjectPath(a.projectRoot, a.cfg.SrcDir), filepath.FromSlash(entry))
	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		return candidate
	}
	return ""
}

// Assemble produces the full bundle text: banner, prepend files, then the
// marker-wrapped ordered sources. When strip_requires is enabled each
// source's leading require block is removed and a final sweep deletes any
// bare require line the targeted strip missed.
func (a *Assembler) Assemble(order []graph.OrderedNode, meta manifest.Info) (string, error) {
	var parts []string

	if banner := Banner(meta); banner != "" {
		parts = append(parts, banner)
	}

	for _, entry := range a.cfg.Prepend {
		path := a.ResolvePrepend(entry)
		if path == "" {
			a.logger.Warn("Prepend file not found, skipping", map[string]interface{}{
				"entry": entry,
			})
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return "", errors.NewBuildError(errors.UnreadableFile,
				"failed to read prepend file "+entry, err)
		}
		rel := paths.RelToProject(a.projectRoot, path)
		// Prepend files are inlined verbatim, never stripped
		parts = append(parts,
			"-- ==== BEGIN: "+rel+" ====\n",
			string(data),
			"\n-- ==== END: "+rel+" ====\n\n")
	}

	for _, node := range order {
		data, err := os.ReadFile(node.Path)
		if err != nil {
			return "", errors.NewBuildError(errors.UnreadableFile,
				"failed to read source file during assembly", err)
		}
		content := string(data)
		if a.cfg.StripRequires {
			content = require.StripLeading(content)
		}
		rel := paths.RelToProject(a.projectRoot, node.Path)
		parts = append(parts,
			"-- ==== BEGIN: "+rel+" ====\n",
			strings.TrimRight(content, " \t\r\n")+"\n",
			"-- ==== END: "+rel+" ====\n\n")
	}

	text := strings.Join(parts, "")
	if a.cfg.StripRequires {
		text = sweepBareRequires(text)
	}
	return text, nil
}

// sweepBareRequires deletes every line that is solely a require statement
// (optionally with a trailing comment) from the assembled text. This is the
// safety net behind the targeted header strip: it also catches requires
// that sat outside a recognized header block. It can remove look-alike
// lines the author meant to keep; that risk is accepted and documented.
func sweepBareRequires(text string) string {
	lines := strings.SplitAfter(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasSuffix(line, "\n") && require.IsBareRequire(strings.TrimSuffix(line, "\n")) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "")
}

// WriteArtifact writes the bundle to the configured output path, creating
// parent directories as needed. With the compress option enabled a gzipped
// sibling artifact is written next to the plain one. Returns the resolved
// output path.
func (a *Assembler) WriteArtifact(text string) (string, error) {
	outputPath := a.cfg.OutputPath(a.projectRoot)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return "", errors.NewBuildError(errors.WriteFailed,
			"failed to create output directory", err)
	}
	if err := os.WriteFile(outputPath, []byte(text), 0644); err != nil {
		return "", errors.NewBuildError(errors.WriteFailed,
			"failed to write bundle", err)
	}

	if a.cfg.Compress {
		if err := writeGzip(outputPath+".gz", text); err != nil {
			return "", errors.NewBuildError(errors.WriteFailed,
				"failed to write compressed bundle", err)
		}
	}

	return outputPath, nil
}

func writeGzip(path string, text string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := gzip.NewWriter(f)
	if _, err := w.Write([]byte(text)); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return f.Close()
}
