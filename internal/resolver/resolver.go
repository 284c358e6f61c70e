// Package resolver maps logical module identifiers to source file paths.
package resolver

import (
	"os"
	"path/filepath"
	"strings"

	"lcb/internal/discovery"
)

// Resolver resolves module identifiers against an ordered list of module
// roots. Resolution is root-order-sensitive: when the same module exists
// under two roots, the first configured root wins.
type Resolver struct {
	projectRoot string
	moduleRoots []string
}

// NewResolver creates a resolver for the given project root and module roots
// (each relative to the project root, tried in order).
func NewResolver(projectRoot string, moduleRoots []string) *Resolver {
	return &Resolver{
		projectRoot: projectRoot,
		moduleRoots: moduleRoots,
	}
}

// Resolve maps an identifier like "core.vec" or "core/vec" to the first
// existing file <root>/core/vec.lua. An identifier matching no root returns
// the empty string: the reference is external and not an error.
func (r *Resolver) Resolve(identifier string) string {
	rel := identifierToRelPath(identifier)

	for _, root := range r.moduleRoots {
		candidate := filepath.Join(r.projectRoot, filepath.FromSlash(root), rel)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// identifierToRelPath turns "foo.bar" or "foo/bar" into "foo/bar.lua"
// in OS path form.
func identifierToRelPath(identifier string) string {
	rel := strings.ReplaceAll(identifier, ".", "/")
	return filepath.FromSlash(rel + discovery.SourceExt)
}
