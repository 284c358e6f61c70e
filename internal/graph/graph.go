// Package graph builds the dependency graph between discovered source files
// and computes the deterministic build order the bundle is assembled in.
package graph

import (
	"path/filepath"

	"lcb/internal/logging"
	"lcb/internal/require"
	"lcb/internal/resolver"
)

// Node is one source file in the dependency graph
type Node struct {
	// Path is the absolute file path (node identity)
	Path string

	// Dir is the containing directory, the primary scheduling sort key
	Dir string

	// Requires holds the module identifiers extracted from the file's
	// leading require block, in order
	Requires []string
}

// Graph holds the discovered files (minus the header file) in discovery
// order, with edges stored dependency→dependents and an indegree counter
// per node. Nodes live in a stable-indexed arena; edges are index pairs.
type Graph struct {
	Nodes []*Node

	dependents [][]int
	indegree   []int
	edgeSeen   map[[2]int]bool
	byPath     map[string]int
}

// Builder constructs dependency graphs from discovered files
type Builder struct {
	resolver *resolver.Resolver
	logger   *logging.Logger
}

// NewBuilder creates a graph builder using the given module resolver
func NewBuilder(res *resolver.Resolver, logger *logging.Logger) *Builder {
	return &Builder{
		resolver: res,
		logger:   logger,
	}
}

// Build constructs the dependency graph for the discovered files.
// headerPath, when non-empty, names the designated header file: it is never
// a node, and references resolving to it are dropped. References resolving
// outside the discovered set are external and ignored. Duplicate requires
// of the same dependency from one file produce a single edge. A file that
// cannot be read contributes no edges and does not abort the build.
func (b *Builder) Build(files []string, headerPath string) *Graph {
	g := &Graph{
		edgeSeen: make(map[[2]int]bool),
		byPath:   make(map[string]int),
	}

	for _, file := range files {
		if headerPath != "" && file == headerPath {
			continue
		}
		g.byPath[file] = len(g.Nodes)
		g.Nodes = append(g.Nodes, &Node{
			Path: file,
			Dir:  filepath.Dir(file),
		})
	}

	g.dependents = make([][]int, len(g.Nodes))
	g.indegree = make([]int, len(g.Nodes))

	for i, node := range g.Nodes {
		reqs, err := require.ReadRequires(node.Path)
		if err != nil {
			b.logger.Warn("Failed to read file, treating as dependency-free", map[string]interface{}{
				"file":  node.Path,
				"error": err.Error(),
			})
			continue
		}
		node.Requires = reqs

		for _, mod := range reqs {
			depPath := b.resolver.Resolve(mod)
			if depPath == "" {
				// external module, not part of the graph
				continue
			}
			dep, ok := g.byPath[depPath]
			if !ok {
				continue
			}
			g.addEdge(dep, i)
		}
	}

	return g
}

// addEdge records dependency→dependent once per ordered pair
func (g *Graph) addEdge(dep int, dependent int) {
	key := [2]int{dep, dependent}
	if g.edgeSeen[key] {
		return
	}
	g.edgeSeen[key] = true
	g.dependents[dep] = append(g.dependents[dep], dependent)
	g.indegree[dependent]++
}

// Len returns the node count
func (g *Graph) Len() int {
	return len(g.Nodes)
}

// Indegree returns the indegree of the node at index i
func (g *Graph) Indegree(i int) int {
	return g.indegree[i]
}

// Dependents returns the dependent indices of the node at index i
func (g *Graph) Dependents(i int) []int {
	return g.dependents[i]
}
