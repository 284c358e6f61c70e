package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lcb/internal/paths"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Print the computed build order",
	Long: `Print the dependency-ordered file list without writing the bundle.

Each line shows the file's position, its project-relative path, and how many
require statements its leading block declares. Files placed by the cycle
fallback are marked; their relative order is discovery order, not dependency
order.

Examples:
  lcb order
  lcb order --log-level debug`,
	Run: runOrder,
}

func init() {
	rootCmd.AddCommand(orderCmd)
}

func runOrder(cmd *cobra.Command, args []string) {
	projectRoot := mustProjectRoot()
	cfg := mustLoadConfig(projectRoot)
	logger := newLogger(cfg)

	order, err := runPipeline(projectRoot, cfg, logger)
	if err != nil {
		fail(err)
	}

	for i, node := range order {
		marker := ""
		if node.Fallback {
			marker = "  [cycle]"
		}
		rel := paths.RelToProject(projectRoot, node.Path)
		fmt.Printf("%3d  %s  (%d requires)%s\n", i+1, rel, len(node.Requires), marker)
	}
}
