package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"lcb/internal/bundle"
	"lcb/internal/manifest"
)

var (
	buildStrip   bool
	buildNoStrip bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the bundle",
	Long: `Build the single-file bundle from the configured source root.

Sources are concatenated in dependency order: every file's leading require
block is resolved against the configured module roots, and dependencies are
emitted before their dependents. Files involved in require cycles keep their
discovery order. Each file is wrapped in BEGIN/END marker comments carrying
its project-relative path.

Examples:
  lcb build
  lcb build --no-strip
  lcb build --project-root ../harness`,
	Run: runBuild,
}

func init() {
	buildCmd.Flags().BoolVar(&buildStrip, "strip", false, "Strip resolved require statements (overrides .buildrc)")
	buildCmd.Flags().BoolVar(&buildNoStrip, "no-strip", false, "Keep require statements (overrides .buildrc)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) {
	projectRoot := mustProjectRoot()
	cfg := mustLoadConfig(projectRoot)
	logger := newLogger(cfg)

	if buildStrip {
		cfg.StripRequires = true
	}
	if buildNoStrip {
		cfg.StripRequires = false
	}

	runID := uuid.NewString()
	logger.Info("Build started", map[string]interface{}{
		"runId":       runID,
		"projectRoot": projectRoot,
		"strip":       cfg.StripRequires,
	})

	order, err := runPipeline(projectRoot, cfg, logger)
	if err != nil {
		fail(err)
	}

	meta := manifest.Read(projectRoot)

	asm := bundle.NewAssembler(projectRoot, cfg, logger)
	text, err := asm.Assemble(order, meta)
	if err != nil {
		fail(err)
	}
	outputPath, err := asm.WriteArtifact(text)
	if err != nil {
		fail(err)
	}

	logger.Info("Build finished", map[string]interface{}{
		"runId":  runID,
		"files":  len(order),
		"bytes":  len(text),
		"output": outputPath,
	})
	fmt.Printf("Built %s\n", outputPath)
}
