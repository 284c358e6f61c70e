package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lcb/internal/errors"
	"lcb/internal/manifest"
	"lcb/internal/stamp"
)

var (
	stampGlobal   string
	stampArtifact string
)

var stampCmd = &cobra.Command{
	Use:   "stamp",
	Short: "Stamp the manifest version into the built bundle",
	Long: `Patch the project version into the built bundle.

Reads [project].version from pyproject.toml and sets the version global
inside the artifact: an existing assignment is replaced in place, otherwise
one is inserted near the top. The global name comes from the version_global
config option (default HARNESS_VERSION).

Examples:
  lcb stamp
  lcb stamp --global BUNDLE_VERSION`,
	Run: runStamp,
}

func init() {
	stampCmd.Flags().StringVar(&stampGlobal, "global", "", "Version global name (overrides .buildrc)")
	stampCmd.Flags().StringVar(&stampArtifact, "artifact", "", "Artifact path (default: the configured output path)")
	rootCmd.AddCommand(stampCmd)
}

func runStamp(cmd *cobra.Command, args []string) {
	projectRoot := mustProjectRoot()
	cfg := mustLoadConfig(projectRoot)
	logger := newLogger(cfg)

	meta := manifest.Read(projectRoot)
	if meta.Version == "" {
		fail(errors.NewBuildError(errors.ManifestMissing,
			"version not found in [project] of "+manifest.ManifestFileName, nil))
	}

	global := cfg.VersionGlobal
	if stampGlobal != "" {
		global = stampGlobal
	}
	artifact := stampArtifact
	if artifact == "" {
		artifact = cfg.OutputPath(projectRoot)
	}

	action, err := stamp.Stamp(artifact, global, meta.Version)
	if err != nil {
		fail(err)
	}

	logger.Debug("Stamp finished", map[string]interface{}{
		"artifact": artifact,
		"action":   string(action),
	})

	switch action {
	case stamp.ActionReplaced:
		fmt.Printf("Updated version to %s\n", meta.Version)
	case stamp.ActionInserted:
		fmt.Printf("Inserted version %s\n", meta.Version)
	default:
		fmt.Printf("Version already %s\n", meta.Version)
	}
}
