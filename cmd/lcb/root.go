package main

import (
	"lcb/internal/version"

	"github.com/spf13/cobra"
)

var (
	// projectRootFlag is the CLI --project-root flag value
	projectRootFlag string
	// logFormatFlag is the CLI --log-format flag value
	logFormatFlag string
	// logLevelFlag is the CLI --log-level flag value
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "lcb",
	Short: "lcb - Lua concatenation builder",
	Long: `lcb bundles a multi-file Lua project into a single distributable artifact.

It discovers sources under the configured source root, resolves the require
statements in each file's leading import block, orders files so dependencies
come first, and concatenates them with per-file markers. Configuration lives
in a .buildrc file at the project root.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("lcb version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&projectRootFlag, "project-root", "",
		"Project root directory (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "",
		"Log format: human or json (default: from .buildrc, else human)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, or error (default: from .buildrc, else info)")
}
