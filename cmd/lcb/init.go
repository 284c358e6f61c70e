package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lcb/internal/buildcfg"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default .buildrc",
	Long: `Write a default .buildrc configuration to the project root.

The generated file assumes sources under src/, output under dist/, and
require stripping enabled. An existing .buildrc is never overwritten unless
--force is given.`,
	Run: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing .buildrc")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) {
	projectRoot := mustProjectRoot()
	configPath := filepath.Join(projectRoot, buildcfg.ConfigFileName)

	if _, err := os.Stat(configPath); err == nil && !initForce {
		fmt.Fprintf(os.Stderr, "Error: %s already exists (use --force to overwrite)\n", configPath)
		os.Exit(1)
	}

	if err := buildcfg.DefaultConfig().Save(projectRoot); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", configPath, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", configPath)
}
