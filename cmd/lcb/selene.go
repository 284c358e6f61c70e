package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lcb/internal/discovery"
	"lcb/internal/manifest"
	"lcb/internal/paths"
	"lcb/internal/selene"
)

var (
	seleneOutput string
	seleneFormat string
	seleneName   string
)

var seleneCmd = &cobra.Command{
	Use:   "export-selene",
	Short: "Export the public Lua API as a selene standard library",
	Long: `Scan the sources for globally-exposed functions and export them as a
selene standard library, so downstream projects can type-check calls into
the bundle.

Top-level function declarations are paired with the EmmyLua ---@param
annotations directly above them; unannotated parameters default to any.
Files whose name starts with an underscore are skipped.

Examples:
  lcb export-selene
  lcb export-selene --format toml -o dist/api-selene.toml`,
	Run: runSelene,
}

func init() {
	seleneCmd.Flags().StringVarP(&seleneOutput, "output", "o", "", "Output file (default: <dist_dir>/<name>-selene.yml)")
	seleneCmd.Flags().StringVar(&seleneFormat, "format", "yaml", "Output format (yaml, toml)")
	seleneCmd.Flags().StringVar(&seleneName, "name", "", "Library name (default: [project] name from pyproject.toml)")
	rootCmd.AddCommand(seleneCmd)
}

func runSelene(cmd *cobra.Command, args []string) {
	projectRoot := mustProjectRoot()
	cfg := mustLoadConfig(projectRoot)
	logger := newLogger(cfg)

	name := seleneName
	if name == "" {
		if meta := manifest.Read(projectRoot); meta.Name != "" {
			name = meta.Name
		} else {
			name = filepath.Base(projectRoot)
		}
	}

	srcDir := paths.JoinProjectPath(projectRoot, cfg.SrcDir)
	files, err := discovery.Discover(srcDir, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning %s: %v\n", srcDir, err)
		os.Exit(1)
	}

	funcs := selene.Collect(files)
	doc := selene.Export(name, funcs)

	data, err := doc.Encode(seleneFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	output := seleneOutput
	if output == "" {
		ext := ".yml"
		if seleneFormat == "toml" {
			ext = ".toml"
		}
		output = filepath.Join(projectRoot, cfg.DistDir, name+"-selene"+ext)
	} else if !filepath.IsAbs(output) {
		output = filepath.Join(projectRoot, filepath.FromSlash(output))
	}

	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", output, err)
		os.Exit(1)
	}

	logger.Debug("Selene export finished", map[string]interface{}{
		"functions": len(funcs),
		"output":    output,
	})
	fmt.Printf("Selene library exported to %s\n", output)
}
