package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lcb/internal/buildcfg"
	"lcb/internal/discovery"
	"lcb/internal/errors"
	"lcb/internal/graph"
	"lcb/internal/logging"
	"lcb/internal/paths"
	"lcb/internal/resolver"
)

// mustProjectRoot returns the absolute project root from the --project-root
// flag or the working directory, or exits.
func mustProjectRoot() string {
	root := projectRootFlag
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resolving working directory: %v\n", err)
			os.Exit(1)
		}
		root = wd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving project root: %v\n", err)
		os.Exit(1)
	}
	return abs
}

// mustLoadConfig loads .buildrc or exits with the configuration exit code
func mustLoadConfig(projectRoot string) *buildcfg.Config {
	cfg, err := buildcfg.LoadConfig(projectRoot)
	if err != nil {
		fail(err)
	}
	return cfg
}

// newLogger builds the logger from config, with CLI flags taking precedence
func newLogger(cfg *buildcfg.Config) *logging.Logger {
	format := logging.HumanFormat
	level := logging.InfoLevel

	if cfg != nil {
		if cfg.Logging.Format != "" {
			format = logging.Format(cfg.Logging.Format)
		}
		if cfg.Logging.Level != "" {
			level = logging.LogLevel(cfg.Logging.Level)
		}
	}
	if logFormatFlag != "" {
		format = logging.Format(logFormatFlag)
	}
	if logLevelFlag != "" {
		level = logging.LogLevel(logLevelFlag)
	}

	return logging.NewLogger(logging.Config{Format: format, Level: level})
}

// exitCodeFor maps error codes to process exit codes: configuration and
// manifest problems exit 2, everything else fatal exits 1.
func exitCodeFor(err error) int {
	switch errors.CodeOf(err) {
	case errors.ConfigMissing, errors.ConfigInvalid, errors.ManifestMissing, errors.ArtifactMissing:
		return 2
	default:
		return 1
	}
}

// fail reports a fatal error with any suggested fixes and exits
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if be, ok := err.(*errors.BuildError); ok {
		for _, fix := range be.SuggestedFixes {
			fmt.Fprintf(os.Stderr, "  hint: %s (%s)\n", fix.Description, fix.Command)
		}
	}
	os.Exit(exitCodeFor(err))
}

// findHeaderFile returns the designated header file: the first prepend entry
// that exists and is named *_header.lua. The header is inlined ahead of the
// body and never participates in the dependency graph.
func findHeaderFile(projectRoot string, cfg *buildcfg.Config) string {
	for _, entry := range cfg.Prepend {
		candidate := paths.JoinProjectPath(projectRoot, entry)
		if info, err := os.Stat(candidate); err != nil || info.IsDir() {
			candidate = filepath.Join(paths.JoinProjectPath(projectRoot, cfg.SrcDir), filepath.FromSlash(entry))
			if info, err := os.Stat(candidate); err != nil || info.IsDir() {
				continue
			}
		}
		if strings.HasSuffix(candidate, "_header"+discovery.SourceExt) {
			return candidate
		}
	}
	return ""
}

// runPipeline executes discovery, graph construction, and scheduling.
// Shared by the build and order commands.
func runPipeline(projectRoot string, cfg *buildcfg.Config, logger *logging.Logger) ([]graph.OrderedNode, error) {
	srcDir := paths.JoinProjectPath(projectRoot, cfg.SrcDir)

	files, err := discovery.Discover(srcDir, cfg.ExcludeGlobs)
	if err != nil {
		return nil, errors.NewBuildError(errors.InternalError,
			"source discovery failed under "+srcDir, err)
	}
	if len(files) == 0 {
		return nil, errors.NewBuildError(errors.NoSourcesFound,
			"no source files found under "+srcDir, nil)
	}

	headerPath := findHeaderFile(projectRoot, cfg)

	res := resolver.NewResolver(projectRoot, cfg.ModuleRoots)
	builder := graph.NewBuilder(res, logger)
	g := builder.Build(files, headerPath)

	logger.Debug("Dependency graph built", map[string]interface{}{
		"files":  len(files),
		"nodes":  g.Len(),
		"header": headerPath,
	})

	return g.Order(), nil
}
