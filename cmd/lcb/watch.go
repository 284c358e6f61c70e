package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"lcb/internal/buildcfg"
	"lcb/internal/bundle"
	"lcb/internal/logging"
	"lcb/internal/manifest"
	"lcb/internal/paths"
	"lcb/internal/watcher"
)

var (
	watchDebounceMs int
	watchPollMs     int
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the bundle on source changes",
	Long: `Watch the source root and rebuild the bundle whenever a source file
is created, modified, or deleted. Every rebuild is a full build. Changes
arriving in a burst are coalesced into a single rebuild.

Press Ctrl-C to stop.

Examples:
  lcb watch
  lcb watch --debounce-ms 1000`,
	Run: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&watchDebounceMs, "debounce-ms", 500, "Quiet period before rebuilding")
	watchCmd.Flags().IntVar(&watchPollMs, "poll-ms", 1000, "Source tree polling interval")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) {
	projectRoot := mustProjectRoot()
	cfg := mustLoadConfig(projectRoot)
	logger := newLogger(cfg)

	// initial build; failure here is fatal, failures during watching are not
	if outputPath, err := rebuild(projectRoot, cfg, logger); err != nil {
		fail(err)
	} else {
		fmt.Printf("Built %s\n", outputPath)
	}

	srcDir := paths.JoinProjectPath(projectRoot, cfg.SrcDir)
	w := watcher.New(srcDir, watcher.Config{
		DebounceMs:   watchDebounceMs,
		PollInterval: time.Duration(watchPollMs) * time.Millisecond,
		ExcludeGlobs: cfg.ExcludeGlobs,
	}, logger, func(events []watcher.Event) {
		outputPath, err := rebuild(projectRoot, cfg, logger)
		if err != nil {
			logger.Error("Rebuild failed", map[string]interface{}{
				"error": err.Error(),
			})
			return
		}
		fmt.Printf("Rebuilt %s (%d changes)\n", outputPath, len(events))
	})

	if err := w.Start(); err != nil {
		fail(err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	w.Stop()
}

// rebuild runs one full pipeline pass and writes the artifact
func rebuild(projectRoot string, cfg *buildcfg.Config, logger *logging.Logger) (string, error) {
	order, err := runPipeline(projectRoot, cfg, logger)
	if err != nil {
		return "", err
	}

	meta := manifest.Read(projectRoot)
	asm := bundle.NewAssembler(projectRoot, cfg, logger)
	text, err := asm.Assemble(order, meta)
	if err != nil {
		return "", err
	}
	return asm.WriteArtifact(text)
}
