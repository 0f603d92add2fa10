package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/courier-levels/internal/levels"
	"github.com/vovakirdan/courier-levels/internal/validate"
)

var flagWatch bool

var checkCmd = &cobra.Command{
	Use:   "check <dir>",
	Short: "Validate a directory of level files",
	Long: `Load every level file (.yaml, .yml, .json) in a directory and report
what had to be defaulted, clamped, truncated or regenerated to make it
playable. Files that cannot be parsed are reported as errors.

With --watch the directory is re-checked whenever a level file changes.

Examples:
  levelgen check ./levels
  levelgen check ./levels --watch`,
	Args: cobra.ExactArgs(1),
	Run:  runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&flagWatch, "watch", false, "Re-check files when they change")
}

func runCheck(_ *cobra.Command, args []string) {
	a := loadApp()
	dir := args[0]
	loader := levels.NewLoader(dir, validate.NewNormalizer(a.generator()))

	failed := reportDir(loader)
	if !flagWatch {
		if failed > 0 {
			os.Exit(1)
		}
		return
	}

	watcher, err := levels.NewWatcher(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error watching %s: %v\n", dir, err)
		os.Exit(1)
	}
	defer watcher.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("\nWatching %s for changes. Press Ctrl+C to stop.\n", dir)
	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-watcher.Events:
			if !ok {
				return
			}
			fmt.Printf("\n%s changed\n", path)
			reportFile(loader, path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			a.logger.Warn("watch error", "error", err)
		}
	}
}

// reportDir checks every file in the loader's directory and returns the
// number of files that failed to load.
func reportDir(loader *levels.Loader) int {
	results, err := loader.Scan()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", loader.Root, err)
		os.Exit(1)
	}
	if len(results) == 0 {
		fmt.Printf("No level files in %s.\n", loader.Root)
		return 0
	}

	failed := 0
	for _, r := range results {
		if !printResult(r) {
			failed++
		}
	}

	fmt.Println()
	fmt.Printf("%d files, %d failed\n", len(results), failed)
	return failed
}

// reportFile checks a single changed file. Removed files are reported as such.
func reportFile(loader *levels.Loader, path string) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Printf("  %s removed\n", path)
		return
	}
	lvl, err := loader.LoadFile(path)
	printResult(levels.Result{Path: path, Level: lvl, Err: err})
}

func printResult(r levels.Result) bool {
	if r.Err != nil {
		fmt.Printf("FAIL %s: %v\n", r.Path, r.Err)
		return false
	}

	fmt.Printf("ok   %s (%s, %q)\n", r.Path, r.Level.ID, r.Level.Config.Name)
	for _, adj := range r.Level.Adjustments {
		fmt.Printf("       %s\n", adj)
	}
	return true
}
