package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/courier-levels/internal/level"
	"github.com/vovakirdan/courier-levels/internal/preview"
	"github.com/vovakirdan/courier-levels/internal/storage"
)

var (
	flagHistoryLimit int
	flagMarkdown     bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored levels",
	Long: `Display the most recently produced levels, newest first.

Examples:
  levelgen history
  levelgen history --limit 5`,
	Run: runHistory,
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored level",
	Long: `Print a stored level by ID or by a unique ID prefix of at least four
characters, as shown by 'levelgen history'.

Examples:
  levelgen show 3f2a9c1e
  levelgen show 3f2a --markdown
  levelgen show 3f2a --json`,
	Args: cobra.ExactArgs(1),
	Run:  runShow,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of levels to list")
	showCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Render a markdown report")
}

func runHistory(_ *cobra.Command, _ []string) {
	a := loadApp()
	store := a.openStore()
	defer store.Close()

	records, err := store.Recent(flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving levels: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Stored levels")
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No levels stored yet.")
		fmt.Println()
		fmt.Println("Run 'levelgen quick' or 'levelgen generate <prompt>' to create one.")
		return
	}

	current, _ := store.Current()

	// Print header
	fmt.Printf("  %-8s  %-28s  %-8s  %-6s  %s\n", "ID", "Name", "Origin", "Tier", "Saved")
	fmt.Printf("  %-8s  %-28s  %-8s  %-6s  %s\n", "--", "----", "------", "----", "-----")

	for _, r := range records {
		marker := ""
		if current != nil && current.ID == r.ID {
			marker = "  (current)"
		}
		fmt.Printf("  %-8s  %-28s  %-8s  %-6s  %s%s\n",
			r.ShortID(), truncate(r.Name, 28), r.Origin, r.Tier,
			r.CreatedAt.Local().Format("2006-01-02 15:04"), marker)
	}

	// Show totals per origin
	stats, err := store.Stats()
	if err == nil && len(stats) > 0 {
		fmt.Println()
		kinds := []level.OriginKind{level.OriginPrompt, level.OriginFallback, level.OriginQuick, level.OriginFile}
		for _, kind := range kinds {
			if st := stats[kind]; st != nil {
				fmt.Printf("%s: %d  ", kind, st.Count)
			}
		}
		fmt.Println()
	}
}

func runShow(_ *cobra.Command, args []string) {
	a := loadApp()
	store := a.openStore()
	defer store.Close()

	rec, err := store.Find(args[0])
	if errors.Is(err, storage.ErrAmbiguous) {
		fmt.Fprintf(os.Stderr, "Error: %q matches more than one level; use a longer prefix\n", args[0])
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving level: %v\n", err)
		os.Exit(1)
	}
	if rec == nil {
		fmt.Fprintf(os.Stderr, "Error: no level %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'levelgen history' to see stored levels.")
		os.Exit(1)
	}

	if flagMarkdown && !flagJSON {
		width, _ := terminalSize()
		out, err := preview.RenderMarkdown(rec.Config, width)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering level: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(out)
		return
	}

	if rec.Prompt != "" {
		fmt.Fprintf(os.Stderr, "Prompt: %q\n", rec.Prompt)
	}
	printLevel(rec.Config)
}

// truncate shortens s to n runes, marking the cut with a period.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}
