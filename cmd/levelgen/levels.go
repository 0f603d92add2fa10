package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/courier-levels/internal/levels"
	"github.com/vovakirdan/courier-levels/internal/validate"
)

var flagDirect bool

var quickCmd = &cobra.Command{
	Use:   "quick [tier]",
	Short: "Generate a procedural level for a difficulty tier",
	Long: `Generate a procedural level without calling any AI service and make
it the current level.

Tiers:
  easy    - 6 houses, 4 deliveries, no thief
  medium  - 8 houses, 6 deliveries, thief (default)
  hard    - 10 houses, 8 deliveries, thief

Unknown tiers fall back to medium.

Examples:
  levelgen quick
  levelgen quick hard --seed 42
  levelgen quick easy --json`,
	Args: cobra.MaximumNArgs(1),
	Run:  runQuick,
}

var generateCmd = &cobra.Command{
	Use:   "generate <prompt...>",
	Short: "Generate a level from a description",
	Long: `Ask the AI level designer for a level matching the prompt and make it
the current level. The response is clamped to playable bounds. If the
service cannot be reached, times out or answers with something unusable,
a procedural medium level is used instead.

By default the prompt is sent to the level server (service.url in the
config). With --direct the configured LLM backend is called in-process.

Examples:
  levelgen generate "icy rooftops with a fast thief"
  levelgen generate --direct a long calm level with many houses`,
	Args: cobra.MinimumNArgs(1),
	Run:  runGenerate,
}

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the level the game will load",
	Run:   runCurrent,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Revert the game to its built-in level",
	Run:   runClear,
}

var applyCmd = &cobra.Command{
	Use:   "apply <file>",
	Short: "Make a hand-authored level file the current level",
	Long: `Load a level file (.yaml, .yml or .json), clamp it to playable bounds,
store it and make it the current level.

Examples:
  levelgen apply ./levels/frozen-alley.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runApply,
}

func init() {
	generateCmd.Flags().BoolVar(&flagDirect, "direct", false, "Call the LLM backend directly instead of the level server")
}

func runQuick(_ *cobra.Command, args []string) {
	a := loadApp()
	store := a.tryOpenStore()
	if store != nil {
		defer store.Close()
	}

	tier := ""
	if len(args) > 0 {
		tier = args[0]
	}

	svc := a.newService(nil, store)
	printLevel(svc.SynthesizeQuick(tier))
}

func runGenerate(_ *cobra.Command, args []string) {
	a := loadApp()
	store := a.tryOpenStore()
	if store != nil {
		defer store.Close()
	}

	client, err := a.generationClient(flagDirect)
	if err != nil {
		// Without a backend every prompt falls back to a procedural level.
		a.logger.Warn("no generation backend", "error", err)
		client = nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := a.newService(client, store)
	prompt := strings.Join(args, " ")
	cfg, _ := svc.SynthesizeFromPrompt(ctx, prompt)

	if origin, ok := svc.Origin(); ok {
		fmt.Fprintf(os.Stderr, "Created %s\n", describeOrigin(origin))
	}
	printLevel(cfg)
}

func runCurrent(_ *cobra.Command, _ []string) {
	a := loadApp()
	store := a.openStore()
	defer store.Close()

	rec, err := store.Current()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading current level: %v\n", err)
		os.Exit(1)
	}
	if rec == nil {
		fmt.Println("No custom level set. The game uses its built-in level.")
		return
	}

	fmt.Fprintf(os.Stderr, "Current level %s (%s, saved %s)\n",
		rec.ShortID(), rec.Origin, rec.CreatedAt.Local().Format("2006-01-02 15:04"))
	printLevel(rec.Config)
}

func runClear(_ *cobra.Command, _ []string) {
	a := loadApp()
	store := a.openStore()
	defer store.Close()

	if err := store.ClearCurrent(); err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing current level: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Custom level cleared. The game uses its built-in level.")
}

func runApply(_ *cobra.Command, args []string) {
	a := loadApp()
	store := a.openStore()
	defer store.Close()

	svc := a.newService(nil, store)
	loader := levels.NewLoader("", validate.NewNormalizer(a.generator()))

	lvl, err := loader.LoadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading level file: %v\n", err)
		os.Exit(1)
	}
	for _, adj := range lvl.Adjustments {
		fmt.Fprintf(os.Stderr, "  %s\n", adj)
	}

	svc.Apply(lvl.Config, lvl.Origin())
	printLevel(lvl.Config)
}
