// levelgen builds levels for the courier game: procedural quick levels,
// AI-assisted levels from a prompt, and hand-authored level files.
//
// Usage:
//
//	levelgen quick [tier]          - Procedural level (easy, medium, hard)
//	levelgen generate <prompt...>  - AI-assisted level
//	levelgen current | clear       - Show or clear the level the game loads
//	levelgen history               - List stored levels
//	levelgen show <id>             - Print a stored level
//	levelgen check <dir>           - Validate a directory of level files
//	levelgen apply <file>          - Make a level file current
//	levelgen backends              - List LLM backends
//	levelgen server                - Run the HTTP level server
//	levelgen studio                - Interactive level studio
//	levelgen serve                 - Serve the studio over SSH
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.levelgen, ./configs)
//	--db <path>         - Level database (default: ~/.levelgen/levels.db)
//	--seed <value>      - RNG seed for reproducible procedural levels
//	--log-level <level> - debug, info, warn or error
//	--json              - Print level JSON instead of the preview
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagSeed     int64
	flagLogLevel string
	flagJSON     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "levelgen",
	Short: "Level generator for the courier game",
	Long: `levelgen creates levels for the courier game. Levels come from
difficulty tiers, from a prompt sent to an AI level designer, or from
hand-authored files. Every level is clamped to playable bounds before
it is stored.

Available commands:
  quick     - Procedural level for a difficulty tier
  generate  - AI-assisted level from a prompt
  current   - Show the level the game will load
  clear     - Revert the game to its built-in level
  history   - List stored levels
  show      - Print a stored level
  check     - Validate a directory of level files
  apply     - Make a level file current
  backends  - List LLM backends
  server    - Run the HTTP level server
  studio    - Interactive level studio
  serve     - Serve the studio over SSH

Examples:
  levelgen quick hard
  levelgen generate "icy rooftops with a fast thief"
  levelgen history --limit 5
  levelgen server --addr :3002
  levelgen serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to level database (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Print level JSON instead of the preview")

	// Add subcommands
	rootCmd.AddCommand(quickCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(currentCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(backendsCmd)
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(studioCmd)
	rootCmd.AddCommand(serveCmd)
}
