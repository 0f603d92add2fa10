package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/courier-levels/internal/llm"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List available LLM backends",
	Long:  `Shows the LLM backends the level server and 'generate --direct' can use.`,
	Run:   runBackends,
}

func runBackends(_ *cobra.Command, _ []string) {
	a := loadApp()
	backends := llm.List()

	fmt.Println("Available backends:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, b := range backends {
		if len(b.Name) > maxNameLen {
			maxNameLen = len(b.Name)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Description")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-----------")

	for _, b := range backends {
		marker := ""
		if b.Name == a.cfg.LLM.Backend {
			marker = "  (configured)"
		}
		fmt.Printf("  %-*s  %s%s\n", maxNameLen, b.Name, b.Description, marker)
	}

	fmt.Println()
	fmt.Println("Set llm.backend in the config to choose one.")
}
