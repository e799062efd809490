package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyrunner/internal/registry"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List all available themes",
	Long:  `Shows every theme registered in Sky Runner.`,
	Run:   runThemes,
}

func runThemes(_ *cobra.Command, _ []string) {
	themes := registry.List()

	if len(themes) == 0 {
		fmt.Println("No themes available.")
		return
	}

	fmt.Println("Available themes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, t := range themes {
		if len(t.ID) > maxIDLen {
			maxIDLen = len(t.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "ID", "Layers", "Name")
	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "--", "------", "----")

	for _, t := range themes {
		fmt.Printf("  %-*s  %-6d  %s\n", maxIDLen, t.ID, t.Layers, t.Name)
	}

	fmt.Println()
	fmt.Println("Run 'skyrunner play <id>' to fly a theme.")
}
