package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/t-kuester/sokoban/internal/levels"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available level collections",
	Long:  `Shows every level collection, builtin and discovered on disk.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	colls, err := levels.NewLoader(cfg.Levels.Dir).LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	if len(colls) == 0 {
		fmt.Println("No level collections available.")
		return
	}

	fmt.Println("Available collections:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, c := range colls {
		if len(c.ID) > maxIDLen {
			maxIDLen = len(c.ID)
		}
	}

	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "ID", "Levels", "Source")
	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "--", "------", "------")
	for _, c := range colls {
		source := "file"
		if c.Builtin {
			source = "builtin"
		}
		fmt.Printf("  %-*s  %-7d  %s\n", maxIDLen, c.ID, len(c.Levels), source)
	}

	fmt.Println()
	fmt.Println("Run 'sokoban play <id>' to play a collection.")
}
