package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/t-kuester/sokoban/internal/levels"
	"github.com/t-kuester/sokoban/internal/storage"
)

var flagProgressClear bool

var progressCmd = &cobra.Command{
	Use:   "progress <collection>",
	Short: "Show solve progress for a collection",
	Long: `Display which levels of a collection have been solved and the best
recorded move and push counts.

Examples:
  sokoban progress microban
  sokoban progress microban --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runProgress,
}

func init() {
	progressCmd.Flags().BoolVar(&flagProgressClear, "clear", false, "Delete all progress for the collection")
}

func runProgress(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	coll, err := levels.NewLoader(cfg.Levels.Dir).Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'sokoban list' to see available collections.")
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening progress database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagProgressClear {
		if err := store.ClearProgress(coll.ID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing progress: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Progress for %s cleared.\n", coll.ID)
		return
	}

	rows, err := store.Progress(coll.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving progress: %v\n", err)
		os.Exit(1)
	}
	byLevel := make(map[int]storage.LevelProgress, len(rows))
	for _, p := range rows {
		byLevel[p.Level] = p
	}

	fmt.Printf("Progress - %s\n", coll.Name)
	fmt.Println()
	fmt.Printf("  %-6s  %-8s  %-11s  %s\n", "Level", "Status", "Best moves", "Best pushes")
	fmt.Printf("  %-6s  %-8s  %-11s  %s\n", "-----", "------", "----------", "-----------")

	solved := 0
	for i := range coll.Levels {
		if p, ok := byLevel[i]; ok && p.Solved {
			solved++
			fmt.Printf("  %-6d  %-8s  %-11d  %d\n", i+1, "solved", p.BestMoves, p.BestPushes)
		} else {
			fmt.Printf("  %-6d  %-8s  %-11s  %s\n", i+1, "-", "-", "-")
		}
	}

	fmt.Println()
	fmt.Printf("Solved %d of %d levels.\n", solved, len(coll.Levels))
}
