// sokoban is a terminal Sokoban game with a built-in planner and solver.
//
// Usage:
//
//	sokoban play [collection] [level]  - Play in the terminal
//	sokoban list                       - List level collections
//	sokoban solve <collection> <level> - Solve a level automatically
//	sokoban deadends <collection> <level> - Show cells a box must avoid
//	sokoban progress <collection>      - Show solve progress
//	sokoban serve                      - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>  - Use a specific config file
//	--db <path>      - Set database path (default: ~/.sokoban/progress.db)
//	--levels <dir>   - Extra directory with level collections
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/t-kuester/sokoban/internal/config"
	"github.com/t-kuester/sokoban/internal/levels"
)

var (
	// Global flags
	flagConfig    string
	flagDBPath    string
	flagLevelsDir string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sokoban",
	Short: "Sokoban - push boxes onto goals, in your terminal",
	Long: `Sokoban is a terminal rendition of the classic box-pushing puzzle,
with undo, progress tracking and an automatic solver built in.

Available commands:
  play      - Play interactively
  list      - Show available level collections
  solve     - Run the solver on a level
  deadends  - Show cells a box must never be pushed onto
  progress  - Show which levels you have solved
  serve     - Start SSH server for remote play

Examples:
  sokoban play
  sokoban play microban 3
  sokoban solve microban 1
  sokoban serve --port 2222`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to progress database")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Extra directory with level collections")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(deadendsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig loads the configuration and applies global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLevelsDir != "" {
		cfg.Levels.Dir = flagLevelsDir
	}
	return cfg, nil
}

// loadLevel resolves a collection ID and 1-based level number from command
// arguments.
func loadLevel(cfg config.Config, collectionID, levelArg string) (levels.Collection, int, error) {
	coll, err := levels.NewLoader(cfg.Levels.Dir).Load(collectionID)
	if err != nil {
		return levels.Collection{}, 0, err
	}
	n, err := strconv.Atoi(levelArg)
	if err != nil {
		return levels.Collection{}, 0, fmt.Errorf("invalid level number %q", levelArg)
	}
	if n < 1 || n > len(coll.Levels) {
		return levels.Collection{}, 0, fmt.Errorf("collection %s has levels 1-%d", coll.ID, len(coll.Levels))
	}
	return coll, n - 1, nil
}
