package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/t-kuester/sokoban/internal/levels"
	"github.com/t-kuester/sokoban/internal/platform/tui"
	"github.com/t-kuester/sokoban/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [collection] [level]",
	Short: "Play in the terminal",
	Long: `Play Sokoban interactively. Without arguments a level browser opens;
with a collection and level number that level starts directly.

Controls:
  Arrows/WASD - Move (pushing a box when one is ahead)
  u           - Undo, y redoes
  r           - Restart the level
  x           - Run the solver and replay its solution
  v           - Highlight cells a box must never enter
  n / p       - Next / previous level
  Esc         - Back to the browser
  Q/Ctrl+C    - Quit

Examples:
  sokoban play
  sokoban play microban
  sokoban play microban 3`,
	Args: cobra.MaximumNArgs(2),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open progress database: %v\n", err)
		// Continue without storage - the game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Direct level start
	if len(args) > 0 {
		levelArg := "1"
		if len(args) == 2 {
			levelArg = args[1]
		}
		coll, index, lvlErr := loadLevel(cfg, args[0], levelArg)
		if lvlErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", lvlErr)
			os.Exit(1)
		}
		if _, runErr := tui.RunPlay(coll, index, store, cfg); runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
			os.Exit(1)
		}
		return
	}

	colls, err := levels.NewLoader(cfg.Levels.Dir).LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}
	if err := tui.RunSession(colls, store, cfg, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
