package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/t-kuester/sokoban/internal/sokoban"
)

var deadendsCmd = &cobra.Command{
	Use:   "deadends <collection> <level>",
	Short: "Show cells a box must never be pushed onto",
	Long: `Print the level with every dead cell marked 'x'. A box pushed onto
a dead cell can never reach a goal again, whatever else happens; the
solver prunes such pushes and the play screen can highlight the cells.

Examples:
  sokoban deadends microban 1`,
	Args: cobra.ExactArgs(2),
	Run:  runDeadends,
}

func runDeadends(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	coll, index, err := loadLevel(cfg, args[0], args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	lvl := coll.Levels[index]
	g := lvl.Grid

	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			c := sokoban.At(row, col)
			switch {
			case lvl.Start.Player == c:
				fmt.Print("@")
			case lvl.Start.Boxes.Has(c):
				fmt.Print("$")
			case g.Kind(c) == sokoban.Wall:
				fmt.Print("#")
			case g.IsGoal(c):
				fmt.Print(".")
			case g.IsDead(c):
				fmt.Print("x")
			default:
				fmt.Print(" ")
			}
		}
		fmt.Println()
	}

	dead := g.DeadCells()
	fmt.Println()
	fmt.Printf("%d dead cells", len(dead))
	if len(dead) > 0 {
		fmt.Print(":")
		for _, c := range dead {
			fmt.Printf(" %v", c)
		}
	}
	fmt.Println()
}
