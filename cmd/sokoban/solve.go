package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/t-kuester/sokoban/internal/sokoban"
	"github.com/t-kuester/sokoban/internal/storage"
)

var (
	flagSolveTimeout  int
	flagSolveMaxBoxes int
	flagSolveSave     bool
)

var solveCmd = &cobra.Command{
	Use:   "solve <collection> <level>",
	Short: "Run the solver on a level",
	Long: `Search for a push-minimal solution and print it in LURD notation
(one letter per move, uppercase letters are pushes).

The search is exhaustive and practical for small levels only; bound it
with --timeout for larger ones.

Examples:
  sokoban solve microban 1
  sokoban solve microban 5 --timeout 60
  sokoban solve microban 2 --save`,
	Args: cobra.ExactArgs(2),
	Run:  runSolve,
}

func init() {
	solveCmd.Flags().IntVar(&flagSolveTimeout, "timeout", 0, "Time limit in seconds (0 = config default)")
	solveCmd.Flags().IntVar(&flagSolveMaxBoxes, "max-boxes", -1, "Box count limit (-1 = config default, 0 = unlimited)")
	solveCmd.Flags().BoolVar(&flagSolveSave, "save", false, "Record the solution in the progress database")
}

func runSolve(cmd *cobra.Command, args []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

	cfg, err := loadConfig()
	if err != nil {
		logger.Fatal("loading config", "error", err)
	}
	coll, index, err := loadLevel(cfg, args[0], args[1])
	if err != nil {
		logger.Fatal("loading level", "error", err)
	}
	lvl := coll.Levels[index]

	maxBoxes := cfg.Solver.MaxBoxes
	if flagSolveMaxBoxes >= 0 {
		maxBoxes = flagSolveMaxBoxes
	}
	if maxBoxes > 0 && lvl.Start.Boxes.Len() > maxBoxes {
		logger.Fatal("level exceeds the solver box limit",
			"boxes", lvl.Start.Boxes.Len(), "max_boxes", maxBoxes)
	}

	timeout := cfg.Solver.Timeout()
	if flagSolveTimeout > 0 {
		timeout = time.Duration(flagSolveTimeout) * time.Second
	}
	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	logger.Info("solving", "collection", coll.ID, "level", index+1, "timeout", timeout)
	start := time.Now()
	plan, err := sokoban.Solve(ctx, lvl.Grid, lvl.Start)
	elapsed := time.Since(start)

	switch {
	case errors.Is(err, sokoban.ErrCancelled):
		logger.Fatal("solver timed out", "after", elapsed)
	case errors.Is(err, sokoban.ErrNoSolution):
		logger.Fatal("level has no solution")
	case err != nil:
		logger.Fatal("solver failed", "error", err)
	}

	logger.Info("solved", "moves", len(plan), "pushes", plan.Pushes(), "elapsed", elapsed)
	fmt.Println(plan.LURD())

	if flagSolveSave {
		store, err := storage.Open(cfg.Storage.Path)
		if err != nil {
			logger.Fatal("opening progress database", "error", err)
		}
		defer store.Close()
		_, err = store.RecordSolve(storage.Solution{
			Collection: coll.ID,
			Level:      index,
			Moves:      plan.LURD(),
			MoveCount:  len(plan),
			PushCount:  plan.Pushes(),
			Source:     storage.SourceSolver,
		})
		if err != nil {
			logger.Fatal("saving solution", "error", err)
		}
		logger.Info("solution saved")
	}
}
