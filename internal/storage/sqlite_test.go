package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file and its parent directory were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestRecordSolveAndProgress(t *testing.T) {
	store := openTestStore(t)

	_, err := store.RecordSolve(Solution{
		Collection: "microban", Level: 0,
		Moves: "uRdL", MoveCount: 4, PushCount: 2, Source: SourcePlayer,
	})
	if err != nil {
		t.Fatalf("RecordSolve() failed: %v", err)
	}
	_, err = store.RecordSolve(Solution{
		Collection: "microban", Level: 2,
		Moves: "RR", MoveCount: 2, PushCount: 2, Source: SourceSolver,
	})
	if err != nil {
		t.Fatalf("RecordSolve() failed: %v", err)
	}
	// Different collection
	_, err = store.RecordSolve(Solution{
		Collection: "custom", Level: 0,
		Moves: "R", MoveCount: 1, PushCount: 1, Source: SourcePlayer,
	})
	if err != nil {
		t.Fatalf("RecordSolve() failed: %v", err)
	}

	progress, err := store.Progress("microban")
	if err != nil {
		t.Fatalf("Progress() failed: %v", err)
	}
	if len(progress) != 2 {
		t.Fatalf("Expected 2 progress rows, got %d", len(progress))
	}
	if progress[0].Level != 0 || progress[1].Level != 2 {
		t.Errorf("Progress not ordered by level: %+v", progress)
	}
	if !progress[0].Solved || progress[0].BestMoves != 4 || progress[0].BestPushes != 2 {
		t.Errorf("Unexpected progress row: %+v", progress[0])
	}

	n, err := store.SolvedCount("microban")
	if err != nil {
		t.Fatalf("SolvedCount() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 solved levels, got %d", n)
	}
}

func TestRecordSolveKeepsBest(t *testing.T) {
	store := openTestStore(t)

	solve := func(moves, pushes int) {
		t.Helper()
		_, err := store.RecordSolve(Solution{
			Collection: "microban", Level: 1,
			Moves: "u", MoveCount: moves, PushCount: pushes, Source: SourcePlayer,
		})
		if err != nil {
			t.Fatalf("RecordSolve() failed: %v", err)
		}
	}
	solve(20, 8)
	solve(30, 6) // fewer pushes, more moves
	solve(15, 9) // fewer moves, more pushes

	p, err := store.LevelStatus("microban", 1)
	if err != nil {
		t.Fatalf("LevelStatus() failed: %v", err)
	}
	if p == nil {
		t.Fatal("LevelStatus() returned nil for solved level")
	}
	// Bests are tracked independently
	if p.BestMoves != 15 {
		t.Errorf("BestMoves = %d, want 15", p.BestMoves)
	}
	if p.BestPushes != 6 {
		t.Errorf("BestPushes = %d, want 6", p.BestPushes)
	}
}

func TestLevelStatusUnsolved(t *testing.T) {
	store := openTestStore(t)

	p, err := store.LevelStatus("microban", 99)
	if err != nil {
		t.Fatalf("LevelStatus() failed: %v", err)
	}
	if p != nil {
		t.Errorf("Expected nil for never-solved level, got %+v", p)
	}
}

func TestBestSolution(t *testing.T) {
	store := openTestStore(t)

	_, err := store.RecordSolve(Solution{
		Collection: "microban", Level: 0,
		Moves: "uuRRdL", MoveCount: 6, PushCount: 3, Source: SourcePlayer,
	})
	if err != nil {
		t.Fatalf("RecordSolve() failed: %v", err)
	}
	_, err = store.RecordSolve(Solution{
		Collection: "microban", Level: 0,
		Moves: "RdL", MoveCount: 3, PushCount: 2, Source: SourceSolver,
	})
	if err != nil {
		t.Fatalf("RecordSolve() failed: %v", err)
	}

	best, err := store.BestSolution("microban", 0)
	if err != nil {
		t.Fatalf("BestSolution() failed: %v", err)
	}
	if best == nil {
		t.Fatal("BestSolution() returned nil")
	}
	if best.Moves != "RdL" || best.Source != SourceSolver {
		t.Errorf("Unexpected best solution: %+v", best)
	}

	all, err := store.Solutions("microban", 0)
	if err != nil {
		t.Fatalf("Solutions() failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 solutions, got %d", len(all))
	}

	none, err := store.BestSolution("microban", 5)
	if err != nil {
		t.Fatalf("BestSolution() failed: %v", err)
	}
	if none != nil {
		t.Errorf("Expected nil for level without solutions, got %+v", none)
	}
}

func TestClearProgress(t *testing.T) {
	store := openTestStore(t)

	_, err := store.RecordSolve(Solution{
		Collection: "microban", Level: 0,
		Moves: "R", MoveCount: 1, PushCount: 1, Source: SourcePlayer,
	})
	if err != nil {
		t.Fatalf("RecordSolve() failed: %v", err)
	}
	_, err = store.RecordSolve(Solution{
		Collection: "custom", Level: 0,
		Moves: "R", MoveCount: 1, PushCount: 1, Source: SourcePlayer,
	})
	if err != nil {
		t.Fatalf("RecordSolve() failed: %v", err)
	}

	if err := store.ClearProgress("microban"); err != nil {
		t.Fatalf("ClearProgress() failed: %v", err)
	}

	progress, err := store.Progress("microban")
	if err != nil {
		t.Fatalf("Progress() failed: %v", err)
	}
	if len(progress) != 0 {
		t.Errorf("Progress not cleared: %+v", progress)
	}
	kept, err := store.Progress("custom")
	if err != nil {
		t.Fatalf("Progress() failed: %v", err)
	}
	if len(kept) != 1 {
		t.Errorf("Other collection affected by clear: %+v", kept)
	}
}
