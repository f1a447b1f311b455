package levels

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAllBuiltin(t *testing.T) {
	l := NewLoader("")
	all, err := l.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() failed: %v", err)
	}
	if len(all) == 0 {
		t.Fatal("no builtin collections")
	}

	c, err := l.Load("microban")
	if err != nil {
		t.Fatalf("Load(microban) failed: %v", err)
	}
	if !c.Builtin {
		t.Error("microban not marked builtin")
	}
	if len(c.Levels) == 0 {
		t.Fatal("microban has no levels")
	}
	for i, lvl := range c.Levels {
		if err := lvl.Start.Validate(lvl.Grid); err != nil {
			t.Errorf("level %d start state invalid: %v", i+1, err)
		}
	}
}

func TestLoadAllDirectory(t *testing.T) {
	dir := t.TempDir()
	content := `; Custom
####
#@ #
#$.#
####
`
	if err := os.WriteFile(filepath.Join(dir, "custom.txt"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	// Unparseable files are skipped, not fatal.
	if err := os.WriteFile(filepath.Join(dir, "broken.txt"), []byte("####\n#@ #\n####\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Non-level files are ignored outright.
	if err := os.WriteFile(filepath.Join(dir, "notes.md"), []byte("# notes\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(dir)
	c, err := l.Load("custom")
	if err != nil {
		t.Fatalf("Load(custom) failed: %v", err)
	}
	if c.Builtin {
		t.Error("directory collection marked builtin")
	}
	if len(c.Levels) != 1 || c.Levels[0].Title != "Custom" {
		t.Errorf("unexpected levels: %+v", c.Levels)
	}

	if _, err := l.Load("broken"); err == nil {
		t.Error("broken collection should not load")
	}
	if _, err := l.Load("notes"); err == nil {
		t.Error("non-level file should not load")
	}
}

func TestLoadAllShadowsBuiltin(t *testing.T) {
	dir := t.TempDir()
	content := `; Replacement
####
#@ #
#$.#
####
`
	if err := os.WriteFile(filepath.Join(dir, "microban.txt"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := NewLoader(dir).Load("microban")
	if err != nil {
		t.Fatalf("Load(microban) failed: %v", err)
	}
	if c.Builtin {
		t.Error("shadowing collection still marked builtin")
	}
	if len(c.Levels) != 1 {
		t.Errorf("expected the 1-level replacement, got %d levels", len(c.Levels))
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := NewLoader("").Load("no-such-collection"); err == nil {
		t.Error("expected error for unknown collection")
	}
}

func TestLoadMissingRoot(t *testing.T) {
	l := NewLoader(filepath.Join(t.TempDir(), "does-not-exist"))
	all, err := l.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() with missing root failed: %v", err)
	}
	if len(all) == 0 {
		t.Error("builtins should survive a missing root")
	}
}
