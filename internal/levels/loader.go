package levels

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed default/*.txt
var defaultFS embed.FS

// Collection is a named set of levels, usually one level file.
type Collection struct {
	ID      string // file name without extension, used for progress keys
	Name    string
	Levels  []Level
	Builtin bool
}

// Loader discovers level collections in a directory. The embedded default
// collections are always available, so the game works with no files
// installed; a file with the same ID shadows the builtin one.
type Loader struct {
	Root string
}

// NewLoader creates a loader for the given directory. An empty root means
// builtin collections only.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll returns every available collection sorted by ID.
func (l *Loader) LoadAll() ([]Collection, error) {
	byID := make(map[string]Collection)

	builtin, err := builtinCollections()
	if err != nil {
		return nil, err
	}
	for _, c := range builtin {
		byID[c.ID] = c
	}

	if l.Root != "" {
		err := filepath.WalkDir(l.Root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !isLevelFile(path) {
				return nil
			}
			c, loadErr := loadFile(path)
			if loadErr != nil {
				// A bad file should not take down the whole directory.
				return nil
			}
			byID[c.ID] = c
			return nil
		})
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("levels: walking %s: %w", l.Root, err)
		}
	}

	out := make([]Collection, 0, len(byID))
	for _, c := range byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Load returns the collection with the given ID.
func (l *Loader) Load(id string) (Collection, error) {
	all, err := l.LoadAll()
	if err != nil {
		return Collection{}, err
	}
	for _, c := range all {
		if c.ID == id {
			return c, nil
		}
	}
	return Collection{}, fmt.Errorf("levels: collection not found: %s", id)
}

func isLevelFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".sok", ".xsb":
		return true
	default:
		return false
	}
}

func loadFile(path string) (Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Collection{}, fmt.Errorf("levels: reading %s: %w", path, err)
	}
	lvls, err := ParseCollection(bytes.NewReader(data))
	if err != nil {
		return Collection{}, fmt.Errorf("levels: parsing %s: %w", path, err)
	}
	id := collectionID(path)
	return Collection{ID: id, Name: id, Levels: lvls}, nil
}

func collectionID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func builtinCollections() ([]Collection, error) {
	entries, err := defaultFS.ReadDir("default")
	if err != nil {
		return nil, fmt.Errorf("levels: embedded collections: %w", err)
	}
	var out []Collection
	for _, e := range entries {
		data, err := defaultFS.ReadFile("default/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("levels: embedded %s: %w", e.Name(), err)
		}
		lvls, err := ParseCollection(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("levels: embedded %s: %w", e.Name(), err)
		}
		id := collectionID(e.Name())
		out = append(out, Collection{ID: id, Name: id, Levels: lvls, Builtin: true})
	}
	return out, nil
}
