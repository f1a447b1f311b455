// Package config provides YAML-based configuration loading for the game,
// the solver and the SSH server.
package config

import "time"

// Config is the top-level application configuration.
type Config struct {
	Levels  LevelsConfig  `yaml:"levels"`
	Storage StorageConfig `yaml:"storage"`
	Solver  SolverConfig  `yaml:"solver"`
	UI      UIConfig      `yaml:"ui"`
	SSH     SSHConfig     `yaml:"ssh"`
}

// LevelsConfig controls where level collections are discovered.
type LevelsConfig struct {
	Dir        string `yaml:"dir"`        // extra collection directory, builtin collections always load
	Collection string `yaml:"collection"` // default collection ID
}

// StorageConfig controls progress persistence.
type StorageConfig struct {
	Path string `yaml:"path"` // SQLite database path, ~ expands to home
}

// SolverConfig bounds the automatic solver. Zero values disable a bound, so
// a config file without a solver section runs the solver unbounded; the
// embedded default config ships with both bounds set.
type SolverConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"` // 0 means no limit
	MaxBoxes       int `yaml:"max_boxes"`       // refuse levels with more boxes, 0 means no limit
}

// Timeout returns the solver time limit as a duration.
func (c SolverConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// UIConfig controls the terminal interface.
type UIConfig struct {
	ShowDeadCells bool `yaml:"show_dead_cells"` // shade cells a box must never enter
	AnimationMs   int  `yaml:"animation_ms"`    // delay between animated replay moves
}

// AnimationDelay returns the replay delay as a duration.
func (c UIConfig) AnimationDelay() time.Duration {
	return time.Duration(c.AnimationMs) * time.Millisecond
}

// SSHConfig configures the optional SSH server.
type SSHConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	HostKeyPath string `yaml:"host_key_path"`
}
