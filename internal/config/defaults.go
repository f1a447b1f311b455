package config

import (
	_ "embed"
)

//go:embed defaults/sokoban.yaml
var defaultConfigYAML []byte

// Default returns the default configuration.
func Default() Config {
	return Config{
		Levels: LevelsConfig{
			Dir:        "",
			Collection: "microban",
		},
		Storage: StorageConfig{
			Path: "~/.sokoban/progress.db",
		},
		Solver: SolverConfig{
			TimeoutSeconds: 30,
			MaxBoxes:       5,
		},
		UI: UIConfig{
			ShowDeadCells: false,
			AnimationMs:   60,
		},
		SSH: SSHConfig{
			Host:        "0.0.0.0",
			Port:        2222,
			HostKeyPath: ".ssh/sokoban_host_key",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultConfigYAML
}
