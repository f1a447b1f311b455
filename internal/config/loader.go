package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the application configuration.
// Search order: customPath -> ~/.sokoban/config.yaml -> ./configs/sokoban.yaml -> embedded default
func Load(customPath string) (Config, error) {
	var cfg Config

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return withDefaults(cfg), nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return withDefaults(cfg), nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/sokoban.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return withDefaults(cfg), nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultConfigYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return withDefaults(cfg), nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sokoban", filename)
}

// withDefaults fills fields a partial config file left empty. Solver bounds
// are deliberately not back-filled: zero means "no limit" for both, so a
// config file that omits the solver section runs the solver unbounded.
func withDefaults(cfg Config) Config {
	def := Default()
	if cfg.Levels.Collection == "" {
		cfg.Levels.Collection = def.Levels.Collection
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = def.Storage.Path
	}
	if cfg.UI.AnimationMs <= 0 {
		cfg.UI.AnimationMs = def.UI.AnimationMs
	}
	if cfg.SSH.Host == "" {
		cfg.SSH.Host = def.SSH.Host
	}
	if cfg.SSH.Port == 0 {
		cfg.SSH.Port = def.SSH.Port
	}
	if cfg.SSH.HostKeyPath == "" {
		cfg.SSH.HostKeyPath = def.SSH.HostKeyPath
	}
	return cfg
}
