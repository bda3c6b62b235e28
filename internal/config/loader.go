package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the arena configuration file name.
const ConfigFile = "arena.yaml"

// Load loads the arena configuration. Missing keys keep their defaults.
// Search order: customPath -> ~/.rocket-arcade/configs/arena.yaml -> ./configs/arena.yaml -> embedded default
func Load(customPath string) (ArenaConfig, error) {
	cfg := DefaultArenaConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if loaded, ok := tryFile(userCfgPath); ok {
			return loaded, loaded.Validate()
		}
	}

	// Try local configs directory
	if loaded, ok := tryFile(filepath.Join("configs", ConfigFile)); ok {
		return loaded, loaded.Validate()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultArenaYAML, &cfg); err != nil {
		return DefaultArenaConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryFile reads an optional config file on top of the defaults.
// Unreadable or malformed files are skipped so the next source can be tried.
func tryFile(path string) (ArenaConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ArenaConfig{}, false
	}
	cfg := DefaultArenaConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ArenaConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rocket-arcade", "configs", filename)
}

// WriteDefault writes the embedded default configuration to path, creating
// parent directories. An existing file is left untouched.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	if err := os.WriteFile(path, defaultArenaYAML, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// UserConfigPath returns where the user-level arena config lives.
func UserConfigPath() string {
	return userConfigPath(ConfigFile)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *ArenaConfig, preset DifficultyPreset) {
	cfg.Difficulty.Enabled = !IsFixedPreset(preset)
	if cfg.Difficulty.Enabled {
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Player.Lives = 7
		cfg.Enemy.Straight.Speed = 180
		cfg.Bullets.HomingChance = 0.1
	case DifficultyHard:
		cfg.Player.Lives = 3
		cfg.Enemy.Straight.Speed = 280
		cfg.Bullets.FireIntervalMs *= 0.7
		cfg.Bullets.HomingChance = 0.5
	}
}
