package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory for config, scores and logs.
const AppDir = ".skyrunner"

// LoadRunner loads the runner configuration.
// Search order: customPath -> ~/.skyrunner/configs/runner.yaml -> ./configs/runner.yaml -> embedded default
// Every source is decoded over DefaultRunnerConfig, so a partial file only
// overrides what it names.
func LoadRunner(customPath string) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("runner.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if parsed, ok := decode(data); ok {
				return parsed, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "runner.yaml")); err == nil {
		if parsed, ok := decode(data); ok {
			return parsed, nil
		}
	}

	// Use embedded default YAML
	if parsed, ok := decode(defaultRunnerYAML); ok {
		return parsed, nil
	}
	return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed fails
}

// decode parses data over the defaults and reports whether the result is usable.
func decode(data []byte) (RunnerConfig, bool) {
	cfg := DefaultRunnerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	return cfg, cfg.Validate() == nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AppDir, "configs", filename)
}

// DataPath returns ~/.skyrunner/<name>, falling back to the working directory.
func DataPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, AppDir, name)
}
