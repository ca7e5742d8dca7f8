package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the preview configuration.
// Search order: customPath -> ~/.gridpreview/config.yaml -> ./configs/preview.yaml -> embedded default
func Load(customPath string) (PreviewConfig, error) {
	var cfg PreviewConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		fillDefaults(&cfg)
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				fillDefaults(&cfg)
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/preview.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			fillDefaults(&cfg)
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultPreviewYAML, &cfg); err != nil {
		return DefaultPreviewConfig(), nil // Fallback to hardcoded if embed fails
	}
	fillDefaults(&cfg)
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gridpreview", filename)
}

// ApplySpeedPreset overrides the configured speed with a named preset.
// Unknown or empty names leave the configuration unchanged.
func ApplySpeedPreset(cfg *PreviewConfig, preset SpeedPreset) {
	if IsKnownPreset(preset) {
		cfg.Speed.Preset = string(preset)
	}
}
