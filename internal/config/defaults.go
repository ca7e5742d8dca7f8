package config

import (
	_ "embed"
)

//go:embed defaults/preview.yaml
var defaultPreviewYAML []byte

// DefaultPreviewConfig returns the hardcoded default configuration.
func DefaultPreviewConfig() PreviewConfig {
	return PreviewConfig{
		Pursuit: PursuitConfig{
			StepMS:       150,
			FoodAttempts: 50,
			FoodColor:    "#ff6b6b",
			TailColor:    "#10b981",
		},
		Puzzle: PuzzleConfig{
			CooldownTickMS:      16,
			MoveTickMS:          50,
			GravityTickMS:       16,
			MoveCooldownMS:      120,
			RotateCooldownMS:    150,
			DefaultGravityTicks: 48,
			GravityTickRate:     60,
			MinDropMS:           80,
			SoftDropFactor:      8,
			MinSoftDropMS:       16,
		},
		Input: InputConfig{
			HoldMS: 180,
		},
		Speed: SpeedConfig{
			Preset: string(SpeedNormal),
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultPreviewYAML
}

// fillDefaults replaces zero or negative values with the defaults so a partial
// user file still yields a runnable configuration.
func fillDefaults(cfg *PreviewConfig) {
	d := DefaultPreviewConfig()
	fill := func(v *int, def int) {
		if *v <= 0 {
			*v = def
		}
	}
	fill(&cfg.Pursuit.StepMS, d.Pursuit.StepMS)
	fill(&cfg.Pursuit.FoodAttempts, d.Pursuit.FoodAttempts)
	if cfg.Pursuit.FoodColor == "" {
		cfg.Pursuit.FoodColor = d.Pursuit.FoodColor
	}
	if cfg.Pursuit.TailColor == "" {
		cfg.Pursuit.TailColor = d.Pursuit.TailColor
	}

	p, dp := &cfg.Puzzle, d.Puzzle
	fill(&p.CooldownTickMS, dp.CooldownTickMS)
	fill(&p.MoveTickMS, dp.MoveTickMS)
	fill(&p.GravityTickMS, dp.GravityTickMS)
	fill(&p.MoveCooldownMS, dp.MoveCooldownMS)
	fill(&p.RotateCooldownMS, dp.RotateCooldownMS)
	fill(&p.DefaultGravityTicks, dp.DefaultGravityTicks)
	fill(&p.GravityTickRate, dp.GravityTickRate)
	fill(&p.MinDropMS, dp.MinDropMS)
	fill(&p.SoftDropFactor, dp.SoftDropFactor)
	fill(&p.MinSoftDropMS, dp.MinSoftDropMS)

	fill(&cfg.Input.HoldMS, d.Input.HoldMS)
	if !IsKnownPreset(SpeedPreset(cfg.Speed.Preset)) {
		cfg.Speed.Preset = d.Speed.Preset
	}
}
