// Package config provides YAML-based tunables for the preview simulations and
// speed preset handling.
package config

import (
	"time"
)

// PreviewConfig contains every tunable of a preview run.
type PreviewConfig struct {
	Pursuit PursuitConfig `yaml:"pursuit"`
	Puzzle  PuzzleConfig  `yaml:"puzzle"`
	Input   InputConfig   `yaml:"input"`
	Speed   SpeedConfig   `yaml:"speed"`
}

// PursuitConfig tunes the snake-like simulation.
type PursuitConfig struct {
	StepMS       int    `yaml:"step_ms"`
	FoodAttempts int    `yaml:"food_attempts"`
	FoodColor    string `yaml:"food_color"`
	TailColor    string `yaml:"tail_color"`
}

// PuzzleConfig tunes the falling-block simulation.
type PuzzleConfig struct {
	CooldownTickMS      int `yaml:"cooldown_tick_ms"`
	MoveTickMS          int `yaml:"move_tick_ms"`
	GravityTickMS       int `yaml:"gravity_tick_ms"`
	MoveCooldownMS      int `yaml:"move_cooldown_ms"`
	RotateCooldownMS    int `yaml:"rotate_cooldown_ms"`
	DefaultGravityTicks int `yaml:"default_gravity_ticks"`
	GravityTickRate     int `yaml:"gravity_tick_rate"`
	MinDropMS           int `yaml:"min_drop_ms"`
	SoftDropFactor      int `yaml:"soft_drop_factor"`
	MinSoftDropMS       int `yaml:"min_soft_drop_ms"`
}

// InputConfig tunes the key-edge translation.
type InputConfig struct {
	HoldMS int `yaml:"hold_ms"`
}

// SpeedConfig selects a speed preset.
type SpeedConfig struct {
	Preset string `yaml:"preset"` // "slow", "normal" or "fast"
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

// Step returns the pursuit tick period adjusted for the speed preset.
func (c PreviewConfig) Step() time.Duration {
	return scaled(ms(c.Pursuit.StepMS), SpeedPreset(c.Speed.Preset))
}

// DropInterval converts a gravityTicks parameter into the gravity interval,
// adjusted for the speed preset and floored at MinDropMS.
func (c PreviewConfig) DropInterval(gravityTicks int) time.Duration {
	p := c.Puzzle
	if gravityTicks <= 0 {
		gravityTicks = p.DefaultGravityTicks
	}
	rate := p.GravityTickRate
	if rate <= 0 {
		rate = 60
	}
	d := time.Duration(gravityTicks) * time.Second / time.Duration(rate)
	d = d.Truncate(time.Millisecond)
	return max(ms(p.MinDropMS), scaled(d, SpeedPreset(c.Speed.Preset)))
}

// SoftDropInterval accelerates a drop interval while soft drop is held.
func (c PreviewConfig) SoftDropInterval(drop time.Duration) time.Duration {
	factor := c.Puzzle.SoftDropFactor
	if factor <= 0 {
		factor = 1
	}
	return max(ms(c.Puzzle.MinSoftDropMS), (drop / time.Duration(factor)).Truncate(time.Millisecond))
}

// Hold returns the input hold window.
func (c PreviewConfig) Hold() time.Duration {
	return ms(c.Input.HoldMS)
}

// SpeedPreset represents a named speed level.
type SpeedPreset string

const (
	SpeedSlow   SpeedPreset = "slow"
	SpeedNormal SpeedPreset = "normal"
	SpeedFast   SpeedPreset = "fast"
)

// MultiplierForPreset returns how much faster than normal a preset runs.
func MultiplierForPreset(preset SpeedPreset) float64 {
	switch preset {
	case SpeedSlow:
		return 0.5
	case SpeedFast:
		return 1.5
	default:
		return 1.0
	}
}

// IsKnownPreset reports whether preset names a speed level.
func IsKnownPreset(preset SpeedPreset) bool {
	switch preset {
	case SpeedSlow, SpeedNormal, SpeedFast:
		return true
	}
	return false
}

func scaled(d time.Duration, preset SpeedPreset) time.Duration {
	return time.Duration(float64(d) / MultiplierForPreset(preset)).Truncate(time.Millisecond)
}
