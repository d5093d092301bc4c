// Package config provides YAML-based configuration for the portfolio engine:
// physics tuning, world geometry, input timing, the assistant endpoint and
// the servers that host sessions.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config is the complete runtime configuration.
type Config struct {
	Physics PhysicsConfig `yaml:"physics" json:"physics"`
	World   WorldConfig   `yaml:"world" json:"world"`
	Input   InputConfig   `yaml:"input" json:"input"`
	Chat    ChatConfig    `yaml:"chat" json:"chat"`
	Server  ServerConfig  `yaml:"server" json:"server"`
	Storage StorageConfig `yaml:"storage" json:"storage"`
}

// PhysicsConfig tunes the character simulation. Horizontal values are per
// millisecond; vertical values are applied once per frame.
type PhysicsConfig struct {
	MoveSpeed        float64 `yaml:"move_speed" json:"move_speed" jsonschema:"description=Top horizontal speed in px/ms"`
	Acceleration     float64 `yaml:"acceleration" json:"acceleration" jsonschema:"description=px/ms² while a direction is held"`
	Deceleration     float64 `yaml:"deceleration" json:"deceleration" jsonschema:"description=px/ms² while no direction is held"`
	JumpPower        float64 `yaml:"jump_power" json:"jump_power" jsonschema:"description=Vertical velocity set by a jump (negative is up)"`
	Gravity          float64 `yaml:"gravity" json:"gravity" jsonschema:"description=Added to vertical velocity every airborne frame"`
	MaxJumpHeight    float64 `yaml:"max_jump_height" json:"max_jump_height"`
	CharacterWidth   float64 `yaml:"character_width" json:"character_width"`
	CharacterHeight  float64 `yaml:"character_height" json:"character_height"`
	HitTolerance     float64 `yaml:"hit_tolerance" json:"hit_tolerance"`
	LandTolerance    float64 `yaml:"land_tolerance" json:"land_tolerance"`
	GroundBandAbove  float64 `yaml:"ground_band_above" json:"ground_band_above"`
	GroundBandBelow  float64 `yaml:"ground_band_below" json:"ground_band_below"`
	BounceVelocity   float64 `yaml:"bounce_velocity" json:"bounce_velocity"`
	RestoreBuffer    float64 `yaml:"restore_buffer" json:"restore_buffer"`
	JumpCooldownMS   int     `yaml:"jump_cooldown_ms" json:"jump_cooldown_ms"`
	StallThresholdMS int     `yaml:"stall_threshold_ms" json:"stall_threshold_ms"`
	SingleActiveBox  bool    `yaml:"single_active_box" json:"single_active_box"`
}

// JumpCooldown returns the minimum time between two accepted jumps.
func (p PhysicsConfig) JumpCooldown() time.Duration {
	return time.Duration(p.JumpCooldownMS) * time.Millisecond
}

// StallThreshold returns the frame gap above which a step is skipped.
func (p PhysicsConfig) StallThreshold() time.Duration {
	return time.Duration(p.StallThresholdMS) * time.Millisecond
}

// WorldConfig describes how the world is laid out for a viewport.
// Distances are virtual pixels.
type WorldConfig struct {
	GroundFraction     float64   `yaml:"ground_fraction" json:"ground_fraction"`
	BoxSize            float64   `yaml:"box_size" json:"box_size"`
	Strides            []float64 `yaml:"strides" json:"strides" jsonschema:"minItems=6,maxItems=6"`
	NarrowWidth        float64   `yaml:"narrow_width" json:"narrow_width"`
	NarrowSpacing      float64   `yaml:"narrow_spacing" json:"narrow_spacing"`
	QuestionLift       float64   `yaml:"question_lift" json:"question_lift"`
	BrickLift          float64   `yaml:"brick_lift" json:"brick_lift"`
	QuestionLiftNarrow float64   `yaml:"question_lift_narrow" json:"question_lift_narrow"`
	BrickLiftNarrow    float64   `yaml:"brick_lift_narrow" json:"brick_lift_narrow"`
	EndMargin          float64   `yaml:"end_margin" json:"end_margin"`
	ScreenX            float64   `yaml:"screen_x" json:"screen_x" jsonschema:"description=Fixed on-screen x of the character"`
	CellWidth          float64   `yaml:"cell_width" json:"cell_width" jsonschema:"description=Pixels per terminal column"`
	CellHeight         float64   `yaml:"cell_height" json:"cell_height" jsonschema:"description=Pixels per terminal row"`
}

// InputConfig tunes the input normalizer.
type InputConfig struct {
	HoldTimeoutMS     int     `yaml:"hold_timeout_ms" json:"hold_timeout_ms" jsonschema:"description=How long a key without release events stays held"`
	TouchZoneFraction float64 `yaml:"touch_zone_fraction" json:"touch_zone_fraction"`
	TouchTopFraction  float64 `yaml:"touch_top_fraction" json:"touch_top_fraction"`
	SwipeMinDistance  float64 `yaml:"swipe_min_distance" json:"swipe_min_distance"`
	SwipeMaxMS        int     `yaml:"swipe_max_ms" json:"swipe_max_ms"`
	SwipeMaxDrift     float64 `yaml:"swipe_max_drift" json:"swipe_max_drift"`
}

// HoldTimeout returns the key hold timeout.
func (c InputConfig) HoldTimeout() time.Duration {
	return time.Duration(c.HoldTimeoutMS) * time.Millisecond
}

// SwipeMaxDuration returns the longest gesture still counted as a swipe.
func (c InputConfig) SwipeMaxDuration() time.Duration {
	return time.Duration(c.SwipeMaxMS) * time.Millisecond
}

// ChatConfig configures the assistant's completion endpoint.
type ChatConfig struct {
	Endpoint       string  `yaml:"endpoint" json:"endpoint"`
	Model          string  `yaml:"model" json:"model"`
	Temperature    float64 `yaml:"temperature" json:"temperature"`
	MaxTokens      int     `yaml:"max_tokens" json:"max_tokens"`
	TimeoutSeconds int     `yaml:"timeout_seconds" json:"timeout_seconds"`
	AssistantName  string  `yaml:"assistant_name" json:"assistant_name"`

	// APIKey is never read from or written to config files.
	APIKey string `yaml:"-" json:"-"`
}

// Timeout returns the request timeout.
func (c ChatConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ServerConfig configures the SSH and HTTP hosts.
type ServerConfig struct {
	SSHAddress         string `yaml:"ssh_address" json:"ssh_address"`
	HostKeyPath        string `yaml:"host_key_path" json:"host_key_path"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes" json:"idle_timeout_minutes"`
	HTTPAddress        string `yaml:"http_address" json:"http_address"`
	AssetsDir          string `yaml:"assets_dir" json:"assets_dir"`
	TickRate           int    `yaml:"tick_rate" json:"tick_rate"`
}

// StorageConfig configures optional run history.
type StorageConfig struct {
	// DBPath enables run history when non-empty.
	DBPath string `yaml:"db_path" json:"db_path"`
}

// BoxCount is the number of boxes the world lays out.
const BoxCount = 6

// Validate reports every setting that would break the simulation.
func (c Config) Validate() error {
	var errs []error
	p, w := c.Physics, c.World

	if p.MoveSpeed <= 0 {
		errs = append(errs, fmt.Errorf("physics.move_speed must be positive, got %v", p.MoveSpeed))
	}
	if p.Acceleration <= 0 || p.Deceleration <= 0 {
		errs = append(errs, errors.New("physics.acceleration and physics.deceleration must be positive"))
	}
	if p.JumpPower >= 0 {
		errs = append(errs, fmt.Errorf("physics.jump_power must be negative (up), got %v", p.JumpPower))
	}
	if p.Gravity <= 0 {
		errs = append(errs, fmt.Errorf("physics.gravity must be positive, got %v", p.Gravity))
	}
	if p.CharacterWidth <= 0 || p.CharacterHeight <= 0 {
		errs = append(errs, errors.New("physics.character_width and physics.character_height must be positive"))
	}
	if p.StallThresholdMS <= 0 {
		errs = append(errs, errors.New("physics.stall_threshold_ms must be positive"))
	}
	if w.GroundFraction <= 0 || w.GroundFraction > 1 {
		errs = append(errs, fmt.Errorf("world.ground_fraction must be in (0, 1], got %v", w.GroundFraction))
	}
	if w.BoxSize <= 0 {
		errs = append(errs, fmt.Errorf("world.box_size must be positive, got %v", w.BoxSize))
	}
	if len(w.Strides) != BoxCount {
		errs = append(errs, fmt.Errorf("world.strides must have %d entries, got %d", BoxCount, len(w.Strides)))
	} else {
		for i := 1; i < len(w.Strides); i++ {
			if w.Strides[i] <= w.Strides[i-1] {
				errs = append(errs, fmt.Errorf("world.strides must increase, entry %d is %v after %v", i, w.Strides[i], w.Strides[i-1]))
			}
		}
	}
	if w.CellWidth <= 0 || w.CellHeight <= 0 {
		errs = append(errs, errors.New("world.cell_width and world.cell_height must be positive"))
	}
	if c.Chat.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("chat.max_tokens must be positive, got %d", c.Chat.MaxTokens))
	}

	return errors.Join(errs...)
}
