package config

import (
	_ "embed"
)

//go:embed defaults/portfolio.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultYAML...)
}

// Default returns the hardcoded configuration. It mirrors the embedded
// defaults/portfolio.yaml and is used when that file cannot be parsed.
func Default() Config {
	return Config{
		Physics: PhysicsConfig{
			MoveSpeed:        0.4,
			Acceleration:     0.003,
			Deceleration:     0.004,
			JumpPower:        -22,
			Gravity:          1.5,
			MaxJumpHeight:    130,
			CharacterWidth:   96,
			CharacterHeight:  96,
			HitTolerance:     10,
			LandTolerance:    5,
			GroundBandAbove:  15,
			GroundBandBelow:  10,
			BounceVelocity:   2,
			RestoreBuffer:    50,
			JumpCooldownMS:   300,
			StallThresholdMS: 100,
			SingleActiveBox:  true,
		},
		World: WorldConfig{
			GroundFraction:     0.85,
			BoxSize:            80,
			Strides:            []float64{0.1, 0.4, 0.7, 1.0, 1.3, 1.6},
			NarrowWidth:        768,
			NarrowSpacing:      0.15,
			QuestionLift:       260,
			BrickLift:          240,
			QuestionLiftNarrow: 220,
			BrickLiftNarrow:    200,
			EndMargin:          50,
			ScreenX:            150,
			CellWidth:          8,
			CellHeight:         16,
		},
		Input: InputConfig{
			HoldTimeoutMS:     250,
			TouchZoneFraction: 0.3,
			TouchTopFraction:  0.3,
			SwipeMinDistance:  50,
			SwipeMaxMS:        300,
			SwipeMaxDrift:     100,
		},
		Chat: ChatConfig{
			Endpoint:       "https://api.openai.com/v1/chat/completions",
			Model:          "gpt-4o-mini",
			Temperature:    0.7,
			MaxTokens:      500,
			TimeoutSeconds: 30,
			AssistantName:  "Mario",
		},
		Server: ServerConfig{
			SSHAddress:         ":23234",
			IdleTimeoutMinutes: 30,
			HTTPAddress:        ":8080",
			AssetsDir:          "./assets",
			TickRate:           60,
		},
	}
}
