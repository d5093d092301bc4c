package core

// RuntimeConfig describes the surface a session renders onto.
type RuntimeConfig struct {
	ScreenW  int // Screen width in cells
	ScreenH  int // Screen height in cells
	TickRate int // Simulation frames per second (default 60)
}

// DefaultConfig returns a RuntimeConfig for a classic 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// Normalize fills zero or negative fields with defaults.
func (c RuntimeConfig) Normalize() RuntimeConfig {
	d := DefaultConfig()
	if c.ScreenW <= 0 {
		c.ScreenW = d.ScreenW
	}
	if c.ScreenH <= 0 {
		c.ScreenH = d.ScreenH
	}
	if c.TickRate <= 0 {
		c.TickRate = d.TickRate
	}
	return c
}
