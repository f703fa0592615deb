package host

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/phanxgames/scrolly"
)

// RunConfig configures the window and the host loop. Fields tagged env can
// be overridden from the environment by LoadEnv; unset variables keep the
// value given in code.
type RunConfig struct {
	Title   string
	Width   int `env:"SCROLLY_WIDTH"`
	Height  int `env:"SCROLLY_HEIGHT"`
	ShowFPS bool

	// ReducedMotion engages the static presentation.
	ReducedMotion bool `env:"SCROLLY_REDUCED_MOTION"`
	// Debug enables per-frame registry stats and debug-level logging.
	Debug bool `env:"SCROLLY_DEBUG"`
	// ScriptPath names a JSON scroll script to play on start.
	ScriptPath string `env:"SCROLLY_SCRIPT"`

	// WheelSpeed is pixels scrolled per wheel notch.
	WheelSpeed float64 `env:"SCROLLY_WHEEL_SPEED"`
	// KeyStep is pixels scrolled per frame while an arrow key is held.
	KeyStep float64

	ClearColor scrolly.Color
}

const (
	defaultWidth      = 1280
	defaultHeight     = 720
	defaultWheelSpeed = 60
	defaultKeyStep    = 12
)

// LoadEnv applies environment overrides to c.
func (c *RunConfig) LoadEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// withDefaults fills zero fields.
func (c RunConfig) withDefaults() RunConfig {
	if c.Title == "" {
		c.Title = "scrolly"
	}
	if c.Width <= 0 {
		c.Width = defaultWidth
	}
	if c.Height <= 0 {
		c.Height = defaultHeight
	}
	if c.WheelSpeed <= 0 {
		c.WheelSpeed = defaultWheelSpeed
	}
	if c.KeyStep <= 0 {
		c.KeyStep = defaultKeyStep
	}
	return c
}
