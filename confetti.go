package scrolly

import (
	"math"
	"math/rand/v2"
)

// Particle is one confetti piece in screen space.
type Particle struct {
	X, Y     float64
	VX, VY   float64
	Rotation float64
	Spin     float64
	Size     float64
	Alpha    float64
	Color    Color
	life     float64 // remaining lifetime in seconds
	maxLife  float64
}

// ConfettiConfig controls how bursts spawn and behave.
type ConfettiConfig struct {
	// MaxParticles is the pool size. New particles are silently dropped when full.
	MaxParticles int
	// Lifetime is the range of particle lifetimes in seconds.
	Lifetime Range
	// Speed is the range of initial speeds in pixels per second.
	Speed Range
	// Angle is the range of emission angles in radians.
	Angle Range
	// Size is the range of square sizes in pixels.
	Size Range
	// Spin is the range of angular velocities in radians per second.
	Spin Range
	// Gravity is the constant acceleration applied every frame.
	Gravity Vec2
	// Drag scales velocity down per second; 0 disables it.
	Drag float64
	// Palette colors are picked at random per particle.
	Palette []Color
}

// DefaultConfettiConfig returns the celebratory burst fired on unlock.
func DefaultConfettiConfig() ConfettiConfig {
	return ConfettiConfig{
		MaxParticles: 240,
		Lifetime:     Range{Min: 1.4, Max: 2.6},
		Speed:        Range{Min: 220, Max: 520},
		Angle:        Range{Min: -math.Pi * 0.95, Max: -math.Pi * 0.05},
		Size:         Range{Min: 4, Max: 9},
		Spin:         Range{Min: -8, Max: 8},
		Gravity:      Vec2{Y: 600},
		Drag:         0.6,
		Palette: []Color{
			{R: 1, G: 0.78, B: 0.87, A: 1},
			{R: 0.74, G: 0.87, B: 1, A: 1},
			{R: 1, G: 0.95, B: 0.7, A: 1},
			{R: 0.8, G: 1, B: 0.85, A: 1},
		},
	}
}

// Confetti manages a fixed pool of particles with CPU simulation.
type Confetti struct {
	config    ConfettiConfig
	particles []Particle
	alive     int
}

// NewConfetti creates a confetti system with a preallocated pool.
func NewConfetti(cfg ConfettiConfig) *Confetti {
	n := cfg.MaxParticles
	if n <= 0 {
		n = 128
	}
	return &Confetti{config: cfg, particles: make([]Particle, n)}
}

// Burst spawns up to count particles at (x, y).
func (c *Confetti) Burst(x, y float64, count int) {
	for i := 0; i < count && c.alive < len(c.particles); i++ {
		c.spawn(x, y)
	}
}

// AliveCount returns the number of live particles.
func (c *Confetti) AliveCount() int {
	return c.alive
}

// Particles returns the live particles. The slice is reused between frames.
func (c *Confetti) Particles() []Particle {
	return c.particles[:c.alive]
}

// Reset kills every particle.
func (c *Confetti) Reset() {
	c.alive = 0
}

// Update advances the simulation by dt seconds.
func (c *Confetti) Update(dt float64) {
	gx := c.config.Gravity.X * dt
	gy := c.config.Gravity.Y * dt
	drag := 1.0
	if c.config.Drag > 0 {
		drag = math.Max(0, 1-c.config.Drag*dt)
	}

	// Update existing particles, swap-remove dead ones.
	i := 0
	for i < c.alive {
		p := &c.particles[i]
		p.life -= dt
		if p.life <= 0 {
			c.alive--
			c.particles[i] = c.particles[c.alive]
			continue
		}
		p.VX = (p.VX + gx) * drag
		p.VY = (p.VY + gy) * drag
		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.Rotation += p.Spin * dt
		p.Alpha = math.Min(1, 2*p.life/p.maxLife)
		i++
	}
}

func (c *Confetti) spawn(x, y float64) {
	p := &c.particles[c.alive]
	angle := c.config.Angle.Random()
	speed := c.config.Speed.Random()
	*p = Particle{
		X:     x,
		Y:     y,
		VX:    math.Cos(angle) * speed,
		VY:    math.Sin(angle) * speed,
		Spin:  c.config.Spin.Random(),
		Size:  c.config.Size.Random(),
		Alpha: 1,
		Color: ColorWhite,
	}
	if n := len(c.config.Palette); n > 0 {
		p.Color = c.config.Palette[rand.IntN(n)]
	}
	p.life = c.config.Lifetime.Random()
	if p.life <= 0 {
		p.life = 1.0
	}
	p.maxLife = p.life
	c.alive++
}

// Random returns a random float64 in [Min, Max].
func (r Range) Random() float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rand.Float64()*(r.Max-r.Min)
}
