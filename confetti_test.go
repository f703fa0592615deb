package scrolly

import "testing"

func fixedConfetti(pool int) *Confetti {
	return NewConfetti(ConfettiConfig{
		MaxParticles: pool,
		Lifetime:     Range{Min: 1, Max: 1},
		Speed:        Range{Min: 0, Max: 0},
		Size:         Range{Min: 4, Max: 4},
		Gravity:      Vec2{Y: 100},
		Palette:      []Color{{R: 1, A: 1}},
	})
}

func TestConfettiBurstRespectsPool(t *testing.T) {
	c := fixedConfetti(10)
	c.Burst(0, 0, 6)
	c.Burst(0, 0, 6)
	if c.AliveCount() != 10 {
		t.Errorf("AliveCount = %d, want the pool size", c.AliveCount())
	}
	c.Reset()
	if c.AliveCount() != 0 {
		t.Errorf("AliveCount = %d after Reset, want 0", c.AliveCount())
	}
}

func TestConfettiSimulation(t *testing.T) {
	c := fixedConfetti(4)
	c.Burst(100, 50, 1)
	p := c.Particles()[0]
	if p.Color != (Color{R: 1, A: 1}) || p.Size != 4 {
		t.Errorf("particle = %+v, want palette color and fixed size", p)
	}

	c.Update(0.5)
	p = c.Particles()[0]
	assertNear(t, "vy", p.VY, 50)
	assertNear(t, "y", p.Y, 75)
	assertNear(t, "x", p.X, 100)
	assertNear(t, "alpha", p.Alpha, 1)

	c.Update(0.25)
	assertNear(t, "fading alpha", c.Particles()[0].Alpha, 0.5)

	c.Update(0.3)
	if c.AliveCount() != 0 {
		t.Errorf("AliveCount = %d after lifetime, want 0", c.AliveCount())
	}
}

func TestDefaultConfettiConfig(t *testing.T) {
	c := NewConfetti(DefaultConfettiConfig())
	c.Burst(400, 300, 50)
	for _, p := range c.Particles() {
		// Bursts fire upward.
		if p.VY >= 0 {
			t.Fatalf("particle VY = %v, want upward", p.VY)
		}
	}
}
