package host

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/scrolly"
)

// Game drives a registry from Ebitengine: input, one registry update per
// tick, hover and confetti animation, and drawing. It implements
// ebiten.Game.
type Game struct {
	reg      *scrolly.Registry
	doc      *scrolly.Document
	input    *Input
	renderer *Renderer
	script   *scrolly.ScrollScript

	hovers   []*scrolly.Hover
	confetti []*scrolly.Confetti

	// OnUpdate runs after the registry each tick with the frame's dt.
	OnUpdate func(dt float64)

	cfg RunConfig
}

// NewGame applies environment overrides to cfg and wires a game around reg.
// The registry may be built before or after this call.
func NewGame(reg *scrolly.Registry, cfg RunConfig) (*Game, error) {
	if err := cfg.LoadEnv(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	doc := reg.Document()
	g := &Game{
		reg:      reg,
		doc:      doc,
		input:    NewInput(doc),
		renderer: NewRenderer(doc, nil),
		cfg:      cfg,
	}
	g.input.WheelSpeed = cfg.WheelSpeed
	g.input.KeyStep = cfg.KeyStep
	g.renderer.ClearColor = cfg.ClearColor
	g.renderer.ShowFPS = cfg.ShowFPS

	if cfg.Debug {
		scrolly.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		reg.SetDebugMode(true)
	}
	if cfg.ReducedMotion {
		reg.SetReducedMotion(true)
	}
	if cfg.ScriptPath != "" {
		data, err := os.ReadFile(cfg.ScriptPath)
		if err != nil {
			return nil, fmt.Errorf("read scroll script: %w", err)
		}
		s, err := scrolly.LoadScrollScript(data)
		if err != nil {
			return nil, err
		}
		g.SetScript(s)
	}
	if doc.Resize(float64(cfg.Width), float64(cfg.Height)) {
		reg.Invalidate()
	}
	return g, nil
}

// Input returns the game's input handler.
func (g *Game) Input() *Input { return g.input }

// Renderer returns the game's renderer.
func (g *Game) Renderer() *Renderer { return g.renderer }

// Config returns the effective configuration.
func (g *Game) Config() RunConfig { return g.cfg }

// SetScript plays s from the next tick. Pointer steps go through the
// game's input handler.
func (g *Game) SetScript(s *scrolly.ScrollScript) {
	s.AttachInjector(g.input)
	g.script = s
}

// Script returns the attached scroll script, or nil.
func (g *Game) Script() *scrolly.ScrollScript { return g.script }

// AddHover advances h every tick.
func (g *Game) AddHover(h *scrolly.Hover) {
	g.hovers = append(g.hovers, h)
}

// AddConfetti simulates and draws c every tick.
func (g *Game) AddConfetti(c *scrolly.Confetti) {
	g.confetti = append(g.confetti, c)
	g.renderer.AddConfetti(c)
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.step(1 / float64(ebiten.TPS()))
	return nil
}

// step runs one tick with an explicit dt.
func (g *Game) step(dt float64) {
	g.input.Update()
	if g.script != nil {
		g.script.Step(g.reg)
	}
	g.reg.Update(dt)
	for _, h := range g.hovers {
		h.Update(float32(dt))
	}
	for _, c := range g.confetti {
		c.Update(dt)
	}
	if g.OnUpdate != nil {
		g.OnUpdate(dt)
	}
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
}

// Layout implements ebiten.Game. A changed outside size resizes the
// document and schedules a rebuild for the next tick.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.doc.Resize(float64(outsideWidth), float64(outsideHeight)) {
		g.reg.Invalidate()
	}
	return outsideWidth, outsideHeight
}

// Run opens a resizable window and runs g until the window closes.
func Run(g *Game) error {
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetScreenClearedEveryFrame(false)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
