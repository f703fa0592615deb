package host

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/phanxgames/scrolly"
	"golang.org/x/image/font/basicfont"
)

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// Font adapts an Ebitengine text/v2 face to scrolly.Font so text nodes are
// measured with the face they are drawn with.
type Font struct {
	face text.Face
	lh   float64 // cached line height
}

// NewFont wraps face.
func NewFont(face text.Face) *Font {
	m := face.Metrics()
	return &Font{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}
}

// DefaultFont returns the built-in 7x13 bitmap face. It needs no assets.
func DefaultFont() *Font {
	return NewFont(text.NewGoXFace(basicfont.Face7x13))
}

// MeasureString returns the width and height of the rendered text.
func (f *Font) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *Font) LineHeight() float64 {
	return f.lh
}

// Face returns the underlying face.
func (f *Font) Face() text.Face {
	return f.face
}

// Renderer draws a document and any confetti on top of it.
type Renderer struct {
	doc      *scrolly.Document
	font     *Font
	confetti []*scrolly.Confetti

	ClearColor scrolly.Color
	ShowFPS    bool

	drawn   int
	skipped int

	painted    bool
	lastScroll float64
	lastW      float64
	lastH      float64
	lastGen    uint64
	lastAlive  int
}

// NewRenderer creates a renderer for doc using font for text nodes.
func NewRenderer(doc *scrolly.Document, font *Font) *Renderer {
	if font == nil {
		font = DefaultFont()
	}
	return &Renderer{doc: doc, font: font}
}

// AddConfetti draws c above the document every frame.
func (r *Renderer) AddConfetti(c *scrolly.Confetti) {
	r.confetti = append(r.confetti, c)
}

// Drawn returns how many nodes the last painted frame drew.
func (r *Renderer) Drawn() int { return r.drawn }

// Skipped returns how many Draw calls kept the previous frame.
func (r *Renderer) Skipped() int { return r.skipped }

// NeedsRedraw reports whether the screen differs from the last painted
// frame: a node changed, the document was laid out again, the viewport
// scrolled or resized, or confetti is (or just stopped) moving. Code that
// writes node fields directly must call MarkDirty for the change to show.
func (r *Renderer) NeedsRedraw() bool {
	if !r.painted || r.ShowFPS {
		return true
	}
	vp := r.doc.Viewport()
	if vp.ScrollY != r.lastScroll || vp.Width != r.lastW || vp.Height != r.lastH {
		return true
	}
	if r.doc.Generation() != r.lastGen {
		return true
	}
	if alive := r.confettiAlive(); alive > 0 || r.lastAlive > 0 {
		return true
	}
	return r.doc.Dirty()
}

func (r *Renderer) confettiAlive() int {
	n := 0
	for _, c := range r.confetti {
		n += c.AliveCount()
	}
	return n
}

// markPainted records the state a painted frame showed.
func (r *Renderer) markPainted() {
	vp := r.doc.Viewport()
	r.painted = true
	r.lastScroll = vp.ScrollY
	r.lastW, r.lastH = vp.Width, vp.Height
	r.lastGen = r.doc.Generation()
	r.lastAlive = r.confettiAlive()
	r.doc.ClearDirty()
}

// Draw paints the visible part of the document. When nothing changed since
// the last painted frame it returns early; Run keeps the screen between
// frames so the previous frame stays visible.
func (r *Renderer) Draw(screen *ebiten.Image) {
	if !r.NeedsRedraw() {
		r.skipped++
		return
	}
	defer r.markPainted()
	if r.ClearColor.A > 0 {
		screen.Fill(toRGBA(r.ClearColor))
	}
	r.drawn = 0
	r.drawNode(screen, r.doc.Root(), 1)
	for _, c := range r.confetti {
		r.drawConfetti(screen, c)
	}
	if r.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (r *Renderer) drawNode(screen *ebiten.Image, n *scrolly.Node, parentAlpha float64) {
	if !n.Visible {
		return
	}
	alpha := parentAlpha * n.Alpha
	if alpha <= 0 {
		return
	}
	rect := r.doc.ScreenRect(n)
	vp := r.doc.Viewport()
	onScreen := rect.Y < vp.Height && rect.Y+rect.Height > 0 &&
		rect.X < vp.Width && rect.X+rect.Width > 0

	if onScreen {
		// Blur softens the node rather than filtering it.
		a := alpha / (1 + n.Blur/8)
		switch {
		case n.Text != "":
			r.drawText(screen, n, rect, a)
			r.drawn++
		case n.Fill && rect.Width > 0 && rect.Height > 0:
			r.drawBox(screen, n, rect, a)
			r.drawn++
		}
	}
	for _, c := range n.Children() {
		r.drawNode(screen, c, alpha)
	}
}

// nodeGeoM scales and rotates a w x h quad about its center and places it
// at rect.
func nodeGeoM(n *scrolly.Node, rect scrolly.Rect, w, h float64) ebiten.GeoM {
	var m ebiten.GeoM
	m.Translate(-w/2, -h/2)
	m.Scale(n.ScaleX, n.ScaleY)
	m.Rotate(n.Rotation)
	m.Translate(rect.CenterX(), rect.CenterY())
	return m
}

func nodeColorScale(n *scrolly.Node, alpha float64) ebiten.ColorScale {
	var cs ebiten.ColorScale
	b := n.Brightness
	cs.Scale(float32(n.Color.R*b), float32(n.Color.G*b), float32(n.Color.B*b), 1)
	cs.ScaleAlpha(float32(n.Color.A * alpha))
	return cs
}

func (r *Renderer) drawBox(screen *ebiten.Image, n *scrolly.Node, rect scrolly.Rect, alpha float64) {
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(rect.Width, rect.Height)
	op.GeoM.Concat(nodeGeoM(n, rect, rect.Width, rect.Height))
	op.ColorScale = nodeColorScale(n, alpha)
	screen.DrawImage(ensureWhitePixel(), &op)
}

func (r *Renderer) drawText(screen *ebiten.Image, n *scrolly.Node, rect scrolly.Rect, alpha float64) {
	w, h := r.font.MeasureString(n.Text)
	op := &text.DrawOptions{}
	op.LineSpacing = r.font.LineHeight()
	op.GeoM = nodeGeoM(n, scrolly.Rect{X: rect.X, Y: rect.Y, Width: w, Height: h}, w, h)
	op.ColorScale = nodeColorScale(n, alpha)
	text.Draw(screen, n.Text, r.font.face, op)
}

func (r *Renderer) drawConfetti(screen *ebiten.Image, c *scrolly.Confetti) {
	px := ensureWhitePixel()
	for _, p := range c.Particles() {
		var op ebiten.DrawImageOptions
		op.GeoM.Translate(-0.5, -0.5)
		op.GeoM.Scale(p.Size, p.Size*0.6)
		op.GeoM.Rotate(p.Rotation)
		op.GeoM.Translate(p.X, p.Y)
		op.ColorScale.Scale(float32(p.Color.R), float32(p.Color.G), float32(p.Color.B), 1)
		op.ColorScale.ScaleAlpha(float32(p.Color.A * p.Alpha))
		screen.DrawImage(px, &op)
	}
}

func toRGBA(c scrolly.Color) color.RGBA {
	return color.RGBA{
		R: uint8(c.R*c.A*255 + 0.5),
		G: uint8(c.G*c.A*255 + 0.5),
		B: uint8(c.B*c.A*255 + 0.5),
		A: uint8(c.A*255 + 0.5),
	}
}
