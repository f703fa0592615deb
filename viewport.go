package scrolly

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// LockOwner identifies who holds a scroll lock. The viewport stays locked
// while any owner holds one.
type LockOwner uint8

const (
	// LockEngine is held by the host or the registry, and released by the
	// static fallback.
	LockEngine LockOwner = 1 << iota
	// LockGate is held by a Gate until the reader unlocks it.
	LockGate
)

// Viewport is the visible window onto the document. ScrollY is the
// process-wide scroll state every region reads; it changes only when the
// registry samples it once per frame.
type Viewport struct {
	// ScrollY is the scroll offset applied this frame.
	ScrollY float64
	// Width and Height are the visible size in pixels.
	Width, Height float64

	locks LockOwner

	contentHeight float64

	pending    float64
	hasPending bool

	scrollTween *gween.Tween
}

func newViewport(w, h float64) *Viewport {
	return &Viewport{Width: w, Height: h}
}

// Lock makes the viewport ignore scroll input until owner unlocks it.
func (v *Viewport) Lock(owner LockOwner) {
	v.locks |= owner
}

// Unlock releases owner's lock. Locks held by other owners stay.
func (v *Viewport) Unlock(owner LockOwner) {
	v.locks &^= owner
}

// Locked reports whether any owner holds a lock.
func (v *Viewport) Locked() bool {
	return v.locks != 0
}

// LockedBy reports whether owner holds a lock.
func (v *Viewport) LockedBy(owner LockOwner) bool {
	return v.locks&owner != 0
}

// MaxScroll returns the largest valid scroll offset.
func (v *Viewport) MaxScroll() float64 {
	return math.Max(0, v.contentHeight-v.Height)
}

// SetScroll records a scroll offset to apply on the next sample. Multiple
// calls within a frame coalesce; only the last one is applied.
func (v *Viewport) SetScroll(y float64) {
	if v.Locked() {
		return
	}
	v.scrollTween = nil
	v.pending = y
	v.hasPending = true
}

// ScrollBy records a relative scroll from the most recent requested offset.
func (v *Viewport) ScrollBy(dy float64) {
	base := v.ScrollY
	if v.hasPending {
		base = v.pending
	}
	v.SetScroll(base + dy)
}

// ScrollTo animates the scroll offset to y over duration seconds. A later
// SetScroll cancels the animation.
func (v *Viewport) ScrollTo(y float64, duration float32, easeFn ease.TweenFunc) {
	if v.Locked() {
		return
	}
	if easeFn == nil {
		easeFn = ease.InOutQuad
	}
	v.hasPending = false
	v.scrollTween = gween.New(float32(v.ScrollY), float32(v.clamp(y)), duration, easeFn)
}

// Scrolling reports whether a ScrollTo animation is in flight.
func (v *Viewport) Scrolling() bool {
	return v.scrollTween != nil
}

// sample applies pending input or the scroll animation and clamps the
// result. Called once per frame by the registry.
func (v *Viewport) sample(dt float64) float64 {
	switch {
	case v.hasPending:
		v.ScrollY = v.pending
		v.hasPending = false
	case v.scrollTween != nil:
		val, done := v.scrollTween.Update(float32(dt))
		v.ScrollY = float64(val)
		if done {
			v.scrollTween = nil
		}
	}
	v.ScrollY = v.clamp(v.ScrollY)
	return v.ScrollY
}

func (v *Viewport) clamp(y float64) float64 {
	return math.Max(0, math.Min(y, v.MaxScroll()))
}

func (v *Viewport) resize(w, h float64) bool {
	if v.Width == w && v.Height == h {
		return false
	}
	v.Width, v.Height = w, h
	return true
}

func (v *Viewport) setContentHeight(h float64) {
	v.contentHeight = h
}

// ready reports whether the viewport has a usable size.
func (v *Viewport) ready() bool {
	return v.Width > 0 && v.Height > 0
}
