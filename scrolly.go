package scrolly

import (
	"errors"
	"fmt"
	"log/slog"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint.
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for positions and offsets.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left of the document, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// Range is a general-purpose min/max range.
type Range struct {
	Min, Max float64
}

// Axis selects which coordinate a region measures its scroll position on.
type Axis uint8

const (
	AxisVertical   Axis = iota // page scroll offset
	AxisHorizontal             // track offset of a Horizontal adapter
)

// Mode selects how a region drives its animation.
type Mode uint8

const (
	ModeScrub            Mode = iota // progress maps directly to animation state
	ModeToggleOnce                   // forward transition fires at most once
	ModeToggleReversible             // forward on enter, reverse on leave-back
)

// String returns the story-file spelling of the mode.
func (m Mode) String() string {
	switch m {
	case ModeScrub:
		return "scrub"
	case ModeToggleOnce:
		return "toggle-once"
	case ModeToggleReversible:
		return "toggle-reversible"
	default:
		return "unknown"
	}
}

// ParseMode parses the String form of a mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "scrub":
		return ModeScrub, nil
	case "toggle-once", "once":
		return ModeToggleOnce, nil
	case "toggle-reversible", "reversible":
		return ModeToggleReversible, nil
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

// Flow selects how a node lays out its children.
type Flow uint8

const (
	FlowBlock Flow = iota // children stacked vertically, full width
	FlowRow               // children side by side, no wrapping
	FlowWrap              // children side by side, wrapping at the available width
)

// Errors reported by the engine. They are wrapped with context; test with
// errors.Is.
var (
	ErrInvalidAnchor   = errors.New("scrolly: invalid anchor")
	ErrNegativeSpan    = errors.New("scrolly: anchor end is above start")
	ErrNoTrigger       = errors.New("scrolly: trigger not found")
	ErrNoTargets       = errors.New("scrolly: target set is empty")
	ErrNotReady        = errors.New("scrolly: geometry not ready")
	ErrDisposed        = errors.New("scrolly: registry disposed")
	ErrWrongSequence   = errors.New("scrolly: wrong token sequence")
	ErrIncomplete      = errors.New("scrolly: sequence incomplete")
	ErrSlotOutOfRange  = errors.New("scrolly: slot out of range")
	ErrAlreadyUnlocked = errors.New("scrolly: gate already unlocked")
	ErrInvalidStory    = errors.New("scrolly: invalid story")
)

// logger receives structured engine diagnostics. Discarded by default.
var logger = slog.New(slog.DiscardHandler)

// SetLogger routes engine diagnostics to l. Passing nil restores the
// discarding logger.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	logger = l
}

// Logger returns the logger currently used by the engine.
func Logger() *slog.Logger {
	return logger
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
