package scrolly

import (
	"fmt"
	"math"
)

// OverflowEpsilon is the smallest horizontal overflow, in pixels, that
// engages pinning. Anything at or below it leaves the track static.
const OverflowEpsilon = 1.0

// Item opacity falloff defaults: items fade toward MinOpacity as their center
// moves FalloffWidth viewport-widths from the viewport center.
const (
	defaultMinOpacity   = 0.4
	defaultFalloffWidth = 0.6
)

// HorizontalConfig declares a pinned horizontal sub-scroll section.
type HorizontalConfig struct {
	ID string

	// Wrapper is pinned while the track scrolls; Track is the row that
	// translates. Items are the track's children that nested regions and
	// the opacity falloff act on.
	Wrapper     string
	WrapperNode *Node
	Track       string
	TrackNode   *Node
	Items       string
	ItemNodes   []*Node

	// Smoothing is the lag in seconds between scroll and track position.
	Smoothing float64

	// FadeItems enables the distance-from-center opacity falloff.
	FadeItems    bool
	MinOpacity   float64
	FalloffWidth float64

	OnToggle func(h *Horizontal, active bool)
}

// Horizontal remaps a pinned vertical scroll span onto a horizontal track
// offset. Its Offset is the coordinate nested item regions measure against.
type Horizontal struct {
	id  string
	cfg HorizontalConfig
	doc *Document

	wrapper *Node
	track   *Node
	items   []*Node
	itemA   []float64

	overflow float64
	enabled  bool
	ready    bool
	bounds   Bounds

	progress float64
	shown    float64
	active   bool

	err error
}

func newHorizontal(cfg HorizontalConfig, doc *Document) *Horizontal {
	h := &Horizontal{id: cfg.ID, cfg: cfg, doc: doc}
	if h.cfg.MinOpacity == 0 {
		h.cfg.MinOpacity = defaultMinOpacity
	}
	if h.cfg.FalloffWidth == 0 {
		h.cfg.FalloffWidth = defaultFalloffWidth
	}

	h.wrapper = cfg.WrapperNode
	if h.wrapper == nil {
		h.wrapper = doc.QueryOne(cfg.Wrapper)
	}
	h.track = cfg.TrackNode
	if h.track == nil {
		h.track = doc.QueryOne(cfg.Track)
	}
	if h.wrapper == nil || h.track == nil {
		h.err = fmt.Errorf("%w: wrapper %q track %q", ErrNoTrigger, cfg.Wrapper, cfg.Track)
		logger.Error("horizontal scroll disabled", "id", h.id, "err", h.err)
		return h
	}

	h.items = cfg.ItemNodes
	if len(h.items) == 0 && cfg.Items != "" {
		h.items, _ = doc.QueryWithin(h.track, cfg.Items)
	}
	if len(h.items) == 0 {
		h.items = h.track.Children()
	}
	h.itemA = make([]float64, len(h.items))
	for i, it := range h.items {
		h.itemA[i] = it.Alpha
	}
	return h
}

// ID returns the adapter's identifier.
func (h *Horizontal) ID() string { return h.id }

// Err returns the configuration error that disabled the adapter, if any.
func (h *Horizontal) Err() error { return h.err }

// Overflow returns the track's horizontal overflow from the last refresh.
func (h *Horizontal) Overflow() float64 { return h.overflow }

// Distance returns the pinned scroll distance, equal to Overflow when
// pinning is engaged and 0 otherwise.
func (h *Horizontal) Distance() float64 {
	if !h.enabled {
		return 0
	}
	return h.overflow
}

// Enabled reports whether the content overflows and pinning is engaged.
func (h *Horizontal) Enabled() bool { return h.enabled && h.ready }

// Bounds returns the pinned scroll span.
func (h *Horizontal) Bounds() Bounds { return h.bounds }

// Progress returns the raw pin progress from the last update.
func (h *Horizontal) Progress() float64 { return h.progress }

// Offset returns the current horizontal scroll position of the track:
// 0 at rest, Overflow when fully traversed.
func (h *Horizontal) Offset() float64 {
	if h.track == nil {
		return 0
	}
	return -h.track.X
}

// Items returns the track items.
func (h *Horizontal) Items() []*Node { return h.items }

// Wrapper returns the pinned node.
func (h *Horizontal) Wrapper() *Node { return h.wrapper }

// Track returns the translated row.
func (h *Horizontal) Track() *Node { return h.track }

// measure reads the overflow from the current layout and reserves the pin
// spacing. The registry re-runs layout afterward.
func (h *Horizontal) measure() {
	if h.err != nil {
		return
	}
	if h.wrapper.Box.Width <= 0 {
		h.ready = false
		h.wrapper.PinSpacing = 0
		return
	}
	h.ready = true
	h.overflow = math.Max(0, h.track.Box.Width-h.wrapper.Box.Width)
	h.enabled = h.overflow > OverflowEpsilon
	if !h.enabled {
		h.wrapper.PinSpacing = 0
		h.wrapper.PinOffset = 0
		h.track.X = 0
		h.track.MarkDirty()
		return
	}
	h.wrapper.PinSpacing = h.overflow
}

// resolve computes the pin span once layout includes the pin spacing. The
// pin engages when the wrapper's center meets the viewport's center and
// lasts exactly Overflow pixels of scroll.
func (h *Horizontal) resolve() {
	if !h.Enabled() {
		return
	}
	a := Anchor{
		Start: AnchorPoint{Trigger: Edge{Frac: 0.5}, View: Edge{Frac: 0.5}},
		End:   RelativeEnd(h.overflow),
	}
	b, err := ResolveBounds(a, h.wrapper.Box.Y, h.wrapper.Box.Height, h.doc.viewport.Height)
	if err != nil {
		h.err = err
		h.enabled = false
		logger.Error("horizontal scroll disabled", "id", h.id, "err", err)
		return
	}
	h.bounds = b
}

// update pins the wrapper and translates the track for the sampled scroll
// offset.
func (h *Horizontal) update(scrollY, dt float64) {
	if !h.Enabled() {
		return
	}
	p := h.bounds.Progress(scrollY)
	h.progress = p

	if h.cfg.Smoothing <= 0 || dt <= 0 {
		h.shown = p
	} else {
		h.shown += (p - h.shown) * (1 - math.Exp(-dt*scrubRate/h.cfg.Smoothing))
		if math.Abs(p-h.shown) < scrubSnap {
			h.shown = p
		}
	}

	h.wrapper.PinOffset = math.Max(0, math.Min(scrollY-h.bounds.Start, h.overflow))
	h.wrapper.MarkDirty()
	h.track.X = -h.overflow * h.shown
	h.track.MarkDirty()

	active := p > 0 && p < 1
	if active != h.active {
		h.active = active
		if h.cfg.OnToggle != nil {
			h.cfg.OnToggle(h, active)
		}
	}

	if h.cfg.FadeItems {
		vw := h.doc.viewport.Width
		for _, it := range h.items {
			cx := h.doc.ScreenRect(it).CenterX()
			it.Alpha = ItemOpacity(cx, vw, h.cfg.MinOpacity, h.cfg.FalloffWidth)
			it.MarkDirty()
		}
	}
}

// ItemOpacity is the gallery falloff: full opacity at the viewport center,
// fading linearly to minOpacity at falloff viewport-widths away.
func ItemOpacity(itemCenterX, viewportW, minOpacity, falloff float64) float64 {
	if viewportW <= 0 || falloff <= 0 {
		return 1
	}
	dist := math.Abs(itemCenterX - viewportW/2)
	return math.Max(minOpacity, 1-dist/(viewportW*falloff))
}

// teardown releases the pin and restores the track and items.
func (h *Horizontal) teardown() {
	if h.err != nil {
		return
	}
	h.wrapper.PinSpacing = 0
	h.wrapper.PinOffset = 0
	h.track.X = 0
	h.track.MarkDirty()
	for i, it := range h.items {
		it.Alpha = h.itemA[i]
	}
	h.cfg.OnToggle = nil
}
