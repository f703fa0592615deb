package scrolly

import (
	"fmt"
	"math"
)

// RegionState is a region's position in its lifecycle.
type RegionState uint8

const (
	StateInactive RegionState = iota // outside the span (never entered, or left)
	StateActive                      // progress in (0, 1)
	StateSettled                     // toggle-once region that reached 1; terminal
	StateDisabled                    // configuration error; terminal
	StateDisposed                    // torn down by a rebuild; terminal
)

// String returns a lower-case name for the state.
func (s RegionState) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StateActive:
		return "active"
	case StateSettled:
		return "settled"
	case StateDisabled:
		return "disabled"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// RegionEvent is a threshold crossing derived from two progress samples.
type RegionEvent uint8

const (
	EventEnter     RegionEvent = iota // progress left 0 moving forward
	EventLeave                        // progress reached 1 moving forward
	EventEnterBack                    // progress left 1 moving backward
	EventLeaveBack                    // progress reached 0 moving backward
)

// String returns the callback-style name of the event.
func (e RegionEvent) String() string {
	switch e {
	case EventEnter:
		return "enter"
	case EventLeave:
		return "leave"
	case EventEnterBack:
		return "enterBack"
	case EventLeaveBack:
		return "leaveBack"
	default:
		return "unknown"
	}
}

type transitionKey struct {
	from RegionState
	ev   RegionEvent
}

// regionTransitions is the state table shared by every mode. Toggle-once
// regions override the Leave edge to StateSettled. Missing entries leave the
// state unchanged.
var regionTransitions = map[transitionKey]RegionState{
	{StateInactive, EventEnter}:     StateActive,
	{StateInactive, EventEnterBack}: StateActive,
	{StateActive, EventLeave}:       StateInactive,
	{StateActive, EventLeaveBack}:   StateInactive,
}

// nextState looks up the transition for ev in the given mode.
func nextState(mode Mode, from RegionState, ev RegionEvent) RegionState {
	if mode == ModeToggleOnce && from == StateActive && ev == EventLeave {
		return StateSettled
	}
	if to, ok := regionTransitions[transitionKey{from, ev}]; ok {
		return to
	}
	return from
}

// crossings returns the events between two progress samples, in order.
func crossings(prev, cur float64) []RegionEvent {
	var evs []RegionEvent
	if cur > prev {
		if prev == 0 {
			evs = append(evs, EventEnter)
		}
		if cur == 1 {
			evs = append(evs, EventLeave)
		}
	} else if cur < prev {
		if prev == 1 {
			evs = append(evs, EventEnterBack)
		}
		if cur == 0 {
			evs = append(evs, EventLeaveBack)
		}
	}
	return evs
}

// RegionConfig declares a scroll-bound region.
type RegionConfig struct {
	// ID names the region. Empty IDs get a generated UUID.
	ID string

	// Trigger is a selector for the anchor node; TriggerNode overrides it.
	Trigger     string
	TriggerNode *Node

	// Start and End are anchor descriptors, see ParseAnchor.
	Start, End string

	Mode Mode
	// Scrub is the smoothing lag in seconds for scrub regions; 0 follows
	// the scroll offset exactly.
	Scrub float64

	// Animation is scrubbed by progress in ModeScrub, or played forward and
	// (if reversible) backward in time by toggle modes.
	Animation *Animation

	// Forward transitions fire on enter; Reverse on leave-back for
	// reversible regions.
	Forward []Transition
	Reverse []Transition

	// ToggleClass is added to the trigger while the region is active.
	ToggleClass string

	// Container makes the region measure its position on a horizontal
	// adapter's track instead of the page.
	Container *Horizontal

	OnEnter     func(*Region)
	OnLeave     func(*Region)
	OnEnterBack func(*Region)
	OnLeaveBack func(*Region)
	OnToggle    func(r *Region, active bool)
	OnUpdate    func(*Region)
}

type boundTransition struct {
	tr    Transition
	nodes []*Node
}

// Region is a scroll span with an animation bound to it. Regions are
// created by a Builder and live until the next rebuild.
type Region struct {
	id  string
	cfg RegionConfig

	trigger *Node
	anchor  Anchor
	bounds  Bounds
	ready   bool

	state RegionState
	err   error

	progress float64 // raw, from the last sample
	shown    float64 // smoothed, applied to the animation
	sampled  bool

	timeline *timeline
	playhead float64
	playDir  float64

	forward []boundTransition
	reverse []boundTransition
	tweener *Tweener

	forwardFired int
	reverseFired int
	frameErrors  int

	emit func(*Region, RegionEvent)
}

// ID returns the region's identifier.
func (r *Region) ID() string { return r.id }

// State returns the current lifecycle state.
func (r *Region) State() RegionState { return r.state }

// Err returns the configuration error that disabled the region, if any.
func (r *Region) Err() error { return r.err }

// Progress returns the raw progress from the last sample.
func (r *Region) Progress() float64 { return r.progress }

// Shown returns the smoothed progress currently applied to the animation.
func (r *Region) Shown() float64 { return r.shown }

// Bounds returns the resolved scroll span.
func (r *Region) Bounds() Bounds { return r.bounds }

// Ready reports whether geometry has been resolved.
func (r *Region) Ready() bool { return r.ready }

// IsActive reports whether progress is strictly between 0 and 1.
func (r *Region) IsActive() bool { return r.state == StateActive }

// Trigger returns the anchor node.
func (r *Region) Trigger() *Node { return r.trigger }

// Mode returns the region's mode.
func (r *Region) Mode() Mode { return r.cfg.Mode }

// ForwardFired returns how many times the forward transition fired.
func (r *Region) ForwardFired() int { return r.forwardFired }

// ReverseFired returns how many times the reverse transition fired.
func (r *Region) ReverseFired() int { return r.reverseFired }

// FrameErrors counts frames skipped because a value function failed.
func (r *Region) FrameErrors() int { return r.frameErrors }

// newRegion resolves the trigger, anchor and targets. Configuration errors
// produce a disabled region rather than an error, so one bad region never
// stops the others.
func newRegion(cfg RegionConfig, doc *Document, tw *Tweener) *Region {
	r := &Region{id: cfg.ID, cfg: cfg, tweener: tw}

	r.trigger = cfg.TriggerNode
	if r.trigger == nil && cfg.Trigger != "" {
		r.trigger = doc.QueryOne(cfg.Trigger)
	}
	if r.trigger == nil {
		return r.disable(fmt.Errorf("%w: %q", ErrNoTrigger, cfg.Trigger))
	}

	a, err := ParseAnchor(cfg.Start, cfg.End)
	if err != nil {
		return r.disable(err)
	}
	r.anchor = a

	if cfg.Animation != nil {
		tl, err := compileAnimation(r.id, cfg.Animation, doc, r.trigger)
		if err != nil {
			return r.disable(err)
		}
		r.timeline = tl
	}
	if r.forward, err = bindTransitions(r.id, cfg.Forward, doc, r.trigger); err != nil {
		return r.disable(err)
	}
	if r.reverse, err = bindTransitions(r.id, cfg.Reverse, doc, r.trigger); err != nil {
		return r.disable(err)
	}
	return r
}

func bindTransitions(id string, trs []Transition, doc *Document, scope *Node) ([]boundTransition, error) {
	out := make([]boundTransition, 0, len(trs))
	for i, tr := range trs {
		nodes, err := resolveTargets(doc, scope, tr.Targets, tr.Global, tr.Nodes)
		if err != nil {
			return nil, fmt.Errorf("transition %d: %w", i, err)
		}
		if len(nodes) == 0 {
			logger.Warn("transition has no targets", "region", id, "transition", i, "targets", tr.Targets)
			continue
		}
		out = append(out, boundTransition{tr: tr, nodes: nodes})
	}
	return out, nil
}

func (r *Region) disable(err error) *Region {
	r.state = StateDisabled
	r.err = err
	logger.Error("region disabled", "region", r.id, "err", err)
	return r
}

// refresh recomputes bounds from the current layout. Idempotent.
func (r *Region) refresh(doc *Document) {
	if r.state == StateDisabled || r.state == StateDisposed {
		return
	}
	h := r.cfg.Container
	axis := AxisVertical
	if h != nil {
		axis = AxisHorizontal
		if !h.Enabled() {
			r.ready = false
			return
		}
	}
	if !doc.viewport.ready() {
		r.ready = false
		return
	}
	pos, size, view := axisGeometry(axis, r.trigger, h, doc.viewport)
	b, err := ResolveBounds(r.anchor, pos, size, view)
	if err != nil {
		r.disable(err)
		return
	}
	r.bounds = b
	r.ready = true
	if r.timeline != nil {
		r.timeline.invalidate()
	}
}

// position returns the scroll coordinate the region measures against.
func (r *Region) position(scrollY float64) float64 {
	if h := r.cfg.Container; h != nil {
		return h.Offset()
	}
	return scrollY
}

// update samples the scroll position, runs the state machine and drives
// the animation. Called once per frame by the registry.
func (r *Region) update(scrollY, dt float64) {
	if r.state == StateDisabled || r.state == StateDisposed || !r.ready {
		return
	}
	p := r.bounds.Progress(r.position(scrollY))
	prev := r.progress
	if !r.sampled {
		// First sample after build: regions start at 0 and cross forward
		// into their current position.
		prev = 0
		r.sampled = true
	}
	r.progress = p

	if r.state != StateSettled {
		for _, ev := range crossings(prev, p) {
			r.handle(ev)
		}
	}
	if r.state == StateDisposed {
		return
	}

	switch {
	case r.cfg.Mode == ModeScrub:
		r.scrub(dt)
	case r.playDir != 0:
		r.play(dt)
	}

	if r.cfg.OnUpdate != nil && (r.state == StateActive || p != prev) {
		r.cfg.OnUpdate(r)
	}
}

// handle applies one event: state transition, toggle side effects, callbacks.
func (r *Region) handle(ev RegionEvent) {
	from := r.state
	to := nextState(r.cfg.Mode, from, ev)
	r.state = to

	switch ev {
	case EventEnter:
		r.fireForward()
		if r.cfg.OnEnter != nil {
			r.cfg.OnEnter(r)
		}
	case EventLeave:
		if r.cfg.OnLeave != nil {
			r.cfg.OnLeave(r)
		}
	case EventEnterBack:
		if r.cfg.OnEnterBack != nil {
			r.cfg.OnEnterBack(r)
		}
	case EventLeaveBack:
		r.fireReverse()
		if r.cfg.OnLeaveBack != nil {
			r.cfg.OnLeaveBack(r)
		}
	}

	wasActive, isActive := from == StateActive, to == StateActive
	if wasActive != isActive {
		if c := r.cfg.ToggleClass; c != "" {
			if isActive {
				r.trigger.AddClass(c)
			} else {
				r.trigger.RemoveClass(c)
			}
		}
		if r.cfg.OnToggle != nil {
			r.cfg.OnToggle(r, isActive)
		}
	}
	if r.emit != nil {
		r.emit(r, ev)
	}
}

func (r *Region) fireForward() {
	if r.cfg.Mode == ModeScrub {
		return
	}
	if r.cfg.Mode == ModeToggleOnce && r.forwardFired > 0 {
		return
	}
	r.forwardFired++
	r.playDir = 1
	for _, bt := range r.forward {
		if err := r.tweener.Play(bt.tr, bt.nodes); err != nil {
			r.frameErrors++
			logger.Warn("forward transition skipped", "region", r.id, "err", err)
		}
	}
}

func (r *Region) fireReverse() {
	if r.cfg.Mode != ModeToggleReversible {
		return
	}
	r.reverseFired++
	r.playDir = -1
	for _, bt := range r.reverse {
		if err := r.tweener.Play(bt.tr, bt.nodes); err != nil {
			r.frameErrors++
			logger.Warn("reverse transition skipped", "region", r.id, "err", err)
		}
	}
}

// scrub moves the shown progress toward the sampled progress and seeks the
// timeline. With Scrub > 0 the gap closes exponentially with that lag.
func (r *Region) scrub(dt float64) {
	target := r.progress
	if r.cfg.Scrub <= 0 || dt <= 0 {
		r.shown = target
	} else {
		r.shown += (target - r.shown) * (1 - math.Exp(-dt*scrubRate/r.cfg.Scrub))
		if math.Abs(target-r.shown) < scrubSnap {
			r.shown = target
		}
	}
	r.apply(r.shown)
}

// play advances a toggle region's animation in time toward its end
// (playDir > 0) or its start.
func (r *Region) play(dt float64) {
	if r.timeline == nil || r.timeline.duration <= 0 {
		r.playDir = 0
		return
	}
	r.playhead = clamp01(r.playhead + r.playDir*dt/r.timeline.duration)
	r.apply(r.playhead)
	if (r.playDir > 0 && r.playhead == 1) || (r.playDir < 0 && r.playhead == 0) {
		r.playDir = 0
	}
}

func (r *Region) apply(p float64) {
	if r.timeline == nil {
		return
	}
	if err := r.timeline.seek(p); err != nil {
		r.frameErrors++
		logger.Warn("animation skipped for frame", "region", r.id, "err", err)
	}
}

// finish snaps the region to its completed state, used by the static
// fallback.
func (r *Region) finish() {
	if r.state == StateDisabled || r.state == StateDisposed {
		return
	}
	if r.timeline != nil {
		r.shown, r.playhead, r.playDir = 1, 1, 0
		r.apply(1)
	}
	for _, bt := range r.forward {
		if err := r.tweener.Play(bt.tr, bt.nodes); err != nil {
			logger.Warn("forward transition skipped", "region", r.id, "err", err)
		}
	}
}

// teardown detaches callbacks and reverts scrubbed targets. Its tweens are
// stopped by the registry, which owns the tweener.
func (r *Region) teardown() {
	if r.timeline != nil {
		r.timeline.revert()
	}
	if c := r.cfg.ToggleClass; c != "" && r.trigger != nil {
		r.trigger.RemoveClass(c)
	}
	r.cfg.OnEnter, r.cfg.OnLeave, r.cfg.OnEnterBack, r.cfg.OnLeaveBack = nil, nil, nil, nil
	r.cfg.OnToggle, r.cfg.OnUpdate = nil, nil
	r.emit = nil
	r.state = StateDisposed
}

const (
	scrubRate = 4.0
	scrubSnap = 1e-4
)
