package scrolly

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RegistryState is the registry's build lifecycle.
type RegistryState uint8

const (
	RegistryUnbuilt RegistryState = iota
	RegistryBuilt
	RegistryRebuilding
	RegistryDisposed
)

// String returns a lower-case name for the state.
func (s RegistryState) String() string {
	switch s {
	case RegistryUnbuilt:
		return "unbuilt"
	case RegistryBuilt:
		return "built"
	case RegistryRebuilding:
		return "rebuilding"
	case RegistryDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// SetupFunc declares the regions of a layout. It runs on every rebuild.
type SetupFunc func(b *Builder) error

// EventStore is the interface for optional ECS integration.
// When set on a Registry, region crossings are forwarded to it.
type EventStore interface {
	EmitEvent(event RegionEventInfo)
}

// RegionEventInfo carries one region crossing for the ECS bridge.
type RegionEventInfo struct {
	Type     RegionEvent
	RegionID string
	State    RegionState
	Progress float64
	ScrollY  float64
}

// Builder collects the regions and horizontal adapters of one build.
type Builder struct {
	reg         *Registry
	doc         *Document
	tweener     *Tweener
	regions     []*Region
	horizontals []*Horizontal
}

// Document returns the document being built.
func (b *Builder) Document() *Document {
	return b.doc
}

// Region declares a region. Configuration errors yield a disabled region
// (see Region.Err) instead of failing the build.
func (b *Builder) Region(cfg RegionConfig) *Region {
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}
	r := newRegion(cfg, b.doc, b.tweener)
	if b.reg != nil {
		r.emit = b.reg.emitEvent
	}
	b.regions = append(b.regions, r)
	return r
}

// Scrub declares a scrub region on trigger with smoothing lag scrub.
func (b *Builder) Scrub(trigger, start, end string, scrub float64, a *Animation) *Region {
	return b.Region(RegionConfig{Trigger: trigger, Start: start, End: end, Scrub: scrub, Animation: a})
}

// Toggle declares a toggle region. A nil reverse with ModeToggleReversible
// leaves the targets where the forward transition put them.
func (b *Builder) Toggle(trigger, start, end string, mode Mode, forward, reverse []Transition) *Region {
	return b.Region(RegionConfig{
		Trigger: trigger,
		Start:   start,
		End:     end,
		Mode:    mode,
		Forward: forward,
		Reverse: reverse,
	})
}

// Item declares a scrub region on one item of h, measured on the track.
func (b *Builder) Item(h *Horizontal, item *Node, start, end string, a *Animation) *Region {
	return b.Region(RegionConfig{TriggerNode: item, Start: start, End: end, Container: h, Animation: a})
}

// Horizontal declares a pinned horizontal sub-scroll. Nested regions pass
// the result as RegionConfig.Container.
func (b *Builder) Horizontal(cfg HorizontalConfig) *Horizontal {
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}
	h := newHorizontal(cfg, b.doc)
	b.horizontals = append(b.horizontals, h)
	return h
}

// Horizontals returns the adapters declared so far in this build.
func (b *Builder) Horizontals() []*Horizontal {
	return b.horizontals
}

// Regions returns the regions declared so far in this build.
func (b *Builder) Regions() []*Region {
	return b.regions
}

// Registry owns the active regions of a document. It builds them from a
// SetupFunc, rebuilds them atomically on layout changes, and drives them
// once per frame.
type Registry struct {
	doc     *Document
	setup   SetupFunc
	tweener *Tweener

	regions     []*Region
	horizontals []*Horizontal

	state        RegistryState
	needsRebuild bool
	static       bool
	builds       int
	frame        uint64
	debug        bool

	store EventStore
}

// NewRegistry creates an unbuilt registry for doc.
func NewRegistry(doc *Document) *Registry {
	return &Registry{doc: doc, tweener: NewTweener()}
}

// State returns the registry's lifecycle state.
func (r *Registry) State() RegistryState { return r.state }

// Document returns the document the registry drives.
func (r *Registry) Document() *Document { return r.doc }

// Tweener returns the tweener that runs toggle transitions.
func (r *Registry) Tweener() *Tweener { return r.tweener }

// Regions returns the current regions. The returned slice MUST NOT be mutated.
func (r *Registry) Regions() []*Region { return r.regions }

// Horizontals returns the current horizontal adapters.
func (r *Registry) Horizontals() []*Horizontal { return r.horizontals }

// Builds returns how many builds have completed.
func (r *Registry) Builds() int { return r.builds }

// Static reports whether the static fallback is engaged.
func (r *Registry) Static() bool { return r.static }

// Region returns the region with the given ID, or nil.
func (r *Registry) Region(id string) *Region {
	for _, reg := range r.regions {
		if reg.id == id {
			return reg
		}
	}
	return nil
}

// SetEventStore sets the optional ECS bridge.
func (r *Registry) SetEventStore(store EventStore) {
	r.store = store
}

func (r *Registry) emitEvent(reg *Region, ev RegionEvent) {
	if r.store == nil {
		return
	}
	r.store.EmitEvent(RegionEventInfo{
		Type:     ev,
		RegionID: reg.id,
		State:    reg.state,
		Progress: reg.progress,
		ScrollY:  r.doc.viewport.ScrollY,
	})
}

// Build stores setup and performs the first build.
func (r *Registry) Build(setup SetupFunc) error {
	if r.state == RegistryDisposed {
		return ErrDisposed
	}
	r.setup = setup
	return r.Rebuild()
}

// Invalidate schedules a rebuild at the start of the next Update. Call it
// from resize and content-change handlers.
func (r *Registry) Invalidate() {
	r.needsRebuild = true
}

// Rebuild tears down every region, re-runs the setup, refreshes geometry
// and samples the current scroll offset, all before returning, so no frame
// observes a half-built registry. A setup that returns an error or panics
// engages the static fallback for whatever it declared.
func (r *Registry) Rebuild() (err error) {
	if r.state == RegistryDisposed {
		return ErrDisposed
	}
	r.needsRebuild = false
	r.state = RegistryRebuilding
	r.teardown()

	b := &Builder{reg: r, doc: r.doc, tweener: r.tweener}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("setup panicked: %v", p)
		}
		r.regions, r.horizontals = b.regions, b.horizontals
		r.refresh()
		if err != nil {
			logger.Error("build failed, using static presentation", "err", err)
			r.static = true
		}
		if r.static {
			r.applyStatic()
		} else {
			r.sample(0)
		}
		r.state = RegistryBuilt
		r.builds++
		logger.Debug("registry built", "build", r.builds, "regions", len(r.regions),
			"horizontals", len(r.horizontals), "height", r.doc.Height(), "static", r.static)
	}()

	if r.setup != nil {
		if err := r.setup(b); err != nil {
			return fmt.Errorf("setup: %w", err)
		}
	}
	return nil
}

// Refresh recomputes every horizontal overflow and region bound from the
// current layout without rebuilding. Repeated calls with no layout change
// produce identical geometry.
func (r *Registry) Refresh() {
	if r.state != RegistryBuilt {
		return
	}
	r.refresh()
}

func (r *Registry) refresh() {
	r.doc.Layout()
	for _, h := range r.horizontals {
		h.measure()
	}
	r.doc.Layout()
	for _, h := range r.horizontals {
		h.resolve()
	}
	for _, reg := range r.regions {
		reg.refresh(r.doc)
	}
}

// Update runs one frame: a pending rebuild, one scroll sample, horizontal
// adapters, regions in declaration order, then transitions.
func (r *Registry) Update(dt float64) {
	if r.state == RegistryDisposed || r.state == RegistryUnbuilt {
		return
	}
	r.frame++
	var t0 time.Time
	if r.debug {
		t0 = time.Now()
	}
	if r.needsRebuild {
		if err := r.Rebuild(); err != nil {
			logger.Warn("rebuild failed", "err", err)
		}
	}
	if r.static {
		r.doc.viewport.sample(dt)
		return
	}
	r.sample(dt)
	r.tweener.Update(float32(dt))
	if r.debug {
		r.debugLog(r.collectStats(time.Since(t0)))
	}
}

// sample reads the scroll offset once and feeds it to every consumer.
func (r *Registry) sample(dt float64) {
	scrollY := r.doc.viewport.sample(dt)
	for _, h := range r.horizontals {
		h.update(scrollY, dt)
	}
	for _, reg := range r.regions {
		reg.update(scrollY, dt)
	}
}

// teardown stops transitions and disposes every region and adapter in
// reverse declaration order.
func (r *Registry) teardown() {
	r.tweener.StopAll()
	for i := len(r.regions) - 1; i >= 0; i-- {
		r.regions[i].teardown()
	}
	for i := len(r.horizontals) - 1; i >= 0; i-- {
		r.horizontals[i].teardown()
	}
	r.regions = nil
	r.horizontals = nil
}

// Dispose tears everything down. The registry cannot be rebuilt afterward.
func (r *Registry) Dispose() {
	if r.state == RegistryDisposed {
		return
	}
	r.teardown()
	r.setup = nil
	r.state = RegistryDisposed
}
