package scrolly

import (
	"fmt"

	"github.com/tanema/gween/ease"
)

// defaultStepDuration is the internal duration of a step that leaves
// Duration unset.
const defaultStepDuration = 0.5

// Step animates a target set toward To. Position and Duration are in the
// animation's own time units; scroll speed never changes them.
type Step struct {
	// Targets is a selector resolved inside the region's trigger, or across
	// the whole document when Global is set. Empty with no Nodes targets the
	// trigger itself.
	Targets string
	Global  bool
	Nodes   []*Node

	// From optionally overrides start values (fromTo).
	From Props
	To   Props

	Position float64
	Duration float64
	Stagger  float64
	Ease     ease.TweenFunc
}

// Animation is an ordered list of steps.
type Animation struct {
	Steps []Step
}

// NewAnimation returns an animation with the given steps.
func NewAnimation(steps ...Step) *Animation {
	return &Animation{Steps: steps}
}

// Add appends a step and returns the animation for chaining.
func (a *Animation) Add(s Step) *Animation {
	a.Steps = append(a.Steps, s)
	return a
}

// --- Compiled timeline ---

// track is one property of one node over [t0, t1].
type track struct {
	index   int
	hasFrom bool
	from    Value
	to      Value
	t0, t1  float64
	ease    ease.TweenFunc

	resolved bool
	fromVal  float64
	toVal    float64
}

// trackGroup is every track for a (node, property) pair, in time order.
type trackGroup struct {
	node    *Node
	prop    Property
	initial float64
	tracks  []*track
}

type pendingWrite struct {
	node *Node
	prop Property
	v    float64
}

// timeline is an Animation resolved against concrete nodes.
type timeline struct {
	groups   []*trackGroup
	duration float64
	buf      []pendingWrite
}

// compileAnimation resolves every step's targets and captures start values.
// Steps whose target set is empty are logged and skipped.
func compileAnimation(regionID string, a *Animation, doc *Document, scope *Node) (*timeline, error) {
	tl := &timeline{}
	index := map[tweenKey]*trackGroup{}

	for si, s := range a.Steps {
		nodes, err := resolveTargets(doc, scope, s.Targets, s.Global, s.Nodes)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", si, err)
		}
		if len(nodes) == 0 {
			logger.Warn("animation step has no targets", "region", regionID, "step", si, "targets", s.Targets)
			continue
		}
		dur := s.Duration
		if dur <= 0 {
			dur = defaultStepDuration
		}
		for i, n := range nodes {
			t0 := s.Position + float64(i)*s.Stagger
			for _, p := range s.To.sortedKeys() {
				tr := &track{index: i, to: s.To[p], t0: t0, t1: t0 + dur, ease: s.Ease}
				if f, ok := s.From[p]; ok {
					tr.hasFrom, tr.from = true, f
				}
				key := tweenKey{node: n, prop: p}
				g := index[key]
				if g == nil {
					g = &trackGroup{node: n, prop: p, initial: p.Get(n)}
					index[key] = g
					tl.groups = append(tl.groups, g)
				}
				g.tracks = insertTrack(g.tracks, tr)
			}
			tl.duration = max(tl.duration, t0+dur)
		}
	}
	if len(tl.groups) == 0 {
		return nil, nil
	}
	return tl, nil
}

// insertTrack keeps tracks ordered by start time, stable for equal starts.
func insertTrack(ts []*track, tr *track) []*track {
	i := len(ts)
	for i > 0 && ts[i-1].t0 > tr.t0 {
		i--
	}
	ts = append(ts, nil)
	copy(ts[i+1:], ts[i:])
	ts[i] = tr
	return ts
}

// seek applies the state at progress p in [0, 1]. Values are computed for
// every group before any is written; a failing value function aborts the
// whole seek with no writes.
func (tl *timeline) seek(p float64) error {
	t := clamp01(p) * tl.duration
	tl.buf = tl.buf[:0]
	for _, g := range tl.groups {
		cur := g.initial
		for ti, tr := range g.tracks {
			if !tr.resolved {
				if err := tr.resolve(g.node); err != nil {
					return fmt.Errorf("%s of %q: %w", g.prop, g.node.Name, err)
				}
			}
			if t < tr.t0 {
				if ti == 0 && tr.hasFrom {
					cur = tr.fromVal
				}
				break
			}
			start := cur
			if tr.hasFrom {
				start = tr.fromVal
			}
			local := 1.0
			if tr.t1 > tr.t0 {
				local = clamp01((t - tr.t0) / (tr.t1 - tr.t0))
			}
			cur = lerp(start, tr.toVal, applyEase(tr.ease, local))
		}
		tl.buf = append(tl.buf, pendingWrite{node: g.node, prop: g.prop, v: cur})
	}
	for _, w := range tl.buf {
		if w.node.disposed {
			continue
		}
		w.prop.Set(w.node, w.v)
	}
	return nil
}

func (tr *track) resolve(n *Node) error {
	to, err := tr.to.eval(tr.index, n)
	if err != nil {
		return err
	}
	if tr.hasFrom {
		from, err := tr.from.eval(tr.index, n)
		if err != nil {
			return err
		}
		tr.fromVal = from
	}
	tr.toVal = to
	tr.resolved = true
	return nil
}

// invalidate drops cached function values so they are recomputed.
func (tl *timeline) invalidate() {
	for _, g := range tl.groups {
		for _, tr := range g.tracks {
			tr.resolved = false
		}
	}
}

// revert restores every target to the value captured at compile time.
func (tl *timeline) revert() {
	for i := len(tl.groups) - 1; i >= 0; i-- {
		g := tl.groups[i]
		if !g.node.disposed {
			g.prop.Set(g.node, g.initial)
		}
	}
}

// resolveTargets returns explicit nodes, or the nodes matching sel inside
// scope (or the whole document when global), or scope itself when sel is
// empty.
func resolveTargets(doc *Document, scope *Node, sel string, global bool, explicit []*Node) ([]*Node, error) {
	if len(explicit) > 0 {
		return explicit, nil
	}
	if sel == "" {
		if scope == nil {
			return nil, nil
		}
		return []*Node{scope}, nil
	}
	if global || scope == nil {
		return doc.Query(sel)
	}
	return doc.QueryWithin(scope, sel)
}
