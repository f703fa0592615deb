package scrolly

import (
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Transition is a fixed-duration, time-based change fired by a toggle
// region or a hover. Targets resolve like Step targets.
type Transition struct {
	Targets string
	Global  bool
	Nodes   []*Node

	To       Props
	Duration float64
	Delay    float64
	Stagger  float64
	Ease     ease.TweenFunc
}

// tweenKey identifies one property of one node. At most one tween per key
// is in flight.
type tweenKey struct {
	node *Node
	prop Property
}

// activeTween animates one key. The gween tween is created when the delay
// elapses so it starts from the value the node holds at that moment.
type activeTween struct {
	delay    float32
	to       float32
	duration float32
	ease     ease.TweenFunc
	tw       *gween.Tween
}

// Tweener owns every in-flight transition. Starting a transition on a key
// that is already animating replaces the old tween (last writer wins).
//
// There is no global tweener; the registry owns one and advances it each frame.
type Tweener struct {
	active map[tweenKey]*activeTween
}

// NewTweener creates an empty tweener.
func NewTweener() *Tweener {
	return &Tweener{active: make(map[tweenKey]*activeTween)}
}

// Play starts tr on targets. Every target value is evaluated first; if any
// value function fails nothing is scheduled.
func (t *Tweener) Play(tr Transition, targets []*Node) error {
	type planned struct {
		key tweenKey
		at  *activeTween
	}
	dur := tr.Duration
	if dur <= 0 {
		dur = defaultStepDuration
	}
	fn := tr.Ease
	if fn == nil {
		fn = defaultEase
	}
	var plan []planned
	for i, n := range targets {
		for _, p := range tr.To.sortedKeys() {
			v, err := tr.To[p].eval(i, n)
			if err != nil {
				return fmt.Errorf("transition %s of %q: %w", p, n.Name, err)
			}
			plan = append(plan, planned{
				key: tweenKey{node: n, prop: p},
				at: &activeTween{
					delay:    float32(tr.Delay + float64(i)*tr.Stagger),
					to:       float32(v),
					duration: float32(dur),
					ease:     fn,
				},
			})
		}
	}
	for _, pl := range plan {
		t.active[pl.key] = pl.at
	}
	return nil
}

// Update advances every tween by dt seconds and writes values to targets.
// Tweens whose node has been disposed are dropped without writing.
func (t *Tweener) Update(dt float32) {
	for key, at := range t.active {
		if key.node.disposed {
			delete(t.active, key)
			continue
		}
		step := dt
		if at.tw == nil {
			at.delay -= step
			if at.delay > 0 {
				continue
			}
			step = -at.delay
			at.tw = gween.New(float32(key.prop.Get(key.node)), at.to, at.duration, at.ease)
		}
		val, done := at.tw.Update(step)
		key.prop.Set(key.node, float64(val))
		if done {
			key.prop.Set(key.node, float64(at.to))
			delete(t.active, key)
		}
	}
}

// Finish jumps every in-flight tween to its end value.
func (t *Tweener) Finish() {
	for key, at := range t.active {
		if !key.node.disposed {
			key.prop.Set(key.node, float64(at.to))
		}
		delete(t.active, key)
	}
}

// Kill stops every tween on the given nodes, leaving current values.
func (t *Tweener) Kill(nodes ...*Node) {
	for key := range t.active {
		for _, n := range nodes {
			if key.node == n {
				delete(t.active, key)
				break
			}
		}
	}
}

// StopAll stops every tween, leaving current values.
func (t *Tweener) StopAll() {
	clear(t.active)
}

// Len returns the number of in-flight property tweens.
func (t *Tweener) Len() int {
	return len(t.active)
}

// Animating reports whether the property of n has a tween in flight.
func (t *Tweener) Animating(n *Node, p Property) bool {
	_, ok := t.active[tweenKey{node: n, prop: p}]
	return ok
}
