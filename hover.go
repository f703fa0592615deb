package scrolly

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// reverseTimeScale speeds up the hover-out so leaving feels snappier.
const reverseTimeScale = 1.5

type hoverTrack struct {
	node     *Node
	prop     Property
	from, to float64
}

// Hover is a paused micro-animation played forward when the pointer enters
// a node and reversed, faster, when it leaves.
type Hover struct {
	tracks   []hoverTrack
	curve    *gween.Tween
	duration float32
	playhead float32
	dir      float32
}

// NewHover captures the current values of targets as the rest state and to
// as the hovered state.
func NewHover(targets []*Node, to Props, duration float64, easeFn ease.TweenFunc) *Hover {
	if easeFn == nil {
		easeFn = defaultEase
	}
	if duration <= 0 {
		duration = 0.3
	}
	h := &Hover{
		curve:    gween.New(0, 1, float32(duration), easeFn),
		duration: float32(duration),
	}
	for _, n := range targets {
		for _, p := range to.sortedKeys() {
			v, err := to[p].eval(0, n)
			if err != nil {
				logger.Warn("hover value skipped", "node", n.Name, "prop", p.String(), "err", err)
				continue
			}
			h.tracks = append(h.tracks, hoverTrack{node: n, prop: p, from: p.Get(n), to: v})
		}
	}
	return h
}

// Attach wires the hover to the node's pointer callbacks.
func (h *Hover) Attach(n *Node) {
	n.Interactable = true
	n.OnPointerEnter = func(*Node) { h.Play() }
	n.OnPointerLeave = func(*Node) { h.Reverse() }
}

// Play runs toward the hovered state at normal speed.
func (h *Hover) Play() { h.dir = 1 }

// Reverse runs back toward the rest state at reverseTimeScale.
func (h *Hover) Reverse() { h.dir = -reverseTimeScale }

// Progress returns the playhead in [0, 1].
func (h *Hover) Progress() float64 {
	return float64(h.playhead / h.duration)
}

// Update advances the playhead by dt seconds and writes values.
func (h *Hover) Update(dt float32) {
	if h.dir == 0 {
		return
	}
	h.playhead += dt * h.dir
	if h.playhead >= h.duration {
		h.playhead, h.dir = h.duration, 0
	} else if h.playhead <= 0 {
		h.playhead, h.dir = 0, 0
	}
	t, _ := h.curve.Set(h.playhead)
	for _, tr := range h.tracks {
		if tr.node.disposed {
			continue
		}
		tr.prop.Set(tr.node, lerp(tr.from, tr.to, float64(t)))
	}
}
