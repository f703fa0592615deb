package scrolly

import (
	"fmt"
	"strings"
)

// Document is the top-level object that owns the node tree and the viewport.
// It is the read/mutate boundary the engine uses for target queries and
// layout geometry.
type Document struct {
	root     *Node
	viewport *Viewport

	height     float64
	generation uint64
}

// NewDocument creates a document with a pre-created root container and a
// viewport of the given size.
func NewDocument(viewportW, viewportH float64) *Document {
	return &Document{
		root:     NewNode("root"),
		viewport: newViewport(viewportW, viewportH),
	}
}

// Root returns the document's root node.
func (d *Document) Root() *Node {
	return d.root
}

// Viewport returns the document's scroll viewport.
func (d *Document) Viewport() *Viewport {
	return d.viewport
}

// Height returns the total scrollable height computed by the last Layout.
func (d *Document) Height() float64 {
	return d.height
}

// Generation increments on every Layout call. Consumers compare generations
// to detect reflow.
func (d *Document) Generation() uint64 {
	return d.generation
}

// Dirty reports whether any node changed since the last ClearDirty.
func (d *Document) Dirty() bool {
	dirty := false
	d.root.Walk(func(n *Node) bool {
		if n.dirty {
			dirty = true
		}
		return !dirty
	})
	return dirty
}

// ClearDirty resets the dirty flag on every node.
func (d *Document) ClearDirty() {
	d.root.Walk(func(n *Node) bool {
		n.dirty = false
		return true
	})
}

// Resize changes the viewport size and reports whether it changed. Callers
// must invalidate their registry when it did.
func (d *Document) Resize(w, h float64) bool {
	return d.viewport.resize(w, h)
}

// --- Layout ---

// Layout computes every node's Box. It reads only intrinsic sizes, flow and
// PinSpacing, never animated offsets, so repeated calls with unchanged inputs
// produce identical boxes.
func (d *Document) Layout() {
	layoutNode(d.root, 0, 0, d.viewport.Width)
	d.height = d.root.Box.Height + d.root.PinSpacing
	d.viewport.setContentHeight(d.height)
	d.generation++
}

func layoutNode(n *Node, x, y, availW float64) {
	w := n.Width
	if w == 0 && n.Flow != FlowRow {
		w = availW
	}
	innerX := x + n.Padding
	innerY := y + n.Padding
	innerW := w - 2*n.Padding
	if innerW < 0 {
		innerW = 0
	}

	var contentW, contentH float64
	switch n.Flow {
	case FlowBlock:
		cy := innerY
		for i, c := range n.children {
			if i > 0 {
				cy += n.Gap
			}
			layoutNode(c, innerX, cy, innerW)
			cy += c.Box.Height + c.PinSpacing
			contentW = max(contentW, c.Box.Width)
		}
		contentH = cy - innerY
	case FlowRow:
		cx := innerX
		for i, c := range n.children {
			if i > 0 {
				cx += n.Gap
			}
			layoutNode(c, cx, innerY, c.Width)
			cx += c.Box.Width
			contentH = max(contentH, c.Box.Height)
		}
		contentW = cx - innerX
		if n.Width == 0 {
			w = contentW + 2*n.Padding
		}
	case FlowWrap:
		cx, cy, lineH := innerX, innerY, 0.0
		for _, c := range n.children {
			cw := c.Width
			if cx > innerX && cx+cw > innerX+innerW {
				cx = innerX
				cy += lineH + n.Gap
				lineH = 0
			}
			layoutNode(c, cx, cy, cw)
			cx += c.Box.Width + n.Gap
			lineH = max(lineH, c.Box.Height)
		}
		if len(n.children) > 0 {
			contentH = cy + lineH - innerY
		}
		contentW = innerW
	}

	h := n.Height
	if h == 0 {
		h = contentH + 2*n.Padding
	}
	n.Box = Rect{X: x, Y: y, Width: w, Height: h}
}

// --- Geometry ---

// ScreenRect returns the node's box in viewport coordinates, including the
// animated translation and pin offset of the node and its ancestors. Scale
// and rotation are not applied.
func (d *Document) ScreenRect(n *Node) Rect {
	var ox, oy float64
	for p := n; p != nil; p = p.Parent {
		ox += p.X + p.XPercent/100*p.Box.Width
		oy += p.Y + p.YPercent/100*p.Box.Height + p.PinOffset
	}
	return Rect{
		X:      n.Box.X + ox,
		Y:      n.Box.Y + oy - d.viewport.ScrollY,
		Width:  n.Box.Width,
		Height: n.Box.Height,
	}
}

// WorldAlpha returns the product of the node's alpha and its ancestors'.
func WorldAlpha(n *Node) float64 {
	a := 1.0
	for p := n; p != nil; p = p.Parent {
		a *= p.Alpha
	}
	return a
}

// HitTest returns the topmost visible, interactable node under the screen
// point, or nil.
func (d *Document) HitTest(x, y float64) *Node {
	var hit *Node
	d.root.Walk(func(n *Node) bool {
		if !n.Visible {
			return false
		}
		if n.Interactable && d.ScreenRect(n).Contains(x, y) {
			hit = n
		}
		return true
	})
	return hit
}

// --- Queries ---

// selectorPart is one compound selector: an optional #name and classes.
type selectorPart struct {
	name    string
	classes []string
	any     bool
}

func (p selectorPart) matches(n *Node) bool {
	if p.any {
		return true
	}
	if p.name != "" && n.Name != p.name {
		return false
	}
	for _, c := range p.classes {
		if !n.HasClass(c) {
			return false
		}
	}
	return true
}

// parseSelector parses a descendant selector such as "#scene1 .word" or
// ".project-card.highlight".
func parseSelector(sel string) ([]selectorPart, error) {
	fields := strings.Fields(sel)
	if len(fields) == 0 {
		return nil, fmt.Errorf("parse selector %q: empty", sel)
	}
	parts := make([]selectorPart, 0, len(fields))
	for _, f := range fields {
		if f == "*" {
			parts = append(parts, selectorPart{any: true})
			continue
		}
		var p selectorPart
		for f != "" {
			kind := f[0]
			f = f[1:]
			end := strings.IndexAny(f, "#.")
			if end < 0 {
				end = len(f)
			}
			tok := f[:end]
			f = f[end:]
			if tok == "" {
				return nil, fmt.Errorf("parse selector %q: empty component", sel)
			}
			switch kind {
			case '#':
				p.name = tok
			case '.':
				p.classes = append(p.classes, tok)
			default:
				return nil, fmt.Errorf("parse selector %q: unexpected %q", sel, kind)
			}
		}
		parts = append(parts, p)
	}
	return parts, nil
}

// matchSelector reports whether n matches parts, with ancestors limited to
// the subtree below scope.
func matchSelector(n, scope *Node, parts []selectorPart) bool {
	last := len(parts) - 1
	if !parts[last].matches(n) {
		return false
	}
	i := last - 1
	for p := n.Parent; p != nil && i >= 0 && p != scope; p = p.Parent {
		if parts[i].matches(p) {
			i--
		}
	}
	return i < 0
}

// Query returns every node in document order matching sel. An invalid
// selector yields an error.
func (d *Document) Query(sel string) ([]*Node, error) {
	return d.QueryWithin(d.root, sel)
}

// QueryWithin is Query restricted to the descendants of scope.
func (d *Document) QueryWithin(scope *Node, sel string) ([]*Node, error) {
	parts, err := parseSelector(sel)
	if err != nil {
		return nil, err
	}
	var out []*Node
	for _, c := range scope.children {
		c.Walk(func(n *Node) bool {
			if matchSelector(n, scope, parts) {
				out = append(out, n)
			}
			return true
		})
	}
	return out, nil
}

// QueryOne returns the first node matching sel, or nil.
func (d *Document) QueryOne(sel string) *Node {
	nodes, err := d.Query(sel)
	if err != nil || len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}
