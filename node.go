package scrolly

import "slices"

// DragContext carries drag event data in screen coordinates.
type DragContext struct {
	Node           *Node
	X, Y           float64
	StartX, StartY float64
	DeltaX, DeltaY float64
}

// nodeIDCounter is a plain counter; scrolly is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is an element of the story document. Layout fields describe the
// node's intrinsic size and how it arranges its children; Box is computed by
// Document.Layout. The animated fields are offsets and styles applied on top
// of the layout box and are the only fields regions and transitions write.
type Node struct {
	// Identity
	ID      uint32
	Name    string // matched by "#name" selectors
	Classes []string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Layout (intrinsic). Zero Width on a block means "fill the parent";
	// zero Height means "fit the children".
	Width, Height float64
	Flow          Flow
	Gap           float64
	Padding       float64
	// PinSpacing is extra scroll distance reserved below this node while a
	// Horizontal adapter pins it.
	PinSpacing float64

	// Box is the computed layout rectangle in document coordinates.
	Box Rect

	// PinOffset shifts the node and its subtree down by the amount of scroll
	// consumed while pinned, holding it still on screen.
	PinOffset float64

	// Animated
	X, Y               float64
	XPercent, YPercent float64 // offsets as a percentage of the box size
	ScaleX, ScaleY     float64
	Rotation           float64
	Alpha              float64
	Blur               float64
	Brightness         float64
	Color              Color
	Visible            bool

	// Content. Fill paints Box in Color; Text is drawn in Color.
	Fill bool
	Text string

	// Interaction
	Interactable   bool
	OnPointerEnter func(*Node)
	OnPointerLeave func(*Node)
	OnDragStart    func(DragContext)
	OnDrag         func(DragContext)
	OnDragEnd      func(DragContext)

	// Metadata
	UserData any

	dirty    bool
	disposed bool
}

// NewNode creates a block node with default styles.
func NewNode(name string, classes ...string) *Node {
	return &Node{
		ID:         nextNodeID(),
		Name:       name,
		Classes:    classes,
		ScaleX:     1,
		ScaleY:     1,
		Alpha:      1,
		Brightness: 1,
		Color:      ColorWhite,
		Visible:    true,
		dirty:      true,
	}
}

// NewBox creates a block node with an intrinsic size and fill color.
func NewBox(name string, w, h float64, c Color, classes ...string) *Node {
	n := NewNode(name, classes...)
	n.Width = w
	n.Height = h
	n.Color = c
	n.Fill = true
	return n
}

// NewText creates a node that renders a string.
func NewText(name, content string, classes ...string) *Node {
	n := NewNode(name, classes...)
	n.Text = content
	return n
}

// --- Classes ---

// HasClass reports whether the node carries the class.
func (n *Node) HasClass(class string) bool {
	return slices.Contains(n.Classes, class)
}

// AddClass adds class if not already present.
func (n *Node) AddClass(class string) {
	if !n.HasClass(class) {
		n.Classes = append(n.Classes, class)
		n.dirty = true
	}
}

// RemoveClass removes class if present.
func (n *Node) RemoveClass(class string) {
	if i := slices.Index(n.Classes, class); i >= 0 {
		n.Classes = slices.Delete(n.Classes, i, i+1)
		n.dirty = true
	}
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("scrolly: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("scrolly: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	child.MarkDirty()
	if globalDebug {
		debugCheckTreeDepth(child)
	}
}

// AddChildren appends each child in order.
func (n *Node) AddChildren(children ...*Node) {
	for _, c := range children {
		n.AddChild(c)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("scrolly: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.MarkDirty()
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Walk calls fn for n and every descendant in depth-first order. Returning
// false from fn skips that node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// MarkDirty flags the node as changed since the last draw.
func (n *Node) MarkDirty() {
	n.dirty = true
}

// Dirty reports whether the node changed since ClearDirty.
func (n *Node) Dirty() bool {
	return n.dirty
}

// ClearDirty resets the dirty flag. Document.ClearDirty calls it after a
// frame is drawn.
func (n *Node) ClearDirty() {
	n.dirty = false
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.UserData = nil
	n.OnPointerEnter = nil
	n.OnPointerLeave = nil
	n.OnDragStart = nil
	n.OnDrag = nil
	n.OnDragEnd = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
