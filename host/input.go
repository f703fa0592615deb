package host

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/scrolly"
)

const defaultDragDeadZone = 4.0 // pixels

// pointerEvent is one injected pointer sample in screen coordinates.
type pointerEvent struct {
	x, y    float64
	pressed bool
}

type pointerState struct {
	down      bool
	startX    float64
	startY    float64
	lastX     float64
	lastY     float64
	hitNode   *scrolly.Node
	hoverNode *scrolly.Node
	dragging  bool
	// scrolling is a drag that started on empty space; it scrolls the page.
	scrolling bool
}

// Input turns mouse, touch, wheel and keyboard state into scroll requests
// and node pointer callbacks. Injected events take precedence over the
// real pointer, one per frame.
type Input struct {
	doc *scrolly.Document

	WheelSpeed   float64
	KeyStep      float64
	DragDeadZone float64

	ps      pointerState
	queue   []pointerEvent
	touches []ebiten.TouchID
}

// NewInput creates an input handler for doc.
func NewInput(doc *scrolly.Document) *Input {
	return &Input{
		doc:          doc,
		WheelSpeed:   defaultWheelSpeed,
		KeyStep:      defaultKeyStep,
		DragDeadZone: defaultDragDeadZone,
	}
}

// --- Injection ---

// InjectPress queues a pointer press at the given screen coordinates.
func (in *Input) InjectPress(x, y float64) {
	in.queue = append(in.queue, pointerEvent{x: x, y: y, pressed: true})
}

// InjectMove queues a pointer move with the button held down.
func (in *Input) InjectMove(x, y float64) {
	in.queue = append(in.queue, pointerEvent{x: x, y: y, pressed: true})
}

// InjectRelease queues a pointer release.
func (in *Input) InjectRelease(x, y float64) {
	in.queue = append(in.queue, pointerEvent{x: x, y: y})
}

// InjectClick queues a press and a release at the same point. Consumes two
// frames.
func (in *Input) InjectClick(x, y float64) {
	in.InjectPress(x, y)
	in.InjectRelease(x, y)
}

// InjectDrag queues a press, frames-2 interpolated moves and a release.
func (in *Input) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	in.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		in.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	in.InjectRelease(toX, toY)
}

// Pending returns the number of queued events.
func (in *Input) Pending() int {
	return len(in.queue)
}

// --- Per-frame processing ---

// Update reads one frame of input.
func (in *Input) Update() {
	if !in.processInjected() {
		in.processPointerDevice()
	}
	in.processScrollKeys()
}

// processInjected pops one queued event. Returns true if one was consumed,
// in which case the real pointer is ignored this frame.
func (in *Input) processInjected() bool {
	if len(in.queue) == 0 {
		return false
	}
	evt := in.queue[0]
	copy(in.queue, in.queue[1:])
	in.queue = in.queue[:len(in.queue)-1]
	in.processPointer(evt.x, evt.y, evt.pressed)
	return true
}

// processPointerDevice feeds the mouse, or the first touch when the mouse
// button is up, through the pointer state machine.
func (in *Input) processPointerDevice() {
	in.touches = ebiten.AppendTouchIDs(in.touches[:0])
	if len(in.touches) > 0 && !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		tx, ty := ebiten.TouchPosition(in.touches[0])
		in.processPointer(float64(tx), float64(ty), true)
		return
	}
	mx, my := ebiten.CursorPosition()
	in.processPointer(float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

func (in *Input) processScrollKeys() {
	vp := in.doc.Viewport()
	if _, wy := ebiten.Wheel(); wy != 0 {
		vp.ScrollBy(-wy * in.WheelSpeed)
	}
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowDown):
		vp.ScrollBy(in.KeyStep)
	case ebiten.IsKeyPressed(ebiten.KeyArrowUp):
		vp.ScrollBy(-in.KeyStep)
	}
	page := vp.Height * 0.9
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace), inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		vp.ScrollTo(vp.ScrollY+page, 0.5, nil)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		vp.ScrollTo(vp.ScrollY-page, 0.5, nil)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		vp.ScrollTo(0, 0.8, nil)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		vp.ScrollTo(vp.MaxScroll(), 0.8, nil)
	}
}

// processPointer runs the pointer state machine for one sample.
func (in *Input) processPointer(x, y float64, pressed bool) {
	ps := &in.ps

	var target *scrolly.Node
	if ps.dragging && ps.hitNode != nil {
		target = ps.hitNode
	} else {
		target = in.doc.HitTest(x, y)
	}

	if target != ps.hoverNode {
		if ps.hoverNode != nil && ps.hoverNode.OnPointerLeave != nil {
			ps.hoverNode.OnPointerLeave(ps.hoverNode)
		}
		if target != nil && target.OnPointerEnter != nil {
			target.OnPointerEnter(target)
		}
		ps.hoverNode = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y
		ps.hitNode = target
		ps.dragging = false
		ps.scrolling = false

	case !pressed && ps.down:
		if ps.dragging && ps.hitNode != nil && ps.hitNode.OnDragEnd != nil {
			ps.hitNode.OnDragEnd(in.dragContext(ps.hitNode, x, y))
			ps.hitNode.MarkDirty()
		}
		ps.down = false
		ps.hitNode = nil
		ps.dragging = false
		ps.scrolling = false

	case pressed && ps.down:
		if x != ps.lastX || y != ps.lastY {
			if !ps.dragging && !ps.scrolling {
				dx, dy := x-ps.startX, y-ps.startY
				if math.Sqrt(dx*dx+dy*dy) > in.DragDeadZone {
					if ps.hitNode != nil && ps.hitNode.OnDrag != nil {
						ps.dragging = true
						if ps.hitNode.OnDragStart != nil {
							ps.hitNode.OnDragStart(in.dragContext(ps.hitNode, x, y))
						}
					} else {
						ps.scrolling = true
					}
				}
			}
			switch {
			case ps.dragging:
				ps.hitNode.OnDrag(in.dragContext(ps.hitNode, x, y))
				ps.hitNode.MarkDirty()
			case ps.scrolling:
				in.doc.Viewport().ScrollBy(ps.lastY - y)
			}
		}
		ps.lastX, ps.lastY = x, y

	default:
		ps.lastX, ps.lastY = x, y
	}
}

func (in *Input) dragContext(n *scrolly.Node, x, y float64) scrolly.DragContext {
	return scrolly.DragContext{
		Node:   n,
		X:      x,
		Y:      y,
		StartX: in.ps.startX,
		StartY: in.ps.startY,
		DeltaX: x - in.ps.lastX,
		DeltaY: y - in.ps.lastY,
	}
}
