package scrolly

import "fmt"

// Bounds is an anchor resolved to scroll offsets. Progress is 0 at Start and
// 1 at End.
type Bounds struct {
	Start, End float64
}

// Span returns End - Start.
func (b Bounds) Span() float64 {
	return b.End - b.Start
}

// Progress maps a scroll offset to [0, 1]. A zero span behaves as a step at
// Start: 0 before it, 1 at or after it.
func (b Bounds) Progress(scroll float64) float64 {
	span := b.End - b.Start
	if span <= 0 {
		if scroll < b.Start {
			return 0
		}
		return 1
	}
	return clamp01((scroll - b.Start) / span)
}

// Contains reports whether scroll lies within [Start, End].
func (b Bounds) Contains(scroll float64) bool {
	return scroll >= b.Start && scroll <= b.End
}

// ResolveBounds computes scroll offsets for an anchor. elemPos and elemSize
// locate the trigger along the scroll axis in the same coordinate space as
// the scroll offset; viewSize is the viewport extent along that axis.
func ResolveBounds(a Anchor, elemPos, elemSize, viewSize float64) (Bounds, error) {
	start := elemPos + a.Start.Trigger.At(elemSize) - a.Start.View.At(viewSize)
	var end float64
	if a.End.Relative {
		end = start + a.End.Offset
	} else {
		end = elemPos + a.End.Trigger.At(elemSize) - a.End.View.At(viewSize)
	}
	b := Bounds{Start: start, End: end}
	if end < start {
		return b, fmt.Errorf("%w: start %.1f, end %.1f", ErrNegativeSpan, start, end)
	}
	return b, nil
}

// axisGeometry returns the trigger's position and size along axis, and the
// viewport extent along it. Horizontal geometry is measured in the track's
// coordinate space relative to the container's left edge.
func axisGeometry(axis Axis, trigger *Node, h *Horizontal, vp *Viewport) (pos, size, view float64) {
	if axis == AxisHorizontal && h != nil {
		return trigger.Box.X - h.wrapper.Box.X, trigger.Box.Width, h.wrapper.Box.Width
	}
	return trigger.Box.Y, trigger.Box.Height, vp.Height
}
