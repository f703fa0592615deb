package scrolly

import (
	"fmt"
	"slices"
	"strings"
)

// Property identifies one animatable node field.
type Property uint8

const (
	PropX          Property = iota // Node.X
	PropY                          // Node.Y
	PropXPercent                   // Node.XPercent
	PropYPercent                   // Node.YPercent
	PropScale                      // Node.ScaleX and Node.ScaleY together
	PropScaleX                     // Node.ScaleX
	PropScaleY                     // Node.ScaleY
	PropRotation                   // Node.Rotation, radians
	PropAlpha                      // Node.Alpha
	PropBlur                       // Node.Blur, pixels
	PropBrightness                 // Node.Brightness
	PropColorR                     // Node.Color.R
	PropColorG                     // Node.Color.G
	PropColorB                     // Node.Color.B
)

var propertyNames = map[string]Property{
	"x":          PropX,
	"y":          PropY,
	"xpercent":   PropXPercent,
	"ypercent":   PropYPercent,
	"scale":      PropScale,
	"scalex":     PropScaleX,
	"scaley":     PropScaleY,
	"rotation":   PropRotation,
	"rotate":     PropRotation,
	"alpha":      PropAlpha,
	"opacity":    PropAlpha,
	"blur":       PropBlur,
	"brightness": PropBrightness,
	"r":          PropColorR,
	"g":          PropColorG,
	"b":          PropColorB,
}

// ParseProperty resolves a case-insensitive property name such as "opacity"
// or "yPercent".
func ParseProperty(name string) (Property, error) {
	p, ok := propertyNames[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown property %q", name)
	}
	return p, nil
}

// String returns the canonical name of the property.
func (p Property) String() string {
	switch p {
	case PropX:
		return "x"
	case PropY:
		return "y"
	case PropXPercent:
		return "xPercent"
	case PropYPercent:
		return "yPercent"
	case PropScale:
		return "scale"
	case PropScaleX:
		return "scaleX"
	case PropScaleY:
		return "scaleY"
	case PropRotation:
		return "rotation"
	case PropAlpha:
		return "alpha"
	case PropBlur:
		return "blur"
	case PropBrightness:
		return "brightness"
	case PropColorR:
		return "r"
	case PropColorG:
		return "g"
	case PropColorB:
		return "b"
	default:
		return "unknown"
	}
}

// Get reads the property from n.
func (p Property) Get(n *Node) float64 {
	switch p {
	case PropX:
		return n.X
	case PropY:
		return n.Y
	case PropXPercent:
		return n.XPercent
	case PropYPercent:
		return n.YPercent
	case PropScale, PropScaleX:
		return n.ScaleX
	case PropScaleY:
		return n.ScaleY
	case PropRotation:
		return n.Rotation
	case PropAlpha:
		return n.Alpha
	case PropBlur:
		return n.Blur
	case PropBrightness:
		return n.Brightness
	case PropColorR:
		return n.Color.R
	case PropColorG:
		return n.Color.G
	case PropColorB:
		return n.Color.B
	}
	return 0
}

// Set writes v to the property on n and marks it dirty.
func (p Property) Set(n *Node, v float64) {
	switch p {
	case PropX:
		n.X = v
	case PropY:
		n.Y = v
	case PropXPercent:
		n.XPercent = v
	case PropYPercent:
		n.YPercent = v
	case PropScale:
		n.ScaleX, n.ScaleY = v, v
	case PropScaleX:
		n.ScaleX = v
	case PropScaleY:
		n.ScaleY = v
	case PropRotation:
		n.Rotation = v
	case PropAlpha:
		n.Alpha = v
	case PropBlur:
		n.Blur = v
	case PropBrightness:
		n.Brightness = v
	case PropColorR:
		n.Color.R = v
	case PropColorG:
		n.Color.G = v
	case PropColorB:
		n.Color.B = v
	default:
		return
	}
	n.MarkDirty()
}

// ValueFunc computes a property value for the index-th node of a target
// set. It is evaluated lazily and cached until the next refresh; an error
// skips the owning animation for the frame.
type ValueFunc func(index int, n *Node) (float64, error)

// Value is a fixed property value or a function producing one.
type Value struct {
	fixed float64
	fn    ValueFunc
}

// V returns a fixed value.
func V(f float64) Value {
	return Value{fixed: f}
}

// Func returns a computed value.
func Func(fn ValueFunc) Value {
	return Value{fn: fn}
}

// eval returns the value for the index-th node. A panicking ValueFunc is
// reported as an error.
func (v Value) eval(i int, n *Node) (f float64, err error) {
	if v.fn == nil {
		return v.fixed, nil
	}
	defer func() {
		if p := recover(); p != nil {
			f, err = 0, fmt.Errorf("value func panicked: %v", p)
		}
	}()
	return v.fn(i, n)
}

// Props maps properties to target values.
type Props map[Property]Value

// sortedKeys returns the properties in a stable order.
func (p Props) sortedKeys() []Property {
	keys := make([]Property, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
