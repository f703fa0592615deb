package scrolly

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Default anchor descriptors used when a region leaves Start or End empty.
const (
	DefaultStart = "top bottom"
	DefaultEnd   = "bottom top"
)

// Edge is a position along one axis of a box: Frac of its size plus Px.
type Edge struct {
	Frac float64
	Px   float64
}

// At returns the edge's offset within a box of the given size.
func (e Edge) At(size float64) float64 {
	return e.Frac*size + e.Px
}

// AnchorPoint pairs a point on the trigger with a point on the viewport. The
// scroll offset at which the two coincide is the anchor's pixel position.
// Relative points are instead an offset from the resolved start.
type AnchorPoint struct {
	Trigger  Edge
	View     Edge
	Relative bool
	Offset   float64
}

// Anchor is a region's (start, end) pair.
type Anchor struct {
	Start, End AnchorPoint
}

// ParseAnchor parses start and end descriptors such as "top 70%",
// "bottom center", "left right", "bottom bottom-=150px" or the relative
// end "+=600". Empty strings take DefaultStart and DefaultEnd.
func ParseAnchor(start, end string) (Anchor, error) {
	if start == "" {
		start = DefaultStart
	}
	if end == "" {
		end = DefaultEnd
	}
	s, err := parseAnchorPoint(start)
	if err != nil {
		return Anchor{}, err
	}
	if s.Relative {
		return Anchor{}, fmt.Errorf("%w: start %q cannot be relative", ErrInvalidAnchor, start)
	}
	e, err := parseAnchorPoint(end)
	if err != nil {
		return Anchor{}, err
	}
	return Anchor{Start: s, End: e}, nil
}

// RelativeEnd builds an end point distance pixels after the start.
func RelativeEnd(distance float64) AnchorPoint {
	return AnchorPoint{Relative: true, Offset: distance}
}

func parseAnchorPoint(desc string) (AnchorPoint, error) {
	desc = strings.TrimSpace(desc)
	if rest, ok := strings.CutPrefix(desc, "+="); ok {
		px, err := parsePixels(rest)
		if err != nil {
			return AnchorPoint{}, fmt.Errorf("%w: %q: %v", ErrInvalidAnchor, desc, err)
		}
		return AnchorPoint{Relative: true, Offset: px}, nil
	}

	fields := strings.Fields(desc)
	if len(fields) == 0 || len(fields) > 2 {
		return AnchorPoint{}, fmt.Errorf("%w: %q", ErrInvalidAnchor, desc)
	}
	trig, err := parseEdge(fields[0])
	if err != nil {
		return AnchorPoint{}, fmt.Errorf("%w: %q: %v", ErrInvalidAnchor, desc, err)
	}
	var view Edge
	if len(fields) == 2 {
		view, err = parseEdge(fields[1])
		if err != nil {
			return AnchorPoint{}, fmt.Errorf("%w: %q: %v", ErrInvalidAnchor, desc, err)
		}
	}
	return AnchorPoint{Trigger: trig, View: view}, nil
}

// parseEdge parses a keyword, percentage or pixel value with an optional
// "+=N" / "-=N" adjustment, e.g. "bottom-=150px" or "top+=10%".
func parseEdge(tok string) (Edge, error) {
	base, adj, sign := tok, "", 1.0
	if i := strings.Index(tok, "+="); i > 0 {
		base, adj = tok[:i], tok[i+2:]
	} else if i := strings.Index(tok, "-="); i > 0 {
		base, adj, sign = tok[:i], tok[i+2:], -1
	}
	e, err := parseEdgeValue(base)
	if err != nil {
		return Edge{}, err
	}
	if adj != "" {
		a, err := parseEdgeValue(adj)
		if err != nil {
			return Edge{}, err
		}
		e.Frac += sign * a.Frac
		e.Px += sign * a.Px
	}
	return e, nil
}

func parseEdgeValue(tok string) (Edge, error) {
	switch tok {
	case "top", "left":
		return Edge{Frac: 0}, nil
	case "center":
		return Edge{Frac: 0.5}, nil
	case "bottom", "right":
		return Edge{Frac: 1}, nil
	}
	if pct, ok := strings.CutSuffix(tok, "%"); ok {
		v, err := strconv.ParseFloat(pct, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return Edge{}, fmt.Errorf("bad percentage %q", tok)
		}
		return Edge{Frac: v / 100}, nil
	}
	px, err := parsePixels(tok)
	if err != nil {
		return Edge{}, err
	}
	return Edge{Px: px}, nil
}

func parsePixels(tok string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(tok, "px"), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("bad length %q", tok)
	}
	return v, nil
}
