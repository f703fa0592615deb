package scrolly

import (
	"testing"

	"github.com/tanema/gween/ease"
)

// dotDocument returns a document whose trigger holds three ".dot" children,
// plus one ".dot" outside the trigger.
func dotDocument() (*Document, *Node, []*Node) {
	doc := NewDocument(800, 600)
	trigger := NewNode("scene")
	var dots []*Node
	for i := range 3 {
		d := NewBox("dot-"+string(rune('0'+i)), 10, 10, ColorWhite, "dot")
		d.Alpha = 0
		dots = append(dots, d)
		trigger.AddChild(d)
	}
	doc.Root().AddChildren(trigger, NewBox("stray", 10, 10, ColorWhite, "dot"))
	return doc, trigger, dots
}

func compile(t *testing.T, doc *Document, scope *Node, steps ...Step) *timeline {
	t.Helper()
	tl, err := compileAnimation("test", NewAnimation(steps...), doc, scope)
	if err != nil {
		t.Fatalf("compileAnimation: %v", err)
	}
	if tl == nil {
		t.Fatal("compileAnimation returned no timeline")
	}
	return tl
}

func TestResolveTargets(t *testing.T) {
	doc, trigger, dots := dotDocument()

	tests := []struct {
		name     string
		sel      string
		global   bool
		explicit []*Node
		want     int
	}{
		{"scoped", ".dot", false, nil, 3},
		{"global", ".dot", true, nil, 4},
		{"empty selects scope", "", false, nil, 1},
		{"explicit wins", ".dot", true, dots[:1], 1},
		{"no match", ".missing", false, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveTargets(doc, trigger, tt.sel, tt.global, tt.explicit)
			if err != nil {
				t.Fatalf("resolveTargets: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}

	if _, err := resolveTargets(doc, trigger, ".", false, nil); err == nil {
		t.Error("expected an error for an invalid selector")
	}
}

func TestTimelineStagger(t *testing.T) {
	doc, trigger, dots := dotDocument()
	tl := compile(t, doc, trigger, Step{
		Targets:  ".dot",
		To:       Props{PropAlpha: V(1)},
		Duration: 0.5,
		Stagger:  0.5,
		Ease:     ease.Linear,
	})
	assertNear(t, "duration", tl.duration, 1.5)

	if err := tl.seek(1.0 / 3); err != nil {
		t.Fatalf("seek: %v", err)
	}
	assertNear(t, "dot 0", dots[0].Alpha, 1)
	assertNear(t, "dot 1", dots[1].Alpha, 0)
	assertNear(t, "dot 2", dots[2].Alpha, 0)

	if err := tl.seek(0.5); err != nil {
		t.Fatalf("seek: %v", err)
	}
	assertNear(t, "dot 1 halfway", dots[1].Alpha, 0.5)
}

func TestTimelineSequentialSteps(t *testing.T) {
	doc, trigger, dots := dotDocument()
	tl := compile(t, doc, trigger,
		Step{Nodes: dots[:1], To: Props{PropAlpha: V(0.5)}, Duration: 1, Ease: ease.Linear},
		Step{Nodes: dots[:1], To: Props{PropAlpha: V(1)}, Position: 1, Duration: 1, Ease: ease.Linear},
	)
	_ = tl.seek(0.75)
	assertNear(t, "alpha", dots[0].Alpha, 0.75)

	// Seeking backward is deterministic.
	_ = tl.seek(0.25)
	assertNear(t, "alpha back", dots[0].Alpha, 0.25)
}

func TestTimelineFromTo(t *testing.T) {
	doc, trigger, dots := dotDocument()
	tl := compile(t, doc, trigger,
		Step{Nodes: dots[:1], To: Props{PropY: V(10)}, Duration: 1, Ease: ease.Linear},
		Step{
			Nodes:    dots[1:2],
			From:     Props{PropY: V(100)},
			To:       Props{PropY: V(0)},
			Position: 1,
			Duration: 1,
			Ease:     ease.Linear,
		},
	)
	// Before its start a fromTo step already holds its from value.
	_ = tl.seek(0)
	assertNear(t, "from before start", dots[1].Y, 100)
	_ = tl.seek(0.75)
	assertNear(t, "fromTo halfway", dots[1].Y, 50)
	_ = tl.seek(1)
	assertNear(t, "fromTo end", dots[1].Y, 0)
}

func TestTimelineSkipsEmptyTargets(t *testing.T) {
	doc, trigger, _ := dotDocument()
	tl, err := compileAnimation("test", NewAnimation(Step{Targets: ".missing", To: Props{PropAlpha: V(1)}}), doc, trigger)
	if err != nil {
		t.Fatalf("compileAnimation: %v", err)
	}
	if tl != nil {
		t.Error("animation with no targets should compile to nothing")
	}
}

func TestTimelineRevert(t *testing.T) {
	doc, trigger, dots := dotDocument()
	tl := compile(t, doc, trigger, Step{Targets: ".dot", To: Props{PropAlpha: V(1), PropScale: V(2)}})
	_ = tl.seek(1)
	assertNear(t, "scale", dots[2].ScaleY, 2)
	tl.revert()
	for i, d := range dots {
		if d.Alpha != 0 || d.ScaleX != 1 || d.ScaleY != 1 {
			t.Errorf("dot %d not reverted: alpha %v scale %v,%v", i, d.Alpha, d.ScaleX, d.ScaleY)
		}
	}
}

func TestTimelineCachesValueFuncs(t *testing.T) {
	doc, trigger, _ := dotDocument()
	calls := 0
	tl := compile(t, doc, trigger, Step{
		Targets: ".dot",
		To: Props{PropX: Func(func(i int, _ *Node) (float64, error) {
			calls++
			return float64(i * 10), nil
		})},
	})
	_ = tl.seek(0.5)
	_ = tl.seek(1)
	if calls != 3 {
		t.Errorf("value func calls = %d, want 3 (once per target)", calls)
	}
	tl.invalidate()
	_ = tl.seek(1)
	if calls != 6 {
		t.Errorf("value func calls = %d after invalidate, want 6", calls)
	}
}

func TestTimelineSkipsDisposedTargets(t *testing.T) {
	doc, trigger, dots := dotDocument()
	tl := compile(t, doc, trigger, Step{Targets: ".dot", To: Props{PropAlpha: V(1)}})
	dots[1].Dispose()
	if err := tl.seek(1); err != nil {
		t.Fatalf("seek: %v", err)
	}
	assertNear(t, "live target", dots[0].Alpha, 1)
	assertNear(t, "disposed target", dots[1].Alpha, 0)
}
