package scrolly

import (
	"errors"
	"testing"

	"github.com/tanema/gween/ease"
)

func advance(tw *Tweener, seconds float64, frames int) {
	dt := float32(seconds / float64(frames))
	for range frames {
		tw.Update(dt)
	}
}

func TestTweenerPlayReachesTarget(t *testing.T) {
	tw := NewTweener()
	n := NewNode("n")
	n.Alpha = 0
	if err := tw.Play(Transition{To: Props{PropAlpha: V(1)}, Duration: 0.2}, []*Node{n}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if !tw.Animating(n, PropAlpha) {
		t.Fatal("alpha should be animating")
	}
	advance(tw, 0.1, 3)
	if n.Alpha <= 0 || n.Alpha >= 1 {
		t.Errorf("mid alpha = %v, want in (0, 1)", n.Alpha)
	}
	advance(tw, 0.2, 6)
	assertNear(t, "end alpha", n.Alpha, 1)
	if tw.Len() != 0 {
		t.Errorf("Len = %d after completion, want 0", tw.Len())
	}
}

func TestTweenerLastWriterWins(t *testing.T) {
	tw := NewTweener()
	n := NewNode("n")
	n.Alpha = 0.5
	_ = tw.Play(Transition{To: Props{PropAlpha: V(1)}, Duration: 0.2}, []*Node{n})
	advance(tw, 0.05, 1)
	_ = tw.Play(Transition{To: Props{PropAlpha: V(0)}, Duration: 0.2}, []*Node{n})
	if tw.Len() != 1 {
		t.Fatalf("Len = %d, want one tween per key", tw.Len())
	}
	advance(tw, 0.4, 8)
	assertNear(t, "alpha", n.Alpha, 0)
}

func TestTweenerIndependentProperties(t *testing.T) {
	tw := NewTweener()
	n := NewNode("n")
	_ = tw.Play(Transition{To: Props{PropAlpha: V(0)}}, []*Node{n})
	_ = tw.Play(Transition{To: Props{PropY: V(40)}}, []*Node{n})
	if tw.Len() != 2 {
		t.Fatalf("Len = %d, want 2", tw.Len())
	}
	advance(tw, 1, 20)
	assertNear(t, "alpha", n.Alpha, 0)
	assertNear(t, "y", n.Y, 40)
}

func TestTweenerDelayAndStagger(t *testing.T) {
	tw := NewTweener()
	nodes := []*Node{NewNode("a"), NewNode("b"), NewNode("c")}
	for _, n := range nodes {
		n.Alpha = 0
	}
	err := tw.Play(Transition{
		To:       Props{PropAlpha: V(1)},
		Duration: 0.1,
		Delay:    0.05,
		Stagger:  0.1,
		Ease:     ease.Linear,
	}, nodes)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}

	advance(tw, 0.1, 1)
	if nodes[0].Alpha <= 0 {
		t.Errorf("first target should have started, alpha = %v", nodes[0].Alpha)
	}
	assertNear(t, "second target waiting", nodes[1].Alpha, 0)
	assertNear(t, "third target waiting", nodes[2].Alpha, 0)

	advance(tw, 0.5, 10)
	for i, n := range nodes {
		if !approxEqual(n.Alpha, 1, 1e-6) {
			t.Errorf("target %d alpha = %v, want 1", i, n.Alpha)
		}
	}
}

func TestTweenerStartsFromValueAtDelayEnd(t *testing.T) {
	tw := NewTweener()
	n := NewNode("n")
	n.X = 0
	_ = tw.Play(Transition{To: Props{PropX: V(100)}, Duration: 1, Delay: 0.5, Ease: ease.Linear}, []*Node{n})
	advance(tw, 0.25, 1)
	n.X = 50
	advance(tw, 0.25, 1)
	advance(tw, 0.5, 1)
	assertNear(t, "x", n.X, 75)
}

func TestTweenerFinishAndKill(t *testing.T) {
	tw := NewTweener()
	a, b := NewNode("a"), NewNode("b")
	a.Alpha, b.Alpha = 0, 0
	_ = tw.Play(Transition{To: Props{PropAlpha: V(1)}, Duration: 1}, []*Node{a, b})

	tw.Kill(b)
	if tw.Animating(b, PropAlpha) {
		t.Error("killed target should not be animating")
	}
	tw.Finish()
	assertNear(t, "finished alpha", a.Alpha, 1)
	assertNear(t, "killed alpha", b.Alpha, 0)
	if tw.Len() != 0 {
		t.Errorf("Len = %d after Finish, want 0", tw.Len())
	}
}

func TestTweenerDropsDisposedNodes(t *testing.T) {
	tw := NewTweener()
	parent := NewNode("parent")
	n := NewNode("n")
	parent.AddChild(n)
	n.Alpha = 0
	_ = tw.Play(Transition{To: Props{PropAlpha: V(1)}}, []*Node{n})
	n.Dispose()
	tw.Update(0.1)
	if tw.Len() != 0 {
		t.Errorf("Len = %d, want disposed target dropped", tw.Len())
	}
	assertNear(t, "alpha untouched", n.Alpha, 0)
}

func TestTweenerValueErrorSchedulesNothing(t *testing.T) {
	tw := NewTweener()
	a, b := NewNode("a"), NewNode("b")
	boom := errors.New("boom")
	err := tw.Play(Transition{To: Props{
		PropAlpha: Func(func(i int, _ *Node) (float64, error) {
			if i == 1 {
				return 0, boom
			}
			return 0.5, nil
		}),
	}}, []*Node{a, b})
	if !errors.Is(err, boom) {
		t.Fatalf("Play error = %v, want %v", err, boom)
	}
	if tw.Len() != 0 {
		t.Errorf("Len = %d, want nothing scheduled", tw.Len())
	}
}
