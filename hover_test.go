package scrolly

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestHoverPlayAndReverse(t *testing.T) {
	card := NewBox("card", 100, 100, ColorWhite)
	h := NewHover([]*Node{card}, Props{PropScale: V(1.1), PropY: V(-8)}, 0.2, ease.Linear)
	h.Attach(card)
	if !card.Interactable {
		t.Fatal("Attach should make the node interactable")
	}

	card.OnPointerEnter(card)
	h.Update(0.1)
	assertNear(t, "scale mid", card.ScaleX, 1.05)
	assertNear(t, "y mid", card.Y, -4)
	h.Update(0.2)
	assertNear(t, "scale hovered", card.ScaleY, 1.1)
	assertNear(t, "progress", h.Progress(), 1)

	// Leaving runs 1.5x faster.
	card.OnPointerLeave(card)
	h.Update(0.1)
	assertNear(t, "scale leaving", card.ScaleX, 1.025)
	h.Update(0.1)
	assertNear(t, "scale rest", card.ScaleX, 1)
	assertNear(t, "y rest", card.Y, 0)
	assertNear(t, "progress rest", h.Progress(), 0)
}

func TestHoverIdleDoesNothing(t *testing.T) {
	card := NewNode("card")
	h := NewHover([]*Node{card}, Props{PropAlpha: V(0.5)}, 0, nil)
	h.Update(1)
	assertNear(t, "alpha", card.Alpha, 1)
}
