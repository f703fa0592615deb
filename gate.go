package scrolly

import (
	"fmt"
	"strings"
)

// Gate is the passphrase lock in front of the story: the reader drags word
// tokens into ordered slots, and the gate unlocks when the sequence matches.
// While locked, the viewport ignores scroll input.
type Gate struct {
	expected []string
	slots    []string
	unlocked bool
	attempts int
	viewport *Viewport

	// OnUnlock runs once, when the correct sequence is completed.
	OnUnlock func()
	// OnReject runs after each wrong complete sequence, with the attempt count.
	OnReject func(attempt int)
}

// NewGate creates a gate expecting tokens in the given order. If vp is
// non-nil it is locked until the gate opens.
func NewGate(vp *Viewport, expected ...string) *Gate {
	g := &Gate{
		expected: expected,
		slots:    make([]string, len(expected)),
		viewport: vp,
	}
	if vp != nil {
		vp.Lock(LockGate)
	}
	return g
}

// Slots returns the current slot contents; empty strings are free slots.
func (g *Gate) Slots() []string { return g.slots }

// Unlocked reports whether the gate has opened.
func (g *Gate) Unlocked() bool { return g.unlocked }

// Attempts returns how many wrong sequences were submitted.
func (g *Gate) Attempts() int { return g.attempts }

// Filled reports whether every slot holds a token.
func (g *Gate) Filled() bool {
	for _, s := range g.slots {
		if s == "" {
			return false
		}
	}
	return true
}

// Drop places token in slot, replacing any token already there, and moves
// it out of any other slot. When the last slot fills the sequence is
// checked and the result returned.
func (g *Gate) Drop(slot int, token string) error {
	if g.unlocked {
		return ErrAlreadyUnlocked
	}
	if slot < 0 || slot >= len(g.slots) {
		return fmt.Errorf("%w: %d", ErrSlotOutOfRange, slot)
	}
	for i, s := range g.slots {
		if s == token {
			g.slots[i] = ""
		}
	}
	g.slots[slot] = token
	if g.Filled() {
		return g.Check()
	}
	return nil
}

// Remove empties a slot.
func (g *Gate) Remove(slot int) {
	if slot >= 0 && slot < len(g.slots) {
		g.slots[slot] = ""
	}
}

// Clear empties every slot.
func (g *Gate) Clear() {
	clear(g.slots)
}

// Check compares the slots to the expected sequence, case-insensitively.
// A wrong sequence clears the slots and returns ErrWrongSequence.
func (g *Gate) Check() error {
	if g.unlocked {
		return nil
	}
	if !g.Filled() {
		return ErrIncomplete
	}
	for i, want := range g.expected {
		if !strings.EqualFold(strings.TrimSpace(g.slots[i]), strings.TrimSpace(want)) {
			g.attempts++
			g.Clear()
			logger.Info("gate rejected sequence", "attempt", g.attempts)
			if g.OnReject != nil {
				g.OnReject(g.attempts)
			}
			return fmt.Errorf("%w (attempt %d)", ErrWrongSequence, g.attempts)
		}
	}
	g.unlocked = true
	if g.viewport != nil {
		g.viewport.Unlock(LockGate)
	}
	logger.Info("gate unlocked", "attempts", g.attempts)
	if g.OnUnlock != nil {
		g.OnUnlock()
	}
	return nil
}
