package ecs

import (
	"testing"

	"github.com/phanxgames/scrolly"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []scrolly.RegionEventInfo
	RegionEventType.Subscribe(world, func(w donburi.World, e scrolly.RegionEventInfo) {
		received = append(received, e)
	})

	store.EmitEvent(scrolly.RegionEventInfo{
		Type:     scrolly.EventEnter,
		RegionID: "hero",
		State:    scrolly.StateActive,
		Progress: 0.25,
		ScrollY:  300,
	})
	store.EmitEvent(scrolly.RegionEventInfo{Type: scrolly.EventLeave, RegionID: "hero"})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("events delivered before ProcessEvents: %d", len(received))
	}
	RegionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if e0.Type != scrolly.EventEnter || e0.RegionID != "hero" || e0.ScrollY != 300 {
		t.Errorf("event 0: %+v", e0)
	}
	if received[1].Type != scrolly.EventLeave {
		t.Errorf("event 1: %+v", received[1])
	}
}

func TestDonburiStore_RegistryCrossings(t *testing.T) {
	doc := scrolly.NewDocument(800, 600)
	doc.Root().AddChildren(
		scrolly.NewBox("above", 0, 1000, scrolly.ColorWhite),
		scrolly.NewBox("scene", 0, 1000, scrolly.ColorWhite),
		scrolly.NewBox("below", 0, 3000, scrolly.ColorWhite),
	)
	reg := scrolly.NewRegistry(doc)
	world := donburi.NewWorld()
	reg.SetEventStore(NewDonburiStore(world))

	err := reg.Build(func(b *scrolly.Builder) error {
		b.Region(scrolly.RegionConfig{ID: "scene", Trigger: "#scene", Start: "top top", End: "bottom top"})
		return nil
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var types []scrolly.RegionEvent
	RegionEventType.Subscribe(world, func(w donburi.World, e scrolly.RegionEventInfo) {
		types = append(types, e.Type)
	})

	for _, y := range []float64{1500, 2500, 1500, 0} {
		doc.Viewport().SetScroll(y)
		reg.Update(1.0 / 60)
	}
	events.ProcessAllEvents(world)

	want := []scrolly.RegionEvent{scrolly.EventEnter, scrolly.EventLeave, scrolly.EventEnterBack, scrolly.EventLeaveBack}
	if len(types) != len(want) {
		t.Fatalf("got %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, types[i], want[i])
		}
	}
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	RegionEventType.Subscribe(world, func(w donburi.World, e scrolly.RegionEventInfo) {
		count1++
	})
	RegionEventType.Subscribe(world, func(w donburi.World, e scrolly.RegionEventInfo) {
		count2++
	})

	store.EmitEvent(scrolly.RegionEventInfo{Type: scrolly.EventEnter})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
