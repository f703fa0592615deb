package ecs

import (
	"github.com/phanxgames/scrolly"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// RegionEventType is the Donburi event type for region crossings.
var RegionEventType = events.NewEventType[scrolly.RegionEventInfo]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world. Events
// are queued; consume them with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) scrolly.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event scrolly.RegionEventInfo) {
	RegionEventType.Publish(s.world, event)
}
