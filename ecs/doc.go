// Package ecs bridges scrolly region crossings into a [Donburi] world.
//
// [NewDonburiStore] publishes every enter, leave, enterBack and leaveBack
// crossing as a typed event. Subscribe to [RegionEventType] in your ECS
// systems to react to story progress.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	registry.SetEventStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
