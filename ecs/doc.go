// Package ecs routes hdsprite's invalidation events through a [Donburi]
// world.
//
// Games that already run their day cycle and settings menu as ECS systems
// publish [DayStartedEvent] and [ConfigSavedEvent]; [Bind] subscribes an
// engine so the events reach its scheduler when the world processes them.
//
// Usage:
//
//	ecs.Bind(world, engine)
//	ecs.BindClock(world, clock)
//	// each frame
//	clock.Update(dt)
//	events.ProcessAllEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
