package ecs

import (
	"github.com/phanxgames/hdsprite"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// DayStarted is published once per in-world day transition.
type DayStarted struct {
	Day int
}

// ConfigSaved is published once per user settings commit.
type ConfigSaved struct {
	Owner string // owner whose settings changed; empty for all
}

// DayStartedEvent is the Donburi event type for day boundaries.
var DayStartedEvent = events.NewEventType[DayStarted]()

// ConfigSavedEvent is the Donburi event type for settings commits.
var ConfigSavedEvent = events.NewEventType[ConfigSaved]()

// Handler receives the routed events. *hdsprite.Engine implements it.
type Handler interface {
	DayStarted() int
	ConfigSaved()
}

// Bind subscribes h to both event types on world. Handlers run when the
// world's events are processed, not when they are published.
func Bind(world donburi.World, h Handler) {
	DayStartedEvent.Subscribe(world, func(w donburi.World, e DayStarted) {
		h.DayStarted()
	})
	ConfigSavedEvent.Subscribe(world, func(w donburi.World, e ConfigSaved) {
		h.ConfigSaved()
	})
}

// BindClock makes clock publish a DayStarted event on every day boundary.
// It replaces any existing OnDayStarted callback.
func BindClock(world donburi.World, clock *hdsprite.DayClock) {
	clock.OnDayStarted = func(day int) {
		PublishDayStarted(world, day)
	}
}

// PublishDayStarted queues a day boundary on world.
func PublishDayStarted(world donburi.World, day int) {
	DayStartedEvent.Publish(world, DayStarted{Day: day})
}

// PublishConfigSaved queues a settings commit on world.
func PublishConfigSaved(world donburi.World, owner string) {
	ConfigSavedEvent.Publish(world, ConfigSaved{Owner: owner})
}
