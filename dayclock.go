package hdsprite

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DayClock advances an in-world day and fires a callback at each day
// boundary. Hosts that have their own day events don't need it; anything
// else can drive Engine.DayStarted from here.
//
// There is no global clock: callers call Update themselves, once per frame.
type DayClock struct {
	// OnDayStarted runs once for every day boundary crossed, with the new
	// day number.
	OnDayStarted func(day int)

	length   float32
	elapsed  float32
	day      int
	tween    *gween.Tween
	progress float64
}

// NewDayClock creates a clock whose day lasts length seconds, starting on
// day 1. fn shapes TimeOfDay; nil uses ease.Linear.
func NewDayClock(length float32, fn ease.TweenFunc) *DayClock {
	if length <= 0 {
		length = 1
	}
	if fn == nil {
		fn = ease.Linear
	}
	return &DayClock{
		length: length,
		day:    1,
		tween:  gween.New(0, 1, length, fn),
	}
}

// Update advances the clock by dt seconds. A dt spanning several days fires
// OnDayStarted once per boundary, in order.
func (c *DayClock) Update(dt float32) {
	if dt <= 0 {
		return
	}
	c.elapsed += dt
	for c.elapsed >= c.length {
		c.elapsed -= c.length
		c.day++
		if c.OnDayStarted != nil {
			c.OnDayStarted(c.day)
		}
	}
	v, _ := c.tween.Set(c.elapsed)
	c.progress = float64(v)
}

// Day returns the current day number, starting at 1.
func (c *DayClock) Day() int {
	return c.day
}

// TimeOfDay returns the eased progress through the current day in [0, 1).
func (c *DayClock) TimeOfDay() float64 {
	return c.progress
}
