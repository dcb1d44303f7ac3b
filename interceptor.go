package hdsprite

import (
	"context"
	"image"
	"time"
)

// Interceptor runs on every asset load. For each rule matching the asset it
// consults the gate; the last active rule in registration order whose
// composite builds successfully is installed on the served texture.
type Interceptor struct {
	registry  *Registry
	gate      *Gate
	scheduler *Scheduler
	now       func() time.Time
}

// NewInterceptor creates an interceptor. scheduler may be nil; when set,
// every load of a target with conditional rules re-arms it for the next day
// boundary. now may be nil to use time.Now.
func NewInterceptor(registry *Registry, gate *Gate, scheduler *Scheduler, now func() time.Time) *Interceptor {
	if now == nil {
		now = time.Now
	}
	return &Interceptor{registry: registry, gate: gate, scheduler: scheduler, now: now}
}

// Load wraps original in a fresh served texture and installs the winning
// composite on it, if any. A nil original yields nil. Load never returns a
// stale composite: every call recomputes from the rules' current state.
func (in *Interceptor) Load(name string, original image.Image) *Texture {
	if original == nil {
		return nil
	}
	served := NewTexture(name, original)
	now := in.now()

	var active []*Rule
	daily := false
	for rule := range in.registry.FindByTarget(name) {
		if rule.HasConditions() {
			daily = true
		}
		if in.gate.IsActive(rule, now) {
			active = append(active, rule)
		} else {
			Logger().Log(context.Background(), LevelTrace, "hdsprite: rule inactive", "target", name, "owner", rule.owner)
		}
	}
	if daily && in.scheduler != nil {
		in.scheduler.MarkDaily(name)
	}
	if len(active) > 1 {
		Logger().Debug("hdsprite: several active rules, last registered wins",
			"target", name, "count", len(active), "owner", active[len(active)-1].owner)
	}

	for i := len(active) - 1; i >= 0; i-- {
		c, err := Compose(active[i], served)
		if err != nil {
			Logger().Warn("hdsprite: composite failed, serving original", "target", name, "owner", active[i].owner, "err", err)
			continue
		}
		served.composite = c
		Logger().Debug("hdsprite: composite installed", "target", name, "mode", c.Mode, "passThrough", c.PassThrough())
		break
	}
	return served
}
