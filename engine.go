package hdsprite

import (
	"image"
	"time"
)

// EngineOptions configures an Engine. Every field is optional.
type EngineOptions struct {
	// Settings is the per-owner configuration store. nil creates one.
	Settings *Settings
	// Backend evaluates rule conditions. nil passes every condition.
	Backend ConditionBackend
	// Cache receives invalidation requests. nil drops them.
	Cache AssetCache
	// Now supplies the evaluation time. nil uses time.Now.
	Now func() time.Time
}

// Engine wires the substitution pipeline together: rules are registered,
// gated and composited on asset load, redirected on draw, and invalidated
// on day boundaries and settings commits.
type Engine struct {
	Registry    *Registry
	Settings    *Settings
	Gate        *Gate
	Scheduler   *Scheduler
	Interceptor *Interceptor
	Redirector  *Redirector
}

// NewEngine builds an engine from opts. Settings.Save is wired to
// Scheduler.InvalidateAll.
func NewEngine(opts EngineOptions) *Engine {
	settings := opts.Settings
	if settings == nil {
		settings = NewSettings()
	}
	e := &Engine{
		Registry:   NewRegistry(),
		Settings:   settings,
		Redirector: NewRedirector(),
	}
	e.Gate = NewGate(settings, opts.Backend)
	e.Scheduler = NewScheduler(e.Registry, opts.Cache)
	e.Interceptor = NewInterceptor(e.Registry, e.Gate, e.Scheduler, opts.Now)
	settings.OnSave(func() { e.Scheduler.InvalidateAll() })
	return e
}

// Register builds a rule from cfg and adds it.
func (e *Engine) Register(cfg RuleConfig) (*Rule, error) {
	r, err := NewRule(cfg)
	if err != nil {
		return nil, err
	}
	if err := e.Add(r); err != nil {
		return nil, err
	}
	return r, nil
}

// Add registers an existing rule. The owner gets an Enabled=true setting
// if it has none, and conditional rules are marked for the next day
// boundary.
func (e *Engine) Add(r *Rule) error {
	if err := e.Registry.Register(r); err != nil {
		return err
	}
	if r.owner != "" {
		e.Settings.ensure(r.owner, KeyEnabled, "true")
	}
	if r.HasConditions() {
		e.Scheduler.MarkDaily(r.target)
	}
	return nil
}

// Load is the asset-load hook. See Interceptor.Load.
func (e *Engine) Load(name string, original image.Image) *Texture {
	return e.Interceptor.Load(name, original)
}

// Redirect is the draw hook. See Redirector.Redirect.
func (e *Engine) Redirect(call *DrawCall) {
	e.Redirector.Redirect(call)
}

// DayStarted handles a day-boundary event.
func (e *Engine) DayStarted() int {
	return e.Scheduler.DayStarted()
}

// ConfigSaved handles a settings commit by saving the settings store,
// which invalidates every registered target.
func (e *Engine) ConfigSaved() {
	e.Settings.Save()
}
