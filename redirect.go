package hdsprite

import "sync/atomic"

// Redirector rewrites the texture of draw calls whose texture carries a
// composite with a produced buffer. It is safe to call from the render
// thread while stats are read elsewhere.
type Redirector struct {
	calls      atomic.Uint64
	redirected atomic.Uint64
}

// NewRedirector creates a redirector with zeroed stats.
func NewRedirector() *Redirector {
	return &Redirector{}
}

// Redirect substitutes call.Texture with its composite's produced texture.
// Every other field is left as is. A nil call, nil texture or untagged
// texture passes through unchanged. Produced textures are never tagged, so
// applying Redirect twice gives the same result as applying it once.
func (r *Redirector) Redirect(call *DrawCall) {
	if call == nil {
		return
	}
	r.calls.Add(1)
	if t := resolve(call.Texture); t != call.Texture {
		call.Texture = t
		r.redirected.Add(1)
	}
}

// Hook returns Redirect as a DrawHook for a SpriteBatch.
func (r *Redirector) Hook() DrawHook {
	return r.Redirect
}

// resolve returns the texture a draw of t should use.
func resolve(t *Texture) *Texture {
	if t == nil {
		return nil
	}
	if c := t.composite; c != nil && c.Produced != nil {
		return c.Produced
	}
	return t
}

// Stats reports redirector counters since creation or the last ResetStats.
func (r *Redirector) Stats() Stats {
	calls := r.calls.Load()
	redirected := r.redirected.Load()
	return Stats{Calls: calls, Redirected: redirected, Missed: calls - min(redirected, calls)}
}

// ResetStats zeroes the counters.
func (r *Redirector) ResetStats() {
	r.calls.Store(0)
	r.redirected.Store(0)
}
