package hdsprite

import (
	"context"
	"strings"
	"time"
)

// ConditionsFormatVersion is the expression format version sent to the
// condition backend.
const ConditionsFormatVersion = "1.28.0"

// ConditionRequest is one evaluation request for a rule's expressions.
type ConditionRequest struct {
	Owner      string
	Conditions map[string]string
	Version    string
	Now        time.Time
}

// ConditionBackend evaluates condition expressions owned by an external
// engine. It owns its own caching.
type ConditionBackend interface {
	// Ready reports whether the backend can evaluate requests yet.
	Ready() bool
	// Match reports whether every condition in req holds.
	Match(req ConditionRequest) bool
}

// Gate decides whether a rule is active at a given moment. It has no side
// effects and keeps no state between calls.
type Gate struct {
	settings SettingsSource
	backend  ConditionBackend
}

// NewGate creates a gate. Either argument may be nil: a nil settings source
// treats every owner as enabled and a nil backend passes every condition.
func NewGate(settings SettingsSource, backend ConditionBackend) *Gate {
	return &Gate{settings: settings, backend: backend}
}

// IsActive evaluates, in order: the rule's local flag, the owner's Enabled
// setting, then the rule's conditions. A missing setting or an unavailable
// backend leaves the rule active.
func (g *Gate) IsActive(r *Rule, now time.Time) bool {
	if r == nil || !r.Enabled() {
		return false
	}
	if g.settings != nil {
		if v, ok := g.settings.Lookup(r.owner, KeyEnabled); ok && strings.EqualFold(v, "false") {
			return false
		}
	}
	if len(r.conditions) == 0 {
		return true
	}
	if g.backend == nil || !g.backend.Ready() {
		Logger().Log(context.Background(), LevelTrace, "hdsprite: condition backend unavailable, failing open", "target", r.target)
		return true
	}
	return g.backend.Match(ConditionRequest{
		Owner:      r.owner,
		Conditions: r.Conditions(),
		Version:    ConditionsFormatVersion,
		Now:        now,
	})
}
