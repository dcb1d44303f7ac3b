package hdsprite

import (
	"iter"
	"sync"
)

// Registry owns the set of substitution rules in insertion order. Duplicate
// targets are allowed; every matching rule is yielded.
type Registry struct {
	mu    sync.RWMutex
	rules []*Rule
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends rule. Rules cannot be removed; disable them instead.
func (r *Registry) Register(rule *Rule) error {
	if rule == nil || rule.target == "" {
		return ErrEmptyTarget
	}
	r.mu.Lock()
	r.rules = append(r.rules, rule)
	r.mu.Unlock()
	Logger().Info("hdsprite: rule registered", "target", rule.target, "owner", rule.owner, "mode", rule.Mode())
	return nil
}

// view returns the current rule slice. The registry only appends, so the
// returned header stays valid after later registrations.
func (r *Registry) view() []*Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rules
}

// FindByTarget yields, in registration order, every rule whose target is
// equivalent to name. The sequence is lazy and may be ranged over again.
func (r *Registry) FindByTarget(name string) iter.Seq[*Rule] {
	return func(yield func(*Rule) bool) {
		key := assetKey(name)
		for _, rule := range r.view() {
			if rule.key != key {
				continue
			}
			if !yield(rule) {
				return
			}
		}
	}
}

// All yields every rule in registration order.
func (r *Registry) All() iter.Seq[*Rule] {
	return func(yield func(*Rule) bool) {
		for _, rule := range r.view() {
			if !yield(rule) {
				return
			}
		}
	}
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	return len(r.view())
}

// Targets returns the distinct targets in first-registration order.
func (r *Registry) Targets() []string {
	rules := r.view()
	seen := make(map[string]struct{}, len(rules))
	out := make([]string, 0, len(rules))
	for _, rule := range rules {
		if _, ok := seen[rule.key]; ok {
			continue
		}
		seen[rule.key] = struct{}{}
		out = append(out, rule.target)
	}
	return out
}
