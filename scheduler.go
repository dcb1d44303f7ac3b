package hdsprite

import (
	"slices"
	"sync"
)

// AssetCache is the host's asset cache. Invalidate drops every cached asset
// whose name satisfies match; the host reloads them through the
// interceptor before serving them again.
type AssetCache interface {
	Invalidate(match func(name string) bool)
}

// Scheduler tracks targets that must be recomputed at the next day boundary
// and issues invalidation requests to the asset cache.
type Scheduler struct {
	registry *Registry
	cache    AssetCache

	mu    sync.Mutex
	dirty map[string]string // asset key -> target as given
}

// NewScheduler creates a scheduler. cache may be nil, in which case
// requests are computed but dropped.
func NewScheduler(registry *Registry, cache AssetCache) *Scheduler {
	return &Scheduler{
		registry: registry,
		cache:    cache,
		dirty:    make(map[string]string),
	}
}

// MarkDaily adds target to the dirty set.
func (s *Scheduler) MarkDaily(target string) {
	if target == "" {
		return
	}
	key := assetKey(target)
	s.mu.Lock()
	if _, ok := s.dirty[key]; !ok {
		s.dirty[key] = target
	}
	s.mu.Unlock()
}

// Dirty returns the targets pending the next day boundary, sorted.
func (s *Scheduler) Dirty() []string {
	s.mu.Lock()
	out := make([]string, 0, len(s.dirty))
	for _, t := range s.dirty {
		out = append(out, t)
	}
	s.mu.Unlock()
	slices.Sort(out)
	return out
}

// DayStarted issues one invalidation request covering every dirty target,
// then empties the dirty set. It returns the number of targets covered; an
// empty dirty set issues nothing.
func (s *Scheduler) DayStarted() int {
	s.mu.Lock()
	keys := s.dirty
	s.dirty = make(map[string]string)
	s.mu.Unlock()

	if len(keys) == 0 {
		return 0
	}
	s.invalidate(keys)
	return len(keys)
}

// InvalidateAll issues one invalidation request covering every registered
// target, regardless of the dirty set. Called after a settings commit.
func (s *Scheduler) InvalidateAll() int {
	keys := make(map[string]string)
	for rule := range s.registry.All() {
		keys[rule.key] = rule.target
	}
	if len(keys) == 0 {
		return 0
	}
	s.invalidate(keys)
	return len(keys)
}

func (s *Scheduler) invalidate(keys map[string]string) {
	Logger().Info("hdsprite: invalidating assets", "count", len(keys))
	if s.cache == nil {
		return
	}
	s.cache.Invalidate(func(name string) bool {
		_, ok := keys[assetKey(name)]
		return ok
	})
}
