package hdsprite

import (
	"slices"
	"strconv"
	"strings"
	"sync"
)

// KeyEnabled is the per-owner setting that switches all of an owner's rules.
const KeyEnabled = "Enabled"

// SettingsSource is the read side of per-owner configuration.
type SettingsSource interface {
	// Lookup returns the value stored under key for owner.
	Lookup(owner, key string) (string, bool)
}

// Settings is an in-memory per-owner key/value store. It is passed to the
// gate and engine explicitly and is safe for concurrent use.
type Settings struct {
	mu     sync.RWMutex
	values map[string]map[string]string
	onSave []func()
}

// NewSettings creates an empty store.
func NewSettings() *Settings {
	return &Settings{values: make(map[string]map[string]string)}
}

// Lookup returns the value of key for owner.
func (s *Settings) Lookup(owner, key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[owner][key]
	return v, ok
}

// Set stores value under key for owner.
func (s *Settings) Set(owner, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.values[owner]
	if m == nil {
		m = make(map[string]string)
		s.values[owner] = m
	}
	m[key] = value
}

// ensure stores value under key only if the owner has no value yet.
func (s *Settings) ensure(owner, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.values[owner]
	if m == nil {
		m = make(map[string]string)
		s.values[owner] = m
	}
	if _, ok := m[key]; !ok {
		m[key] = value
	}
}

// Enabled reports the owner's Enabled flag. Owners without the setting are
// enabled.
func (s *Settings) Enabled(owner string) bool {
	v, ok := s.Lookup(owner, KeyEnabled)
	return !ok || !strings.EqualFold(v, "false")
}

// SetEnabled writes the owner's Enabled flag.
func (s *Settings) SetEnabled(owner string, enabled bool) {
	s.Set(owner, KeyEnabled, strconv.FormatBool(enabled))
}

// Reset restores the owner's Enabled flag to true.
func (s *Settings) Reset(owner string) {
	s.SetEnabled(owner, true)
}

// Owners returns the owners that have at least one setting, sorted.
func (s *Settings) Owners() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.values))
	for owner := range s.values {
		out = append(out, owner)
	}
	slices.Sort(out)
	return out
}

// OnSave registers fn to run on every Save.
func (s *Settings) OnSave(fn func()) {
	s.mu.Lock()
	s.onSave = append(s.onSave, fn)
	s.mu.Unlock()
}

// Save commits the current values by notifying save listeners. Hosts call
// it when the user confirms a settings change.
func (s *Settings) Save() {
	s.mu.RLock()
	listeners := slices.Clone(s.onSave)
	s.mu.RUnlock()
	for _, fn := range listeners {
		fn()
	}
}
