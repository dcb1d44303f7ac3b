package hdsprite

import (
	"slices"
	"testing"
)

func TestSettingsEnabledDefaults(t *testing.T) {
	s := NewSettings()
	if !s.Enabled("missing") {
		t.Error("owner without settings should be enabled")
	}
	s.Set("o", KeyEnabled, "FaLsE")
	if s.Enabled("o") {
		t.Error("Enabled=FaLsE should disable")
	}
	s.Reset("o")
	if v, _ := s.Lookup("o", KeyEnabled); v != "true" {
		t.Errorf("after Reset Enabled = %q, want true", v)
	}
}

func TestSettingsOwnersSorted(t *testing.T) {
	s := NewSettings()
	s.SetEnabled("b", true)
	s.SetEnabled("a", false)
	if got := s.Owners(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Owners = %v, want [a b]", got)
	}
}

func TestSettingsSaveNotifiesListeners(t *testing.T) {
	s := NewSettings()
	var calls []int
	s.OnSave(func() { calls = append(calls, 1) })
	s.OnSave(func() { calls = append(calls, 2) })
	s.Save()
	if !slices.Equal(calls, []int{1, 2}) {
		t.Errorf("listener calls = %v, want [1 2]", calls)
	}
}

func TestEngineRegisterSeedsOwnerSetting(t *testing.T) {
	e := NewEngine(EngineOptions{})
	e.Settings.SetEnabled("kept", false)
	_, _ = e.Register(RuleConfig{Target: "A", Owner: "fresh"})
	_, _ = e.Register(RuleConfig{Target: "B", Owner: "kept"})

	if v, ok := e.Settings.Lookup("fresh", KeyEnabled); !ok || v != "true" {
		t.Errorf("fresh owner Enabled = %q (%v), want true", v, ok)
	}
	if e.Settings.Enabled("kept") {
		t.Error("registration should not overwrite an existing setting")
	}
}
