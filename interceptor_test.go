package hdsprite

import (
	"image"
	"testing"
	"time"
)

func TestLoadWholesaleScenario(t *testing.T) {
	e := NewEngine(EngineOptions{})
	hd := newPattern(256, 512)
	if _, err := e.Register(RuleConfig{
		Target:      "Characters/Farmer/farmer_base",
		Owner:       "pack",
		PlayerBase:  true,
		Replacement: hd,
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	tex := e.Load("Characters/Farmer/farmer_base", newFilled(64, 128, red))
	if tex.Width() != 64 || tex.Height() != 128 {
		t.Errorf("served size = %dx%d, want 64x128", tex.Width(), tex.Height())
	}
	c := tex.Composite()
	if c == nil || c.Produced == nil {
		t.Fatal("expected a composite with a produced texture")
	}
	if c.Produced.Width() != 256 || c.Produced.Height() != 512 {
		t.Errorf("produced size = %dx%d, want 256x512", c.Produced.Width(), c.Produced.Height())
	}

	call := DrawCall{
		Texture:  tex,
		Dst:      Rect{X: 10, Y: 20, Width: 64, Height: 128},
		Src:      image.Rect(0, 0, 16, 32),
		Color:    Color{R: 1, G: 0.5, B: 0.25, A: 1},
		Rotation: 0.5,
		Origin:   Vec2{X: 8, Y: 16},
		Effects:  FlipHorizontally,
		Depth:    0.3,
	}
	want := call
	want.Texture = c.Produced
	e.Redirect(&call)
	if call != want {
		t.Errorf("redirected call = %+v, want %+v", call, want)
	}
}

func TestLoadOwnerDisabledScenario(t *testing.T) {
	e := NewEngine(EngineOptions{})
	r, _ := e.Register(RuleConfig{Target: "Characters/Farmer/farmer_base", Owner: "pack", PlayerBase: true, Replacement: newPattern(256, 512)})
	e.Settings.Set("pack", KeyEnabled, "false")

	if !r.Enabled() {
		t.Fatal("rule's local flag should still be true")
	}
	tex := e.Load("Characters/Farmer/farmer_base", newFilled(64, 128, red))
	if tex.Composite() != nil {
		t.Error("no composite should be installed when the owner is disabled")
	}
	call := DrawCall{Texture: tex}
	e.Redirect(&call)
	if call.Texture != tex {
		t.Error("draw should not be redirected")
	}
}

func TestLoadInactiveServesOriginal(t *testing.T) {
	e := NewEngine(EngineOptions{})
	r, _ := e.Register(RuleConfig{Target: "Characters/Abigail"})
	r.SetPixelOverride(image.Pt(0, 0), newFilled(8, 8, red))
	r.SetEnabled(false)

	orig := newPattern(32, 32)
	tex := e.Load("Characters/Abigail", orig)
	if tex.Composite() != nil {
		t.Error("disabled rule should not install a composite")
	}
	if tex.Pixels().NRGBAAt(0, 0) != orig.NRGBAAt(0, 0) {
		t.Error("served pixels should be the original")
	}
}

func TestLoadWithoutRules(t *testing.T) {
	e := NewEngine(EngineOptions{})
	tex := e.Load("Characters/Haley", newFilled(4, 4, red))
	if tex == nil || tex.Composite() != nil {
		t.Error("unmatched load should serve a plain texture")
	}
	if e.Load("Characters/Haley", nil) != nil {
		t.Error("nil original should yield nil")
	}
}

func TestLoadLastActiveRuleWins(t *testing.T) {
	e := NewEngine(EngineOptions{})
	first, _ := e.Register(RuleConfig{Target: "Characters/Abigail", Owner: "a"})
	first.SetPixelOverride(image.Pt(0, 0), newFilled(8, 8, red))
	second, _ := e.Register(RuleConfig{Target: "Characters/Abigail", Owner: "b"})
	second.SetPixelOverride(image.Pt(0, 0), newFilled(8, 8, blue))

	tex := e.Load("Characters/Abigail", newFilled(16, 16, green))
	c := tex.Composite()
	if c.Rule != second {
		t.Error("last registered active rule should win")
	}
	if got := c.Produced.Pixels().NRGBAAt(0, 0); got != blue {
		t.Errorf("pixel = %v, want blue", got)
	}

	e.Settings.SetEnabled("b", false)
	tex = e.Load("Characters/Abigail", newFilled(16, 16, green))
	if tex.Composite().Rule != first {
		t.Error("with the later owner disabled the earlier rule should win")
	}
}

func TestLoadFailedCompositeFallsBack(t *testing.T) {
	e := NewEngine(EngineOptions{})
	good, _ := e.Register(RuleConfig{Target: "farmer_base", Replacement: newFilled(8, 8, red)})
	_, _ = e.Register(RuleConfig{Target: "farmer_base"}) // no content: ErrMissingReplacement

	tex := e.Load("farmer_base", newFilled(4, 4, blue))
	if tex.Composite() == nil || tex.Composite().Rule != good {
		t.Error("earlier rule should be installed when the later one cannot composite")
	}
}

func TestLoadMissingReplacementServesOriginal(t *testing.T) {
	e := NewEngine(EngineOptions{})
	_, _ = e.Register(RuleConfig{Target: "farmer_base"})
	tex := e.Load("farmer_base", newFilled(4, 4, blue))
	if tex.Composite() != nil {
		t.Error("rule without replacement should be treated as inactive")
	}
}

func TestLoadPassThroughComposite(t *testing.T) {
	e := NewEngine(EngineOptions{})
	r, _ := e.Register(RuleConfig{Target: "Characters/Abigail"})
	tex := e.Load("Characters/Abigail", newFilled(4, 4, blue))
	c := tex.Composite()
	if c == nil || c.Rule != r || !c.PassThrough() {
		t.Fatal("expected a pass-through composite")
	}
	call := DrawCall{Texture: tex}
	e.Redirect(&call)
	if call.Texture != tex {
		t.Error("pass-through composite should not redirect")
	}
}

func TestLoadRecomputesEveryTime(t *testing.T) {
	e := NewEngine(EngineOptions{})
	r, _ := e.Register(RuleConfig{Target: "Characters/Abigail"})
	r.SetPixelOverride(image.Pt(0, 0), newFilled(4, 4, red))

	a := e.Load("Characters/Abigail", newFilled(8, 8, blue))
	b := e.Load("Characters/Abigail", newFilled(8, 8, blue))
	if a == b || a.Composite() == b.Composite() {
		t.Error("each load should build a fresh texture and composite")
	}

	r.SetPixelOverride(image.Pt(0, 0), newFilled(4, 4, green))
	c := e.Load("Characters/Abigail", newFilled(8, 8, blue))
	if got := c.Composite().Produced.Pixels().NRGBAAt(0, 0); got != green {
		t.Errorf("reloaded pixel = %v, want green", got)
	}
	if got := a.Composite().Produced.Pixels().NRGBAAt(0, 0); got != red {
		t.Errorf("earlier composite pixel = %v, want red", got)
	}
}

func TestLoadPassesClockToBackend(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	b := &fakeBackend{ready: true, match: true}
	e := NewEngine(EngineOptions{Backend: b, Now: func() time.Time { return now }})
	_, _ = e.Register(RuleConfig{Target: "Characters/Abigail", Owner: "o", Conditions: conds})

	e.Load("Characters/Abigail", newFilled(4, 4, blue))
	if !b.last.Now.Equal(now) {
		t.Errorf("backend Now = %v, want %v", b.last.Now, now)
	}
}

func TestLoadRearmsConditionalTargets(t *testing.T) {
	e := NewEngine(EngineOptions{})
	_, _ = e.Register(RuleConfig{Target: "Characters/Abigail", Conditions: conds})
	_, _ = e.Register(RuleConfig{Target: "Characters/Haley"})

	e.DayStarted()
	if len(e.Scheduler.Dirty()) != 0 {
		t.Fatal("dirty set should be empty after the day boundary")
	}
	e.Load("Characters/Haley", newFilled(4, 4, blue))
	if len(e.Scheduler.Dirty()) != 0 {
		t.Error("unconditional target should not be marked")
	}
	e.Load("Characters/Abigail", newFilled(4, 4, blue))
	if got := e.Scheduler.Dirty(); len(got) != 1 || got[0] != "Characters/Abigail" {
		t.Errorf("Dirty = %v, want [Characters/Abigail]", got)
	}
}
