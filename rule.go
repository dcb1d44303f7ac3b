package hdsprite

import (
	"image"
	"maps"
	"sync"
	"sync/atomic"
)

// RuleConfig holds the construction parameters of a Rule.
type RuleConfig struct {
	// Target is the asset name the rule applies to. Required.
	Target string
	// Owner identifies the content pack whose settings gate this rule.
	Owner string
	// Replacement is the wholesale high-detail image. Optional.
	Replacement image.Image
	// PlayerBase selects the player-base default geometry and disables the
	// default overlay.
	PlayerBase bool
	// Variant selects the default overlay region of non-player-base rules.
	// BodyNone disables it.
	Variant BodyVariant
	// Geometry, when non-nil, replaces the default geometry. Zero size and
	// scale fields still take their defaults.
	Geometry *Geometry
	// Overlay, when non-nil, replaces the variant's default overlay.
	Overlay *VariantOverlay
	// Conditions are passed verbatim to the ConditionBackend.
	Conditions map[string]string
	// Disabled starts the rule with its local flag off.
	Disabled bool
}

// PixelOverride replaces one grid block of the original sheet. The block's
// pixel offset is Block scaled by the override image's own size.
type PixelOverride struct {
	Block image.Point
	Image *image.NRGBA
}

// ruleContent is the swappable raster content of a rule. A published
// ruleContent is never mutated; writers replace the pointer.
type ruleContent struct {
	replacement *image.NRGBA
	overrides   []PixelOverride
}

// Rule is one configured high-detail sprite. Identity, geometry and overlay
// are fixed at construction. The enabled flag and raster content may be
// swapped at any time; readers always see a consistent snapshot.
type Rule struct {
	target     string
	key        string
	owner      string
	playerBase bool
	geometry   Geometry
	overlay    VariantOverlay
	conditions map[string]string

	enabled atomic.Bool
	content atomic.Pointer[ruleContent]
	writeMu sync.Mutex // serializes content writers
}

// NewRule validates cfg and builds a Rule.
func NewRule(cfg RuleConfig) (*Rule, error) {
	if cfg.Target == "" {
		return nil, ErrEmptyTarget
	}
	r := &Rule{
		target:     cfg.Target,
		key:        assetKey(cfg.Target),
		owner:      cfg.Owner,
		playerBase: cfg.PlayerBase,
		conditions: maps.Clone(cfg.Conditions),
	}
	if cfg.Geometry != nil {
		r.geometry = cfg.Geometry.withDefaults(cfg.PlayerBase)
	} else {
		r.geometry = DefaultGeometry(cfg.PlayerBase)
	}
	switch {
	case cfg.Overlay != nil:
		r.overlay = *cfg.Overlay
	case cfg.PlayerBase:
		r.overlay = VariantOverlay{Disabled: true}
	default:
		r.overlay = DefaultOverlay(cfg.Variant)
	}
	content := &ruleContent{}
	if cfg.Replacement != nil {
		content.replacement = toNRGBA(cfg.Replacement)
	}
	r.content.Store(content)
	r.enabled.Store(!cfg.Disabled)
	return r, nil
}

// Target returns the asset name the rule was registered for.
func (r *Rule) Target() string { return r.target }

// Owner returns the owning content pack identifier.
func (r *Rule) Owner() string { return r.owner }

// PlayerBase reports whether the rule uses player-base defaults.
func (r *Rule) PlayerBase() bool { return r.playerBase }

// Geometry returns the rule's sprite geometry.
func (r *Rule) Geometry() Geometry { return r.geometry }

// Overlay returns the rule's variant overlay.
func (r *Rule) Overlay() VariantOverlay { return r.overlay }

// Conditions returns a copy of the condition expression map.
func (r *Rule) Conditions() map[string]string { return maps.Clone(r.conditions) }

// HasConditions reports whether the rule carries condition expressions.
func (r *Rule) HasConditions() bool { return len(r.conditions) > 0 }

// Enabled reports the rule's local flag.
func (r *Rule) Enabled() bool { return r.enabled.Load() }

// SetEnabled toggles the rule's local flag.
func (r *Rule) SetEnabled(v bool) { r.enabled.Store(v) }

// Matches reports whether name is equivalent to the rule's target.
func (r *Rule) Matches(name string) bool { return assetKey(name) == r.key }

// Mode returns the compositing mode the rule would use right now.
func (r *Rule) Mode() Mode { return r.snapshot().mode(r.key) }

// Replacement returns a copy of the current wholesale image, or nil.
func (r *Rule) Replacement() *image.NRGBA {
	if rep := r.snapshot().replacement; rep != nil {
		return cloneNRGBA(rep)
	}
	return nil
}

// PixelOverrides returns copies of the current overrides in application
// order. Changing them does not affect the rule.
func (r *Rule) PixelOverrides() []PixelOverride {
	cur := r.snapshot().overrides
	out := make([]PixelOverride, len(cur))
	for i, ov := range cur {
		out[i] = PixelOverride{Block: ov.Block}
		if ov.Image != nil {
			out[i].Image = cloneNRGBA(ov.Image)
		}
	}
	return out
}

// SetReplacement swaps the wholesale image. nil removes it.
func (r *Rule) SetReplacement(img image.Image) {
	var rep *image.NRGBA
	if img != nil {
		rep = toNRGBA(img)
	}
	r.update(func(c *ruleContent) { c.replacement = rep })
}

// SetPixelOverride sets the override for a grid block. A block that already
// has an override keeps its position in the application order; a new block
// is appended and so wins over earlier blocks where they overlap. A nil img
// removes the block's override.
func (r *Rule) SetPixelOverride(block image.Point, img image.Image) {
	if img == nil {
		r.RemovePixelOverride(block)
		return
	}
	ov := PixelOverride{Block: block, Image: toNRGBA(img)}
	r.update(func(c *ruleContent) {
		for i := range c.overrides {
			if c.overrides[i].Block == block {
				c.overrides[i] = ov
				return
			}
		}
		c.overrides = append(c.overrides, ov)
	})
}

// RemovePixelOverride removes the override for block, reporting whether one
// existed.
func (r *Rule) RemovePixelOverride(block image.Point) bool {
	removed := false
	r.update(func(c *ruleContent) {
		for i := range c.overrides {
			if c.overrides[i].Block == block {
				c.overrides = append(c.overrides[:i], c.overrides[i+1:]...)
				removed = true
				return
			}
		}
	})
	return removed
}

// ClearPixelOverrides removes every override.
func (r *Rule) ClearPixelOverrides() {
	r.update(func(c *ruleContent) { c.overrides = nil })
}

// snapshot returns the current content. The result must not be mutated.
func (r *Rule) snapshot() *ruleContent {
	return r.content.Load()
}

// update applies fn to a copy of the current content and publishes it.
func (r *Rule) update(fn func(c *ruleContent)) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	cur := r.content.Load()
	next := &ruleContent{
		replacement: cur.replacement,
		overrides:   append([]PixelOverride(nil), cur.overrides...),
	}
	fn(next)
	r.content.Store(next)
}

func (c *ruleContent) mode(key string) Mode {
	if c.replacement != nil && isBaseTarget(key) {
		return ModeWholesale
	}
	if len(c.overrides) > 0 {
		return ModeSparse
	}
	return ModePassThrough
}
