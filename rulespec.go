package hdsprite

import (
	"fmt"
	"image"
	_ "image/png" // PNG content files
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp" // BMP content files
	"gopkg.in/yaml.v3"
)

// RuleSpec is the file form of a rule. Pointer geometry fields distinguish
// "not set" from zero.
type RuleSpec struct {
	Target      string            `yaml:"target"`
	Owner       string            `yaml:"owner"`
	PlayerBase  bool              `yaml:"playerBase"`
	Variant     string            `yaml:"variant,omitempty"`
	Replacement string            `yaml:"replacement,omitempty"`
	Disabled    bool              `yaml:"disabled,omitempty"`
	Conditions  map[string]string `yaml:"conditions,omitempty"`

	SpriteWidth  *int `yaml:"spriteWidth,omitempty"`
	SpriteHeight *int `yaml:"spriteHeight,omitempty"`
	OriginX      *int `yaml:"originX,omitempty"`
	OriginY      *int `yaml:"originY,omitempty"`
	ScaleX       *int `yaml:"scaleX,omitempty"`
	ScaleY       *int `yaml:"scaleY,omitempty"`

	Overlay   *OverlaySpec   `yaml:"overlay,omitempty"`
	Overrides []OverrideSpec `yaml:"overrides,omitempty"`
}

// OverlaySpec overrides the variant overlay region.
type OverlaySpec struct {
	X       int `yaml:"x"`
	Y       int `yaml:"y"`
	Width   int `yaml:"width"`
	Height  int `yaml:"height"`
	AdjustX int `yaml:"adjustX"`
	AdjustY int `yaml:"adjustY"`
}

// OverrideSpec is one sparse override: grid block (X, Y) and an image path.
type OverrideSpec struct {
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
	Image string `yaml:"image"`
}

type ruleFile struct {
	Rules []RuleSpec `yaml:"rules"`
}

// ImageLoader resolves an image path from a rule file.
type ImageLoader func(path string) (image.Image, error)

// LoadRuleSpecs parses a YAML rule file with a top-level "rules" list.
func LoadRuleSpecs(data []byte) ([]RuleSpec, error) {
	var f ruleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("hdsprite: failed to parse rule file: %w", err)
	}
	for i, s := range f.Rules {
		if s.Target == "" {
			return nil, fmt.Errorf("hdsprite: rule %d: %w", i, ErrEmptyTarget)
		}
	}
	return f.Rules, nil
}

// Config resolves the entry's images with load and returns the RuleConfig
// plus the sparse overrides to apply after construction.
func (s RuleSpec) Config(load ImageLoader) (RuleConfig, []PixelOverride, error) {
	variant, err := ParseBodyVariant(s.Variant)
	if err != nil {
		return RuleConfig{}, nil, fmt.Errorf("hdsprite: rule %q: %w", s.Target, err)
	}
	cfg := RuleConfig{
		Target:     s.Target,
		Owner:      s.Owner,
		PlayerBase: s.PlayerBase,
		Variant:    variant,
		Conditions: s.Conditions,
		Disabled:   s.Disabled,
	}
	if g, ok := s.geometry(); ok {
		cfg.Geometry = &g
	}
	if s.Overlay != nil {
		o := s.Overlay
		cfg.Overlay = &VariantOverlay{
			Source: image.Rect(o.X, o.Y, o.X+o.Width, o.Y+o.Height),
			Adjust: image.Pt(o.AdjustX, o.AdjustY),
		}
	}
	if s.Replacement != "" {
		img, err := load(s.Replacement)
		if err != nil {
			return RuleConfig{}, nil, fmt.Errorf("hdsprite: rule %q replacement: %w", s.Target, err)
		}
		cfg.Replacement = img
	}
	overrides := make([]PixelOverride, 0, len(s.Overrides))
	for _, o := range s.Overrides {
		img, err := load(o.Image)
		if err != nil {
			return RuleConfig{}, nil, fmt.Errorf("hdsprite: rule %q override (%d,%d): %w", s.Target, o.X, o.Y, err)
		}
		overrides = append(overrides, PixelOverride{Block: image.Pt(o.X, o.Y), Image: toNRGBA(img)})
	}
	return cfg, overrides, nil
}

// Build resolves the entry's images with load and constructs the rule.
func (s RuleSpec) Build(load ImageLoader) (*Rule, error) {
	cfg, overrides, err := s.Config(load)
	if err != nil {
		return nil, err
	}
	r, err := NewRule(cfg)
	if err != nil {
		return nil, err
	}
	for _, o := range overrides {
		r.SetPixelOverride(o.Block, o.Image)
	}
	return r, nil
}

// geometry merges the set fields onto the default geometry.
func (s RuleSpec) geometry() (Geometry, bool) {
	g := DefaultGeometry(s.PlayerBase)
	set := false
	for _, f := range []struct {
		v   *int
		dst *int
	}{
		{s.SpriteWidth, &g.Width},
		{s.SpriteHeight, &g.Height},
		{s.OriginX, &g.OriginX},
		{s.OriginY, &g.OriginY},
		{s.ScaleX, &g.ScaleX},
		{s.ScaleY, &g.ScaleY},
	} {
		if f.v != nil {
			*f.dst = *f.v
			set = true
		}
	}
	return g, set
}

// LoadImageFile decodes a PNG or BMP file.
func LoadImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %q: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", path, err)
	}
	return img, nil
}

// DirImageLoader resolves relative paths against dir.
func DirImageLoader(dir string) ImageLoader {
	return func(path string) (image.Image, error) {
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		return LoadImageFile(path)
	}
}
