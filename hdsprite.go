package hdsprite

import "image"

// Color represents an RGBA tint with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for draw origins and positional adjustments.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned destination rectangle. The coordinate system has
// its origin at the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// SpriteEffects is a bitmask of mirroring applied to a draw call.
type SpriteEffects uint8

const (
	FlipHorizontally SpriteEffects = 1 << iota // mirror around the vertical axis
	FlipVertically                             // mirror around the horizontal axis
)

// Mode is the compositing mode a rule resolves to at composite time. It is
// always derived from the rule's current content and target, never stored.
type Mode uint8

const (
	ModePassThrough Mode = iota // no produced buffer; draws are left untouched
	ModeWholesale               // produced buffer is a copy of the replacement image
	ModeSparse                  // produced buffer is the original with region overrides
)

// String returns the lowercase mode name.
func (m Mode) String() string {
	switch m {
	case ModeWholesale:
		return "wholesale"
	case ModeSparse:
		return "sparse"
	default:
		return "pass-through"
	}
}

// DrawCall carries every argument of a single sprite draw. Only Texture is
// ever rewritten by redirection; all other fields reach the renderer as the
// host issued them.
type DrawCall struct {
	Texture *Texture
	// Dst is the destination rectangle. Zero Width/Height draws at the source
	// size.
	Dst Rect
	// Src is the source rectangle within Texture. An empty rectangle selects
	// the whole texture.
	Src      image.Rectangle
	Color    Color
	Rotation float64 // radians, clockwise
	Origin   Vec2    // in source texels
	Effects  SpriteEffects
	Depth    float32
}
