package hdsprite

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/draw"
)

// Geometry describes how a high-detail sprite maps onto the original sheet
// grid. Renderers apply ScaleX/ScaleY on top of the produced buffer.
type Geometry struct {
	Width, Height    int // sprite cell size in original texels
	OriginX, OriginY int // draw origin in high-detail texels
	ScaleX, ScaleY   int // integer upscale per axis
}

const (
	defaultSpriteWidth  = 32
	defaultSpriteHeight = 64
	defaultScale        = 4
)

// DefaultGeometry returns the geometry used when a rule does not override
// it. Player-base sheets draw from (32,112), everything else from (16,128).
func DefaultGeometry(playerBase bool) Geometry {
	g := Geometry{
		Width:  defaultSpriteWidth,
		Height: defaultSpriteHeight,
		ScaleX: defaultScale,
		ScaleY: defaultScale,
	}
	if playerBase {
		g.OriginX, g.OriginY = 32, 112
	} else {
		g.OriginX, g.OriginY = 16, 128
	}
	return g
}

// withDefaults fills zero size and scale fields from DefaultGeometry.
// Origins are kept as given since (0,0) is a valid origin.
func (g Geometry) withDefaults(playerBase bool) Geometry {
	d := DefaultGeometry(playerBase)
	if g.Width <= 0 {
		g.Width = d.Width
	}
	if g.Height <= 0 {
		g.Height = d.Height
	}
	if g.ScaleX <= 0 {
		g.ScaleX = d.ScaleX
	}
	if g.ScaleY <= 0 {
		g.ScaleY = d.ScaleY
	}
	return g
}

// Origin returns the draw origin as a Vec2.
func (g Geometry) Origin() Vec2 {
	return Vec2{X: float64(g.OriginX), Y: float64(g.OriginY)}
}

// ScaleRect maps a rectangle in original sheet texels to the matching
// rectangle in a high-detail buffer.
func (g Geometry) ScaleRect(r image.Rectangle) image.Rectangle {
	return image.Rect(r.Min.X*g.ScaleX, r.Min.Y*g.ScaleY, r.Max.X*g.ScaleX, r.Max.Y*g.ScaleY)
}

// Preview returns src upscaled by the geometry's scale factors using
// nearest-neighbour sampling, which keeps pixel art edges hard.
func (g Geometry) Preview(src image.Image) *image.NRGBA {
	sx, sy := max(g.ScaleX, 1), max(g.ScaleY, 1)
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*sx, b.Dy()*sy))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// BodyVariant selects the chest overlay region of a player-base sprite.
type BodyVariant uint8

const (
	BodyMale   BodyVariant = iota // default overlay region
	BodyFemale                    // shorter region shifted up by 4
	BodyNone                      // no overlay
)

// String returns the lowercase variant name.
func (v BodyVariant) String() string {
	switch v {
	case BodyFemale:
		return "female"
	case BodyNone:
		return "none"
	default:
		return "male"
	}
}

// ParseBodyVariant parses "male", "female" or "none" (case-insensitive).
// The empty string parses as BodyMale.
func ParseBodyVariant(s string) (BodyVariant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "male":
		return BodyMale, nil
	case "female":
		return BodyFemale, nil
	case "none":
		return BodyNone, nil
	}
	return BodyMale, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// VariantOverlay is the secondary region drawn over the body for clothing
// and accessories. Source is in high-detail texels; Adjust shifts where the
// region is drawn.
type VariantOverlay struct {
	Source   image.Rectangle
	Adjust   image.Point
	Disabled bool
}

// DefaultOverlay returns the overlay region for a body variant.
func DefaultOverlay(v BodyVariant) VariantOverlay {
	switch v {
	case BodyFemale:
		return VariantOverlay{
			Source: image.Rect(24, 100, 24+16, 100+8),
			Adjust: image.Pt(0, -4),
		}
	case BodyNone:
		return VariantOverlay{Disabled: true}
	default:
		return VariantOverlay{Source: image.Rect(24, 98, 24+16, 98+16)}
	}
}
