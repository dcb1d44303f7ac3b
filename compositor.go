package hdsprite

import (
	"context"
	"image"

	"golang.org/x/image/draw"
)

// Compose builds a composite of original for rule from a single snapshot of
// the rule's content. original is never modified.
//
// Wholesale rules copy the replacement image at its own size. Sparse rules
// copy original and overwrite each override block in order, clipping blocks
// that fall outside the buffer. Other rules produce a pass-through
// composite. A base-variant rule with no content fails with
// ErrMissingReplacement.
func Compose(rule *Rule, original *Texture) (*Composite, error) {
	if original == nil {
		return nil, ErrNilOriginal
	}
	content := rule.snapshot()
	c := &Composite{Original: original, Rule: rule, Mode: content.mode(rule.key)}

	switch c.Mode {
	case ModeWholesale:
		c.Produced = &Texture{name: original.name, pixels: cloneNRGBA(content.replacement)}
	case ModeSparse:
		out := cloneNRGBA(original.pixels)
		for _, ov := range content.overrides {
			applyOverride(out, ov, rule.target)
		}
		c.Produced = &Texture{name: original.name, pixels: out}
	default:
		if isBaseTarget(rule.key) {
			return nil, ErrMissingReplacement
		}
	}
	return c, nil
}

// applyOverride writes ov into dst at its block position. Pixels that fall
// outside dst are skipped.
func applyOverride(dst *image.NRGBA, ov PixelOverride, target string) {
	if ov.Image == nil {
		return
	}
	size := ov.Image.Rect.Size()
	if size.X == 0 || size.Y == 0 {
		return
	}
	at := image.Pt(ov.Block.X*size.X, ov.Block.Y*size.Y)
	region := image.Rectangle{Min: at, Max: at.Add(size)}
	clipped := region.Intersect(dst.Rect)
	if clipped != region {
		Logger().Log(context.Background(), LevelTrace, "hdsprite: override clipped",
			"target", target, "block", ov.Block, "region", region, "kept", clipped)
	}
	if clipped.Empty() {
		return
	}
	blit(dst, clipped, ov.Image, ov.Image.Rect.Min.Add(clipped.Min.Sub(at)))
}

// blit copies the rectangle r of dst from src starting at sp, byte for byte.
// r must lie within dst and the matching source rectangle within src.
// draw.Src on an NRGBA destination round-trips through premultiplied
// color and would alter translucent pixels.
func blit(dst *image.NRGBA, r image.Rectangle, src *image.NRGBA, sp image.Point) {
	rowBytes := r.Dx() * 4
	for y := 0; y < r.Dy(); y++ {
		d := dst.PixOffset(r.Min.X, r.Min.Y+y)
		s := src.PixOffset(sp.X, sp.Y+y)
		copy(dst.Pix[d:d+rowBytes], src.Pix[s:s+rowBytes])
	}
}

// cloneNRGBA returns a copy of src anchored at (0,0).
func cloneNRGBA(src *image.NRGBA) *image.NRGBA {
	b := src.Rect
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	blit(out, out.Rect, src, b.Min)
	return out
}

// toNRGBA converts any image to a new NRGBA buffer anchored at (0,0).
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return cloneNRGBA(n)
	}
	b := src.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Rect, src, b.Min, draw.Src)
	return out
}
