package hdsprite

import (
	"image"
	"image/color"
	"testing"
)

// newFilled returns a w×h image filled with c.
func newFilled(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// newPattern returns a w×h image where every pixel encodes its position.
func newPattern(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: uint8(x ^ y), A: 255})
		}
	}
	return img
}

func mustRule(t *testing.T, cfg RuleConfig) *Rule {
	t.Helper()
	r, err := NewRule(cfg)
	if err != nil {
		t.Fatalf("NewRule: %v", err)
	}
	return r
}

var (
	red   = color.NRGBA{R: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
	green = color.NRGBA{G: 255, A: 255}
)
