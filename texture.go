package hdsprite

import (
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// Texture is a drawable handle backed by a CPU pixel buffer. The GPU image
// is created on first use. A texture served by the interceptor may carry a
// Composite; the redirector reads that tag at draw time.
type Texture struct {
	name      string
	pixels    *image.NRGBA
	composite *Composite

	once  sync.Once
	image *ebiten.Image
}

// NewTexture wraps img. An *image.NRGBA anchored at (0,0) is used without
// copying and must not be mutated afterwards; other images are converted.
func NewTexture(name string, img image.Image) *Texture {
	var px *image.NRGBA
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		px = n
	} else {
		px = toNRGBA(img)
	}
	return &Texture{name: name, pixels: px}
}

// Name returns the asset name the texture was loaded for.
func (t *Texture) Name() string {
	return t.name
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int {
	return t.pixels.Rect.Dx()
}

// Height returns the texture height in pixels.
func (t *Texture) Height() int {
	return t.pixels.Rect.Dy()
}

// Bounds returns the texture rectangle, always anchored at (0,0).
func (t *Texture) Bounds() image.Rectangle {
	return t.pixels.Rect
}

// Pixels returns the CPU pixel buffer. Callers must not mutate it.
func (t *Texture) Pixels() *image.NRGBA {
	return t.pixels
}

// Composite returns the composite installed on this texture, or nil.
func (t *Texture) Composite() *Composite {
	return t.composite
}

// Image returns the GPU image, uploading the pixels on first call.
func (t *Texture) Image() *ebiten.Image {
	t.once.Do(func() {
		t.image = ebiten.NewImageFromImage(t.pixels)
	})
	return t.image
}

// Dispose deallocates the GPU image if one was created, along with the
// produced texture of an installed composite. The texture should not be
// drawn after calling Dispose.
func (t *Texture) Dispose() {
	t.once.Do(func() {})
	if t.image != nil {
		t.image.Deallocate()
		t.image = nil
	}
	if c := t.composite; c != nil && c.Produced != nil && c.Produced != t {
		c.Produced.Dispose()
	}
}

// Composite is the result of one substitution decision for one load. It is
// rebuilt on every load and never patched.
type Composite struct {
	// Original is the texture served to the host for this load.
	Original *Texture
	// Produced is the texture drawn in place of Original. nil means the
	// rule matched but changes nothing.
	Produced *Texture
	// Rule is the rule the composite was built from.
	Rule *Rule
	// Mode is the mode the rule resolved to for this composite.
	Mode Mode
}

// PassThrough reports whether the composite leaves draws untouched.
func (c *Composite) PassThrough() bool {
	return c == nil || c.Produced == nil
}
