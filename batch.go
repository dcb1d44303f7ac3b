package hdsprite

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// DrawHook inspects or rewrites a draw call before it is queued. Hooks run
// in registration order.
type DrawHook func(call *DrawCall)

// SortMode selects the submission order of a SpriteBatch.
type SortMode uint8

const (
	SortDeferred    SortMode = iota // submission order
	SortBackToFront                 // ascending Depth, stable
)

// SpriteBatch is the draw stage of the pipeline. Calls pass through the
// batch's hooks when queued and are drawn to a target on Flush.
type SpriteBatch struct {
	Sort SortMode

	hooks   []DrawHook
	calls   []DrawCall
	sortBuf []DrawCall
}

const defaultBatchCap = 1024

// NewSpriteBatch creates a batch with the given hooks installed.
func NewSpriteBatch(hooks ...DrawHook) *SpriteBatch {
	b := &SpriteBatch{calls: make([]DrawCall, 0, defaultBatchCap)}
	for _, h := range hooks {
		b.Use(h)
	}
	return b
}

// Use appends a hook. nil hooks are ignored.
func (b *SpriteBatch) Use(h DrawHook) {
	if h != nil {
		b.hooks = append(b.hooks, h)
	}
}

// Len returns the number of queued calls.
func (b *SpriteBatch) Len() int {
	return len(b.calls)
}

// Draw runs the hooks on call and queues the result. A hook that panics
// leaves the call exactly as the host issued it. A call redirected onto a
// wholesale composite is mapped into high-detail texels, see mapWholesale.
func (b *SpriteBatch) Draw(call DrawCall) {
	out := b.applyHooks(call)
	mapWholesale(&out, call.Texture)
	b.calls = append(b.calls, out)
}

func (b *SpriteBatch) applyHooks(call DrawCall) (out DrawCall) {
	out = call
	defer func() {
		if recover() != nil {
			out = call
		}
	}()
	for _, h := range b.hooks {
		h(&out)
	}
	return out
}

// mapWholesale rescales a call that was redirected from served onto its
// wholesale produced texture. Src and Origin are given in original texels
// and are multiplied by the rule's geometry scale. A call without a
// destination size keeps the on-screen size of its original source
// rectangle.
func mapWholesale(call *DrawCall, served *Texture) {
	if served == nil {
		return
	}
	c := served.composite
	if c == nil || c.Mode != ModeWholesale || c.Produced == nil || call.Texture != c.Produced {
		return
	}
	g := c.Rule.Geometry()
	src := call.Src
	if src.Empty() {
		src = served.Bounds()
	} else {
		call.Src = g.ScaleRect(call.Src)
	}
	if call.Dst.Width == 0 || call.Dst.Height == 0 {
		call.Dst.Width, call.Dst.Height = float64(src.Dx()), float64(src.Dy())
	}
	call.Origin.X *= float64(g.ScaleX)
	call.Origin.Y *= float64(g.ScaleY)
}

// Flush draws every queued call onto target and empties the queue.
func (b *SpriteBatch) Flush(target *ebiten.Image) {
	if b.Sort == SortBackToFront {
		b.mergeSort()
	}
	var op ebiten.DrawImageOptions
	for i := range b.calls {
		submitCall(target, &b.calls[i], &op)
	}
	clear(b.calls)
	b.calls = b.calls[:0]
}

// submitCall draws one call. Calls without a texture or with a source
// rectangle outside the texture are skipped.
func submitCall(target *ebiten.Image, call *DrawCall, op *ebiten.DrawImageOptions) {
	t := call.Texture
	if t == nil {
		return
	}
	src := call.Src
	if src.Empty() {
		src = t.Bounds()
	}
	src = src.Intersect(t.Bounds())
	if src.Empty() {
		return
	}
	img := t.Image()
	if src != t.Bounds() {
		img = img.SubImage(src).(*ebiten.Image)
	}
	op.GeoM = callGeoM(call, src)

	op.ColorScale.Reset()
	c := call.Color
	if c == (Color{}) {
		c = ColorWhite
	}
	a := float32(c.A)
	op.ColorScale.Scale(float32(c.R)*a, float32(c.G)*a, float32(c.B)*a, a)

	target.DrawImage(img, op)
}

// callGeoM maps source texels to the destination: flip within the source
// rectangle, move the origin to (0,0), scale to the destination size, rotate
// about the origin and translate to the destination position.
func callGeoM(call *DrawCall, src image.Rectangle) ebiten.GeoM {
	var g ebiten.GeoM
	sw, sh := float64(src.Dx()), float64(src.Dy())
	if call.Effects&FlipHorizontally != 0 {
		g.Scale(-1, 1)
		g.Translate(sw, 0)
	}
	if call.Effects&FlipVertically != 0 {
		g.Scale(1, -1)
		g.Translate(0, sh)
	}
	g.Translate(-call.Origin.X, -call.Origin.Y)
	dw, dh := call.Dst.Width, call.Dst.Height
	if dw != 0 && dh != 0 {
		g.Scale(dw/sw, dh/sh)
	}
	if call.Rotation != 0 {
		g.Rotate(call.Rotation)
	}
	g.Translate(call.Dst.X, call.Dst.Y)
	return g
}

// mergeSort sorts b.calls by Depth in place using b.sortBuf as scratch.
// Bottom-up, stable, and allocation free once sortBuf has grown.
func (b *SpriteBatch) mergeSort() {
	n := len(b.calls)
	if n <= 1 {
		return
	}
	if cap(b.sortBuf) < n {
		b.sortBuf = make([]DrawCall, n)
	}
	b.sortBuf = b.sortBuf[:n]

	src, dst := b.calls, b.sortBuf
	swapped := false
	for width := 1; width < n; width *= 2 {
		for lo := 0; lo < n; lo += 2 * width {
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(src, dst, lo, mid, hi)
		}
		src, dst = dst, src
		swapped = !swapped
	}
	if swapped {
		copy(b.calls, b.sortBuf)
	}
	clear(b.sortBuf)
}

// mergeRun merges sorted runs [lo, mid) and [mid, hi) of src into dst.
// Ties keep the left run first.
func mergeRun(src, dst []DrawCall, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if src[i].Depth <= src[j].Depth {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	k += copy(dst[k:], src[i:mid])
	copy(dst[k:], src[j:hi])
}
