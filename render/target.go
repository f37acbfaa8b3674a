package render

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/gogpu/g3d"
)

// Target is a CPU-side render target: an RGBA pixel buffer plus a
// float32 depth buffer. Depth follows the pipeline convention of NDC Z
// in [0, 1] with smaller values closer; Clear resets depth to 1.
type Target struct {
	width  int
	height int
	pix    []uint8   // RGBA, 4 bytes per pixel
	depth  []float32 // one value per pixel
}

// NewTarget creates a target with the given dimensions, cleared to
// transparent black and far depth.
func NewTarget(width, height int) *Target {
	t := &Target{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*4),
		depth:  make([]float32, width*height),
	}
	t.Clear(color.RGBA{})
	return t
}

// Width returns the target width in pixels.
func (t *Target) Width() int { return t.width }

// Height returns the target height in pixels.
func (t *Target) Height() int { return t.height }

// Pix returns the raw RGBA pixel data.
func (t *Target) Pix() []uint8 { return t.pix }

// Clear fills the color buffer with c and resets every depth value to
// the far plane (1.0).
func (t *Target) Clear(c color.RGBA) {
	for i := 0; i < len(t.pix); i += 4 {
		t.pix[i+0] = c.R
		t.pix[i+1] = c.G
		t.pix[i+2] = c.B
		t.pix[i+3] = c.A
	}
	for i := range t.depth {
		t.depth[i] = 1
	}
}

// SetPixel writes a shaded color at (x, y), clamping each component to
// [0, 1]. Out-of-bounds coordinates are ignored.
func (t *Target) SetPixel(x, y int, c g3d.Vec4) {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return
	}
	off := (y*t.width + x) * 4
	t.pix[off+0] = toByte(c.X)
	t.pix[off+1] = toByte(c.Y)
	t.pix[off+2] = toByte(c.Z)
	t.pix[off+3] = toByte(c.W)
}

// DepthAt returns the depth buffer value at (x, y).
func (t *Target) DepthAt(x, y int) float32 {
	return t.depth[y*t.width+x]
}

// depthTest performs a less-than depth test at (x, y), writing z on
// pass. It reports whether the fragment survived.
func (t *Target) depthTest(x, y int, z float32) bool {
	idx := y*t.width + x
	if z >= t.depth[idx] {
		return false
	}
	t.depth[idx] = z
	return true
}

// At returns the stored color at (x, y).
func (t *Target) At(x, y int) color.RGBA {
	off := (y*t.width + x) * 4
	return color.RGBA{R: t.pix[off], G: t.pix[off+1], B: t.pix[off+2], A: t.pix[off+3]}
}

// Image returns the color buffer as an image.RGBA sharing the target's
// pixel data.
func (t *Target) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    t.pix,
		Stride: t.width * 4,
		Rect:   image.Rect(0, 0, t.width, t.height),
	}
}

// SavePNG writes the color buffer to a PNG file.
func (t *Target) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, t.Image())
}

func toByte(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
