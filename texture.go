package g3d

import (
	"fmt"
	"image"
	_ "image/jpeg" // texture decoding
	_ "image/png"  // texture decoding
	"os"

	"github.com/chewxy/math32"
	"golang.org/x/image/draw"
)

// FilterMode selects how a texture is sampled between texels.
type FilterMode int

const (
	// FilterBilinear interpolates the four nearest texels. This is the
	// default, matching the linear sampler of the GPU pipeline.
	FilterBilinear FilterMode = iota

	// FilterNearest picks the single nearest texel.
	FilterNearest
)

// Texture is a 2D RGBA8 image sampled by normalized UV coordinates.
// Coordinates outside [0, 1] wrap (repeat addressing). Texture data is
// read-only after creation, so a Texture is safe for concurrent
// sampling from multiple goroutines.
type Texture struct {
	width  int
	height int
	data   []uint8 // RGBA, 4 bytes per pixel
	filter FilterMode
}

// NewTexture creates a texture from raw RGBA pixel data. The data
// slice must hold width*height*4 bytes; it is retained, not copied.
func NewTexture(width, height int, data []uint8) *Texture {
	return &Texture{width: width, height: height, data: data}
}

// NewTextureFromImage converts an arbitrary image into a texture,
// using x/image/draw for the color-model conversion.
func NewTextureFromImage(img image.Image) *Texture {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return NewTexture(b.Dx(), b.Dy(), rgba.Pix)
}

// LoadTexture reads and decodes a PNG or JPEG file into a texture.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	Logger().Debug("texture loaded", "path", path, "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return NewTextureFromImage(img), nil
}

// NewCheckerTexture creates a size x size checkerboard with cells of
// the given pixel size, alternating light and dark grey. It is the
// fallback texture for models loaded without any texture file.
func NewCheckerTexture(size, cell int) *Texture {
	if cell < 1 {
		cell = 1
	}
	data := make([]uint8, size*size*4)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			shade := uint8(230)
			if (x/cell+y/cell)%2 == 1 {
				shade = 64
			}
			off := (y*size + x) * 4
			data[off+0] = shade
			data[off+1] = shade
			data[off+2] = shade
			data[off+3] = 255
		}
	}
	return NewTexture(size, size, data)
}

// SetFilter selects the sampling filter. Not safe to call concurrently
// with Sample.
func (t *Texture) SetFilter(f FilterMode) {
	t.filter = f
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.height }

// Data returns the raw RGBA pixel data.
func (t *Texture) Data() []uint8 { return t.data }

// Sample returns the texture color at normalized coordinates (u, v) as
// an RGBA vector with components in [0, 1]. Coordinates wrap.
func (t *Texture) Sample(u, v float32) Vec4 {
	if t.width == 0 || t.height == 0 {
		return Vec4{}
	}
	if t.filter == FilterNearest {
		return t.texel(nearestIndex(u, t.width), nearestIndex(v, t.height))
	}

	// Bilinear: sample at texel centers and blend the 2x2 neighborhood.
	fx := wrap(u)*float32(t.width) - 0.5
	fy := wrap(v)*float32(t.height) - 0.5
	x0 := math32.Floor(fx)
	y0 := math32.Floor(fy)
	tx := fx - x0
	ty := fy - y0

	ix0 := wrapIndex(int(x0), t.width)
	iy0 := wrapIndex(int(y0), t.height)
	ix1 := wrapIndex(int(x0)+1, t.width)
	iy1 := wrapIndex(int(y0)+1, t.height)

	c00 := t.texel(ix0, iy0)
	c10 := t.texel(ix1, iy0)
	c01 := t.texel(ix0, iy1)
	c11 := t.texel(ix1, iy1)

	top := c00.Lerp(c10, tx)
	bottom := c01.Lerp(c11, tx)
	return top.Lerp(bottom, ty)
}

// texel returns the color of the texel at integer coordinates.
func (t *Texture) texel(x, y int) Vec4 {
	off := (y*t.width + x) * 4
	const inv = 1.0 / 255.0
	return Vec4{
		X: float32(t.data[off+0]) * inv,
		Y: float32(t.data[off+1]) * inv,
		Z: float32(t.data[off+2]) * inv,
		W: float32(t.data[off+3]) * inv,
	}
}

// wrap maps a coordinate into [0, 1) with repeat addressing.
func wrap(c float32) float32 {
	w := c - math32.Floor(c)
	if w < 0 { // guards against -0.0 edge from Floor
		w = 0
	}
	return w
}

func nearestIndex(c float32, size int) int {
	return wrapIndex(int(wrap(c)*float32(size)), size)
}

func wrapIndex(i, size int) int {
	i %= size
	if i < 0 {
		i += size
	}
	return i
}
