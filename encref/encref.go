// Package encref implements CPU reference encoders for the common GX
// texture formats. The arithmetic mirrors the generated encoding shaders
// texel for texel, so encref output doubles as the numeric golden
// reference in tests and as a software fallback when no GPU is available.
package encref

import (
	"fmt"
	"image"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
	"golang.org/x/image/draw"

	"github.com/gxkit/texconv"
)

// Quantize maps a normalized channel value to its integer level at the
// given bit depth: floor(v * (255 / 2^(8-depth))), truncating exactly like
// the shader quantizer.
func Quantize(v float32, depth uint8) int {
	return int(math32.Floor(v * (255 / math32.Exp2(float32(8-int(depth))))))
}

// Intensity converts normalized RGB to the luma-style intensity value the
// I4/I8/IA4/IA8 formats store. The constant term is the bias the shaders
// add once over the whole output vector.
func Intensity(r, g, b float32) float32 {
	return 0.257*r + 0.504*g + 0.098*b + 0.0625
}

// rgb5a3MaxAlpha matches the shader's per-pixel precision branch: above
// this alpha the pixel keeps 5-bit color and drops alpha entirely.
const rgb5a3MaxAlpha = 0.878

// ParamsRegion converts a pixel rectangle to the float box
// [texconv.SetShaderParameters] takes for the same copy.
func ParamsRegion(r image.Rectangle) ms2.Box {
	return ms2.Box{
		Min: ms2.Vec{X: float32(r.Min.X), Y: float32(r.Min.Y)},
		Max: ms2.Vec{X: float32(r.Max.X), Y: float32(r.Max.Y)},
	}
}

// EncodedSize returns the byte size of a width by height image encoded in
// format, rounded up to whole memory tiles.
func EncodedSize(format texconv.TextureFormat, width, height int) (int, error) {
	bpt, err := bitsPerTexel(format)
	if err != nil {
		return 0, err
	}
	bw, bh := format.BlockWidth(), format.BlockHeight()
	nbx := (width + bw - 1) / bw
	nby := (height + bh - 1) / bh
	return nbx * nby * bw * bh * bpt / 8, nil
}

func bitsPerTexel(format texconv.TextureFormat) (int, error) {
	switch format {
	case texconv.FormatI4:
		return 4, nil
	case texconv.FormatI8, texconv.FormatIA4:
		return 8, nil
	case texconv.FormatIA8, texconv.FormatRGB565, texconv.FormatRGB5A3:
		return 16, nil
	case texconv.FormatRGBA8:
		return 32, nil
	}
	return 0, fmt.Errorf("encref: no CPU reference encoder for format %s", format)
}

// Encode converts the region of src into block-tiled GX texture memory in
// format. Texels past the region edge inside a partially covered tile
// repeat the nearest edge texel.
func Encode(format texconv.TextureFormat, src image.Image, region image.Rectangle) ([]byte, error) {
	size, err := EncodedSize(format, region.Dx(), region.Dy())
	if err != nil {
		return nil, err
	}
	if region.Empty() {
		return nil, fmt.Errorf("encref: empty source region %v", region)
	}

	// Flatten the source region into straight RGBA once; the tiled walk
	// below then reads it in block order.
	flat := image.NewRGBA(image.Rect(0, 0, region.Dx(), region.Dy()))
	draw.Draw(flat, flat.Bounds(), src, region.Min, draw.Src)

	e := tiler{flat: flat, w: region.Dx(), h: region.Dy(), out: make([]byte, 0, size)}
	switch format {
	case texconv.FormatI4:
		e.encodeI4()
	case texconv.FormatI8:
		e.encodeI8()
	case texconv.FormatIA4:
		e.encodeIA4()
	case texconv.FormatIA8:
		e.encodeIA8()
	case texconv.FormatRGB565:
		e.encodeRGB565()
	case texconv.FormatRGB5A3:
		e.encodeRGB5A3()
	case texconv.FormatRGBA8:
		e.encodeRGBA8()
	}
	return e.out, nil
}

type tiler struct {
	flat *image.RGBA
	w, h int
	out  []byte
}

// texel returns the normalized RGBA value at (x, y), clamped to the edge
// for tile padding.
func (e *tiler) texel(x, y int) (r, g, b, a float32) {
	if x >= e.w {
		x = e.w - 1
	}
	if y >= e.h {
		y = e.h - 1
	}
	c := e.flat.RGBAAt(x, y)
	const inv = 1.0 / 255.0
	return float32(c.R) * inv, float32(c.G) * inv, float32(c.B) * inv, float32(c.A) * inv
}

// blocks walks every tile of a blkW by blkH tiling in memory order and
// calls fn with the tile's origin texel.
func (e *tiler) blocks(blkW, blkH int, fn func(x0, y0 int)) {
	for y0 := 0; y0 < e.h; y0 += blkH {
		for x0 := 0; x0 < e.w; x0 += blkW {
			fn(x0, y0)
		}
	}
}

func (e *tiler) encodeI4() {
	e.blocks(8, 8, func(x0, y0 int) {
		for y := y0; y < y0+8; y++ {
			for x := x0; x < x0+8; x += 2 {
				hi := Quantize(Intensity(rgbOf(e.texel(x, y))), 4)
				lo := Quantize(Intensity(rgbOf(e.texel(x+1, y))), 4)
				e.out = append(e.out, byte(hi<<4|lo))
			}
		}
	})
}

func (e *tiler) encodeI8() {
	e.blocks(8, 4, func(x0, y0 int) {
		for y := y0; y < y0+4; y++ {
			for x := x0; x < x0+8; x++ {
				e.out = append(e.out, byte(Quantize(Intensity(rgbOf(e.texel(x, y))), 8)))
			}
		}
	})
}

func (e *tiler) encodeIA4() {
	e.blocks(8, 4, func(x0, y0 int) {
		for y := y0; y < y0+4; y++ {
			for x := x0; x < x0+8; x++ {
				r, g, b, a := e.texel(x, y)
				i := Quantize(Intensity(r, g, b), 4)
				e.out = append(e.out, byte(Quantize(a, 4)<<4|i))
			}
		}
	})
}

func (e *tiler) encodeIA8() {
	e.blocks(4, 4, func(x0, y0 int) {
		for y := y0; y < y0+4; y++ {
			for x := x0; x < x0+4; x++ {
				r, g, b, a := e.texel(x, y)
				e.out = append(e.out, byte(Quantize(a, 8)), byte(Quantize(Intensity(r, g, b), 8)))
			}
		}
	})
}

func (e *tiler) encodeRGB565() {
	e.blocks(4, 4, func(x0, y0 int) {
		for y := y0; y < y0+4; y++ {
			for x := x0; x < x0+4; x++ {
				r, g, b, _ := e.texel(x, y)
				v := Quantize(r, 5)<<11 | Quantize(g, 6)<<5 | Quantize(b, 5)
				e.out = append(e.out, byte(v>>8), byte(v))
			}
		}
	})
}

func (e *tiler) encodeRGB5A3() {
	e.blocks(4, 4, func(x0, y0 int) {
		for y := y0; y < y0+4; y++ {
			for x := x0; x < x0+4; x++ {
				r, g, b, a := e.texel(x, y)
				var v int
				if a > rgb5a3MaxAlpha {
					v = 1<<15 | Quantize(r, 5)<<10 | Quantize(g, 5)<<5 | Quantize(b, 5)
				} else {
					v = Quantize(a, 3)<<12 | Quantize(r, 4)<<8 | Quantize(g, 4)<<4 | Quantize(b, 4)
				}
				e.out = append(e.out, byte(v>>8), byte(v))
			}
		}
	})
}

// encodeRGBA8 emits two 32-byte halves per tile, AR pairs then GB pairs,
// matching the two cache line layout the 32-bit shader swizzler targets.
func (e *tiler) encodeRGBA8() {
	e.blocks(4, 4, func(x0, y0 int) {
		for y := y0; y < y0+4; y++ {
			for x := x0; x < x0+4; x++ {
				r, _, _, a := e.texel(x, y)
				e.out = append(e.out, byte(Quantize(a, 8)), byte(Quantize(r, 8)))
			}
		}
		for y := y0; y < y0+4; y++ {
			for x := x0; x < x0+4; x++ {
				_, g, b, _ := e.texel(x, y)
				e.out = append(e.out, byte(Quantize(g, 8)), byte(Quantize(b, 8)))
			}
		}
	})
}

func rgbOf(r, g, b, _ float32) (float32, float32, float32) { return r, g, b }
