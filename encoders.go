package texconv

import (
	"github.com/chewxy/math32"

	"github.com/gxkit/texconv/glgen"
)

// uniformName is the shader-side name of the parameter block: two packed
// 4-vectors written by SetShaderParameters.
const uniformName = "cTexConv"

// UniformSlot is the constant register slot the parameter block binds to
// on register-based APIs.
const UniformSlot = 0

// glPrologue maps the vector types and intrinsics the format bodies are
// written against onto their GLSL equivalents, so each body is emitted
// once for both API dialects.
const glPrologue = "#version 330\n" +
	"#define float2 vec2\n" +
	"#define float3 vec3\n" +
	"#define float4 vec4\n" +
	"#define frac fract\n" +
	"#define tex2D texture\n"

// generator carries the state of one GenerateEncodingShader call: the
// bound output buffer, the target dialect, the deferred sample index and
// the intensity constant flag. All of it is scoped to a single generated
// program and dies with the generator value, so nothing can leak into the
// next generation call.
type generator struct {
	buf *glgen.CodeBuffer
	api API
	// suf is the float literal suffix: "f" on D3D9, empty on GLSL.
	suf string
	// sampleIdx is the deferred horizontal sample offset, see nextSample.
	sampleIdx         int
	intensityDeclared bool
}

// f renders a float literal in the target dialect with a fixed '.' decimal
// separator regardless of host locale.
func (g *generator) f(v float32) string { return glgen.FormatFloat(v, g.suf) }

// writeSwizzler emits the uniform and sampler declarations, the entry
// point signature, and the address translation that maps a destination
// pixel coordinate to a source sample coordinate through the format's
// block-tiled memory layout.
func (g *generator) writeSwizzler(format TextureFormat) {
	g.writeHeader()

	blkW := float32(format.BlockWidth())
	blkH := float32(format.BlockHeight())
	samples := float32(format.EncodedSampleCount())

	g.buf.Writef("  uv1.x = uv1.x * %s;\n", g.f(samples))

	g.buf.Writef("  float xl = floor(uv1.x / %s);\n", g.f(blkW))
	g.buf.Writef("  float xib = uv1.x - (xl * %s);\n", g.f(blkW))
	g.buf.Writef("  float yl = floor(uv1.y / %s);\n", g.f(blkH))
	g.buf.Writef("  float yb = yl * %s;\n", g.f(blkH))
	g.buf.Writef("  float yoff = uv1.y - yb;\n")
	g.buf.Writef("  float xp = uv1.x + (yoff * %s[1].x);\n", uniformName)
	g.buf.Writef("  float xel = floor(xp / %s);\n", g.f(blkW))
	g.buf.Writef("  float xb = floor(xel / %s);\n", g.f(blkH))
	g.buf.Writef("  float xoff = xel - (xb * %s);\n", g.f(blkH))

	g.buf.Writef("  sampleUv.x = xib + (xb * %s);\n", g.f(blkW))
	g.buf.Writef("  sampleUv.y = yb + xoff;\n")
	g.writeSampleUvTransform()
}

// write32BitSwizzler is the address translation variant for 32-bit formats
// (RGBA8, Z24X8), whose texels are stored as two 16-bit halves in two
// cache line increments. It leaves the helper values xb and halfxb in
// scope: the format bodies derive the cache line selector from them.
func (g *generator) write32BitSwizzler(format TextureFormat) {
	g.writeHeader()

	blkW := float32(format.BlockWidth())
	blkH := float32(format.BlockHeight())

	g.buf.Writef("  float yl = floor(uv1.y / %s);\n", g.f(blkH))
	g.buf.Writef("  float yb = yl * %s;\n", g.f(blkH))
	g.buf.Writef("  float yoff = uv1.y - yb;\n")
	g.buf.Writef("  float xp = uv1.x + (yoff * %s[1].x);\n", uniformName)
	g.buf.Writef("  float xel = floor(xp / %s);\n", g.f(2))
	g.buf.Writef("  float xb = floor(xel / %s);\n", g.f(blkH))
	g.buf.Writef("  float xoff = xel - (xb * %s);\n", g.f(blkH))

	g.buf.Writef("  float x2 = uv1.x * %s;\n", g.f(2))
	g.buf.Writef("  float xl = floor(x2 / %s);\n", g.f(blkW))
	g.buf.Writef("  float xib = x2 - (xl * %s);\n", g.f(blkW))
	g.buf.Writef("  float halfxb = floor(xb / %s);\n", g.f(2))

	g.buf.Writef("  sampleUv.x = xib + (halfxb * %s);\n", g.f(blkW))
	g.buf.Writef("  sampleUv.y = yb + xoff;\n")
	g.writeSampleUvTransform()
}

func (g *generator) writeHeader() {
	if g.api == APID3D9 {
		g.buf.Writef("uniform float4 %s[2] : register(c%d);\n", uniformName, UniformSlot)
		g.buf.Writef("uniform sampler samp0 : register(s0);\n")
		g.buf.Writef("void main(\n")
		g.buf.Writef("  out float4 ocol0 : COLOR0,\n")
		g.buf.Writef("  in float2 uv0 : TEXCOORD0)\n")
	} else {
		g.buf.Writef(glPrologue)
		g.buf.Writef("uniform float4 %s[2];\n", uniformName)
		g.buf.Writef("uniform sampler2D samp0;\n")
		g.buf.Writef("in float2 uv0;\n")
		g.buf.Writef("out float4 ocol0;\n")
		g.buf.Writef("void main()\n")
	}
	g.buf.Writef("{\n" +
		"  float2 sampleUv;\n" +
		"  float2 uv1 = floor(uv0);\n")
}

// writeSampleUvTransform maps the swizzled texel coordinate into the
// source rectangle and normalizes it to texture coordinates.
func (g *generator) writeSampleUvTransform() {
	g.buf.Writef("  sampleUv = sampleUv * %s[0].xy;\n", uniformName)
	g.buf.Writef("  sampleUv = sampleUv + %s[1].zw;\n", uniformName)
	g.buf.Writef("  sampleUv = sampleUv + float2(%s, %s);\n", g.f(0), g.f(1))
	g.buf.Writef("  sampleUv = sampleUv / %s[0].zw;\n", uniformName)
}

// sampleColor emits a source texture fetch of comp into dest at the
// current sample coordinate plus the deferred horizontal sample offset.
func (g *generator) sampleColor(comp, dest string) {
	g.buf.Writef("  %s = tex2D(samp0, sampleUv + float2(%d.0%s * (%s[0].x / %s[0].z), %s)).%s;\n",
		dest, g.sampleIdx, g.suf, uniformName, uniformName, g.f(0), comp)
}

// nextSample advances the deferred sample offset. The offset is
// materialized as a constant multiplier inside sampleColor instead of an
// accumulating register update: shader compilers constant-fold the former
// into far fewer ALU slots.
func (g *generator) nextSample() { g.sampleIdx++ }

// colorToIntensity converts an RGB sample into a luma-style intensity
// value. The weight vector's alpha component is a bias that every output
// channel needs once; it is added across the whole output at the end of
// the format body, which vectorizes into fewer adds than biasing each
// sample here.
func (g *generator) colorToIntensity(src, dest string) {
	if !g.intensityDeclared {
		g.buf.Writef("  float4 IntensityConst = float4(%s,%s,%s,%s);\n",
			g.f(0.257), g.f(0.504), g.f(0.098), g.f(0.0625))
		g.intensityDeclared = true
	}
	g.buf.Writef("  %s = dot(IntensityConst.rgb, %s.rgb);\n", dest, src)
}

// toBitDepth quantizes a normalized channel value to an integer level of
// the given bit depth: floor(v * (255 / 2^(8-depth))). The floor matches
// how the hardware store format truncates precision and must not be
// replaced with rounding.
func (g *generator) toBitDepth(depth int, src, dest string) {
	levels := 255 / math32.Exp2(float32(8-depth))
	g.buf.Writef("  %s = floor(%s * %s);\n", dest, src, g.f(levels))
}

func (g *generator) end() {
	g.buf.Writef("}\n")
	g.sampleIdx = 0
	g.intensityDeclared = false
}

func (g *generator) writeI8() {
	g.writeSwizzler(FormatI8)
	g.buf.Writef("  float3 texSample;\n")

	g.sampleColor("rgb", "texSample")
	g.colorToIntensity("texSample", "ocol0.b")
	g.nextSample()

	g.sampleColor("rgb", "texSample")
	g.colorToIntensity("texSample", "ocol0.g")
	g.nextSample()

	g.sampleColor("rgb", "texSample")
	g.colorToIntensity("texSample", "ocol0.r")
	g.nextSample()

	g.sampleColor("rgb", "texSample")
	g.colorToIntensity("texSample", "ocol0.a")

	g.buf.Writef("  ocol0.rgba += IntensityConst.aaaa;\n")

	g.end()
}

func (g *generator) writeI4() {
	g.writeSwizzler(FormatI4)
	g.buf.Writef("  float3 texSample;\n")
	g.buf.Writef("  float4 color0;\n")
	g.buf.Writef("  float4 color1;\n")

	g.sampleColor("rgb", "texSample")
	g.colorToIntensity("texSample", "color0.b")
	g.nextSample()

	g.sampleColor("rgb", "texSample")
	g.colorToIntensity("texSample", "color1.b")
	g.nextSample()

	g.sampleColor("rgb", "texSample")
	g.colorToIntensity("texSample", "color0.g")
	g.nextSample()

	g.sampleColor("rgb", "texSample")
	g.colorToIntensity("texSample", "color1.g")
	g.nextSample()

	g.sampleColor("rgb", "texSample")
	g.colorToIntensity("texSample", "color0.r")
	g.nextSample()

	g.sampleColor("rgb", "texSample")
	g.colorToIntensity("texSample", "color1.r")
	g.nextSample()

	g.sampleColor("rgb", "texSample")
	g.colorToIntensity("texSample", "color0.a")
	g.nextSample()

	g.sampleColor("rgb", "texSample")
	g.colorToIntensity("texSample", "color1.a")

	g.buf.Writef("  color0.rgba += IntensityConst.aaaa;\n")
	g.buf.Writef("  color1.rgba += IntensityConst.aaaa;\n")

	g.toBitDepth(4, "color0", "color0")
	g.toBitDepth(4, "color1", "color1")

	g.buf.Writef("  ocol0 = (color0 * %s + color1) / %s;\n", g.f(16), g.f(255))
	g.end()
}

func (g *generator) writeIA8() {
	g.writeSwizzler(FormatIA8)
	g.buf.Writef("  float4 texSample;\n")

	g.sampleColor("rgba", "texSample")
	g.buf.Writef("  ocol0.b = texSample.a;\n")
	g.colorToIntensity("texSample", "ocol0.g")
	g.nextSample()

	g.sampleColor("rgba", "texSample")
	g.buf.Writef("  ocol0.r = texSample.a;\n")
	g.colorToIntensity("texSample", "ocol0.a")

	g.buf.Writef("  ocol0.ga += IntensityConst.aa;\n")

	g.end()
}

func (g *generator) writeIA4() {
	g.writeSwizzler(FormatIA4)
	g.buf.Writef("  float4 texSample;\n")
	g.buf.Writef("  float4 color0;\n")
	g.buf.Writef("  float4 color1;\n")

	g.sampleColor("rgba", "texSample")
	g.buf.Writef("  color0.b = texSample.a;\n")
	g.colorToIntensity("texSample", "color1.b")
	g.nextSample()

	g.sampleColor("rgba", "texSample")
	g.buf.Writef("  color0.g = texSample.a;\n")
	g.colorToIntensity("texSample", "color1.g")
	g.nextSample()

	g.sampleColor("rgba", "texSample")
	g.buf.Writef("  color0.r = texSample.a;\n")
	g.colorToIntensity("texSample", "color1.r")
	g.nextSample()

	g.sampleColor("rgba", "texSample")
	g.buf.Writef("  color0.a = texSample.a;\n")
	g.colorToIntensity("texSample", "color1.a")

	g.buf.Writef("  color1.rgba += IntensityConst.aaaa;\n")

	g.toBitDepth(4, "color0", "color0")
	g.toBitDepth(4, "color1", "color1")

	g.buf.Writef("  ocol0 = (color0 * %s + color1) / %s;\n", g.f(16), g.f(255))
	g.end()
}

func (g *generator) writeRGB565() {
	g.writeSwizzler(FormatRGB565)

	g.sampleColor("rgb", "float3 texSample0")
	g.nextSample()
	g.sampleColor("rgb", "float3 texSample1")
	g.buf.Writef("  float2 texRs = float2(texSample0.r, texSample1.r);\n")
	g.buf.Writef("  float2 texGs = float2(texSample0.g, texSample1.g);\n")
	g.buf.Writef("  float2 texBs = float2(texSample0.b, texSample1.b);\n")

	g.toBitDepth(6, "texGs", "float2 gInt")
	g.buf.Writef("  float2 gUpper = floor(gInt / %s);\n", g.f(8))
	g.buf.Writef("  float2 gLower = gInt - gUpper * %s;\n", g.f(8))

	g.toBitDepth(5, "texRs", "ocol0.br")
	g.buf.Writef("  ocol0.br = ocol0.br * %s + gUpper;\n", g.f(8))
	g.toBitDepth(5, "texBs", "ocol0.ga")
	g.buf.Writef("  ocol0.ga = ocol0.ga + gLower * %s;\n", g.f(32))

	g.buf.Writef("  ocol0 = ocol0 / %s;\n", g.f(255))
	g.end()
}

// rgb5a3MaxAlpha is the largest alpha representable in 3 bits, 224/255.
// Pixels above it keep 5-bit color precision and drop alpha entirely.
const rgb5a3MaxAlpha = 0.878

func (g *generator) writeRGB5A3() {
	g.writeSwizzler(FormatRGB5A3)

	g.buf.Writef("  float4 texSample;\n")
	g.buf.Writef("  float color0;\n")
	g.buf.Writef("  float gUpper;\n")
	g.buf.Writef("  float gLower;\n")

	g.sampleColor("rgba", "texSample")
	g.writeRGB5A3Pixel("b", "g")
	g.nextSample()

	g.sampleColor("rgba", "texSample")
	g.writeRGB5A3Pixel("r", "a")

	g.buf.Writef("  ocol0 = ocol0 / %s;\n", g.f(255))
	g.end()
}

// writeRGB5A3Pixel packs one sampled pixel into the output channel pair
// (hi, lo), branching per pixel on whether its alpha still fits 3 bits.
func (g *generator) writeRGB5A3Pixel(hi, lo string) {
	g.buf.Writef("if(texSample.a > %s) {\n", g.f(rgb5a3MaxAlpha))

	g.toBitDepth(5, "texSample.g", "color0")
	g.buf.Writef("  gUpper = floor(color0 / %s);\n", g.f(8))
	g.buf.Writef("  gLower = color0 - gUpper * %s;\n", g.f(8))

	g.toBitDepth(5, "texSample.r", "ocol0."+hi)
	g.buf.Writef("  ocol0.%s = ocol0.%s * %s + gUpper + %s;\n", hi, hi, g.f(4), g.f(128))
	g.toBitDepth(5, "texSample.b", "ocol0."+lo)
	g.buf.Writef("  ocol0.%s = ocol0.%s + gLower * %s;\n", lo, lo, g.f(32))

	g.buf.Writef("} else {\n")

	g.toBitDepth(4, "texSample.r", "ocol0."+hi)
	g.toBitDepth(4, "texSample.b", "ocol0."+lo)

	g.toBitDepth(3, "texSample.a", "color0")
	g.buf.Writef("ocol0.%s = ocol0.%s + color0 * %s;\n", hi, hi, g.f(16))
	g.toBitDepth(4, "texSample.g", "color0")
	g.buf.Writef("ocol0.%s = ocol0.%s + color0 * %s;\n", lo, lo, g.f(16))

	g.buf.Writef("}\n")
}

// writeRGBA4443 is the legacy RGB5A3 packing: every pixel quantized to
// 4-4-4 color with 3-bit alpha, no per-pixel precision branch.
func (g *generator) writeRGBA4443() {
	g.writeSwizzler(FormatRGB5A3)

	g.buf.Writef("  float4 texSample;\n")
	g.buf.Writef("  float4 color0;\n")
	g.buf.Writef("  float4 color1;\n")

	g.sampleColor("rgba", "texSample")
	g.toBitDepth(3, "texSample.a", "color0.b")
	g.toBitDepth(4, "texSample.r", "color1.b")
	g.toBitDepth(4, "texSample.g", "color0.g")
	g.toBitDepth(4, "texSample.b", "color1.g")

	g.nextSample()

	g.sampleColor("rgba", "texSample")
	g.toBitDepth(3, "texSample.a", "color0.r")
	g.toBitDepth(4, "texSample.r", "color1.r")
	g.toBitDepth(4, "texSample.g", "color0.a")
	g.toBitDepth(4, "texSample.b", "color1.a")

	g.buf.Writef("  ocol0 = (color0 * %s + color1) / %s;\n", g.f(16), g.f(255))
	g.end()
}

func (g *generator) writeRGBA8() {
	g.write32BitSwizzler(FormatRGBA8)

	g.buf.Writef("  float cl1 = xb - (halfxb * %s);\n", g.f(2))
	g.buf.Writef("  float cl0 = %s - cl1;\n", g.f(1))

	g.buf.Writef("  float4 texSample;\n")
	g.buf.Writef("  float4 color0;\n")
	g.buf.Writef("  float4 color1;\n")

	g.sampleColor("rgba", "texSample")
	g.buf.Writef("  color0.b = texSample.a;\n")
	g.buf.Writef("  color0.g = texSample.r;\n")
	g.buf.Writef("  color1.b = texSample.g;\n")
	g.buf.Writef("  color1.g = texSample.b;\n")

	g.nextSample()

	g.sampleColor("rgba", "texSample")
	g.buf.Writef("  color0.r = texSample.a;\n")
	g.buf.Writef("  color0.a = texSample.r;\n")
	g.buf.Writef("  color1.r = texSample.g;\n")
	g.buf.Writef("  color1.a = texSample.b;\n")

	g.buf.Writef("  ocol0 = (cl0 * color0) + (cl1 * color1);\n")

	g.end()
}

func (g *generator) writeC4(comp string) {
	g.writeSwizzler(FormatR4)
	g.buf.Writef("  float4 color0;\n")
	g.buf.Writef("  float4 color1;\n")

	g.sampleColor(comp, "color0.b")
	g.nextSample()

	g.sampleColor(comp, "color1.b")
	g.nextSample()

	g.sampleColor(comp, "color0.g")
	g.nextSample()

	g.sampleColor(comp, "color1.g")
	g.nextSample()

	g.sampleColor(comp, "color0.r")
	g.nextSample()

	g.sampleColor(comp, "color1.r")
	g.nextSample()

	g.sampleColor(comp, "color0.a")
	g.nextSample()

	g.sampleColor(comp, "color1.a")

	g.toBitDepth(4, "color0", "color0")
	g.toBitDepth(4, "color1", "color1")

	g.buf.Writef("  ocol0 = (color0 * %s + color1) / %s;\n", g.f(16), g.f(255))
	g.end()
}

func (g *generator) writeC8(comp string) {
	g.writeSwizzler(FormatR8)

	g.sampleColor(comp, "ocol0.b")
	g.nextSample()

	g.sampleColor(comp, "ocol0.g")
	g.nextSample()

	g.sampleColor(comp, "ocol0.r")
	g.nextSample()

	g.sampleColor(comp, "ocol0.a")

	g.end()
}

func (g *generator) writeCC4(comp string) {
	g.writeSwizzler(FormatRA4)
	g.buf.Writef("  float2 texSample;\n")
	g.buf.Writef("  float4 color0;\n")
	g.buf.Writef("  float4 color1;\n")

	g.sampleColor(comp, "texSample")
	g.buf.Writef("  color0.b = texSample.x;\n")
	g.buf.Writef("  color1.b = texSample.y;\n")
	g.nextSample()

	g.sampleColor(comp, "texSample")
	g.buf.Writef("  color0.g = texSample.x;\n")
	g.buf.Writef("  color1.g = texSample.y;\n")
	g.nextSample()

	g.sampleColor(comp, "texSample")
	g.buf.Writef("  color0.r = texSample.x;\n")
	g.buf.Writef("  color1.r = texSample.y;\n")
	g.nextSample()

	g.sampleColor(comp, "texSample")
	g.buf.Writef("  color0.a = texSample.x;\n")
	g.buf.Writef("  color1.a = texSample.y;\n")

	g.toBitDepth(4, "color0", "color0")
	g.toBitDepth(4, "color1", "color1")

	g.buf.Writef("  ocol0 = (color0 * %s + color1) / %s;\n", g.f(16), g.f(255))
	g.end()
}

func (g *generator) writeCC8(comp string) {
	g.writeSwizzler(FormatRA8)

	g.sampleColor(comp, "ocol0.bg")
	g.nextSample()

	g.sampleColor(comp, "ocol0.ra")

	g.end()
}

// writeZ8 encodes one byte digit of normalized depth per output channel.
// The multiplier selects the digit: 256 for the middle byte, 65536 for
// the low byte.
func (g *generator) writeZ8(multiplier float32) {
	g.writeSwizzler(FormatZ8M)

	g.buf.Writef(" float depth;\n")

	g.sampleColor("b", "depth")
	g.buf.Writef("ocol0.b = frac(depth * %s);\n", g.f(multiplier))
	g.nextSample()

	g.sampleColor("b", "depth")
	g.buf.Writef("ocol0.g = frac(depth * %s);\n", g.f(multiplier))
	g.nextSample()

	g.sampleColor("b", "depth")
	g.buf.Writef("ocol0.r = frac(depth * %s);\n", g.f(multiplier))
	g.nextSample()

	g.sampleColor("b", "depth")
	g.buf.Writef("ocol0.a = frac(depth * %s);\n", g.f(multiplier))

	g.end()
}

// writeZ16Digits expands normalized depth into its base-256 digits,
// through the low byte when lowByte is set.
func (g *generator) writeZ16Digits(index string, lowByte bool) {
	g.buf.Writef("  depth%s *= %s;\n", index, g.f(16777215))
	g.buf.Writef("  expanded%s.r = floor(depth%s / (%s * %s));\n", index, index, g.f(256), g.f(256))
	g.buf.Writef("  depth%s -= expanded%s.r * %s * %s;\n", index, index, g.f(256), g.f(256))
	g.buf.Writef("  expanded%s.g = floor(depth%s / %s);\n", index, index, g.f(256))
	if lowByte {
		g.buf.Writef("  depth%s -= expanded%s.g * %s;\n", index, index, g.f(256))
		g.buf.Writef("  expanded%s.b = depth%s;\n", index, index)
	}
}

func (g *generator) writeZ16() {
	g.writeSwizzler(FormatZ16)

	g.buf.Writef("  float depth;\n")
	g.buf.Writef("  float3 expanded;\n")

	// Byte order of the stored halfword is reversed.

	g.sampleColor("b", "depth")
	g.writeZ16Digits("", false)
	g.buf.Writef("  ocol0.b = expanded.g / %s;\n", g.f(255))
	g.buf.Writef("  ocol0.g = expanded.r / %s;\n", g.f(255))

	g.nextSample()

	g.sampleColor("b", "depth")
	g.writeZ16Digits("", false)
	g.buf.Writef("  ocol0.r = expanded.g / %s;\n", g.f(255))
	g.buf.Writef("  ocol0.a = expanded.r / %s;\n", g.f(255))

	g.end()
}

func (g *generator) writeZ16L() {
	g.writeSwizzler(FormatZ16L)

	g.buf.Writef("  float depth;\n")
	g.buf.Writef("  float3 expanded;\n")

	// Byte order of the stored halfword is reversed.

	g.sampleColor("b", "depth")
	g.writeZ16Digits("", true)
	g.buf.Writef("  ocol0.b = expanded.b / %s;\n", g.f(255))
	g.buf.Writef("  ocol0.g = expanded.g / %s;\n", g.f(255))

	g.nextSample()

	g.sampleColor("b", "depth")
	g.writeZ16Digits("", true)
	g.buf.Writef("  ocol0.r = expanded.b / %s;\n", g.f(255))
	g.buf.Writef("  ocol0.a = expanded.g / %s;\n", g.f(255))

	g.end()
}

func (g *generator) writeZ24() {
	g.write32BitSwizzler(FormatZ24X8)

	g.buf.Writef("  float cl = xb - (halfxb * %s);\n", g.f(2))

	g.buf.Writef("  float depth0;\n")
	g.buf.Writef("  float depth1;\n")
	g.buf.Writef("  float3 expanded0;\n")
	g.buf.Writef("  float3 expanded1;\n")

	g.sampleColor("b", "depth0")
	g.nextSample()
	g.sampleColor("b", "depth1")

	for _, i := range []string{"0", "1"} {
		g.writeZ16Digits(i, true)
	}

	g.buf.Writef("  if(cl > %s) {\n", g.f(0.5))
	// Upper 16 bits of both depth samples.
	g.buf.Writef("     ocol0.b = expanded0.g / %s;\n", g.f(255))
	g.buf.Writef("     ocol0.g = expanded0.b / %s;\n", g.f(255))
	g.buf.Writef("     ocol0.r = expanded1.g / %s;\n", g.f(255))
	g.buf.Writef("     ocol0.a = expanded1.b / %s;\n", g.f(255))
	g.buf.Writef("  } else {\n")
	// Lower 8 bits, alpha channel forced opaque.
	g.buf.Writef("     ocol0.b = %s;\n", g.f(1))
	g.buf.Writef("     ocol0.g = expanded0.r / %s;\n", g.f(255))
	g.buf.Writef("     ocol0.r = %s;\n", g.f(1))
	g.buf.Writef("     ocol0.a = expanded1.r / %s;\n", g.f(255))
	g.buf.Writef("  }\n")

	g.end()
}
