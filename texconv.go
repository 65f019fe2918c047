// Package texconv generates pixel shader source code that converts a
// rendered source texture into GX hardware texture memory encodings, one
// shader variant per (format, target API) pair. Generated variants are
// deduplicated by a compact binary uid and checked for uid collisions so
// that identical configurations can never silently diverge into different
// shader text.
//
// The package only produces source text; compiling and binding the shader
// is the caller's job (see glverify for an optional on-GPU compile check).
package texconv

// TextureFormat enumerates the GX texture and depth-copy encodings the
// generator knows how to produce. The values match the hardware format
// numbering; copy-only formats carry the 0x20 flag and depth formats the
// 0x10 flag.
type TextureFormat uint32

const (
	FormatI4     TextureFormat = 0x00
	FormatI8     TextureFormat = 0x01
	FormatIA4    TextureFormat = 0x02
	FormatIA8    TextureFormat = 0x03
	FormatRGB565 TextureFormat = 0x04
	FormatRGB5A3 TextureFormat = 0x05
	FormatRGBA8  TextureFormat = 0x06

	FormatZ8    TextureFormat = 0x11
	FormatZ16   TextureFormat = 0x13
	FormatZ24X8 TextureFormat = 0x16

	FormatR4  TextureFormat = 0x20
	FormatRA4 TextureFormat = 0x22
	FormatRA8 TextureFormat = 0x23
	FormatA8  TextureFormat = 0x27
	FormatR8  TextureFormat = 0x28
	FormatG8  TextureFormat = 0x29
	FormatB8  TextureFormat = 0x2A
	FormatRG8 TextureFormat = 0x2B
	FormatGB8 TextureFormat = 0x2C

	FormatZ4   TextureFormat = 0x30
	FormatZ8M  TextureFormat = 0x39
	FormatZ8L  TextureFormat = 0x3A
	FormatZ16L TextureFormat = 0x3C
)

// BlockWidth returns the width in texels of the format's memory tile.
func (f TextureFormat) BlockWidth() int {
	switch f {
	case FormatIA8, FormatRGB565, FormatRGB5A3, FormatRGBA8, FormatZ16, FormatZ24X8,
		FormatRA8, FormatRG8, FormatGB8, FormatZ16L:
		return 4
	}
	return 8
}

// BlockHeight returns the height in texels of the format's memory tile.
func (f TextureFormat) BlockHeight() int {
	switch f {
	case FormatI4, FormatR4, FormatZ4:
		return 8
	}
	return 4
}

// EncodedSampleCount returns how many source samples one output pixel of
// the encoding shader consumes. The swizzler prologue scales destination
// x coordinates by this factor.
func (f TextureFormat) EncodedSampleCount() int {
	switch f {
	case FormatI4, FormatR4, FormatZ4:
		return 8
	case FormatI8, FormatIA4, FormatA8, FormatR8, FormatG8, FormatB8, FormatZ8, FormatZ8M, FormatZ8L,
		FormatRA4:
		return 4
	case FormatIA8, FormatRGB565, FormatRGB5A3, FormatRGBA8, FormatRA8, FormatRG8, FormatGB8,
		FormatZ16, FormatZ16L, FormatZ24X8:
		return 2
	}
	return 1
}

// String returns the format's conventional name.
func (f TextureFormat) String() string {
	switch f {
	case FormatI4:
		return "I4"
	case FormatI8:
		return "I8"
	case FormatIA4:
		return "IA4"
	case FormatIA8:
		return "IA8"
	case FormatRGB565:
		return "RGB565"
	case FormatRGB5A3:
		return "RGB5A3"
	case FormatRGBA8:
		return "RGBA8"
	case FormatZ8:
		return "Z8"
	case FormatZ16:
		return "Z16"
	case FormatZ24X8:
		return "Z24X8"
	case FormatR4:
		return "R4"
	case FormatRA4:
		return "RA4"
	case FormatRA8:
		return "RA8"
	case FormatA8:
		return "A8"
	case FormatR8:
		return "R8"
	case FormatG8:
		return "G8"
	case FormatB8:
		return "B8"
	case FormatRG8:
		return "RG8"
	case FormatGB8:
		return "GB8"
	case FormatZ4:
		return "Z4"
	case FormatZ8M:
		return "Z8M"
	case FormatZ8L:
		return "Z8L"
	case FormatZ16L:
		return "Z16L"
	}
	return "TextureFormat(unknown)"
}

// SupportedFormats returns every format the encoding shader generator can
// produce, in dispatch order.
func SupportedFormats() []TextureFormat {
	return []TextureFormat{
		FormatI4, FormatI8, FormatIA4, FormatIA8,
		FormatRGB565, FormatRGB5A3, FormatRGBA8,
		FormatR4, FormatRA4, FormatRA8, FormatA8,
		FormatR8, FormatG8, FormatB8, FormatRG8, FormatGB8,
		FormatZ8, FormatZ16, FormatZ24X8,
		FormatZ4, FormatZ8M, FormatZ8L, FormatZ16L,
	}
}

// API selects the shading language dialect of the generated source.
type API uint32

const (
	// APIOpenGL emits GLSL 330 with a #define prologue mapping the HLSL
	// vector types and intrinsics used by the format bodies onto their
	// GLSL equivalents. The zero value.
	APIOpenGL API = iota
	// APID3D9 emits shader model 2/3 style HLSL with register bindings
	// and input/output semantics.
	APID3D9
)

func (a API) String() string {
	switch a {
	case APIOpenGL:
		return "OpenGL"
	case APID3D9:
		return "D3D9"
	}
	return "API(unknown)"
}
