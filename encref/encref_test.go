package encref

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/gxkit/texconv"
)

func TestQuantize(t *testing.T) {
	for _, tc := range []struct {
		v     float32
		depth uint8
		want  int
	}{
		{0, 8, 0},
		{1, 8, 255},
		{0.5, 8, 127},
		{1, 5, 31},
		{1, 6, 63},
		{1, 4, 15},
		{1, 3, 7},
		{0.0625, 4, 0},
	} {
		if got := Quantize(tc.v, tc.depth); got != tc.want {
			t.Errorf("Quantize(%v, %d) = %d, want %d", tc.v, tc.depth, got, tc.want)
		}
	}
}

func TestIntensity(t *testing.T) {
	if got := Intensity(0, 0, 0); got != 0.0625 {
		t.Errorf("Intensity(black) = %v, want the 0.0625 bias", got)
	}
	if lo, hi := Intensity(0, 0, 1), Intensity(0, 1, 0); lo >= hi {
		t.Errorf("green must outweigh blue: %v >= %v", lo, hi)
	}
}

func TestEncodedSize(t *testing.T) {
	for _, tc := range []struct {
		format texconv.TextureFormat
		w, h   int
		want   int
	}{
		{texconv.FormatI4, 8, 8, 32},
		{texconv.FormatI4, 9, 9, 128}, // rounds up to 2x2 tiles
		{texconv.FormatI8, 8, 4, 32},
		{texconv.FormatIA4, 8, 4, 32},
		{texconv.FormatIA8, 4, 4, 32},
		{texconv.FormatRGB565, 4, 4, 32},
		{texconv.FormatRGB5A3, 4, 4, 32},
		{texconv.FormatRGBA8, 4, 4, 64},
	} {
		got, err := EncodedSize(tc.format, tc.w, tc.h)
		if err != nil {
			t.Fatalf("%s: %v", tc.format, err)
		}
		if got != tc.want {
			t.Errorf("%s %dx%d: size %d, want %d", tc.format, tc.w, tc.h, got, tc.want)
		}
	}
	if _, err := EncodedSize(texconv.FormatZ16, 4, 4); err == nil {
		t.Error("expected error for format without a CPU encoder")
	}
}

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestEncodeI8Uniform(t *testing.T) {
	img := solid(8, 4, color.RGBA{R: 80, G: 120, B: 40, A: 255})
	out, err := Encode(texconv.FormatI8, img, img.Bounds())
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 32 {
		t.Fatalf("len=%d, want 32", len(out))
	}
	for i, b := range out {
		if b != out[0] {
			t.Fatalf("uniform source produced non-uniform intensity at %d: %d != %d", i, b, out[0])
		}
	}
	if out[0] == 0 {
		t.Error("mid-gray source encoded to zero intensity")
	}
}

func TestEncodeIA8OpaqueBlack(t *testing.T) {
	img := solid(4, 4, color.RGBA{A: 255})
	out, err := Encode(texconv.FormatIA8, img, img.Bounds())
	if err != nil {
		t.Fatal(err)
	}
	// Alpha byte first, then intensity; black intensity is the bias alone.
	if out[0] != 255 || out[1] != 15 {
		t.Errorf("texel bytes = %d,%d, want 255,15", out[0], out[1])
	}
}

func TestEncodeIA4OpaqueBlack(t *testing.T) {
	img := solid(8, 4, color.RGBA{A: 255})
	out, err := Encode(texconv.FormatIA4, img, img.Bounds())
	if err != nil {
		t.Fatal(err)
	}
	// Alpha in the high nibble, intensity low. The bias quantizes to 0 at
	// 4 bits.
	if out[0] != 0xF0 {
		t.Errorf("texel byte = %#x, want 0xF0", out[0])
	}
}

func TestEncodeRGB565PureChannels(t *testing.T) {
	for _, tc := range []struct {
		c    color.RGBA
		want [2]byte
	}{
		{color.RGBA{R: 255, A: 255}, [2]byte{0xF8, 0x00}},
		{color.RGBA{G: 255, A: 255}, [2]byte{0x07, 0xE0}},
		{color.RGBA{B: 255, A: 255}, [2]byte{0x00, 0x1F}},
	} {
		img := solid(4, 4, tc.c)
		out, err := Encode(texconv.FormatRGB565, img, img.Bounds())
		if err != nil {
			t.Fatal(err)
		}
		if out[0] != tc.want[0] || out[1] != tc.want[1] {
			t.Errorf("%v: texel bytes = %#x,%#x, want %#x,%#x",
				tc.c, out[0], out[1], tc.want[0], tc.want[1])
		}
	}
}

func TestEncodeRGB565TileOrder(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			if x < 4 {
				img.SetRGBA(x, y, color.RGBA{R: 255, A: 255})
			} else {
				img.SetRGBA(x, y, color.RGBA{B: 255, A: 255})
			}
		}
	}
	out, err := Encode(texconv.FormatRGB565, img, img.Bounds())
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 64 {
		t.Fatalf("len=%d, want 64", len(out))
	}
	red := bytes.Repeat([]byte{0xF8, 0x00}, 16)
	blue := bytes.Repeat([]byte{0x00, 0x1F}, 16)
	if !bytes.Equal(out[:32], red) {
		t.Error("first tile is not the left (red) 4x4 block")
	}
	if !bytes.Equal(out[32:], blue) {
		t.Error("second tile is not the right (blue) 4x4 block")
	}
}

func TestEncodeRGB5A3AlphaBranch(t *testing.T) {
	opaque := solid(4, 4, color.RGBA{R: 255, A: 255})
	out, err := Encode(texconv.FormatRGB5A3, opaque, opaque.Bounds())
	if err != nil {
		t.Fatal(err)
	}
	// Opaque pixels take the 555 path with the top bit set.
	if out[0] != 0xFC || out[1] != 0x00 {
		t.Errorf("opaque texel = %#x%02x, want 0xfc00", out[0], out[1])
	}

	clear := solid(4, 4, color.RGBA{R: 255})
	out, err = Encode(texconv.FormatRGB5A3, clear, clear.Bounds())
	if err != nil {
		t.Fatal(err)
	}
	// Transparent pixels take the 4443 path, top bit clear.
	if out[0] != 0x0F || out[1] != 0x00 {
		t.Errorf("transparent texel = %#x%02x, want 0x0f00", out[0], out[1])
	}
}

func TestEncodeRGBA8Halves(t *testing.T) {
	img := solid(4, 4, color.RGBA{R: 255, G: 255, A: 255})
	out, err := Encode(texconv.FormatRGBA8, img, img.Bounds())
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 64 {
		t.Fatalf("len=%d, want 64", len(out))
	}
	// First 32 bytes hold AR pairs, second 32 GB pairs.
	for i := 0; i < 32; i += 2 {
		if out[i] != 255 || out[i+1] != 255 {
			t.Fatalf("AR half wrong at %d: %d,%d", i, out[i], out[i+1])
		}
		if out[32+i] != 255 || out[32+i+1] != 0 {
			t.Fatalf("GB half wrong at %d: %d,%d", i, out[32+i], out[32+i+1])
		}
	}
}

func TestEncodeEdgePadding(t *testing.T) {
	// A 5x5 region in an 8x8-tiled format pads to one full tile by
	// repeating edge texels; every padded texel must still be valid data.
	img := solid(5, 5, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	out, err := Encode(texconv.FormatI4, img, img.Bounds())
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 32 {
		t.Fatalf("len=%d, want one full 8x8 tile (32)", len(out))
	}
	for i, b := range out {
		if b != out[0] {
			t.Fatalf("padding diverged from edge texel at %d", i)
		}
	}
}

func TestEncodeEmptyRegion(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if _, err := Encode(texconv.FormatI8, img, image.Rect(0, 0, 0, 0)); err == nil {
		t.Error("expected error for empty region")
	}
}

func TestParamsRegion(t *testing.T) {
	b := ParamsRegion(image.Rect(32, 64, 160, 192))
	if b.Min.X != 32 || b.Min.Y != 64 || b.Max.X != 160 || b.Max.Y != 192 {
		t.Errorf("box = %+v", b)
	}
	sz := b.Size()
	if sz.X != 128 || sz.Y != 128 {
		t.Errorf("size = %+v, want 128x128", sz)
	}
}
