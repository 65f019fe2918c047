package texconv

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gxkit/texconv/glgen"
)

// DefaultScratchSize is the default size of the shared generation buffer.
// The longest generated program is well under 8 KiB; the default leaves
// generous headroom before the overflow canary matters.
const DefaultScratchSize = 16 * 1024

// canaryByte is written to the last byte of the scratch buffer before
// generation and checked afterwards. Generated text never contains it.
const canaryByte = 0x7C

// encoderUidVersion is stored in the excluded leading word of every
// EncoderUid. Bumping it marks a serialization layout change without
// splitting the variant cache (the word is not part of uid identity).
const encoderUidVersion = 1

// EncoderUid is the configuration record identifying one generated texture
// encoding shader. Serialized layout, little-endian 32-bit words:
//
//	word 0: Version (excluded from hashing and comparison)
//	word 1: API
//	word 2: Format
//	word 3: Flags
type EncoderUid struct {
	Version uint32
	API     uint32
	Format  uint32
	Flags   uint32
}

// Uid flag bits.
const (
	// UidFlagFlatRGB5A3 marks variants that pack RGB5A3 without the
	// per-pixel alpha precision branch.
	UidFlagFlatRGB5A3 uint32 = 1 << iota
)

// AppendBinary implements [glgen.UidRecord].
func (u EncoderUid) AppendBinary(b []byte) []byte {
	b = binary.LittleEndian.AppendUint32(b, u.Version)
	b = binary.LittleEndian.AppendUint32(b, u.API)
	b = binary.LittleEndian.AppendUint32(b, u.Format)
	b = binary.LittleEndian.AppendUint32(b, u.Flags)
	return b
}

// HashStart implements [glgen.UidRecord]. The version word is excluded so
// cached variants survive serialization version bumps.
func (EncoderUid) HashStart() int { return 4 }

// EncoderConfig parameterizes a new Encoder. The zero value is usable.
type EncoderConfig struct {
	// ScratchSize overrides the generation buffer size. Values below the
	// longest generated program trip the overflow canary; the zero value
	// selects DefaultScratchSize.
	ScratchSize int
	// DumpDir receives uid mismatch diagnostic files. Empty means the
	// process working directory.
	DumpDir string
	// Logger receives collision and diagnostic events. Nil selects the
	// package default logger (silent unless SetDefaultLogger was called).
	Logger *slog.Logger
	// FlatRGB5A3 selects the legacy RGB5A3 packing that quantizes every
	// pixel to 4443 instead of branching on alpha precision per pixel.
	FlatRGB5A3 bool
}

// Encoder generates texture encoding shader source. It owns a scratch text
// buffer reused across calls and a uid checker that verifies no two
// distinct configurations alias to the same uid.
//
// An Encoder is not safe for concurrent use: generation works in a single
// shared buffer. Use one Encoder per goroutine or serialize calls.
type Encoder struct {
	log        *slog.Logger
	buf        glgen.CodeBuffer
	scratch    []byte
	checker    *glgen.UidChecker[EncoderUid]
	flatRGB5A3 bool
}

// NewEncoder returns an Encoder ready to generate shader variants.
func NewEncoder(cfg EncoderConfig) *Encoder {
	size := cfg.ScratchSize
	if size <= 0 {
		size = DefaultScratchSize
	}
	log := cfg.Logger
	if log == nil {
		log = DefaultLogger()
	}
	return &Encoder{
		log:        log,
		scratch:    make([]byte, size),
		checker:    glgen.NewUidChecker[EncoderUid](cfg.DumpDir, log),
		flatRGB5A3: cfg.FlatRGB5A3,
	}
}

// SetLogger replaces the Encoder's logger and propagates it to the uid
// checker. A nil logger silences both.
func (e *Encoder) SetLogger(log *slog.Logger) {
	if log == nil {
		log = glgen.NopLogger()
	}
	e.log = log
	e.checker.SetLogger(log)
}

// Invalidate forgets all recorded shader variants. Call on graphics
// backend switches or device resets, when previously generated text no
// longer describes what the driver has compiled.
func (e *Encoder) Invalidate() { e.checker.Invalidate() }

// GenerateEncodingShader emits the shader program that encodes a source
// texture into format, targeting the api dialect. The returned bytes alias
// the Encoder's scratch buffer: they are valid until the next call and
// must be copied to be kept.
//
// An unrecognized format and a scratch buffer overflow are both hard
// errors: there is no degraded output that would not corrupt rendering.
func (e *Encoder) GenerateEncodingShader(format TextureFormat, api API) ([]byte, error) {
	e.scratch[len(e.scratch)-1] = canaryByte
	e.buf.Bind(e.scratch)
	g := generator{buf: &e.buf, api: api}
	if api == APID3D9 {
		g.suf = "f"
	}

	switch format {
	case FormatI4:
		g.writeI4()
	case FormatI8:
		g.writeI8()
	case FormatIA4:
		g.writeIA4()
	case FormatIA8:
		g.writeIA8()
	case FormatRGB565:
		g.writeRGB565()
	case FormatRGB5A3:
		if e.flatRGB5A3 {
			g.writeRGBA4443()
		} else {
			g.writeRGB5A3()
		}
	case FormatRGBA8:
		g.writeRGBA8()
	case FormatR4:
		g.writeC4("r")
	case FormatRA4:
		g.writeCC4("ar")
	case FormatRA8:
		g.writeCC8("ar")
	case FormatA8:
		g.writeC8("a")
	case FormatR8:
		g.writeC8("r")
	case FormatG8:
		g.writeC8("g")
	case FormatB8:
		g.writeC8("b")
	case FormatRG8:
		g.writeCC8("rg")
	case FormatGB8:
		g.writeCC8("gb")
	case FormatZ8:
		g.writeC8("b")
	case FormatZ16:
		g.writeZ16()
	case FormatZ24X8:
		g.writeZ24()
	case FormatZ4:
		g.writeC4("b")
	case FormatZ8M:
		g.writeZ8(256)
	case FormatZ8L:
		g.writeZ8(65536)
	case FormatZ16L:
		g.writeZ16L()
	default:
		return nil, fmt.Errorf("texconv: unknown texture copy format %#x", uint32(format))
	}

	if e.scratch[len(e.scratch)-1] != canaryByte {
		return nil, errors.New("texconv: scratch buffer too small for generated shader, canary overwritten")
	}

	code := e.buf.Buffer()
	uid := e.uidFor(format, api)
	e.checker.RecordAndCheck(code, &uid, "texture encoding", "tex_")
	e.log.Debug("generated encoding shader",
		"format", format.String(), "api", api.String(), "bytes", len(code))
	return code, nil
}

func (e *Encoder) uidFor(format TextureFormat, api API) glgen.Uid[EncoderUid] {
	var uid glgen.Uid[EncoderUid]
	uid.Clear()
	uid.Data.Version = encoderUidVersion
	uid.Data.API = uint32(api)
	uid.Data.Format = uint32(format)
	if e.flatRGB5A3 && format == FormatRGB5A3 {
		uid.Data.Flags |= UidFlagFlatRGB5A3
	}
	uid.Hash()
	return uid
}
