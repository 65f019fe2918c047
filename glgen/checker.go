package glgen

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// nopHandler discards all log records. Enabled returns false so callers
// skip formatting entirely when no logger has been configured.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// NopLogger returns a logger that silently discards all output.
func NopLogger() *slog.Logger { return slog.New(nopHandler{}) }

type checkerEntry struct {
	raw  []byte // full record serialization
	skip int    // leading bytes excluded from identity
	code string
}

// UidChecker memoizes generated shader text by uid and defends against the
// catastrophic failure mode of uid-keyed caching: two logically different
// shaders aliasing to one uid. Uids are tiny next to shader text, so the
// check costs little, while the alternative - silently rendering with the
// wrong cached shader - is close to undebuggable.
//
// A UidChecker is not safe for concurrent use; callers with concurrent
// generators must serialize access.
type UidChecker[T UidRecord] struct {
	log      *slog.Logger
	dumpDir  string
	entries  []checkerEntry // insertion order, scanned linearly
	failures int
}

// NewUidChecker returns a checker that writes mismatch diagnostics into
// dumpDir. A nil logger disables logging.
func NewUidChecker[T UidRecord](dumpDir string, log *slog.Logger) *UidChecker[T] {
	if log == nil {
		log = NopLogger()
	}
	return &UidChecker[T]{log: log, dumpDir: dumpDir}
}

// SetLogger replaces the checker's logger. A nil logger disables logging.
func (c *UidChecker[T]) SetLogger(log *slog.Logger) {
	if log == nil {
		log = NopLogger()
	}
	c.log = log
}

// Len returns the number of distinct uids recorded since the last
// Invalidate.
func (c *UidChecker[T]) Len() int { return len(c.entries) }

// Invalidate forgets all recorded uids and text. Call it when the cache's
// surroundings change, e.g. on a graphics backend switch or device reset.
// The mismatch dump counter is deliberately not reset so dump files from
// one session never overwrite another's.
func (c *UidChecker[T]) Invalidate() {
	c.entries = nil
}

// RecordAndCheck memoizes newCode under uid. On the first sighting of a uid
// the text is stored and nothing else happens. On a repeated uid the stored
// text is compared byte for byte: identical text is the expected case and a
// no-op, while differing text is a uid collision - either the uid's record
// omits a field that matters, or generator state leaked between calls. A
// collision is reported via the logger and a diagnostic dump, then the new
// text replaces the stored text; generation is never aborted for it.
//
// shaderKind names the generator family in log output; dumpPrefix prefixes
// diagnostic dump filenames.
func (c *UidChecker[T]) RecordAndCheck(newCode []byte, uid *Uid[T], shaderKind, dumpPrefix string) {
	raw := uid.AppendRaw(nil)
	skip := uid.Data.HashStart()
	for i := range c.entries {
		e := &c.entries[i]
		if !bytes.Equal(e.raw[e.skip:], raw[skip:]) {
			continue
		}
		if e.code == string(newCode) {
			return
		}
		c.failures++
		path := c.dumpMismatch(e.code, newCode, raw, dumpPrefix)
		c.log.Error("shader uid collision: equal uid produced different text",
			"kind", shaderKind, "dump", path, "hash", uid.Hash())
		e.code = string(newCode) // the newest text is authoritative
		return
	}
	c.entries = append(c.entries, checkerEntry{raw: raw, skip: skip, code: string(newCode)})
}

// dumpMismatch writes the old text, new text and a hex dump of the uid's
// raw 32-bit words to a numbered file. Best effort: a failed write is
// logged at warn level and otherwise ignored.
func (c *UidChecker[T]) dumpMismatch(oldCode string, newCode, raw []byte, dumpPrefix string) string {
	name := fmt.Sprintf("%ssuid_mismatch_%04d.txt", dumpPrefix, c.failures)
	path := filepath.Join(c.dumpDir, name)
	var b []byte
	b = append(b, "Old shader code:\n"...)
	b = append(b, oldCode...)
	b = append(b, "\n\nNew shader code:\n"...)
	b = append(b, newCode...)
	b = append(b, "\n\nShader uid:\n"...)
	b = appendUidWords(b, raw)
	if err := os.WriteFile(path, b, 0o666); err != nil {
		c.log.Warn("could not write uid mismatch dump", "path", path, "err", err)
	}
	return path
}

// appendUidWords renders raw as zero-padded 8-digit hex words, four per
// line, a trailing partial word padded with zero bytes. Words are read
// little-endian from the serialization and printed most significant digit
// first.
func appendUidWords(b, raw []byte) []byte {
	nwords := (len(raw) + 3) / 4
	for i := 0; i < nwords; i++ {
		var w [4]byte
		copy(w[:], raw[i*4:])
		v := uint32(w[0]) | uint32(w[1])<<8 | uint32(w[2])<<16 | uint32(w[3])<<24
		if i%4 == 0 {
			last := min(i+3, nwords-1)
			b = fmt.Appendf(b, "Words %2d - %2d: ", i, last)
		}
		b = fmt.Appendf(b, "%08x", v)
		if i%4 == 3 || i == nwords-1 {
			b = append(b, '\n')
		} else {
			b = append(b, ' ')
		}
	}
	return b
}
