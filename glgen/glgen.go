// Package glgen holds the generic machinery shared by runtime shader
// generators: an append-only code buffer bound to caller-provided storage,
// compact binary configuration records ("uids") with lazily computed content
// hashes, and a checker that flags uid collisions between shaders whose
// generated text differs.
//
// The types in this package know nothing about any particular shading
// language. Generators such as [github.com/gxkit/texconv] combine them with
// format-specific emission logic.
package glgen

import (
	"bytes"
	"fmt"
	"strconv"
)

// CodeBuffer is an append-only formatted writer over caller-provided storage.
// Bind must be called before the first Writef. The buffer performs no bounds
// checking of its own: writes past the end of the bound storage are silently
// truncated, which is what allows a canary byte at the end of storage to
// detect overflow after generation (see the texconv dispatcher).
//
// A CodeBuffer is not safe for concurrent use.
type CodeBuffer struct {
	store   []byte
	n       int
	scratch []byte
}

// Bind gives the buffer storage to write into and resets the write cursor.
// The storage is not zeroed; only bytes up to the cursor are meaningful.
func (c *CodeBuffer) Bind(storage []byte) {
	c.store = storage
	c.n = 0
}

// Writef appends the formatted string at the write cursor. Text that does
// not fit in the bound storage is dropped.
func (c *CodeBuffer) Writef(format string, args ...any) {
	if c.store == nil {
		panic("glgen: CodeBuffer.Writef called before Bind")
	}
	if len(args) == 0 {
		c.n += copy(c.store[c.n:], format)
		return
	}
	c.scratch = fmt.Appendf(c.scratch[:0], format, args...)
	c.n += copy(c.store[c.n:], c.scratch)
}

// Buffer returns the generated text written so far. The returned slice
// aliases the bound storage and is invalidated by the next Bind.
func (c *CodeBuffer) Buffer() []byte { return c.store[:c.n] }

// Len returns the write cursor offset from the start of the bound storage.
func (c *CodeBuffer) Len() int { return c.n }

const decimalDigits = 9

// AppendFloat appends v as a floating point literal with a '.' decimal
// separator and trailing zeros trimmed, leaving at least one fractional
// digit ("8.0", "31.875"). Output is independent of any ambient locale,
// which shading languages require of float literals.
func AppendFloat(b []byte, v float32) []byte {
	start := len(b)
	b = strconv.AppendFloat(b, float64(v), 'f', decimalDigits, 32)
	idx := bytes.IndexByte(b[start:], '.')
	end := len(b)
	for i := len(b) - 1; idx >= 0 && i > start+idx+1 && b[i] == '0'; i-- {
		end--
	}
	return b[:end]
}

// FormatFloat is AppendFloat returning a string, with an optional suffix
// appended ("f" for HLSL literals, empty for GLSL).
func FormatFloat(v float32, suffix string) string {
	b := AppendFloat(make([]byte, 0, 24), v)
	b = append(b, suffix...)
	return string(b)
}
