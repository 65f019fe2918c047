package glgen

import (
	"bytes"
	"hash/adler32"
)

// UidRecord is implemented by configuration record types identified by a
// [Uid]. Records are plain-old-data structs mutated field by field while a
// generator decides the shader configuration.
type UidRecord interface {
	// AppendBinary appends the record's exact byte serialization to b and
	// returns the result. The layout is defined by the record type, field
	// by field, so hashing and equality have a documented contract instead
	// of depending on in-memory struct layout. The serialized length must
	// be the same for every value of the type.
	AppendBinary(b []byte) []byte
	// HashStart returns the count of leading serialized bytes excluded
	// from hashing and comparison. A record may use the excluded region
	// for metadata (e.g. a serialization version) that should not split
	// the variant cache.
	HashStart() int
}

// Uid uniquely identifies one generated shader variant by its configuration
// record. It is far smaller than the shader text it stands for, making it a
// cheap cache key, and its content hash is memoized on first use.
//
// The zero value is ready to use. Mutate Data while deciding the
// configuration, then treat the Uid as frozen once Hash has been called.
type Uid[T UidRecord] struct {
	// Data is the configuration record this Uid identifies.
	Data T
	sum  uint32
	raw  []byte
}

// Clear zeroes the configuration record and invalidates any previously
// computed hash.
func (u *Uid[T]) Clear() {
	var zero T
	u.Data = zero
	u.sum = 0
}

// Hash returns the Adler-32 checksum of the record's meaningful byte range.
// It is computed on first call and cached: later calls return the cached
// value even if bytes outside the meaningful range change afterwards.
//
// A record whose meaningful range checksums to exactly 0 is recomputed on
// every call, since 0 doubles as the "not yet computed" sentinel. The
// recomputation is deterministic so this costs time, never correctness.
func (u *Uid[T]) Hash() uint32 {
	if u.sum == 0 {
		u.sum = adler32.Checksum(u.meaningful())
	}
	return u.sum
}

// Equal reports whether the meaningful byte ranges of both records are
// bit-identical.
func (u *Uid[T]) Equal(o *Uid[T]) bool {
	return bytes.Equal(u.meaningful(), o.meaningful())
}

// NotEqual is the negation of Equal.
func (u *Uid[T]) NotEqual(o *Uid[T]) bool { return !u.Equal(o) }

// Less orders Uids by lexicographic comparison of their meaningful bytes.
// The order keeps Uids in deterministic containers and carries no meaning
// beyond that.
func (u *Uid[T]) Less(o *Uid[T]) bool {
	return bytes.Compare(u.meaningful(), o.meaningful()) < 0
}

// DataSize returns the size in bytes of the full serialized record,
// including any leading bytes excluded from hashing.
func (u *Uid[T]) DataSize() int {
	u.raw = u.Data.AppendBinary(u.raw[:0])
	return len(u.raw)
}

// AppendRaw appends the record's full serialization to b, excluded leading
// bytes included. Used for diagnostics dumps.
func (u *Uid[T]) AppendRaw(b []byte) []byte { return u.Data.AppendBinary(b) }

func (u *Uid[T]) meaningful() []byte {
	u.raw = u.Data.AppendBinary(u.raw[:0])
	return u.raw[u.Data.HashStart():]
}
