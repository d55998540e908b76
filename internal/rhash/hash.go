// Package rhash supplies the single deterministic byte-string hash used by
// every attribute when composing a tuple's choice-vector address.
package rhash

import "github.com/cespare/xxhash/v2"

// Attr hashes a single attribute value to a 32-bit word. It is the only
// hash function the engine uses; the same function is applied to every
// attribute regardless of position, so a choice vector can pick bits from
// any attribute interchangeably.
//
// xxhash.Sum64 is deterministic across runs and processes (no seeding from
// process state), which bucket addressing on disk depends on. The 64-bit
// digest is folded down to 32 bits by XOR-ing the halves rather than simply
// truncating, so high bits of the digest still influence low bits of the
// result.
func Attr(v []byte) uint32 {
	h := xxhash.Sum64(v)
	return uint32(h) ^ uint32(h>>32)
}

// AttrString is a convenience wrapper over Attr for string inputs.
func AttrString(v string) uint32 {
	return Attr([]byte(v))
}
