// Package bx holds little-endian byte-packing helpers shared by the page
// and relation-info layouts. The store pins little-endian encoding for all
// on-disk multi-byte fields, so only the little-endian helpers are kept.
package bx

import "encoding/binary"

var le = binary.LittleEndian

func U32(b []byte) uint32        { return le.Uint32(b) }
func PutU32(b []byte, v uint32)  { le.PutUint32(b, v) }
func U32At(b []byte, off int) uint32       { return U32(b[off:]) }
func PutU32At(b []byte, off int, v uint32) { PutU32(b[off:], v) }
