// Package addr computes bucket addresses: a tuple's full choice-vector
// hash, and the bucket a given hash currently belongs to under a relation's
// (depth, split-pointer) state (component G).
package addr

import (
	"github.com/diskrel/diskrel/internal/bitutil"
	"github.com/diskrel/diskrel/internal/choicevec"
	"github.com/diskrel/diskrel/internal/rhash"
)

// TupleHash hashes each attribute of vals with rhash.Attr, then assembles a
// MaxChVec-wide result by setting bit i iff bit cv[i].Bit of
// hash(vals[cv[i].Att]) is set.
func TupleHash(cv choicevec.Vector, vals []string) uint32 {
	attrHash := make([]uint32, len(vals))
	for i, v := range vals {
		attrHash[i] = rhash.AttrString(v)
	}

	var result uint32
	for i := 0; i < choicevec.MaxChVec; i++ {
		item := cv[i]
		if bitutil.IsSet(attrHash[item.Att], item.Bit) {
			result = bitutil.Set(result, i)
		}
	}
	return result
}

// BucketOf maps a hash to the bucket that currently owns it, given the
// relation's depth d and split pointer sp.
func BucketOf(h uint32, d, sp int) uint32 {
	if d == 0 {
		return 0
	}
	p := bitutil.Low(h, d)
	if int(p) < sp {
		return bitutil.Low(h, d+1)
	}
	return p
}
