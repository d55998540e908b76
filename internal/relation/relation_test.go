package relation

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/diskrel/diskrel/internal/addr"
	"github.com/diskrel/diskrel/internal/page"
	"github.com/diskrel/diskrel/internal/tuple"
)

const testCV = "0:0,1:0,2:0,0:1,1:1,2:1,0:2,1:2"

func newTestRelation(t *testing.T, nAttrs, nPages0, d0 int) *Relation {
	t.Helper()
	name := filepath.Join(t.TempDir(), "R")
	r, err := Create(name, nAttrs, nPages0, d0, testCV, 256)
	require.NoError(t, err)
	return r
}

func TestCreateRejectsExisting(t *testing.T) {
	name := filepath.Join(t.TempDir(), "R")
	r, err := Create(name, 3, 1, 0, testCV, 256)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	_, err = Create(name, 3, 1, 0, testCV, 256)
	require.ErrorIs(t, err, ErrRelationExists)
}

func TestOpenMissingRelation(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"), false, 256)
	require.ErrorIs(t, err, ErrRelationNotExist)
}

func TestAddToRelationLandsInComputedBucket(t *testing.T) {
	r := newTestRelation(t, 3, 1, 0)
	defer func() { _ = r.Close() }()

	bucket, err := r.AddToRelation("1,a,x")
	require.NoError(t, err)

	vals, err := tuple.Parse("1,a,x", 3)
	require.NoError(t, err)
	h := addr.TupleHash(r.ChoiceVector(), vals)
	want := addr.BucketOf(h, r.Depth(), r.SplitPtr())
	require.Equal(t, want, bucket)
}

func TestMetadataSurvivesCloseAndReopen(t *testing.T) {
	name := filepath.Join(t.TempDir(), "R")
	r, err := Create(name, 3, 1, 0, testCV, 256)
	require.NoError(t, err)
	_, err = r.AddToRelation("1,a,x")
	require.NoError(t, err)
	_, err = r.AddToRelation("2,b,y")
	require.NoError(t, err)
	require.NoError(t, r.Close())

	r2, err := Open(name, false, 256)
	require.NoError(t, err)
	defer func() { _ = r2.Close() }()
	require.Equal(t, 2, r2.NTups())
	require.Equal(t, 3, r2.NAttrs())
}

func TestSplitAdvancesDepthAndSplitPointer(t *testing.T) {
	r := newTestRelation(t, 3, 1, 0)
	defer func() { _ = r.Close() }()

	n := r.info.PageCap + 1 // one past the budget forces exactly one split
	for i := 0; i < n; i++ {
		_, err := r.AddToRelation(fmt.Sprintf("%d,a,x", i))
		require.NoError(t, err)
	}

	require.Equal(t, 1, r.Depth())
	require.Equal(t, 0, r.SplitPtr())
	require.Equal(t, uint32(2), r.NPages())
	require.Equal(t, n, r.NTups())

	st, err := r.Stats()
	require.NoError(t, err)
	sum := 0
	for _, b := range st.Buckets {
		sum += b.NTuples
	}
	require.Equal(t, n, sum)
}

func TestSplitPreservesEveryTuple(t *testing.T) {
	r := newTestRelation(t, 3, 1, 0)
	defer func() { _ = r.Close() }()

	inserted := make(map[string]bool)
	n := r.info.PageCap + 5
	for i := 0; i < n; i++ {
		v := fmt.Sprintf("%d,a,x", i)
		_, err := r.AddToRelation(v)
		require.NoError(t, err)
		inserted[v] = true
	}

	seen := map[string]int{}
	for id := uint32(0); id < r.NPages(); id++ {
		p, err := r.data.GetPage(id)
		require.NoError(t, err)
		for _, v := range p.Tuples() {
			seen[v]++
		}
		cur := p.Overflow()
		for cur != page.NoPage {
			op, err := r.ovflow.GetPage(cur)
			require.NoError(t, err)
			for _, v := range op.Tuples() {
				seen[v]++
			}
			cur = op.Overflow()
		}
	}
	require.Len(t, seen, len(inserted))
	for v := range inserted {
		require.Equal(t, 1, seen[v], "tuple %q should appear exactly once after split", v)
	}
}

func TestSplitRespectsBucketInvariant(t *testing.T) {
	r := newTestRelation(t, 3, 1, 0)
	defer func() { _ = r.Close() }()

	n := r.info.PageCap + 1
	for i := 0; i < n; i++ {
		_, err := r.AddToRelation(fmt.Sprintf("%d,a,x", i))
		require.NoError(t, err)
	}

	for id := uint32(0); id < r.NPages(); id++ {
		p, err := r.data.GetPage(id)
		require.NoError(t, err)
		for _, v := range p.Tuples() {
			vals, err := tuple.Parse(v, 3)
			require.NoError(t, err)
			h := addr.TupleHash(r.ChoiceVector(), vals)
			want := addr.BucketOf(h, r.Depth(), r.SplitPtr())
			require.Equal(t, want, id, "tuple %q found in bucket %d, want %d", v, id, want)
		}
	}
}

func TestOverflowChainGrowsWhenBucketFull(t *testing.T) {
	// n_attrs=1 with a tiny page forces overflow quickly regardless of hash
	// distribution: depth 0 always maps every tuple to bucket 0.
	name := filepath.Join(t.TempDir(), "R")
	r, err := Create(name, 1, 1, 0, "0:0,0:1,0:2,0:3,0:4,0:5,0:6,0:7", 14)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	for i := 0; i < 6; i++ {
		_, err := r.AddToRelation(fmt.Sprintf("%d", i))
		require.NoError(t, err)
	}

	st, err := r.Stats()
	require.NoError(t, err)
	require.Greater(t, st.Buckets[0].ChainLength, 0)
	require.Equal(t, 6, st.NTups)
}
