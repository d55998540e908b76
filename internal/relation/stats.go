package relation

import (
	"fmt"
	"strings"

	"github.com/diskrel/diskrel/internal/page"
)

// BucketStats describes one primary bucket's chain: its primary page plus
// every overflow page linked from it.
type BucketStats struct {
	PrimaryPage uint32
	NTuples     int // total across the primary page and its whole overflow chain
	FreeBytes   int // free space remaining on the primary page alone
	ChainLength int // number of overflow pages linked from this bucket
}

// Stats is the relation-wide snapshot printed by `stats <rel>`.
type Stats struct {
	NAttrs  int
	Depth   int
	Sp      int
	NPages  uint32
	NTups   int
	PageCap int
	CurCap  int
	Buckets []BucketStats
}

// Stats walks every primary bucket and its overflow chain, computing the
// per-bucket counters printed by `stats <rel>`. The sum of every bucket's
// NTuples equals NTups.
func (r *Relation) Stats() (Stats, error) {
	st := Stats{
		NAttrs:  r.info.NAttrs,
		Depth:   r.info.Depth,
		Sp:      r.info.Sp,
		NPages:  r.info.NPages,
		NTups:   r.info.NTups,
		PageCap: r.info.PageCap,
		CurCap:  r.info.CurCap,
	}
	for id := uint32(0); id < r.info.NPages; id++ {
		p, err := r.data.GetPage(id)
		if err != nil {
			return st, err
		}
		bs := BucketStats{
			PrimaryPage: id,
			NTuples:     p.NumTuples(),
			FreeBytes:   p.FreeSpace(),
		}
		cur := p.Overflow()
		for cur != page.NoPage {
			op, err := r.ovflow.GetPage(cur)
			if err != nil {
				return st, err
			}
			bs.NTuples += op.NumTuples()
			bs.ChainLength++
			cur = op.Overflow()
		}
		st.Buckets = append(st.Buckets, bs)
	}
	return st, nil
}

// String renders the stats report in the original's layout: global counters
// followed by one line per primary bucket.
func (s Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "n_attrs=%d d=%d sp=%d n_pages=%d n_tups=%d pagecap=%d curcap=%d\n",
		s.NAttrs, s.Depth, s.Sp, s.NPages, s.NTups, s.PageCap, s.CurCap)
	for _, bucket := range s.Buckets {
		fmt.Fprintf(&b, "  bucket %d: n_tuples=%d free_bytes=%d ovflow_chain=%d\n",
			bucket.PrimaryPage, bucket.NTuples, bucket.FreeBytes, bucket.ChainLength)
	}
	return b.String()
}
