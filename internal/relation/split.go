package relation

import (
	"fmt"
	"log/slog"

	"github.com/diskrel/diskrel/internal/addr"
	"github.com/diskrel/diskrel/internal/choicevec"
	"github.com/diskrel/diskrel/internal/page"
	"github.com/diskrel/diskrel/internal/tuple"
)

// Split performs one amortized linear-hashing split: it appends the new
// sibling bucket at 2^d+sp, drains every tuple
// currently reachable from bucket sp's chain, and reinserts each one into
// whichever of {sp, 2^d+sp} its hash now selects at depth d+1. It advances
// sp, rolling over into depth d+1 when sp reaches 2^d.
func (r *Relation) Split() error {
	d := r.info.Depth
	sp := r.info.Sp

	if d+1 >= choicevec.MaxChVec {
		return ErrChoiceVectorExhausted
	}

	wantNewID := uint32(1)<<uint(d) + uint32(sp)
	newBucketID, err := r.data.AddPage()
	if err != nil {
		return err
	}
	if newBucketID != wantNewID {
		return fmt.Errorf("relation: split: new bucket id %d, want %d", newBucketID, wantNewID)
	}

	srcPrimary, err := r.data.GetPage(uint32(sp))
	if err != nil {
		return err
	}

	drained := append([]string{}, srcPrimary.Tuples()...)
	var ovflowIDs []uint32
	curID := srcPrimary.Overflow()
	for curID != page.NoPage {
		op, err := r.ovflow.GetPage(curID)
		if err != nil {
			return err
		}
		drained = append(drained, op.Tuples()...)
		ovflowIDs = append(ovflowIDs, curID)
		curID = op.Overflow()
	}

	// Reset the drained primary page and every overflow page it owned to
	// empty, keeping them allocated in place for reuse by the rebuilt
	// chains rather than leaking them and always allocating fresh ones.
	srcPrimary.Reset()
	if err := r.data.PutPage(uint32(sp), srcPrimary); err != nil {
		return err
	}
	for _, id := range ovflowIDs {
		if err := r.ovflow.PutPage(id, page.New(r.ovflowPageSize())); err != nil {
			return err
		}
	}

	freeIdx := 0
	nextFree := func() (uint32, error) {
		if freeIdx < len(ovflowIDs) {
			id := ovflowIDs[freeIdx]
			freeIdx++
			return id, nil
		}
		return r.ovflow.AddPage()
	}

	for _, t := range drained {
		vals, err := tuple.Parse(t, r.info.NAttrs)
		if err != nil {
			return err
		}
		h := addr.TupleHash(r.info.CV, vals)
		// bit d of the hash selects sp vs. 2^d+sp: BucketOf at depth d+1
		// with sp=0 reduces exactly to "lowest d+1 bits", i.e. just that
		// bit decides between the two.
		dest := addr.BucketOf(h, d+1, 0)
		if err := r.insertIntoChain(dest, t, nextFree); err != nil {
			return err
		}
	}

	r.info.Sp++
	r.info.NPages++
	if r.info.Sp == 1<<uint(d) {
		r.info.Depth++
		r.info.Sp = 0
	}

	slog.Info("relation: split", "name", r.name, "old_sp", sp, "new_d", r.info.Depth, "new_sp", r.info.Sp, "drained", len(drained))
	return nil
}

func (r *Relation) ovflowPageSize() int {
	return r.pageSize
}
