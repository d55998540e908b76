// Package scan implements the partial-match scanner (component H): given a
// query tuple with some attributes unknown ("?") or wildcarded ("%"), it
// plans the minimal set of candidate buckets and iterates matching tuples.
package scan

import (
	"github.com/diskrel/diskrel/internal/addr"
	"github.com/diskrel/diskrel/internal/bitutil"
	"github.com/diskrel/diskrel/internal/page"
	"github.com/diskrel/diskrel/internal/relation"
	"github.com/diskrel/diskrel/internal/rhash"
	"github.com/diskrel/diskrel/internal/tuple"
)

// Selection is one open partial-match scan over a relation.
type Selection struct {
	r    *relation.Relation
	q    []string
	bkts []uint32

	bucketIdx  int
	curPrimary uint32
	curPage    *page.Page
	tupleIdx   int
	done       bool
}

// isUnknown reports whether a query attribute leaves its position
// undetermined for bucket planning: "?" or anything containing "%".
func isUnknown(qi string) bool {
	if qi == "?" {
		return true
	}
	for i := 0; i < len(qi); i++ {
		if qi[i] == '%' {
			return true
		}
	}
	return false
}

// StartSelection builds the scan plan for queryTuple against r. BucketOf is
// evaluated fresh per enumerated candidate (not hoisted from a single qd
// derived from known bits alone, which would ignore the unknown bits), and
// an out-of-range candidate is skipped rather than terminating the
// enumeration, so a later candidate that falls back in range is still
// visited.
func StartSelection(r *relation.Relation, queryTuple string) (*Selection, error) {
	qvals, err := tuple.Parse(queryTuple, r.NAttrs())
	if err != nil {
		return nil, err
	}

	cv := r.ChoiceVector()
	d := r.Depth()
	sp := r.SplitPtr()
	width := d + 1

	var known uint32
	var unknownPositions []int
	for i := 0; i < width; i++ {
		item := cv[i]
		qi := qvals[item.Att]
		if isUnknown(qi) {
			unknownPositions = append(unknownPositions, i)
			continue
		}
		h := rhash.AttrString(qi)
		if bitutil.IsSet(h, item.Bit) {
			known = bitutil.Set(known, i)
		}
	}

	nStars := len(unknownPositions)
	seen := make(map[uint32]bool)
	var buckets []uint32
	total := uint32(1) << uint(nStars)
	for u := uint32(0); u < total; u++ {
		assign := known
		for bitPos, cvPos := range unknownPositions {
			if bitutil.IsSet(u, bitPos) {
				assign = bitutil.Set(assign, cvPos)
			}
		}
		bucket := addr.BucketOf(assign, d, sp)
		if bucket >= r.NPages() {
			// Skip-and-continue rather than terminating the enumeration,
			// so later candidates that do fall back in range are still
			// visited.
			continue
		}
		if seen[bucket] {
			// d = 0 (and other cases where BucketOf's own d-vs-d+1 branch
			// collapses candidates) can make two enumerated assignments
			// land on the same physical bucket; visit it once.
			continue
		}
		seen[bucket] = true
		buckets = append(buckets, bucket)
	}

	s := &Selection{r: r, q: qvals, bkts: buckets}
	if len(buckets) == 0 {
		s.done = true
		return s, nil
	}
	if err := s.loadBucket(0); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Selection) loadBucket(i int) error {
	id := s.bkts[i]
	p, err := s.r.DataPager().GetPage(id)
	if err != nil {
		return err
	}
	s.bucketIdx = i
	s.curPrimary = id
	s.curPage = p
	s.tupleIdx = 0
	return nil
}

// Next returns the next tuple matching the query, the primary bucket id it
// was found under (useful for -v diagnostics), and ok=false once the scan
// is exhausted. The returned string is copied out of the page buffer: it
// does not alias any scanner-owned memory.
func (s *Selection) Next() (string, uint32, bool, error) {
	for !s.done {
		tuples := s.curPage.Tuples()
		for s.tupleIdx < len(tuples) {
			cand := tuples[s.tupleIdx]
			s.tupleIdx++
			vals, err := tuple.Parse(cand, len(s.q))
			if err != nil {
				return "", 0, false, err
			}
			ok, err := tuple.Match(s.q, vals)
			if err != nil {
				return "", 0, false, err
			}
			if ok {
				return cand, s.curPrimary, true, nil
			}
		}

		if next := s.curPage.Overflow(); next != page.NoPage {
			p, err := s.r.OvflowPager().GetPage(next)
			if err != nil {
				return "", 0, false, err
			}
			s.curPage = p
			s.tupleIdx = 0
			continue
		}

		if s.bucketIdx+1 >= len(s.bkts) {
			s.done = true
			break
		}
		if err := s.loadBucket(s.bucketIdx + 1); err != nil {
			return "", 0, false, err
		}
	}
	return "", 0, false, nil
}

// Close releases the scanner. Idempotent; there are no owned OS resources
// beyond the relation itself (each GetPage is a fresh, uncached read), but
// Close still guarantees a closed scanner yields nothing further.
func (s *Selection) Close() error {
	s.done = true
	s.curPage = nil
	return nil
}
