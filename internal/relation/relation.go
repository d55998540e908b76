// Package relation implements the linear-hashed bucket store (component E):
// a relation's three backing files, its global linear-hashing counters, and
// the insertion path including amortized bucket splitting.
package relation

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/diskrel/diskrel/internal/addr"
	"github.com/diskrel/diskrel/internal/choicevec"
	"github.com/diskrel/diskrel/internal/page"
	"github.com/diskrel/diskrel/internal/tuple"
)

// Relation owns a linear-hashed store's three backing files (.info, .data,
// .ovflow) plus its in-memory metadata. Metadata changes are buffered in
// memory and flushed to .info only on Close: a crash between inserts loses
// only the counters, never committed tuple data, since pages are written
// back on every insert.
type Relation struct {
	name     string
	info     *info
	data     *page.Pager
	ovflow   *page.Pager
	pageSize int
	writable bool
	closed   bool
}

func infoPath(name string) string   { return name + ".info" }
func dataPath(name string) string   { return name + ".data" }
func ovflowPath(name string) string { return name + ".ovflow" }

// Create makes a brand new relation: nAttrs attributes, nPages0 initial
// primary pages, starting depth d0, and a textual choice vector (parsed and
// filled per internal/choicevec.Parse). It fails with ErrRelationExists if
// a relation of this name is already on disk.
func Create(name string, nAttrs, nPages0, d0 int, cvText string, pageSize int) (*Relation, error) {
	if nAttrs < 1 {
		return nil, fmt.Errorf("relation: n_attrs must be >= 1, got %d", nAttrs)
	}
	if nPages0 < 1 {
		return nil, fmt.Errorf("relation: n_pages0 must be >= 1, got %d", nPages0)
	}
	if d0 < 0 {
		return nil, fmt.Errorf("relation: d0 must be >= 0, got %d", d0)
	}
	if d0+1 > choicevec.MaxChVec {
		return nil, fmt.Errorf("relation: d0=%d leaves no room under MAXCHVEC=%d", d0, choicevec.MaxChVec)
	}
	if _, err := os.Stat(infoPath(name)); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrRelationExists, name)
	}

	cv, err := choicevec.Parse(cvText, nAttrs)
	if err != nil {
		return nil, err
	}

	in := &info{
		NAttrs:  nAttrs,
		Depth:   d0,
		Sp:      0,
		NPages:  uint32(nPages0),
		NTups:   0,
		PageCap: 1024 / (10 * nAttrs),
		CurCap:  0,
		CV:      cv,
	}
	if in.PageCap < 1 {
		in.PageCap = 1
	}

	dataPager, err := page.OpenPager(dataPath(name), pageSize)
	if err != nil {
		return nil, err
	}
	for i := 0; i < nPages0; i++ {
		if _, err := dataPager.AddPage(); err != nil {
			_ = dataPager.Close()
			return nil, err
		}
	}
	ovflowPager, err := page.OpenPager(ovflowPath(name), pageSize)
	if err != nil {
		_ = dataPager.Close()
		return nil, err
	}

	if err := writeInfo(infoPath(name), in); err != nil {
		_ = dataPager.Close()
		_ = ovflowPager.Close()
		return nil, err
	}

	slog.Info("relation: created", "name", name, "n_attrs", nAttrs, "n_pages0", nPages0, "d0", d0)
	return &Relation{name: name, info: in, data: dataPager, ovflow: ovflowPager, pageSize: pageSize, writable: true}, nil
}

// Open loads an existing relation's metadata and backing files. writable
// controls whether Close flushes metadata back to .info; a reader never
// needs to persist counters it never changed.
func Open(name string, writable bool, pageSize int) (*Relation, error) {
	in, err := readInfo(infoPath(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRelationNotExist, name)
		}
		return nil, err
	}
	dataPager, err := page.OpenPager(dataPath(name), pageSize)
	if err != nil {
		return nil, err
	}
	ovflowPager, err := page.OpenPager(ovflowPath(name), pageSize)
	if err != nil {
		_ = dataPager.Close()
		return nil, err
	}
	return &Relation{name: name, info: in, data: dataPager, ovflow: ovflowPager, pageSize: pageSize, writable: writable}, nil
}

// Close releases the relation's file handles, flushing metadata first if
// the relation was opened writable. Idempotent: a second Close is a no-op,
// so callers can defer it unconditionally alongside early-return error paths.
func (r *Relation) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	var flushErr error
	if r.writable {
		flushErr = writeInfo(infoPath(r.name), r.info)
	}
	dataErr := r.data.Close()
	ovflowErr := r.ovflow.Close()

	if flushErr != nil {
		return flushErr
	}
	if dataErr != nil {
		return dataErr
	}
	return ovflowErr
}

// NAttrs, Depth, SplitPtr, NPages, NTups, and ChoiceVector expose the
// relation's current metadata to the scan and stats components.
func (r *Relation) NAttrs() int                 { return r.info.NAttrs }
func (r *Relation) Depth() int                  { return r.info.Depth }
func (r *Relation) SplitPtr() int               { return r.info.Sp }
func (r *Relation) NPages() uint32              { return r.info.NPages }
func (r *Relation) NTups() int                  { return r.info.NTups }
func (r *Relation) ChoiceVector() choicevec.Vector { return r.info.CV }

// DataPager and OvflowPager expose the raw pagers so the scan package can
// walk bucket chains without the relation package needing to know about
// query planning.
func (r *Relation) DataPager() *page.Pager   { return r.data }
func (r *Relation) OvflowPager() *page.Pager { return r.ovflow }

// AddToRelation inserts tuple text t, splitting a bucket first if the
// per-bucket insertion budget has been reached. It returns the id of the
// primary bucket the tuple's hash maps to (not necessarily the page it
// landed on, if the chain overflowed).
func (r *Relation) AddToRelation(t string) (uint32, error) {
	vals, err := tuple.Parse(t, r.info.NAttrs)
	if err != nil {
		return 0, err
	}

	if r.info.CurCap == r.info.PageCap {
		if err := r.Split(); err != nil {
			return 0, err
		}
		r.info.CurCap = 0
	}
	r.info.CurCap++

	h := addr.TupleHash(r.info.CV, vals)
	bucket := addr.BucketOf(h, r.info.Depth, r.info.Sp)

	if err := r.insertIntoChain(bucket, t, r.ovflow.AddPage); err != nil {
		return 0, err
	}
	r.info.NTups++
	return bucket, nil
}

// insertIntoChain tries the primary page, then each overflow page in chain
// order, then allocates via allocOverflow and links it from the tail.
// allocOverflow lets Split reuse its drained bucket's zeroed overflow pages
// before allocating fresh ones, instead of always appending a new page.
func (r *Relation) insertIntoChain(primaryID uint32, t string, allocOverflow func() (uint32, error)) error {
	primary, err := r.data.GetPage(primaryID)
	if err != nil {
		return err
	}
	if err := primary.AddToPage(t); err == nil {
		return r.data.PutPage(primaryID, primary)
	} else if !errors.Is(err, page.ErrInsufficientSpace) {
		return err
	}

	tail := primary
	tailID := primaryID
	tailInData := true

	curID := primary.Overflow()
	for curID != page.NoPage {
		cur, err := r.ovflow.GetPage(curID)
		if err != nil {
			return err
		}
		if err := cur.AddToPage(t); err == nil {
			return r.ovflow.PutPage(curID, cur)
		} else if !errors.Is(err, page.ErrInsufficientSpace) {
			return err
		}
		tail, tailID, tailInData = cur, curID, false
		curID = cur.Overflow()
	}

	newID, err := allocOverflow()
	if err != nil {
		return err
	}
	fresh, err := r.ovflow.GetPage(newID)
	if err != nil {
		return err
	}
	if err := fresh.AddToPage(t); err != nil {
		return fmt.Errorf("%w: %v", ErrNoSpace, err)
	}
	if err := r.ovflow.PutPage(newID, fresh); err != nil {
		return err
	}

	tail.SetOverflow(newID)
	if tailInData {
		return r.data.PutPage(tailID, tail)
	}
	return r.ovflow.PutPage(tailID, tail)
}
