// Package page implements the fixed-size, NUL-terminated-tuple-run page
// layout (component C) and the fixed-offset pager that reads and writes
// pages to a relation's backing files.
package page

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/diskrel/diskrel/internal/bx"
)

// DefaultPageSize is the same value internal/config uses as its default page
// size. 4096 matches a typical filesystem block size.
const DefaultPageSize = 4096

// HeaderSize is the fixed byte size of a page header: n_tuples, free_offset,
// overflow_id, each a little-endian uint32.
const HeaderSize = 12

// NoPage is the overflow_id sentinel meaning "no next page" (all-ones).
const NoPage uint32 = 0xFFFFFFFF

// ErrInsufficientSpace is returned by AddToPage when a tuple (plus its NUL
// terminator) does not fit in the page's remaining free space. Callers
// handle it by trying the next page in an overflow chain, or allocating one.
var ErrInsufficientSpace = errors.New("page: insufficient space")

// ErrTupleTooLarge is a structural error: a tuple (plus terminator) cannot
// possibly fit in any page of this size, so retrying with a fresh page can
// never succeed.
var ErrTupleTooLarge = errors.New("page: tuple exceeds page capacity")

// Page is a self-contained, fixed-size byte buffer: a 12-byte header
// followed by a packed run of NUL-terminated tuple strings starting at
// offset 0 of the data area.
type Page struct {
	Buf  []byte
	Size int
}

// New returns an empty page of the given size with overflow_id = NoPage.
func New(size int) *Page {
	p := &Page{Buf: make([]byte, size), Size: size}
	p.SetOverflow(NoPage)
	return p
}

func (p *Page) NumTuples() int {
	return int(bx.U32At(p.Buf, 0))
}

func (p *Page) setNumTuples(n int) {
	bx.PutU32At(p.Buf, 0, uint32(n))
}

func (p *Page) FreeOffset() int {
	return int(bx.U32At(p.Buf, 4))
}

func (p *Page) setFreeOffset(off int) {
	bx.PutU32At(p.Buf, 4, uint32(off))
}

func (p *Page) Overflow() uint32 {
	return bx.U32At(p.Buf, 8)
}

func (p *Page) SetOverflow(id uint32) {
	bx.PutU32At(p.Buf, 8, id)
}

// FreeSpace returns the number of unused bytes in the data area.
func (p *Page) FreeSpace() int {
	return p.Size - HeaderSize - p.FreeOffset()
}

// AddToPage appends t plus a NUL terminator to the page if it fits,
// incrementing n_tuples and free_offset. It returns ErrInsufficientSpace if
// the page (as currently filled) has no room, and ErrTupleTooLarge if the
// tuple could never fit in any page of this size.
func (p *Page) AddToPage(t string) error {
	need := len(t) + 1
	if need > p.Size-HeaderSize {
		return ErrTupleTooLarge
	}
	if need > p.FreeSpace() {
		return ErrInsufficientSpace
	}
	off := HeaderSize + p.FreeOffset()
	copy(p.Buf[off:], t)
	p.Buf[off+len(t)] = 0
	p.setFreeOffset(p.FreeOffset() + need)
	p.setNumTuples(p.NumTuples() + 1)
	return nil
}

// Tuples returns the tuple strings packed in the page, in on-page order.
func (p *Page) Tuples() []string {
	n := p.NumTuples()
	out := make([]string, 0, n)
	off := HeaderSize
	end := HeaderSize + p.FreeOffset()
	for i := 0; i < n; i++ {
		if off >= end {
			break
		}
		nul := bytes.IndexByte(p.Buf[off:end], 0)
		if nul < 0 {
			break
		}
		out = append(out, string(p.Buf[off:off+nul]))
		off += nul + 1
	}
	return out
}

// Reset reinitializes the page in place as empty, preserving its buffer
// (used when a split reuses an old overflow page rather than allocating a
// fresh one).
func (p *Page) Reset() {
	for i := range p.Buf {
		p.Buf[i] = 0
	}
	p.SetOverflow(NoPage)
}

func (p *Page) String() string {
	return fmt.Sprintf("page{n=%d free_off=%d ovflow=%d}", p.NumTuples(), p.FreeOffset(), p.Overflow())
}
