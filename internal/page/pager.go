package page

import (
	"fmt"
	"io"
	"os"
)

// Pager owns one backing file (a relation's .data or .ovflow file) and
// performs fixed-offset page I/O against it: page id i always lives at byte
// offset i*PageSize, pages are never relocated, and there is no cache —
// every GetPage call rereads the file and every PutPage call overwrites it.
type Pager struct {
	file      *os.File
	pageSize  int
	pageCount int
}

// OpenPager opens (creating if necessary) the file at path as a page file
// with the given page size.
func OpenPager(path string, pageSize int) (*Pager, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("page: open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("page: stat %s: %w", path, err)
	}
	return &Pager{
		file:      f,
		pageSize:  pageSize,
		pageCount: int(info.Size()) / pageSize,
	}, nil
}

// PageCount returns the number of pages currently allocated in this file.
func (p *Pager) PageCount() int {
	return p.pageCount
}

// GetPage reads the page at id fresh from disk. Reading past the current
// end of file is a structural error: every page index handed to GetPage is
// expected to have been allocated already via AddPage.
func (p *Pager) GetPage(id uint32) (*Page, error) {
	if int(id) >= p.pageCount {
		return nil, fmt.Errorf("page: page %d not allocated (have %d)", id, p.pageCount)
	}
	buf := make([]byte, p.pageSize)
	off := int64(id) * int64(p.pageSize)
	if _, err := p.file.ReadAt(buf, off); err != nil && err != io.EOF {
		return nil, fmt.Errorf("page: read page %d: %w", id, err)
	}
	return &Page{Buf: buf, Size: p.pageSize}, nil
}

// PutPage overwrites the page at id with pg's contents.
func (p *Pager) PutPage(id uint32, pg *Page) error {
	if len(pg.Buf) != p.pageSize {
		return fmt.Errorf("page: put page %d: size mismatch (have %d want %d)", id, len(pg.Buf), p.pageSize)
	}
	off := int64(id) * int64(p.pageSize)
	if _, err := p.file.WriteAt(pg.Buf, off); err != nil {
		return fmt.Errorf("page: write page %d: %w", id, err)
	}
	if int(id) >= p.pageCount {
		p.pageCount = int(id) + 1
	}
	return nil
}

// AddPage allocates a fresh empty page at the end of the file and returns
// its id.
func (p *Pager) AddPage() (uint32, error) {
	id := uint32(p.pageCount)
	if err := p.PutPage(id, New(p.pageSize)); err != nil {
		return 0, err
	}
	return id, nil
}

// Close releases the underlying file handle. Idempotent.
func (p *Pager) Close() error {
	if p == nil || p.file == nil {
		return nil
	}
	err := p.file.Close()
	p.file = nil
	return err
}
