package relation

import (
	"fmt"
	"os"

	"github.com/diskrel/diskrel/internal/bx"
	"github.com/diskrel/diskrel/internal/choicevec"
)

// infoCounts is the number of machine-word counts at the head of the .info
// file, in this fixed order: n_attrs, d, sp, n_pages, n_tups, pagecap, curcap.
const infoCounts = 7
const infoCountsSize = infoCounts * 4
const infoSize = infoCountsSize + choicevec.MaxChVec*8

type info struct {
	NAttrs  int
	Depth   int
	Sp      int
	NPages  uint32
	NTups   int
	PageCap int
	CurCap  int
	CV      choicevec.Vector
}

func readInfo(path string) (*info, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("relation: read info: %w", err)
	}
	if len(buf) != infoSize {
		return nil, fmt.Errorf("relation: corrupt info file: got %d bytes, want %d", len(buf), infoSize)
	}
	in := &info{
		NAttrs:  int(bx.U32At(buf, 0)),
		Depth:   int(bx.U32At(buf, 4)),
		Sp:      int(bx.U32At(buf, 8)),
		NPages:  bx.U32At(buf, 12),
		NTups:   int(bx.U32At(buf, 16)),
		PageCap: int(bx.U32At(buf, 20)),
		CurCap:  int(bx.U32At(buf, 24)),
	}
	for i := 0; i < choicevec.MaxChVec; i++ {
		off := infoCountsSize + i*8
		in.CV[i].Att = int(bx.U32At(buf, off))
		in.CV[i].Bit = int(bx.U32At(buf, off+4))
	}
	return in, nil
}

func writeInfo(path string, in *info) error {
	buf := make([]byte, infoSize)
	bx.PutU32At(buf, 0, uint32(in.NAttrs))
	bx.PutU32At(buf, 4, uint32(in.Depth))
	bx.PutU32At(buf, 8, uint32(in.Sp))
	bx.PutU32At(buf, 12, in.NPages)
	bx.PutU32At(buf, 16, uint32(in.NTups))
	bx.PutU32At(buf, 20, uint32(in.PageCap))
	bx.PutU32At(buf, 24, uint32(in.CurCap))
	for i := 0; i < choicevec.MaxChVec; i++ {
		off := infoCountsSize + i*8
		bx.PutU32At(buf, off, uint32(in.CV[i].Att))
		bx.PutU32At(buf, off+4, uint32(in.CV[i].Bit))
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("relation: write info: %w", err)
	}
	return nil
}
