package elfobj

import (
	"testing"

	"github.com/halvardsen/ncc/internal/codegen"
)

func TestBuildHeaderFields(t *testing.T) {
	obj := Build(1, []byte{0x90}, nil)
	if len(obj) < 0x40 {
		t.Fatalf("object too small: %d bytes", len(obj))
	}
	if string(obj[0:4]) != "\x7fELF" {
		t.Fatalf("missing ELF magic: % x", obj[0:4])
	}
	if obj[4] != 2 {
		t.Fatalf("expected ELFCLASS64, got %d", obj[4])
	}
	shoff := leU64(obj[0x28:0x30])
	if shoff != 0x40 {
		t.Fatalf("e_shoff = %#x, want 0x40", shoff)
	}
	shnum := leU16(obj[0x3C:0x3E])
	if shnum != 7 {
		t.Fatalf("e_shnum = %d, want 7", shnum)
	}
	shstrndx := leU16(obj[0x3E:0x40])
	if shstrndx != secShstrtab {
		t.Fatalf("e_shstrndx = %d, want %d", shstrndx, secShstrtab)
	}
}

func TestBuildDataSectionHoldsFormatStringsAndSlots(t *testing.T) {
	identCount := uint32(2)
	obj := Build(identCount, nil, nil)

	dataSecHdr := obj[0x40+0x40*secData : 0x40+0x40*secData+0x40]
	off := leU64(dataSecHdr[24:32])
	size := leU64(dataSecHdr[32:40])

	wantSize := uint64(len(fmtBlob)) + (uint64(identCount)+1)*8
	if size != wantSize {
		t.Fatalf("data section size = %d, want %d", size, wantSize)
	}

	got := string(obj[off : off+uint64(len(fmtBlob))])
	if got != fmtBlob {
		t.Fatalf("data section prefix = %q, want %q", got, fmtBlob)
	}
}

func TestBuildRelocationsResolveThroughDataSymbol(t *testing.T) {
	sym := codegen.Symbols{IdentCount: 1}
	relocs := []codegen.Relocation{
		{Symbol: sym.Ident(0), Offset: 4, Kind: codegen.RelocAbs32},
		{Symbol: sym.FmtLd(), Offset: 20, Kind: codegen.RelocAbs64},
		{Symbol: sym.Scanf(), Offset: 40, Kind: codegen.RelocPLT32},
	}
	obj := Build(1, make([]byte, 50), relocs)

	relaHdr := obj[0x40+0x40*secRelaText : 0x40+0x40*secRelaText+0x40]
	off := leU64(relaHdr[24:32])

	e0Sym := leU64(obj[off+8 : off+16]) >> 32
	e0Add := int64(leU64(obj[off+16 : off+24]))
	if e0Sym != 1 || e0Add != 0x12 {
		t.Fatalf("variable reloc = sym %d addend %d, want sym 1 addend 0x12", e0Sym, e0Add)
	}

	e2Off := off + 48
	e2Sym := leU64(obj[e2Off+8 : e2Off+16]) >> 32
	e2Type := leU64(obj[e2Off+8 : e2Off+16]) & 0xffffffff
	e2Add := int64(leU64(obj[e2Off+16 : e2Off+24]))
	if e2Sym != 8+1 || e2Type != relPLT32 || e2Add != -4 {
		t.Fatalf("scanf reloc = sym %d type %d addend %d, want sym 9 type %d addend -4", e2Sym, e2Type, e2Add, relPLT32)
	}
}

func leU16(b []byte) uint16 { return uint16(b[0]) | uint16(b[1])<<8 }
func leU64(b []byte) uint64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}
