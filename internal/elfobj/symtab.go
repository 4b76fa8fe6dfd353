package elfobj

// symEntry is an Elf64_Sym.
type symEntry struct {
	Name        uint32
	Info, Other uint8
	Shndx       uint16
	Value, Size uint64
}

func (s symEntry) bytes() []byte {
	b := make([]byte, 24)
	putU32(b[0:4], s.Name)
	b[4] = s.Info
	b[5] = s.Other
	putU16(b[6:8], s.Shndx)
	putU64(b[8:16], s.Value)
	putU64(b[16:24], s.Size)
	return b
}

func nullSym() symEntry { return symEntry{} }

// dataSym and textSym are the STT_SECTION symbols naming .data/.text,
// used as relocation targets for every variable/scratch/format-string
// reference (by way of symtab index 1).
func dataSym() symEntry { return symEntry{Info: 3, Shndx: secData} }
func textSym() symEntry { return symEntry{Info: 3, Shndx: secText} }

// identSym is one program-variable or scratch-slot symbol, named by
// its "iN" string-table offset and valued at its byte offset into
// .data.
func identSym(nameOffset uint32, value uint64) symEntry {
	return symEntry{Name: nameOffset, Shndx: secData, Value: value}
}

func mainSym() symEntry   { return symEntry{Name: 0x16, Info: 0x10, Shndx: secText} }
func scanfSym() symEntry  { return symEntry{Name: 0x1B, Info: 0x10, Shndx: 0} }
func printfSym() symEntry { return symEntry{Name: 0x0F, Info: 0x10, Shndx: 0} }
