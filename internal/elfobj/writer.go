package elfobj

import (
	"fmt"

	"github.com/halvardsen/ncc/internal/codegen"
)

// fmtBlob is the fixed ".data" prefix holding the four libc format
// strings the runtime I/O sequences reference, at the byte offsets
// baked into internal/codegen's symbol layout: "%ld\0" at 0, "%ld\n\0"
// at 4, "%lf\0" at 9, "%lf\n\0" at 13.
const fmtBlob = "%ld\x00%ld\n\x00%lf\x00%lf\n\x00"

// strtabPrefix names the four format-string symbols plus the three
// runtime symbols; its offsets (1, 4, 7, 11, 15, 22, 27) are the Name
// fields wired into the symtab entries below.
const strtabPrefix = "\x00if\x00of\x00iff\x00off\x00printf\x00main\x00scanf\x00"

func alignUp16(n int) int {
	if n%16 == 0 {
		return n
	}
	return n + (16 - n%16)
}

func pad16(b []byte) []byte {
	return append(b, make([]byte, alignUp16(len(b))-len(b))...)
}

// Build assembles the full byte image of a relocatable ELF64 object
// for a compiled program: identCount declared variables, the .text
// bytes, and the relocation requests recorded by the emitter that
// produced them.
func Build(identCount uint32, text []byte, relocs []codegen.Relocation) []byte {
	sym := codegen.Symbols{IdentCount: identCount}

	data := []byte(fmtBlob)
	data = append(data, make([]byte, (uint64(identCount)+1)*8)...)
	dataSize := uint64(len(data))
	data = pad16(data)

	paddedText := pad16(append([]byte(nil), text...))

	strtab, identNameOffset := buildStrtab(identCount)
	strtabSize := uint64(len(strtab))
	strtab = pad16(strtab)

	symtab, symtabInfo := buildSymtab(identCount, identNameOffset)
	symtabSize := uint64(len(symtab))
	symtab = pad16(symtab)

	relaText := buildRelaText(sym, relocs)
	relaTextSize := uint64(len(relaText))
	relaText = pad16(relaText)

	out := make([]byte, 0, headerEnd+len(data)+len(paddedText)+len(shstrtabBlob)+len(symtab)+len(strtab)+len(relaText))
	out = append(out, header()...)

	dataOff := uint64(headerEnd)
	textOff := dataOff + uint64(len(data))
	shstrtabOff := textOff + uint64(len(paddedText))
	symtabOff := shstrtabOff + uint64(alignUp16(len(shstrtabBlob)))
	strtabOff := symtabOff + uint64(len(symtab))
	relaTextOff := strtabOff + uint64(len(strtab))

	out = append(out, nullSection().bytes()...)
	out = append(out, dataSection(dataOff, dataSize).bytes()...)
	out = append(out, textSection(textOff, uint64(len(text))).bytes()...)
	out = append(out, shstrtabSection(shstrtabOff).bytes()...)
	out = append(out, symtabSection(symtabOff, symtabSize, secStrtab, symtabInfo).bytes()...)
	out = append(out, strtabSection(strtabOff, strtabSize).bytes()...)
	out = append(out, relaTextSection(relaTextOff, relaTextSize, secSymtab, secText).bytes()...)

	out = append(out, data...)
	out = append(out, paddedText...)
	out = append(out, pad16([]byte(shstrtabBlob))...)
	out = append(out, symtab...)
	out = append(out, strtab...)
	out = append(out, relaText...)

	return out
}

// buildStrtab lays out .strtab: the fixed runtime-symbol-name prefix,
// then one "iN\0" entry per variable plus the scratch slot.
// identNameOffset[i] is the byte offset of the i-th such entry's name.
func buildStrtab(identCount uint32) (blob []byte, identNameOffset []uint32) {
	blob = []byte(strtabPrefix)
	identNameOffset = make([]uint32, identCount+1)
	for i := uint32(0); i <= identCount; i++ {
		identNameOffset[i] = uint32(len(blob))
		blob = append(blob, []byte(fmt.Sprintf("i%d\x00", i))...)
	}
	return blob, identNameOffset
}

// buildSymtab lays out .symtab in the fixed order: null, .data, .text,
// the four format-string symbols, one symbol per variable/scratch
// slot, then scanf/printf/main. It returns the sh_info value (the
// index of the first GLOBAL symbol, i.e. the count of local symbols).
func buildSymtab(identCount uint32, identNameOffset []uint32) (blob []byte, info uint32) {
	entries := []symEntry{nullSym(), dataSym(), textSym()}
	entries = append(entries,
		identSym(1, 0),  // "%ld"
		identSym(4, 4),  // "%ld\n"
		identSym(7, 9),  // "%lf"
		identSym(11, 13), // "%lf\n"
	)
	for i := uint32(0); i <= identCount; i++ {
		entries = append(entries, identSym(identNameOffset[i], 0x12+uint64(i)*8))
	}
	local := len(entries)
	entries = append(entries, scanfSym(), printfSym(), mainSym())

	blob = make([]byte, 0, len(entries)*24)
	for _, e := range entries {
		blob = append(blob, e.bytes()...)
	}
	return blob, uint32(local)
}

// buildRelaText lowers codegen's symbolic relocations to their
// concrete .rela.text entries: every variable/scratch/format-string
// reference resolves through symtab index 1 (.data) with an addend
// computed from its data offset; scanf/printf resolve to their own
// real symtab indices with a fixed addend of -4.
func buildRelaText(sym codegen.Symbols, relocs []codegen.Relocation) []byte {
	scanfIdx := uint32(8 + sym.IdentCount)
	printfIdx := uint32(9 + sym.IdentCount)

	blob := make([]byte, 0, len(relocs)*24)
	for _, r := range relocs {
		var e relaEntry
		e.Offset = uint64(r.Offset)

		switch r.Symbol {
		case sym.Scanf():
			e.Sym, e.Type, e.Addend = scanfIdx, relPLT32, -4
		case sym.Printf():
			e.Sym, e.Type, e.Addend = printfIdx, relPLT32, -4
		case sym.FmtLd():
			e.Sym, e.Addend = 1, 0
			e.Type = relocType(r.Kind)
		case sym.FmtLdNl():
			e.Sym, e.Addend = 1, 4
			e.Type = relocType(r.Kind)
		case sym.FmtLf():
			e.Sym, e.Addend = 1, 9
			e.Type = relocType(r.Kind)
		case sym.FmtLfNl():
			e.Sym, e.Addend = 1, 13
			e.Type = relocType(r.Kind)
		default: // a program variable or the scratch slot
			e.Sym, e.Addend = 1, 0x12+int64(r.Symbol)*8
			e.Type = relocType(r.Kind)
		}

		blob = append(blob, e.bytes()...)
	}
	return blob
}

func relocType(kind codegen.RelocKind) uint32 {
	if kind == codegen.RelocAbs64 {
		return relAbs64
	}
	return relAbs32
}
