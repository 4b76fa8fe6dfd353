// Package elfobj packages a compiled program's .text bytes and
// relocation requests (internal/codegen.Emitter's output) into a
// relocatable ELF64 object file, ready to be linked against the C
// runtime with `ld -no-pie`. The byte layout is hand-rolled rather
// than built on a general-purpose ELF-writing library, since the
// object shape here (six fixed sections, a single unified .data blob,
// a hand-rolled symbol/string table) is narrower than what
// debug/elf-style libraries assume for a general-purpose writer.
package elfobj

import "encoding/binary"

func putU16(b []byte, v uint16) { binary.LittleEndian.PutUint16(b, v) }
func putU32(b []byte, v uint32) { binary.LittleEndian.PutUint32(b, v) }
func putU64(b []byte, v uint64) { binary.LittleEndian.PutUint64(b, v) }

// header returns the 64-byte Elf64_Ehdr for a relocatable (ET_REL)
// x86-64 object with 7 section headers at file offset 0x40 and
// .shstrtab at section index 3.
func header() []byte {
	h := make([]byte, 0x40)
	copy(h[0:16], []byte{0x7f, 'E', 'L', 'F', 2, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	putU16(h[16:18], 1)    // e_type = ET_REL
	putU16(h[18:20], 0x3e) // e_machine = EM_X86_64
	putU32(h[20:24], 1)    // e_version = EV_CURRENT
	// e_entry, e_phoff stay zero: no program headers, no entry point
	putU64(h[40:48], 0x40) // e_shoff
	putU16(h[52:54], 0x40) // e_ehsize
	putU16(h[58:60], 0x40) // e_shentsize
	putU16(h[60:62], sectionCount)
	putU16(h[62:64], secShstrtab) // e_shstrndx
	return h
}
