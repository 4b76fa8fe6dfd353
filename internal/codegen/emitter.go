package codegen

import (
	"encoding/binary"
	"math"
)

// Emitter accumulates the .text byte image and its relocation table
// while the semantic analyser walks the AST. Symbols ties it to the
// fixed id assignment shared with the ELF packager.
type Emitter struct {
	buf    []byte
	relocs []Relocation
	Sym    Symbols
}

// NewEmitter returns an Emitter for a program with identCount declared
// variables.
func NewEmitter(identCount uint32) *Emitter {
	return &Emitter{Sym: Symbols{IdentCount: identCount}}
}

// Bytes returns the emitted .text payload.
func (e *Emitter) Bytes() []byte { return e.buf }

// Relocations returns every relocation request recorded so far.
func (e *Emitter) Relocations() []Relocation { return e.relocs }

// Pos returns the current write cursor (the offset the next emitted
// byte will land at).
func (e *Emitter) Pos() int { return len(e.buf) }

func (e *Emitter) emit(bs ...byte) { e.buf = append(e.buf, bs...) }

func (e *Emitter) emitU32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

func (e *Emitter) emitU64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

func (e *Emitter) reloc(sym SymbolID, offset int, kind RelocKind) {
	e.relocs = append(e.relocs, Relocation{Symbol: sym, Offset: offset, Kind: kind})
}

// --- entry / exit --------------------------------------------------

// Prologue emits `sub rsp, 8`, keeping the stack 16-byte aligned at
// the next `call` boundary.
func (e *Emitter) Prologue() {
	e.emit(0x48, 0x83, 0xec, 0x08)
}

// Epilogue emits the Linux `exit(0)` syscall sequence.
func (e *Emitter) Epilogue() {
	e.emit(0xb8, 0x3c, 0x00, 0x00, 0x00) // mov eax, 60
	e.emit(0x48, 0x31, 0xff)             // xor rdi, rdi
	e.emit(0x0f, 0x05)                   // syscall
}

// --- stack / register shuffling for binary operators ----------------

// PushRax emits `push rax`.
func (e *Emitter) PushRax() { e.emit(0x50) }

// PopRbxXchg emits `pop rbx; xchg rax, rbx`, leaving the first
// (earlier-evaluated) operand in rax, the second in rbx, without
// reordering which physical register ends up as "left".
func (e *Emitter) PopRbxXchg() { e.emit(0x5b, 0x48, 0x93) }

// --- immediate loads -------------------------------------------------

// MovRaxImmInt emits `movabs rax, v`.
func (e *Emitter) MovRaxImmInt(v int64) {
	e.emit(0x48, 0xb8)
	e.emitU64(uint64(v))
}

// MovRaxImmFloat emits `movabs rax, <bits of v>` — floats travel
// through general-purpose registers as their raw IEEE-754 bit pattern
// until they reach the FPU.
func (e *Emitter) MovRaxImmFloat(v float64) {
	e.emit(0x48, 0xb8)
	e.emitU64(math.Float64bits(v))
}

// AsmBool emits the boolean-constant convention: true = all-ones,
// false = all-zeros.
func (e *Emitter) AsmBool(v bool) {
	if v {
		e.MovRaxImmInt(-1)
	} else {
		e.MovRaxImmInt(0)
	}
}

// --- integer/boolean ALU ops on rax/rbx ------------------------------

func (e *Emitter) NotRax()    { e.emit(0x48, 0xf7, 0xd0) }
func (e *Emitter) AndRaxRbx() { e.emit(0x48, 0x21, 0xd8) }
func (e *Emitter) OrRaxRbx()  { e.emit(0x48, 0x09, 0xd8) }
func (e *Emitter) AddRaxRbx() { e.emit(0x48, 0x01, 0xd8) }
func (e *Emitter) SubRaxRbx() { e.emit(0x48, 0x29, 0xd8) }
func (e *Emitter) MulRaxRbx() { e.emit(0x48, 0xf7, 0xeb) } // imul rbx
func (e *Emitter) DivRaxRbx() { e.emit(0x48, 0xf7, 0xfb) } // idiv rbx
func (e *Emitter) CmpRaxRbx() { e.emit(0x48, 0x39, 0xd8) }
func (e *Emitter) CmpRaxImm0() {
	e.emit(0x48, 0x83, 0xf8, 0x00) // cmp rax, 0
}

// --- memory-operand forms tied to the unified symbol namespace ------

// MovRaxFromIdent emits `mov rax, [sym]` using absolute disp32
// addressing (System-V non-PIE convention; the object must be linked
// with `-no-pie`).
func (e *Emitter) MovRaxFromIdent(sym SymbolID) {
	e.emit(0x48, 0x8b, 0x04, 0x25)
	off := e.Pos()
	e.emitU32(0)
	e.reloc(sym, off, RelocAbs32)
}

// StoreRaxToIdent emits `mov [sym], rax`.
func (e *Emitter) StoreRaxToIdent(sym SymbolID) {
	e.emit(0x48, 0x89, 0x04, 0x25)
	off := e.Pos()
	e.emitU32(0)
	e.reloc(sym, off, RelocAbs32)
}

// StoreRbxToIdent emits `mov [sym], rbx`.
func (e *Emitter) StoreRbxToIdent(sym SymbolID) {
	e.emit(0x48, 0x89, 0x1c, 0x25)
	off := e.Pos()
	e.emitU32(0)
	e.reloc(sym, off, RelocAbs32)
}

// LoadSymbolAddr emits `movabs rax, &sym` — the address itself as a
// 64-bit immediate, used when the address (not the value) is needed,
// e.g. scanf's `&var` or a format string pointer.
func (e *Emitter) LoadSymbolAddr(sym SymbolID) {
	e.emit(0x48, 0xb8)
	off := e.Pos()
	e.emitU64(0)
	e.reloc(sym, off, RelocAbs64)
}

// MovRaxToRdi / MovRaxToRsi move the call-staging value from rax into
// the first/second System-V integer argument register.
func (e *Emitter) MovRaxToRdi() { e.emit(0x48, 0x89, 0xc7) }
func (e *Emitter) MovRaxToRsi() { e.emit(0x48, 0x89, 0xc6) }
func (e *Emitter) XorRaxRax()   { e.emit(0x48, 0x31, 0xc0) }
func (e *Emitter) MovEaxImm1()  { e.emit(0xb8, 0x01, 0x00, 0x00, 0x00) }

// MovsdXmm0FromIdent emits `movsd xmm0, [sym]`.
func (e *Emitter) MovsdXmm0FromIdent(sym SymbolID) {
	e.emit(0xf2, 0x0f, 0x10, 0x04, 0x25)
	off := e.Pos()
	e.emitU32(0)
	e.reloc(sym, off, RelocAbs32)
}

// CallSymbol emits a PC-relative `call sym` (R_X86_64_PLT32, addend
// -4 — used for `scanf`/`printf`).
func (e *Emitter) CallSymbol(sym SymbolID) {
	e.emit(0xe8)
	off := e.Pos()
	e.emitU32(0)
	e.reloc(sym, off, RelocPLT32)
}

// --- x87 floating point ----------------------------------------------

// InitFPU prepares the FPU for a binary float operation: it resets the
// FPU, pushes rax's bit pattern onto the FPU stack as the left
// operand, then stores rbx's bit pattern into the scratch slot as the
// right operand — ready for AddFPU/SubFPU/MulFPU/DivFPU to combine
// st(0) with [scratch].
func (e *Emitter) InitFPU() {
	e.emit(0x9b, 0xdb, 0xe3) // fwait; fninit
	e.StoreRaxToIdent(e.Sym.Scratch())
	e.FldScratch()
	e.StoreRbxToIdent(e.Sym.Scratch())
}

// FldScratch emits `fld qword [scratch]`.
func (e *Emitter) FldScratch() {
	e.emit(0xdd, 0x04, 0x25)
	off := e.Pos()
	e.emitU32(0)
	e.reloc(e.Sym.Scratch(), off, RelocAbs32)
}

func (e *Emitter) AddFPU() { e.fpuBinOp(0x04) } // fadd qword [scratch]
func (e *Emitter) MulFPU() { e.fpuBinOp(0x0c) } // fmul qword [scratch]
func (e *Emitter) SubFPU() { e.fpuBinOp(0x24) } // fsub qword [scratch]
func (e *Emitter) DivFPU() { e.fpuBinOp(0x34) } // fdiv qword [scratch]

func (e *Emitter) fpuBinOp(modrm byte) {
	e.emit(0xdc, modrm, 0x25)
	off := e.Pos()
	e.emitU32(0)
	e.reloc(e.Sym.Scratch(), off, RelocAbs32)
}

// SaveFPURax emits `fstp qword [scratch]; mov rax, [scratch]`,
// materialising the float result back into rax's bit pattern.
func (e *Emitter) SaveFPURax() {
	e.emit(0xdd, 0x1c, 0x25)
	off := e.Pos()
	e.emitU32(0)
	e.reloc(e.Sym.Scratch(), off, RelocAbs32)
	e.MovRaxFromIdent(e.Sym.Scratch())
}

// FComI emits the float-comparison sequence: prepare st(0)=rax,
// [scratch]=rbx via InitFPU, push [scratch] so st(0)=rbx/st(1)=rax,
// then `fcomi st(0), st(1)` which sets EFLAGS the same way `cmp` does.
func (e *Emitter) FComI() {
	e.InitFPU()
	e.FldScratch()
	e.emit(0xdb, 0xf1)
}
