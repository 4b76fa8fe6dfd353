package codegen

// RelOp identifies which x86 condition code a relational comparison
// lowers to. Kept separate from internal/ast.RelOp so codegen has no
// import-time dependency on the AST package.
type RelOp int

const (
	RelEq RelOp = iota
	RelNeq
	RelLt
	RelLte
	RelGt
	RelGte
)

func (r RelOp) jccOpcode() byte {
	switch r {
	case RelEq:
		return 0x74
	case RelNeq:
		return 0x75
	case RelGt:
		return 0x7F
	case RelLt:
		return 0x7C
	case RelGte:
		return 0x7D
	case RelLte:
		return 0x7E
	default:
		panic("codegen: unknown RelOp")
	}
}

// RelationalResult emits the short-jump/boolean-constant pattern that
// turns a preceding cmp/fcomi's EFLAGS into a -1/0 boolean in rax:
//
//	jcc  +12        ; condition false, fall through to AsmBool(false)
//	movabs rax, 0
//	jmp  +10        ; skip AsmBool(true)
//	movabs rax, -1
func (e *Emitter) RelationalResult(op RelOp) {
	e.emit(op.jccOpcode(), 0x0c)
	e.AsmBool(false)
	e.emit(0xeb, 0x0a)
	e.AsmBool(true)
}

// JzDefault emits `test rax, rax; jz rel32` and returns the position
// of the rel32 field for later patching with PatchJump — used to skip
// a then/else/loop-body block when rax (the condition) is zero.
func (e *Emitter) JzDefault() (patchPos int) {
	e.emit(0x48, 0x85, 0xc0) // test rax, rax
	e.emit(0x0f, 0x84)       // jz rel32
	patchPos = e.Pos()
	e.emitU32(0)
	return patchPos
}

// JmpDefault emits an unconditional forward `jmp rel32` and returns
// the rel32 field's position for later patching.
func (e *Emitter) JmpDefault() (patchPos int) {
	e.emit(0xe9)
	patchPos = e.Pos()
	e.emitU32(0)
	return patchPos
}

// PatchJump backfills a rel32 field emitted by JzDefault/JmpDefault
// once the jump target (the current end of .text) is known.
func (e *Emitter) PatchJump(patchPos int) {
	rel := uint32(int32(len(e.buf) - (patchPos + 4)))
	copy(e.buf[patchPos:patchPos+4], u32le(rel))
}

// JmpBackward emits `jmp rel32` to a target position that is already
// known (the top of a loop), computing rel32 directly instead of
// going through the patch machinery.
func (e *Emitter) JmpBackward(targetPos int) {
	e.emit(0xe9)
	rel := int32(targetPos - (len(e.buf) + 4))
	e.emitU32(uint32(rel))
}

func u32le(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

// Input emits the `scanf(fmt, &var)` sequence for one identifier,
// followed — for boolean targets — by the read value's normalisation
// to the canonical -1/0 representation.
func (e *Emitter) Input(id SymbolID, isFloat, isBool bool) {
	fmtSym := e.Sym.FmtLd()
	if isFloat {
		fmtSym = e.Sym.FmtLf()
	}
	e.LoadSymbolAddr(fmtSym)
	e.MovRaxToRdi()
	e.LoadSymbolAddr(id)
	e.MovRaxToRsi()
	e.CallSymbol(e.Sym.Scanf())

	if isBool {
		e.MovRaxFromIdent(id)
		e.CmpRaxImm0()
		e.RelationalResult(RelNeq)
		e.StoreRaxToIdent(id)
	}
}

// Output emits the `printf(fmt, value)` sequence for a value already
// resident in rax (int/bool) or staged via SaveFPURax (float). The
// format address is moved into rdi first; the vararg count in AL
// (xor rax,rax for the integer path, mov eax,1 for the float path) is
// set last, immediately before the call, so nothing after it can
// clobber rax.
func (e *Emitter) Output(isFloat bool) {
	if !isFloat {
		e.MovRaxToRsi()
		e.LoadSymbolAddr(e.Sym.FmtLdNl())
		e.MovRaxToRdi()
		e.XorRaxRax()
		e.CallSymbol(e.Sym.Printf())
		return
	}

	e.StoreRaxToIdent(e.Sym.Scratch())
	e.MovsdXmm0FromIdent(e.Sym.Scratch())
	e.LoadSymbolAddr(e.Sym.FmtLfNl())
	e.MovRaxToRdi()
	e.MovEaxImm1()
	e.CallSymbol(e.Sym.Printf())
}
