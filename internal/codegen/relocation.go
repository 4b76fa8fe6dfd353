// Package codegen implements a low-level x86-64 System-V instruction
// emitter: dozens of small helpers, each emitting a fixed byte
// sequence and recording a relocation request. These stay small and
// single-purpose rather than unified into a generic instruction
// builder, so the machine-code semantics stay auditable line by line.
package codegen

// SymbolID is a position in the unified relocation-target namespace:
// ids [0, N) are program variables, id N is the scratch slot, and ids
// [N+1, N+6] are the six fixed runtime symbols.
type SymbolID uint32

// RelocKind distinguishes the three relocation shapes this emitter
// produces: a 4-byte absolute field (used by the SIB disp32 memory
// operand encoding), an 8-byte absolute field (used by movabs
// immediates that load an address as a value), and a 4-byte
// PC-relative call target.
type RelocKind int

const (
	RelocAbs32 RelocKind = iota // R_X86_64_32
	RelocAbs64                  // R_X86_64_64
	RelocPLT32                  // R_X86_64_PLT32, addend -4
)

// Relocation is a relocation request: the offset of a 4- or 8-byte
// immediate within .text, the symbolic target, and the field's shape.
type Relocation struct {
	Symbol SymbolID
	Offset int
	Kind   RelocKind
}

// Symbols bundles the six fixed runtime-symbol ids derived from N
// (identCount), plus the scratch slot. Held separately from Emitter so
// both codegen and internal/elfobj can share the exact same id
// assignment without re-deriving it.
type Symbols struct {
	IdentCount uint32
}

func (s Symbols) Scratch() SymbolID { return SymbolID(s.IdentCount) }
func (s Symbols) FmtLd() SymbolID   { return SymbolID(s.IdentCount + 1) } // "%ld", .data offset 0
func (s Symbols) FmtLf() SymbolID   { return SymbolID(s.IdentCount + 2) } // "%lf", .data offset 9
func (s Symbols) FmtLdNl() SymbolID { return SymbolID(s.IdentCount + 3) } // "%ld\n", .data offset 4
func (s Symbols) FmtLfNl() SymbolID { return SymbolID(s.IdentCount + 4) } // "%lf\n", .data offset 13
func (s Symbols) Scanf() SymbolID   { return SymbolID(s.IdentCount + 5) }
func (s Symbols) Printf() SymbolID  { return SymbolID(s.IdentCount + 6) }

// Ident returns the symbol id for program variable id (id < IdentCount).
func (s Symbols) Ident(id uint32) SymbolID { return SymbolID(id) }
