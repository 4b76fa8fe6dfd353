// Package semantic implements a unified type-checker and code
// emitter: a single pass over the AST that both enforces the
// language's type rules and drives internal/codegen.Emitter to
// produce .text bytes and relocations, one function per AST node
// rather than two separate passes.
package semantic

import (
	"github.com/halvardsen/ncc/internal/ast"
	"github.com/halvardsen/ncc/internal/codegen"
	"github.com/halvardsen/ncc/internal/lexer"
)

// Analyzer walks a Program exactly once, maintaining a symbol table of
// declared variable types, a has-value bit per variable (set on the
// first assignment or input, checked on every read), and emitting
// machine code as it goes.
type Analyzer struct {
	em       *codegen.Emitter
	vars     map[uint32]ast.Type
	hasValue map[uint32]bool // set once a variable has been assigned or read by input
	idents   []string
	literals map[uint32]lexer.NumberValue
	errs     []*Error
}

// NewAnalyzer returns an Analyzer for a program with identCount
// declared variables. identNames is used only to render identifier
// names in diagnostics; literals is the driver-decoded literal table
// (internal/lexer.LiteralTable.Decode).
func NewAnalyzer(identCount uint32, identNames []string, literals map[uint32]lexer.NumberValue) *Analyzer {
	return &Analyzer{
		em:       codegen.NewEmitter(identCount),
		vars:     make(map[uint32]ast.Type),
		hasValue: make(map[uint32]bool),
		idents:   identNames,
		literals: literals,
	}
}

// Emitter exposes the underlying code emitter, once Analyze has run,
// for the ELF packager to consume.
func (a *Analyzer) Emitter() *codegen.Emitter { return a.em }

// Errors returns every semantic diagnostic recorded during Analyze.
func (a *Analyzer) Errors() []*Error { return a.errs }

func (a *Analyzer) name(id uint32) string {
	if int(id) < len(a.idents) {
		return a.idents[id]
	}
	return "?"
}

func (a *Analyzer) addErr(e *Error) { a.errs = append(a.errs, e) }

// Analyze type-checks and emits code for the whole program, returning
// true if no semantic errors were recorded. On success Emitter() holds
// the complete .text image and relocation table, bracketed by the
// process prologue/epilogue.
func (a *Analyzer) Analyze(prog *ast.Program) bool {
	a.em.Prologue()
	for _, op := range prog.Operations {
		a.mainOp(op)
	}
	a.em.Epilogue()
	return len(a.errs) == 0
}

func (a *Analyzer) mainOp(op ast.MainOperation) {
	switch m := op.(type) {
	case *ast.VarDecl:
		for _, g := range m.Groups {
			for _, id := range g.Ids {
				if _, ok := a.vars[id]; ok {
					a.addErr(&Error{Kind: AlreadyDeclared, Pos: g.Pos, Ident: a.name(id)})
					continue
				}
				a.vars[id] = g.Type
			}
		}
	case *ast.StmtOp:
		a.operator(m.Op)
	}
}

func (a *Analyzer) operator(op ast.Operator) {
	switch o := op.(type) {
	case *ast.Block:
		for _, sub := range o.Ops {
			a.operator(sub)
		}

	case *ast.Assign:
		valType := a.expression(o.Expr)
		varType, ok := a.vars[o.ID]
		if !ok {
			a.addErr(&Error{Kind: NotDeclared, Pos: o.Pos, Ident: a.name(o.ID)})
			return
		}
		if varType != valType {
			a.addErr(&Error{Kind: AssignTypeMismatch, Pos: o.Pos, Have: valType, Want: varType})
			return
		}
		a.hasValue[o.ID] = true
		a.em.StoreRaxToIdent(a.em.Sym.Ident(o.ID))

	case *ast.If:
		a.requireBoolean(&o.Cond)
		patch := a.em.JzDefault()
		a.operator(o.Then)
		if o.Else != nil {
			end := a.em.JmpDefault()
			a.em.PatchJump(patch)
			a.operator(o.Else)
			a.em.PatchJump(end)
		} else {
			a.em.PatchJump(patch)
		}

	case *ast.For:
		a.expression(&o.Init) // evaluated once for its side effect, result discarded

		loopTop := a.em.Pos()
		a.requireBoolean(&o.Cond)
		a.em.PushRax()
		a.requireBoolean(&o.Step)
		a.em.PopRbxXchg()
		a.em.AndRaxRbx() // loop continues only while Cond and Step are both true
		patch := a.em.JzDefault()
		a.operator(o.Body)
		a.em.JmpBackward(loopTop)
		a.em.PatchJump(patch)

	case *ast.While:
		loopTop := a.em.Pos()
		a.requireBoolean(&o.Cond)
		patch := a.em.JzDefault()
		a.operator(o.Body)
		a.em.JmpBackward(loopTop)
		a.em.PatchJump(patch)

	case *ast.Input:
		for _, id := range o.Ids {
			t, ok := a.vars[id]
			if !ok {
				a.addErr(&Error{Kind: NotDeclared, Pos: o.Pos, Ident: a.name(id)})
				continue
			}
			a.hasValue[id] = true
			a.em.Input(a.em.Sym.Ident(id), t == ast.Real, t == ast.Boolean)
		}

	case *ast.Output:
		for i := range o.Exprs {
			t := a.expression(&o.Exprs[i])
			a.em.Output(t == ast.Real)
		}
	}
}

func (a *Analyzer) requireBoolean(ex *ast.Expression) {
	t := a.expression(ex)
	if t != ast.Boolean && t != ast.Invalid {
		a.addErr(&Error{Kind: NotBoolean, Pos: ex.Pos, Have: t})
	}
}

// expression evaluates a relational chain, leaving the final result in
// rax. A chain with no relational operator passes its single operand's
// type straight through; each relational operator narrows the running
// type to Boolean.
func (a *Analyzer) expression(ex *ast.Expression) ast.Type {
	t := a.operand(ex.Operands[0])
	for i, op := range ex.Ops {
		a.em.PushRax()
		rt := a.operand(ex.Operands[i+1])
		a.em.PopRbxXchg()

		if t != rt {
			a.addErr(&Error{Kind: TypeMismatch, Pos: ex.Pos, Have: rt, Want: t})
		}

		switch t {
		case ast.Real:
			a.em.FComI()
		default: // Integer and Boolean compare as 64-bit values
			a.em.CmpRaxRbx()
		}
		a.em.RelationalResult(toCodegenRelOp(op))
		t = ast.Boolean
	}
	return t
}

func (a *Analyzer) operand(o *ast.Operand) ast.Type {
	t := a.term(o.Terms[0])
	for i, op := range o.Ops {
		a.em.PushRax()
		rt := a.term(o.Terms[i+1])
		a.em.PopRbxXchg()

		if t != rt {
			a.addErr(&Error{Kind: TypeMismatch, Pos: o.Pos, Have: rt, Want: t})
			continue
		}

		switch op {
		case ast.AddOr:
			if t != ast.Boolean {
				a.addErr(&Error{Kind: InvalidOperation, Pos: o.Pos, Have: t, Op: "||"})
				continue
			}
			a.em.OrRaxRbx()
		default: // AddPlus, AddMinus
			switch t {
			case ast.Integer:
				if op == ast.AddPlus {
					a.em.AddRaxRbx()
				} else {
					a.em.SubRaxRbx()
				}
			case ast.Real:
				a.em.InitFPU()
				if op == ast.AddPlus {
					a.em.AddFPU()
				} else {
					a.em.SubFPU()
				}
				a.em.SaveFPURax()
			default:
				a.addErr(&Error{Kind: InvalidOperation, Pos: o.Pos, Have: t, Op: op.String()})
			}
		}
	}
	return t
}

func (a *Analyzer) term(t *ast.Term) ast.Type {
	typ := a.multiplier(t.Factors[0])
	for i, op := range t.Ops {
		a.em.PushRax()
		rt := a.multiplier(t.Factors[i+1])
		a.em.PopRbxXchg()

		if typ != rt {
			a.addErr(&Error{Kind: TypeMismatch, Pos: t.Pos, Have: rt, Want: typ})
			continue
		}

		switch op {
		case ast.MulAnd:
			if typ != ast.Boolean {
				a.addErr(&Error{Kind: InvalidOperation, Pos: t.Pos, Have: typ, Op: "&&"})
				continue
			}
			a.em.AndRaxRbx()
		default: // MulTimes, MulDivide
			switch typ {
			case ast.Integer:
				if op == ast.MulTimes {
					a.em.MulRaxRbx()
				} else {
					a.em.DivRaxRbx()
				}
			case ast.Real:
				a.em.InitFPU()
				if op == ast.MulTimes {
					a.em.MulFPU()
				} else {
					a.em.DivFPU()
				}
				a.em.SaveFPURax()
			default:
				a.addErr(&Error{Kind: InvalidOperation, Pos: t.Pos, Have: typ, Op: op.String()})
			}
		}
	}
	return typ
}

func (a *Analyzer) multiplier(m ast.Multiplier) ast.Type {
	switch v := m.(type) {
	case *ast.IdentRef:
		t, ok := a.vars[v.ID]
		if !ok {
			a.addErr(&Error{Kind: NotDeclared, Pos: v.Pos, Ident: a.name(v.ID)})
			a.em.MovRaxImmInt(0)
			return ast.Invalid
		}
		if !a.hasValue[v.ID] {
			a.addErr(&Error{Kind: NotInitialized, Pos: v.Pos, Ident: a.name(v.ID)})
			a.em.MovRaxImmInt(0)
			return ast.Invalid
		}
		a.em.MovRaxFromIdent(a.em.Sym.Ident(v.ID))
		return t

	case *ast.LiteralRef:
		val, ok := a.literals[v.ID]
		if !ok {
			a.em.MovRaxImmInt(0)
			return ast.Invalid
		}
		if val.Kind == lexer.NumberFloat {
			a.em.MovRaxImmFloat(val.Flt)
			return ast.Real
		}
		a.em.MovRaxImmInt(val.Int)
		return ast.Integer

	case *ast.BoolLit:
		a.em.AsmBool(v.Value)
		return ast.Boolean

	case *ast.Not:
		t := a.multiplier(v.Operand)
		if t != ast.Boolean && t != ast.Invalid {
			a.addErr(&Error{Kind: InvalidOperation, Pos: v.Pos, Have: t, Op: "!"})
		}
		a.em.NotRax()
		return ast.Boolean

	case *ast.Paren:
		return a.expression(v.Expr)
	}
	return ast.Invalid
}

func toCodegenRelOp(op ast.RelOp) codegen.RelOp {
	switch op {
	case ast.RelEq:
		return codegen.RelEq
	case ast.RelNotEq:
		return codegen.RelNeq
	case ast.RelLess:
		return codegen.RelLt
	case ast.RelLessEq:
		return codegen.RelLte
	case ast.RelGreater:
		return codegen.RelGt
	case ast.RelGreaterEq:
		return codegen.RelGte
	default:
		return codegen.RelEq
	}
}
