package parser

import (
	"testing"

	"github.com/halvardsen/ncc/internal/ast"
	"github.com/halvardsen/ncc/internal/lexer"
)

func parseSource(t *testing.T, src string) *ast.Program {
	t.Helper()
	l := lexer.New(src)
	toks := l.Tokenize()
	if len(l.Errors()) != 0 {
		t.Fatalf("unexpected lex errors: %v", l.Errors())
	}
	p := New(toks)
	prog := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	if prog == nil {
		t.Fatalf("ParseProgram returned nil with no recorded errors")
	}
	return prog
}

func TestParseSimpleAssignOutput(t *testing.T) {
	prog := parseSource(t, `{ var x: integer; x = 1 + 2; output(x); }`)
	if len(prog.Operations) != 3 {
		t.Fatalf("expected 3 main operations, got %d", len(prog.Operations))
	}
	decl, ok := prog.Operations[0].(*ast.VarDecl)
	if !ok || len(decl.Groups) != 1 || decl.Groups[0].Type != ast.Integer {
		t.Fatalf("expected one integer VarDecl group, got %+v", prog.Operations[0])
	}
}

func TestParseChainedVarDecl(t *testing.T) {
	prog := parseSource(t, `{ var x: integer; y: real; b: boolean; x = 1; }`)
	decl, ok := prog.Operations[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected VarDecl, got %T", prog.Operations[0])
	}
	if len(decl.Groups) != 3 {
		t.Fatalf("expected 3 chained groups, got %d", len(decl.Groups))
	}
	if len(prog.Operations) != 2 {
		t.Fatalf("expected the trailing assign as a separate main op, got %d ops", len(prog.Operations))
	}
}

func TestParseReassignmentNotRedeclaration(t *testing.T) {
	prog := parseSource(t, `{ var a: integer; let a = 1; let a = 2; }`)
	if len(prog.Operations) != 3 {
		t.Fatalf("expected 3 main ops, got %d", len(prog.Operations))
	}
}

func TestParseIfForWhile(t *testing.T) {
	prog := parseSource(t, `{
		var x: integer;
		input(x);
		do while x > 0 { x = x - 1 } loop;
		if x == 0 then output(x) else output(x) end_else;
		for (x == 0; x < 10; x != 9) output(x);
	}`)
	if len(prog.Operations) != 5 {
		t.Fatalf("expected 5 main ops, got %d", len(prog.Operations))
	}
}

func TestParseSyntaxErrorAborts(t *testing.T) {
	l := lexer.New(`{ var x integer; }`)
	toks := l.Tokenize()
	p := New(toks)
	prog := p.ParseProgram()
	if prog != nil {
		t.Fatalf("expected nil program on syntax error")
	}
	if len(p.Errors()) == 0 {
		t.Fatalf("expected a recorded syntax error")
	}
}
