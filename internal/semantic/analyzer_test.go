package semantic

import (
	"testing"

	"github.com/halvardsen/ncc/internal/lexer"
	"github.com/halvardsen/ncc/internal/parser"
)

func analyze(t *testing.T, src string) *Analyzer {
	t.Helper()
	lx := lexer.New(src)
	toks := lx.Tokenize()
	if len(lx.Errors()) != 0 {
		t.Fatalf("unexpected lex errors: %v", lx.Errors())
	}

	p := parser.New(toks)
	prog := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}

	values, decodeErrs := lx.Literals().Decode()
	if len(decodeErrs) != 0 {
		t.Fatalf("unexpected literal decode errors: %v", decodeErrs)
	}

	a := NewAnalyzer(uint32(lx.Idents().Len()), identNames(lx.Idents()), values)
	a.Analyze(prog)
	return a
}

func identNames(t *lexer.IdentTable) []string {
	names := make([]string, t.Len())
	for i := range names {
		names[i] = t.Name(uint32(i))
	}
	return names
}

func TestAnalyzeSimpleAssignOutput(t *testing.T) {
	a := analyze(t, "{ var x: integer; x = 1 + 2; output(x); }")
	if len(a.Errors()) != 0 {
		t.Fatalf("unexpected semantic errors: %v", a.Errors())
	}
	if len(a.Emitter().Bytes()) == 0 {
		t.Fatalf("expected non-empty .text")
	}
}

func TestAnalyzeUndeclaredAssignFails(t *testing.T) {
	a := analyze(t, "{ x = 1; }")
	if len(a.Errors()) != 1 || a.Errors()[0].Kind != NotDeclared {
		t.Fatalf("expected a single NotDeclared error, got %v", a.Errors())
	}
}

func TestAnalyzeTypeMismatchOnAssign(t *testing.T) {
	a := analyze(t, "{ var x: integer; x = true; }")
	if len(a.Errors()) != 1 || a.Errors()[0].Kind != AssignTypeMismatch {
		t.Fatalf("expected a single AssignTypeMismatch error, got %v", a.Errors())
	}
}

func TestAnalyzeIfRequiresBooleanCondition(t *testing.T) {
	a := analyze(t, "{ var x: integer; x = 5; if x then x = 1 end_else }")
	if len(a.Errors()) != 1 || a.Errors()[0].Kind != NotBoolean {
		t.Fatalf("expected a single NotBoolean error, got %v", a.Errors())
	}
}

func TestAnalyzeReadBeforeAssignFails(t *testing.T) {
	a := analyze(t, "{ var x: integer; output(x); }")
	if len(a.Errors()) != 1 || a.Errors()[0].Kind != NotInitialized {
		t.Fatalf("expected a single NotInitialized error, got %v", a.Errors())
	}
}

func TestAnalyzeInputMarksVariableInitialized(t *testing.T) {
	a := analyze(t, "{ var x: integer; input(x); output(x); }")
	if len(a.Errors()) != 0 {
		t.Fatalf("unexpected semantic errors: %v", a.Errors())
	}
}

func TestAnalyzeRealArithmeticEmitsFPU(t *testing.T) {
	a := analyze(t, "{ var x: real; x = 1.5 + 2.5; output(x); }")
	if len(a.Errors()) != 0 {
		t.Fatalf("unexpected semantic errors: %v", a.Errors())
	}
	foundFPU := false
	for i := 0; i+2 < len(a.Emitter().Bytes()); i++ {
		if a.Emitter().Bytes()[i] == 0x9b && a.Emitter().Bytes()[i+1] == 0xdb && a.Emitter().Bytes()[i+2] == 0xe3 {
			foundFPU = true
			break
		}
	}
	if !foundFPU {
		t.Fatalf("expected an fwait/fninit sequence in emitted bytes")
	}
}

func TestAnalyzeWhileLoopRecordsNoErrors(t *testing.T) {
	a := analyze(t, "{ var x: integer; x = 0; do while x < 10 x = x + 1 loop }")
	if len(a.Errors()) != 0 {
		t.Fatalf("unexpected semantic errors: %v", a.Errors())
	}
}

func TestAnalyzeAlreadyDeclaredVariable(t *testing.T) {
	a := analyze(t, "{ var x: integer; var x: real; }")
	if len(a.Errors()) != 1 || a.Errors()[0].Kind != AlreadyDeclared {
		t.Fatalf("expected a single AlreadyDeclared error, got %v", a.Errors())
	}
}
