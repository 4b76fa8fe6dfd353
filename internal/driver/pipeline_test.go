package driver

import "testing"

func TestRunFullPipelineProducesObjectBytes(t *testing.T) {
	res, errs := Run(RunOptions{Source: "{ var x: integer; x = 1 + 2; output(x); }", FilePath: "t.nc"})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(res.ObjectBytes) == 0 {
		t.Fatalf("expected non-empty object bytes")
	}
	if string(res.ObjectBytes[0:4]) != "\x7fELF" {
		t.Fatalf("missing ELF magic")
	}
}

func TestRunStopsAfterLex(t *testing.T) {
	res, errs := Run(RunOptions{Source: "{ var x: integer; }", StopAfter: StageLex})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if res.Program != nil {
		t.Fatalf("expected parsing to be skipped")
	}
	if len(res.Tokens) == 0 {
		t.Fatalf("expected tokens to be populated")
	}
}

func TestRunStopsAfterSyntax(t *testing.T) {
	res, errs := Run(RunOptions{Source: "{ var x: integer; }", StopAfter: StageSyntax})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if res.Program == nil {
		t.Fatalf("expected a parsed program")
	}
	if res.ObjectBytes != nil {
		t.Fatalf("expected emission to be skipped")
	}
}

func TestRunReportsSyntaxErrors(t *testing.T) {
	_, errs := Run(RunOptions{Source: "{ var x integer; }", FilePath: "t.nc"})
	if len(errs) == 0 {
		t.Fatalf("expected a syntax error")
	}
}

func TestRunReportsSemanticErrors(t *testing.T) {
	_, errs := Run(RunOptions{Source: "{ x = 1; }", FilePath: "t.nc"})
	if len(errs) == 0 {
		t.Fatalf("expected a semantic error")
	}
}
