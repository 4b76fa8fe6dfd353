// Package driver orchestrates the compiler's stages — lex, decode
// literals, parse, analyze/emit, package — end to end. It owns the
// identifier/literal tables, decodes literals between lexing and
// parsing, and aborts the pipeline as soon as any stage reports an
// error. The CLI in cmd/ncc is the only caller.
package driver

import (
	"github.com/halvardsen/ncc/internal/ast"
	"github.com/halvardsen/ncc/internal/cerr"
	"github.com/halvardsen/ncc/internal/elfobj"
	"github.com/halvardsen/ncc/internal/lexer"
	"github.com/halvardsen/ncc/internal/parser"
	"github.com/halvardsen/ncc/internal/semantic"
	"github.com/halvardsen/ncc/internal/token"
)

// Stage names a point the pipeline may stop at, for the CLI's
// `-l`/`-st`/`-sem` debug flags.
type Stage string

const (
	StageLex      Stage = "lex"
	StageSyntax   Stage = "syntax"
	StageSemantic Stage = "semantic"
)

// RunOptions configures a single compilation.
type RunOptions struct {
	Source    string
	FilePath  string
	StopAfter Stage // empty runs the full pipeline through object emission
}

// Result carries whichever stage outputs the run produced, up to
// (and including) the stage it stopped at.
type Result struct {
	Tokens      []token.Token
	IdentNames  []string
	Literals    map[uint32]lexer.NumberValue
	Program     *ast.Program
	ObjectBytes []byte
}

// Run executes the pipeline. On any stage error it returns a nil
// Result and that stage's diagnostics, already converted to the
// uniform cerr.CompilerError shape; it never runs a later stage once
// an earlier one has failed.
func Run(opts RunOptions) (*Result, []*cerr.CompilerError) {
	lx := lexer.New(opts.Source, lexer.WithFilePath(opts.FilePath))
	toks := lx.Tokenize()
	if errs := convert(lx.Errors(), opts); len(errs) > 0 {
		return nil, errs
	}

	res := &Result{Tokens: toks}
	if opts.StopAfter == StageLex {
		return res, nil
	}

	values, decodeErrs := lx.Literals().Decode()
	if len(decodeErrs) > 0 {
		errs := make([]*cerr.CompilerError, len(decodeErrs))
		for i, e := range decodeErrs {
			errs[i] = cerr.New(token.Position{}, e.Error(), opts.Source, opts.FilePath)
		}
		return nil, errs
	}
	res.Literals = values
	res.IdentNames = identNames(lx.Idents())

	p := parser.New(toks)
	prog := p.ParseProgram()
	if errs := convert(p.Errors(), opts); len(errs) > 0 {
		return nil, errs
	}
	res.Program = prog
	if opts.StopAfter == StageSyntax {
		return res, nil
	}

	an := semantic.NewAnalyzer(uint32(lx.Idents().Len()), res.IdentNames, values)
	an.Analyze(prog)
	if errs := convert(an.Errors(), opts); len(errs) > 0 {
		return nil, errs
	}
	if opts.StopAfter == StageSemantic {
		return res, nil
	}

	res.ObjectBytes = elfobj.Build(uint32(lx.Idents().Len()), an.Emitter().Bytes(), an.Emitter().Relocations())
	return res, nil
}

// stageError is implemented by every stage's structured error type.
type stageError interface {
	ToCompilerError(source, file string) *cerr.CompilerError
}

func convert[E stageError](stageErrs []E, opts RunOptions) []*cerr.CompilerError {
	if len(stageErrs) == 0 {
		return nil
	}
	out := make([]*cerr.CompilerError, len(stageErrs))
	for i, e := range stageErrs {
		out[i] = e.ToCompilerError(opts.Source, opts.FilePath)
	}
	return out
}

func identNames(t *lexer.IdentTable) []string {
	names := make([]string, t.Len())
	for i := range names {
		names[i] = t.Name(uint32(i))
	}
	return names
}
